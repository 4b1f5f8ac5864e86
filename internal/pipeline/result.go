package pipeline

import "net/http"

// Result is the outcome of a route handler: either data to be wrapped into
// a success envelope or an error for the ErrorHandler.
type Result struct {
	data    any
	message string
	status  int
	err     error
}

// Ok wraps data with the default success message and status 200.
func Ok(data any) Result {
	return Result{data: data, status: http.StatusOK}
}

// OkWithMessage wraps data with an explicit success message.
func OkWithMessage(data any, message string) Result {
	return Result{data: data, message: message, status: http.StatusOK}
}

// Created wraps data with status 201.
func Created(data any) Result {
	return Result{data: data, status: http.StatusCreated}
}

// Fail routes err to the ErrorHandler. A nil err is reported as an
// internal error.
func Fail(err error) Result {
	if err == nil {
		err = errInternal(nil)
	}
	return Result{err: err}
}

// Err returns the failure carried by r, if any.
func (r Result) Err() error {
	return r.err
}

// Data returns the success payload.
func (r Result) Data() any {
	return r.data
}

// Message returns the explicit success message, or "" for the default.
func (r Result) Message() string {
	return r.message
}

// Status returns the HTTP status of a successful result.
func (r Result) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
