package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes reported in the errorCode field of failure envelopes.
const (
	CodeOriginDenied         = "ORIGIN_DENIED"
	CodeMalformedBody        = "MALFORMED_BODY"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeRequestTimeout       = "REQUEST_TIMEOUT"
	CodeUploadStorageFailure = "UPLOAD_STORAGE_FAILURE"
	CodeNotFound             = "NOT_FOUND"
	CodeInternalError        = "INTERNAL_ERROR"
)

const internalErrorMessage = "Internal server error"

var (
	// ErrNoResult is returned when a request reaches the envelope formatter
	// without a handler result.
	ErrNoResult = errors.New("no handler result to format")
	// ErrResponseStarted is reported when a stage fails after the response
	// header has been written.
	ErrResponseStarted = errors.New("response already started")
)

// Error is a classified pipeline failure. Status, Code and Message are sent
// to the client verbatim; Cause is only logged.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Cause   error
}

// NewError returns an Error without details or cause.
func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

func errOriginDenied(origin string) *Error {
	return NewError(http.StatusForbidden, CodeOriginDenied,
		fmt.Sprintf("Origin %q is not allowed", origin))
}

func errMalformedBody(cause error) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeMalformedBody,
		Message: "Request body could not be parsed",
		Cause:   cause,
	}
}

func errPayloadTooLarge(limit int64, cause error) *Error {
	return &Error{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    CodePayloadTooLarge,
		Message: fmt.Sprintf("Request payload exceeds the limit of %d bytes", limit),
		Cause:   cause,
	}
}

func errRequestTimeout(cause error) *Error {
	return &Error{
		Status:  http.StatusRequestTimeout,
		Code:    CodeRequestTimeout,
		Message: "Request body was not received in time",
		Cause:   cause,
	}
}

func errUploadStorage(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeUploadStorageFailure,
		Message: "Uploaded files could not be stored",
		Cause:   cause,
	}
}

func errRouteNotFound(method, path string) *Error {
	return NewError(http.StatusNotFound, CodeNotFound,
		fmt.Sprintf("Route not found: %s %s", method, path))
}

func errInternal(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: internalErrorMessage,
		Cause:   cause,
	}
}

// classify maps any error onto an *Error. Unrecognized errors become a
// generic internal error that keeps the original only as its cause. An
// *Error without a 4xx or 5xx status is reported as a 500.
func classify(err error) *Error {
	var pe *Error
	if !errors.As(err, &pe) {
		return errInternal(err)
	}
	if pe.Status >= http.StatusBadRequest && pe.Status <= 599 && pe.Code != "" {
		return pe
	}

	fixed := *pe
	if fixed.Status < http.StatusBadRequest || fixed.Status > 599 {
		fixed.Status = http.StatusInternalServerError
	}
	if fixed.Code == "" {
		fixed.Code = CodeInternalError
	}
	if fixed.Message == "" {
		fixed.Message = internalErrorMessage
	}
	return &fixed
}
