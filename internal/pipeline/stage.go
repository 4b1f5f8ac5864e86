package pipeline

import "net/http"

// Stage is one step of the ingress pipeline. A stage either returns an error,
// which diverts the request to the ErrorHandler, or lets the driver continue
// with the next stage. A stage that writes the response itself ends the
// chain through the Request.
type Stage interface {
	Name() string
	Process(r *Request) error
}

// HeaderStage is a stage whose only effect is setting response headers. The
// driver applies every HeaderStage before the ErrorHandler writes, so these
// headers are present on error responses even when an earlier stage failed.
type HeaderStage interface {
	Stage
	ApplyHeaders(h http.Header)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(r *Request) error
}

func (s StageFunc) Name() string {
	return s.StageName
}

func (s StageFunc) Process(r *Request) error {
	return s.Fn(r)
}
