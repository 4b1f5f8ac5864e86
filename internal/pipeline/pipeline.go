package pipeline

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-ingress/internal/logger"
)

// Observer receives pipeline events. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveFailure(code string, status int)
	ObserveUpload(size int64)
}

type nopObserver struct{}

func (nopObserver) ObserveFailure(string, int) {}
func (nopObserver) ObserveUpload(int64)        {}

// Pipeline drives a request through its stages in order.
type Pipeline struct {
	stages       []Stage
	headers      []HeaderStage
	errorHandler *ErrorHandler
	store        TempStore
	logger       *logger.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver reports failures to o.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.errorHandler.observer = o
		}
	}
}

// WithTempStore sets the store used to remove unclaimed uploads when a
// request finishes. It should be the store given to the UploadStager.
func WithTempStore(s TempStore) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// New returns a pipeline running stages in the given order.
func New(log *logger.Logger, stages []Stage, opts ...Option) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	p := &Pipeline{
		stages:       stages,
		errorHandler: NewErrorHandler(log),
		logger:       log,
	}
	for _, s := range stages {
		if hs, ok := s.(HeaderStage); ok {
			p.headers = append(p.headers, hs)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := newRequest(w, r, p.store, p.logger)
	defer req.cleanup()

	if err := p.run(req); err != nil {
		if !req.Started() {
			for _, hs := range p.headers {
				hs.ApplyHeaders(req.w.Header())
			}
		}
		p.errorHandler.Handle(req, err)
	}
}

func (p *Pipeline) run(req *Request) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err = errInternal(fmt.Errorf("panic: %v", rec))
		}
	}()

	for _, s := range p.stages {
		if err := s.Process(req); err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
		if req.done {
			return nil
		}
	}
	return nil
}
