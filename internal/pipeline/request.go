package pipeline

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type requestCtxKey struct{}

// Request is the per-request state passed through every stage. It is never
// shared between goroutines.
type Request struct {
	// HTTP is the inbound request. Route handlers see the version carrying
	// chi URL parameters.
	HTTP *http.Request

	// RawBody holds the bytes read by the body decoder for JSON and
	// urlencoded payloads. For other content types the body stays unread on
	// HTTP.Body.
	RawBody []byte

	// Body is the decoded payload: a map for forms, multipart fields and
	// JSON objects, any JSON value otherwise.
	Body any

	// Files lists staged uploads in arrival order.
	Files []models.FileHandle

	// Cookies maps cookie names to values; the first occurrence wins.
	Cookies map[string]string

	w        *responseWriter
	result   *Result
	done     bool
	unrouted bool
	store    TempStore
	claimed  map[string]struct{}
	log      *logger.Logger
}

func newRequest(w http.ResponseWriter, r *http.Request, store TempStore, log *logger.Logger) *Request {
	req := &Request{
		w:       &responseWriter{ResponseWriter: w},
		store:   store,
		log:     log,
		Cookies: make(map[string]string),
	}
	for _, c := range r.Cookies() {
		if _, ok := req.Cookies[c.Name]; !ok {
			req.Cookies[c.Name] = c.Value
		}
	}
	req.HTTP = r.WithContext(context.WithValue(r.Context(), requestCtxKey{}, req))
	return req
}

// FromContext returns the pipeline request stored in ctx, if any.
func FromContext(ctx context.Context) (*Request, bool) {
	req, ok := ctx.Value(requestCtxKey{}).(*Request)
	return req, ok
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.HTTP.Context()
}

// Header returns the request headers.
func (r *Request) Header() http.Header {
	return r.HTTP.Header
}

// ResponseHeader returns the header map that will be sent with the response.
func (r *Request) ResponseHeader() http.Header {
	return r.w.Header()
}

// Param returns the chi URL parameter key of the matched route.
func (r *Request) Param(key string) string {
	return chi.URLParam(r.HTTP, key)
}

// Cookie returns the value of the named cookie.
func (r *Request) Cookie(name string) (string, bool) {
	v, ok := r.Cookies[name]
	return v, ok
}

// ClaimFile hands ownership of a staged file to the caller: it is no longer
// removed when the request finishes. It reports whether path belongs to
// this request.
func (r *Request) ClaimFile(path string) bool {
	for _, f := range r.Files {
		if f.TempPath == path {
			if r.claimed == nil {
				r.claimed = make(map[string]struct{})
			}
			r.claimed[path] = struct{}{}
			return true
		}
	}
	return false
}

// Logger returns the request-scoped logger attached by the outer middleware,
// or the pipeline logger when there is none.
func (r *Request) Logger() *logger.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return &logger.Logger{Logger: *l}
	}
	return r.log
}

// Started reports whether the response header has been written.
func (r *Request) Started() bool {
	return r.w.wroteHeader
}

// finish ends the chain after a stage has written the response itself.
func (r *Request) finish() {
	r.done = true
}

// RespondNoContent writes a 204 and ends the chain.
func (r *Request) RespondNoContent() {
	r.w.Header().Set("Content-Length", "0")
	r.w.WriteHeader(http.StatusNoContent)
	r.finish()
}

func (r *Request) setResult(res Result) {
	r.result = &res
}

// cleanup removes every staged file the handler did not claim.
func (r *Request) cleanup() {
	if r.store == nil {
		return
	}
	for _, f := range r.Files {
		if _, ok := r.claimed[f.TempPath]; ok {
			continue
		}
		if err := r.store.Remove(f.TempPath); err != nil {
			r.Logger().Warn().Err(err).Str("path", f.TempPath).Msg("failed to remove staged upload")
		}
	}
}

// responseWriter records whether the header was written so the error
// handler never writes twice.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.ResponseWriter.WriteHeader(statusCode)
	w.wroteHeader = true
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
