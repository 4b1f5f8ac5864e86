package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-ingress/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	traceIDHeader   = "X-Trace-ID"
	maxTraceIDBytes = 128
)

// withTraceID tags the request with a trace id taken from X-Trace-ID or
// freshly generated. The id is echoed in the response, attached to the
// request logger and stored under utils.TraceIDCtxKey.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID(traceID) {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		ctx := context.WithValue(r.Context(), utils.TraceIDCtxKey, traceID)
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

// validTraceID accepts ids of up to maxTraceIDBytes letters, digits and
// "-_.:". Any other inbound id is replaced by a generated one.
func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDBytes {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}
