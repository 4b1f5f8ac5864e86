package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/rs/zerolog"
)

// withLogging writes one access entry per request. 5xx responses are logged
// at error level and 4xx at warn.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		status := lw.Status()
		accessEvent(logger.FromRequest(r), status).
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("origin", r.Header.Get("Origin")).
			Str("remote_addr", r.RemoteAddr).
			Int("status", status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

func accessEvent(log *logger.Logger, status int) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return log.Error()
	case status >= http.StatusBadRequest:
		return log.Warn()
	default:
		return log.Info()
	}
}
