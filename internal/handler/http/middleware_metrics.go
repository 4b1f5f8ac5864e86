package http

import (
	"net/http"
	"time"
)

func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.metrics.IncHTTPRequestsInFlight()
		defer h.metrics.DecHTTPRequestsInFlight()

		start := time.Now()
		mw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(mw, r)

		h.metrics.RecordHTTPRequest(r.Method, mw.Status(), time.Since(start), mw.size)
	})
}
