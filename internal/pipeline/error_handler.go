package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/models"
)

const fallbackBody = "Internal Server Error\n"

// ErrorHandler turns any error into a failure envelope. Classified *Error
// values are written verbatim, everything else as a generic 500. It never
// panics and never writes to a response that has already started.
type ErrorHandler struct {
	logger   *logger.Logger
	observer Observer
	marshal  func(any) ([]byte, error)
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger:   log,
		observer: nopObserver{},
		marshal:  json.Marshal,
	}
}

// Handle writes the failure response for err.
func (h *ErrorHandler) Handle(r *Request, err error) {
	log := r.Logger()
	if log == nil {
		log = h.logger
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Err(err).Msg("error handler failed")
			h.fallback(r)
		}
	}()

	pe := classify(err)
	h.observer.ObserveFailure(pe.Code, pe.Status)

	event := log.Warn()
	if pe.Status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("code", pe.Code).
		Int("status", pe.Status).
		Str("method", r.HTTP.Method).
		Str("path", r.HTTP.URL.Path).
		Msg("request failed")

	if r.Started() {
		log.Error().Err(ErrResponseStarted).Str("code", pe.Code).Msg("failure envelope not sent")
		return
	}

	body, mErr := h.marshal(models.NewFailureEnvelope(pe.Code, pe.Message, pe.Details))
	if mErr != nil {
		log.Error().Err(fmt.Errorf("error encoding failure envelope: %w", mErr)).Msg("sending fallback response")
		h.fallback(r)
		return
	}

	if wErr := writeJSON(r, pe.Status, body); wErr != nil && !errors.Is(wErr, ErrResponseStarted) {
		log.Error().Err(wErr).Msg("failure envelope not sent")
	}
}

// fallback writes a minimal plaintext 500 if nothing has been sent yet.
func (h *ErrorHandler) fallback(r *Request) {
	if r.Started() {
		return
	}
	defer func() {
		_ = recover()
	}()
	hdr := r.w.Header()
	hdr.Set(headerContentType, "text/plain; charset=utf-8")
	hdr.Set("X-Content-Type-Options", "nosniff")
	hdr.Del("Content-Length")
	r.w.WriteHeader(http.StatusInternalServerError)
	_, _ = r.w.Write([]byte(fallbackBody))
}
