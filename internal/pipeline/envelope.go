package pipeline

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-ingress/internal/utils"
	"github.com/MKhiriev/go-ingress/models"
)

// EnvelopeFormatter wraps the handler result stored by the Router into a
// success envelope and writes it.
type EnvelopeFormatter struct{}

func NewEnvelopeFormatter() EnvelopeFormatter {
	return EnvelopeFormatter{}
}

func (EnvelopeFormatter) Name() string {
	return "envelope"
}

func (f EnvelopeFormatter) Process(r *Request) error {
	if r.result == nil {
		return errInternal(ErrNoResult)
	}
	body, err := f.Format(*r.result)
	if err != nil {
		return errInternal(err)
	}
	if err := writeJSON(r, r.result.Status(), body); err != nil {
		return err
	}
	r.finish()
	return nil
}

// Format serializes res as a success envelope. The same result always
// yields the same bytes.
func (EnvelopeFormatter) Format(res Result) ([]byte, error) {
	body, err := json.Marshal(models.NewSuccessEnvelope(res.Data(), res.Message()))
	if err != nil {
		return nil, fmt.Errorf("error encoding success envelope: %w", err)
	}
	return body, nil
}

func writeJSON(r *Request, status int, body []byte) error {
	if r.Started() {
		return ErrResponseStarted
	}
	h := r.w.Header()
	h.Set(headerContentType, utils.JSONContentType)
	h.Del("Content-Length")
	r.w.WriteHeader(status)
	if r.HTTP.Method == http.MethodHead {
		return nil
	}
	if _, err := r.w.Write(body); err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}
	return nil
}
