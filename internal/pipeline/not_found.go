package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-ingress/models"
)

// NotFound writes the NOT_FOUND failure envelope when no route matches. It
// is a normal response, not an error: only a failed write reaches the
// ErrorHandler.
type NotFound struct{}

func NewNotFound() NotFound {
	return NotFound{}
}

func (NotFound) Name() string {
	return "not_found"
}

func (NotFound) Process(r *Request) error {
	nf := errRouteNotFound(r.HTTP.Method, r.HTTP.URL.Path)
	body, err := json.Marshal(models.NewFailureEnvelope(nf.Code, nf.Message, nil))
	if err != nil {
		return errInternal(fmt.Errorf("error encoding not found envelope: %w", err))
	}
	if err := writeJSON(r, nf.Status, body); err != nil {
		return err
	}
	r.finish()
	return nil
}
