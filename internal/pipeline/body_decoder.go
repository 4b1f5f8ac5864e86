package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	mediaTypeJSON      = "application/json"
	mediaTypeForm      = "application/x-www-form-urlencoded"
	mediaTypeMultipart = "multipart/"
	headerContentType  = "Content-Type"
)

// BodyDecoder parses JSON and urlencoded bodies into Request.Body. Numbers
// are kept as json.Number and form values as strings, so nothing is lost in
// decoding. Multipart bodies are left to the UploadStager.
type BodyDecoder struct {
	maxBytes    int64
	readTimeout time.Duration
}

// NewBodyDecoder caps bodies at maxBytes and bounds reading with
// readTimeout. Zero disables the respective limit.
func NewBodyDecoder(maxBytes int64, readTimeout time.Duration) *BodyDecoder {
	return &BodyDecoder{maxBytes: maxBytes, readTimeout: readTimeout}
}

func (d *BodyDecoder) Name() string {
	return "body_decoder"
}

func (d *BodyDecoder) Process(r *Request) error {
	mt := mediaType(r.HTTP)
	switch {
	case mt == mediaTypeJSON:
		raw, err := d.read(r)
		if err != nil {
			return err
		}
		body, err := decodeJSON(raw)
		if err != nil {
			return errMalformedBody(err)
		}
		r.Body = body
	case mt == mediaTypeForm:
		raw, err := d.read(r)
		if err != nil {
			return err
		}
		body, err := decodeForm(raw)
		if err != nil {
			return errMalformedBody(err)
		}
		r.Body = body
	case strings.HasPrefix(mt, mediaTypeMultipart):
		// staged by UploadStager
	default:
		r.Body = map[string]any{}
	}
	return nil
}

func (d *BodyDecoder) read(r *Request) ([]byte, error) {
	reset := setReadDeadline(r, d.readTimeout)
	defer reset()

	body := r.HTTP.Body
	if body == nil || body == http.NoBody {
		return nil, nil
	}
	if d.maxBytes > 0 {
		body = http.MaxBytesReader(r.w, body, d.maxBytes)
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, readError(r.Context(), err, d.maxBytes)
	}
	r.RawBody = raw
	return raw, nil
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get(headerContentType)
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mt
}

func decodeJSON(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

func decodeForm(raw []byte) (map[string]any, error) {
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, err
	}
	body := map[string]any{}
	for _, key := range sortedKeys(values) {
		for _, v := range values[key] {
			setFormValue(body, key, v)
		}
	}
	return body, nil
}

// readError classifies a failed body read.
func readError(ctx context.Context, err error, limit int64) *Error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return errPayloadTooLarge(tooLarge.Limit, err)
	case errors.Is(err, errFileTooLarge):
		return errPayloadTooLarge(limit, err)
	case errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return errRequestTimeout(err)
	case ctx.Err() != nil:
		return errMalformedBody(errors.Join(err, ctx.Err()))
	default:
		return errMalformedBody(err)
	}
}

// setReadDeadline bounds body reads on the underlying connection. Writers
// without deadline support (e.g. httptest recorders) are left as is. The
// returned func clears the deadline.
func setReadDeadline(r *Request, timeout time.Duration) func() {
	if timeout <= 0 {
		return func() {}
	}
	rc := http.NewResponseController(r.w)
	if err := rc.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return func() {}
	}
	return func() {
		_ = rc.SetReadDeadline(time.Time{})
	}
}
