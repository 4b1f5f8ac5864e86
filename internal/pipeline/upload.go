package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/MKhiriev/go-ingress/models"
)

var errFileTooLarge = errors.New("file exceeds size limit")

// UploadStager streams every file part of a multipart request into a
// TempStore and records a FileHandle for it. Non-file fields are merged
// into Request.Body. Staging is all-or-nothing: on any failure every file
// written for the request is removed and no handle is exposed.
type UploadStager struct {
	store         TempStore
	maxFileBytes  int64
	maxFieldBytes int64
	readTimeout   time.Duration
	observer      Observer
}

// NewUploadStager limits each file to maxFileBytes and all plain fields
// together to maxFieldBytes. Zero disables a limit.
func NewUploadStager(store TempStore, maxFileBytes, maxFieldBytes int64, readTimeout time.Duration) *UploadStager {
	return &UploadStager{
		store:         store,
		maxFileBytes:  maxFileBytes,
		maxFieldBytes: maxFieldBytes,
		readTimeout:   readTimeout,
		observer:      nopObserver{},
	}
}

// WithObserver reports staged file sizes to o.
func (s *UploadStager) WithObserver(o Observer) *UploadStager {
	if o != nil {
		s.observer = o
	}
	return s
}

func (s *UploadStager) Name() string {
	return "upload"
}

func (s *UploadStager) Process(r *Request) error {
	if !strings.HasPrefix(mediaType(r.HTTP), mediaTypeMultipart) {
		return nil
	}

	mr, err := r.HTTP.MultipartReader()
	if err != nil {
		return errMalformedBody(err)
	}

	reset := setReadDeadline(r, s.readTimeout)
	defer reset()

	body, _ := r.Body.(map[string]any)
	if body == nil {
		body = map[string]any{}
	}

	var staged []models.FileHandle
	fieldBudget := s.maxFieldBytes
	committed := false
	defer func() {
		if committed {
			return
		}
		for _, f := range staged {
			if err := s.store.Remove(f.TempPath); err != nil {
				r.Logger().Warn().Err(err).Str("path", f.TempPath).Msg("failed to remove partial upload")
			}
		}
	}()

	for {
		if err := r.Context().Err(); err != nil {
			return readError(r.Context(), err, s.maxFileBytes)
		}

		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return readError(r.Context(), err, s.maxFileBytes)
		}

		if part.FileName() == "" {
			value, err := s.readField(part, fieldBudget)
			_ = part.Close()
			if err != nil {
				return readError(r.Context(), err, s.maxFieldBytes)
			}
			fieldBudget -= int64(len(value))
			if name := part.FormName(); name != "" {
				setFormValue(body, name, value)
			}
			continue
		}

		fh, err := s.stage(r.Context(), part, func(path string) {
			staged = append(staged, models.FileHandle{TempPath: path})
		})
		_ = part.Close()
		if err != nil {
			return err
		}
		staged[len(staged)-1] = fh
	}

	committed = true
	for _, f := range staged {
		s.observer.ObserveUpload(f.Size)
	}
	r.Files = append(r.Files, staged...)
	r.Body = body
	return nil
}

// readField reads one plain field. remaining is what is left of the field
// budget for this request.
func (s *UploadStager) readField(part *multipart.Part, remaining int64) (string, error) {
	var src io.Reader = part
	if s.maxFieldBytes > 0 {
		src = io.LimitReader(part, remaining+1)
	}
	value, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	if s.maxFieldBytes > 0 && int64(len(value)) > remaining {
		return "", errFileTooLarge
	}
	return string(value), nil
}

// stage copies one file part into the store. created is called as soon as
// the temp file exists so the caller can remove it if a later step fails.
func (s *UploadStager) stage(ctx context.Context, part *multipart.Part, created func(path string)) (models.FileHandle, error) {
	f, err := s.store.Create()
	if err != nil {
		return models.FileHandle{}, errUploadStorage(err)
	}
	created(f.Name())

	src := &trackingReader{r: part}
	if s.maxFileBytes > 0 {
		src.r = io.LimitReader(part, s.maxFileBytes+1)
	}

	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	switch {
	case src.err != nil:
		return models.FileHandle{}, readError(ctx, src.err, s.maxFileBytes)
	case copyErr != nil:
		return models.FileHandle{}, errUploadStorage(copyErr)
	case closeErr != nil:
		return models.FileHandle{}, errUploadStorage(closeErr)
	case s.maxFileBytes > 0 && n > s.maxFileBytes:
		return models.FileHandle{}, errPayloadTooLarge(s.maxFileBytes,
			fmt.Errorf("%w: %s", errFileTooLarge, part.FileName()))
	}

	return models.FileHandle{
		FieldName:   part.FormName(),
		Filename:    part.FileName(),
		ContentType: part.Header.Get(headerContentType),
		Size:        n,
		TempPath:    f.Name(),
	}, nil
}

// trackingReader remembers read errors so they can be told apart from
// write errors after io.Copy.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}
