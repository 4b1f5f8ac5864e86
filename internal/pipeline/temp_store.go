package pipeline

//go:generate mockgen -source=temp_store.go -destination=../mock/temp_store_mock.go -package=mock

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-ingress/internal/utils"
	"github.com/google/uuid"
)

const tempFilePrefix = "upload-"

// TempFile is a staged upload being written.
type TempFile interface {
	io.WriteCloser
	// Name returns the path of the file.
	Name() string
}

// TempStore creates and removes uniquely named temporary files.
type TempStore interface {
	Create() (TempFile, error)
	Remove(path string) error
}

// DiskTempStore stages files in a directory on local disk.
type DiskTempStore struct {
	dir string
	ids *utils.UUIDGenerator
}

// NewDiskTempStore creates dir if needed.
func NewDiskTempStore(dir string) (*DiskTempStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating upload directory %q: %w", dir, err)
	}
	return &DiskTempStore{dir: dir, ids: utils.NewUUIDGenerator()}, nil
}

// Dir returns the staging directory.
func (s *DiskTempStore) Dir() string {
	return s.dir
}

// Create opens a new file named upload-<uuid>. O_EXCL guarantees that two
// requests never share a file.
func (s *DiskTempStore) Create() (TempFile, error) {
	path := filepath.Join(s.dir, tempFilePrefix+s.ids.Generate())
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("error creating temp file: %w", err)
	}
	return f, nil
}

// Remove deletes path. A missing file is not an error.
func (s *DiskTempStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing temp file: %w", err)
	}
	return nil
}

// Sweep removes staged files last modified before cutoff and returns how
// many were removed. Files claimed by a consumer are expected to have been
// moved out of the staging directory by then.
func (s *DiskTempStore) Sweep(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("error reading upload directory: %w", err)
	}

	var (
		removed int
		errs    []error
	)
	for _, e := range entries {
		if e.IsDir() || !isStagedName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := s.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// isStagedName reports whether name was produced by Create, so a shared
// directory such as the OS temp dir is never swept of foreign files.
func isStagedName(name string) bool {
	id, ok := strings.CutPrefix(name, tempFilePrefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
