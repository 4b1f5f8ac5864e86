package pipeline

import (
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// StaticFiles serves GET and HEAD requests under a URL prefix straight from
// a directory. Matching requests skip every later stage; a missing file or a
// directory gets the NOT_FOUND envelope. Directory listings are never served.
type StaticFiles struct {
	prefix   string
	fsys     fs.FS
	notFound Stage
}

// NewStaticFiles maps urlPrefix onto dir.
func NewStaticFiles(urlPrefix, dir string) *StaticFiles {
	return NewStaticFS(urlPrefix, os.DirFS(dir))
}

// NewStaticFS maps urlPrefix onto fsys.
func NewStaticFS(urlPrefix string, fsys fs.FS) *StaticFiles {
	return &StaticFiles{
		prefix:   strings.TrimSuffix(urlPrefix, "/"),
		fsys:     fsys,
		notFound: NewNotFound(),
	}
}

func (s *StaticFiles) Name() string {
	return "static"
}

func (s *StaticFiles) Process(r *Request) error {
	if r.HTTP.Method != http.MethodGet && r.HTTP.Method != http.MethodHead {
		return nil
	}
	rel, ok := strings.CutPrefix(r.HTTP.URL.Path, s.prefix)
	if !ok || !strings.HasPrefix(rel, "/") {
		return nil
	}

	name := strings.TrimPrefix(path.Clean(rel), "/")
	if name == "" || name == "." || !fs.ValidPath(name) {
		return s.notFound.Process(r)
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return s.notFound.Process(r)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return s.notFound.Process(r)
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		return errInternal(fs.ErrInvalid)
	}

	http.ServeContent(r.w, r.HTTP, info.Name(), info.ModTime(), content)
	r.finish()
	return nil
}
