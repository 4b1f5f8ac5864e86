package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-ingress/internal/config"
	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/internal/service"
	"github.com/MKhiriev/go-ingress/models"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https://srijanfabs.com"

// stubAppInfoService implements service.AppInfoService for testing.
type stubAppInfoService struct {
	info models.AppInfo
}

func (s *stubAppInfoService) GetAppVersion(_ context.Context) string {
	return s.info.Version
}

func (s *stubAppInfoService) GetAppInfo(_ context.Context) models.AppInfo {
	return s.info
}

func newStubServices(version string) *service.Services {
	info := models.AppInfo{Name: "go-ingress", Version: version}
	info.Build.Version = "v" + version
	info.Build.Date = "2026-10-19"
	info.Build.Commit = "deadbeef"
	return &service.Services{AppInfoService: &stubAppInfoService{info: info}}
}

// testConfig returns a configuration with a private temp dir and a static
// directory containing logo.png.
func testConfig(t *testing.T) config.StructuredConfig {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "logo.png"), []byte("png-bytes"), 0o600))

	return config.StructuredConfig{
		App: config.App{Name: "go-ingress", Version: "1.0.0"},
		CORS: config.CORS{
			AllowedOrigins: []string{testOrigin},
		},
		Uploads: config.Uploads{
			TempDir:      filepath.Join(t.TempDir(), "uploads"),
			MaxFileBytes: 1 << 20,
			MaxBodyBytes: 1 << 10,
		},
		Static: config.Static{
			URLPrefix: "/images/products",
			Dir:       staticDir,
		},
	}
}

func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"errorCode"`
	Data      json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	return env
}
