package http

import (
	"fmt"

	"github.com/MKhiriev/go-ingress/internal/config"
	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/internal/metrics"
	"github.com/MKhiriev/go-ingress/internal/pipeline"
	"github.com/MKhiriev/go-ingress/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.StructuredConfig
	metrics  *metrics.Registry
	store    *pipeline.DiskTempStore

	logger *logger.Logger
}

// NewHandler creates the HTTP handler. metrics may be nil, in which case no
// request or pipeline metrics are recorded.
func NewHandler(services *service.Services, cfg config.StructuredConfig, metrics *metrics.Registry, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// UploadStore returns the staging store used by the pipeline, opening the
// upload directory on first use. Background cleanup must use the same store.
func (h *Handler) UploadStore() (*pipeline.DiskTempStore, error) {
	if h.store != nil {
		return h.store, nil
	}
	store, err := pipeline.NewDiskTempStore(h.cfg.Uploads.TempDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTempDirUnavailable, err)
	}
	h.store = store
	return store, nil
}
