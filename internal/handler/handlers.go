package handler

import (
	"github.com/MKhiriev/go-ingress/internal/config"
	"github.com/MKhiriev/go-ingress/internal/handler/http"
	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/internal/metrics"
	"github.com/MKhiriev/go-ingress/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, metrics *metrics.Registry, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if services == nil || services.AppInfoService == nil {
		return nil, errNoServices
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, metrics, logger),
	}, nil
}
