package service

import (
	"context"

	"github.com/MKhiriev/go-ingress/internal/config"
	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/models"
)

type appInfoService struct {
	info models.AppInfo

	logger *logger.Logger
}

// NewAppInfoService builds the service from the app config. An empty
// configured version falls back to the linker-injected build version.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Name == "" {
		return nil, ErrNameIsNotSpecified
	}

	version := cfg.Version
	if version == "" && build.BuildVersion() != models.NotAvailable {
		version = build.BuildVersion()
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	info := models.AppInfo{Name: cfg.Name, Version: version}
	info.Build.Version = build.BuildVersion()
	info.Build.Date = build.BuildDate()
	info.Build.Commit = build.BuildCommit()

	return &appInfoService{
		info:   info,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return s.info
}
