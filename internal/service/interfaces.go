package service

import (
	"context"

	"github.com/MKhiriev/go-ingress/models"
)

// AppInfoService reports the identity of the running service.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}
