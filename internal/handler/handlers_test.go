package handler

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-ingress/internal/config"
	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/internal/metrics"
	"github.com/MKhiriev/go-ingress/internal/service"
	"github.com/MKhiriev/go-ingress/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAppInfo struct{}

func (stubAppInfo) GetAppVersion(context.Context) string      { return "1.0.0" }
func (stubAppInfo) GetAppInfo(context.Context) models.AppInfo { return models.AppInfo{} }

// TestNewHandlers_Success verifies that the HTTP handler is created when
// services are available.
func TestNewHandlers_Success(t *testing.T) {
	services := &service.Services{AppInfoService: stubAppInfo{}}

	h, err := NewHandlers(services, config.StructuredConfig{}, metrics.NewRegistry(), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

// TestNewHandlers_WithoutMetrics verifies that metrics are optional.
func TestNewHandlers_WithoutMetrics(t *testing.T) {
	services := &service.Services{AppInfoService: stubAppInfo{}}

	h, err := NewHandlers(services, config.StructuredConfig{}, nil, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, h.HTTP)
}

// TestNewHandlers_NoServices verifies that missing services are rejected.
func TestNewHandlers_NoServices(t *testing.T) {
	tests := []struct {
		name     string
		services *service.Services
	}{
		{name: "nil services", services: nil},
		{name: "nil app info service", services: &service.Services{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(tt.services, config.StructuredConfig{}, nil, logger.Nop())

			require.ErrorIs(t, err, errNoServices)
			assert.Nil(t, h)
		})
	}
}

// TestNewHandlers_IndependentInstances verifies that two calls produce
// independent handlers.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	services := &service.Services{AppInfoService: stubAppInfo{}}

	h1, err1 := NewHandlers(services, config.StructuredConfig{}, nil, logger.Nop())
	h2, err2 := NewHandlers(services, config.StructuredConfig{}, nil, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
