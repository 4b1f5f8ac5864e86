package http

import (
	"github.com/MKhiriev/go-ingress/internal/pipeline"
)

const rootMessage = "Welcome to the API root"

// versionResponse is the data of GET /api/v1/version.
type versionResponse struct {
	Version string `json:"version"`
}

func (h *Handler) getRoot(r *pipeline.Request) pipeline.Result {
	info := h.services.AppInfoService.GetAppInfo(r.Context())
	return pipeline.OkWithMessage(info, rootMessage)
}

func (h *Handler) getServerVersion(r *pipeline.Request) pipeline.Result {
	version := h.services.AppInfoService.GetAppVersion(r.Context())
	return pipeline.Ok(versionResponse{Version: version})
}
