package http

import (
	"net/http"

	"github.com/MKhiriev/go-ingress/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiPrefix = "/api/v1"

// Init builds the request pipeline and returns it wrapped in the outer
// middleware chain.
func (h *Handler) Init() (http.Handler, error) {
	store, err := h.UploadStore()
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{pipeline.WithTempStore(store)}
	if h.metrics != nil {
		opts = append(opts, pipeline.WithObserver(h.metrics))
	}
	p := pipeline.New(h.logger, h.stages(store), opts...)

	middlewares := chi.Middlewares{h.withTraceID, h.withLogging}
	if h.metrics != nil {
		middlewares = append(middlewares, h.withMetrics)
	}
	middlewares = append(middlewares, withGZip)

	handler := middlewares.Handler(p)
	if h.cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(handler, h.cfg.App.Name)
	}

	h.logger.Info().
		Strs("allowed_origins", h.cfg.CORS.AllowedOrigins).
		Str("upload_dir", store.Dir()).
		Msg("request pipeline initialized")

	return handler, nil
}

// stages returns the pipeline in execution order. Static files are served
// right after the header stages so they skip body handling.
func (h *Handler) stages(store pipeline.TempStore) []pipeline.Stage {
	stages := []pipeline.Stage{
		pipeline.NewOriginPolicy(pipeline.NewOriginAllowList(h.cfg.CORS.AllowedOrigins...)),
		pipeline.NewSecurityHeaders(),
	}

	if h.cfg.Static.Dir != "" && h.cfg.Static.URLPrefix != "" {
		stages = append(stages, pipeline.NewStaticFiles(h.cfg.Static.URLPrefix, h.cfg.Static.Dir))
	}

	uploads := pipeline.NewUploadStager(store, h.cfg.Uploads.MaxFileBytes, h.cfg.Uploads.MaxBodyBytes, h.cfg.Server.BodyReadTimeout)
	if h.metrics != nil {
		uploads = uploads.WithObserver(h.metrics)
	}

	return append(stages,
		pipeline.NewBodyDecoder(h.cfg.Uploads.MaxBodyBytes, h.cfg.Server.BodyReadTimeout),
		uploads,
		h.routes(),
		pipeline.NewEnvelopeFormatter(),
	)
}

func (h *Handler) routes() *pipeline.Router {
	router := pipeline.NewRouter()
	router.Get("/", h.getRoot)

	api := router.Prefix(apiPrefix)
	api.Get("/version", h.getServerVersion)

	return router
}
