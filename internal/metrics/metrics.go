// Package metrics exposes Prometheus collectors for the ingress service.
//
// A Registry owns its own prometheus.Registry so tests can create isolated
// instances. It implements pipeline.Observer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ingress"

// Registry holds every collector of the service.
type Registry struct {
	registry *prometheus.Registry

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	PipelineFailuresTotal *prometheus.CounterVec
	UploadedFilesTotal    prometheus.Counter
	UploadedBytes         prometheus.Histogram
}

// NewRegistry creates a registry with HTTP, pipeline, Go runtime and process
// collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r.initHTTPMetrics()
	r.initPipelineMetrics()
	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)

	r.HTTPResponseSizeBytes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method"},
	)
}

func (r *Registry) initPipelineMetrics() {
	r.PipelineFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_failures_total",
			Help:      "Failure envelopes sent, by error code",
		},
		[]string{"code", "status"},
	)

	r.UploadedFilesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_files_total",
			Help:      "Files staged to temporary storage",
		},
	)

	r.UploadedBytes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "uploaded_file_size_bytes",
			Help:      "Size of staged files in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		},
	)
}

// RecordHTTPRequest records a finished HTTP request.
func (r *Registry) RecordHTTPRequest(method string, status int, duration time.Duration, size int) {
	code := strconv.Itoa(status)
	r.HTTPRequestsTotal.WithLabelValues(method, code).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, code).Observe(duration.Seconds())
	r.HTTPResponseSizeBytes.WithLabelValues(method).Observe(float64(size))
}

func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// ObserveFailure counts a failure envelope.
func (r *Registry) ObserveFailure(code string, status int) {
	r.PipelineFailuresTotal.WithLabelValues(code, strconv.Itoa(status)).Inc()
}

// ObserveUpload counts a staged file.
func (r *Registry) ObserveUpload(size int64) {
	r.UploadedFilesTotal.Inc()
	r.UploadedBytes.Observe(float64(size))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
