package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	collector *Collector
	registry  *prometheus.Registry

	// Prometheus metrics
	targets      prometheus.Gauge
	annotations  prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec
}

// NewPrometheusExporter creates a new Prometheus exporter registering its
// metrics on registry.
func NewPrometheusExporter(collector *Collector, registry *prometheus.Registry) *PrometheusExporter {
	factory := promauto.With(registry)

	return &PrometheusExporter{
		collector: collector,
		registry:  registry,
		targets: factory.NewGauge(prometheus.GaugeOpts{
			Name: "annostore_targets_current",
			Help: "Current number of stored targets",
		}),
		annotations: factory.NewGauge(prometheus.GaugeOpts{
			Name: "annostore_annotations_current",
			Help: "Current number of stored annotations",
		}),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "annostore_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "annostore_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"route"},
		),
		httpErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "annostore_http_errors_total",
				Help: "Total number of HTTP responses with a 4xx or 5xx status",
			},
			[]string{"route", "code"},
		),
	}
}

// Update updates Gauge metrics from the collector.
// Counters are updated via middleware, so only update gauges here.
// This should be called periodically (e.g., every 10 seconds).
func (e *PrometheusExporter) Update(ctx context.Context) {
	storeMetrics := e.collector.GetStoreMetrics(ctx)
	e.targets.Set(float64(storeMetrics.Targets))
	e.annotations.Set(float64(storeMetrics.Annotations))
}

// RecordRequest records a request in Prometheus.
func (e *PrometheusExporter) RecordRequest(route, method string) {
	e.httpRequests.WithLabelValues(route, method).Inc()
}

// RecordDuration records a duration in Prometheus.
func (e *PrometheusExporter) RecordDuration(route string, durationSeconds float64) {
	e.httpDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordError records an error response in Prometheus.
func (e *PrometheusExporter) RecordError(route string, code int) {
	e.httpErrors.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
