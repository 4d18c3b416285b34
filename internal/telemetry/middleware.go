package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// HTTP metrics
	requestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_count_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	activeRequestsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_active",
			Help: "Number of active HTTP requests",
		},
	)

	// Sampling metrics
	sampleDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stats_sample_duration_seconds",
			Help:    "Duration of a single metric sample in seconds",
			Buckets: []float64{.001, .01, .1, .5, 1, 1.5, 2, 5},
		},
		[]string{"category"},
	)

	sampleErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_sample_errors_total",
			Help: "Total number of failed metric samples by category",
		},
		[]string{"category"},
	)

	statsOutcomeCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_requests_total",
			Help: "Total number of system stats requests by outcome",
		},
		[]string{"outcome"},
	)
)

// otelSamples is set by InitTelemetry when OTLP export is enabled.
var otelSamples metric.Int64Counter

// MetricsHandler returns an http.Handler that serves the metrics endpoint
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware wraps an http.Handler and records metrics about the request
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		activeRequestsGauge.Inc()
		defer activeRequestsGauge.Dec()

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		labels := prometheus.Labels{
			"method": r.Method,
			"path":   routePath(r),
			"status": fmt.Sprintf("%d", sw.status),
		}

		requestDurationHistogram.With(labels).Observe(time.Since(start).Seconds())
		requestCounter.With(labels).Inc()
	})
}

// routePath prefers the route template so label cardinality stays bounded.
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

// statusWriter wraps http.ResponseWriter to capture the status code
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// RecordSample records the duration and outcome of one metric sample.
func RecordSample(ctx context.Context, category string, duration time.Duration, err error) {
	sampleDurationHistogram.WithLabelValues(category).Observe(duration.Seconds())
	status := "ok"
	if err != nil {
		status = "error"
		sampleErrorCounter.WithLabelValues(category).Inc()
	}
	if otelSamples != nil {
		otelSamples.Add(ctx, 1, metric.WithAttributes(
			attribute.String("category", category),
			attribute.String("status", status),
		))
	}
}

// RecordStatsOutcome counts a finished stats request by its terminal state.
func RecordStatsOutcome(outcome string) {
	statsOutcomeCounter.WithLabelValues(outcome).Inc()
}
