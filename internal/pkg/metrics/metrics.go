package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests       *prometheus.CounterVec
	LatencyMS      *prometheus.HistogramVec
	ClaimOutcomes  *prometheus.CounterVec
	BlobOperations *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewServerMetrics registers on its own registry so construction is safe to
// repeat in tests.
func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fleamarket",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fleamarket",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	claims := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fleamarket",
		Name:      "checkout_claims_total",
		Help:      "Product claim attempts during checkout, by outcome.",
	}, []string{"outcome"})
	blobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fleamarket",
		Name:      "blob_operations_total",
		Help:      "Blob store operations, by kind and outcome.",
	}, []string{"op", "outcome"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requests, latency, claims, blobs,
	)

	return &ServerMetrics{
		Requests:       requests,
		LatencyMS:      latency,
		ClaimOutcomes:  claims,
		BlobOperations: blobs,
		registry:       registry,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
