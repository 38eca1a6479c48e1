package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the HTTP metrics exposed at /metrics.
type Registry struct {
	Prometheus *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with request counter and latency
// histogram, labelled by route pattern, method and status code.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	reg.MustRegister(requestsTotal, requestDuration)

	return &Registry{
		Prometheus:          reg,
		HTTPRequestsTotal:   requestsTotal,
		HTTPRequestDuration: requestDuration,
	}
}
