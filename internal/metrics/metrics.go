// Package metrics exposes Prometheus instrumentation for the client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a dedicated registry, so embedding
// applications keep control over what they expose.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asyncaws",
			Name:      "requests_total",
			Help:      "Signed requests dispatched, by host and response code.",
		}, []string{"method", "host", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "asyncaws",
			Name:      "request_duration_seconds",
			Help:      "Round-trip duration of dispatched requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "host"}),
	}
}

// ObserveRequest implements transport.Observer. A zero status code counts as
// code "error" (the request failed before any response arrived).
func (m *Metrics) ObserveRequest(method, host string, statusCode int, elapsed time.Duration) {
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	m.requests.WithLabelValues(method, host, code).Inc()
	m.duration.WithLabelValues(method, host).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
