package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records timings and outcomes for the local HTTP surface.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	backend  *prometheus.CounterVec
}

// NewRequestMetrics registers the request metrics on the provided registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled requests by route and status class.",
	}, []string{"route", "status"})
	backend := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_calls_total",
		Help: "Calls to the remote storefront API by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, requests, backend)
	return &RequestMetrics{
		duration: duration,
		requests: requests,
		backend:  backend,
	}
}

// ObserveRequest records a handled local request.
func (m *RequestMetrics) ObserveRequest(route, status string, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(route)).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(normalizeLabel(route), normalizeLabel(status)).Inc()
}

// IncBackendCall records the outcome of one remote API call.
func (m *RequestMetrics) IncBackendCall(operation, outcome string) {
	if m == nil || m.backend == nil {
		return
	}
	m.backend.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
