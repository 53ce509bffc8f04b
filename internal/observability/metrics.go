package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	engineRequestsTotal    *prometheus.CounterVec
	engineLatencySeconds   *prometheus.HistogramVec
	engineErrorsTotal      *prometheus.CounterVec
	applicationTransitions *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the engagement engine.
func RegisterMetrics() {
	registerOnce.Do(func() {
		engineRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		engineLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bridge_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		engineErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		applicationTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_application_transitions_total",
			Help: "Total number of application lifecycle transitions, by target status.",
		}, []string{"transition"})

		prometheus.MustRegister(engineRequestsTotal, engineLatencySeconds, engineErrorsTotal, applicationTransitions)
	})
}

// EngineRequests exposes the counter for API requests.
func EngineRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return engineRequestsTotal
}

// EngineLatency exposes the latency histogram for API requests.
func EngineLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return engineLatencySeconds
}

// EngineErrors exposes the counter for error responses.
func EngineErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return engineErrorsTotal
}

// ApplicationTransitions exposes the per-edge lifecycle transition counter.
func ApplicationTransitions() *prometheus.CounterVec {
	RegisterMetrics()
	return applicationTransitions
}
