// Package observability holds the Prometheus metrics and OpenTelemetry
// instrumentation shared by the HTTP and storage layers.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes recorded on EventLookups.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Storage metrics
	EventLookups        *prometheus.CounterVec
	EventLookupDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics on registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passin_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "passin_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		EventLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passin_event_lookups_total",
				Help: "Total number of event lookups by outcome",
			},
			[]string{"outcome"},
		),
		EventLookupDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "passin_event_lookup_duration_seconds",
				Help:    "Duration of event lookups against storage",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
		),
	}
}
