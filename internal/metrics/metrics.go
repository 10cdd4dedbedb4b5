// Package metrics provides Prometheus metrics for the weather service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LookupsTotal counts weather lookups by mode (city, coords) and outcome.
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weatherapp",
			Name:      "lookups_total",
			Help:      "Total number of weather lookups",
		},
		[]string{"mode", "status"},
	)

	// UpstreamDuration measures calls to the upstream weather API.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "weatherapp",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of upstream weather API calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// TogglesTotal counts temperature unit toggles by target unit.
	TogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weatherapp",
			Name:      "toggles_total",
			Help:      "Total number of temperature unit toggles",
		},
		[]string{"to"},
	)

	// SessionsActive tracks sessions held in memory.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "weatherapp",
			Name:      "sessions_active",
			Help:      "Number of sessions held in memory",
		},
	)

	// StaleResultsTotal counts lookup results dropped because a newer lookup
	// had started on the same session.
	StaleResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "weatherapp",
			Name:      "stale_results_total",
			Help:      "Total number of superseded lookup results",
		},
	)
)

// RecordLookup records the outcome of a lookup.
func RecordLookup(mode string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	LookupsTotal.WithLabelValues(mode, status).Inc()
}

// RecordUpstream records the duration of an upstream call.
func RecordUpstream(endpoint string, seconds float64) {
	UpstreamDuration.WithLabelValues(endpoint).Observe(seconds)
}
