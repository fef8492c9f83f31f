// Package metrics exposes Prometheus instrumentation for shadow retrieval and
// tier classification.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShadowRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xray_shadow_requests_total",
			Help: "Shadow lookups by outcome",
		},
		[]string{"outcome"}, // "computed", "not_computed", "invalid_argument", "subject_not_found", "unavailable", "cancelled"
	)

	ShadowRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "xray_shadow_request_duration_seconds",
			Help:    "Duration of shadow lookups including enrichment",
			Buckets: prometheus.DefBuckets,
		},
	)

	ShadowPlaceholders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "xray_shadow_placeholder_profiles_total",
			Help: "Candidate profiles replaced by the placeholder after a failed lookup",
		},
	)

	ShadowImports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xray_shadow_imports_total",
			Help: "Similarity job imports by result",
		},
		[]string{"result"}, // "ok", "error"
	)

	TierClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xray_tier_classifications_total",
			Help: "Percentile classifications served, by tier",
		},
		[]string{"tier"},
	)
)

func RecordShadowRequest(outcome string, duration time.Duration) {
	ShadowRequests.WithLabelValues(outcome).Inc()
	ShadowRequestDuration.Observe(duration.Seconds())
}
