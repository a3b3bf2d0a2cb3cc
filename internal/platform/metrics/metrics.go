package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal counts recommendation requests by outcome kind
	// (personalized, no_history, unavailable, no_candidates, similar, general).
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_recommendations_total",
			Help: "Recommendation requests by result kind",
		},
		[]string{"kind"},
	)

	HistoryFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_history_fetch_duration_seconds",
			Help:    "Latency of user history lookups",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "outcome"},
	)

	HistoryBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gallery_history_circuit_breaker_state",
			Help: "History client breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
