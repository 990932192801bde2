package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_searches_total",
			Help: "Total number of discovery searches executed",
		},
	)

	candidatesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_candidates_rejected_total",
			Help: "Candidates rejected by the filter chain, by first failing predicate",
		},
		[]string{"reason"},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_compatibility_scores",
			Help:    "Distribution of compatibility scores for surfaced candidates",
			Buckets: prometheus.LinearBuckets(0, 50, 12),
		},
	)

	survivorCounts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_search_survivors",
			Help:    "Survivor counts per search before truncation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	presetUsesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_preset_uses_total",
			Help: "Total number of saved preset applications",
		},
	)

	profileCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_profile_cache_lookups_total",
			Help: "Profile cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func recordSearch(survivors int) {
	searchesTotal.Inc()
	survivorCounts.Observe(float64(survivors))
}

func recordCandidateRejected(reason RejectReason) {
	candidatesRejected.WithLabelValues(string(reason)).Inc()
}

func recordCompatibilityScore(score float64) {
	compatibilityScores.Observe(score)
}

func recordPresetUse() {
	presetUsesTotal.Inc()
}

func recordCacheLookup(hit bool) {
	if hit {
		profileCacheLookups.WithLabelValues("hit").Inc()
	} else {
		profileCacheLookups.WithLabelValues("miss").Inc()
	}
}
