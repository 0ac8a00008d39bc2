// Package metrics exposes Prometheus collectors for the recommendation path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_recommendation_duration_seconds",
			Help:    "Engine execution time per strategy in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"strategy"},
	)

	RecommendationResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_recommendation_results_total",
			Help: "Total number of recipes returned per strategy",
		},
		[]string{"strategy"},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"strategy", "kind"}, // "configuration", "not_ready", "internal"
	)

	SkippedCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_recommendation_skipped_candidates_total",
			Help: "Candidates dropped because their score could not be computed",
		},
		[]string{"strategy"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_recommendation_cache_requests_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// 0 closed, 1 half-open, 2 open
	CacheBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_recommendation_cache_breaker_state",
			Help: "State of the circuit breaker guarding the recommendation cache",
		},
	)

	CorpusSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_corpus_size",
			Help: "Number of recipes loaded into the corpus store",
		},
	)
)
