// SPDX-License-Identifier: MIT

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheLookups counts cache lookups by cache name and result (hit, miss).
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dlcq_engine_cache_lookups_total",
		Help: "Engine cache lookups by cache and result",
	}, []string{"cache", "result"})

	// termsPruned counts combined terms dropped by r-parity pruning.
	termsPruned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dlcq_engine_terms_pruned_total",
		Help: "Combined interaction terms dropped because their radial integral vanishes",
	}, []string{"kind"})

	// buildDuration tracks whole-matrix build latency.
	buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dlcq_engine_matrix_build_seconds",
		Help:    "Whole-basis matrix build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
	}, []string{"kind"})
)
