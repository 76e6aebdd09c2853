package writequeue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "moviekeep",
			Subsystem: "writequeue",
			Name:      "submissions_total",
			Help:      "Writes accepted for execution.",
		},
	)

	coalescedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "moviekeep",
			Subsystem: "writequeue",
			Name:      "coalesced_total",
			Help:      "Pending writes superseded by a newer state before running.",
		},
	)

	failuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "moviekeep",
			Subsystem: "writequeue",
			Name:      "failures_total",
			Help:      "Writes that exhausted retries or failed irrecoverably.",
		},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "moviekeep",
			Subsystem: "writequeue",
			Name:      "run_duration_seconds",
			Help:      "Write execution latency.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
