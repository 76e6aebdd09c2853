package moviekeep

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moviekeep",
			Name:      "record_mutations_total",
			Help:      "Record mutations applied, by operation.",
		},
		[]string{"op"},
	)

	calendarFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "moviekeep",
			Name:      "calendar_failures_total",
			Help:      "Best-effort calendar side effects that did not complete.",
		},
	)
)
