package processor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_jobs_processed_total",
			Help: "Postings processed, labeled by outcome (stored, duplicate, rejected, failed)",
		},
		[]string{"outcome"},
	)

	notifyFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobradar_notify_failures_total",
			Help: "Discord notifications that could not be delivered",
		},
	)

	notifySkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobradar_notify_skipped_total",
			Help: "Notifications skipped because the per-run cap was reached",
		},
	)
)
