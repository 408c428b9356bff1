package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReconcileMetrics holds metrics related to online reconciliation.
type ReconcileMetrics struct {
	// Latency tracks the wall time of one reconciliation.
	Latency prometheus.Histogram

	// RemovalsTotal tracks deletion jobs queued by reconciliations.
	RemovalsTotal prometheus.Counter

	// DroppedTotal tracks deletion jobs a full queue rejected.
	DroppedTotal prometheus.Counter
}

// NewReconcileMetrics creates and registers reconciliation metrics.
// Uses promauto for automatic registration with the default registry.
func NewReconcileMetrics() *ReconcileMetrics {
	return &ReconcileMetrics{
		Latency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "mentora",
				Subsystem: "reconcile",
				Name:      "latency_seconds",
				Help:      "Wall time of one reconciliation in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RemovalsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "reconcile",
				Name:      "removals_total",
				Help:      "Deletion jobs queued by reconciliations.",
			},
		),
		DroppedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "reconcile",
				Name:      "dropped_total",
				Help:      "Deletion jobs rejected by a full queue during reconciliation.",
			},
		),
	}
}

// NewReconcileMetricsWithRegistry creates reconciliation metrics registered
// with a custom registry. Useful for testing to avoid conflicts with the
// default registry.
func NewReconcileMetricsWithRegistry(reg prometheus.Registerer) *ReconcileMetrics {
	latency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mentora",
			Subsystem: "reconcile",
			Name:      "latency_seconds",
			Help:      "Wall time of one reconciliation in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	removalsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "reconcile",
			Name:      "removals_total",
			Help:      "Deletion jobs queued by reconciliations.",
		},
	)

	droppedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "reconcile",
			Name:      "dropped_total",
			Help:      "Deletion jobs rejected by a full queue during reconciliation.",
		},
	)

	reg.MustRegister(latency)
	reg.MustRegister(removalsTotal)
	reg.MustRegister(droppedTotal)

	return &ReconcileMetrics{
		Latency:       latency,
		RemovalsTotal: removalsTotal,
		DroppedTotal:  droppedTotal,
	}
}

// RecordReconcile records one reconciliation outcome.
func (m *ReconcileMetrics) RecordReconcile(duration time.Duration, removed, dropped int) {
	m.Latency.Observe(duration.Seconds())
	if removed > 0 {
		m.RemovalsTotal.Add(float64(removed))
	}
	if dropped > 0 {
		m.DroppedTotal.Add(float64(dropped))
	}
}
