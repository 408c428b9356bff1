package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcome label values.
const (
	SubmitAccepted = "accepted"
	SubmitDropped  = "dropped"
)

// DeletionMetrics holds metrics related to the deletion queue.
type DeletionMetrics struct {
	// SubmissionsTotal tracks job submissions by outcome (accepted, dropped).
	SubmissionsTotal *prometheus.CounterVec

	// DeleteLatency tracks per-job deletion latency by status.
	DeleteLatency *prometheus.HistogramVec

	// DeletesTotal tracks processed deletion jobs by status.
	DeletesTotal *prometheus.CounterVec

	// QueueDepth is the current number of buffered jobs.
	QueueDepth prometheus.Gauge
}

// NewDeletionMetrics creates and registers deletion queue metrics.
// Uses promauto for automatic registration with the default registry.
func NewDeletionMetrics() *DeletionMetrics {
	return &DeletionMetrics{
		SubmissionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "deletion",
				Name:      "submissions_total",
				Help:      "Deletion job submissions, broken down by outcome (accepted/dropped).",
			},
			[]string{"outcome"},
		),
		DeleteLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mentora",
				Subsystem: "deletion",
				Name:      "delete_latency_seconds",
				Help:      "Per-job deletion latency in seconds, broken down by status.",
				Buckets:   DefaultStoreLatencyBuckets,
			},
			[]string{"status"},
		),
		DeletesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "deletion",
				Name:      "deletes_total",
				Help:      "Processed deletion jobs, broken down by status.",
			},
			[]string{"status"},
		),
		QueueDepth: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mentora",
				Subsystem: "deletion",
				Name:      "queue_depth",
				Help:      "Current number of buffered deletion jobs.",
			},
		),
	}
}

// NewDeletionMetricsWithRegistry creates deletion queue metrics registered
// with a custom registry. Useful for testing to avoid conflicts with the
// default registry.
func NewDeletionMetricsWithRegistry(reg prometheus.Registerer) *DeletionMetrics {
	submissionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "deletion",
			Name:      "submissions_total",
			Help:      "Deletion job submissions, broken down by outcome (accepted/dropped).",
		},
		[]string{"outcome"},
	)

	deleteLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mentora",
			Subsystem: "deletion",
			Name:      "delete_latency_seconds",
			Help:      "Per-job deletion latency in seconds, broken down by status.",
			Buckets:   DefaultStoreLatencyBuckets,
		},
		[]string{"status"},
	)

	deletesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "deletion",
			Name:      "deletes_total",
			Help:      "Processed deletion jobs, broken down by status.",
		},
		[]string{"status"},
	)

	queueDepth := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mentora",
			Subsystem: "deletion",
			Name:      "queue_depth",
			Help:      "Current number of buffered deletion jobs.",
		},
	)

	reg.MustRegister(submissionsTotal)
	reg.MustRegister(deleteLatency)
	reg.MustRegister(deletesTotal)
	reg.MustRegister(queueDepth)

	return &DeletionMetrics{
		SubmissionsTotal: submissionsTotal,
		DeleteLatency:    deleteLatency,
		DeletesTotal:     deletesTotal,
		QueueDepth:       queueDepth,
	}
}

// RecordSubmit records one submission outcome.
func (m *DeletionMetrics) RecordSubmit(accepted bool) {
	outcome := SubmitDropped
	if accepted {
		outcome = SubmitAccepted
	}
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordDelete records one processed deletion job.
func (m *DeletionMetrics) RecordDelete(duration time.Duration, success bool) {
	status := StatusFailure
	if success {
		status = StatusSuccess
	}
	m.DeleteLatency.WithLabelValues(status).Observe(duration.Seconds())
	m.DeletesTotal.WithLabelValues(status).Inc()
}

// SetQueueDepth updates the buffered job gauge.
func (m *DeletionMetrics) SetQueueDepth(depth int) {
	m.QueueDepth.Set(float64(depth))
}
