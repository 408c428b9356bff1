package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sweep phase label values.
const (
	PhaseMark    = "mark"
	PhaseScan    = "scan"
	PhaseDiff    = "diff"
	PhasePersist = "persist"
)

// SweepMetrics holds metrics related to offline sweep runs.
type SweepMetrics struct {
	// PhaseDuration tracks the wall time of each sweep phase.
	// Labels: phase (mark, scan, diff, persist).
	PhaseDuration *prometheus.HistogramVec

	// DocumentsScanned tracks documents read during the mark phase,
	// broken down by schema.
	DocumentsScanned *prometheus.CounterVec

	// AssetsScanned tracks store assets listed during the scan phase,
	// broken down by kind.
	AssetsScanned *prometheus.CounterVec

	// OrphansFound is the orphan candidate count of the last completed run.
	OrphansFound prometheus.Gauge

	// OrphanBytes is the total byte size of the last run's orphan candidates.
	OrphanBytes prometheus.Gauge

	// RunsTotal tracks completed sweep runs by status.
	RunsTotal *prometheus.CounterVec

	// LastRunTimestamp is the unix time of the last completed run.
	LastRunTimestamp prometheus.Gauge
}

// NewSweepMetrics creates and registers sweep metrics.
// Uses promauto for automatic registration with the default registry.
func NewSweepMetrics() *SweepMetrics {
	return &SweepMetrics{
		PhaseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mentora",
				Subsystem: "sweep",
				Name:      "phase_duration_seconds",
				Help:      "Wall time of each sweep phase in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"phase"},
		),
		DocumentsScanned: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "sweep",
				Name:      "documents_scanned_total",
				Help:      "Documents read during the mark phase, broken down by schema.",
			},
			[]string{"schema"},
		),
		AssetsScanned: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "sweep",
				Name:      "assets_scanned_total",
				Help:      "Store assets listed during the scan phase, broken down by kind.",
			},
			[]string{"kind"},
		),
		OrphansFound: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mentora",
				Subsystem: "sweep",
				Name:      "orphans_found",
				Help:      "Orphan candidates found by the last completed sweep run.",
			},
		),
		OrphanBytes: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mentora",
				Subsystem: "sweep",
				Name:      "orphan_bytes",
				Help:      "Total byte size of the last run's orphan candidates.",
			},
		),
		RunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "sweep",
				Name:      "runs_total",
				Help:      "Completed sweep runs, broken down by status.",
			},
			[]string{"status"},
		),
		LastRunTimestamp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mentora",
				Subsystem: "sweep",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix timestamp of the last completed sweep run.",
			},
		),
	}
}

// NewSweepMetricsWithRegistry creates sweep metrics registered with a custom
// registry. Useful for testing to avoid conflicts with the default registry.
func NewSweepMetricsWithRegistry(reg prometheus.Registerer) *SweepMetrics {
	phaseDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mentora",
			Subsystem: "sweep",
			Name:      "phase_duration_seconds",
			Help:      "Wall time of each sweep phase in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{"phase"},
	)

	documentsScanned := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "sweep",
			Name:      "documents_scanned_total",
			Help:      "Documents read during the mark phase, broken down by schema.",
		},
		[]string{"schema"},
	)

	assetsScanned := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "sweep",
			Name:      "assets_scanned_total",
			Help:      "Store assets listed during the scan phase, broken down by kind.",
		},
		[]string{"kind"},
	)

	orphansFound := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mentora",
			Subsystem: "sweep",
			Name:      "orphans_found",
			Help:      "Orphan candidates found by the last completed sweep run.",
		},
	)

	orphanBytes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mentora",
			Subsystem: "sweep",
			Name:      "orphan_bytes",
			Help:      "Total byte size of the last run's orphan candidates.",
		},
	)

	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "sweep",
			Name:      "runs_total",
			Help:      "Completed sweep runs, broken down by status.",
		},
		[]string{"status"},
	)

	lastRunTimestamp := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mentora",
			Subsystem: "sweep",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix timestamp of the last completed sweep run.",
		},
	)

	reg.MustRegister(phaseDuration)
	reg.MustRegister(documentsScanned)
	reg.MustRegister(assetsScanned)
	reg.MustRegister(orphansFound)
	reg.MustRegister(orphanBytes)
	reg.MustRegister(runsTotal)
	reg.MustRegister(lastRunTimestamp)

	return &SweepMetrics{
		PhaseDuration:    phaseDuration,
		DocumentsScanned: documentsScanned,
		AssetsScanned:    assetsScanned,
		OrphansFound:     orphansFound,
		OrphanBytes:      orphanBytes,
		RunsTotal:        runsTotal,
		LastRunTimestamp: lastRunTimestamp,
	}
}

// RecordPhase records the wall time of one sweep phase.
func (m *SweepMetrics) RecordPhase(phase string, duration time.Duration) {
	m.PhaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordDocuments adds to the mark-phase document counter for a schema.
func (m *SweepMetrics) RecordDocuments(schema string, count int) {
	m.DocumentsScanned.WithLabelValues(schema).Add(float64(count))
}

// RecordAssets adds to the scan-phase asset counter for a kind.
func (m *SweepMetrics) RecordAssets(kind string, count int) {
	m.AssetsScanned.WithLabelValues(kind).Add(float64(count))
}

// RecordRun records the outcome of a completed sweep run.
func (m *SweepMetrics) RecordRun(success bool, orphans int, orphanBytes int64) {
	status := StatusFailure
	if success {
		status = StatusSuccess
	}
	m.RunsTotal.WithLabelValues(status).Inc()
	if success {
		m.OrphansFound.Set(float64(orphans))
		m.OrphanBytes.Set(float64(orphanBytes))
		m.LastRunTimestamp.SetToCurrentTime()
	}
}
