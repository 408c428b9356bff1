package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RegistryMetrics holds metrics related to the orphan candidate registry.
type RegistryMetrics struct {
	// CandidatesByStatus tracks the registry backlog per review state.
	CandidatesByStatus *prometheus.GaugeVec

	// CandidatesRecorded tracks newly inserted candidates.
	CandidatesRecorded prometheus.Counter
}

// NewRegistryMetrics creates and registers registry metrics.
// Uses promauto for automatic registration with the default registry.
func NewRegistryMetrics() *RegistryMetrics {
	return &RegistryMetrics{
		CandidatesByStatus: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "mentora",
				Subsystem: "registry",
				Name:      "candidates",
				Help:      "Orphan candidates in the registry, broken down by review status.",
			},
			[]string{"status"},
		),
		CandidatesRecorded: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "registry",
				Name:      "candidates_recorded_total",
				Help:      "Orphan candidates newly recorded by sweeps.",
			},
		),
	}
}

// NewRegistryMetricsWithRegistry creates registry metrics registered with a
// custom registry. Useful for testing to avoid conflicts with the default
// registry.
func NewRegistryMetricsWithRegistry(reg prometheus.Registerer) *RegistryMetrics {
	candidatesByStatus := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "mentora",
			Subsystem: "registry",
			Name:      "candidates",
			Help:      "Orphan candidates in the registry, broken down by review status.",
		},
		[]string{"status"},
	)

	candidatesRecorded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "registry",
			Name:      "candidates_recorded_total",
			Help:      "Orphan candidates newly recorded by sweeps.",
		},
	)

	reg.MustRegister(candidatesByStatus)
	reg.MustRegister(candidatesRecorded)

	return &RegistryMetrics{
		CandidatesByStatus: candidatesByStatus,
		CandidatesRecorded: candidatesRecorded,
	}
}

// RecordBacklog updates the per-status backlog gauges.
func (m *RegistryMetrics) RecordBacklog(counts map[string]int64) {
	for status, n := range counts {
		m.CandidatesByStatus.WithLabelValues(status).Set(float64(n))
	}
}

// RecordInserted adds newly recorded candidates.
func (m *RegistryMetrics) RecordInserted(count int64) {
	if count > 0 {
		m.CandidatesRecorded.Add(float64(count))
	}
}
