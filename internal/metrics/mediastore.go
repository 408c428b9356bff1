package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StatusSuccess is the label value for successful operations.
const StatusSuccess = "success"

// StatusFailure is the label value for failed operations.
const StatusFailure = "failure"

// Media store operation label values.
const (
	OpStoreList    = "list"
	OpStoreDestroy = "destroy"
)

// DefaultStoreLatencyBuckets are latency buckets for media store operations.
// Remote blob APIs typically answer in tens of milliseconds to seconds.
var DefaultStoreLatencyBuckets = []float64{
	0.005, // 5ms
	0.01,  // 10ms
	0.025, // 25ms
	0.05,  // 50ms
	0.1,   // 100ms
	0.25,  // 250ms
	0.5,   // 500ms
	1.0,   // 1s
	2.5,   // 2.5s
	5.0,   // 5s
	10.0,  // 10s
	30.0,  // 30s
}

// MediaStoreMetrics holds metrics related to media store operations.
type MediaStoreMetrics struct {
	// LatencyHistogram tracks store operation latencies broken down by
	// operation and status. Labels: operation (list, destroy), status.
	LatencyHistogram *prometheus.HistogramVec

	// RequestsTotal tracks total store operations by operation and status.
	RequestsTotal *prometheus.CounterVec

	// AssetsTotal tracks assets listed or destroyed by operation.
	AssetsTotal *prometheus.CounterVec
}

// NewMediaStoreMetrics creates and registers media store metrics.
// Uses promauto for automatic registration with the default registry.
func NewMediaStoreMetrics() *MediaStoreMetrics {
	return &MediaStoreMetrics{
		LatencyHistogram: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mentora",
				Subsystem: "mediastore",
				Name:      "operation_latency_seconds",
				Help:      "Media store operation latency in seconds, broken down by operation and status.",
				Buckets:   DefaultStoreLatencyBuckets,
			},
			[]string{"operation", "status"},
		),
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "mediastore",
				Name:      "operations_total",
				Help:      "Total number of media store operations, broken down by operation and status.",
			},
			[]string{"operation", "status"},
		),
		AssetsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mentora",
				Subsystem: "mediastore",
				Name:      "assets_total",
				Help:      "Total number of assets listed or destroyed, broken down by operation.",
			},
			[]string{"operation"},
		),
	}
}

// NewMediaStoreMetricsWithRegistry creates media store metrics registered
// with a custom registry. Useful for testing to avoid conflicts with the
// default registry.
func NewMediaStoreMetricsWithRegistry(reg prometheus.Registerer) *MediaStoreMetrics {
	latencyHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mentora",
			Subsystem: "mediastore",
			Name:      "operation_latency_seconds",
			Help:      "Media store operation latency in seconds, broken down by operation and status.",
			Buckets:   DefaultStoreLatencyBuckets,
		},
		[]string{"operation", "status"},
	)

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "mediastore",
			Name:      "operations_total",
			Help:      "Total number of media store operations, broken down by operation and status.",
		},
		[]string{"operation", "status"},
	)

	assetsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentora",
			Subsystem: "mediastore",
			Name:      "assets_total",
			Help:      "Total number of assets listed or destroyed, broken down by operation.",
		},
		[]string{"operation"},
	)

	reg.MustRegister(latencyHist)
	reg.MustRegister(requestsTotal)
	reg.MustRegister(assetsTotal)

	return &MediaStoreMetrics{
		LatencyHistogram: latencyHist,
		RequestsTotal:    requestsTotal,
		AssetsTotal:      assetsTotal,
	}
}

// recordOperation records a store operation latency and increments the
// request counter.
func (m *MediaStoreMetrics) recordOperation(operation string, durationSeconds float64, success bool, assets int) {
	status := StatusFailure
	if success {
		status = StatusSuccess
	}
	m.LatencyHistogram.WithLabelValues(operation, status).Observe(durationSeconds)
	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	if success && assets > 0 {
		m.AssetsTotal.WithLabelValues(operation).Add(float64(assets))
	}
}

// RecordList records a List operation and the number of assets returned.
func (m *MediaStoreMetrics) RecordList(durationSeconds float64, success bool, assets int) {
	m.recordOperation(OpStoreList, durationSeconds, success, assets)
}

// RecordDestroy records a Destroy or DestroyBatch operation and the number
// of assets removed.
func (m *MediaStoreMetrics) RecordDestroy(durationSeconds float64, success bool, assets int) {
	m.recordOperation(OpStoreDestroy, durationSeconds, success, assets)
}
