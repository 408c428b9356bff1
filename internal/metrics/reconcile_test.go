package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewReconcileMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReconcileMetricsWithRegistry(reg)

	if m == nil {
		t.Fatal("expected non-nil ReconcileMetrics")
	}

	m.RecordReconcile(2*time.Millisecond, 1, 0)

	expectedMetrics := []string{
		"mentora_reconcile_latency_seconds",
		"mentora_reconcile_removals_total",
	}
	for _, name := range expectedMetrics {
		if gatherFamily(t, reg, name) == nil {
			t.Errorf("expected metric %s to be registered", name)
		}
	}
}

func TestReconcileMetrics_RecordReconcile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReconcileMetricsWithRegistry(reg)

	m.RecordReconcile(time.Millisecond, 3, 0)
	m.RecordReconcile(time.Millisecond, 0, 2)
	m.RecordReconcile(time.Millisecond, 0, 0)

	if v := getCounterValue(t, reg, "mentora_reconcile_removals_total"); v != 3 {
		t.Errorf("expected 3 removals, got %v", v)
	}
	if v := getCounterValue(t, reg, "mentora_reconcile_dropped_total"); v != 2 {
		t.Errorf("expected 2 dropped, got %v", v)
	}
	if n := getHistogramCount(t, reg, "mentora_reconcile_latency_seconds"); n != 3 {
		t.Errorf("expected 3 latency observations, got %v", n)
	}
}
