package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistryMetrics_RecordBacklog(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistryMetricsWithRegistry(reg)

	m.RecordBacklog(map[string]int64{
		"pending_review":  10,
		"deletion_queued": 2,
		"error":           1,
	})

	family := gatherFamily(t, reg, "mentora_registry_candidates")
	if family == nil {
		t.Fatal("expected mentora_registry_candidates to be registered")
	}

	want := map[string]float64{
		"pending_review":  10,
		"deletion_queued": 2,
		"error":           1,
	}
	for _, metric := range family.GetMetric() {
		for _, lp := range metric.GetLabel() {
			if lp.GetName() != "status" {
				continue
			}
			if v, ok := want[lp.GetValue()]; ok && metric.GetGauge().GetValue() != v {
				t.Errorf("status %s: expected %v, got %v", lp.GetValue(), v, metric.GetGauge().GetValue())
			}
		}
	}
}

func TestRegistryMetrics_RecordInserted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistryMetricsWithRegistry(reg)

	m.RecordInserted(5)
	m.RecordInserted(0)
	m.RecordInserted(3)

	if v := getCounterValue(t, reg, "mentora_registry_candidates_recorded_total"); v != 8 {
		t.Errorf("expected 8 recorded candidates, got %v", v)
	}
}
