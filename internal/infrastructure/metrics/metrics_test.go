package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistryRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegistry(registry)

	if m.EntriesCreated == nil || m.HTTPRequests == nil || m.InterestCalculations == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.EntriesCreated.Inc()
	m.InterestCalculations.WithLabelValues("simple").Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.EntriesCreated); got != 1 {
		t.Fatalf("expected entries created to be 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.InterestCalculations.WithLabelValues("simple")); got != 1 {
		t.Fatalf("expected simple calculations to be 1, got %v", got)
	}
}

func TestNewWithRegistryRejectsDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewWithRegistry(registry)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()

	NewWithRegistry(registry)
}
