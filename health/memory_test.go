package health

import (
	"context"
	"runtime"
	"testing"
)

func fixedStats(heap, sys uint64) func(*runtime.MemStats) {
	return func(m *runtime.MemStats) {
		m.HeapAlloc = heap
		m.HeapSys = heap
		m.Sys = sys
	}
}

func TestMemoryChecker_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		heap uint64
		want Status
	}{
		{"normal", 100, StatusHealthy},
		{"warning", 850, StatusDegraded},
		{"critical", 990, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMemoryChecker(MemoryCheckerConfig{MaxAlloc: 1000})
			c.read = fixedStats(tt.heap, 0)
			if got := c.Check(context.Background()); got.Status != tt.want {
				t.Errorf("Check().Status = %v, want %v (%s)", got.Status, tt.want, got.Message)
			}
		})
	}
}

func TestMemoryChecker_TierEntries(t *testing.T) {
	c := NewMemoryChecker(MemoryCheckerConfig{
		MaxAlloc: 1000,
		Tiers: map[string]func() int{
			"bitmap":        func() int { return 12 },
			"postprocessed": func() int { return 3 },
		},
	})
	c.read = fixedStats(10, 0)

	got := c.Check(context.Background())
	if got.Details["entries.bitmap"] != 12 {
		t.Errorf("entries.bitmap = %v, want 12", got.Details["entries.bitmap"])
	}
	if got.Details["entries.postprocessed"] != 3 {
		t.Errorf("entries.postprocessed = %v, want 3", got.Details["entries.postprocessed"])
	}
}

func TestMemoryChecker_Defaults(t *testing.T) {
	c := NewMemoryChecker(MemoryCheckerConfig{WarningThreshold: 0.9, CriticalThreshold: 0.5})
	if c.config.CriticalThreshold < c.config.WarningThreshold {
		t.Errorf("critical %v below warning %v", c.config.CriticalThreshold, c.config.WarningThreshold)
	}
	if c.Name() != "memory" {
		t.Errorf("Name() = %q, want memory", c.Name())
	}
}

func TestMemoryChecker_UsesSysWithoutBudget(t *testing.T) {
	c := NewMemoryChecker(MemoryCheckerConfig{})
	c.read = fixedStats(50, 100)
	got := c.Check(context.Background())
	if got.Details["budget"] != uint64(100) {
		t.Errorf("budget = %v, want 100", got.Details["budget"])
	}
}

func TestMemoryChecker_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := NewMemoryChecker(MemoryCheckerConfig{}).Check(ctx); got.Status != StatusUnhealthy {
		t.Errorf("Check().Status = %v, want %v", got.Status, StatusUnhealthy)
	}
}
