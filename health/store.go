package health

import (
	"context"
	"fmt"
	"time"
)

// StoreCheckerConfig configures a StoreChecker.
type StoreCheckerConfig struct {
	// SlowThreshold marks a successful probe slower than this as degraded.
	// Default: 250ms
	SlowThreshold time.Duration
}

// StoreChecker probes a cache tier.
type StoreChecker struct {
	name   string
	probe  func(context.Context) error
	config StoreCheckerConfig
}

// NewStoreChecker creates a checker that calls probe, such as
// cache.RedisStore.Ping or cache.FileStore.Probe.
func NewStoreChecker(name string, probe func(context.Context) error, config StoreCheckerConfig) *StoreChecker {
	if config.SlowThreshold <= 0 {
		config.SlowThreshold = 250 * time.Millisecond
	}
	return &StoreChecker{name: name, probe: probe, config: config}
}

func (s *StoreChecker) Name() string { return s.name }

// Check runs the probe once.
func (s *StoreChecker) Check(ctx context.Context) Result {
	start := time.Now()
	err := s.probe(ctx)
	elapsed := time.Since(start)
	details := map[string]any{"latency": elapsed.String()}

	switch {
	case err != nil:
		return Unhealthy(fmt.Sprintf("%s probe failed", s.name), err).WithDetails(details)
	case elapsed > s.config.SlowThreshold:
		return Degraded(fmt.Sprintf("%s probe slow", s.name)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("%s reachable", s.name)).WithDetails(details)
	}
}
