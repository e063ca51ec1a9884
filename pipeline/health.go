package pipeline

import (
	"context"

	"github.com/jonwraymond/imagecache/health"
)

// RegisterHealth adds checks for every tier to agg: a probe of the encoded
// tier when it is remote or on disk, its circuit breaker, and heap use
// against the memory tiers' budget.
func (p *Pipeline[V]) RegisterHealth(agg *health.Aggregator) {
	switch s := p.encoded.(type) {
	case interface{ Ping(context.Context) error }:
		agg.Register("encoded.redis", health.NewStoreChecker("encoded.redis", s.Ping, health.StoreCheckerConfig{}))
	case interface{ Probe(context.Context) error }:
		agg.Register("encoded.file", health.NewStoreChecker("encoded.file", s.Probe, health.StoreCheckerConfig{}))
	}

	if cb := p.exec.CircuitBreaker(); cb != nil {
		agg.Register("encoded.circuit", health.NewCircuitChecker("encoded.circuit", cb))
	}

	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{
		MaxAlloc: p.memBudget,
		Tiers: map[string]func() int{
			"bitmap":        p.bitmap.Len,
			"postprocessed": p.post.Len,
		},
	}))
}
