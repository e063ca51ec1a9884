package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricLookups        = "cache.lookups"
	MetricLookupErrors   = "cache.lookup.errors"
	MetricLookupDuration = "cache.lookup.duration_ms"
	MetricEvictions      = "cache.evictions"
)

// CacheMetrics records lookup and eviction metrics for cache tiers.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type CacheMetrics interface {
	// RecordLookup records one tier access with its outcome and duration.
	RecordLookup(ctx context.Context, meta LookupMeta, hit bool, duration time.Duration, err error)

	// RecordEviction records n entries removed from a tier.
	RecordEviction(ctx context.Context, tier string, n int)
}

type metricsImpl struct {
	lookups      metric.Int64Counter
	errors       metric.Int64Counter
	durationHist metric.Float64Histogram
	evictions    metric.Int64Counter
}

// NewCacheMetrics creates CacheMetrics instruments on the given meter.
func NewCacheMetrics(meter metric.Meter) (CacheMetrics, error) {
	lookups, err := meter.Int64Counter(
		MetricLookups,
		metric.WithDescription("Cache tier lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		MetricLookupErrors,
		metric.WithDescription("Cache tier lookups that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		MetricLookupDuration,
		metric.WithDescription("Cache tier lookup duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		MetricEvictions,
		metric.WithDescription("Entries evicted from cache tiers"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		lookups:      lookups,
		errors:       errs,
		durationHist: durationHist,
		evictions:    evictions,
	}, nil
}

func (m *metricsImpl) RecordLookup(ctx context.Context, meta LookupMeta, hit bool, duration time.Duration, err error) {
	result := "miss"
	if hit {
		result = "hit"
	}
	attrs := append(meta.attributes(), attribute.String("cache.result", result))
	opt := metric.WithAttributes(attrs...)

	m.lookups.Add(ctx, 1, opt)
	if err != nil {
		m.errors.Add(ctx, 1, metric.WithAttributes(meta.attributes()...))
	}
	m.durationHist.Record(ctx, float64(duration)/float64(time.Millisecond), metric.WithAttributes(meta.attributes()...))
}

func (m *metricsImpl) RecordEviction(ctx context.Context, tier string, n int) {
	if n <= 0 {
		return
	}
	m.evictions.Add(ctx, int64(n), metric.WithAttributes(attribute.String("cache.tier", tier)))
}

type noopMetrics struct{}

// NopMetrics returns CacheMetrics that record nothing.
func NopMetrics() CacheMetrics { return noopMetrics{} }

func (noopMetrics) RecordLookup(context.Context, LookupMeta, bool, time.Duration, error) {}
func (noopMetrics) RecordEviction(context.Context, string, int)                          {}
