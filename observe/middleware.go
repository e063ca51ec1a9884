package observe

import (
	"context"
	"time"
)

// LookupFunc is the signature for an instrumented tier access. It reports
// whether the tier already held the entry.
type LookupFunc func(ctx context.Context, meta LookupMeta) (hit bool, err error)

// Middleware wraps tier lookups with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap returns a LookupFunc safe for concurrent use.
//   - Context: the span context is propagated to the wrapped function.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics CacheMetrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics CacheMetrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	metrics, err := NewCacheMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Logger returns the middleware's logger.
func (m *Middleware) Logger() Logger { return m.logger }

// Metrics returns the middleware's metrics recorder.
func (m *Middleware) Metrics() CacheMetrics { return m.metrics }

// Wrap wraps fn with tracing, metrics and logging.
func (m *Middleware) Wrap(fn LookupFunc) LookupFunc {
	return func(ctx context.Context, meta LookupMeta) (bool, error) {
		if meta.Tier == "" {
			return false, ErrMissingTier
		}

		ctx, span := m.tracer.StartLookup(ctx, meta)
		start := time.Now()

		hit, err := fn(ctx, meta)

		duration := time.Since(start)
		m.tracer.EndLookup(span, hit, err)
		m.metrics.RecordLookup(ctx, meta, hit, duration, err)

		fields := []Field{
			F("tier", meta.Tier),
			F("op", meta.op()),
			F("hit", hit),
			F("duration_ms", float64(duration)/float64(time.Millisecond)),
		}
		if meta.Key != "" {
			fields = append(fields, F("key", meta.Key))
		}
		if err != nil {
			m.logger.Error(ctx, "cache lookup failed", append(fields, F("error", err))...)
		} else {
			m.logger.Debug(ctx, "cache lookup", fields...)
		}
		return hit, err
	}
}

// Lookup runs fn once under the middleware.
func (m *Middleware) Lookup(ctx context.Context, meta LookupMeta, fn func(ctx context.Context) (bool, error)) (bool, error) {
	return m.Wrap(func(ctx context.Context, _ LookupMeta) (bool, error) {
		return fn(ctx)
	})(ctx, meta)
}
