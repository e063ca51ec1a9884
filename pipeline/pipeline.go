package pipeline

import (
	"errors"
	"io"
	"time"

	"github.com/jonwraymond/imagecache/cache"
	"github.com/jonwraymond/imagecache/keypolicy"
	"github.com/jonwraymond/imagecache/observe"
	"github.com/jonwraymond/imagecache/request"
	"github.com/jonwraymond/imagecache/resilience"
)

// Pipeline is the three-tier image cache. V is the decoded image type.
// A Pipeline is safe for concurrent use.
type Pipeline[V any] struct {
	factory  keypolicy.Factory
	registry *request.Registry
	mw       *observe.Middleware

	bitmap  cache.MemoryStore[V]
	post    cache.MemoryStore[V]
	encoded cache.Store[[]byte]

	exec     *resilience.Executor
	bulkhead *resilience.Bulkhead
	limiter  *resilience.RateLimiter

	bitmapLoader  *cache.Loader[V]
	postLoader    *cache.Loader[V]
	encodedStore  guardedStore
	encodedLoader *cache.Loader[[]byte]

	loadTimeout time.Duration
	memBudget   uint64
}

// Option configures a Pipeline.
type Option[V any] func(*Pipeline[V])

// WithFactory sets the key factory. Default: keypolicy.Default().
func WithFactory[V any](f keypolicy.Factory) Option[V] {
	return func(p *Pipeline[V]) {
		if f != nil {
			p.factory = f
		}
	}
}

// WithBitmapTier sets the decoded bitmap tier.
func WithBitmapTier[V any](s cache.MemoryStore[V]) Option[V] {
	return func(p *Pipeline[V]) {
		if s != nil {
			p.bitmap = s
		}
	}
}

// WithPostprocessedTier sets the postprocessed bitmap tier.
func WithPostprocessedTier[V any](s cache.MemoryStore[V]) Option[V] {
	return func(p *Pipeline[V]) {
		if s != nil {
			p.post = s
		}
	}
}

// WithEncodedTier sets the encoded bytes tier.
func WithEncodedTier[V any](s cache.Store[[]byte]) Option[V] {
	return func(p *Pipeline[V]) {
		if s != nil {
			p.encoded = s
		}
	}
}

// WithObserver routes lookup telemetry to obs.
func WithObserver[V any](obs observe.Observer) Option[V] {
	return func(p *Pipeline[V]) {
		if mw, err := observe.MiddlewareFromObserver(obs); err == nil {
			p.mw = mw
		}
	}
}

// WithMiddleware sets the lookup middleware directly.
func WithMiddleware[V any](mw *observe.Middleware) Option[V] {
	return func(p *Pipeline[V]) {
		if mw != nil {
			p.mw = mw
		}
	}
}

// WithExecutor guards encoded-tier calls with e.
func WithExecutor[V any](e *resilience.Executor) Option[V] {
	return func(p *Pipeline[V]) { p.exec = e }
}

// WithRegistry sets the registry that owns postprocessor labels.
// Default: request.DefaultRegistry.
func WithRegistry[V any](r *request.Registry) Option[V] {
	return func(p *Pipeline[V]) { p.registry = r }
}

// WithBulkhead caps concurrent origin fetches.
func WithBulkhead[V any](b *resilience.Bulkhead) Option[V] {
	return func(p *Pipeline[V]) { p.bulkhead = b }
}

// WithRateLimiter throttles origin fetches.
func WithRateLimiter[V any](rl *resilience.RateLimiter) Option[V] {
	return func(p *Pipeline[V]) { p.limiter = rl }
}

// WithLoadTimeout bounds each coalesced decode, postprocess or fetch.
func WithLoadTimeout[V any](d time.Duration) Option[V] {
	return func(p *Pipeline[V]) { p.loadTimeout = d }
}

// New creates a pipeline. Unset tiers are unbounded-lifetime LRU stores
// (256 bitmaps, 64 postprocessed bitmaps, 1024 encoded images under
// cache.DefaultPolicy).
func New[V any](opts ...Option[V]) *Pipeline[V] {
	p := &Pipeline[V]{
		factory:  keypolicy.Default(),
		registry: request.DefaultRegistry,
		mw:       observe.NewMiddleware(nil, nil, nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = request.DefaultRegistry
	}
	if p.bitmap == nil {
		p.bitmap = cache.NewLRUStore[V](256, cache.NoExpiryPolicy())
	}
	if p.post == nil {
		p.post = cache.NewLRUStore[V](64, cache.NoExpiryPolicy())
	}
	if p.encoded == nil {
		p.encoded = cache.NewLRUStore[[]byte](1024, cache.DefaultPolicy())
	}

	logger := p.mw.Logger()
	timeout := cache.WithProduceTimeout(p.loadTimeout)
	p.bitmapLoader = cache.NewLoader(cache.Store[V](p.bitmap), logger, timeout)
	p.postLoader = cache.NewLoader(cache.Store[V](p.post), logger, timeout)
	p.encodedStore = guardedStore{store: p.encoded, exec: p.exec}
	p.encodedLoader = cache.NewLoader[[]byte](p.encodedStore, logger, timeout)
	return p
}

// Factory returns the key factory.
func (p *Pipeline[V]) Factory() keypolicy.Factory { return p.factory }

// Close releases tier resources such as Redis connections and ristretto
// goroutines.
func (p *Pipeline[V]) Close() error {
	var errs []error
	for _, s := range []any{p.bitmap, p.post, p.encoded} {
		if c, ok := s.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
