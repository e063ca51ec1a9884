package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/imagecache/cachekey"
	"github.com/jonwraymond/imagecache/observe"
)

// ProduceFunc computes the value for a missed key.
type ProduceFunc[V any] func(ctx context.Context) (V, error)

// Loader adds read-through to a Store. Concurrent misses for equal keys
// share a single produce call.
//
// Contract:
//   - Errors from produce are returned and never cached.
//   - A failed Get is treated as a miss and logged.
//   - A failed Set is logged; the produced value is still returned.
//   - produce runs detached from the caller's cancellation, so one caller
//     giving up neither fails the callers sharing its call nor discards
//     the value. A caller whose context ends returns ctx.Err() at once.
type Loader[V any] struct {
	store   Store[V]
	group   singleflight.Group
	logger  observe.Logger
	timeout time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	timeout time.Duration
}

// WithProduceTimeout bounds each shared produce call. Zero means no bound.
func WithProduceTimeout(d time.Duration) LoaderOption {
	return func(o *loaderOptions) { o.timeout = d }
}

// NewLoader wraps store. A nil logger discards.
func NewLoader[V any](store Store[V], logger observe.Logger, opts ...LoaderOption) *Loader[V] {
	if logger == nil {
		logger = observe.NopLogger()
	}
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[V]{store: store, logger: logger, timeout: o.timeout}
}

// Store returns the wrapped tier.
func (l *Loader[V]) Store() Store[V] { return l.store }

// Load returns the value for key, calling produce on a miss. hit reports
// whether the value came from the store.
func (l *Loader[V]) Load(ctx context.Context, key cachekey.Key, produce ProduceFunc[V]) (value V, hit bool, err error) {
	if l.store == nil {
		return value, false, ErrNilStore
	}
	if err := ValidateKey(key); err != nil {
		return value, false, err
	}

	if v, ok, err := l.store.Get(ctx, key); err != nil {
		l.logger.Warn(ctx, "cache get failed", observe.F("key", key.String()), observe.F("error", err))
	} else if ok {
		return v, true, nil
	}

	// String is injective over keys, so it is a safe coalescing key.
	ch := l.group.DoChan(key.String(), func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		if l.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, l.timeout)
			defer cancel()
		}
		if v, ok, err := l.store.Get(ctx, key); err == nil && ok {
			return loaded[V]{value: v, hit: true}, nil
		}
		v, err := produce(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.store.Set(ctx, key, v); err != nil {
			l.logger.Warn(ctx, "cache set failed", observe.F("key", key.String()), observe.F("error", err))
		}
		return loaded[V]{value: v}, nil
	})

	select {
	case <-ctx.Done():
		return value, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return value, false, res.Err
		}
		r := res.Val.(loaded[V])
		return r.value, r.hit, nil
	}
}

// Forget drops an in-flight call for key so the next Load starts fresh.
func (l *Loader[V]) Forget(key cachekey.Key) {
	if key != nil {
		l.group.Forget(key.String())
	}
}

type loaded[V any] struct {
	value V
	hit   bool
}
