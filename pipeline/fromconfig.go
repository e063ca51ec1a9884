package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonwraymond/imagecache/cache"
	"github.com/jonwraymond/imagecache/cachekey"
	"github.com/jonwraymond/imagecache/config"
	"github.com/jonwraymond/imagecache/keypolicy"
	"github.com/jonwraymond/imagecache/observe"
	"github.com/jonwraymond/imagecache/resilience"
)

// ErrNoCost is returned when a ristretto tier is configured without a cost
// function.
var ErrNoCost = errors.New("pipeline: ristretto tier requires a cost function")

// FromConfig builds a pipeline from cfg. cost weighs a decoded image in
// bytes for ristretto tiers and may be nil when none is configured. A nil
// obs discards telemetry. An unreachable Redis tier is logged, not fatal.
func FromConfig[V any](ctx context.Context, cfg *config.Config, obs observe.Observer, cost func(V) int64) (*Pipeline[V], error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = observe.NopObserver()
	}
	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return nil, err
	}
	logger := obs.Logger()

	factory := keypolicy.Default()
	if cfg.KeyPolicy.NormalizeURLs {
		factory = keypolicy.NewDefaultFactory(
			keypolicy.WithCanonicalizer(keypolicy.NormalizeURL(keypolicy.DefaultURLFlags)),
		)
	}

	bitmap, err := newMemoryTier(cfg.Bitmap, cost, mw, observe.TierBitmap)
	if err != nil {
		return nil, err
	}
	post, err := newMemoryTier(cfg.Postprocessed, cost, mw, observe.TierPostprocessed)
	if err != nil {
		return nil, err
	}
	encoded, err := newEncodedTier(cfg.Encoded, mw)
	if err != nil {
		return nil, err
	}

	exec := cfg.Resilience.Executor(func(name string, from, to resilience.State) {
		logger.Warn(context.Background(), "circuit state changed",
			observe.F("circuit", name), observe.F("from", from.String()), observe.F("to", to.String()))
	})

	p := New(
		WithFactory[V](factory),
		WithMiddleware[V](mw),
		WithBitmapTier(bitmap),
		WithPostprocessedTier(post),
		WithEncodedTier[V](encoded),
		WithExecutor[V](exec),
		WithBulkhead[V](cfg.Fetch.Bulkhead()),
		WithRateLimiter[V](cfg.Fetch.RateLimiter()),
		WithLoadTimeout[V](cfg.Fetch.Timeout),
	)
	for _, t := range []config.MemoryTierConfig{cfg.Bitmap, cfg.Postprocessed} {
		if t.Kind == config.KindRistretto {
			p.memBudget += uint64(t.MaxCost)
		}
	}

	if pinger, ok := encoded.(interface{ Ping(context.Context) error }); ok {
		if err := pinger.Ping(ctx); err != nil {
			logger.Warn(ctx, "encoded tier unreachable", observe.F("error", err))
		}
	}
	logger.Info(ctx, "image pipeline ready",
		observe.F("bitmap", cfg.Bitmap.Kind),
		observe.F("postprocessed", cfg.Postprocessed.Kind),
		observe.F("encoded", cfg.Encoded.Kind))
	return p, nil
}

func newMemoryTier[V any](t config.MemoryTierConfig, cost func(V) int64, mw *observe.Middleware, tier string) (cache.MemoryStore[V], error) {
	switch t.Kind {
	case config.KindRistretto:
		if cost == nil {
			return nil, ErrNoCost
		}
		return cache.NewRistrettoStore(cache.DefaultRistrettoConfig(int64(t.MaxCost)), t.Policy(), cost)
	default:
		s := cache.NewLRUStore[V](t.Capacity, t.Policy())
		s.OnEvict(func(cachekey.Key, V) {
			mw.Metrics().RecordEviction(context.Background(), tier, 1)
		})
		return s, nil
	}
}

func newEncodedTier(e config.EncodedConfig, mw *observe.Middleware) (cache.Store[[]byte], error) {
	switch e.Kind {
	case config.KindRedis:
		opts := &redis.Options{
			Addr:     e.Redis.Addr,
			Username: e.Redis.Username,
			Password: e.Redis.Password,
			DB:       e.Redis.DB,
		}
		if e.Redis.URL != "" {
			var err error
			if opts, err = redis.ParseURL(e.Redis.URL); err != nil {
				return nil, fmt.Errorf("pipeline: redis url: %w", err)
			}
		}
		return cache.NewRedisStore(redis.NewClient(opts), e.Redis.Prefix, e.Policy()), nil
	case config.KindFile:
		return cache.NewFileStore(e.File.Dir, cache.WithFilePolicy(e.Policy()))
	default:
		s := cache.NewLRUStore[[]byte](e.Capacity, e.Policy())
		s.OnEvict(func(cachekey.Key, []byte) {
			mw.Metrics().RecordEviction(context.Background(), observe.TierEncoded, 1)
		})
		return s, nil
	}
}
