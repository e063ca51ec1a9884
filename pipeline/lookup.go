package pipeline

import (
	"context"
	"fmt"

	"github.com/jonwraymond/imagecache/cache"
	"github.com/jonwraymond/imagecache/cachekey"
	"github.com/jonwraymond/imagecache/keypolicy"
	"github.com/jonwraymond/imagecache/observe"
	"github.com/jonwraymond/imagecache/request"
)

// Decoded returns the decoded image for req from the bitmap tier, calling
// decode on a miss.
func (p *Pipeline[V]) Decoded(ctx context.Context, req keypolicy.Request, callerCtx any, decode cache.ProduceFunc[V]) (V, error) {
	key := p.factory.BitmapKey(req, callerCtx)
	return load(ctx, p.mw, observe.TierBitmap, p.bitmapLoader, key, decode)
}

// Postprocessed returns the postprocessed image for req. On a miss it
// obtains the decoded image through Decoded and applies process, which
// must not modify its input. Without a postprocessor it is Decoded.
//
// The postprocessor's label is claimed in the pipeline's registry first; a
// different type reusing a claimed label fails with
// request.ErrDuplicatePostprocessor instead of sharing cache entries.
func (p *Pipeline[V]) Postprocessed(
	ctx context.Context,
	req keypolicy.Request,
	callerCtx any,
	decode cache.ProduceFunc[V],
	process func(context.Context, V) (V, error),
) (V, error) {
	pp := req.Postprocessor()
	if request.IsNil(pp) {
		return p.Decoded(ctx, req, callerCtx, decode)
	}
	if err := p.registry.Register(pp); err != nil {
		var zero V
		return zero, fmt.Errorf("pipeline: %w", err)
	}
	key := p.factory.PostprocessedBitmapKey(req, callerCtx)
	return load(ctx, p.mw, observe.TierPostprocessed, p.postLoader, key, func(ctx context.Context) (V, error) {
		src, err := p.Decoded(ctx, req, callerCtx, decode)
		if err != nil {
			return src, err
		}
		return process(ctx, src)
	})
}

// Encoded returns the encoded bytes of req's source, calling fetch on a
// miss.
func (p *Pipeline[V]) Encoded(ctx context.Context, req keypolicy.Request, callerCtx any, fetch cache.ProduceFunc[[]byte]) ([]byte, error) {
	key := p.factory.EncodedKey(req, callerCtx)
	return load(ctx, p.mw, observe.TierEncoded, p.encodedLoader, key, p.guardFetch(fetch))
}

// EncodedFrom is Encoded for an explicit source, such as the target of a
// redirect or one entry of a multi-source request.
func (p *Pipeline[V]) EncodedFrom(ctx context.Context, req keypolicy.Request, source string, callerCtx any, fetch cache.ProduceFunc[[]byte]) ([]byte, error) {
	key := p.factory.EncodedKeyForSource(req, source, callerCtx)
	return load(ctx, p.mw, observe.TierEncoded, p.encodedLoader, key, p.guardFetch(fetch))
}

// IsInBitmapCache reports whether the finished image for req is resident:
// the postprocessed tier when req has a postprocessor, else the bitmap
// tier.
func (p *Pipeline[V]) IsInBitmapCache(ctx context.Context, req keypolicy.Request) (bool, error) {
	if request.IsNil(req.Postprocessor()) {
		return probe(ctx, p.mw, observe.TierBitmap, cache.Store[V](p.bitmap), p.factory.BitmapKey(req, nil))
	}
	return probe(ctx, p.mw, observe.TierPostprocessed, cache.Store[V](p.post), p.factory.PostprocessedBitmapKey(req, nil))
}

// IsInEncodedCache reports whether the encoded tier holds req's source.
func (p *Pipeline[V]) IsInEncodedCache(ctx context.Context, req keypolicy.Request) (bool, error) {
	return probe(ctx, p.mw, observe.TierEncoded, cache.Store[[]byte](p.encodedStore), p.factory.EncodedKey(req, nil))
}

func (p *Pipeline[V]) guardFetch(fetch cache.ProduceFunc[[]byte]) cache.ProduceFunc[[]byte] {
	return func(ctx context.Context) ([]byte, error) {
		var out []byte
		run := func(ctx context.Context) error {
			var err error
			out, err = fetch(ctx)
			return err
		}
		if p.bulkhead != nil {
			inner := run
			run = func(ctx context.Context) error { return p.bulkhead.Execute(ctx, inner) }
		}
		if p.limiter != nil {
			inner := run
			run = func(ctx context.Context) error { return p.limiter.Execute(ctx, inner) }
		}
		if err := run(ctx); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func meta(tier, op string, key cachekey.Key) observe.LookupMeta {
	return observe.LookupMeta{
		Tier:      tier,
		Operation: op,
		Key:       key.String(),
		KeyKind:   key.Kind().String(),
	}
}

func load[T any](ctx context.Context, mw *observe.Middleware, tier string, l *cache.Loader[T], key cachekey.Key, produce cache.ProduceFunc[T]) (T, error) {
	var out T
	_, err := mw.Lookup(ctx, meta(tier, observe.OpGet, key), func(ctx context.Context) (bool, error) {
		v, hit, err := l.Load(ctx, key, produce)
		out = v
		return hit, err
	})
	return out, err
}

func probe[T any](ctx context.Context, mw *observe.Middleware, tier string, s cache.Store[T], key cachekey.Key) (bool, error) {
	return mw.Lookup(ctx, meta(tier, observe.OpProbe, key), func(ctx context.Context) (bool, error) {
		return cache.Contains(ctx, s, key)
	})
}
