package pipeline

import (
	"context"
	"errors"

	"github.com/jonwraymond/imagecache/cache"
	"github.com/jonwraymond/imagecache/cachekey"
	"github.com/jonwraymond/imagecache/keypolicy"
	"github.com/jonwraymond/imagecache/observe"
	"github.com/jonwraymond/imagecache/request"
)

type memoryTier[V any] struct {
	name  string
	store cache.MemoryStore[V]
}

func (p *Pipeline[V]) memoryTiers() []memoryTier[V] {
	return []memoryTier[V]{
		{observe.TierBitmap, p.bitmap},
		{observe.TierPostprocessed, p.post},
	}
}

// canonical maps uri into the form the factory stores in keys.
func (p *Pipeline[V]) canonical(uri string) string {
	if c, ok := p.factory.(interface{ CanonicalSource(string) string }); ok {
		return c.CanonicalSource(uri)
	}
	return uri
}

// EvictFromMemory removes every bitmap and postprocessed entry whose key
// refers to uri, whatever its options or postprocessor, and returns the
// number removed.
func (p *Pipeline[V]) EvictFromMemory(ctx context.Context, uri string) (int, error) {
	uri = p.canonical(uri)
	match := func(k cachekey.Key) bool { return k.ContainsURI(uri) }

	total := 0
	for _, t := range p.memoryTiers() {
		n := 0
		_, err := p.mw.Lookup(ctx, observe.LookupMeta{Tier: t.name, Operation: observe.OpEvict, Key: uri}, func(ctx context.Context) (bool, error) {
			var err error
			n, err = t.store.RemoveMatching(ctx, match)
			return n > 0, err
		})
		if err != nil {
			return total, err
		}
		p.mw.Metrics().RecordEviction(ctx, t.name, n)
		total += n
	}
	return total, nil
}

// EvictFromEncoded deletes the encoded entry for req's source.
func (p *Pipeline[V]) EvictFromEncoded(ctx context.Context, req keypolicy.Request) error {
	key := p.factory.EncodedKey(req, nil)
	_, err := p.mw.Lookup(ctx, meta(observe.TierEncoded, observe.OpDelete, key), func(ctx context.Context) (bool, error) {
		return false, p.encodedStore.Delete(ctx, key)
	})
	return err
}

// Evict removes uri from every tier.
func (p *Pipeline[V]) Evict(ctx context.Context, uri string) error {
	_, memErr := p.EvictFromMemory(ctx, uri)
	return errors.Join(memErr, p.EvictFromEncoded(ctx, request.New(uri)))
}

// ClearMemory empties the bitmap and postprocessed tiers.
func (p *Pipeline[V]) ClearMemory(ctx context.Context) {
	for _, t := range p.memoryTiers() {
		n := t.store.Len()
		t.store.Clear()
		p.mw.Metrics().RecordEviction(ctx, t.name, n)
	}
}
