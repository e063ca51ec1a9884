package pipeline

import (
	"context"

	"github.com/jonwraymond/imagecache/cache"
	"github.com/jonwraymond/imagecache/cachekey"
	"github.com/jonwraymond/imagecache/resilience"
)

// guardedStore runs every call to a remote tier through an executor.
type guardedStore struct {
	store cache.Store[[]byte]
	exec  *resilience.Executor
}

type fetched struct {
	data []byte
	ok   bool
}

func (g guardedStore) Get(ctx context.Context, key cachekey.Key) ([]byte, bool, error) {
	r, err := resilience.Do(ctx, g.exec, func(ctx context.Context) (fetched, error) {
		v, ok, err := g.store.Get(ctx, key)
		return fetched{data: v, ok: ok}, err
	})
	return r.data, r.ok, err
}

func (g guardedStore) Contains(ctx context.Context, key cachekey.Key) (bool, error) {
	return resilience.Do(ctx, g.exec, func(ctx context.Context) (bool, error) {
		return cache.Contains(ctx, g.store, key)
	})
}

func (g guardedStore) Set(ctx context.Context, key cachekey.Key, value []byte) error {
	return g.exec.Execute(ctx, func(ctx context.Context) error {
		return g.store.Set(ctx, key, value)
	})
}

func (g guardedStore) Delete(ctx context.Context, key cachekey.Key) error {
	return g.exec.Execute(ctx, func(ctx context.Context) error {
		return g.store.Delete(ctx, key)
	})
}

var (
	_ cache.Store[[]byte] = guardedStore{}
	_ cache.Prober        = guardedStore{}
)
