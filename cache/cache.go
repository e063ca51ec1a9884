package cache

import (
	"context"
	"errors"
	"strings"

	"github.com/jonwraymond/imagecache/cachekey"
)

// MaxKeyLength is the maximum allowed length of a key's source identity.
const MaxKeyLength = 8192

// Sentinel errors for cache operations.
var (
	ErrNilStore   = errors.New("cache: store is nil")
	ErrNilKey     = errors.New("cache: key is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
	ErrNoDir      = errors.New("cache: directory is required")
)

// Store is a single cache tier.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines where applicable.
// - Errors: a miss is (zero, false, nil); errors are reserved for failures.
// - Idempotency: Delete of an absent key is not an error.
type Store[V any] interface {
	Get(ctx context.Context, key cachekey.Key) (V, bool, error)
	Set(ctx context.Context, key cachekey.Key, value V) error
	Delete(ctx context.Context, key cachekey.Key) error
}

// MemoryStore is an in-process tier that can enumerate its keys.
//
// Contract:
// - RemoveMatching returns the number of entries removed.
// - Len and Clear never fail.
type MemoryStore[V any] interface {
	Store[V]
	RemoveMatching(ctx context.Context, match func(cachekey.Key) bool) (int, error)
	Len() int
	Clear()
}

// Prober reports presence without transferring the value.
type Prober interface {
	Contains(ctx context.Context, key cachekey.Key) (bool, error)
}

// Contains reports whether s holds key, using Prober when s implements it.
func Contains[V any](ctx context.Context, s Store[V], key cachekey.Key) (bool, error) {
	if s == nil {
		return false, ErrNilStore
	}
	if p, ok := s.(Prober); ok {
		return p.Contains(ctx, key)
	}
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

// ValidateKey checks if a key is usable as a cache address.
func ValidateKey(key cachekey.Key) error {
	if key == nil {
		return ErrNilKey
	}
	uri := key.URIString()
	if strings.TrimSpace(uri) == "" {
		return ErrInvalidKey
	}
	if len(uri) > MaxKeyLength {
		return ErrKeyTooLong
	}
	return nil
}
