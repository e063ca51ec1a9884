package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"

	"github.com/jonwraymond/imagecache/cachekey"
)

// RistrettoConfig sizes a RistrettoStore.
type RistrettoConfig struct {
	// NumCounters is the number of admission counters; about 10x the
	// expected entry count.
	NumCounters int64
	// MaxCost bounds the total cost of resident entries.
	MaxCost int64
	// BufferItems is the size of ristretto's Get buffers. 64 is a good default.
	BufferItems int64
}

// DefaultRistrettoConfig sizes a tier for roughly maxCost bytes of values.
func DefaultRistrettoConfig(maxCost int64) RistrettoConfig {
	return RistrettoConfig{
		NumCounters: max(maxCost/1024, 1000),
		MaxCost:     maxCost,
		BufferItems: 64,
	}
}

// RistrettoStore is a cost-bounded in-memory tier backed by ristretto.
//
// Entries are stored under Key.Hash. The stored value carries its key and
// is compared with Equal on read, so a hash collision reads as a miss.
// Writes are admitted asynchronously; call Wait to observe them.
type RistrettoStore[V any] struct {
	cache  *ristretto.Cache
	policy Policy
	cost   func(V) int64

	mu    sync.Mutex
	index map[uint64]*ristrettoEntry[V]
}

type ristrettoEntry[V any] struct {
	key   cachekey.Key
	value V
}

// NewRistrettoStore creates a ristretto tier. cost returns the weight of a
// value; nil weighs every value as 1.
func NewRistrettoStore[V any](cfg RistrettoConfig, policy Policy, cost func(V) int64) (*RistrettoStore[V], error) {
	if cost == nil {
		cost = func(V) int64 { return 1 }
	}
	s := &RistrettoStore[V]{
		policy: policy,
		cost:   cost,
		index:  make(map[uint64]*ristrettoEntry[V]),
	}

	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		OnEvict:     s.forget,
		OnReject:    func(item *ristretto.Item) { s.settle(item.Key, item.Value) },
	})
	if err != nil {
		return nil, fmt.Errorf("cache: ristretto: %w", err)
	}
	s.cache = c
	return s, nil
}

// forget drops the index entry for an item ristretto evicted.
func (s *RistrettoStore[V]) forget(item *ristretto.Item) {
	e, ok := item.Value.(*ristrettoEntry[V])
	if !ok {
		return
	}
	s.mu.Lock()
	if s.index[item.Key] == e {
		delete(s.index, item.Key)
	}
	s.mu.Unlock()
}

// settle runs when a write was not applied. A duplicate Set of a key whose
// first write is still buffered is rejected while ristretto holds the
// earlier entry, so the index follows whatever is resident.
func (s *RistrettoStore[V]) settle(h uint64, value any) {
	e, ok := value.(*ristrettoEntry[V])
	if !ok {
		return
	}
	raw, held := s.cache.Get(h)
	resident, _ := raw.(*ristrettoEntry[V])

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index[h] != e {
		return
	}
	if held && resident != nil {
		s.index[h] = resident
		return
	}
	delete(s.index, h)
}

// Get returns the value stored under key.
func (s *RistrettoStore[V]) Get(_ context.Context, key cachekey.Key) (V, bool, error) {
	var zero V
	if err := ValidateKey(key); err != nil {
		return zero, false, err
	}
	raw, ok := s.cache.Get(key.Hash())
	if !ok {
		return zero, false, nil
	}
	e, ok := raw.(*ristrettoEntry[V])
	if !ok || !e.key.Equal(key) {
		return zero, false, nil
	}
	return e.value, true, nil
}

// Set offers value to the cache. Admission is asynchronous and may reject
// the entry; rejection is not an error.
func (s *RistrettoStore[V]) Set(_ context.Context, key cachekey.Key, value V) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	h := key.Hash()
	e := &ristrettoEntry[V]{key: key, value: value}

	s.mu.Lock()
	s.index[h] = e
	s.mu.Unlock()

	if !s.cache.SetWithTTL(h, e, s.cost(value), s.policy.EffectiveTTL(0)) {
		s.settle(h, e)
	}
	return nil
}

// Delete removes key. A colliding entry for a different key is left alone.
func (s *RistrettoStore[V]) Delete(_ context.Context, key cachekey.Key) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	h := key.Hash()

	s.mu.Lock()
	e, ok := s.index[h]
	if !ok || !e.key.Equal(key) {
		s.mu.Unlock()
		return nil
	}
	delete(s.index, h)
	s.mu.Unlock()

	s.cache.Del(h)
	return nil
}

// RemoveMatching removes every indexed entry whose key satisfies match.
func (s *RistrettoStore[V]) RemoveMatching(_ context.Context, match func(cachekey.Key) bool) (int, error) {
	var victims []uint64

	s.mu.Lock()
	for h, e := range s.index {
		if match(e.key) {
			victims = append(victims, h)
			delete(s.index, h)
		}
	}
	s.mu.Unlock()

	for _, h := range victims {
		s.cache.Del(h)
	}
	return len(victims), nil
}

// Len returns the number of entries believed resident.
func (s *RistrettoStore[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.index)
}

// Clear removes every entry.
func (s *RistrettoStore[V]) Clear() {
	// ristretto calls OnEvict from Clear, which takes s.mu.
	s.cache.Clear()
	s.mu.Lock()
	clear(s.index)
	s.mu.Unlock()
}

// Wait blocks until buffered writes have been applied.
func (s *RistrettoStore[V]) Wait() {
	s.cache.Wait()
}

// Close stops ristretto's background goroutines.
func (s *RistrettoStore[V]) Close() error {
	s.cache.Close()
	return nil
}

var _ MemoryStore[any] = (*RistrettoStore[any])(nil)
