package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/imagecache/cachekey"
)

// LRUStore is a count-bounded in-memory tier with least-recently-used
// eviction. Keys are bucketed by Hash and matched with Equal, so colliding
// keys coexist.
type LRUStore[V any] struct {
	mu       sync.Mutex
	capacity int
	policy   Policy
	ll       *list.List
	buckets  map[uint64][]*list.Element
	onEvict  func(cachekey.Key, V)
	now      func() time.Time
}

type lruEntry[V any] struct {
	key       cachekey.Key
	value     V
	expiresAt time.Time
}

// NewLRUStore creates an LRU tier holding at most capacity entries.
// A capacity <= 0 means unbounded.
func NewLRUStore[V any](capacity int, policy Policy) *LRUStore[V] {
	return &LRUStore[V]{
		capacity: capacity,
		policy:   policy,
		ll:       list.New(),
		buckets:  make(map[uint64][]*list.Element),
		now:      time.Now,
	}
}

// OnEvict registers fn to be called for every entry dropped to respect
// capacity. It is called with the store lock held and must not call back
// into the store.
func (s *LRUStore[V]) OnEvict(fn func(cachekey.Key, V)) {
	s.mu.Lock()
	s.onEvict = fn
	s.mu.Unlock()
}

// Get returns the value stored under key and marks it most recently used.
func (s *LRUStore[V]) Get(_ context.Context, key cachekey.Key) (V, bool, error) {
	var zero V
	if err := ValidateKey(key); err != nil {
		return zero, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el := s.find(key)
	if el == nil {
		return zero, false, nil
	}
	e := el.Value.(*lruEntry[V])
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.remove(el)
		return zero, false, nil
	}
	s.ll.MoveToFront(el)
	return e.value, true, nil
}

// Contains reports presence without touching recency.
func (s *LRUStore[V]) Contains(_ context.Context, key cachekey.Key) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el := s.find(key)
	if el == nil {
		return false, nil
	}
	e := el.Value.(*lruEntry[V])
	return e.expiresAt.IsZero() || !s.now().After(e.expiresAt), nil
}

// Set stores value under key, evicting the least recently used entries
// when over capacity.
func (s *LRUStore[V]) Set(_ context.Context, key cachekey.Key, value V) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.policy.expiry(s.now())
	if el := s.find(key); el != nil {
		e := el.Value.(*lruEntry[V])
		e.value = value
		e.expiresAt = expiresAt
		s.ll.MoveToFront(el)
		return nil
	}

	el := s.ll.PushFront(&lruEntry[V]{key: key, value: value, expiresAt: expiresAt})
	h := key.Hash()
	s.buckets[h] = append(s.buckets[h], el)

	for s.capacity > 0 && s.ll.Len() > s.capacity {
		oldest := s.ll.Back()
		e := oldest.Value.(*lruEntry[V])
		s.remove(oldest)
		if s.onEvict != nil {
			s.onEvict(e.key, e.value)
		}
	}
	return nil
}

// Delete removes key. Idempotent.
func (s *LRUStore[V]) Delete(_ context.Context, key cachekey.Key) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el := s.find(key); el != nil {
		s.remove(el)
	}
	return nil
}

// RemoveMatching removes every entry whose key satisfies match.
func (s *LRUStore[V]) RemoveMatching(_ context.Context, match func(cachekey.Key) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for el := s.ll.Front(); el != nil; {
		next := el.Next()
		if match(el.Value.(*lruEntry[V]).key) {
			s.remove(el)
			removed++
		}
		el = next
	}
	return removed, nil
}

// Len returns the number of entries, including expired ones not yet
// collected.
func (s *LRUStore[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

// Clear removes every entry.
func (s *LRUStore[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ll.Init()
	clear(s.buckets)
}

func (s *LRUStore[V]) find(key cachekey.Key) *list.Element {
	for _, el := range s.buckets[key.Hash()] {
		if el.Value.(*lruEntry[V]).key.Equal(key) {
			return el
		}
	}
	return nil
}

func (s *LRUStore[V]) remove(el *list.Element) {
	e := el.Value.(*lruEntry[V])
	h := e.key.Hash()
	bucket := s.buckets[h]
	for i, b := range bucket {
		if b == el {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(s.buckets, h)
	} else {
		s.buckets[h] = bucket
	}
	s.ll.Remove(el)
}

var (
	_ MemoryStore[any] = (*LRUStore[any])(nil)
	_ Prober           = (*LRUStore[any])(nil)
)
