package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonwraymond/imagecache/cachekey"
)

// DefaultRedisPrefix namespaces encoded entries in a shared Redis.
const DefaultRedisPrefix = "imagecache:encoded:"

// RedisStore is an encoded-bytes tier on Redis. Entries are named
// prefix + cachekey.ResourceID(key).
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	policy Policy
}

// NewRedisStore creates a Redis tier. An empty prefix uses
// DefaultRedisPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string, policy Policy) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, policy: policy}
}

// Name returns the Redis key an entry for key is stored under.
func (s *RedisStore) Name(key cachekey.Key) string {
	return s.prefix + cachekey.ResourceID(key)
}

// Get returns the bytes stored under key.
func (s *RedisStore) Get(ctx context.Context, key cachekey.Key) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	b, err := s.client.Get(ctx, s.Name(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: redis get: %w", err)
	}
	return b, true, nil
}

// Contains reports whether an entry exists for key.
func (s *RedisStore) Contains(ctx context.Context, key cachekey.Key) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	n, err := s.client.Exists(ctx, s.Name(key)).Result()
	if err != nil {
		return false, fmt.Errorf("cache: redis exists: %w", err)
	}
	return n > 0, nil
}

// Set stores value under key with the policy's TTL.
func (s *RedisStore) Set(ctx context.Context, key cachekey.Key, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Name(key), value, s.policy.EffectiveTTL(0)).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// Delete removes key. Idempotent.
func (s *RedisStore) Delete(ctx context.Context, key cachekey.Key) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.Name(key)).Err(); err != nil {
		return fmt.Errorf("cache: redis del: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var (
	_ Store[[]byte] = (*RedisStore)(nil)
	_ Prober        = (*RedisStore)(nil)
)
