// Package cache provides the storage tiers addressed by cachekey keys.
//
// Memory tiers (LRUStore, RistrettoStore) hold decoded values and support
// removing every entry whose key matches a predicate. Encoded tiers
// (RedisStore, FileStore) persist bytes under cachekey.ResourceID. Loader
// adds read-through with request coalescing on top of any Store.
package cache
