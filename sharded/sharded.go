// Package sharded splits a cache into independently locked shards to reduce
// contention under concurrent load.
//
// Each shard is a synced.Cache guarding its own slice of the keyspace, so
// goroutines touching different shards never serialize. Keys are assigned
// to shards by hashing; eviction runs per shard, which keeps the SIEVE scan
// local but means the global insertion order is only approximate.
package sharded

import (
	"errors"
	"hash/maphash"

	"github.com/discochess/sift"
	"github.com/discochess/sift/synced"
)

// DefaultShards is the shard count used by New.
const DefaultShards = 16

// ErrInvalidShards indicates a cache was constructed with a shard count
// below one.
var ErrInvalidShards = errors.New("sharded: number of shards must be at least 1")

// Cache distributes entries over multiple synced caches. It is safe for
// concurrent use by multiple goroutines.
type Cache[K comparable, V any] struct {
	shards []*synced.Cache[K, V]
	seed   maphash.Seed
}

// New creates a sharded cache with DefaultShards shards whose capacities sum
// to capacity. Returns sift.ErrInvalidCapacity if capacity is less than 1.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	return NewWithShards[K, V](capacity, DefaultShards)
}

// NewWithShards creates a sharded cache with the given shard count. The
// capacity is split evenly, the remainder spread over the first shards, and
// every shard holds at least one entry, so the effective total can exceed
// capacity when capacity < numShards.
func NewWithShards[K comparable, V any](capacity, numShards int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, sift.ErrInvalidCapacity
	}
	if numShards < 1 {
		return nil, ErrInvalidShards
	}

	base := capacity / numShards
	remainder := capacity % numShards

	shards := make([]*synced.Cache[K, V], numShards)
	for i := range shards {
		shardCapacity := base
		if i < remainder {
			shardCapacity++
		}
		if shardCapacity < 1 {
			shardCapacity = 1
		}
		shard, err := synced.New[K, V](shardCapacity)
		if err != nil {
			return nil, err
		}
		shards[i] = shard
	}

	return &Cache[K, V]{
		shards: shards,
		seed:   maphash.MakeSeed(),
	}, nil
}

// shard returns the shard responsible for key.
func (c *Cache[K, V]) shard(key K) *synced.Cache[K, V] {
	return c.shards[int(maphash.Comparable(c.seed, key)%uint64(len(c.shards)))]
}

// NumShards returns the number of shards.
func (c *Cache[K, V]) NumShards() int {
	return len(c.shards)
}

// Shard returns the shard at index, or nil when index is out of range.
// Useful for inspecting the per-shard distribution.
func (c *Cache[K, V]) Shard(index int) *synced.Cache[K, V] {
	if index < 0 || index >= len(c.shards) {
		return nil
	}
	return c.shards[index]
}

// Capacity returns the summed capacity of all shards.
func (c *Cache[K, V]) Capacity() int {
	total := 0
	for _, shard := range c.shards {
		total += shard.Capacity()
	}
	return total
}

// Len returns the total number of entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, shard := range c.shards {
		total += shard.Len()
	}
	return total
}

// IsEmpty reports whether every shard is empty.
func (c *Cache[K, V]) IsEmpty() bool {
	for _, shard := range c.shards {
		if !shard.IsEmpty() {
			return false
		}
	}
	return true
}

// ContainsKey reports whether key is cached without touching its visited bit.
func (c *Cache[K, V]) ContainsKey(key K) bool {
	return c.shard(key).ContainsKey(key)
}

// Get returns the value cached under key and marks the entry visited.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.shard(key).Get(key)
}

// Update applies fn to the value cached under key in place, under the
// owning shard's lock. It reports whether key was present.
func (c *Cache[K, V]) Update(key K, fn func(*V)) bool {
	return c.shard(key).Update(key, fn)
}

// Insert stores value under key, evicting from the owning shard if it is
// full. See sift.Cache.Insert for the meaning of the two results.
func (c *Cache[K, V]) Insert(key K, value V) (wasNew, stored bool) {
	return c.shard(key).Insert(key, value)
}

// Remove deletes key from the cache and returns its value.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	return c.shard(key).Remove(key)
}

// Evict tries each shard in turn until one yields a victim.
func (c *Cache[K, V]) Evict() (K, V, bool) {
	for _, shard := range c.shards {
		if key, value, ok := shard.Evict(); ok {
			return key, value, true
		}
	}
	var (
		zeroK K
		zeroV V
	)
	return zeroK, zeroV, false
}

// Clear removes all entries from every shard.
func (c *Cache[K, V]) Clear() {
	for _, shard := range c.shards {
		shard.Clear()
	}
}

// Keys returns the cached keys, each shard's oldest first. Order across
// shards is by shard index, not global insertion time.
func (c *Cache[K, V]) Keys() []K {
	var keys []K
	for _, shard := range c.shards {
		keys = append(keys, shard.Keys()...)
	}
	return keys
}

// Values returns the cached values, each shard's oldest first.
func (c *Cache[K, V]) Values() []V {
	var values []V
	for _, shard := range c.shards {
		values = append(values, shard.Values()...)
	}
	return values
}

// WithKeyLock runs fn with exclusive access to the shard owning key, for
// compound operations on keys known to share a shard.
func (c *Cache[K, V]) WithKeyLock(key K, fn func(*sift.Cache[K, V])) {
	c.shard(key).WithLock(fn)
}
