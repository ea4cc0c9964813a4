// Package synced wraps a sift.Cache with a mutex for concurrent use.
//
// The core cache deliberately carries no lock of its own; this package is
// the standard way to share one across goroutines. Reads that mark entries
// visited (Get, Update) take the write lock because they mutate scan state;
// pure observers (ContainsKey, Len, Keys, ...) take the read lock.
package synced

import (
	"sync"

	"github.com/discochess/sift"
)

// Cache is a sift.Cache guarded by an RWMutex. It is safe for concurrent
// use by multiple goroutines.
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	cache *sift.Cache[K, V]
}

// New creates a synchronized cache holding at most capacity entries.
// Returns sift.ErrInvalidCapacity if capacity is less than 1.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	cache, err := sift.New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{cache: cache}, nil
}

// NewWithEvictFilter creates a synchronized cache with an eviction filter,
// see sift.NewWithEvictFilter. The filter runs with the lock held and must
// not call back into the cache.
func NewWithEvictFilter[K comparable, V any](capacity int, filter sift.EvictFilter[K, V]) (*Cache[K, V], error) {
	cache, err := sift.NewWithEvictFilter[K, V](capacity, filter)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{cache: cache}, nil
}

// FromCache wraps an existing cache. The caller must hand over ownership:
// touching the inner cache directly afterwards voids the guarantees.
func FromCache[K comparable, V any](cache *sift.Cache[K, V]) *Cache[K, V] {
	return &Cache[K, V]{cache: cache}
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache[K, V]) Capacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Capacity()
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Len()
}

// IsEmpty reports whether the cache holds no entries.
func (c *Cache[K, V]) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.IsEmpty()
}

// ContainsKey reports whether key is cached without touching its visited bit.
func (c *Cache[K, V]) ContainsKey(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.ContainsKey(key)
}

// Get returns a copy of the value cached under key and marks the entry
// visited. It takes the write lock: the visited bit is a mutation.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(key)
}

// Update applies fn to the value cached under key, in place and under the
// write lock, marking the entry visited. It reports whether key was present.
// This replaces the unsynchronized cache's GetPointer: handing a pointer out
// of the critical section would void the lock. fn must not call back into
// the cache.
func (c *Cache[K, V]) Update(key K, fn func(*V)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.cache.GetPointer(key)
	if p == nil {
		return false
	}
	fn(p)
	return true
}

// Insert stores value under key, evicting if needed. See sift.Cache.Insert
// for the meaning of the two results.
func (c *Cache[K, V]) Insert(key K, value V) (wasNew, stored bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Insert(key, value)
}

// Remove deletes key from the cache and returns its value.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Remove(key)
}

// Evict runs one eviction scan and returns the evicted key and value, if any.
func (c *Cache[K, V]) Evict() (K, V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Evict()
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
}

// Keys returns the cached keys ordered oldest to newest.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Keys()
}

// Values returns the cached values ordered oldest to newest.
func (c *Cache[K, V]) Values() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Values()
}

// WithLock runs fn with exclusive access to the underlying cache, for
// compound operations that must be atomic. fn must not retain the cache
// past its return.
func (c *Cache[K, V]) WithLock(fn func(*sift.Cache[K, V])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.cache)
}
