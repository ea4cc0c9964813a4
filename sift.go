// Package sift provides a fixed-capacity in-memory key-value cache that
// evicts with the SIEVE algorithm.
//
// SIEVE keeps entries in insertion order and tracks one "visited" bit per
// entry. Reads set the bit; they never reorder anything. When the cache is
// full, a hand sweeps from the oldest entry toward the newest, sparing (and
// unmarking) entries whose bit is set and evicting the first unmarked entry
// it finds. The hand keeps its position between sweeps, so frequently read
// entries survive while one-shot entries are drained cheaply.
//
// Example usage:
//
//	cache, err := sift.New[string, string](1000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cache.Insert("foo", "foocontent")
//	if v, ok := cache.Get("foo"); ok {
//	    fmt.Println(v)
//	}
//
// A Cache is NOT safe for concurrent use. It holds no locks and may be moved
// freely between goroutines, but simultaneous access requires external
// mutual exclusion. The synced and sharded subpackages provide ready-made
// locking wrappers; metered adds instrumentation on top.
package sift

import (
	"errors"

	"github.com/discochess/sift/internal/list"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrInvalidCapacity indicates a cache was constructed with a capacity
	// below one.
	ErrInvalidCapacity = errors.New("sift: capacity must be at least 1")
)

// EvictFilter reports whether an entry may be evicted. The eviction scan
// consults it only for entries whose visited bit is clear; a visited entry
// is always spared first. Filters must be pure: no mutation of the cache,
// no retention of the key or value.
type EvictFilter[K comparable, V any] func(key K, value V) bool

// Cache is a fixed-capacity key-value cache with SIEVE eviction.
//
// All operations are O(1) except the eviction scan, which examines at most
// Len() entries. See the package documentation for the concurrency contract.
type Cache[K comparable, V any] struct {
	capacity int
	entries  map[K]*list.Entry[K, V]
	order    list.List[K, V]

	// hand is where the next eviction scan resumes. nil means the scan
	// starts over from the oldest entry.
	hand *list.Entry[K, V]

	filter EvictFilter[K, V]
}

// New creates a cache holding at most capacity entries.
// Returns ErrInvalidCapacity if capacity is less than 1.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	return NewWithEvictFilter[K, V](capacity, nil)
}

// NewWithEvictFilter creates a cache whose eviction scan additionally
// requires filter to approve each candidate. The filter is fixed for the
// cache's lifetime; a nil filter makes every unvisited entry eligible.
// Returns ErrInvalidCapacity if capacity is less than 1.
func NewWithEvictFilter[K comparable, V any](capacity int, filter EvictFilter[K, V]) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Cache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*list.Entry[K, V], capacity),
		filter:   filter,
	}, nil
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cache holds no entries.
func (c *Cache[K, V]) IsEmpty() bool {
	return len(c.entries) == 0
}

// ContainsKey reports whether key is cached. It does not touch the entry's
// visited bit, so probing cannot influence eviction.
func (c *Cache[K, V]) ContainsKey(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Get returns the value cached under key and marks the entry visited.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.Visited = true
	return e.Value, true
}

// GetPointer returns a pointer to the value cached under key for in-place
// mutation, marking the entry visited. Returns nil if key is absent.
//
// Once a later operation evicts or removes the entry, writes through the
// pointer no longer reach the cache; callers should not retain it across
// cache calls.
func (c *Cache[K, V]) GetPointer(key K) *V {
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	e.Visited = true
	return &e.Value
}

// Insert stores value under key.
//
// If key is already cached, its value is replaced in place, the entry is
// marked visited, and Insert returns (false, true). Otherwise the pair is
// added as the newest entry with a clear visited bit, evicting first when
// the cache is full, and Insert returns (true, true).
//
// When the cache is full and the eviction scan finds no evictable entry —
// every entry was spared by its visited bit or the eviction filter — the
// new pair is discarded, the cache keeps its current contents, and Insert
// returns (false, false).
func (c *Cache[K, V]) Insert(key K, value V) (wasNew, stored bool) {
	if e, ok := c.entries[key]; ok {
		e.Value = value
		e.Visited = true
		return false, true
	}

	if len(c.entries) >= c.capacity {
		if c.evictEntry() == nil {
			return false, false
		}
	}

	e := &list.Entry[K, V]{Key: key, Value: value}
	c.order.PushFront(e)
	c.entries[key] = e
	return true, true
}

// Remove deletes key from the cache and returns its value.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	// Keep the hand on a live entry: step it to the neighbor the scan
	// would have advanced to anyway.
	if c.hand == e {
		c.hand = e.Prev()
	}

	delete(c.entries, key)
	c.order.Remove(e)
	return e.Value, true
}

// Evict runs one eviction scan and returns the evicted key and value.
// The third result is false when nothing could be evicted, either because
// the cache is empty or because every entry was spared.
func (c *Cache[K, V]) Evict() (K, V, bool) {
	e := c.evictEntry()
	if e == nil {
		var (
			zeroK K
			zeroV V
		)
		return zeroK, zeroV, false
	}
	return e.Key, e.Value, true
}

// Clear removes all entries and resets the hand. The capacity and eviction
// filter are kept.
func (c *Cache[K, V]) Clear() {
	clear(c.entries)
	c.order.Clear()
	c.hand = nil
}

// Keys returns the cached keys ordered oldest to newest.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.entries))
	for e := c.order.Back(); e != nil; e = e.Prev() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Values returns the cached values ordered oldest to newest.
func (c *Cache[K, V]) Values() []V {
	values := make([]V, 0, len(c.entries))
	for e := c.order.Back(); e != nil; e = e.Prev() {
		values = append(values, e.Value)
	}
	return values
}

// evictEntry performs the SIEVE scan: resume at the hand (or the oldest
// entry), spare visited entries while clearing their bits, and unlink the
// first entry that is unvisited and approved by the filter. The scan stops
// after examining Len() entries without finding a victim; the bits it
// cleared along the way stay cleared.
//
// Returns the unlinked entry, or nil when no entry was evictable.
func (c *Cache[K, V]) evictEntry() *list.Entry[K, V] {
	cur := c.hand
	if cur == nil {
		cur = c.order.Back()
	}

	budget := len(c.entries)
	for examined := 0; cur != nil; examined++ {
		if examined >= budget {
			return nil
		}
		if !cur.Visited && (c.filter == nil || c.filter(cur.Key, cur.Value)) {
			break
		}
		cur.Visited = false
		if prev := cur.Prev(); prev != nil {
			cur = prev
		} else {
			// Wrapped past the newest entry; restart at the oldest.
			cur = c.order.Back()
		}
	}
	if cur == nil {
		return nil
	}

	c.hand = cur.Prev()
	delete(c.entries, cur.Key)
	c.order.Remove(cur)
	return cur
}
