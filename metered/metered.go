// Package metered wraps a cache with hit/miss accounting.
//
// The wrapper owns a synchronized cache, keeps local atomic counters for
// cheap Stats() snapshots, and forwards every event to a stats.Collector
// for export (see the stats/logger and stats/prometheus packages). Close
// logs a final summary; the cache stays usable afterwards, it just stops
// being summarized.
//
// Example usage:
//
//	cache, err := metered.New[string, []byte](10_000,
//	    metered.WithLogger[string, []byte](logger),
//	    metered.WithCollector[string, []byte](prometheus.New(nil)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
package metered

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/sift"
	"github.com/discochess/sift/stats"
	"github.com/discochess/sift/synced"
)

// ErrClosed indicates the cache has already been closed.
var ErrClosed = errors.New("metered: cache closed")

// Stats is a point-in-time snapshot of the cache counters.
type Stats struct {
	Hits       int64
	Misses     int64
	Insertions int64
	Rejections int64
	Evictions  int64
	Size       int
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Cache is an instrumented cache. It is safe for concurrent use by multiple
// goroutines.
type Cache[K comparable, V any] struct {
	cache     *synced.Cache[K, V]
	collector stats.Collector
	logger    *zap.Logger

	hits       atomic.Int64
	misses     atomic.Int64
	insertions atomic.Int64
	rejections atomic.Int64
	evictions  atomic.Int64

	closed atomic.Bool
}

// New creates an instrumented cache with the given capacity and options.
// Returns sift.ErrInvalidCapacity if capacity is less than 1.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	cfg := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	inner, err := synced.NewWithEvictFilter(capacity, cfg.filter)
	if err != nil {
		return nil, err
	}

	c := &Cache[K, V]{
		cache:     inner,
		collector: cfg.collector,
		logger:    cfg.logger,
	}

	c.logger.Debug("cache initialized",
		zap.Int("capacity", capacity),
		zap.Bool("evictFilter", cfg.filter != nil),
	)

	return c, nil
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache[K, V]) Capacity() int {
	return c.cache.Capacity()
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	return c.cache.Len()
}

// ContainsKey reports whether key is cached. Probes are not counted as
// lookups and do not touch the entry's visited bit.
func (c *Cache[K, V]) ContainsKey(key K) bool {
	return c.cache.ContainsKey(key)
}

// Get returns the value cached under key, counting a hit or miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	value, ok := c.cache.Get(key)
	if ok {
		c.hits.Add(1)
		c.collector.RecordHit()
	} else {
		c.misses.Add(1)
		c.collector.RecordMiss()
	}
	return value, ok
}

// Update applies fn to the value cached under key in place, counting a hit
// or miss. It reports whether key was present.
func (c *Cache[K, V]) Update(key K, fn func(*V)) bool {
	ok := c.cache.Update(key, fn)
	if ok {
		c.hits.Add(1)
		c.collector.RecordHit()
	} else {
		c.misses.Add(1)
		c.collector.RecordMiss()
	}
	return ok
}

// Insert stores value under key, counting the insertion, any eviction it
// forced, and rejections when nothing was evictable. See sift.Cache.Insert
// for the meaning of the two results.
func (c *Cache[K, V]) Insert(key K, value V) (wasNew, stored bool) {
	var evicted bool
	c.cache.WithLock(func(inner *sift.Cache[K, V]) {
		full := inner.Len() == inner.Capacity()
		wasNew, stored = inner.Insert(key, value)
		// A new entry stored into a full cache means the scan displaced one.
		evicted = wasNew && stored && full
	})

	switch {
	case stored:
		c.insertions.Add(1)
		c.collector.RecordInsertion()
	default:
		c.rejections.Add(1)
		c.collector.RecordRejection()
	}
	if evicted {
		c.evictions.Add(1)
		c.collector.RecordEviction()
	}
	c.collector.SetSize(c.cache.Len())

	return wasNew, stored
}

// Remove deletes key from the cache and returns its value.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	value, ok := c.cache.Remove(key)
	if ok {
		c.collector.SetSize(c.cache.Len())
	}
	return value, ok
}

// Evict runs one eviction scan and returns the evicted key and value, if any.
func (c *Cache[K, V]) Evict() (K, V, bool) {
	key, value, ok := c.cache.Evict()
	if ok {
		c.evictions.Add(1)
		c.collector.RecordEviction()
		c.collector.SetSize(c.cache.Len())
	}
	return key, value, ok
}

// Clear removes all entries. The counters are not reset; they describe the
// cache's whole lifetime.
func (c *Cache[K, V]) Clear() {
	c.cache.Clear()
	c.collector.SetSize(0)
}

// Keys returns the cached keys ordered oldest to newest.
func (c *Cache[K, V]) Keys() []K {
	return c.cache.Keys()
}

// Values returns the cached values ordered oldest to newest.
func (c *Cache[K, V]) Values() []V {
	return c.cache.Values()
}

// Stats returns a snapshot of the lifetime counters and the current size.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Insertions: c.insertions.Load(),
		Rejections: c.rejections.Load(),
		Evictions:  c.evictions.Load(),
		Size:       c.cache.Len(),
	}
}

// Close logs the final stats summary. The first call returns nil; later
// calls return ErrClosed. The cache itself remains usable after Close.
func (c *Cache[K, V]) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	s := c.Stats()
	c.logger.Info("cache closed",
		zap.Int64("hits", s.Hits),
		zap.Int64("misses", s.Misses),
		zap.Int64("insertions", s.Insertions),
		zap.Int64("rejections", s.Rejections),
		zap.Int64("evictions", s.Evictions),
		zap.Int("size", s.Size),
		zap.Float64("hitRate", s.HitRate()),
	)

	return nil
}
