// Package stats defines the metrics surface for instrumented caches.
//
// The core cache records nothing; the metered wrapper forwards its events
// to a Collector so callers choose where the numbers go: nowhere (Noop),
// a zap logger (stats/logger), or Prometheus (stats/prometheus).
package stats

// Metric names used by the provided collectors.
const (
	MetricHits       = "sift_hits_total"
	MetricMisses     = "sift_misses_total"
	MetricInsertions = "sift_insertions_total"
	MetricRejections = "sift_rejections_total"
	MetricEvictions  = "sift_evictions_total"
	MetricSize       = "sift_size"
)

// Collector receives cache events. Implementations must be safe for
// concurrent use; events arrive from whichever goroutine touched the cache.
type Collector interface {
	// RecordHit counts a lookup answered from the cache.
	RecordHit()

	// RecordMiss counts a lookup for an absent key.
	RecordMiss()

	// RecordInsertion counts a stored insert, both new keys and in-place
	// updates.
	RecordInsertion()

	// RecordRejection counts an insert the cache refused because no entry
	// was evictable.
	RecordRejection()

	// RecordEviction counts an entry displaced by the eviction scan.
	RecordEviction()

	// SetSize reports the current number of cached entries.
	SetSize(n int)
}
