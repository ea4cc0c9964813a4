// Package policy defines the cache interface trace replays run against.
//
// Each implementation adapts one eviction policy to a common surface so the
// simulator can compare them on identical workloads: this library's SIEVE,
// hashicorp's LRU, and golang-fifo's S3-FIFO as an external baseline.
package policy

// Policy is a fixed-capacity string cache under test. Implementations need
// not be safe for concurrent use; the simulator replays traces from a
// single goroutine.
type Policy interface {
	// Name identifies the policy in results and reports.
	Name() string

	// Get looks up key, with whatever access-tracking side effects the
	// policy has.
	Get(key string) (string, bool)

	// Set stores value under key, evicting by the policy's rules.
	Set(key, value string)

	// Len returns the number of entries currently held.
	Len() int
}
