// Package simulation replays key traces against cache policies and records
// hit rates.
package simulation

import (
	"fmt"

	"github.com/discochess/sift/benchmark/policy"
)

// Simulator replays traces against a set of cache policies.
//
// Policies keep their cache contents between calls, so pass freshly
// constructed policies for independent runs.
type Simulator struct {
	policies []policy.Policy
}

// NewSimulator creates a Simulator over the given policies.
func NewSimulator(policies ...policy.Policy) *Simulator {
	return &Simulator{policies: policies}
}

// Replay runs every policy over the trace and returns results keyed by
// policy name. A lookup miss stores the key so later accesses can hit; the
// stored value is the key itself since only hit rates are measured.
func (s *Simulator) Replay(keys []string) map[string]*Result {
	results := make(map[string]*Result, len(s.policies))

	for _, p := range s.policies {
		result := &Result{PolicyName: p.Name()}
		replayInto(p, keys, result)
		results[p.Name()] = result
	}

	return results
}

// ReplaySegmented splits the trace into contiguous segments and replays them
// in order, so per-segment hit rates can feed statistical comparison. The
// caches are not reset between segments; the first segment absorbs the cold
// misses.
func (s *Simulator) ReplaySegmented(keys []string, segments int) (map[string]*SegmentedResult, error) {
	if segments < 1 {
		return nil, fmt.Errorf("simulation: segments must be at least 1, got %d", segments)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("simulation: empty trace")
	}
	if segments > len(keys) {
		segments = len(keys)
	}

	results := make(map[string]*SegmentedResult, len(s.policies))

	for _, p := range s.policies {
		sr := &SegmentedResult{
			PolicyName: p.Name(),
			Total:      Result{PolicyName: p.Name()},
			Segments:   make([]Result, 0, segments),
		}

		for seg := 0; seg < segments; seg++ {
			start := seg * len(keys) / segments
			end := (seg + 1) * len(keys) / segments

			segment := Result{PolicyName: p.Name()}
			replayInto(p, keys[start:end], &segment)
			sr.Segments = append(sr.Segments, segment)

			sr.Total.Lookups += segment.Lookups
			sr.Total.Hits += segment.Hits
			sr.Total.Misses += segment.Misses
		}

		results[p.Name()] = sr
	}

	return results, nil
}

// replayInto feeds keys through p, counting lookups into result.
func replayInto(p policy.Policy, keys []string, result *Result) {
	for _, key := range keys {
		result.Lookups++
		if _, ok := p.Get(key); ok {
			result.Hits++
			continue
		}
		result.Misses++
		p.Set(key, key)
	}
}

// Result counts lookups for one policy over one trace or segment.
type Result struct {
	PolicyName string
	Lookups    int
	Hits       int
	Misses     int
}

// HitRate returns the hit rate as a percentage.
func (r *Result) HitRate() float64 {
	if r.Lookups == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Lookups) * 100
}

// SegmentedResult holds per-segment and total counts for one policy.
type SegmentedResult struct {
	PolicyName string
	Segments   []Result
	Total      Result
}

// HitRates returns the per-segment hit rates. These are the samples used
// for statistical comparison between policies.
func (r *SegmentedResult) HitRates() []float64 {
	rates := make([]float64, len(r.Segments))
	for i := range r.Segments {
		rates[i] = r.Segments[i].HitRate()
	}
	return rates
}
