package simulation

import (
	"sort"
)

// Metrics contains computed metrics from a segmented replay.
type Metrics struct {
	// Core metrics.
	PolicyName string
	Lookups    int
	Hits       int
	Misses     int
	HitRate    float64 // Percentage over the whole trace.

	// Per-segment distribution.
	MedianSegmentHitRate float64
	MinSegmentHitRate    float64
	MaxSegmentHitRate    float64

	// The first segment absorbs the cold misses; later segments show the
	// warmed-up cache.
	ColdHitRate float64 // Hit rate of the first segment.
	WarmHitRate float64 // Mean hit rate of the remaining segments.
}

// ComputeMetrics computes detailed metrics from a segmented result.
func ComputeMetrics(result *SegmentedResult) *Metrics {
	m := &Metrics{
		PolicyName: result.PolicyName,
		Lookups:    result.Total.Lookups,
		Hits:       result.Total.Hits,
		Misses:     result.Total.Misses,
		HitRate:    result.Total.HitRate(),
	}

	rates := result.HitRates()
	if len(rates) == 0 {
		return m
	}

	// Sort for percentile calculation.
	sorted := make([]float64, len(rates))
	copy(sorted, rates)
	sort.Float64s(sorted)

	m.MinSegmentHitRate = sorted[0]
	m.MaxSegmentHitRate = sorted[len(sorted)-1]
	m.MedianSegmentHitRate = percentile(sorted, 50)

	m.ColdHitRate = rates[0]
	if len(rates) > 1 {
		var sum float64
		for _, rate := range rates[1:] {
			sum += rate
		}
		m.WarmHitRate = sum / float64(len(rates)-1)
	} else {
		m.WarmHitRate = rates[0]
	}

	return m
}

// percentile returns the p-th percentile of a sorted sample.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
