// Package analysis provides statistical comparison of cache policy results.
package analysis

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MannWhitneyResult contains the result of a Mann-Whitney U test.
type MannWhitneyResult struct {
	U           float64 // U statistic.
	Z           float64 // Z score (normal approximation).
	PValue      float64 // Two-tailed p-value.
	Significant bool    // True if p < 0.05.
}

// MannWhitneyU performs the Mann-Whitney U test on two samples. This is a
// non-parametric test to determine whether two samples come from different
// distributions.
func MannWhitneyU(sampleA, sampleB []float64) *MannWhitneyResult {
	nA := float64(len(sampleA))
	nB := float64(len(sampleB))

	if nA == 0 || nB == 0 {
		return &MannWhitneyResult{}
	}

	combined := make([]float64, 0, len(sampleA)+len(sampleB))
	combined = append(combined, sampleA...)
	combined = append(combined, sampleB...)
	sort.Float64s(combined)

	// Tied values share the average of the ranks they span.
	rankOf := make(map[float64]float64, len(combined))
	for i := 0; i < len(combined); {
		j := i
		for j < len(combined) && combined[j] == combined[i] {
			j++
		}
		rankOf[combined[i]] = float64(i+j+1) / 2
		i = j
	}

	var rankSumA float64
	for _, v := range sampleA {
		rankSumA += rankOf[v]
	}

	uA := rankSumA - nA*(nA+1)/2
	uB := nA*nB - uA
	u := math.Min(uA, uB)

	// Normal approximation for large samples.
	mu := nA * nB / 2
	sigma := math.Sqrt(nA * nB * (nA + nB + 1) / 12)

	var z float64
	if sigma > 0 {
		z = (u - mu) / sigma
	}

	pValue := 2 * distuv.UnitNormal.CDF(-math.Abs(z))

	return &MannWhitneyResult{
		U:           u,
		Z:           z,
		PValue:      pValue,
		Significant: pValue < 0.05,
	}
}

// EffectSize contains the Cohen's d effect size for two samples.
type EffectSize struct {
	CohensD        float64
	Interpretation string // "negligible", "small", "medium", or "large".
}

// ComputeEffectSize computes Cohen's d: the difference in means scaled by
// the pooled standard deviation.
func ComputeEffectSize(sampleA, sampleB []float64) *EffectSize {
	if len(sampleA) < 2 || len(sampleB) < 2 {
		return &EffectSize{Interpretation: "undefined"}
	}

	nA := float64(len(sampleA))
	nB := float64(len(sampleB))
	pooledVar := ((nA-1)*stat.Variance(sampleA, nil) + (nB-1)*stat.Variance(sampleB, nil)) / (nA + nB - 2)

	var d float64
	if pooledVar > 0 {
		d = (stat.Mean(sampleA, nil) - stat.Mean(sampleB, nil)) / math.Sqrt(pooledVar)
	}

	return &EffectSize{
		CohensD:        d,
		Interpretation: interpretCohensD(math.Abs(d)),
	}
}

func interpretCohensD(d float64) string {
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// BootstrapResult contains a bootstrap confidence interval for the
// difference in sample means.
type BootstrapResult struct {
	MeanDiff   float64
	LowerBound float64
	UpperBound float64
	Confidence float64 // e.g. 0.95 for a 95% interval.
}

// BootstrapConfidenceInterval estimates a confidence interval for the mean
// difference by resampling with replacement. Resampling uses a fixed seed,
// so repeated runs produce identical intervals.
func BootstrapConfidenceInterval(sampleA, sampleB []float64, iterations int, confidence float64) *BootstrapResult {
	if len(sampleA) == 0 || len(sampleB) == 0 || iterations < 1 {
		return &BootstrapResult{Confidence: confidence}
	}

	actual := stat.Mean(sampleA, nil) - stat.Mean(sampleB, nil)

	rng := rand.New(rand.NewPCG(1, 1))
	bufA := make([]float64, len(sampleA))
	bufB := make([]float64, len(sampleB))

	diffs := make([]float64, iterations)
	for i := range diffs {
		resampleInto(rng, sampleA, bufA)
		resampleInto(rng, sampleB, bufB)
		diffs[i] = stat.Mean(bufA, nil) - stat.Mean(bufB, nil)
	}
	sort.Float64s(diffs)

	// Percentile method.
	alpha := 1 - confidence
	lower := int(alpha / 2 * float64(iterations))
	upper := int((1 - alpha/2) * float64(iterations))
	if lower < 0 {
		lower = 0
	}
	if upper >= iterations {
		upper = iterations - 1
	}

	return &BootstrapResult{
		MeanDiff:   actual,
		LowerBound: diffs[lower],
		UpperBound: diffs[upper],
		Confidence: confidence,
	}
}

// resampleInto fills into with values drawn from sample with replacement.
func resampleInto(rng *rand.Rand, sample, into []float64) {
	for i := range into {
		into[i] = sample[rng.IntN(len(sample))]
	}
}

// DescriptiveStats contains basic descriptive statistics for a sample.
type DescriptiveStats struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	P25    float64
	P75    float64
}

// Describe computes descriptive statistics for a sample.
func Describe(sample []float64) *DescriptiveStats {
	if len(sample) == 0 {
		return &DescriptiveStats{}
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	d := &DescriptiveStats{
		N:      len(sample),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	return d
}
