package analysis

import (
	"fmt"
	"sort"

	"github.com/discochess/sift/benchmark/simulation"
)

// PolicyComparison contains a full statistical comparison between the
// per-segment hit rates of two policies.
type PolicyComparison struct {
	PolicyA         string
	PolicyB         string
	StatsA          *DescriptiveStats
	StatsB          *DescriptiveStats
	MannWhitney     *MannWhitneyResult
	EffectSize      *EffectSize
	Bootstrap       *BootstrapResult
	Winner          string // Policy with the higher mean hit rate, or "tie".
	WinnerConfident bool   // True when the difference is statistically significant.
}

// ComparePolicies performs a full statistical comparison between two
// segmented results.
func ComparePolicies(a, b *simulation.SegmentedResult, bootstrapIterations int, confidence float64) *PolicyComparison {
	samplesA := a.HitRates()
	samplesB := b.HitRates()

	statsA := Describe(samplesA)
	statsB := Describe(samplesB)
	mw := MannWhitneyU(samplesA, samplesB)

	comparison := &PolicyComparison{
		PolicyA:     a.PolicyName,
		PolicyB:     b.PolicyName,
		StatsA:      statsA,
		StatsB:      statsB,
		MannWhitney: mw,
		EffectSize:  ComputeEffectSize(samplesA, samplesB),
		Bootstrap:   BootstrapConfidenceInterval(samplesA, samplesB, bootstrapIterations, confidence),
	}

	switch {
	case statsA.Mean > statsB.Mean:
		comparison.Winner = a.PolicyName
		comparison.WinnerConfident = mw.Significant
	case statsB.Mean > statsA.Mean:
		comparison.Winner = b.PolicyName
		comparison.WinnerConfident = mw.Significant
	default:
		comparison.Winner = "tie"
	}

	return comparison
}

// Summary returns a human-readable summary of the comparison.
func (c *PolicyComparison) Summary() string {
	sig := "not statistically significant"
	if c.MannWhitney.Significant {
		sig = fmt.Sprintf("statistically significant (p=%.4f)", c.MannWhitney.PValue)
	}

	return fmt.Sprintf(
		"%s vs %s:\n"+
			"  %s: mean=%.2f%%, median=%.2f%%, std=%.2f\n"+
			"  %s: mean=%.2f%%, median=%.2f%%, std=%.2f\n"+
			"  Difference: %.2f points (%.1f%%)\n"+
			"  Effect size: %.2f (%s)\n"+
			"  Result: %s, %s",
		c.PolicyA, c.PolicyB,
		c.PolicyA, c.StatsA.Mean, c.StatsA.Median, c.StatsA.StdDev,
		c.PolicyB, c.StatsB.Mean, c.StatsB.Median, c.StatsB.StdDev,
		c.StatsA.Mean-c.StatsB.Mean,
		safePctDiff(c.StatsA.Mean, c.StatsB.Mean),
		c.EffectSize.CohensD, c.EffectSize.Interpretation,
		c.Winner, sig,
	)
}

func safePctDiff(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// MultiComparison compares several policies against a baseline.
type MultiComparison struct {
	Baseline    string
	Comparisons []*PolicyComparison
}

// CompareAll compares every other policy in results against the baseline,
// in policy name order. It returns nil when the baseline is missing.
func CompareAll(results map[string]*simulation.SegmentedResult, baseline string, bootstrapIterations int, confidence float64) *MultiComparison {
	base, ok := results[baseline]
	if !ok {
		return nil
	}

	names := make([]string, 0, len(results))
	for name := range results {
		if name != baseline {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	multi := &MultiComparison{Baseline: baseline}
	for _, name := range names {
		multi.Comparisons = append(multi.Comparisons, ComparePolicies(base, results[name], bootstrapIterations, confidence))
	}

	return multi
}
