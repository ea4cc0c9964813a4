package analysis

import (
	"math"
	"testing"

	"github.com/discochess/sift/benchmark/simulation"
)

func TestMannWhitneyU(t *testing.T) {
	tests := []struct {
		name       string
		sampleA    []float64
		sampleB    []float64
		wantSignif bool
	}{
		{
			name:       "identical samples",
			sampleA:    []float64{1, 2, 3, 4, 5},
			sampleB:    []float64{1, 2, 3, 4, 5},
			wantSignif: false,
		},
		{
			name:       "clearly different samples",
			sampleA:    []float64{1, 2, 3, 4, 5},
			sampleB:    []float64{10, 11, 12, 13, 14},
			wantSignif: true,
		},
		{
			name:       "highly overlapping samples",
			sampleA:    []float64{3, 4, 5, 6, 7},
			sampleB:    []float64{4, 5, 6, 7, 8},
			wantSignif: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MannWhitneyU(tt.sampleA, tt.sampleB)
			if result.Significant != tt.wantSignif {
				t.Errorf("Significant = %v, want %v (p=%f)", result.Significant, tt.wantSignif, result.PValue)
			}
		})
	}
}

func TestMannWhitneyU_Empty(t *testing.T) {
	result := MannWhitneyU([]float64{}, []float64{1, 2, 3})
	if result.U != 0 {
		t.Errorf("U = %f, want 0 for empty sample", result.U)
	}
	if result.Significant {
		t.Error("Significant = true, want false for empty sample")
	}
}

func TestEffectSize(t *testing.T) {
	tests := []struct {
		name       string
		sampleA    []float64
		sampleB    []float64
		wantInterp string
	}{
		{
			name:       "large effect",
			sampleA:    []float64{1, 2, 3, 4, 5},
			sampleB:    []float64{10, 11, 12, 13, 14},
			wantInterp: "large",
		},
		{
			name:       "negligible effect",
			sampleA:    []float64{5, 5, 5, 5, 5},
			sampleB:    []float64{5.1, 5, 4.9, 5, 5},
			wantInterp: "negligible",
		},
		{
			name:       "too few samples",
			sampleA:    []float64{5},
			sampleB:    []float64{6},
			wantInterp: "undefined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeEffectSize(tt.sampleA, tt.sampleB)
			if result.Interpretation != tt.wantInterp {
				t.Errorf("Interpretation = %s, want %s (d=%f)", result.Interpretation, tt.wantInterp, result.CohensD)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	sample := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	stats := Describe(sample)

	if stats.N != 10 {
		t.Errorf("N = %d, want 10", stats.N)
	}
	if stats.Mean != 5.5 {
		t.Errorf("Mean = %f, want 5.5", stats.Mean)
	}
	if stats.Min != 1 {
		t.Errorf("Min = %f, want 1", stats.Min)
	}
	if stats.Max != 10 {
		t.Errorf("Max = %f, want 10", stats.Max)
	}
	// Empirical quantiles land on sample points.
	if stats.Median != 5 {
		t.Errorf("Median = %f, want 5", stats.Median)
	}
	if stats.P25 != 3 {
		t.Errorf("P25 = %f, want 3", stats.P25)
	}
	if stats.P75 != 8 {
		t.Errorf("P75 = %f, want 8", stats.P75)
	}
}

func TestDescribe_Empty(t *testing.T) {
	stats := Describe([]float64{})
	if stats.N != 0 {
		t.Errorf("N = %d, want 0", stats.N)
	}
}

func TestDescribe_SingleValue(t *testing.T) {
	stats := Describe([]float64{42})

	if stats.N != 1 {
		t.Errorf("N = %d, want 1", stats.N)
	}
	if stats.StdDev != 0 {
		t.Errorf("StdDev = %f, want 0", stats.StdDev)
	}
	if stats.Min != 42 || stats.Max != 42 || stats.Median != 42 {
		t.Errorf("Min/Max/Median = %f/%f/%f, want 42", stats.Min, stats.Max, stats.Median)
	}
}

func TestBootstrapConfidenceInterval(t *testing.T) {
	sampleA := []float64{1, 2, 3, 4, 5}
	sampleB := []float64{6, 7, 8, 9, 10}

	result := BootstrapConfidenceInterval(sampleA, sampleB, 1000, 0.95)

	if math.Abs(result.MeanDiff-(-5)) > 0.1 {
		t.Errorf("MeanDiff = %f, want approximately -5", result.MeanDiff)
	}
	if result.LowerBound > result.MeanDiff || result.UpperBound < result.MeanDiff {
		t.Errorf("CI [%f, %f] does not contain mean diff %f", result.LowerBound, result.UpperBound, result.MeanDiff)
	}
}

func TestBootstrapConfidenceInterval_Deterministic(t *testing.T) {
	sampleA := []float64{1, 2, 3, 4, 5}
	sampleB := []float64{2, 4, 6, 8, 10}

	first := BootstrapConfidenceInterval(sampleA, sampleB, 200, 0.9)
	second := BootstrapConfidenceInterval(sampleA, sampleB, 200, 0.9)

	if first.LowerBound != second.LowerBound || first.UpperBound != second.UpperBound {
		t.Errorf("repeated runs differ: [%f, %f] vs [%f, %f]",
			first.LowerBound, first.UpperBound, second.LowerBound, second.UpperBound)
	}
}

// segmentedResult builds a SegmentedResult from per-segment (hits, lookups)
// pairs for comparison tests.
func segmentedResult(name string, hits []int, lookups int) *simulation.SegmentedResult {
	sr := &simulation.SegmentedResult{PolicyName: name}
	for _, h := range hits {
		sr.Segments = append(sr.Segments, simulation.Result{
			PolicyName: name,
			Lookups:    lookups,
			Hits:       h,
			Misses:     lookups - h,
		})
		sr.Total.Lookups += lookups
		sr.Total.Hits += h
		sr.Total.Misses += lookups - h
	}
	return sr
}

func TestComparePolicies_Winner(t *testing.T) {
	strong := segmentedResult("sieve", []int{80, 82, 81, 83, 84}, 100)
	weak := segmentedResult("lru", []int{60, 61, 59, 62, 60}, 100)

	comparison := ComparePolicies(strong, weak, 200, 0.95)

	if comparison.Winner != "sieve" {
		t.Errorf("Winner = %q, want %q", comparison.Winner, "sieve")
	}
	if !comparison.WinnerConfident {
		t.Error("WinnerConfident = false, want true for clearly separated samples")
	}
	if comparison.Summary() == "" {
		t.Error("Summary() returned empty string")
	}
}

func TestCompareAll(t *testing.T) {
	results := map[string]*simulation.SegmentedResult{
		"sieve":  segmentedResult("sieve", []int{80, 82, 81}, 100),
		"lru":    segmentedResult("lru", []int{60, 61, 59}, 100),
		"s3fifo": segmentedResult("s3fifo", []int{70, 71, 69}, 100),
	}

	multi := CompareAll(results, "sieve", 100, 0.95)
	if multi == nil {
		t.Fatal("CompareAll() = nil, want comparisons")
	}

	if multi.Baseline != "sieve" {
		t.Errorf("Baseline = %q, want %q", multi.Baseline, "sieve")
	}
	if len(multi.Comparisons) != 2 {
		t.Fatalf("Comparisons length = %d, want 2", len(multi.Comparisons))
	}
	// Sorted by policy name.
	if multi.Comparisons[0].PolicyB != "lru" || multi.Comparisons[1].PolicyB != "s3fifo" {
		t.Errorf("comparison order = [%s, %s], want [lru, s3fifo]",
			multi.Comparisons[0].PolicyB, multi.Comparisons[1].PolicyB)
	}
}

func TestCompareAll_MissingBaseline(t *testing.T) {
	results := map[string]*simulation.SegmentedResult{
		"lru": segmentedResult("lru", []int{60}, 100),
	}

	if multi := CompareAll(results, "sieve", 100, 0.95); multi != nil {
		t.Errorf("CompareAll() = %+v, want nil for missing baseline", multi)
	}
}
