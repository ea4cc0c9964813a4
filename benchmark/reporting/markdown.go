package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/discochess/sift/benchmark/analysis"
	"github.com/discochess/sift/benchmark/simulation"
)

// Compile-time check that MarkdownReport implements Report.
var _ Report = (*MarkdownReport)(nil)

// MarkdownReport generates benchmark reports in Markdown format.
type MarkdownReport struct {
	w io.Writer
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
}

// WriteMethodology writes the methodology section.
func (r *MarkdownReport) WriteMethodology(traceRef string, events, capacity, segments int) {
	fmt.Fprintln(r.w, "## Methodology")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Trace:** %s\n", traceRef)
	fmt.Fprintf(r.w, "- **Events replayed:** %d\n", events)
	fmt.Fprintf(r.w, "- **Cache capacity:** %d\n", capacity)
	fmt.Fprintf(r.w, "- **Segments:** %d\n", segments)
	fmt.Fprintln(r.w, "- **Metric:** Segment hit rate (higher is better)")
	fmt.Fprintln(r.w, "- **Statistical tests:** Mann-Whitney U (non-parametric), Cohen's d effect size")
	fmt.Fprintln(r.w)
}

// WriteSummaryTable writes the summary comparison table.
func (r *MarkdownReport) WriteSummaryTable(results map[string]*simulation.SegmentedResult) {
	fmt.Fprintln(r.w, "## Summary")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Policy | Hit Rate | Median Segment | Cold | Warm |")
	fmt.Fprintln(r.w, "|--------|----------|----------------|------|------|")

	for _, name := range sortedNames(results) {
		metrics := simulation.ComputeMetrics(results[name])
		fmt.Fprintf(r.w, "| %s | %.2f%% | %.2f%% | %.2f%% | %.2f%% |\n",
			name, metrics.HitRate, metrics.MedianSegmentHitRate,
			metrics.ColdHitRate, metrics.WarmHitRate)
	}
	fmt.Fprintln(r.w)
}

// WriteComparison writes a detailed comparison section.
func (r *MarkdownReport) WriteComparison(comp *analysis.PolicyComparison) {
	fmt.Fprintf(r.w, "## %s vs %s\n\n", comp.PolicyA, comp.PolicyB)

	fmt.Fprintln(r.w, "### Descriptive Statistics")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Metric | "+comp.PolicyA+" | "+comp.PolicyB+" |")
	fmt.Fprintln(r.w, "|--------|"+strings.Repeat("-", len(comp.PolicyA)+2)+"|"+strings.Repeat("-", len(comp.PolicyB)+2)+"|")
	fmt.Fprintf(r.w, "| Mean | %.2f%% | %.2f%% |\n", comp.StatsA.Mean, comp.StatsB.Mean)
	fmt.Fprintf(r.w, "| Median | %.2f%% | %.2f%% |\n", comp.StatsA.Median, comp.StatsB.Median)
	fmt.Fprintf(r.w, "| Std Dev | %.2f | %.2f |\n", comp.StatsA.StdDev, comp.StatsB.StdDev)
	fmt.Fprintf(r.w, "| Min | %.2f%% | %.2f%% |\n", comp.StatsA.Min, comp.StatsB.Min)
	fmt.Fprintf(r.w, "| Max | %.2f%% | %.2f%% |\n", comp.StatsA.Max, comp.StatsB.Max)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Statistical Analysis")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Mann-Whitney U:** %.2f (z=%.2f, p=%.4f)\n",
		comp.MannWhitney.U, comp.MannWhitney.Z, comp.MannWhitney.PValue)
	fmt.Fprintf(r.w, "- **Effect size (Cohen's d):** %.2f (%s)\n",
		comp.EffectSize.CohensD, comp.EffectSize.Interpretation)
	fmt.Fprintf(r.w, "- **%.0f%% CI for mean difference:** [%.2f, %.2f]\n",
		comp.Bootstrap.Confidence*100, comp.Bootstrap.LowerBound, comp.Bootstrap.UpperBound)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Conclusion")
	fmt.Fprintln(r.w)
	if comp.WinnerConfident {
		fmt.Fprintf(r.w, "**%s** shows statistically significant improvement over %s ",
			comp.Winner, otherPolicy(comp.Winner, comp.PolicyA, comp.PolicyB))
		fmt.Fprintf(r.w, "(p < 0.05, effect size: %s).\n", comp.EffectSize.Interpretation)
	} else {
		fmt.Fprintln(r.w, "No statistically significant difference detected between policies (p >= 0.05).")
	}
	fmt.Fprintln(r.w)
}

func otherPolicy(winner, a, b string) string {
	if winner == a {
		return b
	}
	return a
}

// WriteDistributionChart writes an ASCII chart of per-segment hit rates.
func (r *MarkdownReport) WriteDistributionChart(name string, rates []float64) {
	fmt.Fprintf(r.w, "### %s Segment Hit Rate Distribution\n\n", name)
	fmt.Fprintln(r.w, "```")

	const buckets = 10
	hist, lo, hi := makeHistogram(rates, buckets)

	maxCount := 0
	for _, count := range hist {
		if count > maxCount {
			maxCount = count
		}
	}

	width := 40
	for i, count := range hist {
		barLen := 0
		if maxCount > 0 {
			barLen = count * width / maxCount
		}
		bar := strings.Repeat("█", barLen)
		bucketLo := lo + (hi-lo)*float64(i)/buckets
		bucketHi := lo + (hi-lo)*float64(i+1)/buckets
		fmt.Fprintf(r.w, "%6.2f-%6.2f │ %s %d\n", bucketLo, bucketHi, bar, count)
	}

	fmt.Fprintln(r.w, "```")
	fmt.Fprintln(r.w)
}

func makeHistogram(data []float64, buckets int) (hist []int, lo, hi float64) {
	hist = make([]int, buckets)
	if len(data) == 0 {
		return hist, 0, 0
	}

	lo, hi = data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	span := (hi - lo) / float64(buckets)
	for _, v := range data {
		bucket := int((v - lo) / span)
		if bucket >= buckets {
			bucket = buckets - 1
		}
		hist[bucket]++
	}

	return hist, lo, hi
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by sift-bench*")
}
