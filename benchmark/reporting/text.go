package reporting

import (
	"fmt"
	"io"
	"time"

	"github.com/discochess/sift/benchmark/analysis"
	"github.com/discochess/sift/benchmark/simulation"
)

// Compile-time check that TextReport implements Report.
var _ Report = (*TextReport)(nil)

// TextReport generates benchmark reports as plain text for terminals.
type TextReport struct {
	w io.Writer
}

// NewTextReport creates a new plain text report writer.
func NewTextReport(w io.Writer) *TextReport {
	return &TextReport{w: w}
}

// WriteHeader writes the report header.
func (r *TextReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "=== %s ===\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
}

// WriteMethodology writes the methodology section.
func (r *TextReport) WriteMethodology(traceRef string, events, capacity, segments int) {
	fmt.Fprintln(r.w, "Methodology:")
	fmt.Fprintf(r.w, "  trace:    %s\n", traceRef)
	fmt.Fprintf(r.w, "  events:   %d\n", events)
	fmt.Fprintf(r.w, "  capacity: %d\n", capacity)
	fmt.Fprintf(r.w, "  segments: %d\n", segments)
	fmt.Fprintln(r.w, "  metric:   segment hit rate (higher is better)")
	fmt.Fprintln(r.w)
}

// WriteSummaryTable writes one line per policy.
func (r *TextReport) WriteSummaryTable(results map[string]*simulation.SegmentedResult) {
	fmt.Fprintf(r.w, "%-10s %10s %10s %10s %10s\n", "POLICY", "HIT RATE", "MEDIAN", "COLD", "WARM")

	for _, name := range sortedNames(results) {
		metrics := simulation.ComputeMetrics(results[name])
		fmt.Fprintf(r.w, "%-10s %9.2f%% %9.2f%% %9.2f%% %9.2f%%\n",
			name, metrics.HitRate, metrics.MedianSegmentHitRate,
			metrics.ColdHitRate, metrics.WarmHitRate)
	}
	fmt.Fprintln(r.w)
}

// WriteComparison writes the comparison summary.
func (r *TextReport) WriteComparison(comp *analysis.PolicyComparison) {
	fmt.Fprintln(r.w, comp.Summary())
	fmt.Fprintf(r.w, "  %.0f%% CI for mean difference: [%.2f, %.2f]\n",
		comp.Bootstrap.Confidence*100, comp.Bootstrap.LowerBound, comp.Bootstrap.UpperBound)
	fmt.Fprintln(r.w)
}

// WriteFooter closes the report.
func (r *TextReport) WriteFooter() {
	fmt.Fprintln(r.w, "report generated by sift-bench")
}
