// Package reporting renders benchmark results as text or Markdown reports.
package reporting

import (
	"sort"

	"github.com/discochess/sift/benchmark/analysis"
	"github.com/discochess/sift/benchmark/simulation"
)

// Report renders the sections of a benchmark report in order.
type Report interface {
	// WriteHeader writes the report title.
	WriteHeader(title string)

	// WriteMethodology describes the replayed trace and its parameters.
	WriteMethodology(traceRef string, events, capacity, segments int)

	// WriteSummaryTable writes one row per policy, in name order.
	WriteSummaryTable(results map[string]*simulation.SegmentedResult)

	// WriteComparison writes a statistical comparison of two policies.
	WriteComparison(comp *analysis.PolicyComparison)

	// WriteFooter closes the report.
	WriteFooter()
}

// sortedNames returns the policy names in results in sorted order, so
// reports render deterministically.
func sortedNames(results map[string]*simulation.SegmentedResult) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
