package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/sift/benchmark/analysis"
	"github.com/discochess/sift/benchmark/policy"
	"github.com/discochess/sift/benchmark/policy/fifopolicy"
	"github.com/discochess/sift/benchmark/policy/lrupolicy"
	"github.com/discochess/sift/benchmark/policy/sievepolicy"
	"github.com/discochess/sift/benchmark/reporting"
	"github.com/discochess/sift/benchmark/simulation"
	"github.com/discochess/sift/benchmark/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a trace against cache policies",
	Long: `Run replays a key trace against every requested policy with the same
capacity, measures per-segment hit rates, and compares the policies
statistically against the first one given.

Examples:
  # Replay a local trace
  sift-bench run --trace trace.zst --capacity 5000

  # Replay a shared trace from object storage
  sift-bench run --trace gs://traces/zipf-hot.zst --capacity 5000`,
	RunE: runBenchmark,
}

var (
	traceRef     string
	capacity     int
	policyNames  []string
	segments     int
	outputFormat string
	outputFile   string
)

func init() {
	runCmd.Flags().StringVarP(&traceRef, "trace", "t", "", "trace to replay: local path, gs:// or s3:// object (supports .gz and .zst)")
	runCmd.Flags().IntVarP(&capacity, "capacity", "c", 1024, "cache capacity for every policy")
	runCmd.Flags().StringSliceVarP(&policyNames, "policies", "p", []string{"sieve", "lru", "s3fifo"}, "policies to compare")
	runCmd.Flags().IntVar(&segments, "segments", 10, "trace segments for statistical sampling")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, markdown")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	runCmd.MarkFlagRequired("trace")

	rootCmd.AddCommand(runCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	logger.Debug("loading trace", zap.String("ref", traceRef))

	keys, err := trace.Load(context.Background(), traceRef)
	if err != nil {
		return fmt.Errorf("loading trace: %w", err)
	}
	if len(keys) == 0 {
		return fmt.Errorf("no keys found in %s", traceRef)
	}

	logger.Debug("trace loaded", zap.Int("events", len(keys)))

	policies := make([]policy.Policy, 0, len(policyNames))
	for _, name := range policyNames {
		p, err := createPolicy(name, capacity)
		if err != nil {
			return err
		}
		policies = append(policies, p)
	}

	logger.Debug("running simulation",
		zap.Int("capacity", capacity),
		zap.Int("segments", segments),
	)

	sim := simulation.NewSimulator(policies...)
	results, err := sim.ReplaySegmented(keys, segments)
	if err != nil {
		return fmt.Errorf("replaying trace: %w", err)
	}

	// Compare everything against the first policy given.
	var multi *analysis.MultiComparison
	if len(policies) >= 2 {
		multi = analysis.CompareAll(results, policies[0].Name(), 10000, 0.95)
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var report reporting.Report
	switch outputFormat {
	case "markdown":
		report = reporting.NewMarkdownReport(output)
	case "text":
		report = reporting.NewTextReport(output)
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}

	report.WriteHeader("Cache Eviction Policy Benchmark")
	report.WriteMethodology(traceRef, len(keys), capacity, segments)
	report.WriteSummaryTable(results)
	if multi != nil {
		for _, comp := range multi.Comparisons {
			report.WriteComparison(comp)
		}
	}
	if md, ok := report.(*reporting.MarkdownReport); ok {
		for _, p := range policies {
			md.WriteDistributionChart(p.Name(), results[p.Name()].HitRates())
		}
	}
	report.WriteFooter()

	return nil
}

func createPolicy(name string, capacity int) (policy.Policy, error) {
	switch strings.ToLower(name) {
	case "sieve":
		return sievepolicy.New(capacity)
	case "lru":
		return lrupolicy.New(capacity)
	case "s3fifo":
		return fifopolicy.New(capacity), nil
	default:
		return nil, fmt.Errorf("unknown policy: %s", name)
	}
}
