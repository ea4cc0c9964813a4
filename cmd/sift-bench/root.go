package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags.
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "sift-bench",
	Short: "Benchmark SIEVE against other cache eviction policies",
	Long: `sift-bench compares cache eviction policies by replaying key traces.

It measures hit rates over trace segments and runs statistical tests to
determine whether the policies differ significantly.

Examples:
  # Generate a synthetic Zipf-distributed trace
  sift-bench generate --output trace.zst --keys 50000 --events 1000000

  # Replay a trace against the default policies
  sift-bench run --trace trace.zst --capacity 5000

  # Compare two policies and write a markdown report
  sift-bench run --trace trace.zst --policies sieve,lru --format markdown --output report.md`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			logger = l
		}
		return nil
	}
}
