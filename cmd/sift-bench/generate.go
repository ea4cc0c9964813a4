package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/sift/benchmark/trace"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic Zipf-distributed trace",
	Long: `Generate writes a synthetic key trace whose key popularity follows a
Zipf distribution, the usual shape of real cache workloads. Traces written
to .gz or .zst paths are compressed.

Examples:
  # One million events over fifty thousand keys
  sift-bench generate --output trace.zst --keys 50000 --events 1000000

  # A reproducible trace
  sift-bench generate --output trace.zst --seed 42`,
	RunE: runGenerate,
}

var (
	genOutput string
	genKeys   int
	genEvents int
	genSkew   float64
	genSeed   uint64
)

func init() {
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "trace.zst", "output file (.gz and .zst are compressed)")
	generateCmd.Flags().IntVar(&genKeys, "keys", trace.DefaultKeys, "distinct keys in the population")
	generateCmd.Flags().IntVar(&genEvents, "events", trace.DefaultEvents, "total accesses to emit")
	generateCmd.Flags().Float64Var(&genSkew, "zipf-s", trace.DefaultSkew, "Zipf skew parameter (must be > 1)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "PRNG seed for reproducible traces")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	keys, err := trace.Generate(trace.Config{
		Keys:   genKeys,
		Events: genEvents,
		Skew:   genSkew,
		Seed:   genSeed,
	})
	if err != nil {
		return fmt.Errorf("generating trace: %w", err)
	}

	if err := trace.WriteFile(genOutput, keys); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}

	logger.Debug("trace written",
		zap.String("path", genOutput),
		zap.Uint64("seed", genSeed),
	)
	fmt.Printf("wrote %d events to %s\n", len(keys), genOutput)

	return nil
}
