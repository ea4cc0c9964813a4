// Package main provides the sift-bench CLI tool for comparing cache
// eviction policies on key traces.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
