package trace

import (
	"fmt"
	"math/rand/v2"
)

// Defaults applied by Generate when the corresponding Config field is zero.
const (
	DefaultKeys   = 10_000
	DefaultEvents = 100_000
	DefaultSkew   = 1.1
)

// Config controls synthetic trace generation.
type Config struct {
	Keys   int     // distinct keys in the population
	Events int     // total accesses to emit
	Skew   float64 // Zipf skew parameter, must be greater than 1
	Seed   uint64  // PRNG seed; equal configs produce equal traces
}

// Generate synthesizes a Zipf-distributed trace: a small head of the key
// population receives most accesses, the way hot entries dominate real
// cache workloads. Generation is deterministic for a given Config.
func Generate(cfg Config) ([]string, error) {
	if cfg.Keys == 0 {
		cfg.Keys = DefaultKeys
	}
	if cfg.Events == 0 {
		cfg.Events = DefaultEvents
	}
	if cfg.Skew == 0 {
		cfg.Skew = DefaultSkew
	}

	if cfg.Keys < 1 {
		return nil, fmt.Errorf("trace: keys must be at least 1, got %d", cfg.Keys)
	}
	if cfg.Events < 1 {
		return nil, fmt.Errorf("trace: events must be at least 1, got %d", cfg.Events)
	}
	if cfg.Skew <= 1 {
		return nil, fmt.Errorf("trace: skew must be greater than 1, got %v", cfg.Skew)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	zipf := rand.NewZipf(rng, cfg.Skew, 1, uint64(cfg.Keys-1))

	keys := make([]string, cfg.Events)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%07d", zipf.Uint64())
	}
	return keys, nil
}
