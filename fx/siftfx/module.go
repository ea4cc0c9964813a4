// Package siftfx provides an fx module for a metered string cache.
package siftfx

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/sift/metered"
	"github.com/discochess/sift/stats"
	"github.com/discochess/sift/stats/logger"
)

// Config holds configuration for the cache.
type Config struct {
	// Capacity is the maximum number of entries held in memory.
	Capacity int `env:"SIFT_CAPACITY" envDefault:"1024"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing cache config: %w", err)
	}
	return cfg, nil
}

// Module provides a metered string cache configured from the environment.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("sift",
	fx.Provide(
		LoadConfig,
		newStatsCollector,
		newCache,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("sift.stats"))
}

// Params holds dependencies for creating the cache.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided cache.
type Result struct {
	fx.Out

	Cache *metered.Cache[string, string]
}

func newCache(p Params) (Result, error) {
	cache, err := metered.New[string, string](p.Config.Capacity,
		metered.WithCollector[string, string](p.Collector),
		metered.WithLogger[string, string](p.Logger.Named("sift")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})

	return Result{Cache: cache}, nil
}
