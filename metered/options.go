package metered

import (
	"go.uber.org/zap"

	"github.com/discochess/sift"
	"github.com/discochess/sift/stats"
)

// Option configures a Cache.
type Option[K comparable, V any] interface {
	apply(*options[K, V])
}

// options holds the cache configuration.
type options[K comparable, V any] struct {
	collector stats.Collector
	logger    *zap.Logger
	filter    sift.EvictFilter[K, V]
}

// defaultOptions returns the default configuration.
func defaultOptions[K comparable, V any]() options[K, V] {
	return options[K, V]{
		collector: stats.NewNoop(),
		logger:    zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc[K comparable, V any] func(*options[K, V])

// Compile-time check that optionFunc implements Option.
var _ Option[string, any] = optionFunc[string, any](nil)

func (f optionFunc[K, V]) apply(o *options[K, V]) { f(o) }

// WithCollector sets the stats collector events are forwarded to.
// If not set, a no-op collector is used.
func WithCollector[K comparable, V any](c stats.Collector) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.collector = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger[K comparable, V any](l *zap.Logger) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.logger = l
	})
}

// WithEvictFilter installs an eviction filter on the underlying cache,
// see sift.NewWithEvictFilter.
func WithEvictFilter[K comparable, V any](filter sift.EvictFilter[K, V]) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.filter = filter
	})
}
