// Package logger provides a zap-based collector that logs cache events.
package logger

import (
	"go.uber.org/zap"

	"github.com/discochess/sift/stats"
)

// Collector implements stats.Collector by logging each event via zap at
// debug level. Intended for development; a production cache emits far too
// many events for per-event logging.
type Collector struct {
	logger *zap.Logger
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new logger-based collector.
// If logger is nil, a no-op logger is used.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger}
}

// RecordHit logs a cache hit.
func (c *Collector) RecordHit() {
	c.logger.Debug("counter", zap.String("metric", stats.MetricHits))
}

// RecordMiss logs a cache miss.
func (c *Collector) RecordMiss() {
	c.logger.Debug("counter", zap.String("metric", stats.MetricMisses))
}

// RecordInsertion logs a stored insert.
func (c *Collector) RecordInsertion() {
	c.logger.Debug("counter", zap.String("metric", stats.MetricInsertions))
}

// RecordRejection logs a refused insert.
func (c *Collector) RecordRejection() {
	c.logger.Debug("counter", zap.String("metric", stats.MetricRejections))
}

// RecordEviction logs an eviction.
func (c *Collector) RecordEviction() {
	c.logger.Debug("counter", zap.String("metric", stats.MetricEvictions))
}

// SetSize logs the current cache size.
func (c *Collector) SetSize(n int) {
	c.logger.Debug("gauge",
		zap.String("metric", stats.MetricSize),
		zap.Int("value", n),
	)
}
