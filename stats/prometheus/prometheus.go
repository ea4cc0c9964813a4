// Package prometheus provides a Prometheus-based collector for cache events.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/sift/stats"
)

// Collector implements stats.Collector using Prometheus metrics. The event
// set is fixed, so every metric is created and registered once up front.
type Collector struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	insertions prometheus.Counter
	rejections prometheus.Counter
	evictions  prometheus.Counter
	size       prometheus.Gauge
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		hits:       registerCounter(registry, stats.MetricHits, "Lookups answered from the cache."),
		misses:     registerCounter(registry, stats.MetricMisses, "Lookups for keys not in the cache."),
		insertions: registerCounter(registry, stats.MetricInsertions, "Inserts that stored a value."),
		rejections: registerCounter(registry, stats.MetricRejections, "Inserts refused because nothing was evictable."),
		evictions:  registerCounter(registry, stats.MetricEvictions, "Entries displaced by the eviction scan."),
		size:       registerGauge(registry, stats.MetricSize, "Current number of cached entries."),
	}
}

// RecordHit increments the hit counter.
func (c *Collector) RecordHit() {
	c.hits.Inc()
}

// RecordMiss increments the miss counter.
func (c *Collector) RecordMiss() {
	c.misses.Inc()
}

// RecordInsertion increments the insertion counter.
func (c *Collector) RecordInsertion() {
	c.insertions.Inc()
}

// RecordRejection increments the rejection counter.
func (c *Collector) RecordRejection() {
	c.rejections.Inc()
}

// RecordEviction increments the eviction counter.
func (c *Collector) RecordEviction() {
	c.evictions.Inc()
}

// SetSize sets the size gauge.
func (c *Collector) SetSize(n int) {
	c.size.Set(float64(n))
}

func registerCounter(r prometheus.Registerer, name, help string) prometheus.Counter {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	})
	if err := r.Register(counter); err != nil {
		// If already registered, reuse the existing metric so two caches
		// sharing a registry both report.
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return counter
}

func registerGauge(r prometheus.Registerer, name, help string) prometheus.Gauge {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	if err := r.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing
			}
		}
	}
	return gauge
}
