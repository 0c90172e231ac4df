// Package metrics summarises renderer frames into named scalar values.
package metrics

import (
	"sync"

	"github.com/san-kum/voicecanvas/internal/engine"
)

type Metric interface {
	Name() string
	Observe(s engine.FrameStats)
	Value() float64
	Reset()
}

// Defaults returns the metric set recorded for every run.
func Defaults() []Metric {
	return []Metric{
		NewPopulation(),
		NewPeakPopulation(),
		NewSpawnTotal(),
		NewActivity(),
	}
}

// Collector is an engine.Observer that feeds its metrics and keeps the
// per-frame series. It is safe to read while the renderer is ticking.
type Collector struct {
	mu      sync.Mutex
	metrics []Metric
	series  []engine.FrameStats
	limit   int
}

// NewCollector observes frames into metrics. A positive limit bounds the
// series to the most recent frames.
func NewCollector(limit int, metrics ...Metric) *Collector {
	if len(metrics) == 0 {
		metrics = Defaults()
	}
	return &Collector{metrics: metrics, limit: limit}
}

func (c *Collector) OnFrame(s engine.FrameStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.metrics {
		m.Observe(s)
	}
	c.series = append(c.series, s)
	if c.limit > 0 && len(c.series) > c.limit {
		c.series = append(c.series[:0], c.series[len(c.series)-c.limit:]...)
	}
}

// Values returns every metric keyed by name.
func (c *Collector) Values() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Series returns a copy of the recorded frames, oldest first.
func (c *Collector) Series() []engine.FrameStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]engine.FrameStats, len(c.series))
	copy(out, c.series)
	return out
}

// Volumes returns the volume of every recorded frame.
func (c *Collector) Volumes() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]float64, len(c.series))
	for i, s := range c.series {
		out[i] = s.Volume
	}
	return out
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.metrics {
		m.Reset()
	}
	c.series = c.series[:0]
}
