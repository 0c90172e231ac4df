package metrics

import "github.com/san-kum/voicecanvas/internal/engine"

// Population is the mean number of live particles per drawn frame.
type Population struct {
	name    string
	total   float64
	samples int
}

func NewPopulation() *Population {
	return &Population{name: "population_mean"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(s engine.FrameStats) {
	if s.Skipped {
		return
	}
	p.total += float64(s.Population)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *Population) Reset() {
	p.total = 0
	p.samples = 0
}

type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "population_peak"}
}

func (p *PeakPopulation) Name() string { return p.name }

func (p *PeakPopulation) Observe(s engine.FrameStats) {
	p.peak = max(p.peak, s.Population)
}

func (p *PeakPopulation) Value() float64 { return float64(p.peak) }

func (p *PeakPopulation) Reset() { p.peak = 0 }
