package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/faiface/beep"
)

type SynthParams struct {
	Base   float64
	Depth  float64
	RateHz float64
	Burst  float64
}

// Synth fakes a speaking voice: a slow LFO envelope plus half-sine syllable
// bursts at random intervals. Level reports the envelope; the signal itself is
// envelope-shaped noise streamed through a Tap so analyzers get real samples.
type Synth struct {
	params SynthParams
	rate   beep.SampleRate
	rng    *rand.Rand
	tap    *Tap
	now    func() time.Time

	mu         sync.Mutex
	start      time.Time
	last       time.Time
	pos        int
	burstStart float64
	burstLen   float64
	nextBurst  float64
	buf        [][2]float64
}

func NewSynth(p SynthParams, rate int, rng *rand.Rand) *Synth {
	if rate <= 0 {
		rate = SampleRate
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Synth{
		params: p,
		rate:   beep.SampleRate(rate),
		rng:    rng,
		now:    time.Now,
	}
	s.tap = NewTap(beep.StreamerFunc(s.stream), rate*RingSeconds)
	return s
}

// envelope is the volume at t seconds since the synth started.
func (s *Synth) envelope(t float64) float64 {
	v := s.params.Base + s.params.Depth*math.Sin(2*math.Pi*s.params.RateHz*t)
	if t >= s.burstStart && t < s.burstStart+s.burstLen && s.burstLen > 0 {
		v += s.params.Burst * math.Sin(math.Pi*(t-s.burstStart)/s.burstLen)
	}
	return math.Max(0, math.Min(1, v))
}

// Level advances the synth to the current time and returns its envelope.
func (s *Synth) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.start.IsZero() {
		s.start, s.last = now, now
	}
	s.advance(now.Sub(s.last))
	s.last = now

	t := now.Sub(s.start).Seconds()
	s.schedule(t)
	return s.envelope(t)
}

// schedule starts a new syllable once the previous one and its gap are over.
func (s *Synth) schedule(t float64) {
	if t < s.nextBurst {
		return
	}
	s.burstStart = t
	s.burstLen = 0.12 + s.rng.Float64()*0.2
	s.nextBurst = t + s.burstLen + 0.1 + s.rng.Float64()*0.6
}

// advance pulls d worth of samples through the tap, at most one ring.
func (s *Synth) advance(d time.Duration) {
	n := min(s.rate.N(d), len(s.tap.buffer))
	for n > 0 {
		chunk := min(n, 1024)
		if cap(s.buf) < chunk {
			s.buf = make([][2]float64, chunk)
		}
		s.tap.Stream(s.buf[:chunk])
		n -= chunk
	}
}

func (s *Synth) stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(s.pos) / float64(s.rate)
		v := (s.rng.Float64()*2 - 1) * s.envelope(t)
		samples[i] = [2]float64{v, v}
		s.pos++
	}
	return len(samples), true
}

func (s *Synth) Samples(n int) []float32 { return s.tap.Snapshot(n) }

func (s *Synth) SampleRate() int { return int(s.rate) }
