package audio

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
)

func TestVolume(t *testing.T) {
	fill := func(v uint8) []uint8 {
		b := make([]uint8, FFTSize/2)
		for i := range b {
			b[i] = v
		}
		return b
	}

	tests := []struct {
		name  string
		bytes []uint8
		want  float64
	}{
		{"empty", nil, 0},
		{"silent", fill(0), 0},
		{"half", fill(50), 0.5},
		{"full scale", fill(100), 1},
		{"clamped", fill(255), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Volume(tt.bytes); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func sine(bin int, amp float64) []float32 {
	s := make([]float32, FFTSize)
	for i := range s {
		s[i] = float32(amp * math.Sin(2*math.Pi*float64(bin)*float64(i)/FFTSize))
	}
	return s
}

func TestAnalyserSilence(t *testing.T) {
	a := NewAnalyser()
	for _, in := range [][]float32{nil, make([]float32, 10), make([]float32, FFTSize*2)} {
		bytes := a.ByteFrequencyData(in)
		if len(bytes) != FFTSize/2 {
			t.Fatalf("expected %d bins, got %d", FFTSize/2, len(bytes))
		}
		if v := Volume(bytes); v != 0 {
			t.Errorf("silence read as volume %v", v)
		}
	}
}

func TestAnalyserSine(t *testing.T) {
	a := NewAnalyser()
	bytes := a.ByteFrequencyData(sine(8, 1))

	if bytes[8] != 255 {
		t.Errorf("expected bin 8 saturated, got %d", bytes[8])
	}
	if bytes[100] >= 50 {
		t.Errorf("expected far bin quiet, got %d", bytes[100])
	}
	if Volume(bytes) <= 0 {
		t.Error("expected non-zero volume for a loud tone")
	}
}

func TestAnalyserSmoothing(t *testing.T) {
	a := NewAnalyser()
	a.ByteFrequencyData(sine(8, 1))

	decayed := a.ByteFrequencyData(nil)
	if decayed[8] == 0 {
		t.Error("smoothing should carry energy into the next frame")
	}

	a.Reset()
	if got := a.ByteFrequencyData(nil)[8]; got != 0 {
		t.Errorf("expected 0 after reset, got %d", got)
	}
}

func TestTapSnapshot(t *testing.T) {
	tap := NewTap(nil, 4)
	if got := tap.Snapshot(10); len(got) != 0 {
		t.Fatalf("fresh tap returned %d samples", len(got))
	}

	tap.Write([]float32{1, 2, 3})
	if got := tap.Snapshot(10); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("unexpected snapshot %v", got)
	}

	for i := 0; i < 300; i++ {
		tap.Write([]float32{float32(i)})
	}
	got := tap.Snapshot(10)
	if len(got) != 10 || got[0] != 290 || got[9] != 299 {
		t.Errorf("unexpected tail %v", got)
	}
	if all := tap.Snapshot(1 << 20); len(all) != FFTSize {
		t.Errorf("expected ring of %d, got %d", FFTSize, len(all))
	}

	tap.Reset()
	if len(tap.Snapshot(5)) != 0 {
		t.Error("reset tap should be empty")
	}
}

func TestTapWrapsStreamer(t *testing.T) {
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.25, -0.25}
		}
		return len(samples), true
	})
	tap := NewTap(src, 0)

	n, ok := tap.Stream(make([][2]float64, 5))
	if n != 5 || !ok {
		t.Fatalf("stream returned %d, %v", n, ok)
	}
	for _, s := range tap.Snapshot(5) {
		if s != 0.25 {
			t.Errorf("expected left channel 0.25, got %v", s)
		}
	}
	if tap.Err() != nil {
		t.Errorf("unexpected error %v", tap.Err())
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestSynthSteadyLevel(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	s := NewSynth(SynthParams{Base: 0.3}, 44100, rand.New(rand.NewSource(1)))
	s.now = clock.now

	if got := s.Level(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected 0.3, got %v", got)
	}
	clock.t = clock.t.Add(100 * time.Millisecond)
	if got := s.Level(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected 0.3, got %v", got)
	}

	samples := s.Samples(44100)
	if len(samples) != 4410 {
		t.Fatalf("expected 4410 samples for 100ms, got %d", len(samples))
	}
	for _, v := range samples {
		if math.Abs(float64(v)) > 0.3+1e-6 {
			t.Fatalf("sample %v exceeds envelope", v)
		}
	}
	if s.SampleRate() != 44100 {
		t.Errorf("unexpected sample rate %d", s.SampleRate())
	}
}

func TestSynthEnvelopeClamped(t *testing.T) {
	s := NewSynth(SynthParams{Base: 0.9, Depth: 0.5, RateHz: 3}, 0, rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		v := s.envelope(float64(i) * 0.01)
		if v < 0 || v > 1 {
			t.Fatalf("envelope(%v) = %v out of range", float64(i)*0.01, v)
		}
	}
}

func TestSynthBursts(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	s := NewSynth(SynthParams{Burst: 1}, 8000, rand.New(rand.NewSource(3)))
	s.now = clock.now

	peak := 0.0
	for i := 0; i < 200; i++ {
		peak = math.Max(peak, s.Level())
		clock.t = clock.t.Add(10 * time.Millisecond)
	}
	if peak < 0.5 {
		t.Errorf("expected syllable bursts, peak level %v", peak)
	}
}

type constSource float64

func (c constSource) Level() float64 { return float64(c) }

func TestSamplerRun(t *testing.T) {
	var (
		mu   sync.Mutex
		got  []float64
		last float64
	)
	sink := func(v float64) {
		mu.Lock()
		got = append(got, v)
		last = v
		mu.Unlock()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := NewSampler(constSource(0.7), sink, 5*time.Millisecond).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) < 2 {
		t.Fatalf("expected several samples, got %d", len(got))
	}
	if got[0] != 0.7 {
		t.Errorf("expected 0.7, got %v", got[0])
	}
	if last != 0 {
		t.Errorf("expected trailing zero, got %v", last)
	}
}

type failingCloser struct{ calls int }

func (f *failingCloser) Close() error {
	f.calls++
	return errors.New("device busy")
}

func TestCloseLoggedReportsError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	c := &failingCloser{}
	closeLogged("input stream", c)
	if c.calls != 1 {
		t.Errorf("expected one Close call, got %d", c.calls)
	}
	if !strings.Contains(buf.String(), "close input stream: device busy") {
		t.Errorf("expected close error to be logged, got %q", buf.String())
	}
}
