package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap records the most recent mono samples into a ring buffer. It can wrap a
// beep.Streamer, recording the left channel of whatever passes through, or be
// written to directly.
type Tap struct {
	Source    beep.Streamer
	buffer    []float32
	nextIndex int
	written   int
	mu        sync.RWMutex
}

// NewTap allocates a ring of ringSize samples, at least FFTSize.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	ringSize = max(ringSize, FFTSize)
	return &Tap{
		Source: src,
		buffer: make([]float32, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	if t.Source == nil {
		return 0, false
	}
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.put(float32(samples[i][0]))
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error {
	if t.Source == nil {
		return nil
	}
	return t.Source.Err()
}

// Write records samples as they are.
func (t *Tap) Write(samples []float32) {
	t.mu.Lock()
	for _, s := range samples {
		t.put(s)
	}
	t.mu.Unlock()
}

func (t *Tap) put(s float32) {
	t.buffer[t.nextIndex] = s
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.written < len(t.buffer) {
		t.written++
	}
}

// Snapshot returns up to the last n samples, most recent last.
func (t *Tap) Snapshot(n int) []float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.written {
		n = t.written
	}
	out := make([]float32, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// Reset forgets every recorded sample.
func (t *Tap) Reset() {
	t.mu.Lock()
	t.nextIndex = 0
	t.written = 0
	t.mu.Unlock()
}
