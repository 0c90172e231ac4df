package audio

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 512
	// RingSeconds is how much raw audio a source keeps for analyzer chunks.
	RingSeconds = 5
)

// Source yields the current volume in [0,1].
type Source interface {
	Level() float64
}

// Recorder exposes recent raw audio for analysis requests.
type Recorder interface {
	Samples(n int) []float32
	SampleRate() int
}

// Meter measures microphone volume from the default input device.
type Meter struct {
	rate     int
	stream   *portaudio.Stream
	tap      *Tap
	analyser *Analyser

	mu     sync.Mutex
	active bool
}

func NewMeter(rate int) *Meter {
	if rate <= 0 {
		rate = SampleRate
	}
	return &Meter{
		rate:     rate,
		tap:      NewTap(nil, rate*RingSeconds),
		analyser: NewAnalyser(),
	}
}

// Start opens a mono input stream on the default device.
func (m *Meter) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.rate), BufferSize, m.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		closeLogged("input stream", stream)
		portaudio.Terminate()
		return fmt.Errorf("start input stream: %w", err)
	}
	m.stream = stream
	m.active = true
	log.Printf("microphone open at %d Hz", m.rate)
	return nil
}

func (m *Meter) process(in []float32) {
	m.tap.Write(in)
}

// Stop closes the stream and forgets recorded audio.
func (m *Meter) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	if err := m.stream.Stop(); err != nil {
		log.Printf("stop input stream: %v", err)
	}
	closeLogged("input stream", m.stream)
	portaudio.Terminate()
	m.stream = nil
	m.active = false
	m.tap.Reset()
	m.analyser.Reset()
}

func (m *Meter) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return 0
	}
	return Volume(m.analyser.ByteFrequencyData(m.tap.Snapshot(FFTSize)))
}

func (m *Meter) Samples(n int) []float32 { return m.tap.Snapshot(n) }

func (m *Meter) SampleRate() int { return m.rate }

func closeLogged(what string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("close %s: %v", what, err)
	}
}
