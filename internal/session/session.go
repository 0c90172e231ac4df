// Package session assembles a live canvas from a config: the renderer and
// its loop, a volume source and an analyzer that run only while recording.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/voicecanvas/internal/analyzer"
	"github.com/san-kum/voicecanvas/internal/audio"
	"github.com/san-kum/voicecanvas/internal/config"
	"github.com/san-kum/voicecanvas/internal/engine"
	"github.com/san-kum/voicecanvas/internal/metrics"
	"github.com/san-kum/voicecanvas/internal/storage"
)

// SeriesLimit bounds the frames a live session keeps for plots and saves.
const SeriesLimit = 3600

// Deps overrides what New would otherwise build from the config.
type Deps struct {
	Source   audio.Source
	Recorder audio.Recorder
	Analyzer analyzer.Analyzer
}

// starter is a source that holds a device open between Start and Stop.
type starter interface {
	Start() error
	Stop()
}

type Session struct {
	cfg       *config.Config
	seed      int64
	renderer  *engine.Renderer
	loop      *engine.Loop
	collector *metrics.Collector

	source   audio.Source
	analyzer analyzer.Analyzer

	// toggleMu serializes whole start/stop transitions; mu guards the fields.
	toggleMu  sync.Mutex
	mu        sync.Mutex
	base      context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	recording bool
}

// New builds a session from cfg.
func New(cfg *config.Config) (*Session, error) {
	return NewWith(cfg, Deps{})
}

// NewWith builds a session, taking any non-nil field of deps in place of the
// configured one.
func NewWith(cfg *config.Config, deps Deps) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	r := engine.New(engine.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Style:  cfg.ArtStyle(),
		Rand:   rng,
	})
	collector := metrics.NewCollector(SeriesLimit)
	r.AddObserver(collector)

	s := &Session{
		cfg:       cfg,
		seed:      seed,
		renderer:  r,
		loop:      engine.NewLoop(r, cfg.FPS),
		collector: collector,
		base:      context.Background(),
	}

	src, rec := deps.Source, deps.Recorder
	if src == nil {
		src, rec = buildSource(cfg, rand.New(rand.NewSource(seed+1)), rec)
	}
	s.source = src

	s.analyzer = deps.Analyzer
	if s.analyzer == nil {
		s.analyzer = buildAnalyzer(cfg, rec, rand.New(rand.NewSource(seed+2)))
	}
	return s, nil
}

func buildSource(cfg *config.Config, rng *rand.Rand, rec audio.Recorder) (audio.Source, audio.Recorder) {
	switch cfg.VolumeSource {
	case config.VolumeMic:
		m := audio.NewMeter(cfg.SampleRate)
		if rec == nil {
			rec = m
		}
		return m, rec
	case config.VolumeSynth:
		syn := audio.NewSynth(audio.SynthParams{
			Base:   cfg.Synth.Base,
			Depth:  cfg.Synth.Depth,
			RateHz: cfg.Synth.RateHz,
			Burst:  cfg.Synth.Burst,
		}, cfg.SampleRate, rng)
		if rec == nil {
			rec = syn
		}
		return syn, rec
	}
	return nil, rec
}

func buildAnalyzer(cfg *config.Config, rec audio.Recorder, rng *rand.Rand) analyzer.Analyzer {
	switch cfg.Analyzer.Mode {
	case config.AnalyzerWebSocket:
		return analyzer.NewWebSocket(cfg.Analyzer.URL, cfg.AnalysisInterval(), rec)
	case config.AnalyzerCycle:
		return analyzer.NewCycle(cfg.AnalysisInterval(), rng)
	}
	return nil
}

func (s *Session) Renderer() *engine.Renderer    { return s.renderer }
func (s *Session) Collector() *metrics.Collector { return s.collector }
func (s *Session) Loop() *engine.Loop            { return s.loop }
func (s *Session) Seed() int64                   { return s.seed }

// Run ticks the renderer until ctx is done or Stop is called. Recording
// goroutines started during Run are bound to ctx and stopped on return.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()

	err := s.loop.Run(ctx)
	s.StopRecording()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop ends Run.
func (s *Session) Stop() { s.loop.Stop() }

func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// ToggleRecording flips between StartRecording and StopRecording and reports
// the new state.
func (s *Session) ToggleRecording() (bool, error) {
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()
	if s.Recording() {
		s.stopRecording()
		return false, nil
	}
	if err := s.startRecording(); err != nil {
		return false, err
	}
	return true, nil
}

// StartRecording opens the volume source and starts sampling and analysis.
// It is a no-op while already recording.
func (s *Session) StartRecording() error {
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()
	return s.startRecording()
}

func (s *Session) startRecording() error {
	if s.Recording() {
		return nil
	}

	if st, ok := s.source.(starter); ok {
		if err := st.Start(); err != nil {
			return fmt.Errorf("start volume source: %w", err)
		}
	}

	s.mu.Lock()
	ctx, cancel := context.WithCancel(s.base)
	s.cancel = cancel
	s.recording = true
	s.mu.Unlock()
	s.renderer.OnRecordingToggle(true)

	if s.source != nil {
		sampler := audio.NewSampler(s.source, s.renderer.OnVolumeSample, s.cfg.FrameInterval())
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			sampler.Run(ctx)
		}()
	}
	if s.analyzer != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.analyzer.Run(ctx, s.renderer.OnAnalysisUpdate); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("voicecanvas: analyzer stopped: %v", err)
			}
		}()
	}
	return nil
}

// StopRecording cancels sampling and analysis, waits for them to exit and
// then tells the renderer, which snapshots the canvas for undo.
func (s *Session) StopRecording() {
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()
	s.stopRecording()
}

// stopRecording keeps recording true until the source is closed and the
// renderer has been told, so observers never see a half-stopped session.
func (s *Session) stopRecording() {
	s.mu.Lock()
	cancel := s.cancel
	recording := s.recording
	s.mu.Unlock()
	if !recording {
		return
	}

	cancel()
	s.wg.Wait()
	if st, ok := s.source.(starter); ok {
		st.Stop()
	}
	s.renderer.OnRecordingToggle(false)

	s.mu.Lock()
	s.recording = false
	s.cancel = nil
	s.mu.Unlock()
}

// Save stores the current canvas and frame series under name.
func (s *Session) Save(st *storage.Store, name string) (string, error) {
	if err := st.Init(); err != nil {
		return "", err
	}
	status := s.renderer.Status()
	meta := storage.RunMetadata{
		Name:    name,
		Source:  s.cfg.VolumeSource,
		Seed:    s.seed,
		Style:   status.Style,
		Width:   status.Width,
		Height:  status.Height,
		FPS:     s.cfg.FPS,
		Metrics: s.collector.Values(),
	}
	if status.HasAnalysis {
		a := status.Analysis
		meta.Analysis = &a
	}
	var img storage.PNGEncoder
	if status.Width > 0 && status.Height > 0 {
		img = s.renderer
	}
	return st.Save(meta, s.collector.Series(), img)
}
