package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/voicecanvas/internal/art"
)

const (
	DefaultWidth            = 960
	DefaultHeight           = 540
	DefaultFPS              = 60
	DefaultAnalysisInterval = 2500
	DefaultDataDir          = ".voicecanvas"
	DefaultSampleRate       = 44100
)

const (
	VolumeMic   = "mic"
	VolumeSynth = "synth"
	VolumeNone  = "none"
)

const (
	AnalyzerWebSocket = "websocket"
	AnalyzerCycle     = "cycle"
	AnalyzerNone      = "none"
)

type Config struct {
	Width              int            `yaml:"width"`
	Height             int            `yaml:"height"`
	FPS                int            `yaml:"fps"`
	Style              string         `yaml:"style"`
	Seed               int64          `yaml:"seed"`
	AnalysisIntervalMs int            `yaml:"analysis_interval_ms"`
	VolumeSource       string         `yaml:"volume_source"`
	SampleRate         int            `yaml:"sample_rate"`
	Analyzer           AnalyzerConfig `yaml:"analyzer"`
	Synth              SynthConfig    `yaml:"synth"`
	DataDir            string         `yaml:"data_dir"`
}

type AnalyzerConfig struct {
	Mode string `yaml:"mode"`
	URL  string `yaml:"url"`
}

// SynthConfig shapes the synthetic volume envelope: a base level modulated
// by a slow LFO of the given depth, plus random syllable bursts.
type SynthConfig struct {
	Base   float64 `yaml:"base"`
	Depth  float64 `yaml:"depth"`
	RateHz float64 `yaml:"rate_hz"`
	Burst  float64 `yaml:"burst"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		FPS:                DefaultFPS,
		Style:              string(art.DefaultStyle),
		AnalysisIntervalMs: DefaultAnalysisInterval,
		VolumeSource:       VolumeSynth,
		SampleRate:         DefaultSampleRate,
		Analyzer: AnalyzerConfig{
			Mode: AnalyzerCycle,
			URL:  "ws://localhost:8765/analyze",
		},
		Synth: SynthConfig{
			Base:   0.35,
			Depth:  0.3,
			RateHz: 0.5,
			Burst:  0.4,
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields a session cannot start without.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.AnalysisIntervalMs <= 0 {
		return fmt.Errorf("analysis_interval_ms must be positive, got %d", c.AnalysisIntervalMs)
	}
	if _, err := art.ParseStyle(c.Style); err != nil {
		return err
	}
	switch c.VolumeSource {
	case VolumeMic, VolumeSynth, VolumeNone:
	default:
		return fmt.Errorf("unknown volume_source %q", c.VolumeSource)
	}
	switch c.Analyzer.Mode {
	case AnalyzerWebSocket:
		if c.Analyzer.URL == "" {
			return fmt.Errorf("analyzer url required in websocket mode")
		}
	case AnalyzerCycle, AnalyzerNone:
	default:
		return fmt.Errorf("unknown analyzer mode %q", c.Analyzer.Mode)
	}
	return nil
}

// ArtStyle returns the configured style, falling back to the default.
func (c *Config) ArtStyle() art.Style {
	s, _ := art.ParseStyle(c.Style)
	return s
}

func (c *Config) AnalysisInterval() time.Duration {
	if c.AnalysisIntervalMs <= 0 {
		return DefaultAnalysisInterval * time.Millisecond
	}
	return time.Duration(c.AnalysisIntervalMs) * time.Millisecond
}

func (c *Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
