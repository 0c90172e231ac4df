package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/voicecanvas/internal/art"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Style != string(art.Watercolor) {
		t.Errorf("expected style Watercolor, got %s", cfg.Style)
	}
	if cfg.AnalysisInterval() != 2500*time.Millisecond {
		t.Errorf("expected 2.5s analysis interval, got %v", cfg.AnalysisInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	cfg := DefaultConfig()
	cfg.Style = "Neon"
	cfg.Width = 320
	cfg.Analyzer.Mode = AnalyzerWebSocket
	cfg.Synth.Burst = 0.9

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Style != "Neon" || got.Width != 320 || got.Analyzer.Mode != AnalyzerWebSocket || got.Synth.Burst != 0.9 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("style: Abstract\nfps: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ArtStyle() != art.Abstract {
		t.Errorf("expected Abstract, got %s", cfg.ArtStyle())
	}
	if cfg.FrameInterval() != time.Second/30 {
		t.Errorf("unexpected frame interval %v", cfg.FrameInterval())
	}
	if cfg.Width != DefaultWidth || cfg.AnalysisIntervalMs != DefaultAnalysisInterval {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"zero interval", func(c *Config) { c.AnalysisIntervalMs = 0 }},
		{"unknown style", func(c *Config) { c.Style = "Cubist" }},
		{"unknown volume source", func(c *Config) { c.VolumeSource = "radio" }},
		{"unknown analyzer", func(c *Config) { c.Analyzer.Mode = "oracle" }},
		{"websocket without url", func(c *Config) {
			c.Analyzer.Mode = AnalyzerWebSocket
			c.Analyzer.URL = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("Neon", "rave")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.ArtStyle() != art.Neon {
		t.Errorf("expected Neon, got %s", cfg.Style)
	}
	if cfg.AnalysisIntervalMs != 1000 {
		t.Errorf("expected 1000ms interval, got %d", cfg.AnalysisIntervalMs)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("preset should keep default width, got %d", cfg.Width)
	}

	cfg.FPS = 1
	if GetPreset("Neon", "rave").FPS == 1 {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("Neon", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("Cubist", "rave") != nil {
		t.Error("expected nil for nonexistent style")
	}
}

func TestGetPresetStyleCaseInsensitive(t *testing.T) {
	for _, style := range []string{"neon", "NEON", " Neon "} {
		cfg := GetPreset(style, "rave")
		if cfg == nil {
			t.Fatalf("expected preset for style %q", style)
		}
		if cfg.Style != "Neon" {
			t.Errorf("style %q: expected canonical Neon, got %q", style, cfg.Style)
		}
	}
	if got := ListPresets("watercolor"); len(got) != 2 {
		t.Errorf("expected two watercolor presets, got %v", got)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("Neon")
	if len(presets) != 2 || presets[0] != "drift" || presets[1] != "rave" {
		t.Errorf("unexpected presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent style")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for style, group := range Presets {
		for name := range group {
			if err := GetPreset(style, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", style, name, err)
			}
		}
	}
}
