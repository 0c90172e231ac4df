package config

import (
	"sort"

	"github.com/san-kum/voicecanvas/internal/art"
)

// Presets are named session setups grouped by style.
var Presets = map[string]map[string]*Config{
	"Watercolor": {
		"gentle": {
			Style: "Watercolor", FPS: 60, AnalysisIntervalMs: 2500,
			Synth: SynthConfig{Base: 0.25, Depth: 0.2, RateHz: 0.25, Burst: 0.2},
		},
		"storm": {
			Style: "Watercolor", FPS: 60, AnalysisIntervalMs: 1500,
			Synth: SynthConfig{Base: 0.6, Depth: 0.35, RateHz: 1.2, Burst: 0.6},
		},
	},
	"Abstract": {
		"blocks": {
			Style: "Abstract", FPS: 60, AnalysisIntervalMs: 2500,
			Synth: SynthConfig{Base: 0.45, Depth: 0.3, RateHz: 0.5, Burst: 0.4},
		},
	},
	"Impressionist": {
		"dabs": {
			Style: "Impressionist", FPS: 30, AnalysisIntervalMs: 3000,
			Synth: SynthConfig{Base: 0.3, Depth: 0.25, RateHz: 0.4, Burst: 0.5},
		},
	},
	"Neon": {
		"rave": {
			Style: "Neon", FPS: 60, AnalysisIntervalMs: 1000,
			Synth: SynthConfig{Base: 0.7, Depth: 0.3, RateHz: 2.0, Burst: 0.8},
		},
		"drift": {
			Style: "Neon", FPS: 60, AnalysisIntervalMs: 4000,
			Synth: SynthConfig{Base: 0.2, Depth: 0.15, RateHz: 0.2, Burst: 0.1},
		},
	},
}

// GetPreset returns a full config with the preset applied over the defaults,
// or nil when either name is unknown. The style name is matched case-insensitively.
func GetPreset(style, preset string) *Config {
	stylePresets, ok := presetsFor(style)
	if !ok {
		return nil
	}
	p, ok := stylePresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Style = p.Style
	cfg.FPS = p.FPS
	cfg.AnalysisIntervalMs = p.AnalysisIntervalMs
	cfg.Synth = p.Synth
	return cfg
}

func ListPresets(style string) []string {
	stylePresets, ok := presetsFor(style)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(stylePresets))
	for name := range stylePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func presetsFor(style string) (map[string]*Config, bool) {
	s, err := art.ParseStyle(style)
	if err != nil {
		return nil, false
	}
	p, ok := Presets[string(s)]
	return p, ok
}
