package art

import "strings"

// Speed multipliers by tempo.
const (
	SpeedSlow   = 0.5
	SpeedMedium = 1.0
	SpeedFast   = 2.5
)

// DefaultConfig is the configuration in effect before any analysis arrives.
func DefaultConfig() SimConfig {
	return SimConfig{
		Palette:         []Color{White},
		SpeedMultiplier: SpeedMedium,
		ShapeHint:       ShapeCircle,
	}
}

// Resolve maps an analysis record into simulation parameters.
func Resolve(a Analysis) SimConfig {
	cfg := SimConfig{
		SpeedMultiplier: speedFor(a.Tempo),
		ShapeHint:       shapeFor(a.Keywords),
	}
	if len(a.Colors) == 0 {
		cfg.Palette = []Color{White}
	} else {
		cfg.Palette = make([]Color, len(a.Colors))
		for i, hex := range a.Colors {
			cfg.Palette[i] = MustColor(hex)
		}
	}
	return cfg
}

func speedFor(t Tempo) float64 {
	switch t {
	case TempoFast:
		return SpeedFast
	case TempoSlow:
		return SpeedSlow
	default:
		return SpeedMedium
	}
}

// shapeFor checks the rules in order; the first match wins.
func shapeFor(keywords []string) Shape {
	text := strings.ToLower(strings.Join(keywords, " "))
	switch {
	case containsAny(text, "tech", "code", "sharp"):
		return ShapeSquare
	case containsAny(text, "line", "angry"):
		return ShapeLine
	default:
		return ShapeCircle
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
