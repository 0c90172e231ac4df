package art

import (
	"fmt"
	"strings"
)

// Style selects both the compositing mode and the per-particle drawing routine.
type Style string

const (
	Watercolor    Style = "Watercolor"
	Abstract      Style = "Abstract"
	Impressionist Style = "Impressionist"
	Neon          Style = "Neon"
)

// DefaultStyle is the style a fresh canvas starts with.
const DefaultStyle = Watercolor

// Styles lists every style in menu order.
var Styles = []Style{Watercolor, Abstract, Impressionist, Neon}

var styleDescriptions = map[Style]string{
	Watercolor:    "Soft, flowing, bleeding colors",
	Abstract:      "Geometric, bold shapes",
	Impressionist: "Textured, small strokes",
	Neon:          "Vibrant, glowing lines on dark",
}

// Description returns the one-line menu description of s.
func (s Style) Description() string { return styleDescriptions[s] }

// ParseStyle matches name case-insensitively against the known styles.
func ParseStyle(name string) (Style, error) {
	for _, s := range Styles {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return DefaultStyle, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// Shape is the particle shape tag. It is fixed when the particle spawns.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeLine
	ShapeSplatter
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeLine:
		return "line"
	case ShapeSplatter:
		return "splatter"
	default:
		return "circle"
	}
}

// Tempo is the coarse speech-rate category reported by the analyzer.
type Tempo string

const (
	TempoSlow   Tempo = "Slow"
	TempoMedium Tempo = "Medium"
	TempoFast   Tempo = "Fast"
)

// ParseTempo matches name case-insensitively.
func ParseTempo(name string) (Tempo, error) {
	for _, t := range []Tempo{TempoSlow, TempoMedium, TempoFast} {
		if strings.EqualFold(string(t), strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return TempoMedium, fmt.Errorf("%w: %q", ErrUnknownTempo, name)
}

// Emotion is the primary emotion reported by the analyzer.
type Emotion string

const (
	Happy   Emotion = "Happy"
	Sad     Emotion = "Sad"
	Angry   Emotion = "Angry"
	Calm    Emotion = "Calm"
	Neutral Emotion = "Neutral"
	Excited Emotion = "Excited"
	Anxious Emotion = "Anxious"
)

// Emotions lists every emotion the analyzer may report.
var Emotions = []Emotion{Happy, Sad, Angry, Calm, Neutral, Excited, Anxious}

// ParseEmotion matches name case-insensitively.
func ParseEmotion(name string) (Emotion, error) {
	for _, e := range Emotions {
		if strings.EqualFold(string(e), strings.TrimSpace(name)) {
			return e, nil
		}
	}
	return Neutral, fmt.Errorf("%w: %q", ErrUnknownEmotion, name)
}

// Analysis is one semantic analysis record of a voice segment.
type Analysis struct {
	Emotion     Emotion  `json:"emotion" yaml:"emotion"`
	Confidence  float64  `json:"confidence" yaml:"confidence"`
	Tempo       Tempo    `json:"tempo" yaml:"tempo"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	Colors      []string `json:"colors" yaml:"colors"`
	Description string   `json:"description" yaml:"description"`
}

// SimConfig holds the simulation parameters derived from the latest analysis.
// It is replaced wholesale on every analysis arrival and read-only within a frame.
type SimConfig struct {
	Palette         []Color
	SpeedMultiplier float64
	ShapeHint       Shape
}

// PaletteHex returns the palette as hex strings, in order.
func (c SimConfig) PaletteHex() []string {
	out := make([]string, len(c.Palette))
	for i, col := range c.Palette {
		out[i] = col.Hex
	}
	return out
}
