package art

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColorHex is substituted whenever a palette would otherwise be empty.
const DefaultColorHex = "#ffffff"

// Color is a palette entry: the hex string as delivered plus its parsed value.
type Color struct {
	Hex string
	rgb color.NRGBA
}

// White is the default palette entry.
var White = Color{Hex: DefaultColorHex, rgb: color.NRGBA{R: 255, G: 255, B: 255, A: 255}}

// ParseColor parses a "#rgb" or "#rrggbb" string.
func ParseColor(hex string) (Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	r, g, b := c.RGB255()
	return Color{Hex: hex, rgb: color.NRGBA{R: r, G: g, B: b, A: 255}}, nil
}

// MustColor parses hex and falls back to white, keeping the original string.
// Canvas fill styles silently ignore garbage, so the renderer never fails on one.
func MustColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		return Color{Hex: hex, rgb: White.rgb}
	}
	return c
}

// NRGBA returns the color with the given straight alpha.
func (c Color) NRGBA(alpha uint8) color.NRGBA {
	out := c.rgb
	if out == (color.NRGBA{}) && c.Hex == "" {
		out = White.rgb
	}
	out.A = alpha
	return out
}

// Opaque returns the color at full alpha.
func (c Color) Opaque() color.NRGBA { return c.NRGBA(255) }

// emotionPalettes are the hand-picked fallback palettes per emotion.
var emotionPalettes = map[Emotion][]string{
	Happy:   {"#FFD700", "#FFA500", "#FF69B4", "#00FF7F"},
	Sad:     {"#4682B4", "#483D8B", "#708090", "#B0C4DE"},
	Angry:   {"#FF4500", "#8B0000", "#2F4F4F", "#000000"},
	Calm:    {"#E0FFFF", "#98FB98", "#87CEEB", "#F0F8FF"},
	Excited: {"#FF1493", "#FFFF00", "#00FFFF", "#FF4500"},
	Neutral: {"#D3D3D3", "#F5F5DC", "#FFE4E1", "#E6E6FA"},
	Anxious: {"#800080", "#4B0082", "#2F4F4F", "#778899"},
}

// EmotionPalette returns a copy of the palette associated with e.
// Unknown emotions get the Neutral palette.
func EmotionPalette(e Emotion) []string {
	p, ok := emotionPalettes[e]
	if !ok {
		p = emotionPalettes[Neutral]
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}
