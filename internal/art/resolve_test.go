package art

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      Analysis
		speed   float64
		palette []string
		shape   Shape
	}{
		{
			name:    "fast sharp empty colors",
			in:      Analysis{Tempo: TempoFast, Keywords: []string{"sharp tool"}},
			speed:   2.5,
			palette: []string{"#ffffff"},
			shape:   ShapeSquare,
		},
		{
			name:    "slow angry",
			in:      Analysis{Tempo: TempoSlow, Colors: []string{"#112233"}, Keywords: []string{"angry sea"}},
			speed:   0.5,
			palette: []string{"#112233"},
			shape:   ShapeLine,
		},
		{
			name:    "medium default circle",
			in:      Analysis{Tempo: TempoMedium, Colors: []string{"#aa0000", "#00bb00"}, Keywords: []string{"ocean", "soft"}},
			speed:   1.0,
			palette: []string{"#aa0000", "#00bb00"},
			shape:   ShapeCircle,
		},
		{
			name:    "unknown tempo",
			in:      Analysis{Tempo: "Glacial"},
			speed:   1.0,
			palette: []string{"#ffffff"},
			shape:   ShapeCircle,
		},
		{
			name:    "square rule wins over line rule",
			in:      Analysis{Keywords: []string{"angry", "CODE"}},
			speed:   1.0,
			palette: []string{"#ffffff"},
			shape:   ShapeSquare,
		},
		{
			name:    "keywords joined before matching",
			in:      Analysis{Keywords: []string{"dead", "lines"}},
			speed:   1.0,
			palette: []string{"#ffffff"},
			shape:   ShapeLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Resolve(tt.in)
			if cfg.SpeedMultiplier != tt.speed {
				t.Errorf("speed = %v, want %v", cfg.SpeedMultiplier, tt.speed)
			}
			if cfg.ShapeHint != tt.shape {
				t.Errorf("shape = %v, want %v", cfg.ShapeHint, tt.shape)
			}
			got := cfg.PaletteHex()
			if len(got) != len(tt.palette) {
				t.Fatalf("palette = %v, want %v", got, tt.palette)
			}
			for i := range got {
				if got[i] != tt.palette[i] {
					t.Errorf("palette[%d] = %s, want %s", i, got[i], tt.palette[i])
				}
			}
		})
	}
}

func TestResolveBadColorFallsBackToWhite(t *testing.T) {
	cfg := Resolve(Analysis{Colors: []string{"not-a-color"}})
	if len(cfg.Palette) != 1 {
		t.Fatalf("expected 1 palette entry, got %d", len(cfg.Palette))
	}
	if c := cfg.Palette[0].Opaque(); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("expected white, got %v", c)
	}
	if cfg.Palette[0].Hex != "not-a-color" {
		t.Errorf("expected original string kept, got %q", cfg.Palette[0].Hex)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Palette) != 1 || cfg.Palette[0].Hex != DefaultColorHex {
		t.Errorf("unexpected default palette %v", cfg.PaletteHex())
	}
	if cfg.SpeedMultiplier != 1.0 || cfg.ShapeHint != ShapeCircle {
		t.Errorf("unexpected default config %+v", cfg)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#112233")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rgb := c.Opaque()
	if rgb.R != 0x11 || rgb.G != 0x22 || rgb.B != 0x33 {
		t.Errorf("got %v", rgb)
	}

	if _, err := ParseColor("#gg0000"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestParseNames(t *testing.T) {
	if s, err := ParseStyle("neon"); err != nil || s != Neon {
		t.Errorf("ParseStyle(neon) = %v, %v", s, err)
	}
	if _, err := ParseStyle("cubist"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
	if tp, err := ParseTempo("FAST"); err != nil || tp != TempoFast {
		t.Errorf("ParseTempo(FAST) = %v, %v", tp, err)
	}
	if _, err := ParseEmotion("bored"); !errors.Is(err, ErrUnknownEmotion) {
		t.Errorf("expected ErrUnknownEmotion, got %v", err)
	}
}

func TestEmotionPaletteIsCopy(t *testing.T) {
	p := EmotionPalette(Happy)
	p[0] = "#000000"
	if EmotionPalette(Happy)[0] == "#000000" {
		t.Error("EmotionPalette returned shared slice")
	}
	if len(EmotionPalette("Bored")) != 4 {
		t.Error("unknown emotion should get the neutral palette")
	}
}
