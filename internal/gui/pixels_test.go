package gui

import (
	"image"
	"image/color"
	"testing"

	"github.com/san-kum/voicecanvas/internal/art"
)

func TestStraightPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 200, G: 10, B: 0, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 64, G: 32, B: 0, A: 128})
	src.SetRGBA(2, 0, color.RGBA{})

	got := straightPixels(nil, src)
	want := []color.RGBA{
		{R: 200, G: 10, B: 0, A: 255},
		{R: 128, G: 64, B: 0, A: 128},
		{},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d pixels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStraightPixelsReusesBuffer(t *testing.T) {
	buf := make([]color.RGBA, 0, 16)
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	out := straightPixels(buf, src)
	if len(out) != 4 || &out[0] != &buf[:1][0] {
		t.Error("expected the buffer to be reused")
	}
}

func TestStraightPixelsSubImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(2, 2, color.RGBA{R: 255, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)
	out := straightPixels(nil, sub)
	if out[0] != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected sub-image origin pixel, got %v", out[0])
	}
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{800, 628, 800, 600},
		{100, 10, 100, 0},
		{-5, 0, 0, 0},
	}
	for _, tt := range tests {
		w, h := canvasSize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("canvasSize(%d,%d) = %d,%d, want %d,%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestNextStyle(t *testing.T) {
	if nextStyle(art.Neon) != art.Watercolor {
		t.Error("expected wrap from Neon to Watercolor")
	}
	if nextStyle("bogus") != art.DefaultStyle {
		t.Error("expected default for unknown style")
	}
}
