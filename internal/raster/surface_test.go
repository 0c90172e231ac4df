package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func rgbaAt(s *Surface, x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func sameColor(got color.RGBA, want color.NRGBA) bool {
	w := color.RGBAModel.Convert(want).(color.RGBA)
	return near(got.R, w.R) && near(got.G, w.G) && near(got.B, w.B) && near(got.A, w.A)
}

func TestNewSurfaceIsTransparent(t *testing.T) {
	s := New(10, 10)
	if !s.Ready() {
		t.Fatal("expected ready surface")
	}
	if got := rgbaAt(s, 5, 5); got != (color.RGBA{}) {
		t.Errorf("expected transparent pixel, got %v", got)
	}
}

func TestBlendModes(t *testing.T) {
	tests := []struct {
		name string
		base color.NRGBA
		mode BlendMode
		src  color.NRGBA
		want color.NRGBA
	}{
		{"over opaque", white, SourceOver, red, red},
		{"over translucent", white, SourceOver, color.NRGBA{A: 128}, color.NRGBA{R: 127, G: 127, B: 127, A: 255}},
		{"lighter saturates", color.NRGBA{R: 200, A: 255}, Lighter, color.NRGBA{R: 100, G: 50, A: 255}, color.NRGBA{R: 255, G: 50, A: 255}},
		{"multiply on white keeps source", white, Multiply, blue, blue},
		{"multiply darkens", color.NRGBA{R: 255, G: 128, A: 255}, Multiply, color.NRGBA{R: 128, G: 255, A: 255}, color.NRGBA{R: 128, G: 128, A: 255}},
		{"multiply on transparent", color.NRGBA{}, Multiply, green, green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(4, 4)
			s.Reset(tt.base)
			s.SetBlend(tt.mode)
			s.Fill(tt.src)
			if got := rgbaAt(s, 1, 1); !sameColor(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeonOverlayFades(t *testing.T) {
	s := New(2, 2)
	s.Reset(white)
	overlay := color.NRGBA{R: 15, G: 15, B: 17, A: 26}
	prev := rgbaAt(s, 0, 0).R
	for i := 0; i < 20; i++ {
		s.Fill(overlay)
		cur := rgbaAt(s, 0, 0).R
		if cur >= prev {
			t.Fatalf("iteration %d: red %d did not decrease from %d", i, cur, prev)
		}
		prev = cur
	}
}

func TestFillCircle(t *testing.T) {
	s := New(100, 100)
	s.FillCircle(50, 50, 10, red)

	if got := rgbaAt(s, 50, 50); !sameColor(got, red) {
		t.Errorf("centre = %v, want red", got)
	}
	if got := rgbaAt(s, 50, 65); got.A != 0 {
		t.Errorf("outside radius should be untouched, got %v", got)
	}
	if got := rgbaAt(s, 57, 50); !sameColor(got, red) {
		t.Errorf("inside radius = %v, want red", got)
	}
}

func TestFillRect(t *testing.T) {
	s := New(20, 20)
	s.FillRect(5, 5, 4, 2, green)
	if got := rgbaAt(s, 6, 5); !sameColor(got, green) {
		t.Errorf("inside rect = %v", got)
	}
	if got := rgbaAt(s, 6, 8); got.A != 0 {
		t.Errorf("below rect = %v", got)
	}
}

func TestShapesClipAtEdges(t *testing.T) {
	s := New(10, 10)
	s.FillCircle(-3, -3, 6, red)
	s.FillRect(8, 8, 50, 50, blue)
	s.FillCircle(500, 500, 5, green)
	if got := rgbaAt(s, 0, 0); !sameColor(got, red) {
		t.Errorf("corner = %v, want red", got)
	}
	if got := rgbaAt(s, 9, 9); !sameColor(got, blue) {
		t.Errorf("corner = %v, want blue", got)
	}
}

func TestStrokeLine(t *testing.T) {
	s := New(40, 40)
	s.StrokeLine(5, 20, 35, 20, 4, white, nil)
	if got := rgbaAt(s, 20, 20); !sameColor(got, white) {
		t.Errorf("on line = %v", got)
	}
	if got := rgbaAt(s, 20, 25); got.A != 0 {
		t.Errorf("off line = %v", got)
	}
	if got := rgbaAt(s, 2, 20); got.A != 0 {
		t.Errorf("butt cap should not extend past the start, got %v", got)
	}
}

func TestStrokeLineZeroLength(t *testing.T) {
	s := New(10, 10)
	s.StrokeLine(5, 5, 5, 5, 4, white, &Glow{Blur: 10, Color: white})
	for i := range s.img.Pix {
		if s.img.Pix[i] != 0 {
			t.Fatal("zero-length stroke should draw nothing")
		}
	}
}

func TestStrokeLineGlow(t *testing.T) {
	plain := New(60, 60)
	plain.StrokeLine(10, 30, 50, 30, 2, red, nil)

	glowing := New(60, 60)
	glowing.StrokeLine(10, 30, 50, 30, 2, red, &Glow{Blur: 10, Color: red})

	if got := rgbaAt(plain, 30, 36); got.A != 0 {
		t.Fatalf("plain stroke leaked to %v", got)
	}
	if got := rgbaAt(glowing, 30, 36); got.A == 0 {
		t.Error("glow should reach beyond the stroke")
	}
	if got := rgbaAt(glowing, 30, 30); !sameColor(got, red) {
		t.Errorf("stroke core = %v, want red", got)
	}
}

func TestResizeStretchesContent(t *testing.T) {
	s := New(800, 600)
	s.FillRect(0, 0, 400, 300, red)
	s.FillRect(400, 0, 400, 300, green)
	s.FillRect(0, 300, 400, 300, blue)
	s.FillRect(400, 300, 400, 300, white)

	s.Resize(400, 300)
	if w, h := s.Size(); w != 400 || h != 300 {
		t.Fatalf("size = %dx%d", w, h)
	}

	corners := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, red},
		{399, 0, green},
		{0, 299, blue},
		{399, 299, white},
		{100, 75, red},
		{300, 225, white},
	}
	for _, c := range corners {
		if got := rgbaAt(s, c.x, c.y); !sameColor(got, c.want) {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestResizeDistortsAspect(t *testing.T) {
	s := New(100, 100)
	s.FillRect(0, 0, 50, 100, red)
	s.Resize(200, 50)
	// Left half stays left half: no letterbox bars.
	if got := rgbaAt(s, 10, 0); !sameColor(got, red) {
		t.Errorf("stretched left = %v", got)
	}
	if got := rgbaAt(s, 10, 49); !sameColor(got, red) {
		t.Errorf("stretched bottom-left = %v", got)
	}
	if got := rgbaAt(s, 190, 25); got.A != 0 {
		t.Errorf("right half should stay transparent, got %v", got)
	}
}

func TestResizeToZeroAndBack(t *testing.T) {
	s := New(10, 10)
	s.Resize(0, 0)
	if s.Ready() {
		t.Fatal("zero-size surface should not be ready")
	}
	s.FillCircle(5, 5, 3, red)
	s.Fill(red)
	if err := s.EncodePNG(&bytes.Buffer{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
	s.Resize(8, 8)
	if !s.Ready() {
		t.Fatal("expected ready after resize")
	}
}

func TestSnapshotAndPut(t *testing.T) {
	s := New(10, 10)
	s.Reset(red)
	snap := s.Snapshot()
	s.Reset(blue)

	if got := snap.RGBAAt(3, 3); !sameColor(got, red) {
		t.Errorf("snapshot changed with surface: %v", got)
	}

	s.SetBlend(Multiply)
	s.Put(snap)
	if got := rgbaAt(s, 3, 3); !sameColor(got, red) {
		t.Errorf("Put should replace pixels, got %v", got)
	}
}

func TestPutAfterShrink(t *testing.T) {
	s := New(10, 10)
	s.Reset(red)
	snap := s.Snapshot()
	s.Resize(5, 5)
	s.Reset(black)
	s.Put(snap)
	if got := rgbaAt(s, 4, 4); !sameColor(got, red) {
		t.Errorf("got %v", got)
	}
}

func TestEncodePNG(t *testing.T) {
	s := New(16, 9)
	s.Reset(white)
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 16, 9) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}
