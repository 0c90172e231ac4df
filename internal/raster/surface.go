package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Surface is a software drawing surface backed by a premultiplied RGBA image.
// A surface with no area is "not ready": every paint call is a no-op until a
// positive size arrives through Resize.
type Surface struct {
	img  *image.RGBA
	mode BlendMode
}

// New allocates a transparent surface of w x h pixels.
func New(w, h int) *Surface {
	s := &Surface{}
	s.img = alloc(w, h)
	return s
}

func alloc(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return nil
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Ready reports whether the surface has a drawable area.
func (s *Surface) Ready() bool { return s.img != nil }

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Bounds() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// SetBlend selects the compositing mode for subsequent paint calls.
func (s *Surface) SetBlend(m BlendMode) { s.mode = m }

// Snapshot returns an independent copy of the current raster, or nil when not ready.
func (s *Surface) Snapshot() *image.RGBA {
	if s.img == nil {
		return nil
	}
	c := image.NewRGBA(s.img.Bounds())
	copy(c.Pix, s.img.Pix)
	return c
}

// Put replaces pixels with snap, anchored at the origin. Pixels outside the
// overlap are left untouched and blending is ignored.
func (s *Surface) Put(snap *image.RGBA) {
	if s.img == nil || snap == nil {
		return
	}
	r := s.img.Bounds().Intersect(snap.Bounds().Sub(snap.Bounds().Min))
	xdraw.Draw(s.img, r, snap, snap.Bounds().Min, xdraw.Src)
}

// Reset replaces every pixel with c, ignoring the blend mode.
func (s *Surface) Reset(c color.Color) {
	if s.img == nil {
		return
	}
	xdraw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Fill composites c over the whole surface using the current blend mode.
func (s *Surface) Fill(c color.NRGBA) {
	if s.img == nil {
		return
	}
	sr, sg, sb, sa := premul(c, 1)
	pix := s.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		s.mode.blendPixel(pix[i:i+4], sr, sg, sb, sa)
	}
}

// Resize reallocates the surface at w x h and stretch-blits the previous
// content to fill it. Aspect ratio is not preserved.
func (s *Surface) Resize(w, h int) {
	if cw, ch := s.Size(); cw == w && ch == h && s.img != nil {
		return
	}
	prev := s.img
	s.img = alloc(w, h)
	if prev == nil || s.img == nil {
		return
	}
	xdraw.BiLinear.Scale(s.img, s.img.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)
}

// EncodePNG writes the current raster as a PNG image.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.img == nil {
		return ErrNotReady
	}
	return png.Encode(w, s.img)
}

// premul converts straight-alpha c, scaled by coverage, into premultiplied floats.
func premul(c color.NRGBA, coverage float64) (r, g, b, a float64) {
	a = float64(c.A) / 255 * coverage
	r = float64(c.R) / 255 * a
	g = float64(c.G) / 255 * a
	b = float64(c.B) / 255 * a
	return r, g, b, a
}
