package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Glow describes a blurred shadow drawn beneath a shape, like canvas shadowBlur.
type Glow struct {
	Blur  float64
	Color color.NRGBA
}

// pathFunc emits a closed path into z, translated by (ox, oy).
type pathFunc func(z *vector.Rasterizer, ox, oy float32)

// FillCircle paints a filled circle of radius r centred on (cx, cy).
func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if r <= 0 {
		return
	}
	s.fill(circleBounds(cx, cy, r), circlePath(cx, cy, r), c, nil)
}

// FillRect paints a filled axis-aligned rectangle with top-left corner (x, y).
func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	bounds := [4]float64{x, y, x + w, y + h}
	s.fill(bounds, func(z *vector.Rasterizer, ox, oy float32) {
		x0, y0 := float32(x)+ox, float32(y)+oy
		x1, y1 := float32(x+w)+ox, float32(y+h)+oy
		z.MoveTo(x0, y0)
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
		z.ClosePath()
	}, c, nil)
}

// StrokeLine strokes the segment (x0,y0)-(x1,y1) with the given width and butt
// caps. A zero-length segment draws nothing. When glow is non-nil its shadow is
// composited first, then the stroke itself.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, glow *Glow) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if width <= 0 || length < 1e-9 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	corners := [4][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}
	bounds := [4]float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range corners {
		bounds[0] = math.Min(bounds[0], p[0])
		bounds[1] = math.Min(bounds[1], p[1])
		bounds[2] = math.Max(bounds[2], p[0])
		bounds[3] = math.Max(bounds[3], p[1])
	}
	s.fill(bounds, func(z *vector.Rasterizer, ox, oy float32) {
		z.MoveTo(float32(corners[0][0])+ox, float32(corners[0][1])+oy)
		for _, p := range corners[1:] {
			z.LineTo(float32(p[0])+ox, float32(p[1])+oy)
		}
		z.ClosePath()
	}, c, glow)
}

// fill rasterizes path over bounds (minX, minY, maxX, maxY) and composites it.
func (s *Surface) fill(bounds [4]float64, path pathFunc, c color.NRGBA, glow *Glow) {
	if s.img == nil {
		return
	}
	margin := 0.0
	if glow != nil && glow.Blur > 0 {
		margin = math.Ceil(glow.Blur * 1.5)
	}
	r := image.Rect(
		int(math.Floor(bounds[0]-margin)),
		int(math.Floor(bounds[1]-margin)),
		int(math.Ceil(bounds[2]+margin)),
		int(math.Ceil(bounds[3]+margin)),
	).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	path(z, float32(-r.Min.X), float32(-r.Min.Y))
	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	if glow != nil && glow.Blur > 0 {
		// Canvas shadows use a gaussian with sigma = blur / 2.
		shadow := imaging.Blur(mask, glow.Blur/2)
		s.compositeMask(r, shadow.Pix, shadow.Stride, 4, 3, glow.Color)
	}
	s.compositeMask(r, mask.Pix, mask.Stride, 1, 0, c)
}

// compositeMask blends c through a coverage mask laid over rectangle r.
// The mask is addressed as pix[y*stride + x*step + offset].
func (s *Surface) compositeMask(r image.Rectangle, pix []uint8, stride, step, offset int, c color.NRGBA) {
	for y := 0; y < r.Dy(); y++ {
		row := y * stride
		di := s.img.PixOffset(r.Min.X, r.Min.Y+y)
		for x := 0; x < r.Dx(); x, di = x+1, di+4 {
			cov := pix[row+x*step+offset]
			if cov == 0 {
				continue
			}
			sr, sg, sb, sa := premul(c, float64(cov)/255)
			s.mode.blendPixel(s.img.Pix[di:di+4], sr, sg, sb, sa)
		}
	}
}

func circleBounds(cx, cy, r float64) [4]float64 {
	return [4]float64{cx - r, cy - r, cx + r, cy + r}
}

func circlePath(cx, cy, r float64) pathFunc {
	return func(z *vector.Rasterizer, ox, oy float32) {
		x, y := float32(cx)+ox, float32(cy)+oy
		rr := float32(r)
		k := float32(kappa * r)
		z.MoveTo(x+rr, y)
		z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
		z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
		z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
		z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
		z.ClosePath()
	}
}
