package gui

import (
	"image"
	"image/color"
)

// straightPixels converts a premultiplied raster into the straight-alpha
// row-major slice a texture upload expects, reusing dst when it fits.
func straightPixels(dst []color.RGBA, src *image.RGBA) []color.RGBA {
	b := src.Bounds()
	n := b.Dx() * b.Dy()
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			switch c.A {
			case 0:
				dst[i] = color.RGBA{}
			case 255:
				dst[i] = c
			default:
				dst[i] = color.RGBA{
					R: unpremul(c.R, c.A),
					G: unpremul(c.G, c.A),
					B: unpremul(c.B, c.A),
					A: c.A,
				}
			}
			i++
		}
	}
	return dst
}

func unpremul(v, a uint8) uint8 {
	out := (uint32(v)*255 + uint32(a)/2) / uint32(a)
	if out > 255 {
		out = 255
	}
	return uint8(out)
}
