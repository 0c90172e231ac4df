package raster

// BlendMode is the compositing operation applied when painting onto the surface.
// The formulas follow the HTML canvas globalCompositeOperation definitions,
// evaluated on premultiplied channels.
type BlendMode uint8

const (
	// SourceOver paints over existing content (normal blending).
	SourceOver BlendMode = iota
	// Lighter adds source to destination, saturating at white.
	Lighter
	// Multiply darkens: overlapping pigment accumulates.
	Multiply
)

func (m BlendMode) String() string {
	switch m {
	case Lighter:
		return "lighter"
	case Multiply:
		return "multiply"
	default:
		return "source-over"
	}
}

// blendPixel composites a premultiplied source (sr, sg, sb, sa in [0,1])
// into the four premultiplied bytes of d.
func (m BlendMode) blendPixel(d []uint8, sr, sg, sb, sa float64) {
	dr := float64(d[0]) / 255
	dg := float64(d[1]) / 255
	db := float64(d[2]) / 255
	da := float64(d[3]) / 255

	switch m {
	case Lighter:
		dr, dg, db, da = dr+sr, dg+sg, db+sb, da+sa
	case Multiply:
		inv := 1 - sa
		invD := 1 - da
		dr = sr*invD + dr*inv + sr*dr
		dg = sg*invD + dg*inv + sg*dg
		db = sb*invD + db*inv + sb*db
		da = sa + da - sa*da
	default:
		inv := 1 - sa
		dr, dg, db, da = sr+dr*inv, sg+dg*inv, sb+db*inv, sa+da*inv
	}

	d[3] = unit8(da)
	// Premultiplied channels never exceed alpha.
	d[0] = min(unit8(dr), d[3])
	d[1] = min(unit8(dg), d[3])
	d[2] = min(unit8(db), d[3])
}

// unit8 maps [0,1] onto a rounded byte, clamping out-of-range values.
func unit8(v float64) uint8 {
	if v >= 1 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v*255 + 0.5)
}
