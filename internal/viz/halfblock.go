package viz

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const upperHalf = "▀"

// Halfblock samples img onto cols x rows cells. Each cell's foreground is the
// upper pixel and its background the lower one, both composited over backdrop.
func Halfblock(img *image.RGBA, cols, rows int, backdrop colorful.Color) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	if img == nil || img.Bounds().Empty() {
		blank := strings.Repeat(" ", cols)
		return strings.TrimSuffix(strings.Repeat(blank+"\n", rows), "\n")
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	styles := make(map[[2]string]lipgloss.Style)

	var sb strings.Builder
	for cy := 0; cy < rows; cy++ {
		yTop := b.Min.Y + (2*cy)*h/(2*rows)
		yBot := b.Min.Y + (2*cy+1)*h/(2*rows)
		for cx := 0; cx < cols; cx++ {
			x := b.Min.X + cx*w/cols
			key := [2]string{
				pixelOver(img, x, yTop, backdrop).Hex(),
				pixelOver(img, x, yBot, backdrop).Hex(),
			}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(key[0])).
					Background(lipgloss.Color(key[1]))
				styles[key] = st
			}
			sb.WriteString(st.Render(upperHalf))
		}
		if cy < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// pixelOver composites the premultiplied pixel at (x, y) over backdrop.
func pixelOver(img *image.RGBA, x, y int, backdrop colorful.Color) colorful.Color {
	c := img.RGBAAt(x, y)
	a := float64(c.A) / 255
	return colorful.Color{
		R: float64(c.R)/255 + backdrop.R*(1-a),
		G: float64(c.G)/255 + backdrop.G*(1-a),
		B: float64(c.B)/255 + backdrop.B*(1-a),
	}.Clamped()
}

// backdropColor parses a theme backdrop, defaulting to black.
func backdropColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
