package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the preview chrome. Backdrop shows through transparent
// canvas pixels, which only Neon produces.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Alert    lipgloss.Color
	Backdrop string
}

var (
	ThemeStudio = Theme{
		Name:     "studio",
		Primary:  lipgloss.Color("#00ffff"),
		Accent:   lipgloss.Color("#ff00ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Alert:    lipgloss.Color("#ff4444"),
		Backdrop: "#0f0f11",
	}

	ThemePaper = Theme{
		Name:     "paper",
		Primary:  lipgloss.Color("#0088ff"),
		Accent:   lipgloss.Color("#ffaa00"),
		Text:     lipgloss.Color("#eeeeee"),
		Muted:    lipgloss.Color("#888888"),
		Alert:    lipgloss.Color("#ff0000"),
		Backdrop: "#ffffff",
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"),
		Accent:   lipgloss.Color("#feca57"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Alert:    lipgloss.Color("#ff4757"),
		Backdrop: "#2d1b2e",
	}

	Themes = []Theme{ThemeStudio, ThemePaper, ThemeSunset}
)

// GetTheme returns a theme by name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
