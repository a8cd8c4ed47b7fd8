package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color // sky canvas
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Positive  lipgloss.Color // converging (attractive) deflection
	Negative  lipgloss.Color // diverging (repulsive) deflection
	Warning   lipgloss.Color
}

// Available themes
var (
	ThemeDeepField = Theme{
		Name:      "deepfield",
		Primary:   lipgloss.Color("#e8f0ff"),
		Secondary: lipgloss.Color("#7aa2ff"),
		Accent:    lipgloss.Color("#ffd37a"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#5a6480"),
		Positive:  lipgloss.Color("#ff8a65"),
		Negative:  lipgloss.Color("#64b5f6"),
		Warning:   lipgloss.Color("#ffaa00"),
	}

	ThemeInfrared = Theme{
		Name:      "infrared",
		Primary:   lipgloss.Color("#ff7043"),
		Secondary: lipgloss.Color("#ffab40"),
		Accent:    lipgloss.Color("#ffee58"),
		Text:      lipgloss.Color("#fff3e0"),
		Muted:     lipgloss.Color("#8d5a4a"),
		Positive:  lipgloss.Color("#ffee58"),
		Negative:  lipgloss.Color("#ce93d8"),
		Warning:   lipgloss.Color("#ff1744"),
	}

	ThemeXRay = Theme{
		Name:      "xray",
		Primary:   lipgloss.Color("#b388ff"),
		Secondary: lipgloss.Color("#00e5ff"),
		Accent:    lipgloss.Color("#ff4081"),
		Text:      lipgloss.Color("#ede7f6"),
		Muted:     lipgloss.Color("#5e4b8b"),
		Positive:  lipgloss.Color("#ff4081"),
		Negative:  lipgloss.Color("#00e5ff"),
		Warning:   lipgloss.Color("#ffd740"),
	}

	ThemeRadio = Theme{
		Name:      "radio",
		Primary:   lipgloss.Color("#69f0ae"),
		Secondary: lipgloss.Color("#00c853"),
		Accent:    lipgloss.Color("#ccff90"),
		Text:      lipgloss.Color("#b9f6ca"),
		Muted:     lipgloss.Color("#2e7d32"),
		Positive:  lipgloss.Color("#ccff90"),
		Negative:  lipgloss.Color("#18ffff"),
		Warning:   lipgloss.Color("#ffff00"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Positive:  lipgloss.Color("#ffffff"),
		Negative:  lipgloss.Color("#aaaaaa"),
		Warning:   lipgloss.Color("#ffaa00"),
	}

	// Default theme
	CurrentTheme = ThemeDeepField

	// All available themes
	Themes = []Theme{
		ThemeDeepField,
		ThemeInfrared,
		ThemeXRay,
		ThemeRadio,
		ThemeMono,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDeepField
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
