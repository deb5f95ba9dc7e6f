// Package themes holds the color schemes of the TUI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Selected    lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Help        lipgloss.Style
	Box         lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Error       lipgloss.Color
	Info        lipgloss.Color
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    "#7c3aed",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	muted:      "#737373",
	border:     "#404040",
	errorColor: "#ef4444",
	info:       "#3b82f6",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    "#cba6f7",
	foreground: "#cdd6f4",
	subtle:     "#bac2de",
	muted:      "#6c7086",
	border:     "#45475a",
	errorColor: "#f38ba8",
	info:       "#89dceb",
})

// GetTheme returns the named theme, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

type palette struct {
	primary    string
	foreground string
	subtle     string
	muted      string
	border     string
	errorColor string
	info       string
}

func newTheme(p palette) Theme {
	return Theme{
		Primary: lipgloss.Color(p.primary),
		Muted:   lipgloss.Color(p.muted),
		Border:  lipgloss.Color(p.border),
		Error:   lipgloss.Color(p.errorColor),
		Info:    lipgloss.Color(p.info),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)).
			Background(lipgloss.Color(p.primary)).
			Padding(0, 1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.primary)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
	}
}
