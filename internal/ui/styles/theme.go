// Package styles holds the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the palette used by every view.
type Theme struct {
	Accent    lipgloss.Color // focus, current song
	AccentAlt lipgloss.Color // gradient end, active modes

	Text   lipgloss.Color
	Dim    lipgloss.Color
	Faint  lipgloss.Color
	Cursor lipgloss.Color // cursor row background

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error lipgloss.Color
	Info  lipgloss.Color
}

var palette = Theme{
	Accent:      lipgloss.Color("#5fd7d7"),
	AccentAlt:   lipgloss.Color("#8787ff"),
	Text:        lipgloss.Color("#d0d0d0"),
	Dim:         lipgloss.Color("#8a8a8a"),
	Faint:       lipgloss.Color("#5f5f5f"),
	Cursor:      lipgloss.Color("#303030"),
	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#5fd7d7"),
	Error:       lipgloss.Color("#ff5f5f"),
	Info:        lipgloss.Color("#87d787"),
}

// T returns the active theme.
func T() Theme {
	return palette
}

// Styles are the prebuilt text styles of a theme.
type Styles struct {
	Base    lipgloss.Style
	Dim     lipgloss.Style
	Faint   lipgloss.Style
	Title   lipgloss.Style
	Current lipgloss.Style // the song that is playing
	Cursor  lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

var built = palette.build()

// S returns the styles of the active theme.
func S() Styles {
	return built
}

func (t Theme) build() Styles {
	base := lipgloss.NewStyle().Foreground(t.Text)
	return Styles{
		Base:    base,
		Dim:     lipgloss.NewStyle().Foreground(t.Dim),
		Faint:   lipgloss.NewStyle().Foreground(t.Faint),
		Title:   base.Bold(true),
		Current: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Cursor:  base.Background(t.Cursor),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Info:    lipgloss.NewStyle().Foreground(t.Info),
	}
}
