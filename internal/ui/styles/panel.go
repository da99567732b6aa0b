package styles

import "github.com/charmbracelet/lipgloss"

// Panel returns the bordered box style for a pane.
func Panel(focused bool) lipgloss.Style {
	border := palette.Border
	if focused {
		border = palette.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
