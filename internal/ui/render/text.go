// Package render holds width-aware text helpers for the terminal views.
package render

import (
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Clean prepares catalog text for display: HTML entities are decoded,
// control characters dropped and non-breaking spaces flattened.
func Clean(s string) string {
	s = html.UnescapeString(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0' || r == '\t':
			return ' '
		case r == unicode.ReplacementChar || unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// Truncate shortens s to maxWidth cells, ending with an ellipsis when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Clean(s), maxWidth, "…")
}

// Fit truncates s and pads it with spaces to exactly width cells.
func Fit(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// Row puts left and right at the edges of width cells, at least one space
// apart.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator returns a horizontal rule.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
