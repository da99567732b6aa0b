// Package overlay draws popups over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center places popup in the middle of a width x height base view.
func Center(base, popup string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
	return Compose(base, placed, width)
}

// Compose lays overlay over base line by line. On each overlay line the
// span between the first and last visible character replaces the base;
// blank lines leave the base untouched. Both inputs may carry ANSI styles.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, line := range overlayLines {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		start := ansi.StringWidth(plain) - ansi.StringWidth(strings.TrimLeft(plain, " "))
		end := ansi.StringWidth(strings.TrimRight(plain, " "))

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		var b strings.Builder
		b.WriteString(ansi.Cut(under, 0, start))
		b.WriteString(ansi.Cut(line, start, end))
		if end < width {
			b.WriteString(ansi.Cut(under, end, width))
		}
		baseLines[i] = b.String()
	}
	return strings.Join(baseLines, "\n")
}
