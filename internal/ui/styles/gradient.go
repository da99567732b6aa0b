package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text bold with a left to right blend from one color to
// another. Colors must be #rrggbb; anything else renders gray.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range Blend(len(clusters), from, to) {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(clusters[i]))
	}
	return b.String()
}

// Blend returns n colors between from and to, interpolated in HCL space.
func Blend(n int, from, to lipgloss.Color) []colorful.Color {
	c1 := toColorful(from)
	if n < 2 {
		return []colorful.Color{c1}
	}
	c2 := toColorful(to)
	out := make([]colorful.Color, n)
	for i := range n {
		out[i] = c1.BlendHcl(c2, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	gray, _ := colorful.MakeColor(color.Gray{Y: 128})
	return gray
}
