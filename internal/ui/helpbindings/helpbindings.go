// Package helpbindings renders a scrollable popup listing every key binding.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ripple/internal/keymap"
	"github.com/llehouerou/ripple/internal/ui/styles"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{
	keymap.ContextGlobal,
	keymap.ContextSearch,
	keymap.ContextResults,
	keymap.ContextQueue,
}

var categoryLabels = map[string]string{
	keymap.ContextGlobal:  "Global",
	keymap.ContextSearch:  "Search Box",
	keymap.ContextResults: "Results",
	keymap.ContextQueue:   "Queue",
}

const chrome = 6 // border, title, blank lines and footer

// Model holds the state for the help popup.
type Model struct {
	lines  []string
	width  int
	height int
	scroll int
}

// New builds the popup content from the keymap.
func New() Model {
	var bindings []keymap.Binding
	for _, ctx := range categoryOrder {
		bindings = append(bindings, keymap.ByContext(ctx)...)
	}
	return Model{lines: buildLines(bindings)}
}

// SetSize sets the screen size the popup must fit in.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.scroll = min(m.scroll, m.maxScroll())
}

// Update handles a key. It reports whether the popup should close.
func (m Model) Update(msg tea.KeyMsg) (Model, bool) {
	switch msg.String() {
	case "?", "esc", "q":
		return m, true
	case "j", "down":
		m.scroll = min(m.scroll+1, m.maxScroll())
	case "k", "up":
		m.scroll = max(m.scroll-1, 0)
	}
	return m, false
}

// View renders the boxed popup.
func (m Model) View() string {
	visible := m.lines
	if h := m.visibleHeight(); h < len(visible) {
		visible = visible[m.scroll : m.scroll+h]
	}

	footer := "?/esc close"
	if m.maxScroll() > 0 {
		footer = "j/k scroll · " + footer
	}

	st := styles.S()
	body := st.Title.Render("Help") + "\n\n" +
		strings.Join(visible, "\n") + "\n\n" +
		st.Faint.Render(footer)
	return styles.Panel(true).Padding(0, 1).Render(body)
}

func (m Model) visibleHeight() int {
	if m.height <= 0 {
		return len(m.lines)
	}
	return max(m.height-chrome, 3)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}

func buildLines(bindings []keymap.Binding) []string {
	keyWidth := 0
	for _, b := range bindings {
		keyWidth = max(keyWidth, lipgloss.Width(keyLabel(b)))
	}

	st := styles.S()
	keyStyle := st.Current
	var lines []string
	context := ""
	for _, b := range bindings {
		if b.Context != context {
			if context != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines, st.Info.Render(label), st.Faint.Render(strings.Repeat("─", keyWidth+16)))
			context = b.Context
		}
		key := keyLabel(b)
		lines = append(lines, keyStyle.Render(key+strings.Repeat(" ", keyWidth-lipgloss.Width(key)))+"  "+st.Base.Render(b.Description))
	}
	return lines
}

func keyLabel(b keymap.Binding) string {
	keys := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		if k == " " {
			k = "space"
		}
		keys[i] = k
	}
	return strings.Join(keys, ", ")
}
