package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/icons"
	"github.com/llehouerou/ripple/internal/keymap"
	"github.com/llehouerou/ripple/internal/ui/overlay"
	"github.com/llehouerou/ripple/internal/ui/playerbar"
	"github.com/llehouerou/ripple/internal/ui/render"
	"github.com/llehouerou/ripple/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	headerHeight  = 1
	statusHeight  = 1
	paneChrome    = 3 // border plus title line
)

// View implements tea.Model.
func (m Model) View() string {
	width, height := m.Width, m.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	bar := playerbar.Render(playerbar.FromSession(m.Session), width)
	barHeight := 0
	if bar != "" {
		barHeight = playerbar.Height
	}
	rows := max(height-headerHeight-statusHeight-barHeight-paneChrome, 1)

	leftWidth := width / 2
	rightWidth := width - leftWidth
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderResults(leftWidth, rows),
		m.renderQueue(rightWidth, rows),
	)

	parts := []string{m.renderHeader(width), panes}
	if bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.renderStatus(width))
	view := strings.Join(parts, "\n")
	if m.showHelp {
		view = overlay.Center(view, m.help.View(), width, height)
	}
	return view
}

func (m Model) renderHeader(width int) string {
	logo := styles.Gradient("ripple", styles.T().Accent, styles.T().AccentAlt)
	return render.Row(logo, m.Input.View(), width)
}

func (m Model) renderResults(width, rows int) string {
	inner := max(width-2, 1)
	var title string
	switch {
	case m.Searching:
		title = "Searching…"
	case m.Query == "":
		title = "Results"
	default:
		title = fmt.Sprintf("Results for %q: %s (page %d)", m.Query, humanize.Comma(int64(m.Total)), m.Page)
	}

	current := ""
	if m.Session.CurrentSong != nil {
		current = m.Session.CurrentSong.ID
	}
	lines := []string{styles.S().Title.Render(render.Fit(title, inner))}
	lines = append(lines, songLines(m.Results, m.ResultCursor, current, m.Focus == FocusResults, inner, rows)...)
	return styles.Panel(m.Focus == FocusResults).Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) renderQueue(width, rows int) string {
	inner := max(width-2, 1)
	title := "Queue (" + humanize.Comma(int64(len(m.Session.Queue))) + ")"
	if m.Session.Shuffle {
		title += " shuffled"
	}

	current := ""
	if m.Session.CurrentSong != nil {
		current = m.Session.CurrentSong.ID
	}
	lines := []string{styles.S().Title.Render(render.Fit(title, inner))}
	lines = append(lines, songLines(m.Session.Queue, m.QueueCursor, current, m.Focus == FocusQueue, inner, rows)...)
	return styles.Panel(m.Focus == FocusQueue).Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus(width int) string {
	if m.ErrorMsg != "" {
		return styles.S().Error.Render(render.Truncate(m.ErrorMsg, width))
	}
	return styles.S().Faint.Render(render.Truncate(keymap.HelpLine(m.context()), width))
}

// songLines renders a window of rows songs that keeps the cursor visible.
// Short lists are padded so panes keep a stable height.
func songLines(songs []catalog.Song, cursor int, currentID string, focused bool, width, rows int) []string {
	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	end := min(start+rows, len(songs))

	st := styles.S()
	lines := make([]string, 0, rows)
	for i := start; i < end; i++ {
		s := songs[i]
		text := s.Name
		if s.Artist != "" {
			text += " · " + s.Artist
		}
		if s.ID == currentID {
			text = icons.NowPlaying() + text
		}
		dur := ""
		if s.Duration > 0 {
			dur = formatLength(s.Duration.Seconds())
		}
		line := render.Row(render.Truncate(text, width-len(dur)-1), dur, width)
		switch {
		case focused && i == cursor:
			line = st.Cursor.Render(line)
		case s.ID == currentID:
			line = st.Current.Render(line)
		default:
			line = st.Base.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return lines
}

func formatLength(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
