// Package playerbar renders the one-line transport bar under the panes.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ripple/internal/icons"
	"github.com/llehouerou/ripple/internal/playlist"
	"github.com/llehouerou/ripple/internal/session"
	"github.com/llehouerou/ripple/internal/ui/render"
	"github.com/llehouerou/ripple/internal/ui/styles"
)

// Height is the rendered height including the border.
const Height = 3

const (
	separator   = "   "
	minBarWidth = 5
)

// State holds everything needed to render the bar.
type State struct {
	Title    string
	Artist   string
	Playing  bool
	Loading  bool
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Repeat   playlist.RepeatMode
	Shuffle  bool
}

// FromSession builds the bar state from a session snapshot.
func FromSession(s session.State) State {
	st := State{
		Playing:  s.IsPlaying,
		Loading:  s.IsLoading,
		Position: s.CurrentTime,
		Duration: s.Duration,
		Volume:   s.Volume,
		Repeat:   s.Repeat,
		Shuffle:  s.Shuffle,
	}
	if s.CurrentSong != nil {
		st.Title = s.CurrentSong.Name
		if st.Title == "" {
			st.Title = s.CurrentSong.ID
		}
		st.Artist = s.CurrentSong.Artist
	}
	return st
}

// Render returns the bar for width columns, or "" when no song is current.
//
//	Title · Artist   ▶ ━━━━────   1:23 / 3:58   ⇄ ↻1  80%
func Render(s State, width int) string {
	if s.Title == "" {
		return ""
	}
	st := styles.S()
	inner := max(width-6, 0) // border and padding

	status := icons.Pause()
	switch {
	case s.Loading:
		status = icons.Loading()
	case s.Playing:
		status = icons.Play()
	}

	times := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))
	modes := modeIndicators(s)
	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(times) + lipgloss.Width(modes) + 3*len(separator)

	label := render.Clean(s.Title)
	if s.Artist != "" {
		label += " · " + render.Clean(s.Artist)
	}
	labelWidth := min(lipgloss.Width(label), max(inner-fixed-minBarWidth, 0))
	label = render.Truncate(label, labelWidth)

	barWidth := max(inner-fixed-lipgloss.Width(label), minBarWidth)

	var b strings.Builder
	b.WriteString(st.Title.Render(label))
	b.WriteString(separator)
	b.WriteString(status)
	b.WriteString("  ")
	b.WriteString(progress(s.Position, s.Duration, barWidth))
	b.WriteString(separator)
	b.WriteString(st.Dim.Render(times))
	b.WriteString(separator)
	b.WriteString(st.Info.Render(modes))

	return styles.Panel(false).Padding(0, 2).Width(max(width-2, 0)).Render(b.String())
}

func modeIndicators(s State) string {
	var parts []string
	if s.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	switch s.Repeat {
	case playlist.RepeatAll:
		parts = append(parts, icons.RepeatAll())
	case playlist.RepeatOne:
		parts = append(parts, icons.RepeatOne())
	case playlist.RepeatOff:
	}
	parts = append(parts, fmt.Sprintf("%3d%%", int(s.Volume*100+0.5)))
	return strings.Join(parts, " ")
}

func progress(pos, dur time.Duration, width int) string {
	var ratio float64
	if dur > 0 {
		ratio = float64(pos) / float64(dur)
	}
	filled := min(max(int(float64(width)*ratio), 0), width)
	st := styles.S()
	return st.Current.Render(strings.Repeat("━", filled)) + st.Faint.Render(strings.Repeat("─", width-filled))
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
