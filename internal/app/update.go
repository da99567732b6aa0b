package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/errmsg"
	"github.com/llehouerou/ripple/internal/keymap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Input.Width = max(msg.Width-12, 10)
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case SessionChangedMsg:
		m.refresh()
		return m, WatchSession(m.sub)

	case sessionClosedMsg:
		return m, nil

	case SearchResultMsg:
		return m.handleSearchResult(msg), nil

	case ErrorMsg:
		m.ErrorMsg = msg.Text
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.Focus == FocusSearch {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchResult(msg SearchResultMsg) Model {
	if msg.Query != m.Query {
		return m
	}
	m.Searching = false
	if msg.Err != nil {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpCatalogSearch, msg.Query, msg.Err)
		return m
	}
	m.ErrorMsg = ""
	m.Results = msg.Page.Songs
	m.Total = msg.Page.Total
	m.Page = msg.Page.Page
	m.ResultCursor = 0
	m.setFocus(FocusResults)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		var closed bool
		m.help, closed = m.help.Update(msg)
		m.showHelp = !closed
		return m, nil
	}
	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	var cmd tea.Cmd
	switch action := m.resolver().Resolve(key); action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		return m, nil
	case keymap.ActionSearch:
		m.setFocus(FocusSearch)
		return m, textinput.Blink
	case keymap.ActionSwitchFocus:
		if m.Focus == FocusResults {
			m.setFocus(FocusQueue)
		} else {
			m.setFocus(FocusResults)
		}
	case keymap.ActionPlayPause:
		m.store.TogglePlay()
	case keymap.ActionNextTrack:
		m.store.NextSong()
	case keymap.ActionPrevTrack:
		m.store.PreviousSong()
	case keymap.ActionSeekForward:
		m.store.SeekTo(m.Session.CurrentTime + seekStep*time.Second)
	case keymap.ActionSeekBack:
		m.store.SeekTo(max(m.Session.CurrentTime-seekStep*time.Second, 0))
	case keymap.ActionVolumeUp:
		m.store.SetVolume(m.Session.Volume + volumeStep)
	case keymap.ActionVolumeDown:
		m.store.SetVolume(m.Session.Volume - volumeStep)
	case keymap.ActionToggleShuffle:
		m.store.ToggleShuffle()
	case keymap.ActionCycleRepeat:
		m.store.CycleRepeat()
	case keymap.ActionClearQueue:
		m.store.ClearQueue()
	default:
		if m.Focus == FocusResults {
			cmd = m.handleResultsAction(action)
		} else {
			m.handleQueueAction(action)
		}
	}
	m.refresh()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.resolver().Resolve(msg.String()) {
	case keymap.ActionSubmit:
		q := strings.TrimSpace(m.Input.Value())
		if q == "" {
			return m, nil
		}
		m.Query = q
		m.Searching = true
		return m, SearchCmd(m.ctx, m.searcher, q, 1)
	case keymap.ActionBlur:
		m.setFocus(FocusResults)
		return m, nil
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsAction(action keymap.Action) tea.Cmd {
	switch action {
	case keymap.ActionMoveDown:
		m.ResultCursor++
	case keymap.ActionMoveUp:
		m.ResultCursor--
	case keymap.ActionSelect:
		if len(m.Results) > 0 {
			m.store.PlaySong(m.Results[m.ResultCursor])
		}
	case keymap.ActionAdd:
		if len(m.Results) > 0 {
			m.store.AddToQueue(m.Results[m.ResultCursor])
		}
	case keymap.ActionReplace:
		if len(m.Results) > 0 {
			m.store.ReplaceQueue(m.Results, m.ResultCursor)
		}
	case keymap.ActionNextPage:
		if m.hasNextPage() && !m.Searching {
			m.Searching = true
			return SearchCmd(m.ctx, m.searcher, m.Query, m.Page+1)
		}
	case keymap.ActionPrevPage:
		if m.Page > 1 && !m.Searching {
			m.Searching = true
			return SearchCmd(m.ctx, m.searcher, m.Query, m.Page-1)
		}
	}
	return nil
}

func (m *Model) handleQueueAction(action keymap.Action) {
	n := len(m.Session.Queue)
	switch action {
	case keymap.ActionMoveDown:
		m.QueueCursor++
	case keymap.ActionMoveUp:
		m.QueueCursor--
	case keymap.ActionJumpStart:
		m.QueueCursor = 0
	case keymap.ActionJumpEnd:
		m.QueueCursor = n - 1
	case keymap.ActionSelect:
		m.store.JumpTo(m.QueueCursor)
	case keymap.ActionDelete:
		m.store.RemoveFromQueue(m.QueueCursor)
	case keymap.ActionMoveItemDown:
		if m.QueueCursor < n-1 {
			m.store.ReorderQueue(m.QueueCursor, m.QueueCursor+1)
			m.QueueCursor++
		}
	case keymap.ActionMoveItemUp:
		if m.QueueCursor > 0 {
			m.store.ReorderQueue(m.QueueCursor, m.QueueCursor-1)
			m.QueueCursor--
		}
	}
}
