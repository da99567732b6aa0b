package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/session"
)

// Searcher finds songs in the remote catalog.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*catalog.Page, error)
}

// WatchSession waits for the next store event of any kind.
func WatchSession(sub *session.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-sub.Done:
			return sessionClosedMsg{}
		case <-sub.SongChanged:
		case <-sub.PlayingChanged:
		case <-sub.LoadingChanged:
		case <-sub.VolumeChanged:
		case <-sub.PositionChanged:
		case <-sub.SeekRequested:
		case <-sub.QueueChanged:
		case <-sub.ModeChanged:
		}
		return SessionChangedMsg{}
	}
}

// SearchCmd runs a catalog search off the UI goroutine.
func SearchCmd(ctx context.Context, s Searcher, query string, page int) tea.Cmd {
	return func() tea.Msg {
		result, err := s.Search(ctx, query, page)
		return SearchResultMsg{Query: query, Page: result, Err: err}
	}
}
