package app

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/keymap"
	"github.com/llehouerou/ripple/internal/session"
	"github.com/llehouerou/ripple/internal/ui/helpbindings"
)

// FocusTarget is the pane receiving keys.
type FocusTarget int

const (
	FocusSearch FocusTarget = iota
	FocusResults
	FocusQueue
)

const (
	seekStep   = 5 // seconds
	volumeStep = 0.05
)

// Model is the root application model.
type Model struct {
	ctx      context.Context
	store    *session.Store
	sub      *session.Subscription
	searcher Searcher
	pageSize int

	Input   textinput.Model
	Focus   FocusTarget
	Session session.State

	Query        string
	Results      []catalog.Song
	Total        int
	Page         int
	Searching    bool
	ResultCursor int
	QueueCursor  int

	ErrorMsg string
	Width    int
	Height   int

	help      helpbindings.Model
	showHelp  bool
	resolvers map[string]*keymap.Resolver
}

// Option configures a Model.
type Option func(*Model)

// WithPageSize sets the catalog page size used to decide whether more
// pages exist.
func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.pageSize = n
		}
	}
}

// New creates the root model and subscribes to store.
func New(ctx context.Context, store *session.Store, searcher Searcher, opts ...Option) Model {
	in := textinput.New()
	in.Placeholder = "search songs"
	in.Prompt = "/ "
	in.CharLimit = 120
	in.Focus()

	m := Model{
		ctx:       ctx,
		store:     store,
		sub:       store.Subscribe(),
		searcher:  searcher,
		pageSize:  20,
		Input:     in,
		Focus:     FocusSearch,
		Session:   store.Snapshot(),
		help:      helpbindings.New(),
		resolvers: make(map[string]*keymap.Resolver),
	}
	for _, c := range []string{keymap.ContextSearch, keymap.ContextResults, keymap.ContextQueue} {
		m.resolvers[c] = keymap.ForContext(c)
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(WatchSession(m.sub), textinput.Blink)
}

// Close stops the store subscription.
func (m Model) Close() {
	m.store.Unsubscribe(m.sub)
}

func (m *Model) setFocus(f FocusTarget) {
	m.Focus = f
	if f == FocusSearch {
		m.Input.Focus()
		return
	}
	m.Input.Blur()
}

// context names the keymap context of the focused pane.
func (m Model) context() string {
	switch m.Focus {
	case FocusSearch:
		return keymap.ContextSearch
	case FocusQueue:
		return keymap.ContextQueue
	default:
		return keymap.ContextResults
	}
}

func (m Model) resolver() *keymap.Resolver {
	return m.resolvers[m.context()]
}

// refresh re-reads the session and keeps cursors in range.
func (m *Model) refresh() {
	m.Session = m.store.Snapshot()
	m.QueueCursor = clampCursor(m.QueueCursor, len(m.Session.Queue))
	m.ResultCursor = clampCursor(m.ResultCursor, len(m.Results))
}

func (m Model) hasNextPage() bool {
	return m.Page*m.pageSize < m.Total && len(m.Results) > 0
}

func clampCursor(c, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(c, 0), n-1)
}
