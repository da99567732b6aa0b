// Package app is the terminal front end: catalog search, the queue and
// transport controls over a session store.
package app

import "github.com/llehouerou/ripple/internal/catalog"

// SessionChangedMsg is sent when the session store reported any change.
type SessionChangedMsg struct{}

// sessionClosedMsg is sent once the store's subscription ends.
type sessionClosedMsg struct{}

// SearchResultMsg carries one page of catalog results.
type SearchResultMsg struct {
	Query string
	Page  *catalog.Page
	Err   error
}

// ErrorMsg shows a user-facing error line, e.g. a playback failure.
type ErrorMsg struct {
	Text string
}
