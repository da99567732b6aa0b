// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Catalog
	OpCatalogSearch Op = "search catalog"

	// Playback
	OpPlaybackLoad   Op = "load song"
	OpPlaybackPlay   Op = "resume playback"
	OpPlaybackPause  Op = "pause playback"
	OpPlaybackStop   Op = "stop playback"
	OpPlaybackSeek   Op = "seek"
	OpPlaybackVolume Op = "set volume"
	OpPlaybackStream Op = "play song"

	// Session storage
	OpStateOpen Op = "open session storage"
	OpStateSave Op = "save session"
	OpStateLoad Op = "load session"

	// Startup
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith adds the subject of the operation, such as a song name.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}
