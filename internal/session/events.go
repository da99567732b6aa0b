package session

import (
	"time"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/playlist"
)

// SongChange is emitted when the current song changes identity.
type SongChange struct {
	Previous *catalog.Song
	Current  *catalog.Song
}

// PlayingChange is emitted when IsPlaying flips.
type PlayingChange struct {
	Playing bool
}

// LoadingChange is emitted when IsLoading flips.
type LoadingChange struct {
	Loading bool
}

// VolumeChange is emitted when the volume changes.
type VolumeChange struct {
	Volume float64
}

// PositionChange is emitted when the position or duration changes.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// SeekRequest is emitted when the device should jump to Position.
//
// Emitted by SeekTo, and by any action that restarts the current song
// (PlaySong or JumpTo on the current song, NextSong under repeat one).
type SeekRequest struct {
	Position time.Duration
}

// QueueChange is emitted when the queue contents or order change.
type QueueChange struct {
	Songs []catalog.Song // effective order
	Index int            // position of the current song, -1 if none
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Repeat  playlist.RepeatMode
	Shuffle bool
}
