// Package player drives audio output. Device is the contract the playback
// bridge talks to; BeepDevice plays through the system speaker and Mock
// records calls for tests.
package player

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotLoaded is returned by transport commands when nothing is loaded.
	ErrNotLoaded = errors.New("no media loaded")
	// ErrUnsupportedFormat is returned when no decoder handles the media.
	ErrUnsupportedFormat = errors.New("unsupported media format")
)

// Status is a snapshot of the device, pushed periodically and on
// transitions.
type Status struct {
	IsLoaded       bool
	IsPlaying      bool
	PositionMillis int64
	DurationMillis int64
	DidJustFinish  bool // set once, on the first status after the media ended
	IsLooping      bool
	Err            error
}

// Position returns the playback position.
func (s Status) Position() time.Duration {
	return time.Duration(s.PositionMillis) * time.Millisecond
}

// Duration returns the media duration, zero when unknown.
func (s Status) Duration() time.Duration {
	return time.Duration(s.DurationMillis) * time.Millisecond
}

// Device is a playback device. A new load supersedes the previous one.
type Device interface {
	LoadAndPlay(ctx context.Context, url string, volume float64) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Stop(ctx context.Context) error
	Seek(ctx context.Context, positionMillis int64) error
	SetVolume(ctx context.Context, volume float64) error
	Status() Status
	Statuses() <-chan Status
	Close() error
}
