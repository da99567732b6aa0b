// Package bridge keeps a playback device in step with the session store.
//
// The store is authoritative. Every store event triggers a reconciliation
// against the store's current snapshot, and device statuses flow back as
// position, duration and completion updates.
package bridge

import (
	"context"
	"errors"
	"log/slog"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/errmsg"
	"github.com/llehouerou/ripple/internal/player"
	"github.com/llehouerou/ripple/internal/playlist"
	"github.com/llehouerou/ripple/internal/session"
)

// Bridge drives a player.Device from a session.Store. It is not safe for
// concurrent use; Run owns it.
type Bridge struct {
	store   *session.Store
	device  player.Device
	logger  *slog.Logger
	quality string
	onError func(string)

	loadedID string
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger for device failures.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// WithQuality sets the preferred media link quality, e.g. "160kbps".
func WithQuality(q string) Option {
	return func(b *Bridge) { b.quality = q }
}

// WithErrorHandler receives a user-facing message for every failure.
func WithErrorHandler(fn func(msg string)) Option {
	return func(b *Bridge) { b.onError = fn }
}

// New creates a bridge between store and device.
func New(store *session.Store, device player.Device, opts ...Option) *Bridge {
	b := &Bridge{
		store:   store,
		device:  device,
		logger:  slog.Default(),
		quality: catalog.DefaultQuality,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LoadedID returns the ID of the song the device holds, or "".
func (b *Bridge) LoadedID() string {
	return b.loadedID
}

// Run reconciles until ctx is canceled or the store closes.
func (b *Bridge) Run(ctx context.Context) error {
	sub := b.store.Subscribe()
	defer b.store.Unsubscribe(sub)

	b.Sync(ctx)
	statuses := b.device.Statuses()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sub.Done:
			return nil
		case <-sub.SongChanged:
			b.Sync(ctx)
		case <-sub.PlayingChanged:
			b.Sync(ctx)
		case ev := <-sub.VolumeChanged:
			if err := b.device.SetVolume(ctx, ev.Volume); err != nil {
				b.report(errmsg.OpPlaybackVolume, "", err)
			}
		case ev := <-sub.SeekRequested:
			b.seek(ctx, ev)
		case st, ok := <-statuses:
			if !ok {
				statuses = nil
				continue
			}
			b.HandleStatus(ctx, st)
		}
	}
}

// Sync makes the device match the store's current song and playing flag.
func (b *Bridge) Sync(ctx context.Context) {
	snap := b.store.Snapshot()
	song := snap.CurrentSong

	if song == nil {
		b.unload(ctx)
		return
	}

	if song.ID != b.loadedID {
		b.unload(ctx)
		if snap.IsPlaying {
			b.load(ctx, *song, snap.Volume)
		}
		return
	}

	st := b.device.Status()
	switch {
	case snap.IsPlaying && !st.IsPlaying:
		err := b.device.Play(ctx)
		if errors.Is(err, player.ErrNotLoaded) {
			// The device dropped the media under us; load it again.
			b.loadedID = ""
			b.load(ctx, *song, snap.Volume)
			return
		}
		if err != nil {
			b.fail(errmsg.OpPlaybackPlay, song.Name, err)
		}
	case !snap.IsPlaying && st.IsPlaying:
		if err := b.device.Pause(ctx); err != nil {
			b.report(errmsg.OpPlaybackPause, song.Name, err)
		}
	}
}

// HandleStatus applies one device status to the store.
func (b *Bridge) HandleStatus(ctx context.Context, st player.Status) {
	if st.Err != nil {
		b.fail(errmsg.OpPlaybackStream, "", st.Err)
		return
	}
	if !st.IsLoaded || b.loadedID == "" {
		return
	}
	snap := b.store.Snapshot()
	if snap.CurrentSong == nil || snap.CurrentSong.ID != b.loadedID {
		return
	}

	if snap.IsLoading {
		b.store.SetIsLoading(false)
	}
	if st.DurationMillis > 0 {
		b.store.SetDuration(st.Duration())
	}
	b.store.SetCurrentTime(st.Position())

	if !st.DidJustFinish || st.IsLooping || st.IsPlaying {
		return
	}
	if snap.Repeat == playlist.RepeatOne {
		b.replay(ctx, *snap.CurrentSong)
		return
	}
	b.store.NextSong()
}

func (b *Bridge) replay(ctx context.Context, song catalog.Song) {
	if err := b.device.Seek(ctx, 0); err != nil {
		b.fail(errmsg.OpPlaybackSeek, song.Name, err)
		return
	}
	if err := b.device.Play(ctx); err != nil {
		b.fail(errmsg.OpPlaybackPlay, song.Name, err)
		return
	}
	b.store.SetCurrentTime(0)
}

func (b *Bridge) load(ctx context.Context, song catalog.Song, volume float64) {
	url, err := catalog.MediaURL(song, b.quality)
	if err != nil {
		b.fail(errmsg.OpPlaybackLoad, song.Name, err)
		return
	}
	b.logger.Debug("loading song", "id", song.ID, "url", url)
	if err := b.device.LoadAndPlay(ctx, url, volume); err != nil {
		b.fail(errmsg.OpPlaybackLoad, song.Name, err)
		return
	}
	b.loadedID = song.ID
	b.store.SetIsLoading(false)
}

func (b *Bridge) unload(ctx context.Context) {
	if b.loadedID == "" {
		return
	}
	b.loadedID = ""
	if err := b.device.Stop(ctx); err != nil {
		b.report(errmsg.OpPlaybackStop, "", err)
	}
}

func (b *Bridge) seek(ctx context.Context, ev session.SeekRequest) {
	if b.loadedID == "" {
		return
	}
	if err := b.device.Seek(ctx, ev.Position.Milliseconds()); err != nil {
		b.report(errmsg.OpPlaybackSeek, "", err)
		return
	}
	// Restarting a finished song leaves the device paused at the end.
	b.Sync(ctx)
}

// fail reports err and marks the session as neither loading nor playing.
func (b *Bridge) fail(op errmsg.Op, subject string, err error) {
	b.report(op, subject, err)
	b.store.SetIsLoading(false)
	b.store.SetIsPlaying(false)
}

func (b *Bridge) report(op errmsg.Op, subject string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	msg := errmsg.FormatWith(op, subject, err)
	b.logger.Warn(msg)
	if b.onError != nil {
		b.onError(msg)
	}
}
