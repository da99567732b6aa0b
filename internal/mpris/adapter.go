// Package mpris exposes the session store as an MPRIS media player so
// desktop media keys and widgets can control ripple.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/playlist"
	"github.com/llehouerou/ripple/internal/session"
)

const identity = "ripple"

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // The terminal owns the lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"http", "https", "file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp4", "audio/aac", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and its
// loop and shuffle extensions on top of the store.
type playerAdapter struct {
	store *session.Store
}

func (p *playerAdapter) Next() error {
	p.store.NextSong()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.store.PreviousSong()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.store.PauseSong()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.store.TogglePlay()
	return nil
}

// Stop pauses and rewinds; the current song stays so Play can resume.
func (p *playerAdapter) Stop() error {
	p.store.PauseSong()
	p.store.SeekTo(0)
	return nil
}

func (p *playerAdapter) Play() error {
	p.store.ResumeSong()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	st := p.store.Snapshot()
	p.store.SeekTo(max(st.CurrentTime+time.Duration(offset)*time.Microsecond, 0))
	return nil
}

// SetPosition is ignored when trackID is not the current song.
func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	song := p.store.CurrentSong()
	if song == nil || trackID != formatTrackID(song.ID) || position < 0 {
		return nil
	}
	p.store.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	st := p.store.Snapshot()
	switch {
	case st.CurrentSong == nil:
		return types.PlaybackStatusStopped, nil
	case st.IsPlaying:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.store.Snapshot()
	if st.CurrentSong == nil {
		return types.Metadata{}, nil
	}
	return metadata(*st.CurrentSong, st.Duration), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.store.Volume(), nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.store.SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.store.Snapshot().CurrentTime.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	st := p.store.Snapshot()
	idx := st.CurrentIndex()
	if idx < 0 {
		return false, nil
	}
	return idx < len(st.Queue)-1 || st.Repeat != playlist.RepeatOff || st.Shuffle, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	st := p.store.Snapshot()
	idx := st.CurrentIndex()
	if idx < 0 {
		return false, nil
	}
	return idx > 0 || st.Repeat != playlist.RepeatOff || st.Shuffle, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.store.CurrentSong() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.store.Repeat() {
	case playlist.RepeatOne:
		return types.LoopStatusTrack, nil
	case playlist.RepeatAll:
		return types.LoopStatusPlaylist, nil
	case playlist.RepeatOff:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.store.SetRepeat(playlist.RepeatOff)
	case types.LoopStatusTrack:
		p.store.SetRepeat(playlist.RepeatOne)
	case types.LoopStatusPlaylist:
		p.store.SetRepeat(playlist.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.store.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if p.store.Shuffle() != shuffle {
		p.store.ToggleShuffle()
	}
	return nil
}

func metadata(song catalog.Song, duration time.Duration) types.Metadata {
	if duration <= 0 {
		duration = song.Duration
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(song.ID)),
		Length:  types.Microseconds(duration.Microseconds()),
		Title:   song.Name,
		Album:   song.Album,
		ArtUrl:  song.ImageURL,
	}
	if song.Artist != "" {
		meta.Artist = []string{song.Artist}
	}
	return meta
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
