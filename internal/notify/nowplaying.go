package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/session"
)

const defaultTimeout = 5000 // ms

// NowPlaying shows a notification whenever a new song starts playing.
// Each notification replaces the previous one.
type NowPlaying struct {
	notifier Notifier
	art      *ArtCache
	logger   *slog.Logger
	timeout  int32

	lastID     uint32
	notifiedID string
}

// Option configures NowPlaying.
type Option func(*NowPlaying)

// WithArtCache sets where cover images are downloaded for the icon.
func WithArtCache(c *ArtCache) Option {
	return func(p *NowPlaying) { p.art = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *NowPlaying) { p.logger = l }
}

// WithTimeout sets how long notifications stay up, in milliseconds.
func WithTimeout(ms int32) Option {
	return func(p *NowPlaying) { p.timeout = ms }
}

// NewNowPlaying creates a NowPlaying sending through n.
func NewNowPlaying(n Notifier, opts ...Option) *NowPlaying {
	p := &NowPlaying{
		notifier: n,
		logger:   slog.Default(),
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Watch follows store until ctx is done or the store closes.
func (p *NowPlaying) Watch(ctx context.Context, store *session.Store) {
	sub := store.Subscribe()
	defer store.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case ev := <-sub.SongChanged:
			if ev.Current == nil {
				p.clear()
				continue
			}
			if store.IsPlaying() && ev.Current.ID != p.notifiedID {
				p.show(ctx, *ev.Current)
			}
		case ev := <-sub.PlayingChanged:
			// A restored session starts paused; announce it on first play.
			if song := store.CurrentSong(); ev.Playing && song != nil && song.ID != p.notifiedID {
				p.show(ctx, *song)
			}
		}
	}
}

func (p *NowPlaying) show(ctx context.Context, song catalog.Song) {
	n := Notification{
		Title:      song.Name,
		Body:       body(song),
		Timeout:    p.timeout,
		ReplacesID: p.lastID,
		Urgency:    UrgencyLow,
	}
	if n.Title == "" {
		n.Title = song.ID
	}
	if p.art != nil {
		n.Icon = p.art.Path(ctx, song)
	}

	id, err := p.notifier.Notify(n)
	if err != nil {
		p.logger.Debug("notification failed", "song", song.ID, "error", err)
		return
	}
	p.lastID = id
	p.notifiedID = song.ID
}

func (p *NowPlaying) clear() {
	if p.lastID == 0 {
		return
	}
	if err := p.notifier.Close(p.lastID); err != nil {
		p.logger.Debug("close notification failed", "error", err)
	}
	p.lastID = 0
	p.notifiedID = ""
}

func body(song catalog.Song) string {
	var parts []string
	if song.Artist != "" {
		parts = append(parts, song.Artist)
	}
	if song.Album != "" {
		parts = append(parts, song.Album)
	}
	return strings.Join(parts, " · ")
}
