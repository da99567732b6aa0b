// Package session owns the authoritative player session: the current song,
// the queue in its original and shuffled orders, transport flags, modes and
// volume. Every action is synchronous, persists the session when a persisted
// field changed, and then notifies subscribers.
package session

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/playlist"
	"github.com/llehouerou/ripple/internal/state"
)

// State is a point-in-time copy of the session.
type State struct {
	CurrentSong   *catalog.Song
	IsPlaying     bool
	IsLoading     bool
	CurrentTime   time.Duration
	Duration      time.Duration
	Shuffle       bool
	Repeat        playlist.RepeatMode
	Volume        float64
	Queue         []catalog.Song // effective order
	OriginalQueue []catalog.Song
	ShuffledQueue []catalog.Song // nil when shuffle is off
}

// CurrentIndex returns the effective position of the current song, or -1.
func (s State) CurrentIndex() int {
	if s.CurrentSong == nil {
		return -1
	}
	return catalog.IndexOf(s.Queue, s.CurrentSong.ID)
}

// Store is the player session store. It is safe for concurrent use.
type Store struct {
	mu sync.Mutex

	persist state.Interface
	logger  *slog.Logger
	rng     playlist.Rand

	queue    *playlist.Queue
	history  *playlist.History
	current  *catalog.Song
	playing  bool
	loading  bool
	position time.Duration
	duration time.Duration
	shuffle  bool
	repeat   playlist.RepeatMode
	volume   float64

	saved state.PlayerState

	subs   []*Subscription
	subsMu sync.RWMutex
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the randomness source for shuffling and random selection.
func WithRand(r playlist.Rand) Option {
	return func(s *Store) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHistorySize sets the play history capacity.
func WithHistorySize(n int) Option {
	return func(s *Store) {
		s.history = playlist.NewHistory(n)
	}
}

// New creates a store backed by persist and restores the last saved session.
// A nil persist keeps the session in memory only.
func New(persist state.Interface, opts ...Option) *Store {
	s := &Store{
		persist: persist,
		logger:  slog.Default(),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // shuffling only
		queue:   playlist.NewQueue(),
		history: playlist.NewHistory(playlist.DefaultHistorySize),
		volume:  1,
		repeat:  playlist.RepeatOff,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.saved = s.playerStateLocked()
	if persist != nil {
		s.InitializeFromStorage()
	}
	return s
}

// Snapshot returns a copy of the whole session.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CurrentSong returns the current song, or nil if none.
func (s *Store) CurrentSong() *catalog.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySong(s.current)
}

// IsPlaying reports whether playback is intended to be running.
func (s *Store) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Volume returns the volume in [0, 1].
func (s *Store) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Repeat returns the repeat mode.
func (s *Store) Repeat() playlist.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeat
}

// Shuffle reports whether shuffle is on.
func (s *Store) Shuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuffle
}

// Queue returns the songs in playback order.
func (s *Store) Queue() []catalog.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Effective()
}

// History returns previously current songs, oldest first.
func (s *Store) History() []catalog.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Songs()
}

// Subscribe creates a new event subscription. Subscribing to a closed store
// returns a subscription whose Done channel is already closed.
func (s *Store) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe stops delivery to sub and closes its Done channel.
func (s *Store) Unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			sub.close()
			return
		}
	}
}

// Close signals Done to every subscriber. Actions keep working afterwards
// but no longer notify anyone.
func (s *Store) Close() error {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	return nil
}

// update runs mutate under the lock, persists if a persisted field changed,
// and notifies subscribers once the lock is released. mutate returns a seek
// request to forward, or nil.
func (s *Store) update(mutate func() *SeekRequest) {
	s.mu.Lock()
	before := s.snapshotLocked()
	seek := mutate()
	after := s.snapshotLocked()
	s.persistLocked()
	s.mu.Unlock()

	ev := diff(before, after)
	ev.seek = seek
	if ev.empty() {
		return
	}

	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.deliver(ev)
	}
}

func (s *Store) persistLocked() {
	if s.persist == nil {
		return
	}
	ps := s.playerStateLocked()
	if ps.Equal(s.saved) {
		return
	}
	// The in-memory session stays authoritative when the write fails.
	s.saved = ps
	if err := s.persist.SavePlayerState(ps); err != nil {
		s.logger.Error("save player state", "err", err)
	}
}

func (s *Store) playerStateLocked() state.PlayerState {
	return state.PlayerState{
		Queue:         s.queue.Effective(),
		OriginalQueue: s.queue.Original(),
		ShuffledQueue: s.queue.Shuffled(),
		CurrentSong:   copySong(s.current),
		Shuffle:       s.shuffle,
		Repeat:        s.repeat,
		Volume:        s.volume,
	}
}

func (s *Store) snapshotLocked() State {
	return State{
		CurrentSong:   copySong(s.current),
		IsPlaying:     s.playing,
		IsLoading:     s.loading,
		CurrentTime:   s.position,
		Duration:      s.duration,
		Shuffle:       s.shuffle,
		Repeat:        s.repeat,
		Volume:        s.volume,
		Queue:         s.queue.Effective(),
		OriginalQueue: s.queue.Original(),
		ShuffledQueue: s.queue.Shuffled(),
	}
}

func diff(before, after State) *events {
	ev := &events{}
	if songID(before.CurrentSong) != songID(after.CurrentSong) {
		ev.song = &SongChange{Previous: before.CurrentSong, Current: after.CurrentSong}
	}
	if before.IsPlaying != after.IsPlaying {
		ev.playing = &PlayingChange{Playing: after.IsPlaying}
	}
	if before.IsLoading != after.IsLoading {
		ev.loading = &LoadingChange{Loading: after.IsLoading}
	}
	if before.Volume != after.Volume {
		ev.volume = &VolumeChange{Volume: after.Volume}
	}
	if before.CurrentTime != after.CurrentTime || before.Duration != after.Duration {
		ev.position = &PositionChange{Position: after.CurrentTime, Duration: after.Duration}
	}
	if !sameOrder(before.Queue, after.Queue) || !sameOrder(before.OriginalQueue, after.OriginalQueue) ||
		before.CurrentIndex() != after.CurrentIndex() {
		ev.queue = &QueueChange{Songs: after.Queue, Index: after.CurrentIndex()}
	}
	if before.Repeat != after.Repeat || before.Shuffle != after.Shuffle {
		ev.mode = &ModeChange{Repeat: after.Repeat, Shuffle: after.Shuffle}
	}
	return ev
}

func sameOrder(a, b []catalog.Song) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func songID(s *catalog.Song) string {
	if s == nil {
		return ""
	}
	return s.ID
}

func copySong(s *catalog.Song) *catalog.Song {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
