package session

import (
	"math"
	"time"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/playlist"
)

// PlaySong makes song current and starts it. A song that is not queued yet
// is put first in the queue. Playing the current song again restarts it.
func (s *Store) PlaySong(song catalog.Song) {
	if song.ID == "" {
		return
	}
	s.update(func() *SeekRequest {
		s.queue.Prepend(song)
		return s.switchToLocked(song)
	})
}

// PauseSong stops playback, keeping the current song and position.
func (s *Store) PauseSong() {
	s.update(func() *SeekRequest {
		if s.current != nil {
			s.playing = false
		}
		return nil
	})
}

// ResumeSong restarts playback of the current song.
func (s *Store) ResumeSong() {
	s.update(func() *SeekRequest {
		if s.current != nil {
			s.playing = true
		}
		return nil
	})
}

// TogglePlay pauses when playing and resumes otherwise.
func (s *Store) TogglePlay() {
	s.update(func() *SeekRequest {
		if s.current != nil {
			s.playing = !s.playing
		}
		return nil
	})
}

// NextSong advances to the next song. At the end of the queue with repeat
// off, playback stops and the current song is kept.
func (s *Store) NextSong() {
	s.update(func() *SeekRequest {
		idx := s.currentIndexLocked()
		if idx < 0 {
			return nil
		}
		next, ok := playlist.NextIndex(idx, s.queue.Len(), s.shuffle, s.repeat, s.rng)
		if !ok {
			s.playing = false
			return nil
		}
		return s.switchToLocked(*s.queue.At(next))
	})
}

// PreviousSong goes back one song. While shuffled it walks back through
// the play history.
func (s *Store) PreviousSong() {
	s.update(func() *SeekRequest {
		idx := s.currentIndexLocked()
		if idx < 0 {
			return nil
		}
		prev, ok := playlist.PreviousIndex(idx, s.queue.Effective(), s.shuffle, s.repeat, s.history, s.rng)
		if !ok {
			return nil
		}
		target := *s.queue.At(prev)
		if last, found := s.history.Last(); s.shuffle && found && last.ID == target.ID {
			s.history.Pop()
			return s.startLocked(target)
		}
		return s.switchToLocked(target)
	})
}

// SeekTo moves the position, clamped to [0, Duration], and asks the device
// to follow.
func (s *Store) SeekTo(t time.Duration) {
	s.update(func() *SeekRequest {
		if s.current == nil {
			return nil
		}
		s.position = clampDuration(t, s.duration)
		return &SeekRequest{Position: s.position}
	})
}

// AddToQueue appends song unless a song with the same ID is queued. While
// shuffled a fresh permutation is drawn.
func (s *Store) AddToQueue(song catalog.Song) {
	if song.ID == "" {
		return
	}
	s.update(func() *SeekRequest {
		if !s.queue.Append(song) {
			return nil
		}
		if s.shuffle {
			s.queue.Shuffle(s.rng)
		}
		return nil
	})
}

// RemoveFromQueue removes the song at an effective position. Removing the
// current song moves on to the song that followed it, or stops when there
// is none.
func (s *Store) RemoveFromQueue(index int) {
	s.update(func() *SeekRequest {
		removed, ok := s.queue.RemoveAt(index)
		if !ok {
			return nil
		}
		if s.current == nil || s.current.ID != removed.ID {
			return nil
		}
		// The repeated song is gone, so repeat one cannot keep it.
		repeat := s.repeat
		if repeat == playlist.RepeatOne {
			repeat = playlist.RepeatOff
		}
		next, ok := playlist.NextIndex(index-1, s.queue.Len(), s.shuffle, repeat, s.rng)
		if !ok {
			s.history.Push(*s.current)
			s.resetPlaybackLocked()
			return nil
		}
		return s.switchToLocked(*s.queue.At(next))
	})
}

// ReorderQueue moves the song at effective position from to position to.
func (s *Store) ReorderQueue(from, to int) {
	s.update(func() *SeekRequest {
		s.queue.Move(from, to)
		return nil
	})
}

// ClearQueue empties the queue and unloads the current song. Modes and
// volume are kept.
func (s *Store) ClearQueue() {
	s.update(func() *SeekRequest {
		s.queue.Clear()
		s.syncShuffleLocked()
		s.history.Clear()
		s.resetPlaybackLocked()
		return nil
	})
}

// ToggleShuffle flips shuffle. Turning it on draws a fresh permutation;
// turning it off restores insertion order.
func (s *Store) ToggleShuffle() {
	s.update(func() *SeekRequest {
		s.shuffle = !s.shuffle
		if s.shuffle {
			s.queue.Shuffle(s.rng)
		} else {
			s.queue.Unshuffle()
		}
		return nil
	})
}

// SetRepeat sets the repeat mode. Unknown modes are ignored.
func (s *Store) SetRepeat(mode playlist.RepeatMode) {
	if mode < playlist.RepeatOff || mode > playlist.RepeatOne {
		return
	}
	s.update(func() *SeekRequest {
		s.repeat = mode
		return nil
	})
}

// CycleRepeat steps the repeat mode off -> all -> one -> off.
func (s *Store) CycleRepeat() {
	s.update(func() *SeekRequest {
		s.repeat = s.repeat.Next()
		return nil
	})
}

// SetVolume sets the volume, clamped to [0, 1].
func (s *Store) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.update(func() *SeekRequest {
		s.volume = clampVolume(v)
		return nil
	})
}

// SetCurrentTime records the playback position reported by the device.
func (s *Store) SetCurrentTime(t time.Duration) {
	s.update(func() *SeekRequest {
		s.position = clampDuration(t, s.duration)
		return nil
	})
}

// SetDuration records the duration reported by the device.
func (s *Store) SetDuration(d time.Duration) {
	s.update(func() *SeekRequest {
		s.duration = max(d, 0)
		s.position = clampDuration(s.position, s.duration)
		return nil
	})
}

// SetIsPlaying sets the playback flag directly.
func (s *Store) SetIsPlaying(playing bool) {
	s.update(func() *SeekRequest {
		s.playing = playing
		return nil
	})
}

// SetIsLoading sets the loading flag.
func (s *Store) SetIsLoading(loading bool) {
	s.update(func() *SeekRequest {
		s.loading = loading
		return nil
	})
}

// SetCurrentSong replaces the current song without touching the queue or
// the playback flag. nil clears it.
func (s *Store) SetCurrentSong(song *catalog.Song) {
	s.update(func() *SeekRequest {
		if song == nil {
			if s.current != nil {
				s.history.Push(*s.current)
			}
			s.current = nil
			s.position, s.duration = 0, 0
			return nil
		}
		if s.current != nil && s.current.ID == song.ID {
			return nil
		}
		if s.current != nil {
			s.history.Push(*s.current)
		}
		s.current = copySong(song)
		s.position, s.duration = 0, song.Duration
		return nil
	})
}

// JumpTo plays the song at an effective position.
func (s *Store) JumpTo(index int) {
	s.update(func() *SeekRequest {
		song := s.queue.At(index)
		if song == nil {
			return nil
		}
		return s.switchToLocked(*song)
	})
}

// ReplaceQueue swaps the queue for songs (duplicate IDs dropped) and plays
// the song at start in the given order. An empty list clears the queue.
func (s *Store) ReplaceQueue(songs []catalog.Song, start int) {
	s.update(func() *SeekRequest {
		s.queue.Replace(songs)
		s.syncShuffleLocked()
		original := s.queue.Original()
		if len(original) == 0 {
			s.resetPlaybackLocked()
			return nil
		}
		if start < 0 || start >= len(original) {
			start = 0
		}
		return s.switchToLocked(original[start])
	})
}

// InitializeFromStorage reloads the persisted session. Missing or corrupt
// slots fall back to defaults; playback always starts paused.
func (s *Store) InitializeFromStorage() {
	if s.persist == nil {
		return
	}
	ps := s.persist.LoadPlayerState()
	s.update(func() *SeekRequest {
		original := ps.OriginalQueue
		if len(original) == 0 {
			original = playlist.EffectiveQueue(ps.Queue, nil, ps.ShuffledQueue, ps.Shuffle)
		}
		effective := playlist.EffectiveQueue(ps.Queue, ps.OriginalQueue, ps.ShuffledQueue, ps.Shuffle)
		s.queue.Restore(original, effective, ps.Shuffle)
		s.shuffle = ps.Shuffle

		s.repeat = ps.Repeat
		if s.repeat < playlist.RepeatOff || s.repeat > playlist.RepeatOne {
			s.repeat = playlist.RepeatOff
		}
		s.volume = 1
		if !math.IsNaN(ps.Volume) {
			s.volume = clampVolume(ps.Volume)
		}

		s.history.Clear()
		s.current = copySong(ps.CurrentSong)
		s.playing, s.loading = false, false
		s.position = 0
		s.duration = 0
		if s.current != nil {
			s.duration = s.current.Duration
		}

		// What was just loaded needs no write back.
		s.saved = s.playerStateLocked()
		return nil
	})
}

// switchToLocked makes song current and starts it from the top. Switching
// to a different song records the departing one in the history.
func (s *Store) switchToLocked(song catalog.Song) *SeekRequest {
	if s.current != nil && s.current.ID != song.ID {
		s.history.Push(*s.current)
	}
	return s.startLocked(song)
}

// startLocked starts song without touching the history. Restarting the
// current song asks the device to seek back instead of reloading.
func (s *Store) startLocked(song catalog.Song) *SeekRequest {
	restart := s.current != nil && s.current.ID == song.ID
	s.current = &song
	s.playing = true
	s.position = 0
	s.duration = song.Duration
	if restart {
		return &SeekRequest{Position: 0}
	}
	s.loading = true
	return nil
}

func (s *Store) resetPlaybackLocked() {
	s.current = nil
	s.playing, s.loading = false, false
	s.position, s.duration = 0, 0
}

// syncShuffleLocked re-draws the permutation after the queue dropped it.
func (s *Store) syncShuffleLocked() {
	if s.shuffle && !s.queue.IsShuffled() {
		s.queue.Shuffle(s.rng)
	}
}

func (s *Store) currentIndexLocked() int {
	if s.current == nil {
		return -1
	}
	return s.queue.IndexOf(s.current.ID)
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}

// clampDuration limits t to [0, limit].
func clampDuration(t, limit time.Duration) time.Duration {
	return min(max(t, 0), max(limit, 0))
}
