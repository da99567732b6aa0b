package playlist

import "github.com/llehouerou/ripple/internal/catalog"

// Rand is the randomness source for shuffling and random selection.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Queue keeps one canonical song order plus, while shuffled, a permutation
// of indices into it. The effective order is derived from the two, so the
// original and shuffled views can never drift apart. Song IDs are unique.
type Queue struct {
	songs *Playlist
	order []int // shuffle position -> canonical index; nil when not shuffled
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{songs: NewPlaylist()}
}

// Len returns the number of songs in the queue.
func (q *Queue) Len() int {
	return q.songs.Len()
}

// IsEmpty returns true if the queue has no songs.
func (q *Queue) IsEmpty() bool {
	return q.songs.Len() == 0
}

// IsShuffled returns true while a shuffle permutation is active.
func (q *Queue) IsShuffled() bool {
	return q.order != nil
}

// Original returns the songs in insertion order.
func (q *Queue) Original() []catalog.Song {
	return q.songs.Songs()
}

// Shuffled returns the songs in shuffle order, or nil when not shuffled.
func (q *Queue) Shuffled() []catalog.Song {
	if q.order == nil {
		return nil
	}
	result := make([]catalog.Song, len(q.order))
	for i, ci := range q.order {
		result[i] = *q.songs.Song(ci)
	}
	return result
}

// Effective returns the songs in playback order.
func (q *Queue) Effective() []catalog.Song {
	if q.order != nil {
		return q.Shuffled()
	}
	return q.Original()
}

// At returns the song at an effective position, or nil if out of bounds.
func (q *Queue) At(index int) *catalog.Song {
	ci, ok := q.canonical(index)
	if !ok {
		return nil
	}
	s := *q.songs.Song(ci)
	return &s
}

// IndexOf returns the effective position of the song with the given ID, or -1.
func (q *Queue) IndexOf(id string) int {
	ci := q.songs.IndexOf(id)
	if ci < 0 || q.order == nil {
		return ci
	}
	for i, c := range q.order {
		if c == ci {
			return i
		}
	}
	return -1
}

// Contains reports whether a song with the given ID is queued.
func (q *Queue) Contains(id string) bool {
	return q.songs.IndexOf(id) >= 0
}

// Append adds a song at the end of the canonical order (and of the shuffle
// order when shuffled). Returns false if the ID is already queued.
func (q *Queue) Append(song catalog.Song) bool {
	if q.Contains(song.ID) {
		return false
	}
	q.songs.Add(song)
	if q.order != nil {
		q.order = append(q.order, q.songs.Len()-1)
	}
	return true
}

// Prepend puts a song first in both the canonical and the shuffle order.
// Returns false if the ID is already queued.
func (q *Queue) Prepend(song catalog.Song) bool {
	if q.Contains(song.ID) {
		return false
	}
	q.songs.Insert(0, song)
	if q.order != nil {
		for i := range q.order {
			q.order[i]++
		}
		q.order = append([]int{0}, q.order...)
	}
	return true
}

// RemoveAt removes the song at an effective position and returns it.
func (q *Queue) RemoveAt(index int) (catalog.Song, bool) {
	ci, ok := q.canonical(index)
	if !ok {
		return catalog.Song{}, false
	}
	removed := *q.songs.Song(ci)
	q.songs.Remove(ci)
	if q.order != nil {
		q.order = append(q.order[:index], q.order[index+1:]...)
		for i, c := range q.order {
			if c > ci {
				q.order[i] = c - 1
			}
		}
	}
	return removed, true
}

// Move moves the song at effective position from to position to. While
// shuffled only the shuffle order changes; the canonical order is kept.
func (q *Queue) Move(from, to int) bool {
	if q.order != nil {
		return moveItem(q.order, from, to)
	}
	return q.songs.Move(from, to)
}

// Shuffle activates a fresh random permutation (Fisher-Yates).
func (q *Queue) Shuffle(rng Rand) {
	n := q.songs.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	q.order = order
}

// Unshuffle drops the permutation; playback order returns to insertion order.
func (q *Queue) Unshuffle() {
	q.order = nil
}

// Replace swaps the queue contents for songs, dropping duplicate IDs.
// The shuffle permutation is dropped.
func (q *Queue) Replace(songs []catalog.Song) {
	q.songs.Clear()
	q.order = nil
	for _, s := range songs {
		if !q.Contains(s.ID) {
			q.songs.Add(s)
		}
	}
}

// Restore rebuilds the queue from persisted views. Shuffled songs that are
// missing from original are appended to the canonical order, and canonical
// songs missing from shuffled are appended to the shuffle order, so both
// views always cover the same set. An empty shuffled view restores the
// identity permutation.
func (q *Queue) Restore(original, shuffled []catalog.Song, shuffle bool) {
	q.Replace(original)
	if !shuffle {
		return
	}
	for _, s := range shuffled {
		q.Append(s)
	}
	seen := make([]bool, q.songs.Len())
	order := make([]int, 0, q.songs.Len())
	for _, s := range shuffled {
		ci := q.songs.IndexOf(s.ID)
		if ci >= 0 && !seen[ci] {
			seen[ci] = true
			order = append(order, ci)
		}
	}
	for ci, ok := range seen {
		if !ok {
			order = append(order, ci)
		}
	}
	q.order = order
}

// Clear removes all songs and the shuffle permutation.
func (q *Queue) Clear() {
	q.songs.Clear()
	q.order = nil
}

func (q *Queue) canonical(index int) (int, bool) {
	if index < 0 || index >= q.songs.Len() {
		return 0, false
	}
	if q.order != nil {
		return q.order[index], true
	}
	return index, true
}
