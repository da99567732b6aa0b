package playlist

import "github.com/llehouerou/ripple/internal/catalog"

// DefaultHistorySize is the number of previously played songs kept.
const DefaultHistorySize = 50

// History is a bounded recency list of previously current songs, consulted
// by shuffled back navigation. The oldest entries are dropped first.
type History struct {
	songs   []catalog.Song
	maxSize int
}

// NewHistory creates a history holding at most maxSize songs.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultHistorySize
	}
	return &History{
		songs:   make([]catalog.Song, 0, maxSize),
		maxSize: maxSize,
	}
}

// Push records a song as most recent and trims to the capacity.
func (h *History) Push(song catalog.Song) {
	h.songs = append(h.songs, song)
	if len(h.songs) > h.maxSize {
		excess := len(h.songs) - h.maxSize
		h.songs = append(h.songs[:0], h.songs[excess:]...)
	}
}

// Last returns the most recent entry.
func (h *History) Last() (catalog.Song, bool) {
	if h == nil || len(h.songs) == 0 {
		return catalog.Song{}, false
	}
	return h.songs[len(h.songs)-1], true
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (catalog.Song, bool) {
	last, ok := h.Last()
	if !ok {
		return catalog.Song{}, false
	}
	h.songs = h.songs[:len(h.songs)-1]
	return last, true
}

// Len returns the number of entries.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.songs)
}

// Songs returns a copy of the entries, oldest first.
func (h *History) Songs() []catalog.Song {
	result := make([]catalog.Song, h.Len())
	if h != nil {
		copy(result, h.songs)
	}
	return result
}

// Clear drops every entry.
func (h *History) Clear() {
	h.songs = h.songs[:0]
}
