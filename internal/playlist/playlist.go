package playlist

import "github.com/llehouerou/ripple/internal/catalog"

// Playlist holds an ordered collection of songs.
type Playlist struct {
	songs []catalog.Song
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		songs: make([]catalog.Song, 0),
	}
}

// Add appends songs to the playlist.
func (p *Playlist) Add(songs ...catalog.Song) {
	p.songs = append(p.songs, songs...)
}

// Insert places a song at index, shifting later songs back.
// Returns false if index is out of bounds (index == Len() appends).
func (p *Playlist) Insert(index int, song catalog.Song) bool {
	if index < 0 || index > len(p.songs) {
		return false
	}
	p.songs = append(p.songs, catalog.Song{})
	copy(p.songs[index+1:], p.songs[index:])
	p.songs[index] = song
	return true
}

// Remove removes the song at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.songs) {
		return false
	}
	p.songs = append(p.songs[:index], p.songs[index+1:]...)
	return true
}

// Clear removes all songs from the playlist.
func (p *Playlist) Clear() {
	p.songs = p.songs[:0]
}

// Songs returns a copy of all songs.
func (p *Playlist) Songs() []catalog.Song {
	result := make([]catalog.Song, len(p.songs))
	copy(result, p.songs)
	return result
}

// Song returns the song at the given index, or nil if out of bounds.
func (p *Playlist) Song(index int) *catalog.Song {
	if index < 0 || index >= len(p.songs) {
		return nil
	}
	return &p.songs[index]
}

// IndexOf returns the index of the song with the given ID, or -1.
func (p *Playlist) IndexOf(id string) int {
	return catalog.IndexOf(p.songs, id)
}

// Len returns the number of songs.
func (p *Playlist) Len() int {
	return len(p.songs)
}

// Move moves the song at fromIndex to toIndex.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	return moveItem(p.songs, fromIndex, toIndex)
}

// moveItem shifts items[from] to position to, in place.
func moveItem[T any](items []T, from, to int) bool {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return false
	}
	if from == to {
		return true
	}
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
	return true
}
