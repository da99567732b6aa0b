// Package catalog holds the song model shared by the queue logic and the
// remote catalog search client.
package catalog

import (
	"encoding/json"
	"errors"
	"math"
	"time"
)

// ErrNoMediaLink is returned when a song carries no playable link.
var ErrNoMediaLink = errors.New("no playable media link")

// DefaultQuality is the preferred bitrate when none is configured.
const DefaultQuality = "320kbps"

// MediaLink is a playable URL tagged with its quality (e.g. "160kbps").
type MediaLink struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// Song is an immutable catalog item. Two songs are the same song when their
// IDs match; see Same.
type Song struct {
	ID       string
	Name     string
	Duration time.Duration
	Artist   string
	Album    string
	ImageURL string
	Links    []MediaLink
	URL      string // raw media fallback link
}

// Same reports whether s and other identify the same catalog item.
func (s Song) Same(other Song) bool {
	return s.ID == other.ID
}

// songJSON is the wire and storage form of Song. Durations travel as seconds.
type songJSON struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Duration float64     `json:"duration"`
	Artist   string      `json:"artist,omitempty"`
	Album    string      `json:"album,omitempty"`
	ImageURL string      `json:"image,omitempty"`
	Links    []MediaLink `json:"downloadUrl,omitempty"`
	URL      string      `json:"url,omitempty"`
}

// MarshalJSON encodes the song with its duration in seconds.
func (s Song) MarshalJSON() ([]byte, error) {
	return json.Marshal(songJSON{
		ID:       s.ID,
		Name:     s.Name,
		Duration: s.Duration.Seconds(),
		Artist:   s.Artist,
		Album:    s.Album,
		ImageURL: s.ImageURL,
		Links:    s.Links,
		URL:      s.URL,
	})
}

// UnmarshalJSON decodes a song. Negative or NaN durations become zero and
// durations too large for time.Duration saturate.
func (s *Song) UnmarshalJSON(data []byte) error {
	var raw songJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var d time.Duration
	if raw.Duration > 0 && !math.IsNaN(raw.Duration) {
		nanos := raw.Duration * float64(time.Second)
		if nanos >= math.MaxInt64 {
			d = math.MaxInt64
		} else {
			d = time.Duration(nanos)
		}
	}
	*s = Song{
		ID:       raw.ID,
		Name:     raw.Name,
		Duration: d,
		Artist:   raw.Artist,
		Album:    raw.Album,
		ImageURL: raw.ImageURL,
		Links:    raw.Links,
		URL:      raw.URL,
	}
	return nil
}

// MediaURL resolves the URL to play for a song. The preferred quality wins,
// then the first link with a URL, then the raw fallback link.
func MediaURL(s Song, preferred string) (string, error) {
	if preferred == "" {
		preferred = DefaultQuality
	}
	for _, l := range s.Links {
		if l.Quality == preferred && l.URL != "" {
			return l.URL, nil
		}
	}
	for _, l := range s.Links {
		if l.URL != "" {
			return l.URL, nil
		}
	}
	if s.URL != "" {
		return s.URL, nil
	}
	return "", ErrNoMediaLink
}

// IndexOf returns the position of the song with the given ID, or -1.
func IndexOf(songs []Song, id string) int {
	for i := range songs {
		if songs[i].ID == id {
			return i
		}
	}
	return -1
}
