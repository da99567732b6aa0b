package state

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/playlist"
)

// Slot keys.
const (
	KeyQueue         = "queue"
	KeyOriginalQueue = "originalQueue"
	KeyShuffledQueue = "shuffledQueue"
	KeyCurrentSong   = "currentSong"
	KeyShuffle       = "shuffle"
	KeyRepeat        = "repeat"
	KeyVolume        = "volume"
)

// Keys lists every slot in write order.
var Keys = []string{
	KeyQueue,
	KeyOriginalQueue,
	KeyShuffledQueue,
	KeyCurrentSong,
	KeyShuffle,
	KeyRepeat,
	KeyVolume,
}

// PlayerState is the persisted part of a player session.
type PlayerState struct {
	Queue         []catalog.Song // effective playback order
	OriginalQueue []catalog.Song
	ShuffledQueue []catalog.Song // empty when shuffle is off
	CurrentSong   *catalog.Song
	Shuffle       bool
	Repeat        playlist.RepeatMode
	Volume        float64
}

// DefaultPlayerState is the state of a fresh install.
func DefaultPlayerState() PlayerState {
	return PlayerState{Repeat: playlist.RepeatOff, Volume: 1}
}

// Equal reports whether two states would persist identically. Songs are
// compared by ID.
func (ps PlayerState) Equal(other PlayerState) bool {
	if ps.Shuffle != other.Shuffle || ps.Repeat != other.Repeat || ps.Volume != other.Volume {
		return false
	}
	if (ps.CurrentSong == nil) != (other.CurrentSong == nil) {
		return false
	}
	if ps.CurrentSong != nil && ps.CurrentSong.ID != other.CurrentSong.ID {
		return false
	}
	return sameIDs(ps.Queue, other.Queue) &&
		sameIDs(ps.OriginalQueue, other.OriginalQueue) &&
		sameIDs(ps.ShuffledQueue, other.ShuffledQueue)
}

func sameIDs(a, b []catalog.Song) bool {
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

type slot struct {
	key   string
	value []byte
}

func encodePlayerState(ps PlayerState) ([]slot, error) {
	values := map[string]any{
		KeyQueue:         nonNil(ps.Queue),
		KeyOriginalQueue: nonNil(ps.OriginalQueue),
		KeyShuffledQueue: nonNil(ps.ShuffledQueue),
		KeyCurrentSong:   ps.CurrentSong,
		KeyShuffle:       ps.Shuffle,
		KeyRepeat:        ps.Repeat,
		KeyVolume:        ps.Volume,
	}
	slots := make([]slot, 0, len(Keys))
	for _, key := range Keys {
		data, err := json.Marshal(values[key])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		slots = append(slots, slot{key: key, value: data})
	}
	return slots, nil
}

func nonNil(songs []catalog.Song) []catalog.Song {
	if songs == nil {
		return []catalog.Song{}
	}
	return songs
}

type loadFunc func(key string) ([]byte, bool, error)

func decodePlayerState(load loadFunc, logger *slog.Logger) PlayerState {
	ps := DefaultPlayerState()
	decoders := map[string]func([]byte) error{
		KeyQueue:         func(d []byte) error { return decodeInto(d, &ps.Queue) },
		KeyOriginalQueue: func(d []byte) error { return decodeInto(d, &ps.OriginalQueue) },
		KeyShuffledQueue: func(d []byte) error { return decodeInto(d, &ps.ShuffledQueue) },
		KeyCurrentSong:   func(d []byte) error { return decodeInto(d, &ps.CurrentSong) },
		KeyShuffle:       func(d []byte) error { return decodeInto(d, &ps.Shuffle) },
		KeyRepeat:        func(d []byte) error { return decodeInto(d, &ps.Repeat) },
		KeyVolume:        func(d []byte) error { return decodeInto(d, &ps.Volume) },
	}
	for _, key := range Keys {
		data, ok, err := load(key)
		if err != nil {
			logger.Warn("load player state slot", "key", key, "err", err)
			continue
		}
		if !ok {
			continue
		}
		if err := decoders[key](data); err != nil {
			logger.Warn("decode player state slot", "key", key, "err", err)
		}
	}
	return ps
}

// decodeInto decodes into a scratch value first so a corrupt slot leaves
// the default in place.
func decodeInto[T any](data []byte, dst *T) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}
