package playlist

import (
	"fmt"

	"github.com/llehouerou/ripple/internal/catalog"
)

// RepeatMode defines the repeat behavior.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the persisted name of the mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in the off -> all -> one cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// ParseRepeatMode parses a persisted mode name.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch s {
	case "off":
		return RepeatOff, nil
	case "all":
		return RepeatAll, nil
	case "one":
		return RepeatOne, nil
	default:
		return RepeatOff, fmt.Errorf("unknown repeat mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m RepeatMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RepeatMode) UnmarshalText(text []byte) error {
	mode, err := ParseRepeatMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// EffectiveQueue picks the playback order out of persisted views: shuffled
// when shuffle is on and it is non-empty, else original when non-empty,
// else queue. Shuffle may be on before a shuffled view was ever built.
func EffectiveQueue(queue, original, shuffled []catalog.Song, shuffle bool) []catalog.Song {
	if shuffle && len(shuffled) > 0 {
		return shuffled
	}
	if len(original) > 0 {
		return original
	}
	return queue
}

// NextIndex computes the position to play after current in a queue of n
// songs. ok is false when playback should stop.
func NextIndex(current, n int, shuffle bool, repeat RepeatMode, rng Rand) (next int, ok bool) {
	if n == 0 {
		return 0, false
	}
	if repeat == RepeatOne {
		return current, true
	}
	atEnd := current >= n-1
	if atEnd {
		if repeat != RepeatAll {
			return 0, false
		}
		if shuffle {
			return rng.IntN(n), true
		}
		return 0, true
	}
	if shuffle {
		return randomExcluding(current, n, rng), true
	}
	return current + 1, true
}

// PreviousIndex computes the position to go back to from current.
// While shuffled the most recent history entry wins when it is still
// queued; otherwise a random other position is chosen.
func PreviousIndex(current int, queue []catalog.Song, shuffle bool, repeat RepeatMode, history *History, rng Rand) (prev int, ok bool) {
	n := len(queue)
	if n == 0 {
		return 0, false
	}
	if shuffle {
		if last, found := history.Last(); found {
			if i := catalog.IndexOf(queue, last.ID); i >= 0 {
				return i, true
			}
		}
		return randomExcluding(current, n, rng), true
	}
	if current > 0 {
		return current - 1, true
	}
	if repeat == RepeatAll {
		return n - 1, true
	}
	return 0, false
}

// randomExcluding draws uniformly from [0, n), resampling while the draw
// equals current. With a single song the repeat is unavoidable.
func randomExcluding(current, n int, rng Rand) int {
	i := rng.IntN(n)
	if n == 1 {
		return i
	}
	for i == current {
		i = rng.IntN(n)
	}
	return i
}
