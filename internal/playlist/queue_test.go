package playlist

import (
	"math/rand/v2"
	"testing"

	"github.com/llehouerou/ripple/internal/catalog"
)

// scriptedRand returns the scripted values in order, then zeros.
type scriptedRand struct {
	values []int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func sameSet(a, b []catalog.Song) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s.ID]++
	}
	for _, s := range b {
		seen[s.ID]--
		if seen[s.ID] < 0 {
			return false
		}
	}
	return true
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if !q.IsEmpty() {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.IsShuffled() {
		t.Error("new queue should not be shuffled")
	}
	if q.Shuffled() != nil {
		t.Error("Shuffled() should be nil when not shuffled")
	}
	if q.At(0) != nil {
		t.Error("At(0) should be nil for empty queue")
	}
}

func TestQueue_Append_RejectsDuplicateIDs(t *testing.T) {
	q := NewQueue()

	if !q.Append(catalog.Song{ID: "a"}) {
		t.Fatal("first Append should succeed")
	}
	if q.Append(catalog.Song{ID: "a", Name: "again"}) {
		t.Error("second Append of same ID should be rejected")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestQueue_Prepend(t *testing.T) {
	q := NewQueue()
	q.Replace(songs("a", "b"))

	if !q.Prepend(catalog.Song{ID: "z"}) {
		t.Fatal("Prepend should succeed")
	}
	if q.Prepend(catalog.Song{ID: "a"}) {
		t.Error("Prepend of queued ID should be rejected")
	}
	if !equalIDs(q.Effective(), "z", "a", "b") {
		t.Errorf("Effective() = %v, want [z a b]", ids(q.Effective()))
	}
}

func TestQueue_Prepend_WhileShuffled(t *testing.T) {
	q := NewQueue()
	q.Replace(songs("a", "b", "c"))
	q.Shuffle(newRand())
	before := ids(q.Effective())

	q.Prepend(catalog.Song{ID: "z"})

	eff := q.Effective()
	if eff[0].ID != "z" {
		t.Errorf("Effective()[0] = %q, want z", eff[0].ID)
	}
	if !equalIDs(eff[1:], before...) {
		t.Errorf("Effective()[1:] = %v, want %v", ids(eff[1:]), before)
	}
	if q.Original()[0].ID != "z" {
		t.Errorf("Original()[0] = %q, want z", q.Original()[0].ID)
	}
}

func TestQueue_Shuffle_IsPermutation(t *testing.T) {
	q := NewQueue()
	q.Replace(songs("a", "b", "c", "d", "e", "f"))

	q.Shuffle(newRand())

	if !q.IsShuffled() {
		t.Fatal("IsShuffled() = false after Shuffle")
	}
	if !sameSet(q.Shuffled(), q.Original()) {
		t.Errorf("Shuffled() = %v is not a permutation of %v", ids(q.Shuffled()), ids(q.Original()))
	}
	if !equalIDs(q.Original(), "a", "b", "c", "d", "e", "f") {
		t.Errorf("Original() changed by Shuffle: %v", ids(q.Original()))
	}
	if !equalIDs(q.Effective(), ids(q.Shuffled())...) {
		t.Error("Effective() should follow Shuffled() while shuffled")
	}

	q.Unshuffle()

	if !equalIDs(q.Effective(), "a", "b", "c", "d", "e", "f") {
		t.Errorf("Effective() after Unshuffle = %v", ids(q.Effective()))
	}
}

func TestQueue_Shuffle_Deterministic(t *testing.T) {
	q := NewQueue()
	q.Replace(songs("a", "b", "c"))

	// i=2 swaps with 0, i=1 swaps with 1: [c b a]
	q.Shuffle(&scriptedRand{values: []int{0, 1}})

	if !equalIDs(q.Effective(), "c", "b", "a") {
		t.Errorf("Effective() = %v, want [c b a]", ids(q.Effective()))
	}
}

func TestQueue_IndexOf(t *testing.T) {
	q := NewQueue()
	q.Replace(songs("a", "b", "c"))
	q.Shuffle(&scriptedRand{values: []int{0, 1}}) // [c b a]

	if got := q.IndexOf("a"); got != 2 {
		t.Errorf("IndexOf(a) = %d, want 2", got)
	}
	if got := q.IndexOf("missing"); got != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", got)
	}
	if s := q.At(0); s == nil || s.ID != "c" {
		t.Errorf("At(0) = %v, want c", s)
	}
}

func TestQueue_RemoveAt(t *testing.T) {
	t.Run("unshuffled", func(t *testing.T) {
		q := NewQueue()
		q.Replace(songs("a", "b", "c"))

		removed, ok := q.RemoveAt(1)

		if !ok || removed.ID != "b" {
			t.Errorf("RemoveAt(1) = %v, %v, want b, true", removed.ID, ok)
		}
		if !equalIDs(q.Effective(), "a", "c") {
			t.Errorf("Effective() = %v, want [a c]", ids(q.Effective()))
		}
	})

	t.Run("shuffled removes from both views", func(t *testing.T) {
		q := NewQueue()
		q.Replace(songs("a", "b", "c", "d"))
		q.Shuffle(&scriptedRand{values: []int{0, 0, 0}}) // [b c d a]

		removed, ok := q.RemoveAt(1)

		if !ok || removed.ID != "c" {
			t.Errorf("RemoveAt(1) = %v, %v, want c, true", removed.ID, ok)
		}
		if !equalIDs(q.Effective(), "b", "d", "a") {
			t.Errorf("Effective() = %v, want [b d a]", ids(q.Effective()))
		}
		if !equalIDs(q.Original(), "a", "b", "d") {
			t.Errorf("Original() = %v, want [a b d]", ids(q.Original()))
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		q := NewQueue()
		q.Replace(songs("a"))

		if _, ok := q.RemoveAt(1); ok {
			t.Error("RemoveAt(1) should fail")
		}
		if _, ok := q.RemoveAt(-1); ok {
			t.Error("RemoveAt(-1) should fail")
		}
	})
}

func TestQueue_Move(t *testing.T) {
	t.Run("unshuffled moves canonical order", func(t *testing.T) {
		q := NewQueue()
		q.Replace(songs("a", "b", "c"))

		if !q.Move(0, 2) {
			t.Fatal("Move(0, 2) should succeed")
		}
		if !equalIDs(q.Original(), "b", "c", "a") {
			t.Errorf("Original() = %v, want [b c a]", ids(q.Original()))
		}
	})

	t.Run("shuffled keeps canonical order", func(t *testing.T) {
		q := NewQueue()
		q.Replace(songs("a", "b", "c"))
		q.Shuffle(&scriptedRand{values: []int{0, 1}}) // [c b a]

		if !q.Move(2, 0) {
			t.Fatal("Move(2, 0) should succeed")
		}
		if !equalIDs(q.Effective(), "a", "c", "b") {
			t.Errorf("Effective() = %v, want [a c b]", ids(q.Effective()))
		}
		if !equalIDs(q.Original(), "a", "b", "c") {
			t.Errorf("Original() = %v, want [a b c]", ids(q.Original()))
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		q := NewQueue()
		q.Replace(songs("a", "b"))
		if q.Move(0, 5) {
			t.Error("Move(0, 5) should fail")
		}
	})
}

func TestQueue_Replace_DropsDuplicates(t *testing.T) {
	q := NewQueue()
	q.Shuffle(newRand())

	q.Replace(songs("a", "b", "a", "c"))

	if q.IsShuffled() {
		t.Error("Replace should drop the shuffle permutation")
	}
	if !equalIDs(q.Effective(), "a", "b", "c") {
		t.Errorf("Effective() = %v, want [a b c]", ids(q.Effective()))
	}
}

func TestQueue_Restore(t *testing.T) {
	tests := []struct {
		name         string
		original     []catalog.Song
		shuffled     []catalog.Song
		shuffle      bool
		wantOriginal []string
		wantEff      []string
	}{
		{
			name:         "unshuffled ignores shuffled view",
			original:     songs("a", "b", "c"),
			shuffled:     songs("c", "a", "b"),
			wantOriginal: []string{"a", "b", "c"},
			wantEff:      []string{"a", "b", "c"},
		},
		{
			name:         "shuffled order restored",
			original:     songs("a", "b", "c"),
			shuffled:     songs("c", "a", "b"),
			shuffle:      true,
			wantOriginal: []string{"a", "b", "c"},
			wantEff:      []string{"c", "a", "b"},
		},
		{
			name:         "empty shuffled view means identity",
			original:     songs("a", "b"),
			shuffle:      true,
			wantOriginal: []string{"a", "b"},
			wantEff:      []string{"a", "b"},
		},
		{
			name:         "drifted views are reconciled",
			original:     songs("a", "b", "c"),
			shuffled:     songs("d", "b"),
			shuffle:      true,
			wantOriginal: []string{"a", "b", "c", "d"},
			wantEff:      []string{"d", "b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.Restore(tt.original, tt.shuffled, tt.shuffle)

			if !equalIDs(q.Original(), tt.wantOriginal...) {
				t.Errorf("Original() = %v, want %v", ids(q.Original()), tt.wantOriginal)
			}
			if !equalIDs(q.Effective(), tt.wantEff...) {
				t.Errorf("Effective() = %v, want %v", ids(q.Effective()), tt.wantEff)
			}
			if q.IsShuffled() != tt.shuffle {
				t.Errorf("IsShuffled() = %v, want %v", q.IsShuffled(), tt.shuffle)
			}
		})
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.Replace(songs("a", "b"))
	q.Shuffle(newRand())

	q.Clear()

	if !q.IsEmpty() {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.IsShuffled() {
		t.Error("Clear should drop the shuffle permutation")
	}
}
