package state

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/playlist"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(setupTestDB(t), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func testSong(id string) catalog.Song {
	return catalog.Song{
		ID:       id,
		Name:     "Song " + id,
		Duration: 215 * time.Second,
		Artist:   "Artist",
		Links:    []catalog.MediaLink{{Quality: "320kbps", URL: "https://cdn.example/" + id + ".mp3"}},
	}
}

func TestLoad_Missing(t *testing.T) {
	m := newTestManager(t)

	value, ok, err := m.Load(KeyVolume)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok || value != nil {
		t.Errorf("Load() = %q, %v, want nil, false", value, ok)
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := newTestManager(t)

	if err := m.Save(KeyVolume, []byte("0.5")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := m.Save(KeyVolume, []byte("0.25")); err != nil {
		t.Fatalf("Save (update) failed: %v", err)
	}

	value, ok, err := m.Load(KeyVolume)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok || string(value) != "0.25" {
		t.Errorf("Load() = %q, %v, want 0.25, true", value, ok)
	}
}

func TestLoadPlayerState_Empty(t *testing.T) {
	m := newTestManager(t)

	ps := m.LoadPlayerState()

	assert.Equal(t, DefaultPlayerState(), ps)
}

func TestSaveAndLoadPlayerState(t *testing.T) {
	m := newTestManager(t)

	current := testSong("b")
	saved := PlayerState{
		Queue:         []catalog.Song{testSong("c"), testSong("a"), testSong("b")},
		OriginalQueue: []catalog.Song{testSong("a"), testSong("b"), testSong("c")},
		ShuffledQueue: []catalog.Song{testSong("c"), testSong("a"), testSong("b")},
		CurrentSong:   &current,
		Shuffle:       true,
		Repeat:        playlist.RepeatAll,
		Volume:        0.4,
	}

	require.NoError(t, m.SavePlayerState(saved))

	loaded := m.LoadPlayerState()

	assert.Equal(t, saved, loaded)
	assert.True(t, saved.Equal(loaded))
}

func TestSavePlayerState_SlotEncoding(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.SavePlayerState(PlayerState{Repeat: playlist.RepeatOne, Volume: 1}))

	tests := []struct {
		key  string
		want string
	}{
		{KeyQueue, "[]"},
		{KeyShuffledQueue, "[]"},
		{KeyCurrentSong, "null"},
		{KeyShuffle, "false"},
		{KeyRepeat, `"one"`},
		{KeyVolume, "1"},
	}
	for _, tt := range tests {
		value, ok, err := m.Load(tt.key)
		require.NoError(t, err)
		require.True(t, ok, "slot %s missing", tt.key)
		if string(value) != tt.want {
			t.Errorf("slot %s = %s, want %s", tt.key, value, tt.want)
		}
	}
}

func TestLoadPlayerState_CorruptSlotsKeepDefaults(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Save(KeyQueue, []byte(`[{"id":"a","name":"A","duration":10}]`)))
	require.NoError(t, m.Save(KeyVolume, []byte(`"loud"`)))
	require.NoError(t, m.Save(KeyRepeat, []byte(`"sometimes"`)))
	require.NoError(t, m.Save(KeyCurrentSong, []byte(`{not json`)))
	require.NoError(t, m.Save(KeyShuffle, []byte(`true`)))

	ps := m.LoadPlayerState()

	require.Len(t, ps.Queue, 1)
	assert.Equal(t, "a", ps.Queue[0].ID)
	assert.Equal(t, 10*time.Second, ps.Queue[0].Duration)
	assert.InDelta(t, 1.0, ps.Volume, 0)
	assert.Equal(t, playlist.RepeatOff, ps.Repeat)
	assert.Nil(t, ps.CurrentSong)
	assert.True(t, ps.Shuffle)
}

func TestPlayerState_Equal(t *testing.T) {
	a := testSong("a")
	base := PlayerState{Queue: []catalog.Song{a}, OriginalQueue: []catalog.Song{a}, CurrentSong: &a, Volume: 1}

	renamed := a
	renamed.Name = "other name"
	same := PlayerState{Queue: []catalog.Song{renamed}, OriginalQueue: []catalog.Song{a}, CurrentSong: &renamed, Volume: 1}
	if !base.Equal(same) {
		t.Error("states with the same IDs should be equal")
	}

	changes := map[string]PlayerState{
		"volume":  {Queue: base.Queue, OriginalQueue: base.OriginalQueue, CurrentSong: &a, Volume: 0.5},
		"current": {Queue: base.Queue, OriginalQueue: base.OriginalQueue, Volume: 1},
		"queue":   {OriginalQueue: base.OriginalQueue, CurrentSong: &a, Volume: 1},
		"repeat":  {Queue: base.Queue, OriginalQueue: base.OriginalQueue, CurrentSong: &a, Volume: 1, Repeat: playlist.RepeatAll},
	}
	for name, other := range changes {
		if base.Equal(other) {
			t.Errorf("states differing in %s should not be equal", name)
		}
	}
}

func TestManager_Entries(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Unix(1700000000, 0) }

	require.NoError(t, m.Save(KeyVolume, []byte("0.5")))
	require.NoError(t, m.Save(KeyShuffle, []byte("true")))

	entries, err := m.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KeyShuffle, entries[0].Key)
	assert.Equal(t, KeyVolume, entries[1].Key)
	assert.Equal(t, "0.5", entries[1].Value)
	assert.Equal(t, int64(1700000000), entries[1].UpdatedAt.Unix())
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", dbFileName)

	m, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, m.SavePlayerState(PlayerState{Shuffle: true, Volume: 0.3}))
	require.NoError(t, m.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	ps := reopened.LoadPlayerState()
	assert.True(t, ps.Shuffle)
	assert.InDelta(t, 0.3, ps.Volume, 1e-9)
}

func TestDefaultPath_DataDir(t *testing.T) {
	got, err := DefaultPath("/tmp/ripple-data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/ripple-data", dbFileName), got)
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := initSchema(db); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}

	var version int
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestMock_RoundTrip(t *testing.T) {
	m := NewMock()
	a := testSong("a")

	require.NoError(t, m.SavePlayerState(PlayerState{
		Queue:         []catalog.Song{a},
		OriginalQueue: []catalog.Song{a},
		CurrentSong:   &a,
		Repeat:        playlist.RepeatOne,
		Volume:        0.7,
	}))

	ps := m.LoadPlayerState()
	require.NotNil(t, ps.CurrentSong)
	assert.Equal(t, "a", ps.CurrentSong.ID)
	assert.Equal(t, playlist.RepeatOne, ps.Repeat)
	assert.Equal(t, 1, m.SaveCount())
}

func TestMock_Failures(t *testing.T) {
	m := NewMock()
	m.SetRaw(KeyVolume, "0.2")

	m.FailLoads(errors.New("disk gone"))
	assert.Equal(t, DefaultPlayerState(), m.LoadPlayerState())

	m.FailLoads(nil)
	assert.InDelta(t, 0.2, m.LoadPlayerState().Volume, 1e-9)

	saveErr := errors.New("read-only")
	m.FailSaves(saveErr)
	assert.ErrorIs(t, m.SavePlayerState(DefaultPlayerState()), saveErr)
	assert.Equal(t, 0, m.SaveCount())
	assert.Equal(t, "0.2", m.Raw(KeyVolume))
}
