// Package state persists the player session as JSON-encoded key/value slots
// in a local SQLite database.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	dbutil "github.com/llehouerou/ripple/internal/db"
)

const (
	appName    = "ripple"
	dbFileName = "ripple.db"
)

// Manager stores player slots in SQLite.
type Manager struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for slot decode failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// DefaultPath returns the database location under dataDir, or under the XDG
// data directory when dataDir is empty.
func DefaultPath(dataDir string) (string, error) {
	if dataDir != "" {
		return filepath.Join(dataDir, dbFileName), nil
	}
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (creating if needed) the database at path.
func Open(path string, opts ...Option) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}

	m, err := New(db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// New wraps an already open database, initializing the schema.
func New(db *sql.DB, opts ...Option) (*Manager, error) {
	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	m := &Manager{db: db, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// Save writes one slot.
func (m *Manager) Save(key string, value []byte) error {
	return saveSlot(context.Background(), m.db, key, value, m.now())
}

// Load reads one slot. ok is false when the slot was never written.
func (m *Manager) Load(key string) (value []byte, ok bool, err error) {
	var text string
	err = m.db.QueryRow(`SELECT value FROM player_state WHERE key = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(text), true, nil
}

// SavePlayerState writes every slot in a single transaction.
func (m *Manager) SavePlayerState(ps PlayerState) error {
	slots, err := encodePlayerState(ps)
	if err != nil {
		return err
	}
	now := m.now()
	return dbutil.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		for _, s := range slots {
			if err := saveSlot(context.Background(), tx, s.key, s.value, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadPlayerState reads every slot. Missing, unreadable or corrupt slots
// keep their default value; failures are logged.
func (m *Manager) LoadPlayerState() PlayerState {
	return decodePlayerState(m.Load, m.logger)
}

// Entry is one stored slot with its last write time.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Entries returns every stored slot ordered by key.
func (m *Manager) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT key, value, updated_at FROM player_state ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var updated int64
		if err := rows.Scan(&e.Key, &e.Value, &updated); err != nil {
			return nil, err
		}
		e.UpdatedAt = time.Unix(updated, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveSlot(ctx context.Context, db execer, key string, value []byte, now time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO player_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(value), now.Unix())
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
