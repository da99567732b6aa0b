// internal/state/mock.go
package state

import (
	"log/slog"
	"sync"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu        sync.Mutex
	slots     map[string][]byte
	saveErr   error
	loadErr   error
	saveCount int
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{slots: make(map[string][]byte)}
}

func (m *Mock) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *Mock) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	v, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Mock) SavePlayerState(ps PlayerState) error {
	slots, err := encodePlayerState(ps)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, s := range slots {
		m.slots[s.key] = s.value
	}
	m.saveCount++
	return nil
}

func (m *Mock) LoadPlayerState() PlayerState {
	return decodePlayerState(m.Load, slog.Default())
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// FailSaves makes every following save return err (nil restores success).
func (m *Mock) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// FailLoads makes every following load return err (nil restores success).
func (m *Mock) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// SetRaw stores a raw slot value, bypassing encoding.
func (m *Mock) SetRaw(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = []byte(value)
}

// Raw returns the stored slot value.
func (m *Mock) Raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.slots[key])
}

// SaveCount returns the number of successful SavePlayerState calls.
func (m *Mock) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCount
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
