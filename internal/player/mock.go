// internal/player/mock.go
package player

import (
	"context"
	"sync"
)

// Mock operation names, as recorded in Call.Op.
const (
	OpLoad   = "load"
	OpPlay   = "play"
	OpPause  = "pause"
	OpStop   = "stop"
	OpSeek   = "seek"
	OpVolume = "volume"
)

// Call is one recorded device command.
type Call struct {
	Op       string
	URL      string
	Position int64
	Volume   float64
}

// Mock is a test double for BeepDevice.
type Mock struct {
	mu       sync.Mutex
	state    State
	url      string
	position int64
	duration int64
	volume   float64
	errs     map[string]error
	calls    []Call
	statuses chan Status
	closed   bool
}

// NewMock creates a new mock device for testing.
func NewMock() *Mock {
	return &Mock{
		state:    Stopped,
		volume:   1,
		errs:     make(map[string]error),
		statuses: make(chan Status, 64),
	}
}

func (m *Mock) LoadAndPlay(_ context.Context, url string, volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: OpLoad, URL: url, Volume: volume})
	if err := m.errs[OpLoad]; err != nil {
		m.state = Stopped
		return err
	}
	m.url = url
	m.volume = clampLevel(volume)
	m.position = 0
	m.state = Playing
	return nil
}

func (m *Mock) Play(_ context.Context) error {
	return m.transport(Call{Op: OpPlay}, func() { m.state = Playing })
}

func (m *Mock) Pause(_ context.Context) error {
	return m.transport(Call{Op: OpPause}, func() { m.state = Paused })
}

func (m *Mock) Seek(_ context.Context, positionMillis int64) error {
	return m.transport(Call{Op: OpSeek, Position: positionMillis}, func() { m.position = positionMillis })
}

// transport records c and applies fn when media is loaded.
func (m *Mock) transport(c Call, fn func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
	if err := m.errs[c.Op]; err != nil {
		return err
	}
	if !m.state.IsActive() {
		return ErrNotLoaded
	}
	fn()
	return nil
}

func (m *Mock) Stop(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: OpStop})
	if err := m.errs[OpStop]; err != nil {
		return err
	}
	m.state = Stopped
	m.url = ""
	m.position = 0
	return nil
}

func (m *Mock) SetVolume(_ context.Context, volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: OpVolume, Volume: volume})
	if err := m.errs[OpVolume]; err != nil {
		return err
	}
	m.volume = clampLevel(volume)
	return nil
}

func (m *Mock) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		IsLoaded:       m.state.IsActive(),
		IsPlaying:      m.state == Playing,
		PositionMillis: m.position,
		DurationMillis: m.duration,
	}
}

func (m *Mock) Statuses() <-chan Status {
	return m.statuses
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// State returns the transport state.
func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SetState forces the transport state.
func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// SetError makes every following op command fail with err (nil clears it).
func (m *Mock) SetError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

// SetDuration sets the duration reported by Status.
func (m *Mock) SetDuration(millis int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = millis
}

// URL returns the last loaded URL.
func (m *Mock) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}

// VolumeLevel returns the applied volume.
func (m *Mock) VolumeLevel() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Calls returns every recorded command in order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsOf returns the recorded commands named op.
func (m *Mock) CallsOf(op string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []Call
	for _, c := range m.calls {
		if c.Op == op {
			result = append(result, c)
		}
	}
	return result
}

// ResetCalls forgets the recorded commands.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Emit pushes a status onto the Statuses stream.
func (m *Mock) Emit(st Status) {
	m.statuses <- st
}

// SimulateFinished emits the status a device reports when media ends.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	if m.state == Playing {
		m.state = Paused
	}
	m.position = m.duration
	st := Status{
		IsLoaded:       m.state.IsActive(),
		PositionMillis: m.position,
		DurationMillis: m.duration,
		DidJustFinish:  true,
	}
	m.mu.Unlock()
	m.statuses <- st
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify implementations satisfy Device at compile time.
var (
	_ Device = (*Mock)(nil)
	_ Device = (*BeepDevice)(nil)
)
