// internal/state/interface.go
package state

// Interface defines the persistence contract for dependency injection and testing.
type Interface interface {
	Save(key string, value []byte) error
	Load(key string) ([]byte, bool, error)
	SavePlayerState(ps PlayerState) error
	LoadPlayerState() PlayerState
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
