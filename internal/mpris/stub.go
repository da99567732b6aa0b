//go:build !linux

package mpris

import (
	"log/slog"

	"github.com/llehouerou/ripple/internal/session"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ *session.Store, _ *slog.Logger) *Adapter {
	return &Adapter{}
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
