//go:build linux

package mpris

import (
	"log/slog"

	"github.com/quarckster/go-mpris-server/pkg/server"

	"github.com/llehouerou/ripple/internal/session"
)

// Adapter serves the store on the session bus.
type Adapter struct {
	server *server.Server
}

// New starts serving store over MPRIS. Listen failures, such as a missing
// session bus, are logged and leave media keys unavailable.
func New(store *session.Store, logger *slog.Logger) *Adapter {
	a := &Adapter{
		server: server.NewServer(identity, &rootAdapter{}, &playerAdapter{store: store}),
	}
	go func() {
		if err := a.server.Listen(); err != nil {
			logger.Warn("mpris unavailable", "error", err)
		}
	}()
	return a
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}
