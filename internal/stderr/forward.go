// Package stderr captures output that C code in the audio stack writes
// straight to file descriptor 2, so it cannot corrupt the terminal UI.
package stderr

import (
	"context"
	"log/slog"
)

// Messages receives captured stderr lines. Lines are dropped when it is
// full.
var Messages = make(chan string, 100)

func publish(line string) {
	select {
	case Messages <- line:
	default:
	}
}

// Forward logs every captured line at warn level until ctx is done.
func Forward(ctx context.Context, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case line := <-Messages:
			logger.Warn("captured stderr", "line", line)
		}
	}
}
