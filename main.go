package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/app"
	"github.com/llehouerou/ripple/internal/bridge"
	"github.com/llehouerou/ripple/internal/catalog"
	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/errmsg"
	"github.com/llehouerou/ripple/internal/icons"
	"github.com/llehouerou/ripple/internal/mpris"
	"github.com/llehouerou/ripple/internal/notify"
	"github.com/llehouerou/ripple/internal/player"
	"github.com/llehouerou/ripple/internal/session"
	"github.com/llehouerou/ripple/internal/state"
	"github.com/llehouerou/ripple/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		stderr.WriteOriginal(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, closeLog, err := openLogger(cfg.GetLogConfig())
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Audio backends may print to fd 2 and corrupt the UI.
	if err := stderr.Start(); err != nil {
		logger.Warn("stderr capture unavailable", "error", err)
	}
	defer stderr.Stop()
	go stderr.Forward(ctx, logger)

	dbPath, err := state.DefaultPath(cfg.DataDir)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
	}
	mgr, err := state.Open(dbPath, state.WithLogger(logger))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
	}
	defer mgr.Close()

	store := session.New(mgr, session.WithLogger(logger))
	defer store.Close()

	catalogCfg := cfg.GetCatalogConfig()
	client := catalog.New(catalogCfg.BaseURL,
		catalog.WithPageSize(catalogCfg.PageSize),
		catalog.WithHTTPClient(&http.Client{Timeout: catalogCfg.Timeout()}),
	)

	playbackCfg := cfg.GetPlaybackConfig()
	device := player.NewBeepDevice(
		player.WithStatusInterval(playbackCfg.StatusInterval()),
		player.WithLogger(logger),
	)
	defer device.Close()

	icons.Init(cfg.Icons)
	if cfg.Notifications.Enabled {
		art := notify.NewArtCache(filepath.Join(xdg.CacheHome, "ripple", "art"), &http.Client{Timeout: catalogCfg.Timeout()})
		np := notify.NewNowPlaying(notify.New(), notify.WithArtCache(art), notify.WithLogger(logger))
		go np.Watch(ctx, store)
	}
	if cfg.MPRIS.IsEnabled() {
		media := mpris.New(store, logger)
		defer media.Close()
	}

	model := app.New(ctx, store, client, app.WithPageSize(catalogCfg.PageSize))
	defer model.Close()
	p := tea.NewProgram(model, tea.WithAltScreen())

	br := bridge.New(store, device,
		bridge.WithQuality(playbackCfg.PreferredQuality),
		bridge.WithLogger(logger),
		bridge.WithErrorHandler(func(msg string) { p.Send(app.ErrorMsg{Text: msg}) }),
	)
	go func() {
		if err := br.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("playback bridge stopped", "error", err)
		}
	}()

	logger.Info("ripple started", "catalog", catalogCfg.BaseURL, "db", dbPath)
	_, err = p.Run()
	cancel()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return nil
}

// openLogger writes text logs to the configured file, or to the XDG state
// directory.
func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	path := cfg.File
	if path == "" {
		var err error
		path, err = xdg.StateFile(filepath.Join("ripple", "ripple.log"))
		if err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	return logger, func() { f.Close() }, nil
}
