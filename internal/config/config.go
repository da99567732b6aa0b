// Package config loads ripple's TOML configuration.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultCatalogURL      = "https://saavn.dev/api"
	DefaultPageSize        = 20
	DefaultTimeoutSeconds  = 10
	DefaultQuality         = "320kbps"
	DefaultStatusInterval  = 250
	maxPageSize            = 100
	minStatusIntervalMilli = 50
)

type Config struct {
	DataDir string `koanf:"data_dir"` // empty means the XDG data dir
	Icons   string `koanf:"icons"`    // "nerd", "unicode", or "none"

	Catalog       CatalogConfig       `koanf:"catalog"`
	Playback      PlaybackConfig      `koanf:"playback"`
	Log           LogConfig           `koanf:"log"`
	Notifications NotificationsConfig `koanf:"notifications"`
	MPRIS         MPRISConfig         `koanf:"mpris"`
}

// CatalogConfig holds the remote song catalog settings.
type CatalogConfig struct {
	BaseURL        string `koanf:"base_url"`
	PageSize       int    `koanf:"page_size"`       // results per page (1-100, default: 20)
	TimeoutSeconds int    `koanf:"timeout_seconds"` // per request (default: 10)
}

// Timeout returns the request timeout as a duration.
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PlaybackConfig holds playback device settings.
type PlaybackConfig struct {
	PreferredQuality string `koanf:"preferred_quality"`  // media link quality, e.g. "160kbps"
	StatusIntervalMs int    `koanf:"status_interval_ms"` // position update period (default: 250)
}

// StatusInterval returns the status period as a duration.
func (c PlaybackConfig) StatusInterval() time.Duration {
	return time.Duration(c.StatusIntervalMs) * time.Millisecond
}

// NotificationsConfig controls "now playing" desktop notifications.
type NotificationsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// MPRISConfig controls the MPRIS D-Bus media player interface.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// IsEnabled reports whether MPRIS is on, defaulting to true.
func (c MPRISConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn" or "error"
	File  string `koanf:"file"`  // empty means the XDG state dir
}

// SlogLevel parses Level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads ~/.config/ripple/config.toml, then ./config.toml.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order; later files win. Missing files
// are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Catalog.BaseURL = strings.TrimSuffix(cfg.Catalog.BaseURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/ripple/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ripple", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetCatalogConfig returns the catalog configuration with defaults applied.
func (c *Config) GetCatalogConfig() CatalogConfig {
	cfg := c.Catalog
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultCatalogURL
	}
	if cfg.PageSize <= 0 || cfg.PageSize > maxPageSize {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return cfg
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback
	if cfg.PreferredQuality == "" {
		cfg.PreferredQuality = DefaultQuality
	}
	if cfg.StatusIntervalMs < minStatusIntervalMilli {
		cfg.StatusIntervalMs = DefaultStatusInterval
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}
