package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/music/library/albums",
			expected: filepath.Join(home, "music", "library", "albums"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/music",
			expected: "/usr/local/music",
		},
		{
			name:     "relative path unchanged",
			input:    "music/albums",
			expected: "music/albums",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
		{
			name:     "tilde with slash",
			input:    "~/",
			expected: filepath.Join(home, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "ripple", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}
	return path
}

func TestLoadFrom_Missing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.DataDir != "" || cfg.Catalog.BaseURL != "" {
		t.Errorf("LoadFrom() = %+v, want zero config", cfg)
	}
}

func TestLoadFrom_BasicConfig(t *testing.T) {
	path := writeConfig(t, `
data_dir = "~/ripple-data"

[catalog]
base_url = "https://catalog.example/api/"
page_size = 30

[playback]
preferred_quality = "160kbps"
status_interval_ms = 500

[log]
level = "debug"
file = "/tmp/ripple.log"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "ripple-data"); cfg.DataDir != want {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, want)
	}
	if cfg.Catalog.BaseURL != "https://catalog.example/api" {
		t.Errorf("Catalog.BaseURL = %q, want trailing slash removed", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.PageSize != 30 {
		t.Errorf("Catalog.PageSize = %d, want 30", cfg.Catalog.PageSize)
	}
	if cfg.Playback.PreferredQuality != "160kbps" {
		t.Errorf("Playback.PreferredQuality = %q, want %q", cfg.Playback.PreferredQuality, "160kbps")
	}
	if got := cfg.GetPlaybackConfig().StatusInterval(); got != 500*time.Millisecond {
		t.Errorf("StatusInterval() = %v, want 500ms", got)
	}
	if got := cfg.Log.SlogLevel(); got != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want %v", got, slog.LevelDebug)
	}
	if cfg.Log.File != "/tmp/ripple.log" {
		t.Errorf("Log.File = %q, want %q", cfg.Log.File, "/tmp/ripple.log")
	}
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	global := writeConfig(t, `
[catalog]
base_url = "https://global.example"
page_size = 10
`)
	local := writeConfig(t, `
[catalog]
page_size = 50
`)

	cfg, err := LoadFrom(global, local)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Catalog.BaseURL != "https://global.example" {
		t.Errorf("Catalog.BaseURL = %q, want value kept from first file", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.PageSize != 50 {
		t.Errorf("Catalog.PageSize = %d, want 50", cfg.Catalog.PageSize)
	}
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	path := writeConfig(t, "invalid = [[[")

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() expected error for invalid TOML, got nil")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile("config.toml", []byte("[log]\nlevel = \"warn\"\n"), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// The local file has the highest priority.
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestGetCatalogConfig_Defaults(t *testing.T) {
	tests := []struct {
		name string
		in   CatalogConfig
		want CatalogConfig
	}{
		{
			name: "zero values",
			in:   CatalogConfig{},
			want: CatalogConfig{BaseURL: DefaultCatalogURL, PageSize: DefaultPageSize, TimeoutSeconds: DefaultTimeoutSeconds},
		},
		{
			name: "custom values kept",
			in:   CatalogConfig{BaseURL: "https://x", PageSize: 100, TimeoutSeconds: 3},
			want: CatalogConfig{BaseURL: "https://x", PageSize: 100, TimeoutSeconds: 3},
		},
		{
			name: "out of range page size",
			in:   CatalogConfig{PageSize: 500, TimeoutSeconds: -1},
			want: CatalogConfig{BaseURL: DefaultCatalogURL, PageSize: DefaultPageSize, TimeoutSeconds: DefaultTimeoutSeconds},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Catalog: tt.in}
			if got := cfg.GetCatalogConfig(); got != tt.want {
				t.Errorf("GetCatalogConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if got := (CatalogConfig{TimeoutSeconds: 4}).Timeout(); got != 4*time.Second {
		t.Errorf("Timeout() = %v, want 4s", got)
	}
}

func TestGetPlaybackConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	got := cfg.GetPlaybackConfig()
	if got.PreferredQuality != DefaultQuality {
		t.Errorf("PreferredQuality = %q, want %q", got.PreferredQuality, DefaultQuality)
	}
	if got.StatusIntervalMs != DefaultStatusInterval {
		t.Errorf("StatusIntervalMs = %d, want %d", got.StatusIntervalMs, DefaultStatusInterval)
	}

	cfg.Playback.StatusIntervalMs = 10
	if got := cfg.GetPlaybackConfig().StatusIntervalMs; got != DefaultStatusInterval {
		t.Errorf("StatusIntervalMs below minimum = %d, want %d", got, DefaultStatusInterval)
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (LogConfig{Level: tt.level}).SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}

	if got := (&Config{}).GetLogConfig().Level; got != "info" {
		t.Errorf("GetLogConfig().Level = %q, want %q", got, "info")
	}
}

func TestLoadFrom_Integrations(t *testing.T) {
	path := writeConfig(t, `
icons = "nerd"

[notifications]
enabled = true

[mpris]
enabled = false
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Icons != "nerd" {
		t.Errorf("Icons = %q, want %q", cfg.Icons, "nerd")
	}
	if !cfg.Notifications.Enabled {
		t.Error("Notifications.Enabled = false, want true")
	}
	if cfg.MPRIS.IsEnabled() {
		t.Error("MPRIS.IsEnabled() = true, want false")
	}
}

func TestMPRISConfig_DefaultEnabled(t *testing.T) {
	if !(MPRISConfig{}).IsEnabled() {
		t.Error("MPRISConfig{}.IsEnabled() = false, want true")
	}
}
