package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Defaults for the release feed and the type definition template
const (
	DefaultReleasesURL = "https://api.github.com/repos/electron/electron/releases"
	DefaultTypedefsURL = "https://unpkg.com/electron@%s/electron.d.ts"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	// Home is the directory where fiddle stores local state.
	Home string `env:"FIDDLE_HOME_DIR"`

	// ReleasesURL is the endpoint serving the runtime release feed.
	ReleasesURL string `env:"FIDDLE_RELEASES_URL"`

	// TypedefsURL is the URL template for per-version type definition files.
	TypedefsURL string `env:"FIDDLE_TYPEDEFS_URL"`

	// DistDir is a local tree of runtime payloads, one directory per
	// version, that installs copy from.
	DistDir string `env:"FIDDLE_DIST_DIR"`

	// LineBuffered enables line-buffered console output. Defaults to true
	// on Windows, where child processes write the console in chunks.
	LineBuffered bool `env:"FIDDLE_LINE_BUFFERED"`

	// LogLevel selects the minimum logger level (trace|debug|info|warn|error).
	LogLevel string `env:"FIDDLE_LOG_LEVEL" envDefault:"info"`

	// StoragePath is the settings database file, derived from Home.
	StoragePath string `env:"-"`
	// BinariesDir is where runtime versions are installed, derived from Home.
	BinariesDir string `env:"-"`
	// TypedefsDir is the local type definition cache, derived from Home.
	TypedefsDir string `env:"-"`
}

// Load loads configuration from environment and defaults, and ensures the
// fiddle home directory exists.
func Load() (*Config, error) {
	cfg := Config{
		ReleasesURL:  DefaultReleasesURL,
		TypedefsURL:  DefaultTypedefsURL,
		LineBuffered: runtime.GOOS == "windows",
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Home = filepath.Join(homeDir, ".fiddle")
	}

	if cfg.DistDir == "" {
		cfg.DistDir = filepath.Join(cfg.Home, "dist")
	}

	// Ensure fiddle home exists
	if err := os.MkdirAll(cfg.Home, 0700); err != nil {
		return nil, fmt.Errorf("failed to create fiddle home: %w", err)
	}

	cfg.StoragePath = filepath.Join(cfg.Home, "fiddle.db")
	cfg.BinariesDir = filepath.Join(cfg.Home, "binaries")
	cfg.TypedefsDir = filepath.Join(cfg.Home, "typedefs")

	return &cfg, nil
}
