package testsupport

import (
	"path/filepath"
	"testing"

	"streamsift/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.TMDB.APIKey = "test"
	cfg.Paths.LibraryDir = filepath.Join(base, "watchlists")
	cfg.Paths.CacheDB = filepath.Join(base, "cache.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithRegions overrides the default regions on the test config.
func WithRegions(regions ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Regions.Default = regions
	}
}
