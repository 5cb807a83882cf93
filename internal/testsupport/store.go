package testsupport

import (
	"testing"

	"streamsift/internal/config"
	"streamsift/internal/providercache"
)

// MustOpenStore opens a providercache.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *providercache.Store {
	t.Helper()

	store, err := providercache.Open(cfg)
	if err != nil {
		t.Fatalf("providercache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
