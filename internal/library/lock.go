package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock serializes streamsift invocations against the library and cache.
// Concurrent processes mutating the same records would otherwise race; the
// lock makes the documented "one process at a time" assumption hold.
type Lock struct {
	fl *flock.Flock
}

// NewLock returns a lock backed by a lockfile in the library directory.
func NewLock(l *Library) *Lock {
	return &Lock{fl: flock.New(filepath.Join(l.dir, "streamsift.lock"))}
}

// Acquire takes the lock, failing immediately if another process holds it.
func (k *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(k.fl.Path()), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	locked, err := k.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another streamsift process holds %s", k.fl.Path())
	}
	return nil
}

// Release drops the lock.
func (k *Lock) Release() error {
	return k.fl.Unlock()
}
