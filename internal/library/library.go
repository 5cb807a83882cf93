package library

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"streamsift/internal/config"
	"streamsift/internal/services"
)

const (
	csvSuffix  = ".csv"
	metaSuffix = ".csv.json"
)

// Library is the directory of uploaded watchlists and their metadata.
type Library struct {
	dir string
}

// New returns a Library rooted at the configured directory.
func New(cfg *config.Config) *Library {
	return &Library{dir: cfg.Paths.LibraryDir}
}

// Dir returns the library root directory.
func (l *Library) Dir() string {
	return l.dir
}

// NormalizeName validates a watchlist name and ensures the .csv suffix.
// Path separators are rejected so names cannot escape the library directory.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", services.Wrap(services.ErrValidation, "library", "name", "watchlist name required", nil)
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", services.Wrap(services.ErrValidation, "library", "name", fmt.Sprintf("invalid watchlist name %q", name), nil)
	}
	if !strings.HasSuffix(strings.ToLower(name), csvSuffix) {
		name += csvSuffix
	}
	return name, nil
}

func (l *Library) contentPath(name string) string {
	return filepath.Join(l.dir, name)
}

// Exists reports whether a watchlist with the given name is stored.
func (l *Library) Exists(name string) bool {
	info, err := os.Stat(l.contentPath(name))
	return err == nil && !info.IsDir()
}

// Save writes watchlist content under the given name, overwriting any
// existing file.
func (l *Library) Save(name string, r io.Reader) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return services.Wrap(services.ErrStore, "library", "save", "create library directory", err)
	}

	out, err := os.OpenFile(l.contentPath(name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return services.Wrap(services.ErrStore, "library", "save", name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return services.Wrap(services.ErrStore, "library", "save", name, err)
	}
	if err := out.Close(); err != nil {
		return services.Wrap(services.ErrStore, "library", "save", name, err)
	}
	return nil
}

// Open returns a reader over the stored watchlist content.
func (l *Library) Open(name string) (io.ReadCloser, error) {
	file, err := os.Open(l.contentPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "library", "open", fmt.Sprintf("watchlist %s", name), nil)
		}
		return nil, services.Wrap(services.ErrStore, "library", "open", name, err)
	}
	return file, nil
}

// List returns the stored watchlist names in lexical order.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrStore, "library", "list", "", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(strings.ToLower(name), csvSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes a watchlist's content and metadata sidecar. Removing an
// absent watchlist is not an error.
func (l *Library) Remove(name string) error {
	if err := os.Remove(l.contentPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrStore, "library", "remove", name, err)
	}
	return l.RemoveMeta(name)
}

// PurgeAll deletes every file in the library directory.
func (l *Library) PurgeAll() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return services.Wrap(services.ErrStore, "library", "purge", "", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(l.dir, entry.Name())); err != nil {
			return services.Wrap(services.ErrStore, "library", "purge", entry.Name(), err)
		}
	}
	return nil
}
