package library

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"streamsift/internal/services"
)

// Meta records which regions were last refreshed for a watchlist and when.
// Region dates are ISO-form (YYYY-MM-DD).
type Meta struct {
	Filename string            `json:"filename"`
	Regions  map[string]string `json:"regions"`
}

// NewMeta returns an empty metadata record for a watchlist.
func NewMeta(name string) Meta {
	return Meta{Filename: name, Regions: make(map[string]string)}
}

func (l *Library) metaPath(name string) string {
	return filepath.Join(l.dir, strings.TrimSuffix(name, csvSuffix)+metaSuffix)
}

// LoadMeta reads the metadata sidecar for a watchlist. A missing or partially
// populated sidecar yields an initialized Meta rather than an error.
func (l *Library) LoadMeta(name string) (Meta, error) {
	data, err := os.ReadFile(l.metaPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewMeta(name), nil
		}
		return Meta{}, services.Wrap(services.ErrStore, "library", "load meta", name, err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, services.Wrap(services.ErrStore, "library", "load meta", name, err)
	}
	if meta.Regions == nil {
		meta.Regions = make(map[string]string)
	}
	if meta.Filename == "" {
		meta.Filename = name
	}
	return meta, nil
}

// SaveMeta writes the metadata sidecar for a watchlist.
func (l *Library) SaveMeta(name string, meta Meta) error {
	if meta.Filename == "" {
		meta.Filename = name
	}
	if meta.Regions == nil {
		meta.Regions = make(map[string]string)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrStore, "library", "save meta", name, err)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return services.Wrap(services.ErrStore, "library", "save meta", "create library directory", err)
	}
	if err := os.WriteFile(l.metaPath(name), data, 0o644); err != nil {
		return services.Wrap(services.ErrStore, "library", "save meta", name, err)
	}
	return nil
}

// RemoveMeta deletes the metadata sidecar. Removing an absent sidecar is not
// an error.
func (l *Library) RemoveMeta(name string) error {
	if err := os.Remove(l.metaPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrStore, "library", "remove meta", name, err)
	}
	return nil
}
