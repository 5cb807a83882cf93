package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"streamsift/internal/config"
)

// WriteWatchlist stores a CSV export in the configured library directory and
// returns its path.
func WriteWatchlist(t testing.TB, cfg *config.Config, name, contents string) string {
	t.Helper()

	if err := os.MkdirAll(cfg.Paths.LibraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library dir: %v", err)
	}
	path := filepath.Join(cfg.Paths.LibraryDir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write watchlist %s: %v", name, err)
	}
	return path
}

// WatchlistCSV builds a minimal export from (id, title, kind) triples.
func WatchlistCSV(rows ...[3]string) string {
	var b strings.Builder
	b.WriteString("Position,Const,Title,Title Type,Year\n")
	for i, row := range rows {
		b.WriteString(strings.Join([]string{
			strconv.Itoa(i + 1), row[0], row[1], row[2], "2000",
		}, ","))
		b.WriteByte('\n')
	}
	return b.String()
}
