package watchlist

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"streamsift/internal/services"
)

// Entry is one parsed watchlist row. Entries are immutable and never
// persisted on their own; the identifier is the stable key linking a title to
// its cached availability.
type Entry struct {
	ID        string
	Title     string
	Kind      string
	Position  *int
	Year      *int
	Rating    *float64
	Runtime   *int
	Genres    []string
	Directors string
}

// Column headers as written by the IMDb export.
const (
	colID        = "Const"
	colTitle     = "Title"
	colKind      = "Title Type"
	colPosition  = "Position"
	colYear      = "Year"
	colRating    = "IMDb Rating"
	colRuntime   = "Runtime (mins)"
	colGenres    = "Genres"
	colDirectors = "Directors"
)

// kindLabels maps the export's raw title types to display names. Unknown raw
// values pass through unchanged.
var kindLabels = map[string]string{
	"movie":        "Movie",
	"tvSeries":     "TV Series",
	"tvMiniSeries": "TV Mini-Series",
	"tvEpisode":    "TV Episode",
	"short":        "Short",
	"video":        "Video",
	"tvMovie":      "TV Movie",
}

// Parse reads a watchlist CSV export and returns its entries in source order.
// Rows missing an identifier are dropped; unparsable numeric fields yield nil
// for that field only.
func Parse(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrParse, "watchlist", "parse", "empty export", nil)
		}
		return nil, services.Wrap(services.ErrParse, "watchlist", "parse", "read header", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var entries []Entry
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrParse, "watchlist", "parse", "read row", err)
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		id := field(colID)
		if id == "" {
			continue
		}

		entries = append(entries, Entry{
			ID:        id,
			Title:     field(colTitle),
			Kind:      displayKind(field(colKind)),
			Position:  parseInt(field(colPosition)),
			Year:      parseInt(field(colYear)),
			Rating:    parseFloat(field(colRating)),
			Runtime:   parseInt(field(colRuntime)),
			Genres:    splitGenres(field(colGenres)),
			Directors: field(colDirectors),
		})
	}

	return entries, nil
}

func displayKind(raw string) string {
	if label, ok := kindLabels[raw]; ok {
		return label
	}
	return raw
}

func parseInt(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func splitGenres(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	genres := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			genres = append(genres, trimmed)
		}
	}
	if len(genres) == 0 {
		return nil
	}
	return genres
}

// Identifiers returns the identifier set of the given entries.
func Identifiers(entries []Entry) map[string]struct{} {
	ids := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		ids[entry.ID] = struct{}{}
	}
	return ids
}
