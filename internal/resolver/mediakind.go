package resolver

import "strings"

var movieKinds = map[string]struct{}{
	"movie":   {},
	"short":   {},
	"video":   {},
	"tvmovie": {},
}

var tvKinds = map[string]struct{}{
	"tvseries":     {},
	"tvminiseries": {},
	"tvepisode":    {},
	"tvspecial":    {},
}

// MediaType classifies a raw or display title kind into the catalog's
// "movie"/"tv" namespace. Unknown kinds containing "tv" default to tv,
// everything else to movie.
func MediaType(kind string) string {
	normalized := strings.ToLower(strings.TrimSpace(kind))
	normalized = strings.NewReplacer(" ", "", "-", "").Replace(normalized)

	if _, ok := movieKinds[normalized]; ok {
		return "movie"
	}
	if _, ok := tvKinds[normalized]; ok {
		return "tv"
	}
	if strings.Contains(normalized, "tv") {
		return "tv"
	}
	return "movie"
}
