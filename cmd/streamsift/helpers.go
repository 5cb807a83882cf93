package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"streamsift/internal/config"
)

var providerCollator = collate.New(language.English, collate.IgnoreCase)

// resolveRegions parses a --regions flag value, falling back to the
// configured defaults. Codes are uppercased and deduplicated in order.
func resolveRegions(flag string, cfg *config.Config) ([]string, error) {
	var raw []string
	if strings.TrimSpace(flag) != "" {
		raw = strings.Split(flag, ",")
	} else {
		raw = cfg.Regions.Default
	}

	seen := make(map[string]struct{}, len(raw))
	regions := make([]string, 0, len(raw))
	for _, code := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if len(code) != 2 {
			return nil, fmt.Errorf("invalid region code %q", code)
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		regions = append(regions, code)
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("no regions requested and none configured")
	}
	return regions, nil
}

// sortedProviders returns a copy of names in locale-aware order.
func sortedProviders(names []string) []string {
	out := append([]string(nil), names...)
	providerCollator.SortStrings(out)
	return out
}

func joinProviders(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(sortedProviders(names), ", ")
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
