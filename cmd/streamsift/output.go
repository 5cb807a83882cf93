package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"streamsift/internal/resolver"
)

type jsonTitle struct {
	IMDbID    string              `json:"imdb_id"`
	Title     string              `json:"title"`
	Kind      string              `json:"kind"`
	Year      *int                `json:"year"`
	TMDBID    *int64              `json:"tmdb_id"`
	Providers map[string][]string `json:"providers"`
}

func writeProcessResultJSON(cmd *cobra.Command, result *resolver.ProcessResult) error {
	titles := make([]jsonTitle, 0, len(result.Titles))
	for _, title := range result.Titles {
		providers := make(map[string][]string, len(title.Providers))
		for region, names := range title.Providers {
			providers[region] = sortedProviders(names)
		}
		titles = append(titles, jsonTitle{
			IMDbID:    title.ID,
			Title:     title.Title,
			Kind:      title.Kind,
			Year:      title.Year,
			TMDBID:    title.TMDBID,
			Providers: providers,
		})
	}
	return writeJSON(cmd, map[string]any{
		"watchlist": result.Watchlist,
		"regions":   result.Regions,
		"refreshed": result.Refreshed,
		"cached":    result.Cached,
		"titles":    titles,
	})
}

func printProcessResult(out io.Writer, result *resolver.ProcessResult) {
	headers := []string{"#", "TITLE", "YEAR", "TYPE"}
	headers = append(headers, result.Regions...)

	rows := make([][]string, 0, len(result.Titles))
	for i, title := range result.Titles {
		position := fmt.Sprintf("%d", i+1)
		if title.Position != nil {
			position = fmt.Sprintf("%d", *title.Position)
		}
		row := []string{position, title.Title, intOrDash(title.Year), title.Kind}
		for _, region := range result.Regions {
			row = append(row, joinProviders(title.Providers[region]))
		}
		rows = append(rows, row)
	}

	if isTerminal(out) {
		fmt.Fprintln(out, renderTable(headers, rows, 1, 3))
	} else {
		fmt.Fprintln(out, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(out, strings.Join(row, "\t"))
		}
	}

	fmt.Fprintf(out, "%d titles in %s", len(result.Titles), result.Watchlist)
	if len(result.Refreshed) > 0 {
		fmt.Fprintf(out, "; refreshed %s", strings.Join(result.Refreshed, ", "))
	}
	if len(result.Cached) > 0 {
		fmt.Fprintf(out, "; from cache %s", strings.Join(result.Cached, ", "))
	}
	fmt.Fprintln(out)
}
