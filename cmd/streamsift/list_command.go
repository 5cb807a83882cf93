package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"streamsift/internal/resolver"
	"streamsift/internal/watchlist"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored watchlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *resolver.Service) error {
				names, err := svc.Library().List()
				if err != nil {
					return err
				}

				type listing struct {
					Name    string            `json:"name"`
					Titles  int               `json:"titles"`
					Regions map[string]string `json:"regions"`
				}
				listings := make([]listing, 0, len(names))
				for _, name := range names {
					entry := listing{Name: name, Titles: countTitles(svc, name)}
					meta, err := svc.Library().LoadMeta(name)
					if err != nil {
						return err
					}
					entry.Regions = meta.Regions
					listings = append(listings, entry)
				}

				cached, err := svc.Store().Count(runCtx)
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, map[string]any{
						"watchlists":    listings,
						"cached_titles": cached,
					})
				}

				out := cmd.OutOrStdout()
				if len(listings) == 0 {
					fmt.Fprintln(out, "No watchlists stored")
					return nil
				}
				rows := make([][]string, 0, len(listings))
				for _, l := range listings {
					rows = append(rows, []string{
						l.Name,
						fmt.Sprintf("%d", l.Titles),
						formatRegionDates(l.Regions),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"WATCHLIST", "TITLES", "LAST REFRESHED"}, rows, 2))
				fmt.Fprintf(out, "%d cached title(s)\n", cached)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func countTitles(svc *resolver.Service, name string) int {
	rc, err := svc.Library().Open(name)
	if err != nil {
		return 0
	}
	defer rc.Close()
	entries, err := watchlist.Parse(rc)
	if err != nil {
		return 0
	}
	return len(entries)
}

func formatRegionDates(regions map[string]string) string {
	if len(regions) == 0 {
		return "never"
	}
	codes := make([]string, 0, len(regions))
	for code := range regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, code+" "+regions[code])
	}
	return strings.Join(parts, ", ")
}
