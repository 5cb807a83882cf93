package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"streamsift/internal/library"
	"streamsift/internal/resolver"
	"streamsift/internal/watchlist"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "info <watchlist>",
		Short: "Show a stored watchlist's titles and refresh history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := library.NormalizeName(args[0])
			if err != nil {
				return err
			}

			return ctx.withService(cmd, func(runCtx context.Context, svc *resolver.Service) error {
				rc, err := svc.Library().Open(name)
				if err != nil {
					return err
				}
				defer rc.Close()
				entries, err := watchlist.Parse(rc)
				if err != nil {
					return err
				}
				meta, err := svc.Library().LoadMeta(name)
				if err != nil {
					return err
				}

				if jsonOut {
					type jsonEntry struct {
						IMDbID    string   `json:"imdb_id"`
						Title     string   `json:"title"`
						Kind      string   `json:"kind"`
						Year      *int     `json:"year"`
						Rating    *float64 `json:"rating"`
						Runtime   *int     `json:"runtime_mins"`
						Genres    []string `json:"genres"`
						Directors string   `json:"directors"`
					}
					titles := make([]jsonEntry, 0, len(entries))
					for _, entry := range entries {
						titles = append(titles, jsonEntry{
							IMDbID:    entry.ID,
							Title:     entry.Title,
							Kind:      entry.Kind,
							Year:      entry.Year,
							Rating:    entry.Rating,
							Runtime:   entry.Runtime,
							Genres:    entry.Genres,
							Directors: entry.Directors,
						})
					}
					return writeJSON(cmd, map[string]any{
						"watchlist": name,
						"regions":   meta.Regions,
						"titles":    titles,
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s: %d title(s), last refreshed %s\n", name, len(entries), formatRegionDates(meta.Regions))
				rows := make([][]string, 0, len(entries))
				for i, entry := range entries {
					position := fmt.Sprintf("%d", i+1)
					if entry.Position != nil {
						position = fmt.Sprintf("%d", *entry.Position)
					}
					rows = append(rows, []string{
						position,
						entry.ID,
						entry.Title,
						intOrDash(entry.Year),
						entry.Kind,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"#", "IMDB ID", "TITLE", "YEAR", "TYPE"}, rows, 1, 4))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}
