package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"streamsift/internal/library"
	"streamsift/internal/resolver"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <watchlist>",
		Short: "Delete a watchlist and its orphaned cache entries",
		Long: `Delete a stored watchlist, its metadata, and every cached title that
appears on no other watchlist. Titles shared with other watchlists keep
their cached availability.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := library.NormalizeName(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *resolver.Service) error {
				if err := svc.ReconcileDelete(runCtx, name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
				return nil
			})
		},
	}
}
