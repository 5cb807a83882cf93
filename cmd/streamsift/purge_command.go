package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"streamsift/internal/resolver"
)

func newPurgeCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every watchlist and the entire availability cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("purge removes all watchlists and cached availability; re-run with --yes to confirm")
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *resolver.Service) error {
				if err := svc.PurgeAll(runCtx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Purged all watchlists and cached availability")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the purge")
	return cmd
}
