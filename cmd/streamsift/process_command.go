package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"streamsift/internal/config"
	"streamsift/internal/library"
	"streamsift/internal/resolver"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var (
		uploadPath  string
		regionsFlag string
		modeFlag    string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "process <watchlist>",
		Short: "Resolve streaming availability for a watchlist",
		Long: `Resolve streaming availability for every title on a watchlist.

With --upload the given CSV export replaces any stored content under the
same name and all requested regions are refreshed. Without it the stored
watchlist is processed: regions refreshed before are answered from the
cache unless --mode refresh forces a re-fetch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := library.NormalizeName(args[0])
			if err != nil {
				return err
			}
			mode, err := resolver.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			regions, err := resolveRegions(regionsFlag, cfg)
			if err != nil {
				return err
			}

			var upload io.ReadCloser
			if uploadPath != "" {
				expanded, err := config.ExpandPath(uploadPath)
				if err != nil {
					return err
				}
				file, err := os.Open(expanded)
				if err != nil {
					return fmt.Errorf("open upload: %w", err)
				}
				defer file.Close()
				upload = file
			}

			return ctx.withService(cmd, func(runCtx context.Context, svc *resolver.Service) error {
				req := resolver.ProcessRequest{
					Name:    name,
					Regions: regions,
					Mode:    mode,
					Today:   time.Now().Format(time.DateOnly),
				}
				if upload != nil {
					req.Upload = upload
				}

				result, err := svc.Process(runCtx, req)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeProcessResultJSON(cmd, result)
				}
				printProcessResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&uploadPath, "upload", "u", "", "CSV export to store before processing")
	cmd.Flags().StringVarP(&regionsFlag, "regions", "r", "", "Comma-separated region codes (default from config)")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "auto", "Cache policy: auto, refresh, or use_saved")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}
