package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the game catalog from the Steam library",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			stats, err := svc.Refresh(cmd.Context(), force)
			if err != nil {
				return fmt.Errorf("refresh catalog: %w", err)
			}

			out := cmd.OutOrStdout()
			if stats.Skipped {
				fmt.Fprintf(out, "Catalog is up to date (%d games); use --force to refresh anyway\n", svc.Count())
				return nil
			}
			fmt.Fprintf(out, "Refreshed %d games (%d fetched, %d failed)\n",
				stats.Total, stats.Fetched, stats.Failed)
			if stats.Failed > 0 {
				fmt.Fprintln(out, "Failed games will be retried on the next refresh")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Refresh even if the catalog is fresh")
	return cmd
}
