package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gamebot/internal/catalog"
	"gamebot/internal/library"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show details for a game, searching the storefront on a cache miss",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			entry, err := svc.ResolveOrFetch(cmd.Context(), query)
			if err != nil {
				if library.IsNotFound(err) {
					return fmt.Errorf("no game found matching %q", query)
				}
				return err
			}

			printEntry(cmd, entry)
			return nil
		},
	}
}

func printEntry(cmd *cobra.Command, entry catalog.Entry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (appid %d)\n", entry.Name, entry.AppID)
	if len(entry.Genres) > 0 {
		fmt.Fprintf(out, "Genres: %s\n", formatGenres(entry.Genres))
	}
	fmt.Fprintln(out, entry.Description)
	if !entry.LastUpdated.IsZero() {
		fmt.Fprintf(out, "Last updated: %s\n", entry.LastUpdated.Format("2006-01-02 15:04 MST"))
	}
	if entry.FetchFailed {
		fmt.Fprintln(out, "Details are incomplete; they will be retried on the next refresh")
	}
}
