package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the on-disk game catalog cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCachePathCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached games",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}

			cache := store.Load()
			entries := cache.Entries()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty; run `gamebot refresh` to populate it")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				if failedOnly && !entry.FetchFailed {
					continue
				}
				status := "ok"
				if entry.FetchFailed {
					status = fmt.Sprintf("failed x%d", entry.FetchAttempts)
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.AppID, 10),
					entry.Name,
					formatGenres(entry.Genres),
					status,
				})
			}
			if failedOnly && len(rows) == 0 {
				fmt.Fprintln(out, "No failed entries")
				return nil
			}

			fmt.Fprintln(out, renderTable(
				[]string{"AppID", "Name", "Genres", "Status"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			if !cache.GeneratedAt.IsZero() {
				fmt.Fprintf(out, "%d games, last refreshed %s\n",
					cache.Count(), cache.GeneratedAt.Format("2006-01-02 15:04 MST"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Show only entries whose detail fetch failed")
	return cmd
}

func newCachePathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Back up and delete the cache file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache cleared; previous version saved to %s\n", store.BackupPath())
			fmt.Fprintln(out, "Run `gamebot refresh` to rebuild the catalog")
			return nil
		},
	}
}
