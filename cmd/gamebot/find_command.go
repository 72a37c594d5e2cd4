package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newFindCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <name>",
		Short: "Search the cached catalog by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			matches := svc.Find(query)
			if len(matches) == 0 {
				return fmt.Errorf("no cached game matches %q; try `gamebot info` to search the storefront", query)
			}
			if limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}

			out := cmd.OutOrStdout()
			if !isInteractive(out) {
				for _, match := range matches {
					fmt.Fprintf(out, "%d\t%s\n", match.Entry.AppID, match.Entry.Name)
				}
				return nil
			}

			rows := make([][]string, 0, len(matches))
			for _, match := range matches {
				rows = append(rows, []string{
					strconv.FormatInt(match.Entry.AppID, 10),
					match.Entry.Name,
					formatGenres(match.Entry.Genres),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"AppID", "Name", "Genres"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of matches to show")
	return cmd
}
