package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gamebot/internal/library"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend [genre]",
		Short: "Recommend a random game from the library, optionally by genre",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			genre := strings.Join(args, " ")
			entry, err := svc.Recommend(genre, nil)
			if err != nil {
				if library.IsNotFound(err) && genre != "" {
					if similar := svc.SimilarGenres(genre); len(similar) > 0 {
						return fmt.Errorf("no games with genre %q; did you mean: %s",
							genre, strings.Join(similar, ", "))
					}
				}
				return err
			}

			printEntry(cmd, entry)
			return nil
		},
	}
}
