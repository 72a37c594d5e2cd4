package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List all genres in the cached library",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			genres := svc.Genres()
			if len(genres) == 0 {
				return fmt.Errorf("no genres cached; run `gamebot refresh` first")
			}

			out := cmd.OutOrStdout()
			for _, genre := range genres {
				fmt.Fprintln(out, genre)
			}
			return nil
		},
	}
}
