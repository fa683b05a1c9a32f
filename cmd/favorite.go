package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// favoriteCmd represents the favorite command
var favoriteCmd = &cobra.Command{
	Use:   "favorite [project]",
	Short: "Toggle a project as favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, err := app.projects.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		added, err := app.projects.ToggleFavorite(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update favorites: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"id": p.ID, "favorite": added}, "result")
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "★ %s added to favorites\n", p.Name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "☆ %s removed from favorites\n", p.Name)
		}
		return nil
	},
}
