package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new project",
	Long:  `Add a new project. All arguments are joined into the project name.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := app.projects.Add(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), projectJSON(p, time.Now()), "project")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Project added: %s (ID: %d)\n", p.Name, p.ID)
		return nil
	},
}
