package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// renameCmd represents the rename command
var renameCmd = &cobra.Command{
	Use:   "rename [project] [new name]",
	Short: "Rename a project",
	Long:  `Rename a project. The project is matched by id or name; the remaining arguments form the new name.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		old, err := app.projects.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		p, err := app.projects.Rename(ctx, strconv.FormatUint(uint64(old.ID), 10), strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), projectJSON(p, time.Now()), "project")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✏️  Renamed %q to %q\n", old.Name, p.Name)
		return nil
	},
}
