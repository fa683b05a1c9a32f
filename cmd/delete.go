package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [project]",
	Short: "Delete a project",
	Long:  `Delete a project and all of its timers. Use with caution - this cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		p, err := app.projects.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		if !deleteYes && !jsonOutput {
			fmt.Fprintf(out, "Delete project %q and its %d timer(s)? [y/N]: ", p.Name, len(p.Timers))
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.TrimSpace(strings.ToLower(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(out, "Deletion cancelled.")
				return nil
			}
		}

		if err := app.projects.Delete(ctx, p.ID); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(out, map[string]interface{}{"deleted": true, "id": p.ID}, "result")
		}
		fmt.Fprintf(out, "🗑️  Project %q deleted.\n", p.Name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}
