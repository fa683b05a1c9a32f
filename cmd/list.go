package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/services"
)

var listFavorites bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long:  `List all projects with their tracked time, or only favorites.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		now := time.Now()

		projects := app.projects.List(ctx, services.ListProjectsRequest{FavoritesOnly: listFavorites})

		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(projects))
			for _, p := range projects {
				list = append(list, projectJSON(p, now))
			}
			return printJSON(out, map[string]interface{}{
				"projects": list,
				"count":    len(list),
			}, "projects")
		}

		if len(projects) == 0 {
			if listFavorites {
				fmt.Fprintln(out, "No favorite projects.")
			} else {
				fmt.Fprintln(out, "No projects yet. Add one with: tempo add <name>")
			}
			return nil
		}

		fmt.Fprintf(out, "📋 Projects (%d):\n\n", len(projects))
		for _, p := range projects {
			printProjectLine(out, p, app.projects.IsFavorite(ctx, p.ID), now)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listFavorites, "favorites", "f", false, "List favorite projects only")
}

func printProjectLine(w io.Writer, p domain.Project, favorite bool, now time.Time) {
	icon := "  "
	if p.IsRunning() {
		icon = "▶️"
	}
	star := ""
	if favorite {
		star = " ★"
	}
	fmt.Fprintf(w, "%s %-24s %s  (ID: %d)%s\n", icon, p.Name, domain.FormatHMS(p.TotalDuration(now)), p.ID, star)
}

func projectJSON(p domain.Project, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"id":         p.ID,
		"name":       p.Name,
		"running":    p.IsRunning(),
		"timers":     len(p.Timers),
		"total_time": domain.FormatHMS(p.TotalDuration(now)),
	}
}
