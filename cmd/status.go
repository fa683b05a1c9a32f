package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/domain"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show running timers and today's total",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		now := time.Now()

		running := app.timers.Running(ctx)
		today := app.timers.Today(ctx)
		goal := time.Duration(app.config.TUI.DailyGoal)

		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(running))
			for _, p := range running {
				entry := projectJSON(p, now)
				t := p.Timers[p.RunningTimer()]
				entry["started_at"] = t.Start().Format("2006-01-02T15:04:05")
				entry["elapsed"] = domain.FormatHMS(t.Duration(now))
				list = append(list, entry)
			}
			return printJSON(out, map[string]interface{}{
				"running":    list,
				"today":      domain.FormatHMS(today),
				"daily_goal": domain.FormatHMS(goal),
			}, "status")
		}

		if len(running) == 0 {
			fmt.Fprintln(out, "No timer running.")
		} else {
			fmt.Fprintln(out, "⏱  Running")
			for _, p := range running {
				t := p.Timers[p.RunningTimer()]
				fmt.Fprintf(out, "   %s  %s (since %s)\n", p.Name, domain.FormatHMS(t.Duration(now)), t.Start().Format("15:04"))
			}
		}

		fmt.Fprintf(out, "\n📊 Today: %s", domain.FormatHMS(today))
		if goal > 0 {
			fmt.Fprintf(out, " / %s (%.0f%%)", domain.FormatHMS(goal), 100*float64(today)/float64(goal))
		}
		fmt.Fprintln(out)
		return nil
	},
}
