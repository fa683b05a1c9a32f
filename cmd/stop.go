package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/domain"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop [project]",
	Short: "Stop running timers",
	Long:  `Stop the running timer on a project, or on every project when none is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var targets []domain.Project
		if len(args) > 0 {
			p, err := app.projects.Resolve(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			targets = append(targets, p)
		} else {
			targets = app.timers.Running(ctx)
			if len(targets) == 0 {
				return domain.ErrNoRunningTimer
			}
		}

		now := time.Now()
		var stopped []map[string]interface{}
		for _, target := range targets {
			p, err := app.timers.Stop(ctx, target.ID)
			if err != nil {
				return err
			}
			last := p.Timers[len(p.Timers)-1]

			if jsonOutput {
				entry := projectJSON(p, now)
				entry["last_timer"] = domain.FormatHMS(last.Duration(now))
				stopped = append(stopped, entry)
				continue
			}
			fmt.Fprintf(out, "⏹️  Timer stopped on %s after %s (total %s)\n",
				p.Name, domain.FormatHMS(last.Duration(now)), domain.FormatHMS(p.TotalDuration(now)))
		}

		if jsonOutput {
			return printJSON(out, map[string]interface{}{"stopped": stopped}, "result")
		}
		return nil
	},
}
