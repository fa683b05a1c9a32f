package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
	"github.com/xvierd/tempo-cli/internal/services"
)

var reportPeriod string

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show tracked time per project",
	Long:  `Display a terminal dashboard with the time tracked on each project in a period.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		since, err := services.PeriodStart(reportPeriod, time.Now())
		if err != nil {
			return err
		}
		report := app.timers.Report(ctx, since)

		if jsonOutput {
			rows := make([]map[string]interface{}, 0, len(report.Projects))
			for _, pt := range report.Projects {
				rows = append(rows, map[string]interface{}{
					"id":      pt.Project.ID,
					"name":    pt.Project.Name,
					"total":   domain.FormatHMS(pt.Total),
					"running": pt.Running,
				})
			}
			return printJSON(out, map[string]interface{}{
				"period":     reportPeriod,
				"since":      report.Since.Format("2006-01-02T15:04:05"),
				"projects":   rows,
				"total_time": domain.FormatHMS(report.Total),
			}, "report")
		}

		fmt.Fprintln(out)
		renderReport(out, report, reportLabel(reportPeriod, since))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportPeriod, "period", "p", "today", "Time period: today, week, month or all")
}

func reportLabel(period string, since time.Time) string {
	switch period {
	case "week":
		return fmt.Sprintf("Week of %s", since.Format("Jan 2"))
	case "month":
		return since.Format("January 2006")
	case "all":
		return "All time"
	default:
		return "Today, " + since.Format("Mon Jan 2")
	}
}

func renderReport(w io.Writer, report *ports.Report, label string) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C6FE0"))

	fmt.Fprintf(w, "  %s\n", titleStyle.Render(label))
	fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	fmt.Fprintf(w, "  Total: %s across %s project(s)\n\n",
		valueStyle.Render(formatHours(report.Total.Hours())),
		valueStyle.Render(fmt.Sprintf("%d", len(report.Projects))),
	)

	if len(report.Projects) == 0 {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("Nothing tracked in this period."))
		return
	}

	// Projects are sorted largest first, so the first one sets the scale.
	maxTotal := report.Projects[0].Total
	maxBarWidth := 30
	for _, pt := range report.Projects {
		barWidth := 0
		if maxTotal > 0 {
			barWidth = int(math.Round(float64(pt.Total) / float64(maxTotal) * float64(maxBarWidth)))
		}
		if barWidth < 1 && pt.Total > 0 {
			barWidth = 1
		}
		name := fmt.Sprintf("%-16s", truncateName(pt.Project.Name, 16))
		suffix := ""
		if pt.Running {
			suffix = " ●"
		}
		fmt.Fprintf(w, "  %s %s %s%s\n",
			dimStyle.Render(name),
			barColor.Render(buildBar(barWidth)),
			formatHours(pt.Total.Hours()),
			suffix,
		)
	}
	fmt.Fprintln(w)
}

func truncateName(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}

// formatHours formats a float hours value as "Xh Ym".
func formatHours(h float64) string {
	if h < 0.01 {
		return "0m"
	}
	hours := int(h)
	minutes := int(math.Round((h - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}
