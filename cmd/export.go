package cmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/services"
)

var (
	exportFormat string
	exportPeriod string
	exportCopy   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export timer history",
	Long:  "Export the timers of every project in markdown or CSV format.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		since, err := services.PeriodStart(exportPeriod, now)
		if err != nil {
			return err
		}

		projects := app.projects.List(cmd.Context(), services.ListProjectsRequest{})

		var buf bytes.Buffer
		switch exportFormat {
		case "csv":
			err = exportCSV(&buf, projects, since, now)
		case "md", "markdown":
			err = exportMarkdown(&buf, projects, since, now)
		default:
			return fmt.Errorf("unknown export format %q (use md or csv)", exportFormat)
		}
		if err != nil {
			return err
		}

		if exportCopy {
			if err := clipboard.WriteAll(buf.String()); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "✓ Export copied to clipboard")
			return nil
		}
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md or csv")
	exportCmd.Flags().StringVar(&exportPeriod, "period", "all", "Time period: today, week, month or all")
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "Copy the export to the clipboard instead of printing it")
}

// timersSince returns the timers of p that end at or after since.
func timersSince(p domain.Project, since, now time.Time) []domain.Timer {
	var out []domain.Timer
	for _, t := range p.Timers {
		if !t.End(now).Before(since) {
			out = append(out, t)
		}
	}
	return out
}

func exportMarkdown(w io.Writer, projects []domain.Project, since, now time.Time) error {
	fmt.Fprintf(w, "# Tempo Export\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", now.Format("2006-01-02 15:04"))

	for _, p := range projects {
		timers := timersSince(p, since, now)
		if len(timers) == 0 {
			continue
		}

		fmt.Fprintf(w, "## %s\n\n", p.Name)
		fmt.Fprintf(w, "| Start | End | Duration |\n|---|---|---|\n")
		var total time.Duration
		for _, t := range timers {
			end := "running"
			if !t.IsRunning() {
				end = t.End(now).Format(timestampLayout)
			}
			d := t.Duration(now)
			total += d
			fmt.Fprintf(w, "| %s | %s | %s |\n", t.Start().Format(timestampLayout), end, domain.FormatHMS(d))
		}
		fmt.Fprintf(w, "\nTotal: %s\n\n", domain.FormatHMS(total))
	}
	return nil
}

func exportCSV(w io.Writer, projects []domain.Project, since, now time.Time) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{
		"project_id", "project", "timer_id", "start", "end", "duration_seconds",
	})

	for _, p := range projects {
		for _, t := range timersSince(p, since, now) {
			end := ""
			if !t.IsRunning() {
				end = t.End(now).Format(time.RFC3339)
			}
			_ = cw.Write([]string{
				strconv.FormatUint(uint64(p.ID), 10),
				p.Name,
				strconv.FormatUint(uint64(t.ID), 10),
				t.Start().Format(time.RFC3339),
				end,
				strconv.FormatInt(int64(t.Duration(now)/time.Second), 10),
			})
		}
	}

	cw.Flush()
	return cw.Error()
}

const timestampLayout = "2006-01-02 15:04:05"
