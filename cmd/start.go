package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/adapters/tui"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/services"
)

var errNoProject = errors.New("no project given and not inside a git repository")

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [project]",
	Short: "Start a timer on a project",
	Long: `Start a timer on a project, matched by id or name. Without an argument the
name of the git repository in the working directory is used, and the project
is created if it does not exist yet. Outside a repository a picker is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		p, created, err := chooseStartProject(ctx, args)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		if created && !jsonOutput {
			fmt.Fprintf(out, "✅ Project added: %s (ID: %d)\n", p.Name, p.ID)
		}

		started, err := app.timers.Start(ctx, p.ID)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(out, projectJSON(started, time.Now()), "project")
		}
		fmt.Fprintf(out, "▶️  Timer started on %s\n", started.Name)
		return nil
	},
}

// chooseStartProject returns the project to start, whether it was just
// created, or nil when the user aborted the picker.
func chooseStartProject(ctx context.Context, args []string) (*domain.Project, bool, error) {
	if len(args) > 0 {
		p, err := app.projects.Resolve(ctx, strings.Join(args, " "))
		if err != nil {
			return nil, false, err
		}
		return &p, false, nil
	}

	if info, err := app.git.Detect(ctx, ""); err == nil {
		return projectForRepo(ctx, info.Name)
	}

	if !isTerminal() {
		return nil, false, errNoProject
	}

	projects := app.projects.List(ctx, services.ListProjectsRequest{})
	if len(projects) == 0 {
		return nil, false, errNoProject
	}
	result, err := tui.PickProject("Start timer on:", projects, &app.config.Theme)
	if err != nil {
		return nil, false, err
	}
	if result.Aborted {
		return nil, false, nil
	}
	return &result.Project, false, nil
}

// projectForRepo finds the project named like the repository, creating it
// when missing.
func projectForRepo(ctx context.Context, name string) (*domain.Project, bool, error) {
	for _, p := range app.projects.List(ctx, services.ListProjectsRequest{}) {
		if strings.EqualFold(p.Name, name) {
			return &p, false, nil
		}
	}

	p, err := app.projects.Add(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}
