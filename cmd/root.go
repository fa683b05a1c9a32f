// Package cmd provides the CLI commands for the Tempo application.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/adapters/tui"
	"github.com/xvierd/tempo-cli/internal/ports"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dataFile    string
	backendFlag string
	jsonOutput  bool
	debugLog    bool
)

// errNoTTY is returned when the interactive screen is requested without a terminal.
var errNoTTY = errors.New("tempo needs an interactive terminal; use a subcommand such as `tempo list`")

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Tempo - track time spent on projects from the terminal",
	Long: `Tempo keeps a list of projects, each with its own timers, in a single
JSON file and lets you start and stop them from a full-screen terminal UI
or from the command line.

Run "tempo" with no arguments to open the interactive screen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if cerr := cleanupServices(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataFile, "file", "", "Path to the project file (default: ~/.tempo/projects.json)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Storage backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write a debug log to tempo-debug.log")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Tempo CLI\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// runTUI opens the interactive screen over the loaded store.
func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errNoTTY
	}

	ctx, cancel := setupSignalHandler(cmd.Context())
	defer cancel()

	ui := tui.NewApp(app.store, &app.config.Theme)
	ui.SetDailyGoal(time.Duration(app.config.TUI.DailyGoal))
	ui.SetCommandCallback(func(c ports.TimerCommand, projectID uint32) error {
		return app.timers.Execute(ctx, c, projectID)
	})

	return ui.Run(ctx)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}, what string) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
