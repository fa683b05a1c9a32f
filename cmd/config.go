package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  `Show the location and the effective values of the configuration file.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and data file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"config": configPath,
				"data":   app.store.Path(),
			}, "paths")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config: %s\ndata:   %s\n", configPath, app.store.Path())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.config
		out := cmd.OutOrStdout()

		if jsonOutput {
			return printJSON(out, map[string]interface{}{
				"storage": map[string]string{
					"data_dir": cfg.Storage.DataDir,
					"file":     cfg.Storage.File,
					"backend":  cfg.Storage.Backend,
				},
				"notifications": map[string]bool{
					"enabled": cfg.Notifications.Enabled,
					"sound":   cfg.Notifications.Sound,
				},
				"mcp": map[string]bool{"enabled": cfg.MCP.Enabled},
				"tui": map[string]string{
					"daily_goal": cfg.TUI.DailyGoal.String(),
					"debug_log":  cfg.TUI.DebugLog,
				},
			}, "config")
		}

		onOff := func(b bool) string {
			if b {
				return "on"
			}
			return "off"
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Current configuration:")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "    Data file:      %s\n", app.store.Path())
		fmt.Fprintf(out, "    Backend:        %s\n", cfg.Storage.Backend)
		fmt.Fprintf(out, "    Daily goal:     %s\n", formatHours(time.Duration(cfg.TUI.DailyGoal).Hours()))
		fmt.Fprintf(out, "    Notifications:  %s (sound %s)\n", onOff(cfg.Notifications.Enabled), onOff(cfg.Notifications.Sound))
		fmt.Fprintf(out, "    MCP server:     %s\n", onOff(cfg.MCP.Enabled))
		if cfg.TUI.DebugLog != "" {
			fmt.Fprintf(out, "    Debug log:      %s\n", cfg.TUI.DebugLog)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}
