package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/tempo-cli/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server provides tools to list projects, start and stop timers, and read reports.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return errors.New("the MCP server is disabled; set mcp.enabled = true in the config")
		}

		// stdout carries the protocol, so banners go to stderr.
		fmt.Fprintln(os.Stderr, "🚀 Starting MCP server on stdio (Ctrl+C to stop)")

		ctx, cancel := setupSignalHandler(cmd.Context())
		defer cancel()

		server := mcp.NewServer(app.state)
		defer func() { _ = server.Stop() }()
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
