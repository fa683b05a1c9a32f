// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
)

const timeLayout = "2006-01-02T15:04:05"

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	provider ports.TrackerProvider
	ctx      context.Context
	cancel   context.CancelFunc
	now      func() time.Time
}

// NewServer creates a new MCP server instance.
func NewServer(provider ports.TrackerProvider) *Server {
	s := &Server{
		provider: provider,
		now:      time.Now,
	}

	s.server = server.NewMCPServer(
		"tempo",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"list_projects",
			mcp.WithDescription("List tracked projects with their total time and running state"),
			mcp.WithBoolean(
				"favorites_only",
				mcp.Description("Only list favorite projects"),
			),
		),
		s.handleListProjects,
	)

	projectArg := mcp.WithString(
		"project",
		mcp.Required(),
		mcp.Description("Project id or name; names match case-insensitively, then fuzzily"),
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_project",
			mcp.WithDescription("Get a project with all of its timers"),
			projectArg,
		),
		s.handleGetProject,
	)

	s.server.AddTool(
		mcp.NewTool(
			"start_timer",
			mcp.WithDescription("Start a timer on a project"),
			projectArg,
		),
		s.handleStartTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"stop_timer",
			mcp.WithDescription("Stop the running timer on a project"),
			projectArg,
		),
		s.handleStopTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_report",
			mcp.WithDescription("Get tracked time per project for a period"),
			mcp.WithString(
				"period",
				mcp.Description("Report period (default: today)"),
				mcp.Enum("today", "week", "month", "all"),
			),
		),
		s.handleGetReport,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func (s *Server) projectSummary(p domain.Project) map[string]interface{} {
	return map[string]interface{}{
		"id":         p.ID,
		"name":       p.Name,
		"running":    p.IsRunning(),
		"total_time": domain.FormatHMS(p.TotalDuration(s.now())),
		"timers":     len(p.Timers),
	}
}

func (s *Server) projectDetail(p domain.Project) map[string]interface{} {
	now := s.now()
	timers := make([]map[string]interface{}, 0, len(p.Timers))
	for _, t := range p.Timers {
		timer := map[string]interface{}{
			"id":         t.ID,
			"started_at": t.Start().Format(timeLayout),
			"duration":   domain.FormatHMS(t.Duration(now)),
			"running":    t.IsRunning(),
		}
		if !t.IsRunning() {
			timer["ended_at"] = t.End(now).Format(timeLayout)
		}
		timers = append(timers, timer)
	}

	result := s.projectSummary(p)
	result["timers"] = timers
	return result
}

func textResult(v interface{}, what string) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListProjects handles the list_projects tool.
func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	favoritesOnly := request.GetBool("favorites_only", false)

	projects, err := s.provider.ListProjects(ctx, favoritesOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(projects))
	for _, p := range projects {
		list = append(list, s.projectSummary(p))
	}

	result := map[string]interface{}{
		"projects":    list,
		"total_count": len(list),
	}
	if favoritesOnly {
		result["favorites_only"] = true
	}

	return textResult(result, "projects")
}

// handleGetProject handles the get_project tool.
func (s *Server) handleGetProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required: " + err.Error()), nil
	}

	p, err := s.provider.GetProject(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get project: %v", err)), nil
	}

	return textResult(s.projectDetail(*p), "project")
}

// handleStartTimer handles the start_timer tool.
func (s *Server) handleStartTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required: " + err.Error()), nil
	}

	p, err := s.provider.StartTimer(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start timer: %v", err)), nil
	}

	return textResult(s.projectSummary(*p), "project")
}

// handleStopTimer handles the stop_timer tool.
func (s *Server) handleStopTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("project is required: " + err.Error()), nil
	}

	p, err := s.provider.StopTimer(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to stop timer: %v", err)), nil
	}

	result := s.projectSummary(*p)
	if n := len(p.Timers); n > 0 {
		result["last_timer"] = domain.FormatHMS(p.Timers[n-1].Duration(s.now()))
	}
	return textResult(result, "project")
}

// handleGetReport handles the get_report tool.
func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period := request.GetString("period", "today")

	report, err := s.provider.GetReport(ctx, period)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build report: %v", err)), nil
	}

	rows := make([]map[string]interface{}, 0, len(report.Projects))
	for _, pt := range report.Projects {
		rows = append(rows, map[string]interface{}{
			"id":      pt.Project.ID,
			"name":    pt.Project.Name,
			"total":   domain.FormatHMS(pt.Total),
			"running": pt.Running,
		})
	}

	return textResult(map[string]interface{}{
		"period":     period,
		"since":      report.Since.Format(timeLayout),
		"until":      report.Until.Format(timeLayout),
		"projects":   rows,
		"total_time": domain.FormatHMS(report.Total),
	}, "report")
}
