package ports

import (
	"context"
	"time"

	"github.com/xvierd/tempo-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// ProjectTotal is the tracked time of one project within a report period.
type ProjectTotal struct {
	Project domain.Project
	Total   time.Duration
	Running bool
}

// Report aggregates tracked time since a point in time.
type Report struct {
	Since    time.Time
	Until    time.Time
	Projects []ProjectTotal
	Total    time.Duration
}

// TrackerProvider exposes tracker state to the MCP server.
// This is a driven port (implemented by services layer).
type TrackerProvider interface {
	// ListProjects returns all projects, or only favorites.
	ListProjects(ctx context.Context, favoritesOnly bool) ([]domain.Project, error)

	// GetProject resolves a project by id or name.
	GetProject(ctx context.Context, query string) (*domain.Project, error)

	// StartTimer starts a timer on the resolved project.
	StartTimer(ctx context.Context, query string) (*domain.Project, error)

	// StopTimer stops the running timer on the resolved project.
	StopTimer(ctx context.Context, query string) (*domain.Project, error)

	// GetReport returns tracked time for a named period: today, week, month or all.
	GetReport(ctx context.Context, period string) (*Report, error)
}
