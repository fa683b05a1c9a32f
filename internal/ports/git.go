package ports

import (
	"context"
)

// GitInfo holds git repository context information.
type GitInfo struct {
	Root       string
	Name       string
	Branch     string
	Repository string
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the working directory and its parents for a repository.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable checks if the current directory is inside a repository.
	IsAvailable() bool
}
