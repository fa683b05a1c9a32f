package ports

import (
	"context"
)

// TimerCommand represents a user action on the timer buttons.
type TimerCommand string

const (
	// CmdStart starts a timer on the selected project.
	CmdStart TimerCommand = "start"

	// CmdStop stops the running timer on the selected project.
	CmdStop TimerCommand = "stop"
)

// CommandFunc executes a timer command against a project.
type CommandFunc func(cmd TimerCommand, projectID uint32) error

// Interface is the interactive terminal front end.
// This is a driving port (called by the application layer).
type Interface interface {
	// Run starts the interface and blocks until the user quits or ctx is done.
	Run(ctx context.Context) error
}
