package ports

import "github.com/xvierd/tempo-cli/internal/domain"

// Notifier announces timer transitions to the user.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// TimerStarted is called after a timer starts on project.
	TimerStarted(project domain.Project) error

	// TimerStopped is called after the running timer on project stops.
	TimerStopped(project domain.Project, timer domain.Timer) error
}
