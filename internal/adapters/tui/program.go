package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/tempo-cli/internal/config"
	"github.com/xvierd/tempo-cli/internal/ports"
)

// App implements the ports.Interface interface using Bubbletea.
type App struct {
	store     ports.Store
	theme     *config.ThemeConfig
	command   ports.CommandFunc
	dailyGoal time.Duration

	mu      sync.Mutex
	program *tea.Program
}

// Ensure App implements ports.Interface.
var _ ports.Interface = (*App)(nil)

// NewApp creates the interactive front end over store.
func NewApp(store ports.Store, theme *config.ThemeConfig) *App {
	return &App{store: store, theme: theme}
}

// SetCommandCallback sets the function run by the Start/Stop buttons.
func (a *App) SetCommandCallback(callback ports.CommandFunc) {
	a.command = callback
}

// SetDailyGoal sets the target of the daily progress bar.
func (a *App) SetDailyGoal(goal time.Duration) {
	a.dailyGoal = goal
}

// Run starts the interface on the alternate screen and blocks until the user
// quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, a.store, a.theme)
	model.SetCommandCallback(a.command)
	model.SetDailyGoal(a.dailyGoal)

	a.mu.Lock()
	a.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	program := a.program
	a.mu.Unlock()

	_, err := program.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop asks a running interface to exit.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.program != nil {
		a.program.Quit()
	}
}
