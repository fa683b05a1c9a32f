package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/tempo-cli/internal/adapters/git"
	"github.com/xvierd/tempo-cli/internal/adapters/notification"
	"github.com/xvierd/tempo-cli/internal/adapters/storage"
	"github.com/xvierd/tempo-cli/internal/config"
	"github.com/xvierd/tempo-cli/internal/ports"
	"github.com/xvierd/tempo-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	store    ports.Store
	projects *services.ProjectService
	timers   *services.TimerService
	state    *services.StateService
	git      ports.GitDetector
	notifier *notification.Notifier
	logFile  io.Closer
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	var err error
	app.config, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		app.config = config.DefaultConfig()
	}

	if backendFlag != "" {
		app.config.Storage.Backend = backendFlag
	}
	if err := setupLogging(); err != nil {
		return err
	}

	path := dataFile
	if path == "" {
		path = config.GetDataPath(app.config)
	}

	app.store, err = storage.Open(ctx, storage.Backend(app.config.Storage.Backend), path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.notifier = notification.New(&app.config.Notifications)
	app.git = git.NewDetector()

	app.projects = services.NewProjectService(app.store)
	app.timers = services.NewTimerService(app.store, app.notifier)
	app.state = services.NewStateService(app.projects, app.timers)

	return nil
}

// setupLogging routes the log package to the debug file, or discards it so
// nothing is written over the alternate screen.
func setupLogging() error {
	path := app.config.TUI.DebugLog
	if debugLog && path == "" {
		path = "tempo-debug.log"
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := tea.LogToFile(path, "tempo")
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	app.logFile = f
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var err error
	if app.store != nil {
		err = app.store.Close()
		app.store = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
	return err
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
