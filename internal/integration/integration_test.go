package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/tempo-cli/internal/adapters/storage"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
	"github.com/xvierd/tempo-cli/internal/services"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

// openStore opens a store of the given backend under a fresh temp dir.
func openStore(t *testing.T, backend storage.Backend, path string) ports.Store {
	t.Helper()

	store, err := storage.Open(context.Background(), backend, path)
	if err != nil {
		t.Fatalf("failed to open %s store: %v", backend, err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func backends(t *testing.T) map[storage.Backend]string {
	dir := t.TempDir()
	return map[storage.Backend]string{
		storage.BackendJSON:   filepath.Join(dir, "projects.json"),
		storage.BackendSQLite: filepath.Join(dir, "tempo.db"),
	}
}

// TestTrackingLifecycle runs add, start, stop, report and reopen on each backend.
func TestTrackingLifecycle(t *testing.T) {
	for backend, path := range backends(t) {
		t.Run(string(backend), func(t *testing.T) {
			ctx := context.Background()
			c := &clock{t: time.Date(2026, 4, 14, 9, 0, 0, 0, time.Local)}

			store := openStore(t, backend, path)
			projectSvc := services.NewProjectService(store)
			timerSvc := services.NewTimerService(store, nil)
			timerSvc.SetClock(c.now)

			website, err := projectSvc.Add(ctx, "Website")
			if err != nil {
				t.Fatalf("failed to add project: %v", err)
			}
			api, err := projectSvc.Add(ctx, "Backend")
			if err != nil {
				t.Fatalf("failed to add project: %v", err)
			}

			// 1. Track 90 minutes on Website.
			if _, err := timerSvc.Start(ctx, website.ID); err != nil {
				t.Fatalf("failed to start timer: %v", err)
			}
			if _, err := timerSvc.Start(ctx, website.ID); err == nil {
				t.Error("expected error starting a second timer")
			}
			c.advance(90 * time.Minute)
			if _, err := timerSvc.Stop(ctx, website.ID); err != nil {
				t.Fatalf("failed to stop timer: %v", err)
			}

			// 2. Leave a timer running on Backend.
			if err := timerSvc.Execute(ctx, ports.CmdStart, api.ID); err != nil {
				t.Fatalf("failed to start timer: %v", err)
			}
			c.advance(30 * time.Minute)

			report := timerSvc.Report(ctx, services.StartOfDay(c.now()))
			if report.Total != 2*time.Hour {
				t.Errorf("expected 2h tracked today, got %v", report.Total)
			}
			if len(report.Projects) != 2 || report.Projects[0].Project.Name != "Website" {
				t.Errorf("unexpected report order: %+v", report.Projects)
			}
			if !report.Projects[1].Running {
				t.Error("expected Backend to be reported as running")
			}

			// 3. Favorite and rename, then reopen from disk.
			if _, err := projectSvc.ToggleFavorite(ctx, api.ID); err != nil {
				t.Fatalf("failed to toggle favorite: %v", err)
			}
			if _, err := projectSvc.Rename(ctx, "website", "Website v2"); err != nil {
				t.Fatalf("failed to rename: %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("failed to close store: %v", err)
			}

			reopened := openStore(t, backend, path)
			projects, favorites := reopened.Load(ctx)
			if len(projects) != 2 {
				t.Fatalf("expected 2 projects after reopen, got %d", len(projects))
			}
			if projects[0].Name != "Website v2" || len(projects[0].Timers) != 1 {
				t.Errorf("unexpected first project: %+v", projects[0])
			}
			if !projects[1].IsRunning() {
				t.Error("expected the running timer to survive a reopen")
			}
			if !favorites.Contains(api.ID) {
				t.Errorf("expected favorites to contain %d, got %v", api.ID, favorites)
			}

			// 4. Deleting a favorite drops it from the favorite list.
			if err := reopened.DeleteProject(ctx, api.ID); err != nil {
				t.Fatalf("failed to delete: %v", err)
			}
			if len(reopened.Favorites(ctx)) != 0 || len(reopened.FavoriteIDs(ctx)) != 0 {
				t.Error("expected no favorites after deleting the favorite project")
			}
		})
	}
}

// TestJSONFileIsSharedFormat checks a file written by one backend instance
// is read by a new one, including a running timer.
func TestJSONFileIsSharedFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "projects.json")

	content := `{
  "projects": [
    {"id": 7, "name": "Legacy", "timers": [
      {"id": 1, "start_time": 1700000000, "end_time": 1700003600},
      {"id": 2, "start_time": 1700010000, "end_time": null}
    ]}
  ],
  "favorites": [7, 8]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	store := openStore(t, storage.BackendJSON, path)
	projects := store.Projects(ctx)
	if len(projects) != 1 || projects[0].ID != 7 || len(projects[0].Timers) != 2 {
		t.Fatalf("unexpected projects: %+v", projects)
	}
	p := projects[0]
	if !p.IsRunning() {
		t.Error("expected the null end time to load as running")
	}

	timerSvc := services.NewTimerService(store, nil)
	timerSvc.SetClock(func() time.Time { return time.Unix(1700013600, 0) })
	stopped, err := timerSvc.Stop(ctx, 7)
	if err != nil {
		t.Fatalf("failed to stop: %v", err)
	}
	if got := stopped.TotalDuration(time.Unix(1700013600, 0)); got != 2*time.Hour {
		t.Errorf("expected 2h total, got %v", got)
	}

	if favs := store.Favorites(ctx); len(favs) != 1 || favs[0].ID != 7 {
		t.Errorf("expected dangling favorite 8 to be skipped, got %+v", favs)
	}
}

// TestMissingProjectErrors checks lookups report domain.ErrProjectNotFound.
func TestMissingProjectErrors(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, storage.BackendJSON, filepath.Join(t.TempDir(), "projects.json"))
	timerSvc := services.NewTimerService(store, nil)

	if _, err := timerSvc.Start(ctx, 42); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := store.EditProject(ctx, domain.Project{ID: 42, Name: "x"}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
