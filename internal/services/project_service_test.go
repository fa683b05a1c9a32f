package services

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/xvierd/tempo-cli/internal/adapters/storage"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
)

func setupTestStore(t *testing.T) (ports.Store, func()) {
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return store, func() { _ = store.Close() }
}

func TestProjectService_Add(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	service := NewProjectService(store)
	ctx := context.Background()

	t.Run("add valid project", func(t *testing.T) {
		p, err := service.Add(ctx, "Website")
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if p.Name != "Website" {
			t.Errorf("Add() name = %v, want Website", p.Name)
		}
		if len(service.List(ctx, ListProjectsRequest{})) != 1 {
			t.Error("Add() did not persist the project")
		}
	})

	t.Run("add project with empty name", func(t *testing.T) {
		_, err := service.Add(ctx, "")
		if !errors.Is(err, domain.ErrEmptyProjectName) {
			t.Errorf("Add() error = %v, want ErrEmptyProjectName", err)
		}
	})
}

func TestProjectService_Resolve(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	service := NewProjectService(store)
	ctx := context.Background()

	website, _ := service.Add(ctx, "Website redesign")
	backend, _ := service.Add(ctx, "Backend API")

	tests := []struct {
		name    string
		query   string
		wantID  uint32
		wantErr bool
	}{
		{name: "by id", query: strconv.FormatUint(uint64(backend.ID), 10), wantID: backend.ID},
		{name: "exact name ignoring case", query: "website REDESIGN", wantID: website.ID},
		{name: "fuzzy name", query: "bapi", wantID: backend.ID},
		{name: "no match", query: "zzzz", wantErr: true},
		{name: "blank", query: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := service.Resolve(ctx, tt.query)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrProjectNotFound) {
					t.Errorf("Resolve(%q) error = %v, want ErrProjectNotFound", tt.query, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.query, err)
			}
			if p.ID != tt.wantID {
				t.Errorf("Resolve(%q) = %d, want %d", tt.query, p.ID, tt.wantID)
			}
		})
	}
}

func TestProjectService_RenameAndDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	service := NewProjectService(store)
	ctx := context.Background()

	p, _ := service.Add(ctx, "Alpha")

	renamed, err := service.Rename(ctx, "Alpha", "Beta")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if renamed.ID != p.ID || renamed.Name != "Beta" {
		t.Errorf("Rename() = %+v, want id %d named Beta", renamed, p.ID)
	}

	if _, err := service.Rename(ctx, "Beta", " "); !errors.Is(err, domain.ErrEmptyProjectName) {
		t.Errorf("Rename() to blank error = %v, want ErrEmptyProjectName", err)
	}

	if err := service.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := service.Delete(ctx, p.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("second Delete() error = %v, want ErrProjectNotFound", err)
	}
}

func TestProjectService_ToggleFavorite(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	service := NewProjectService(store)
	ctx := context.Background()

	p, _ := service.Add(ctx, "Alpha")
	_, _ = service.Add(ctx, "Gamma")

	on, err := service.ToggleFavorite(ctx, p.ID)
	if err != nil || !on {
		t.Fatalf("ToggleFavorite() = %v, %v, want true", on, err)
	}
	favs := service.List(ctx, ListProjectsRequest{FavoritesOnly: true})
	if len(favs) != 1 || favs[0].ID != p.ID {
		t.Errorf("favorites = %+v, want only %d", favs, p.ID)
	}

	on, err = service.ToggleFavorite(ctx, p.ID)
	if err != nil || on {
		t.Errorf("second ToggleFavorite() = %v, %v, want false", on, err)
	}
	if service.IsFavorite(ctx, p.ID) {
		t.Error("project still a favorite after second toggle")
	}

	if _, err := service.ToggleFavorite(ctx, 12345); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("ToggleFavorite(missing) error = %v, want ErrProjectNotFound", err)
	}
}
