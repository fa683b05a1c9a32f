// Package ports defines the interfaces (driven and driving ports)
// for the Tempo application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/xvierd/tempo-cli/internal/domain"
)

// Store is the persistence gateway for projects, timers and favorites.
// It keeps the whole collection in memory and rewrites the backing file
// after every mutation.
// This is a driven port (implemented by adapters).
type Store interface {
	// Load reads the backing file. A missing or undecodable file yields an
	// empty collection; Load never fails.
	Load(ctx context.Context) ([]domain.Project, domain.Favorites)

	// Save replaces the collection and rewrites the backing file.
	// Failures are reported as *domain.PersistError.
	Save(ctx context.Context, projects []domain.Project, favorites domain.Favorites) error

	// Projects returns a deep copy of the current collection.
	Projects(ctx context.Context) []domain.Project

	// Favorites returns the favorite projects, skipping dangling ids.
	Favorites(ctx context.Context) []domain.Project

	// FavoriteIDs returns the raw favorite id set.
	FavoriteIDs(ctx context.Context) domain.Favorites

	// AddProject creates a project with a fresh id and persists it.
	AddProject(ctx context.Context, name string) (domain.Project, error)

	// DeleteProject removes a project by id and persists.
	// It returns domain.ErrProjectNotFound if no project has that id.
	DeleteProject(ctx context.Context, id uint32) error

	// EditProject replaces the stored project with the same id and persists.
	// It returns domain.ErrProjectNotFound if no project has that id.
	EditProject(ctx context.Context, project domain.Project) error

	// SetFavorites replaces the favorite set and persists.
	SetFavorites(ctx context.Context, favorites domain.Favorites) error

	// Path returns the location of the backing file.
	Path() string

	// Close releases any resources held by the backend.
	Close() error
}
