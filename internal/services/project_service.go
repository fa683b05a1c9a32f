// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
)

// ProjectService handles project-related use cases.
type ProjectService struct {
	store ports.Store
}

// NewProjectService creates a new project service.
func NewProjectService(store ports.Store) *ProjectService {
	return &ProjectService{store: store}
}

// ListProjectsRequest contains filters for listing projects.
type ListProjectsRequest struct {
	FavoritesOnly bool
}

// List returns projects in stored order, or the favorites in favorite order.
func (s *ProjectService) List(ctx context.Context, req ListProjectsRequest) []domain.Project {
	if req.FavoritesOnly {
		return s.store.Favorites(ctx)
	}
	return s.store.Projects(ctx)
}

// Add creates a new project.
func (s *ProjectService) Add(ctx context.Context, name string) (domain.Project, error) {
	p, err := s.store.AddProject(ctx, name)
	if err != nil {
		return p, fmt.Errorf("failed to add project: %w", err)
	}
	return p, nil
}

// Rename changes the name of the project matching query.
func (s *ProjectService) Rename(ctx context.Context, query, name string) (domain.Project, error) {
	name, err := domain.ValidateProjectName(name)
	if err != nil {
		return domain.Project{}, err
	}

	p, err := s.Resolve(ctx, query)
	if err != nil {
		return domain.Project{}, err
	}

	p.Name = name
	if err := s.store.EditProject(ctx, p); err != nil {
		return p, fmt.Errorf("failed to rename project: %w", err)
	}
	return p, nil
}

// Delete removes the project with the given id.
func (s *ProjectService) Delete(ctx context.Context, id uint32) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ToggleFavorite stars or unstars a project and reports the new state.
func (s *ProjectService) ToggleFavorite(ctx context.Context, id uint32) (bool, error) {
	if domain.FindProject(s.store.Projects(ctx), id) < 0 {
		return false, domain.ErrProjectNotFound
	}

	favorites, on := s.store.FavoriteIDs(ctx).Toggle(id)
	if err := s.store.SetFavorites(ctx, favorites); err != nil {
		return on, fmt.Errorf("failed to save favorites: %w", err)
	}
	return on, nil
}

// IsFavorite reports whether the project is starred.
func (s *ProjectService) IsFavorite(ctx context.Context, id uint32) bool {
	return s.store.FavoriteIDs(ctx).Contains(id)
}

// Resolve finds a project by numeric id, exact name, or fuzzy name match.
func (s *ProjectService) Resolve(ctx context.Context, query string) (domain.Project, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Project{}, domain.ErrProjectNotFound
	}

	projects := s.store.Projects(ctx)

	if id, err := strconv.ParseUint(query, 10, 32); err == nil {
		if i := domain.FindProject(projects, uint32(id)); i >= 0 {
			return projects[i], nil
		}
	}

	for _, p := range projects {
		if strings.EqualFold(p.Name, query) {
			return p, nil
		}
	}

	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) > 0 {
		return projects[matches[0].Index], nil
	}

	return domain.Project{}, fmt.Errorf("%q: %w", query, domain.ErrProjectNotFound)
}
