package services

import (
	"context"

	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
)

// StateService implements the TrackerProvider interface.
type StateService struct {
	projects *ProjectService
	timers   *TimerService
}

// Ensure StateService implements ports.TrackerProvider.
var _ ports.TrackerProvider = (*StateService)(nil)

// NewStateService creates a new state service.
func NewStateService(projects *ProjectService, timers *TimerService) *StateService {
	return &StateService{projects: projects, timers: timers}
}

// ListProjects implements ports.TrackerProvider.
func (s *StateService) ListProjects(ctx context.Context, favoritesOnly bool) ([]domain.Project, error) {
	return s.projects.List(ctx, ListProjectsRequest{FavoritesOnly: favoritesOnly}), nil
}

// GetProject implements ports.TrackerProvider.
func (s *StateService) GetProject(ctx context.Context, query string) (*domain.Project, error) {
	p, err := s.projects.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// StartTimer implements ports.TrackerProvider.
func (s *StateService) StartTimer(ctx context.Context, query string) (*domain.Project, error) {
	p, err := s.projects.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	p, err = s.timers.Start(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// StopTimer implements ports.TrackerProvider.
func (s *StateService) StopTimer(ctx context.Context, query string) (*domain.Project, error) {
	p, err := s.projects.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	p, err = s.timers.Stop(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetReport implements ports.TrackerProvider.
func (s *StateService) GetReport(ctx context.Context, period string) (*ports.Report, error) {
	since, err := PeriodStart(period, s.timers.now())
	if err != nil {
		return nil, err
	}
	return s.timers.Report(ctx, since), nil
}
