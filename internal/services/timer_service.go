package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
)

// TimerService starts and stops project timers.
type TimerService struct {
	store    ports.Store
	notifier ports.Notifier
	now      func() time.Time
}

// NewTimerService creates a new timer service. notifier may be nil.
func NewTimerService(store ports.Store, notifier ports.Notifier) *TimerService {
	return &TimerService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *TimerService) SetClock(now func() time.Time) {
	s.now = now
}

// Start starts a timer on the project. A project holds at most one running timer.
func (s *TimerService) Start(ctx context.Context, projectID uint32) (domain.Project, error) {
	p, err := s.find(ctx, projectID)
	if err != nil {
		return p, err
	}

	if _, err := p.StartTimer(s.now()); err != nil {
		return p, fmt.Errorf("%s: %w", p.Name, err)
	}
	if err := s.store.EditProject(ctx, p); err != nil {
		return p, fmt.Errorf("failed to save timer: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.TimerStarted(p); err != nil {
			log.Printf("notify: %v", err)
		}
	}
	return p, nil
}

// Stop closes the running timer on the project.
func (s *TimerService) Stop(ctx context.Context, projectID uint32) (domain.Project, error) {
	p, err := s.find(ctx, projectID)
	if err != nil {
		return p, err
	}

	timer, err := p.StopTimer(s.now())
	if err != nil {
		return p, fmt.Errorf("%s: %w", p.Name, err)
	}
	stopped := *timer
	if err := s.store.EditProject(ctx, p); err != nil {
		return p, fmt.Errorf("failed to save timer: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.TimerStopped(p, stopped); err != nil {
			log.Printf("notify: %v", err)
		}
	}
	return p, nil
}

// Execute runs a timer button command. It matches ports.CommandFunc.
func (s *TimerService) Execute(ctx context.Context, cmd ports.TimerCommand, projectID uint32) error {
	var err error
	switch cmd {
	case ports.CmdStart:
		_, err = s.Start(ctx, projectID)
	case ports.CmdStop:
		_, err = s.Stop(ctx, projectID)
	default:
		err = fmt.Errorf("unknown timer command %q", cmd)
	}
	return err
}

// Running returns every project with a running timer.
func (s *TimerService) Running(ctx context.Context) []domain.Project {
	var out []domain.Project
	for _, p := range s.store.Projects(ctx) {
		if p.IsRunning() {
			out = append(out, p)
		}
	}
	return out
}

// Report sums tracked time since the given point, largest project first.
// Projects with no time in the period are omitted.
func (s *TimerService) Report(ctx context.Context, since time.Time) *ports.Report {
	now := s.now()
	report := &ports.Report{Since: since, Until: now}

	for _, p := range s.store.Projects(ctx) {
		total := p.DurationSince(since, now)
		if total == 0 && !p.IsRunning() {
			continue
		}
		report.Projects = append(report.Projects, ports.ProjectTotal{
			Project: p,
			Total:   total,
			Running: p.IsRunning(),
		})
		report.Total += total
	}

	sort.SliceStable(report.Projects, func(i, j int) bool {
		return report.Projects[i].Total > report.Projects[j].Total
	})
	return report
}

// Today returns the tracked time since local midnight.
func (s *TimerService) Today(ctx context.Context) time.Duration {
	return s.Report(ctx, StartOfDay(s.now())).Total
}

func (s *TimerService) find(ctx context.Context, projectID uint32) (domain.Project, error) {
	projects := s.store.Projects(ctx)
	i := domain.FindProject(projects, projectID)
	if i < 0 {
		return domain.Project{}, fmt.Errorf("project %d: %w", projectID, domain.ErrProjectNotFound)
	}
	return projects[i], nil
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// PeriodStart maps a named report period to its starting point.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "today", "day", "":
		return StartOfDay(now), nil
	case "week":
		offset := (int(now.Weekday()) + 6) % 7 // weeks start on Monday
		return StartOfDay(now).AddDate(0, 0, -offset), nil
	case "month":
		y, m, _ := now.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), nil
	case "all":
		return time.Unix(0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q (use today, week, month or all)", period)
	}
}
