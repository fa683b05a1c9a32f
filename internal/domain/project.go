// Package domain contains the core business entities for Tempo.
// These entities represent the fundamental concepts of the time tracking system
// and are independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrEmptyProjectName    = errors.New("project name cannot be empty")
	ErrTimerAlreadyRunning = errors.New("timer already running")
	ErrNoRunningTimer      = errors.New("no running timer")
)

// PersistError reports a failed write of the project collection.
// In-memory state is not rolled back when it is returned.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Project is a named bucket of tracked time.
type Project struct {
	ID     uint32  `json:"id"`
	Name   string  `json:"name"`
	Timers []Timer `json:"timers"`
}

// NewProject creates a project with the given id and a trimmed name.
func NewProject(id uint32, name string) (*Project, error) {
	name, err := ValidateProjectName(name)
	if err != nil {
		return nil, err
	}
	return &Project{
		ID:     id,
		Name:   name,
		Timers: []Timer{},
	}, nil
}

// ValidateProjectName trims the name and rejects blank values.
func ValidateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyProjectName
	}
	return name, nil
}

// Clone returns a deep copy so callers can mutate it without touching the store.
func (p Project) Clone() Project {
	timers := make([]Timer, len(p.Timers))
	for i, t := range p.Timers {
		timers[i] = t.clone()
	}
	p.Timers = timers
	return p
}

// RunningTimer returns the index of the running timer, or -1.
func (p *Project) RunningTimer() int {
	for i := range p.Timers {
		if p.Timers[i].IsRunning() {
			return i
		}
	}
	return -1
}

// IsRunning reports whether the project has a running timer.
func (p *Project) IsRunning() bool {
	return p.RunningTimer() >= 0
}

// StartTimer appends a new running timer. A project holds at most one.
func (p *Project) StartTimer(now time.Time) (*Timer, error) {
	if p.IsRunning() {
		return nil, ErrTimerAlreadyRunning
	}
	var next uint32 = 1
	for _, t := range p.Timers {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	p.Timers = append(p.Timers, Timer{
		ID:        next,
		StartTime: uint64(now.Unix()),
	})
	return &p.Timers[len(p.Timers)-1], nil
}

// StopTimer closes the running timer at now.
func (p *Project) StopTimer(now time.Time) (*Timer, error) {
	i := p.RunningTimer()
	if i < 0 {
		return nil, ErrNoRunningTimer
	}
	end := uint64(now.Unix())
	if end < p.Timers[i].StartTime {
		end = p.Timers[i].StartTime
	}
	p.Timers[i].EndTime = &end
	return &p.Timers[i], nil
}

// TotalDuration sums all timers, counting a running one up to now.
func (p *Project) TotalDuration(now time.Time) time.Duration {
	var total time.Duration
	for _, t := range p.Timers {
		total += t.Duration(now)
	}
	return total
}

// DurationSince sums tracked time that falls after since, clipped at now.
func (p *Project) DurationSince(since, now time.Time) time.Duration {
	var total time.Duration
	for _, t := range p.Timers {
		total += t.Overlap(since, now)
	}
	return total
}

// FindProject returns the index of the project with the given id, or -1.
func FindProject(projects []Project, id uint32) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// CloneProjects deep-copies a project collection. A nil input yields an empty slice.
func CloneProjects(projects []Project) []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}
