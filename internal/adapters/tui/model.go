// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/tempo-cli/internal/config"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent every second to refresh clocks and running durations.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the application state machine. It owns the cached project list
// and routes each key to exactly one handler: an open confirmation first,
// then the quit binding, then the focused panel.
type Model struct {
	ctx     context.Context
	store   ports.Store
	command ports.CommandFunc
	keys    keyMap

	focus    FocusController
	buttons  SelectionList[ports.TimerCommand]
	projects SelectionList[domain.Project]
	timers   SelectionList[domain.Timer]
	editor   InputEditor
	confirm  Confirmation

	// creating is set while the input holds the name of a new project.
	creating  bool
	lastError string
	quitting  bool

	theme     config.ThemeConfig
	progress  progress.Model
	dailyGoal time.Duration
	width     int
	height    int
	clock     time.Time
	now       func() time.Time
}

// NewModel creates the state machine over store, loading the current projects.
func NewModel(ctx context.Context, store ports.Store, theme *config.ThemeConfig) Model {
	resolved := resolveTheme(theme)
	buttons := NewSelectionList([]ports.TimerCommand{ports.CmdStart, ports.CmdStop})
	buttons.Select(0)

	m := Model{
		ctx:      ctx,
		store:    store,
		keys:     defaultKeyMap(),
		focus:    NewFocusController(),
		buttons:  buttons,
		projects: NewSelectionList(store.Projects(ctx)),
		timers:   NewSelectionList[domain.Timer](nil),
		editor:   NewInputEditor(),
		theme:    resolved,
		progress: progress.New(
			progress.WithGradient(resolved.GoalGradientStart, resolved.GoalGradientEnd),
			progress.WithoutPercentage(),
		),
		now: time.Now,
	}
	m.clock = m.now()
	return m
}

// SetCommandCallback sets the function run by the Start/Stop buttons.
func (m *Model) SetCommandCallback(callback ports.CommandFunc) {
	m.command = callback
}

// SetDailyGoal sets the target shown by the daily progress bar. Zero hides it.
func (m *Model) SetDailyGoal(goal time.Duration) {
	m.dailyGoal = goal
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.clock = time.Time(msg)
		if m.quitting {
			return m, nil
		}
		return m, tickCmd()

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.lastError = ""

	if m.confirm.HandleKey(msg, m.runAction) == OutcomeConsumed {
		return nil
	}

	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return tea.Quit
	}

	if key.Matches(msg, m.keys.NextPanel) {
		if m.editor.Mode() != ModeEditing {
			m.focus.Advance()
		}
		return nil
	}

	switch m.focus.Current() {
	case FocusTimerButtons:
		m.handleButtonsKey(msg)
	case FocusProjectList:
		m.handleProjectListKey(msg)
	case FocusTimerList:
		m.handleTimerListKey(msg)
	case FocusProjectInput:
		m.handleInputKey(msg)
	}
	return nil
}

func (m *Model) handleButtonsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.buttons.Previous()
	case key.Matches(msg, m.keys.Right):
		m.buttons.Next()
	case key.Matches(msg, m.keys.Enter):
		m.runTimerCommand()
	}
}

func (m *Model) handleProjectListKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.projects.Previous()
		m.selectionChanged()
	case key.Matches(msg, m.keys.Down):
		m.projects.Next()
		m.selectionChanged()
	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.projects.Selected(); ok {
			m.enterEdit(p.Name, false)
		}
	case key.Matches(msg, m.keys.New):
		m.enterEdit("", true)
	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.projects.Selected(); ok {
			m.confirm.Open(
				fmt.Sprintf("Delete project %q?", p.Name),
				PendingAction{Kind: ActionDeleteProject, ProjectID: p.ID},
			)
		}
	}
}

func (m *Model) handleTimerListKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.timers.Previous()
	case key.Matches(msg, m.keys.Down):
		m.timers.Next()
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) {
	if m.editor.Mode() != ModeEditing {
		return
	}

	switch msg.Type {
	case tea.KeyEnter:
		m.commitEdit()
	case tea.KeyEsc:
		m.cancelEdit()
	case tea.KeyBackspace:
		m.editor.HandleBackspace()
	case tea.KeyLeft:
		m.editor.HandleCursorMove(CursorLeft)
	case tea.KeyRight:
		m.editor.HandleCursorMove(CursorRight)
	case tea.KeyHome:
		m.editor.HandleCursorMove(CursorHome)
	case tea.KeyEnd:
		m.editor.HandleCursorMove(CursorEnd)
	case tea.KeySpace:
		m.editor.HandleChar(' ')
	case tea.KeyRunes:
		if msg.Paste {
			return
		}
		for _, r := range msg.Runes {
			m.editor.HandleChar(r)
		}
	}
}

// selectionChanged mirrors the newly selected project into the editor
// and resets the timer list.
func (m *Model) selectionChanged() {
	p, ok := m.projects.Selected()
	if !ok {
		m.editor.SetValue("")
		m.timers = NewSelectionList[domain.Timer](nil)
		return
	}
	m.editor.SetValue(p.Name)
	m.timers = NewSelectionList(p.Timers)
}

func (m *Model) enterEdit(value string, creating bool) {
	m.creating = creating
	m.focus.EnterInput()
	m.editor.SetValue(value)
	m.editor.SetMode(ModeEditing)
}

func (m *Model) commitEdit() {
	name, err := domain.ValidateProjectName(m.editor.Value())
	if err != nil {
		m.lastError = err.Error()
		return
	}

	if m.creating {
		p, err := m.store.AddProject(m.ctx, name)
		if err != nil {
			m.lastError = err.Error()
		}
		m.reload(p.ID, true)
	} else if p, ok := m.projects.Selected(); ok {
		edited := p.Clone()
		edited.Name = name
		if err := m.store.EditProject(m.ctx, edited); err != nil {
			m.lastError = err.Error()
		}
		m.reload(p.ID, true)
	}

	m.finishEdit()
}

func (m *Model) cancelEdit() {
	m.finishEdit()
}

// finishEdit leaves edit mode and mirrors the selected project again.
func (m *Model) finishEdit() {
	m.creating = false
	name := ""
	if p, ok := m.projects.Selected(); ok {
		name = p.Name
	}
	m.editor.SetValue(name)
	m.focus.ReturnToList()
}

// runAction executes an accepted confirmation.
func (m *Model) runAction(action PendingAction) {
	switch action.Kind {
	case ActionDeleteProject:
		if err := m.store.DeleteProject(m.ctx, action.ProjectID); err != nil {
			m.lastError = err.Error()
		}
		m.reload(0, false)
		m.selectionChanged()
	}
}

func (m *Model) runTimerCommand() {
	cmd, _ := m.buttons.Selected()
	p, ok := m.projects.Selected()
	if !ok {
		m.lastError = "select a project first"
		return
	}
	if m.command == nil {
		m.lastError = "timer commands are not available"
		return
	}
	if err := m.command(cmd, p.ID); err != nil {
		m.lastError = err.Error()
	}
	m.reload(p.ID, true)
}

// reload refreshes the cached projects from the store and reselects by id.
func (m *Model) reload(selectID uint32, reselect bool) {
	m.projects.SetItems(m.store.Projects(m.ctx))
	m.projects.ClearSelection()
	if reselect {
		m.projects.Select(domain.FindProject(m.projects.Items(), selectID))
	}

	if p, ok := m.projects.Selected(); ok {
		m.timers.SetItems(p.Timers)
	} else {
		m.timers = NewSelectionList[domain.Timer](nil)
	}
}

// Focus returns the focused panel.
func (m Model) Focus() Focus {
	return m.focus.Current()
}

// Projects returns the cached project list.
func (m Model) Projects() []domain.Project {
	return m.projects.Items()
}

// SelectedProjectIndex returns the selected project index, or -1.
func (m Model) SelectedProjectIndex() int {
	return m.projects.Index()
}

// SelectedProject returns the selected project.
func (m Model) SelectedProject() (domain.Project, bool) {
	return m.projects.Selected()
}

// SelectedTimers returns the timers of the selected project.
func (m Model) SelectedTimers() []domain.Timer {
	return m.timers.Items()
}

// SelectedTimerIndex returns the selected timer index, or -1.
func (m Model) SelectedTimerIndex() int {
	return m.timers.Index()
}

// SelectedButton returns the highlighted timer button.
func (m Model) SelectedButton() ports.TimerCommand {
	cmd, _ := m.buttons.Selected()
	return cmd
}

// EditorValue returns the input buffer.
func (m Model) EditorValue() string {
	return m.editor.Value()
}

// EditorCursor returns the input cursor position.
func (m Model) EditorCursor() int {
	return m.editor.Cursor()
}

// EditorMode returns the input mode.
func (m Model) EditorMode() EditorMode {
	return m.editor.Mode()
}

// ConfirmOpen reports whether a confirmation is pending.
func (m Model) ConfirmOpen() bool {
	return m.confirm.IsOpen()
}

// ConfirmPrompt returns the pending confirmation question.
func (m Model) ConfirmPrompt() string {
	return m.confirm.Prompt()
}

// LastError returns the message of the last failed operation.
func (m Model) LastError() string {
	return m.lastError
}

// ShouldQuit reports whether the user asked to exit.
func (m Model) ShouldQuit() bool {
	return m.quitting
}
