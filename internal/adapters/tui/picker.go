package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/tempo-cli/internal/config"
	"github.com/xvierd/tempo-cli/internal/domain"
)

// PickerResult holds the outcome of a picker interaction.
type PickerResult struct {
	Project domain.Project
	Aborted bool
}

type pickerModel struct {
	title   string
	list    SelectionList[domain.Project]
	chosen  bool
	aborted bool
	theme   config.ThemeConfig
}

func newPickerModel(title string, projects []domain.Project, theme *config.ThemeConfig) pickerModel {
	list := NewSelectionList(projects)
	list.Next()
	return pickerModel{title: title, list: list, theme: resolveTheme(theme)}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.list.Previous()
		case "down", "j":
			m.list.Next()
		case "enter":
			if _, ok := m.list.Selected(); ok {
				m.chosen = true
				return m, tea.Quit
			}
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.chosen || m.aborted {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorFocus))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorSelected)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	runningStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorRunning))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n\n")

	for i, p := range m.list.Items() {
		suffix := ""
		if p.IsRunning() {
			suffix = runningStyle.Render(" ●")
		}
		if i == m.list.Index() {
			b.WriteString(fmt.Sprintf("  %s%s\n", activeStyle.Render("> "+p.Name), suffix))
		} else {
			b.WriteString(dimStyle.Render("    "+p.Name) + suffix + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ navigate · enter select · esc cancel") + "\n")

	return b.String()
}

// PickProject shows an inline list of projects and returns the chosen one.
func PickProject(title string, projects []domain.Project, theme *config.ThemeConfig) (PickerResult, error) {
	if len(projects) == 0 {
		return PickerResult{Aborted: true}, nil
	}

	final, err := tea.NewProgram(newPickerModel(title, projects, theme)).Run()
	if err != nil {
		return PickerResult{}, fmt.Errorf("failed to run picker: %w", err)
	}

	m := final.(pickerModel)
	if !m.chosen {
		return PickerResult{Aborted: true}, nil
	}
	p, _ := m.list.Selected()
	return PickerResult{Project: p}, nil
}
