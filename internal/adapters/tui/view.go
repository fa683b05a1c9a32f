package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/xvierd/tempo-cli/internal/domain"
	"github.com/xvierd/tempo-cli/internal/ports"
)

const timestampLayout = "2006-01-02 15:04:05"

var _ tea.Model = Model{}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	header := m.viewHeader()
	help := m.viewHelp()
	footer := m.viewFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(help) - lipgloss.Height(footer)
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	var body string
	if m.confirm.IsOpen() {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.viewConfirm())
	} else {
		body = m.viewBody(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help, footer)
}

// panel returns a bordered style; the focused panel gets a thick border in the focus color.
func (m Model) panel(focused bool, width, height int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.ColorBorder)).
		Width(max(width-2, 1)).
		Height(max(height-2, 1))
	if focused {
		style = style.
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(m.theme.ColorFocus))
	}
	return style
}

func (m Model) viewHeader() string {
	running := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorRunning))

	name := "No project selected"
	if p, ok := m.projects.Selected(); ok {
		name = p.Name
		if p.IsRunning() {
			name += " ●"
		}
	}

	var buttons []string
	for i, cmd := range m.buttons.Items() {
		label := buttonLabel(cmd)
		if i == m.buttons.Index() {
			label = "[ " + label + " ]"
		} else {
			label = "  " + label + "  "
		}
		buttons = append(buttons, running.UnsetBold().Render(label))
	}
	buttonRow := strings.Join(buttons, "  ")

	clock := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(m.theme.ColorClock)).
		Render(domain.FormatHMS(sinceMidnight(m.clock)))

	inner := m.width - 4
	left := running.Render(name)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(buttonRow) - lipgloss.Width(clock)
	if gap < 2 {
		gap = 2
	}
	leftGap := gap / 2
	line := left + strings.Repeat(" ", leftGap) + buttonRow + strings.Repeat(" ", gap-leftGap) + clock

	return m.panel(m.focus.Is(FocusTimerButtons), m.width, 3).Padding(0, 1).Render(line)
}

func buttonLabel(cmd ports.TimerCommand) string {
	switch cmd {
	case ports.CmdStart:
		return "Start"
	case ports.CmdStop:
		return "Stop"
	default:
		return string(cmd)
	}
}

func (m Model) viewBody(height int) string {
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	const inputHeight = 3
	list := m.viewProjectList(leftWidth, height-inputHeight)
	input := m.viewInput(leftWidth, inputHeight)
	timers := m.viewTimerList(rightWidth, height)

	left := lipgloss.JoinVertical(lipgloss.Left, list, input)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, timers)
}

func (m Model) viewProjectList(width, height int) string {
	title := lipgloss.NewStyle().Bold(true).Render("Projects")
	rows := height - 3
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorSelected))
	runningStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorRunning))

	lines := []string{title}
	items := m.projects.Items()
	start, end := scrollWindow(len(items), m.projects.Index(), rows)
	for i := start; i < end; i++ {
		p := items[i]
		label := fitWidth(p.Name, width-6)
		if p.IsRunning() {
			label += runningStyle.Render(" ●")
		}
		if i == m.projects.Index() {
			lines = append(lines, selectedStyle.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	if len(items) == 0 {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("No projects yet, press n to add one"))
	}

	return m.panel(m.focus.Is(FocusProjectList), width, height).Render(strings.Join(lines, "\n"))
}

func (m Model) viewInput(width, height int) string {
	inner := width - 4
	style := lipgloss.NewStyle()
	if m.editor.Mode() == ModeEditing {
		style = style.Foreground(lipgloss.Color(m.theme.ColorEditing))
	}

	title := "Edit project"
	if m.creating {
		title = "New project"
	}

	visible := m.editor.Visible(inner)
	if m.editor.Mode() == ModeEditing {
		_, col := m.editor.VisibleWindow(inner)
		runes := []rune(visible)
		cursor := " "
		if col < len(runes) {
			cursor = string(runes[col])
		}
		before := string(runes[:min(col, len(runes))])
		after := ""
		if col+1 <= len(runes) {
			after = string(runes[col+1:])
		}
		visible = style.Render(before) + lipgloss.NewStyle().Reverse(true).Render(cursor) + style.Render(after)
	} else {
		visible = style.Render(visible)
	}

	label := lipgloss.NewStyle().Faint(true).Render(title + ": ")
	if lipgloss.Width(label)+lipgloss.Width(visible) > inner {
		label = ""
	}
	return m.panel(m.focus.Is(FocusProjectInput), width, height).Render(label + visible)
}

func (m Model) viewTimerList(width, height int) string {
	focused := m.focus.Is(FocusTimerList)
	if _, ok := m.projects.Selected(); !ok {
		title := lipgloss.NewStyle().Bold(true).Render("TIMER LIST")
		return m.panel(focused, width, height).Render(title)
	}

	title := lipgloss.NewStyle().Bold(true).Render("Timers")
	rangeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorRunning))
	durationStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorClock))

	lines := []string{title}
	items := m.timers.Items()
	start, end := scrollWindow(len(items), m.timers.Index(), (height-3)/3)
	for i := start; i < end; i++ {
		t := items[i]
		marker := "  "
		if i == m.timers.Index() {
			marker = "> "
		}
		endText := ""
		if !t.IsRunning() {
			endText = t.End(m.clock).Format(timestampLayout)
		}
		lines = append(lines,
			marker+rangeStyle.Render(fmt.Sprintf("%s - %s", t.Start().Format(timestampLayout), endText)),
			"  "+durationStyle.Render("Duration: "+domain.FormatHMS(t.Duration(m.clock))),
			"",
		)
	}
	if len(items) == 0 {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("No timers yet"))
	}

	return m.panel(focused, width, height).Render(strings.Join(lines, "\n"))
}

func (m Model) viewConfirm() string {
	selected := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(m.theme.ColorEditing))
	plain := lipgloss.NewStyle()

	yes, no := plain.Render("  Yes  "), selected.Render("[ No ]")
	if m.confirm.YesSelected() {
		yes, no = selected.Render("[ Yes ]"), plain.Render("  No  ")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		m.confirm.Prompt(),
		"",
		yes+"    "+no,
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp)).Render("y/n • ←/→ • enter"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.ColorFocus)).
		Padding(1, 3).
		Render(content)
}

func (m Model) viewHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	manual := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorFocus)).Render("Manual")

	var parts []string
	for _, b := range m.keys.helpFor(m.focus.Current()) {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.ColorBorder)).
		Width(max(m.width-2, 1)).
		Render(manual + "  " + helpStyle.Render(strings.Join(parts, " • ")))
}

func (m Model) viewFooter() string {
	var lines []string

	if m.dailyGoal > 0 {
		today := m.trackedToday()
		ratio := float64(today) / float64(m.dailyGoal)
		if ratio > 1 {
			ratio = 1
		}
		label := fmt.Sprintf(" Today %s / %s", domain.FormatHMS(today), domain.FormatHMS(m.dailyGoal))
		bar := m.progress
		bar.Width = max(m.width-lipgloss.Width(label)-2, 10)
		lines = append(lines, " "+bar.ViewAs(ratio)+label)
	}

	errLine := ""
	if m.lastError != "" {
		errLine = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorError)).Render(" ✗ " + m.lastError)
	}
	lines = append(lines, errLine)

	return strings.Join(lines, "\n")
}

// trackedToday sums time tracked on all projects since local midnight.
func (m Model) trackedToday() time.Duration {
	y, mo, d := m.clock.Date()
	midnight := time.Date(y, mo, d, 0, 0, 0, 0, m.clock.Location())
	var total time.Duration
	for _, p := range m.projects.Items() {
		total += p.DurationSince(midnight, m.clock)
	}
	return total
}

func sinceMidnight(t time.Time) time.Duration {
	y, mo, d := t.Date()
	return t.Sub(time.Date(y, mo, d, 0, 0, 0, 0, t.Location()))
}

// scrollWindow returns the [start, end) rows to show so selected stays visible.
func scrollWindow(total, selected, rows int) (int, int) {
	if rows <= 0 {
		return 0, 0
	}
	if total <= rows {
		return 0, total
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	return start, start + rows
}

// fitWidth cuts s to width terminal cells, ending in an ellipsis when shortened.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
