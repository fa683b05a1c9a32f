package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// EditorMode tells whether key events are applied to the input buffer.
type EditorMode int

const (
	ModeNormal EditorMode = iota
	ModeEditing
)

func (m EditorMode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "normal"
}

// CursorMove is a cursor movement inside the input buffer.
type CursorMove int

const (
	CursorLeft CursorMove = iota
	CursorRight
	CursorHome
	CursorEnd
)

// InputEditor is a single-line text buffer with a cursor and a mode flag.
// It does not gate edits on its own mode; callers check Mode first.
type InputEditor struct {
	input textinput.Model
	mode  EditorMode
}

// NewInputEditor creates an empty editor in normal mode.
func NewInputEditor() InputEditor {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Focus()
	return InputEditor{input: ti, mode: ModeNormal}
}

// SetValue replaces the buffer, moves the cursor to the end and leaves edit mode.
func (e *InputEditor) SetValue(text string) {
	e.input.SetValue(text)
	e.input.CursorEnd()
	e.mode = ModeNormal
}

// Value returns the buffer contents.
func (e InputEditor) Value() string {
	return e.input.Value()
}

// Cursor returns the cursor position in runes, within [0, len(value)].
func (e InputEditor) Cursor() int {
	return e.input.Position()
}

// Mode returns the current mode.
func (e InputEditor) Mode() EditorMode {
	return e.mode
}

// SetMode switches between normal and editing mode.
func (e *InputEditor) SetMode(mode EditorMode) {
	e.mode = mode
}

// HandleChar inserts r at the cursor.
func (e *InputEditor) HandleChar(r rune) {
	e.apply(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// HandleBackspace deletes the rune before the cursor.
func (e *InputEditor) HandleBackspace() {
	e.apply(tea.KeyMsg{Type: tea.KeyBackspace})
}

// HandleCursorMove moves the cursor without changing the buffer.
func (e *InputEditor) HandleCursorMove(dir CursorMove) {
	pos := e.input.Position()
	switch dir {
	case CursorLeft:
		if pos > 0 {
			e.input.SetCursor(pos - 1)
		}
	case CursorRight:
		e.input.SetCursor(pos + 1)
	case CursorHome:
		e.input.CursorStart()
	case CursorEnd:
		e.input.CursorEnd()
	}
}

func (e *InputEditor) apply(msg tea.KeyMsg) {
	e.input, _ = e.input.Update(msg)
}

// VisibleWindow returns the scroll offset that keeps the cursor inside a
// field of the given width, and the cursor column relative to that offset.
func (e InputEditor) VisibleWindow(width int) (offset, cursorInWindow int) {
	return visibleWindow(e.Cursor(), width)
}

func visibleWindow(cursor, width int) (offset, cursorInWindow int) {
	if width <= 0 {
		return 0, 0
	}
	offset = cursor - width + 1
	if offset < 0 {
		offset = 0
	}
	return offset, cursor - offset
}

// Visible returns the slice of the buffer shown in a field of the given width.
func (e InputEditor) Visible(width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(e.Value())
	offset, _ := e.VisibleWindow(width)
	if offset > len(runes) {
		offset = len(runes)
	}
	end := offset + width
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[offset:end])
}
