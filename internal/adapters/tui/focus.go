package tui

// Focus is the panel that owns keyboard input.
type Focus int

const (
	FocusTimerButtons Focus = iota
	FocusProjectList
	FocusTimerList
	FocusProjectInput
)

func (f Focus) String() string {
	switch f {
	case FocusTimerButtons:
		return "timer buttons"
	case FocusProjectList:
		return "project list"
	case FocusTimerList:
		return "timer list"
	case FocusProjectInput:
		return "project input"
	default:
		return "unknown"
	}
}

// FocusController tracks the focused panel. ProjectInput is reachable only
// through EnterInput, never by cycling.
type FocusController struct {
	current Focus
}

// NewFocusController starts on the timer buttons.
func NewFocusController() FocusController {
	return FocusController{current: FocusTimerButtons}
}

// Current returns the focused panel.
func (f FocusController) Current() Focus {
	return f.current
}

// Is reports whether panel is focused.
func (f FocusController) Is(panel Focus) bool {
	return f.current == panel
}

// Advance moves to the next panel: TimerButtons, ProjectList, TimerList, then back.
func (f *FocusController) Advance() {
	switch f.current {
	case FocusTimerButtons:
		f.current = FocusProjectList
	case FocusProjectList:
		f.current = FocusTimerList
	case FocusProjectInput:
		f.current = FocusProjectList
	default:
		f.current = FocusTimerButtons
	}
}

// EnterInput forces focus onto the project name input.
func (f *FocusController) EnterInput() {
	f.current = FocusProjectInput
}

// ReturnToList forces focus back onto the project list.
func (f *FocusController) ReturnToList() {
	f.current = FocusProjectList
}
