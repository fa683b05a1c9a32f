package tui

import tea "github.com/charmbracelet/bubbletea"

// ActionKind identifies what a confirmation does when accepted.
type ActionKind int

const (
	ActionDeleteProject ActionKind = iota + 1
)

// PendingAction is the deferred work bound to an open confirmation.
type PendingAction struct {
	Kind      ActionKind
	ProjectID uint32
}

// ConfirmOutcome reports how a key was handled by the confirmation.
type ConfirmOutcome int

const (
	// OutcomeNotOpen means no confirmation is open and the key must be routed elsewhere.
	OutcomeNotOpen ConfirmOutcome = iota
	// OutcomeConsumed means the open confirmation took the key.
	OutcomeConsumed
)

// Confirmation is a yes/no gate. While open it takes every key.
type Confirmation struct {
	open        bool
	prompt      string
	action      PendingAction
	yesSelected bool
}

// Open shows a confirmation, replacing any that is pending.
// The No button starts highlighted.
func (c *Confirmation) Open(prompt string, action PendingAction) {
	c.open = true
	c.prompt = prompt
	c.action = action
	c.yesSelected = false
}

// IsOpen reports whether a confirmation is pending.
func (c Confirmation) IsOpen() bool {
	return c.open
}

// Prompt returns the question shown to the user.
func (c Confirmation) Prompt() string {
	return c.prompt
}

// YesSelected reports whether the Yes button is highlighted.
func (c Confirmation) YesSelected() bool {
	return c.yesSelected
}

// Action returns the pending action.
func (c Confirmation) Action() PendingAction {
	return c.action
}

// HandleKey routes a key to the open confirmation. On yes it closes and calls
// onConfirm with the pending action; on no it closes and drops the action.
func (c *Confirmation) HandleKey(msg tea.KeyMsg, onConfirm func(PendingAction)) ConfirmOutcome {
	if !c.open {
		return OutcomeNotOpen
	}

	switch msg.String() {
	case "y", "Y":
		c.accept(onConfirm)
	case "n", "N", "esc":
		c.close()
	case "left", "right", "tab", "shift+tab", "h", "l":
		c.yesSelected = !c.yesSelected
	case "enter":
		if c.yesSelected {
			c.accept(onConfirm)
		} else {
			c.close()
		}
	}
	return OutcomeConsumed
}

func (c *Confirmation) accept(onConfirm func(PendingAction)) {
	action := c.action
	c.close()
	if onConfirm != nil {
		onConfirm(action)
	}
}

func (c *Confirmation) close() {
	*c = Confirmation{}
}
