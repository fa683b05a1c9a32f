package tui

// SelectionList is an ordered list with at most one selected item.
// Navigation wraps at both ends; an empty list never has a selection.
type SelectionList[T any] struct {
	items    []T
	selected int // -1 when nothing is selected
}

// NewSelectionList creates a list with nothing selected.
func NewSelectionList[T any](items []T) SelectionList[T] {
	return SelectionList[T]{items: items, selected: -1}
}

// Next selects the following item, wrapping to the first.
func (l *SelectionList[T]) Next() {
	if len(l.items) == 0 {
		l.selected = -1
		return
	}
	if l.selected < 0 || l.selected >= len(l.items)-1 {
		l.selected = 0
		return
	}
	l.selected++
}

// Previous selects the preceding item, wrapping to the last.
// From no selection it selects the first item.
func (l *SelectionList[T]) Previous() {
	if len(l.items) == 0 {
		l.selected = -1
		return
	}
	switch {
	case l.selected < 0:
		l.selected = 0
	case l.selected == 0:
		l.selected = len(l.items) - 1
	default:
		l.selected--
	}
}

// Selected returns the selected item.
func (l SelectionList[T]) Selected() (T, bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[l.selected], true
}

// Index returns the selected index, or -1.
func (l SelectionList[T]) Index() int {
	return l.selected
}

// Select sets the selection. Out of range indexes are ignored.
func (l *SelectionList[T]) Select(i int) {
	if i >= 0 && i < len(l.items) {
		l.selected = i
	}
}

// ClearSelection removes the selection.
func (l *SelectionList[T]) ClearSelection() {
	l.selected = -1
}

// SetItems replaces the items, keeping the selection index when it still fits.
func (l *SelectionList[T]) SetItems(items []T) {
	l.items = items
	switch {
	case len(items) == 0:
		l.selected = -1
	case l.selected >= len(items):
		l.selected = len(items) - 1
	}
}

// Items returns the underlying items.
func (l SelectionList[T]) Items() []T {
	return l.items
}

// Len returns the number of items.
func (l SelectionList[T]) Len() int {
	return len(l.items)
}
