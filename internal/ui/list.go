package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ListKeyMap defines key bindings for [List].
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
}

// DefaultListKeyMap specifies the default key bindings for [List].
var DefaultListKeyMap = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "go up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "go down"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter", "tab"),
		key.WithHelp("enter/tab", "accept"),
	),
}

// ListStyle defines the styles for [List].
type ListStyle struct {
	Cursor lipgloss.Style

	ItemTitle         lipgloss.Style
	SelectedItemTitle lipgloss.Style
	ItemDescription   lipgloss.Style
}

// DefaultListStyle is the default style for a [List].
var DefaultListStyle = ListStyle{
	Cursor:            NewStyle().Foreground(Yellow).Bold(true).SetString("▶"),
	ItemTitle:         NewStyle().Foreground(Gray),
	SelectedItemTitle: NewStyle().Foreground(Yellow),
	ItemDescription:   NewStyle().Faint(true),
}

// List is a prompt that allows selecting from a fixed list of options.
// Each item has a title, an optional description, and a value.
type List[T any] struct {
	KeyMap ListKeyMap
	Style  ListStyle

	title string
	desc  string
	items []ListItem[T]
	value *T

	selected int
	accepted bool
}

var _ Field = (*List[int])(nil)

// ListItem is an item in a [List].
type ListItem[T any] struct {
	Title       string
	Description string
	Value       T
}

// NewList creates a new [List] with default settings.
func NewList[T any]() *List[T] {
	return &List[T]{
		KeyMap: DefaultListKeyMap,
		Style:  DefaultListStyle,
		value:  new(T),
	}
}

// WithValue sets the destination pointer for the selected item's value.
// When the user selects an item, the value is copied to the pointer.
func (l *List[T]) WithValue(value *T) *List[T] {
	l.value = value
	return l
}

// Value retrieves the selected item's value.
func (l *List[T]) Value() *T {
	return l.value
}

// WithTitle sets the title of the [List].
func (l *List[T]) WithTitle(title string) *List[T] {
	l.title = title
	return l
}

// Title retrieves the title of the [List].
func (l *List[T]) Title() string {
	return l.title
}

// WithDescription sets the description of the [List].
func (l *List[T]) WithDescription(desc string) *List[T] {
	l.desc = desc
	return l
}

// Description retrieves the description of the [List].
func (l *List[T]) Description() string {
	return l.desc
}

// WithItems fills the list with items.
// By default the first of these items will be selected.
func (l *List[T]) WithItems(items ...ListItem[T]) *List[T] {
	l.items = items
	return l
}

// WithSelected sets the index of the selected item.
func (l *List[T]) WithSelected(selected int) *List[T] {
	if selected >= 0 && selected < len(l.items) {
		l.selected = selected
	}
	return l
}

// Err returns nil.
func (l *List[T]) Err() error { return nil }

// Init initializes the [List].
func (l *List[T]) Init() tea.Cmd {
	return nil
}

// Update receives a message from bubbletea
// and updates the internal state of the list.
func (l *List[T]) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, l.KeyMap.Up):
			l.selected--
			if l.selected < 0 {
				l.selected = len(l.items) - 1
			}

		case key.Matches(msg, l.KeyMap.Down):
			l.selected++
			if l.selected >= len(l.items) {
				l.selected = 0
			}

		case key.Matches(msg, l.KeyMap.Accept):
			if l.selected >= 0 && l.selected < len(l.items) {
				*l.value = l.items[l.selected].Value
				l.accepted = true
				return AcceptField
			}
		}
	}

	return nil
}

// Render renders the list to the screen.
func (l *List[T]) Render(w Writer) {
	if l.accepted {
		w.WriteString(l.items[l.selected].Title)
		return
	}

	for i, item := range l.items {
		w.WriteString("\n")

		titleStyle := l.Style.ItemTitle
		if i == l.selected {
			titleStyle = l.Style.SelectedItemTitle
			w.WriteString(l.Style.Cursor.String())
			w.WriteString(" ")
		} else {
			w.WriteString("  ")
		}

		w.WriteString(titleStyle.Render(item.Title))
		if item.Description != "" {
			w.WriteString("  ")
			w.WriteString(l.Style.ItemDescription.Render(item.Description))
		}
	}
}
