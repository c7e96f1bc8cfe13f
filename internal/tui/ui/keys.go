package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains all key bindings for the TUI
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Block switching
	NextBlock key.Binding
	PrevBlock key.Binding

	// Tracker actions
	Start    key.Binding
	Stop     key.Binding
	Continue key.Binding
	Remove   key.Binding
	Collapse key.Binding

	// Editing
	EditName key.Binding
	EditTime key.Binding

	// Input mode
	Confirm key.Binding
	Cancel  key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextBlock: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next block"),
		),
		PrevBlock: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev block"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start entry"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop running"),
		),
		Continue: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "continue as sub-entry"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove entry"),
		),
		Collapse: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "collapse/expand"),
		),
		EditName: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit name"),
		),
		EditTime: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "edit times"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
