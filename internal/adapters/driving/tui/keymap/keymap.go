// Package keymap defines keybindings for the curation editor.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the editor.
type KeyMap struct {
	// Quit exits the editor without saving.
	Quit key.Binding

	// Up navigates up in the row list.
	Up key.Binding

	// Down navigates down in the row list.
	Down key.Binding

	// Toggle flips the Vectorize mark on the cursor row.
	Toggle key.Binding

	// Save persists the edited table.
	Save key.Binding

	// Apply saves the table and converts it into chunks.
	Apply key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle vectorize"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply"),
		),
	}
}
