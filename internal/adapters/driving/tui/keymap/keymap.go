// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// It satisfies help.KeyMap.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full help view.
	Help key.Binding

	// Up and Down move through the pair table.
	Up   key.Binding
	Down key.Binding

	// Sort cycles the table ordering.
	Sort key.Binding

	// Filter hides or shows unreachable pairs.
	Filter key.Binding

	// MoreNeighbors and FewerNeighbors re-run the estimate with k+1 or k-1.
	MoreNeighbors  key.Binding
	FewerNeighbors key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Filter: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "hide unreachable"),
		),
		MoreNeighbors: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "k+1"),
		),
		FewerNeighbors: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "k-1"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.MoreNeighbors, k.FewerNeighbors, k.Help, k.Quit}
}

// FullHelp returns every binding grouped by column.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Sort, k.Filter},
		{k.MoreNeighbors, k.FewerNeighbors},
		{k.Help, k.Quit},
	}
}
