// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/geodist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/geodist/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady      State = "ready"
	StateEstimating State = "estimating"
	StateError      State = "error"
)

// Bar displays run details and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	k       int
	pairs   int
	sort    string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateEstimating:
		return b.styles.Muted.Render(fmt.Sprintf("Estimating with k=%d...", b.k))
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	}
	return fmt.Sprintf("k=%d  %d pairs  sort: %s", b.k, b.pairs, b.sort)
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		hints = append(hints, hintFor(binding))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

func hintFor(b key.Binding) string {
	h := b.Help()
	return h.Key + ": " + h.Desc
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the error message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// SetRun records the neighbourhood size and visible pair count.
func (b *Bar) SetRun(k, pairs int) {
	b.k = k
	b.pairs = pairs
}

// SetSort records the active sort label.
func (b *Bar) SetSort(label string) {
	b.sort = label
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
