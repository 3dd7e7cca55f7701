// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Accent highlights titles and the selected row.
	Accent lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Direct marks pairs joined by a neighbour graph edge.
	Direct lipgloss.Color

	// Routed marks pairs reached through intermediate centroids.
	Routed lipgloss.Color

	// Unreachable marks pairs in different graph components.
	Unreachable lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:      lipgloss.Color("#89B4FA"),
		Foreground:  lipgloss.Color("#CDD6F4"),
		Muted:       lipgloss.Color("#6C7086"),
		Direct:      lipgloss.Color("#A6E3A1"),
		Routed:      lipgloss.Color("#F9E2AF"),
		Unreachable: lipgloss.Color("#F38BA8"),
		Error:       lipgloss.Color("#F38BA8"),
		Border:      lipgloss.Color("#45475A"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title       lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Direct      lipgloss.Style
	Routed      lipgloss.Style
	Unreachable lipgloss.Style
	StatusBar   lipgloss.Style
	Border      lipgloss.Style

	// Table styles the pair table.
	Table table.Styles
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.Accent)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(lipgloss.Color("#1E1E2E")).
		Background(theme.Accent).
		Bold(false)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Direct: lipgloss.NewStyle().
			Foreground(theme.Direct),

		Routed: lipgloss.NewStyle().
			Foreground(theme.Routed),

		Unreachable: lipgloss.NewStyle().
			Foreground(theme.Unreachable),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Table: tableStyles,
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
