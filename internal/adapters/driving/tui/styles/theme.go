// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the curation editor.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2DD4BF"), // Teal
		Foreground: lipgloss.Color("#E7E9DB"), // Off-white
		Muted:      lipgloss.Color("#7B7F8B"), // Grey
		Success:    lipgloss.Color("#84CC16"), // Lime
		Warning:    lipgloss.Color("#FBBF24"), // Amber
		Error:      lipgloss.Color("#F87171"), // Red
		Border:     lipgloss.Color("#3F4451"), // Border grey
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the editor header.
	Title lipgloss.Style

	// Normal style for regular rows.
	Normal lipgloss.Style

	// Muted style for rows not marked for vectorisation.
	Muted lipgloss.Style

	// Selected style for the cursor row.
	Selected lipgloss.Style

	// Marked style for the vectorise marker.
	Marked lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Status style for the bottom status line.
	Status lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme gets the default.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Padding(0, 1),
		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Marked: lipgloss.NewStyle().
			Foreground(theme.Success),
		Error: lipgloss.NewStyle().
			Foreground(theme.Error),
		Status: lipgloss.NewStyle().
			Foreground(theme.Muted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme backing these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
