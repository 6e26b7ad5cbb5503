// Package styles provides reusable lipgloss components for CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss colors and pre-built styles used by the CLI.
type Theme struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Badge     lipgloss.Style
	Box       lipgloss.Style
}

// DefaultTheme returns the hardcoded dark terminal theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Text:    lipgloss.Color("#e6e6e6"),
		Muted:   lipgloss.Color("#6c7086"),
		Accent:  lipgloss.Color("#89b4fa"),
		Error:   lipgloss.Color("#f38ba8"),
		Warning: lipgloss.Color("#f9e2af"),
		Success: lipgloss.Color("#a6e3a1"),
	}
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Highlight = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	t.Badge = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(lipgloss.Color("#313244")).
		Padding(0, 1)
	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)
	return t
}
