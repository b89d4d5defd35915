package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary    = lipgloss.Color("#8BC34A")
	colorAccent     = lipgloss.Color("#2196F3")
	colorMuted      = lipgloss.Color("#6B7280")
	colorWarning    = lipgloss.Color("#FFC107")
	colorForeground = lipgloss.Color("#F2F2F2")
)

// Styles groups the lipgloss styles used by the board.
type Styles struct {
	Title         lipgloss.Style
	Target        lipgloss.Style
	Shape         lipgloss.Style
	ShapeDisabled lipgloss.Style
	Figure        lipgloss.Style
	FigureActive  lipgloss.Style
	Sum           lipgloss.Style
	Win           lipgloss.Style
	Status        lipgloss.Style
	Prompt        lipgloss.Style
}

// DefaultStyles returns the board's color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		Target: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning),
		Shape: lipgloss.NewStyle().
			Foreground(colorForeground).
			Padding(0, 1),
		ShapeDisabled: lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true).
			Padding(0, 1),
		Figure: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),
		FigureActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorAccent).
			Bold(true).
			Padding(0, 1),
		Sum: lipgloss.NewStyle().
			Bold(true),
		Win: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		Status: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),
		Prompt: lipgloss.NewStyle().
			Foreground(colorAccent),
	}
}
