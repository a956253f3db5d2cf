// Package styles holds the lipgloss styles used for terminal output.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Registry codes and file indexes
	Code = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Label = lipgloss.NewStyle()

	// Bare files have no index
	Bare = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Folder = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60A5FA")) // Blue

	Success = lipgloss.NewStyle().
		Foreground(Secondary)

	WarningText = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Column renders cells left-aligned to width, styled with style.
// Width counts visible characters, so styled text pads correctly.
func Column(style lipgloss.Style, text string, width int) string {
	rendered := style.Render(text)
	if pad := width - lipgloss.Width(rendered); pad > 0 {
		rendered += strings.Repeat(" ", pad)
	}
	return rendered
}

// MaxWidth returns the widest of values
func MaxWidth(values []string) int {
	w := 0
	for _, v := range values {
		if n := lipgloss.Width(v); n > w {
			w = n
		}
	}
	return w
}
