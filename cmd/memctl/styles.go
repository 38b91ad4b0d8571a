package main

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4B4B"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// styled renders text with s unless colors are disabled. lipgloss already
// drops escape codes when stdout is not a terminal.
func styled(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}
