package ui

import "github.com/charmbracelet/lipgloss"

var mutedColor = lipgloss.Color("#6B7280")

var helpStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Italic(true)
