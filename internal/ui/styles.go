// Package ui renders watch events and outer-flow feedback to the terminal.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("214")
	colorRed    = lipgloss.Color("196")
	colorBlue   = lipgloss.Color("39")
	colorCyan   = lipgloss.Color("45")
	colorGray   = lipgloss.Color("245")
)

// Styles defines the visual styles for run output.
type Styles struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Active  lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	URL     lipgloss.Style
}

// DefaultStyles returns the standard style set.
func DefaultStyles() Styles {
	return Styles{
		Success: lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		Active:  lipgloss.NewStyle().Foreground(colorCyan),
		Muted:   lipgloss.NewStyle().Foreground(colorGray),
		Bold:    lipgloss.NewStyle().Bold(true),
		URL:     lipgloss.NewStyle().Foreground(colorBlue).Underline(true),
	}
}
