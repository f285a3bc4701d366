package ui

import "github.com/charmbracelet/lipgloss"

// Common colors and styles for the UI widgets.
// Colors adapt to light and dark terminal backgrounds.
var (
	Yellow  = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
	Red     = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	Green   = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	Plain   = lipgloss.AdaptiveColor{Light: "0", Dark: "7"}
	Magenta = lipgloss.AdaptiveColor{Light: "5", Dark: "13"}
	Gray    = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
)

// NewStyle returns a new empty lipgloss style.
func NewStyle() lipgloss.Style {
	return lipgloss.NewStyle()
}

var (
	_titleStyle         = NewStyle().Foreground(Green).Bold(true)
	_descriptionStyle   = NewStyle().Foreground(Gray).Faint(true)
	_acceptedTitleStyle = NewStyle().Foreground(Plain)
)
