package silog

import "github.com/charmbracelet/lipgloss"

// Style defines the output styling for the logger.
type Style struct {
	Key lipgloss.Style

	KeyValueDelimiter lipgloss.Style          // required
	LevelLabels       ByLevel[lipgloss.Style] // required
	MultilinePrefix   lipgloss.Style          // required
	PrefixDelimiter   lipgloss.Style          // required

	Messages ByLevel[lipgloss.Style]
	Values   map[string]lipgloss.Style
}

// DefaultStyle returns the default style for the logger.
func DefaultStyle() *Style {
	return &Style{
		Key:               lipgloss.NewStyle().Faint(true),
		KeyValueDelimiter: lipgloss.NewStyle().SetString("=").Faint(true),
		MultilinePrefix:   lipgloss.NewStyle().SetString("| ").Faint(true),
		PrefixDelimiter:   lipgloss.NewStyle().SetString(": "),
		LevelLabels: ByLevel[lipgloss.Style]{
			Debug: lipgloss.NewStyle().SetString("DBG"),
			Info:  lipgloss.NewStyle().SetString("INF").Foreground(lipgloss.Color("10")), // green
			Warn:  lipgloss.NewStyle().SetString("WRN").Foreground(lipgloss.Color("11")), // yellow
			Error: lipgloss.NewStyle().SetString("ERR").Foreground(lipgloss.Color("9")),  // red
			Fatal: lipgloss.NewStyle().SetString("FTL").Foreground(lipgloss.Color("9")),  // red
		},
		Messages: ByLevel[lipgloss.Style]{
			Debug: lipgloss.NewStyle().Faint(true),
			Info:  lipgloss.NewStyle().Bold(true),
			Warn:  lipgloss.NewStyle().Bold(true),
			Error: lipgloss.NewStyle().Bold(true),
			Fatal: lipgloss.NewStyle().Bold(true),
		},
		Values: map[string]lipgloss.Style{
			"error": lipgloss.NewStyle().Foreground(lipgloss.Color("9")), // red
		},
	}
}

// PlainStyle returns a style for the logger without any colors.
func PlainStyle() *Style {
	return &Style{
		KeyValueDelimiter: lipgloss.NewStyle().SetString("="),
		MultilinePrefix:   lipgloss.NewStyle().SetString("  | "),
		PrefixDelimiter:   lipgloss.NewStyle().SetString(": "),
		LevelLabels: ByLevel[lipgloss.Style]{
			Debug: lipgloss.NewStyle().SetString("DBG"),
			Info:  lipgloss.NewStyle().SetString("INF"),
			Warn:  lipgloss.NewStyle().SetString("WRN"),
			Error: lipgloss.NewStyle().SetString("ERR"),
			Fatal: lipgloss.NewStyle().SetString("FTL"),
		},
	}
}
