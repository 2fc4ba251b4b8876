package viz

import "github.com/charmbracelet/lipgloss"

var Panel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#444466")).
	Padding(0, 1)

var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#ffffff"))

var MetricValue = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#00ccff")).
	Bold(true)

var MetricLabel = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#888899")).
	Width(14)

var Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
