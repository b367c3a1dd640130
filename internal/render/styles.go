package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shelvean/phaseflow/internal/ode"
)

// Shared terminal styles for the CLI and the live view.
var (
	Header = lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		Bold(true).
		MarginBottom(1)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Width(12)

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	PlotPane = lipgloss.NewStyle().
			Padding(1, 2)

	StatsPane = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(40)

	QualityGood = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	QualityWarn = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	QualityBad = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(2)
)

// QualityStyle picks a style matching how a trajectory ended.
func QualityStyle(q ode.Quality) lipgloss.Style {
	switch q {
	case ode.QualityTruncated, ode.QualityDegraded:
		return QualityBad
	case ode.QualityLeftBounds:
		return QualityWarn
	default:
		return QualityGood
	}
}
