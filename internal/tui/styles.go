package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D32F2F")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	fillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0A3622"))
	overdueFill = lipgloss.NewStyle().Foreground(lipgloss.Color("#D32F2F"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

const (
	defaultWidth = 80
	minBarWidth  = 10
	maxBarWidth  = 30
)

// bar draws fraction (0..1) of width cells. Overdue bars are empty and red.
func bar(fraction float64, width int, overdue bool) string {
	filled := int(fraction*float64(width) + 0.5)
	filled = max(0, min(width, filled))

	fill := fillStyle
	if overdue {
		fill = overdueFill
	}

	return fill.Render(strings.Repeat("█", filled)) + emptyStyle.Render(strings.Repeat("░", width-filled))
}

// barWidth scales the bar with the terminal width.
func barWidth(termWidth int) int {
	if termWidth <= 0 {
		termWidth = defaultWidth
	}

	return max(minBarWidth, min(maxBarWidth, termWidth/4))
}
