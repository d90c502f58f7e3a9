package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorGreen = lipgloss.Color("10")
	ColorRed   = lipgloss.Color("9")
	ColorGray  = lipgloss.Color("8")
	ColorCyan  = lipgloss.Color("12")
)

var (
	// InputAcceptedStyle frames the input while it evaluates.
	InputAcceptedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorGreen).
				Padding(0, 1)

	// InputErrorStyle frames the input while evaluation fails.
	InputErrorStyle = InputAcceptedStyle.BorderForeground(ColorRed)

	ResultStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true).Padding(0, 2)

	ResultErrorStyle = lipgloss.NewStyle().Foreground(ColorRed).Padding(0, 2)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorGray).Padding(0, 2)

	HistoryStyle = lipgloss.NewStyle().Foreground(ColorGray)

	HeaderStyle = lipgloss.NewStyle().Foreground(ColorCyan)
)
