package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/amonks/agency/task"
)

var (
	statusNewStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	statusInProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusDoneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusOverdueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	priorityStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// ColorEnabled reports whether stdout should receive ANSI colour.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// StatusStyle returns the colour for a status.
func StatusStyle(status task.Status) lipgloss.Style {
	switch status {
	case task.StatusNew:
		return statusNewStyle
	case task.StatusInProgress:
		return statusInProgressStyle
	case task.StatusDone:
		return statusDoneStyle
	case task.StatusOverdue:
		return statusOverdueStyle
	default:
		return lipgloss.NewStyle()
	}
}

// FormatStatus renders the status label, coloured when color is set.
func FormatStatus(status task.Status, template bool, color bool) string {
	label := task.StatusLabel(status, template)
	if !color {
		return label
	}
	return StatusStyle(status).Render(label)
}

// FormatPriority renders the priority marker.
func FormatPriority(high bool, color bool) string {
	if !high {
		return ""
	}
	if !color {
		return "!"
	}
	return priorityStyle.Render("!")
}
