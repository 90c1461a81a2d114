package cmd

import "github.com/charmbracelet/lipgloss"

// Console styles. lipgloss drops the colors when stdout is not a terminal.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func heading(s string) string { return headingStyle.Render(s) }
