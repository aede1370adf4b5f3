// Package ui holds the terminal styles for human-facing output. Nothing that a
// shell evaluates or parses is ever styled.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Accent style for command names, paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#7DD3FC"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#7DD3FC")).Bold(true)

	// Error style for problems the user should fix
	Error = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// Symbols used instead of colored status words.
const (
	SymbolOK      = "✓"
	SymbolWarning = "!"
)

// Column pads s to width before styling so that columns stay aligned when
// escape sequences are added.
func Column(style lipgloss.Style, s string, width int) string {
	return style.Width(width).Render(s)
}
