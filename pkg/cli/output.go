// Package cli provides terminal output helpers for the voiceguard command.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // accents, matched identities
	Danger  lipgloss.Color // rejections
	Dim     lipgloss.Color // secondary detail
}

// DefaultTheme is the default green-on-dark theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Danger:  lipgloss.Color("#ff5f5f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Accept lipgloss.Style
	Reject lipgloss.Style
	Label  lipgloss.Style
	Detail lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Accept: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Reject: lipgloss.NewStyle().Bold(true).Foreground(t.Danger),
		Label:  lipgloss.NewStyle().Bold(true),
		Detail: lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// Print helpers for terminal output

// PrintSuccess prints a success message with checkmark
func PrintSuccess(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...any) {
	fmt.Printf("ℹ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...any) {
	fmt.Printf("⚠ "+format+"\n", args...)
}
