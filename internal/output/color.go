// Package output provides styled terminal rendering helpers for planexpo.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for completed items and healthy streaks.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for critical issues and broken streaks.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for warnings and attention items.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleCritical is used for critical validation issues.
	StyleCritical = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// StyleError is used for negative values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for warning-level issues and caution values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleRecommendation is used for advisory validation issues.
	StyleRecommendation = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleLabel is used for metric labels.
	StyleLabel = lipgloss.NewStyle().Width(26)

	// StyleValue is used for metric values.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Width(12)
)

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleCritical = plain
		StyleError = plain
		StyleWarning = plain
		StyleRecommendation = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(26)
		StyleValue = plain.Width(12)
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
// Color output is disabled automatically when it is not (piped output,
// cron runs).
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
