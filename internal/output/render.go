package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Section renders a section header with an underline.
func Section(title string) string {
	var sb strings.Builder
	sb.WriteString(StyleHeader.Render(title))
	sb.WriteString("\n")
	sb.WriteString(StyleMuted.Render(strings.Repeat("─", lipgloss.Width(title))))
	sb.WriteString("\n")
	return sb.String()
}

// RateBar renders a completion rate (0-100) as a labeled progress bar:
//
//	████████████░░░░░░░░  61.5%
func RateBar(rate float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}

	filled := int(rate / 100 * float64(width))
	if filled > width {
		filled = width
	}

	var color lipgloss.Color
	switch {
	case rate >= 80:
		color = ColorSuccess
	case rate >= 50:
		color = ColorWarning
	default:
		color = ColorError
	}

	barStyle := lipgloss.NewStyle().Foreground(color)
	if noColor {
		barStyle = lipgloss.NewStyle()
	}

	bar := barStyle.Render(strings.Repeat("█", filled)) +
		StyleMuted.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%s  %.1f%%", bar, rate)
}

// StreakFlame renders a current streak count with a flame marker for
// active streaks.
func StreakFlame(current int) string {
	if current <= 0 {
		return StyleMuted.Render("0")
	}
	return StyleSuccess.Render(fmt.Sprintf("%d 🔥", current))
}

// Severity renders an issue severity tag in its color.
func Severity(level string) string {
	switch level {
	case "CRITICAL":
		return StyleCritical.Render(level)
	case "WARNING":
		return StyleWarning.Render(level)
	case "RECOMMENDATION":
		return StyleRecommendation.Render(level)
	default:
		return level
	}
}
