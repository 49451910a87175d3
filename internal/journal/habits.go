package journal

import (
	"regexp"
	"strings"
)

// The two behavioral-intention grammars. They are scanned over the
// whole goal text, so plans are picked up wherever they are written.
var (
	ifThenRe      = regexp.MustCompile(`- ЕСЛИ (.+?) → ТО (.+?)(?:\n|$)`)
	tinyHabitRe   = regexp.MustCompile(`- После (.+?) → (.+?)(?:\n|$)`)
	celebrationRe = regexp.MustCompile(` → праздную:.*$`)
)

// ExtractHabits derives the habit catalogue from one goal document.
// Every textual match yields one Habit; duplicates across goals are
// deliberately preserved so each goal tracks its own instance.
func ExtractHabits(goalText string) []Habit {
	var habits []Habit

	for _, m := range ifThenRe.FindAllStringSubmatch(goalText, -1) {
		trigger := strings.TrimSpace(m[1])
		action := strings.TrimSpace(m[2])
		habits = append(habits, Habit{
			Name:    "ЕСЛИ " + trigger + " → ТО " + action,
			Kind:    HabitIfThen,
			Trigger: trigger,
			Action:  action,
		})
	}

	for _, m := range tinyHabitRe.FindAllStringSubmatch(goalText, -1) {
		anchor := strings.TrimSpace(m[1])
		// The celebration clause is a cue, not part of the action.
		action := celebrationRe.ReplaceAllString(strings.TrimSpace(m[2]), "")
		habits = append(habits, Habit{
			Name:    "После " + anchor + " → " + action,
			Kind:    HabitTiny,
			Trigger: anchor,
			Action:  action,
		})
	}

	return habits
}
