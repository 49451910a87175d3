// Package analyzer computes derived statistics from parsed journal
// documents: habit streaks, goal metric updates, and the rule-based
// advice appended to daily reflections.
package analyzer

import (
	"strings"
	"unicode"

	"github.com/AzretMagometov/plan-expo/internal/journal"
)

// successPercent is the operations percentage from which a day counts
// as globally successful.
const successPercent = 80

// Strategy decides whether a habit counts as completed on one day's
// record. Matching is heuristic; keeping it behind an interface lets a
// stricter matcher replace it without touching the streak arithmetic.
type Strategy interface {
	Completed(habit journal.Habit, rec *journal.Record) bool
}

// KeywordOverlap is the default completion strategy. A habit counts as
// done when at least half of its name's word set appears in one of the
// day's completed operations, or when the day's recorded operations
// percentage reaches successPercent.
type KeywordOverlap struct{}

// Completed reports whether rec shows the habit as done. A nil record
// (no reflection that day) is never a completion.
func (KeywordOverlap) Completed(habit journal.Habit, rec *journal.Record) bool {
	if rec == nil {
		return false
	}

	habitWords := wordSet(habit.Name)
	for _, op := range rec.OperationsDone {
		opWords := wordSet(op)
		matched := 0
		for w := range habitWords {
			if _, ok := opWords[w]; ok {
				matched++
			}
		}
		if matched*2 >= len(habitWords) {
			return true
		}
	}

	return rec.OperationsPercent != nil && *rec.OperationsPercent >= successPercent
}

// wordSet lowercases s and splits it into its unique words. Letters,
// digits and underscore are word runes, so Cyrillic text tokenizes the
// same way as Latin.
func wordSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
