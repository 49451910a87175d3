package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AzretMagometov/plan-expo/internal/journal"
)

// Patterns rewritten inside goal documents.
var (
	progressRe     = regexp.MustCompile(`\*\*Текущий прогресс:\*\* (\d+)/10`)
	habitsRe       = regexp.MustCompile(`\*\*Выполнение:\*\* (\d+)%`)
	updatedStampRe = regexp.MustCompile(`\*\*Последнее обновление:\*\* \d{4}-\d{2}-\d{2}`)
	historyHeadRe  = regexp.MustCompile(`## ИСТОРИЯ ИЗМЕНЕНИЙ\s*\n`)
)

const (
	evidenceCeiling = 10

	// operationInventory approximates the daily template's operation
	// count when the reflection records no explicit percentage.
	operationInventory = 8

	historyHeader = "## ИСТОРИЯ ИЗМЕНЕНИЙ"
	historyMarker = "Автообновление метрик на основе рефлексии за "
)

// MetricsResult reports what one application changed in a goal
// document. EvidenceAdded counts the record's evidence items even when
// the progress counter was already at its ceiling.
type MetricsResult struct {
	EvidenceAdded     int
	EvidenceProgress  int
	OperationsPercent int
}

// AlreadyApplied reports whether the goal document's history already
// holds an auto-update entry for the given reflection date.
func AlreadyApplied(goalText, day string) bool {
	return strings.Contains(goalText, historyMarker+day)
}

// EvidenceProgress reads the identity evidence counter from a goal
// document. ok is false when the document carries no counter line.
func EvidenceProgress(goalText string) (n int, ok bool) {
	m := progressRe.FindStringSubmatch(goalText)
	if m == nil {
		return 0, false
	}
	n, _ = strconv.Atoi(m[1])
	return n, true
}

// ExecutionPercent reads the habit execution percentage from a goal
// document. ok is false when the document carries no percentage line.
func ExecutionPercent(goalText string) (n int, ok bool) {
	m := habitsRe.FindStringSubmatch(goalText)
	if m == nil {
		return 0, false
	}
	n, _ = strconv.Atoi(m[1])
	return n, true
}

// ApplyRecord folds one day's reflection into a goal document: it bumps
// the identity evidence counter, rewrites the habit execution
// percentage, refreshes the update stamp and prepends an audit entry to
// the change history. day is the reflection date and today the stamp
// date, both YYYY-MM-DD.
//
// The returned bool is false when nothing in the document changed, so
// callers can skip the write. Applying the same reflection date twice
// is a no-op: the history entry doubles as an idempotency marker.
func ApplyRecord(goalText string, rec *journal.Record, day, today string) (string, MetricsResult, bool) {
	var res MetricsResult
	if AlreadyApplied(goalText, day) {
		return goalText, res, false
	}

	content := goalText
	updated := false

	// Identity evidence: bump the cumulative counter, capped at the
	// document's /10 scale.
	res.EvidenceAdded = len(rec.EvidenceDone)
	if m := progressRe.FindStringSubmatch(content); m != nil {
		cur, _ := strconv.Atoi(m[1])
		res.EvidenceProgress = cur
		if res.EvidenceAdded > 0 {
			next := min(evidenceCeiling, cur+res.EvidenceAdded)
			if next != cur {
				content = progressRe.ReplaceAllString(content,
					fmt.Sprintf("**Текущий прогресс:** %d/10", next))
				res.EvidenceProgress = next
				updated = true
			}
		}
	}

	// Habit execution: prefer the recorded percentage, fall back to a
	// count-based estimate against the template's operation inventory.
	res.OperationsPercent = effectivePercent(rec)
	if res.OperationsPercent > 0 {
		replaced := habitsRe.ReplaceAllString(content,
			fmt.Sprintf("**Выполнение:** %d%%", res.OperationsPercent))
		if replaced != content {
			content = replaced
			updated = true
		}
	}

	if !updated {
		return goalText, res, false
	}

	content = updatedStampRe.ReplaceAllString(content, "**Последнее обновление:** "+today)
	return prependHistory(content, historyEntry(day, today, res)), res, true
}

func effectivePercent(rec *journal.Record) int {
	if rec.OperationsPercent != nil {
		return *rec.OperationsPercent
	}
	if n := len(rec.OperationsDone); n > 0 {
		return min(100, n*100/operationInventory)
	}
	return 0
}

func historyEntry(day, today string, res MetricsResult) string {
	return fmt.Sprintf("- %s: [PROGRESS] %s%s\n  - **Детали:** Обновлены метрики: доказательств идентичности +%d, выполнение операций %d%%\n",
		today, historyMarker, day, res.EvidenceAdded, res.OperationsPercent)
}

// prependHistory inserts the entry right under the first history
// header, newest first. A document without the section gets one
// appended at the end.
func prependHistory(content, entry string) string {
	if loc := historyHeadRe.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + "\n" + entry + "\n" + content[loc[1]:]
	}
	return content + "\n" + historyHeader + "\n\n" + entry + "\n"
}
