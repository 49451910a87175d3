package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Reflection document anchors. The journal format is Russian-language
// markdown; these are the exact headers and labels the daily template
// produces.
const (
	anchorOperations = "Операции:"
	anchorTactics    = "Тактика:"
	anchorEvidence   = "Доказательства идентичности"

	labelObstacles = "Что помешало"
	labelHelpful   = "Что помогло"

	fieldRating      = "Общая оценка"
	fieldOpsPercent  = "Выполнение операций"
	fieldTactPercent = "Выполнение тактики"
	fieldEnergy      = "Энергия"
	fieldMotivation  = "Мотивация"
	fieldFocus       = "Фокус"

	sectionInsights = "Инсайты и наблюдения"
	sectionPlan     = "План на завтра"
)

// Extract parses one reflection document into a Record. Each field is
// extracted independently; a missing anchor leaves that field at its
// empty default. Extraction never fails.
func Extract(text string) *Record {
	lines := tokenize(text)

	rec := &Record{
		OperationsDone: checklistItems(lines, 4, anchorOperations),
		TacticsDone:    checklistItems(lines, 4, anchorTactics),
		EvidenceDone:   checklistItems(lines, 3, anchorEvidence),
		Obstacles:      labeledBullets(lines, labelObstacles),
		HelpfulFactors: labeledBullets(lines, labelHelpful),

		Rating:            intField(lines, fieldRating),
		OperationsPercent: intField(lines, fieldOpsPercent),
		TacticsPercent:    intField(lines, fieldTactPercent),

		Energy:     textField(lines, fieldEnergy),
		Motivation: textField(lines, fieldMotivation),
		Focus:      textField(lines, fieldFocus),

		Insights:     freeSection(lines, sectionInsights),
		PlanTomorrow: freeSection(lines, sectionPlan),
	}
	rec.CriticalEvents = DetectEvents(text)
	return rec
}

// ParseFile reads and extracts one reflection document. The record's
// date is the file stem.
func ParseFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reflection: %w", err)
	}
	rec := Extract(string(data))
	rec.Date = strings.TrimSuffix(filepath.Base(path), ".md")
	return rec, nil
}

// checklistItems returns the checked items under the first header with
// the given depth and title.
func checklistItems(lines []line, depth int, title string) []string {
	idx := findHeader(lines, depth, title)
	if idx < 0 {
		return nil
	}
	return checkedAfter(lines, idx)
}

// labeledBullets returns the bullet items under a bold label line.
func labeledBullets(lines []line, key string) []string {
	idx := findFieldIndex(lines, key)
	if idx < 0 {
		return nil
	}
	return bulletsAfter(lines, idx)
}

// intField parses a bold field as an integer. One placeholder bracket
// layer and a percent suffix are tolerated; anything that still fails
// to parse is treated as unfilled.
func intField(lines []line, key string) *int {
	v, ok := findField(lines, key)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(strings.TrimSuffix(stripPlaceholder(v), "%"))
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// textField returns a bold field's value with one placeholder bracket
// layer stripped.
func textField(lines []line, key string) string {
	v, ok := findField(lines, key)
	if !ok {
		return ""
	}
	return stripPlaceholder(v)
}

// freeSection returns the trimmed free text under a depth-two header.
func freeSection(lines []line, title string) string {
	idx := findHeader(lines, 2, title)
	if idx < 0 {
		return ""
	}
	return sectionAfter(lines, idx)
}
