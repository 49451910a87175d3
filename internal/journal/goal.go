package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Goal document anchors.
const (
	titlePrefix = "Цель:"

	fieldStatus   = "Статус"
	fieldIdentity = "Идентичность"
	fieldMethod   = "Метод"

	labelBeliefs      = "Убеждения"
	labelGoalEvidence = "Доказательства идентичности"

	anchorIfThen     = "Implementation Intentions:"
	anchorTinyHabits = "Tiny Habits:"
	anchorObjective  = "Objective (если OKR):"
	anchorKeyResults = "Key Results:"
	anchorSMARTGoal  = "SMART-цель (если SMART):"
)

// GoalFile pairs a parsed goal with its location and raw text. The raw
// text feeds habit extraction and metric rewrites without a second
// read.
type GoalFile struct {
	Path string
	Raw  string
	Goal Goal
}

// ParseGoal extracts the structured fields of one goal document.
// A document without a status line is treated as active; the validator
// reports the omission separately.
func ParseGoal(text, id string) Goal {
	lines := tokenize(text)

	g := Goal{
		ID:     id,
		Status: StatusActive,
	}

	for _, ln := range lines {
		if ln.kind == lineHeader && ln.depth == 1 && strings.HasPrefix(ln.title, titlePrefix) {
			g.Title = strings.TrimSpace(strings.TrimPrefix(ln.title, titlePrefix))
			break
		}
	}

	if v, ok := findField(lines, fieldStatus); ok {
		g.Status = strings.TrimSpace(v)
	}
	g.Identity = textField(lines, fieldIdentity)

	g.Beliefs = labeledBullets(lines, labelBeliefs)
	g.Evidence = labeledBullets(lines, labelGoalEvidence)

	if idx := findHeader(lines, 3, anchorIfThen); idx >= 0 {
		g.Operations.IfThen = bulletsAfter(lines, idx)
	}
	if idx := findHeader(lines, 3, anchorTinyHabits); idx >= 0 {
		g.Operations.TinyHabits = bulletsAfter(lines, idx)
	}

	if v, ok := findField(lines, fieldMethod); ok {
		switch {
		case strings.HasPrefix(v, "OKR"):
			g.Tactics.Method = "OKR"
		case strings.HasPrefix(v, "SMART"):
			g.Tactics.Method = "SMART"
		}
	}
	if idx := findHeader(lines, 3, anchorObjective); idx >= 0 {
		g.Tactics.Objective = blockAfter(lines, idx)
	}
	if idx := findHeader(lines, 3, anchorKeyResults); idx >= 0 {
		g.Tactics.KeyResults = bulletsAfter(lines, idx)
	}
	if idx := findHeader(lines, 3, anchorSMARTGoal); idx >= 0 {
		g.Tactics.SMARTGoal = blockAfter(lines, idx)
	}

	return g
}

// blockAfter joins the raw lines following a header until the next
// header or bold field, trimmed. Objective and SMART blocks end where
// the next labeled part of the document begins.
func blockAfter(lines []line, start int) string {
	var buf []string
	for i := start + 1; i < len(lines); i++ {
		ln := lines[i]
		if ln.kind == lineBoldField || (ln.kind == lineHeader && ln.depth >= 2) {
			break
		}
		buf = append(buf, ln.raw)
	}
	return strings.TrimSpace(strings.Join(buf, "\n"))
}

// ParseGoalFile reads and parses one goal document. The goal's ID is
// the file stem.
func ParseGoalFile(path string) (*GoalFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading goal: %w", err)
	}
	raw := string(data)
	id := strings.TrimSuffix(filepath.Base(path), ".md")
	return &GoalFile{
		Path: path,
		Raw:  raw,
		Goal: ParseGoal(raw, id),
	}, nil
}

// ListGoals parses every goal document in dir, in filename order. A
// missing directory yields an empty catalogue.
func ListGoals(dir string) ([]GoalFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	var goals []GoalFile
	for _, p := range paths {
		gf, err := ParseGoalFile(p)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *gf)
	}
	return goals, nil
}

// ActiveGoals returns the goals in dir whose status is active.
func ActiveGoals(dir string) ([]GoalFile, error) {
	goals, err := ListGoals(dir)
	if err != nil {
		return nil, err
	}
	active := goals[:0]
	for _, gf := range goals {
		if gf.Goal.Status == StatusActive {
			active = append(active, gf)
		}
	}
	return active, nil
}
