package validator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// FixCommand repairs the findings that carry it.
const FixCommand = "planexpo validate --fix"

var (
	statusRe   = regexp.MustCompile(`\*\*Статус:\*\*\s+(active|completed|paused|cancelled)`)
	createdRe  = regexp.MustCompile(`\*\*Дата создания:\*\*\s+\d{4}-\d{2}-\d{2}`)
	updatedRe  = regexp.MustCompile(`\*\*Последнее обновление:\*\*\s+\d{4}-\d{2}-\d{2}`)
	percentRe  = regexp.MustCompile(`(\d+)%`)
	dateNameRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

// requiredGoalSections are the level headers every goal document must
// carry for the extraction and metric passes to work.
var requiredGoalSections = []string{
	"## СТРАТЕГИЧЕСКИЙ УРОВЕНЬ",
	"## ТАКТИЧЕСКИЙ УРОВЕНЬ",
	"## ОПЕРАЦИОННЫЙ УРОВЕНЬ",
	"## ИСТОРИЯ ИЗМЕНЕНИЙ",
}

// recommendedReflectionSections are advisory: extraction tolerates
// their absence, the daily template includes them all.
var recommendedReflectionSections = []string{
	"## УТРО",
	"## ДЕНЬ",
	"## ВЕЧЕР",
	"## ПРОГРЕСС ЗА ДЕНЬ",
	"## РЕФЛЕКСИЯ",
}

// Validate checks every goal document under goalsDir and every
// reflection under dailyDir. With fix enabled, date-named reflections
// sitting directly in dailyDir are relocated into their
// <year>/<month>/ home before the per-file checks run.
func Validate(goalsDir, dailyDir string, fix bool) (*Report, error) {
	rep := &Report{}

	validateGoals(goalsDir, rep)
	if err := validateDailyLayout(dailyDir, rep, fix); err != nil {
		return nil, err
	}
	if err := validateReflections(dailyDir, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func validateGoals(goalsDir string, rep *Report) {
	if _, err := os.Stat(goalsDir); err != nil {
		rep.add(SeverityCritical, fmt.Sprintf("goals directory does not exist: %s", goalsDir), "", "")
		return
	}
	paths, _ := filepath.Glob(filepath.Join(goalsDir, "*.md"))
	for _, p := range paths {
		validateGoalFile(p, rep)
	}
}

func validateGoalFile(path string, rep *Report) {
	raw, err := os.ReadFile(path)
	if err != nil {
		rep.add(SeverityCritical, fmt.Sprintf("reading goal file: %v", err), path, "")
		return
	}
	content := string(raw)

	for _, section := range requiredGoalSections {
		if !strings.Contains(content, section) {
			rep.add(SeverityCritical,
				fmt.Sprintf("missing required section %q", strings.TrimPrefix(section, "## ")),
				path, "")
		}
	}

	if !statusRe.MatchString(content) {
		rep.add(SeverityCritical,
			"missing or invalid status (want: active|completed|paused|cancelled)", path, "")
	}
	if !createdRe.MatchString(content) {
		rep.add(SeverityWarning,
			"missing or malformed creation date (want **Дата создания:** YYYY-MM-DD)", path, "")
	}
	if !updatedRe.MatchString(content) {
		rep.add(SeverityWarning,
			"missing or malformed update stamp (want **Последнее обновление:** YYYY-MM-DD)", path, "")
	}

	for _, m := range percentRe.FindAllStringSubmatch(content, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 100 {
			rep.add(SeverityWarning, fmt.Sprintf("percentage above 100%%: %d%%", n), path, "")
		}
	}
}

// validateDailyLayout flags files dropped directly into dailyDir.
// Date-named files belong under <year>/<month>/ and are critical
// because the range loader never sees them there.
func validateDailyLayout(dailyDir string, rep *Report, fix bool) error {
	if _, err := os.Stat(dailyDir); err != nil {
		rep.add(SeverityCritical, fmt.Sprintf("reflections directory does not exist: %s", dailyDir), "", "")
		return nil
	}

	paths, _ := filepath.Glob(filepath.Join(dailyDir, "*.md"))
	for _, p := range paths {
		stem := strings.TrimSuffix(filepath.Base(p), ".md")
		m := dateNameRe.FindStringSubmatch(stem)
		if m == nil {
			rep.add(SeverityWarning,
				fmt.Sprintf("reflection file name is not YYYY-MM-DD.md: %s", stem), p, "")
			continue
		}

		rep.add(SeverityCritical,
			"reflection sits directly in daily/ instead of daily/<year>/<month>/", p, FixCommand)

		if fix {
			target := filepath.Join(dailyDir, m[1], m[2], filepath.Base(p))
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating reflection directory: %w", err)
			}
			if err := os.Rename(p, target); err != nil {
				return fmt.Errorf("relocating reflection: %w", err)
			}
		}
	}
	return nil
}

func validateReflections(dailyDir string, rep *Report) error {
	if _, err := os.Stat(dailyDir); err != nil {
		return nil // already reported by the layout pass
	}
	return filepath.WalkDir(dailyDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		validateReflectionFile(path, rep)
		return nil
	})
}

func validateReflectionFile(path string, rep *Report) {
	raw, err := os.ReadFile(path)
	if err != nil {
		rep.add(SeverityWarning, fmt.Sprintf("reading reflection file: %v", err), path, "")
		return
	}
	content := string(raw)

	var missing []string
	for _, section := range recommendedReflectionSections {
		if !strings.Contains(content, section) {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		rep.add(SeverityRecommendation,
			fmt.Sprintf("consider adding sections: %s", strings.Join(missing, ", ")), path, "")
	}
}
