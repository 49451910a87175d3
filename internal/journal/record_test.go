package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// filledReflection is a realistic hand-filled daily document in the
// shape the template generator produces.
const filledReflection = `# Ежедневная рефлексия: 02.06.2025

## Активные цели

- **Стать разработчиком**
  - Идентичность: Я дисциплинированный инженер

---

## План на сегодня

### Операционные действия

#### Implementation Intentions:
- [ ] ЕСЛИ устал → ТО делаю перерыв 10 минут

#### Tiny Habits:
- [ ] После кофе → открываю учебник

### Тактические задачи

**Стать разработчиком:**
- [ ] Пройти модуль курса

---

## Выполнение

### Что сделано

#### Операции:
- [x] Утренняя зарядка 10 минут
- [X] Чтение 20 страниц
- [ ] Медитация

#### Тактика:
- [x] Пройти модуль курса

### Доказательства идентичности

- [x] Написал тест первым
- [ ] Отрефакторил модуль

### Препятствия и решения

**Что помешало:**
- Поздно лёг спать
- Много встреч

**Что помогло:**
- Режим без уведомлений

---

## Оценка дня

**Общая оценка:** 7

**Выполнение операций:** 67%
**Выполнение тактики:** [50]

**Энергия:** средняя
**Мотивация:** высокая
**Фокус:** высокий

---

## Инсайты и наблюдения

Лучше работается утром.

---

## План на завтра

Начать со сложной задачи.

---
`

func TestExtract_FilledDocument(t *testing.T) {
	rec := Extract(filledReflection)

	wantOps := []string{"Утренняя зарядка 10 минут", "Чтение 20 страниц"}
	if !reflect.DeepEqual(rec.OperationsDone, wantOps) {
		t.Errorf("OperationsDone = %v, want %v", rec.OperationsDone, wantOps)
	}
	if !reflect.DeepEqual(rec.TacticsDone, []string{"Пройти модуль курса"}) {
		t.Errorf("TacticsDone = %v", rec.TacticsDone)
	}
	if !reflect.DeepEqual(rec.EvidenceDone, []string{"Написал тест первым"}) {
		t.Errorf("EvidenceDone = %v", rec.EvidenceDone)
	}

	wantObstacles := []string{"Поздно лёг спать", "Много встреч"}
	if !reflect.DeepEqual(rec.Obstacles, wantObstacles) {
		t.Errorf("Obstacles = %v, want %v", rec.Obstacles, wantObstacles)
	}
	if !reflect.DeepEqual(rec.HelpfulFactors, []string{"Режим без уведомлений"}) {
		t.Errorf("HelpfulFactors = %v", rec.HelpfulFactors)
	}

	if rec.Rating == nil || *rec.Rating != 7 {
		t.Errorf("Rating = %v, want 7", rec.Rating)
	}
	if rec.OperationsPercent == nil || *rec.OperationsPercent != 67 {
		t.Errorf("OperationsPercent = %v, want 67", rec.OperationsPercent)
	}
	if rec.TacticsPercent == nil || *rec.TacticsPercent != 50 {
		t.Errorf("TacticsPercent = %v, want 50 (bracketed value)", rec.TacticsPercent)
	}

	if rec.Energy != "средняя" || rec.Motivation != "высокая" || rec.Focus != "высокий" {
		t.Errorf("tiers = (%q, %q, %q)", rec.Energy, rec.Motivation, rec.Focus)
	}

	if rec.Insights != "Лучше работается утром." {
		t.Errorf("Insights = %q", rec.Insights)
	}
	if rec.PlanTomorrow != "Начать со сложной задачи." {
		t.Errorf("PlanTomorrow = %q", rec.PlanTomorrow)
	}

	if len(rec.CriticalEvents) != 0 {
		t.Errorf("CriticalEvents = %v, want none", rec.CriticalEvents)
	}
}

func TestExtract_MissingSectionsDefaultEmpty(t *testing.T) {
	rec := Extract("## Оценка дня\n\n**Общая оценка:** 5\n")

	if len(rec.OperationsDone) != 0 || len(rec.TacticsDone) != 0 || len(rec.EvidenceDone) != 0 {
		t.Error("done lists should be empty without their anchors")
	}
	if len(rec.Obstacles) != 0 || len(rec.HelpfulFactors) != 0 {
		t.Error("factor lists should be empty without their labels")
	}
	if rec.OperationsPercent != nil || rec.TacticsPercent != nil {
		t.Error("percents should be absent")
	}
	if rec.Insights != "" || rec.PlanTomorrow != "" {
		t.Error("free sections should be empty")
	}
	if rec.Rating == nil || *rec.Rating != 5 {
		t.Errorf("Rating = %v, want 5", rec.Rating)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	rec := Extract("")
	if rec == nil {
		t.Fatal("Extract returned nil")
	}
	if len(rec.OperationsDone) != 0 || rec.Rating != nil {
		t.Error("empty document should yield empty record")
	}
}

func TestExtract_ChecklistRoundTrip(t *testing.T) {
	// N checked plus M unchecked items yield exactly N done entries.
	for _, tc := range []struct{ checked, unchecked int }{
		{0, 3}, {1, 0}, {4, 2}, {7, 7},
	} {
		var sb strings.Builder
		sb.WriteString("#### Операции:\n")
		for i := 0; i < tc.checked; i++ {
			fmt.Fprintf(&sb, "- [x] Действие %d\n", i+1)
		}
		for i := 0; i < tc.unchecked; i++ {
			fmt.Fprintf(&sb, "- [ ] Пропущено %d\n", i+1)
		}

		rec := Extract(sb.String())
		if len(rec.OperationsDone) != tc.checked {
			t.Errorf("checked=%d unchecked=%d: got %d done entries",
				tc.checked, tc.unchecked, len(rec.OperationsDone))
		}
	}
}

func TestExtract_ChecklistBoundaries(t *testing.T) {
	// Blank lines before the first item are tolerated; a blank line
	// inside the block ends it.
	text := `#### Операции:

- [x] Первое
- [x] Второе

- [x] После разрыва
`
	rec := Extract(text)
	want := []string{"Первое", "Второе"}
	if !reflect.DeepEqual(rec.OperationsDone, want) {
		t.Errorf("OperationsDone = %v, want %v", rec.OperationsDone, want)
	}
}

func TestExtract_EmptyCheckedItemSkipped(t *testing.T) {
	rec := Extract("#### Операции:\n- [x] \n- [x] Зарядка\n")
	if !reflect.DeepEqual(rec.OperationsDone, []string{"Зарядка"}) {
		t.Errorf("OperationsDone = %v", rec.OperationsDone)
	}
}

func TestExtract_PlaceholdersYieldAbsent(t *testing.T) {
	// A freshly generated, unfilled template carries bracket
	// placeholders; they must not parse as values.
	text := `## Оценка дня

**Общая оценка:** [1-10]

**Выполнение операций:** [%]
**Выполнение тактики:** [%]
`
	rec := Extract(text)
	if rec.Rating != nil {
		t.Errorf("Rating = %d, want absent for placeholder", *rec.Rating)
	}
	if rec.OperationsPercent != nil || rec.TacticsPercent != nil {
		t.Error("percent placeholders must yield absent")
	}
}

func TestExtract_ScalarVariants(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  *int
	}{
		{"plain", "**Выполнение операций:** 85", intp(85)},
		{"percent suffix", "**Выполнение операций:** 85%", intp(85)},
		{"bracketed", "**Выполнение операций:** [85]", intp(85)},
		{"bracketed percent", "**Выполнение операций:** [85%]", intp(85)},
		{"zero", "**Выполнение операций:** 0%", intp(0)},
		{"garbage", "**Выполнение операций:** много", nil},
		{"empty", "**Выполнение операций:**", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := Extract(tc.field + "\n")
			switch {
			case tc.want == nil && rec.OperationsPercent != nil:
				t.Errorf("got %d, want absent", *rec.OperationsPercent)
			case tc.want != nil && rec.OperationsPercent == nil:
				t.Errorf("got absent, want %d", *tc.want)
			case tc.want != nil && *rec.OperationsPercent != *tc.want:
				t.Errorf("got %d, want %d", *rec.OperationsPercent, *tc.want)
			}
		})
	}
}

func TestExtract_TierPlaceholderPassesThrough(t *testing.T) {
	// Bracket stripping applies to tier fields too; the unfilled tier
	// placeholder comes back as its inner text.
	rec := Extract("**Энергия:** [высокая | средняя | низкая]\n")
	if rec.Energy != "высокая | средняя | низкая" {
		t.Errorf("Energy = %q", rec.Energy)
	}
}

func TestExtract_FreeSectionStopsAtRuleAndHeader(t *testing.T) {
	text := `## Инсайты и наблюдения

Первая строка.
Вторая строка.

---

## План на завтра

План.

## Комментарии ИИ-системы
`
	rec := Extract(text)
	if rec.Insights != "Первая строка.\nВторая строка." {
		t.Errorf("Insights = %q", rec.Insights)
	}
	if rec.PlanTomorrow != "План." {
		t.Errorf("PlanTomorrow = %q", rec.PlanTomorrow)
	}
}

func TestParseFile_SetsDateFromStem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2025-06-02.md")
	if err := os.WriteFile(path, []byte(filledReflection), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if rec.Date != "2025-06-02" {
		t.Errorf("Date = %q, want 2025-06-02", rec.Date)
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "2025-06-02.md"))
	if err == nil {
		t.Fatal("expected error for missing document")
	}
}

func intp(n int) *int { return &n }
