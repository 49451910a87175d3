package journal

import (
	"fmt"
	"strings"
	"time"
)

// templateDateLayout is the human-readable date in the reflection
// header, distinct from the file-stem layout.
const templateDateLayout = "02.01.2006"

// DailyTemplate renders the reflection skeleton for one day from the
// active goals: the day plan assembled from their habit plans and key
// results, execution checklists, the evidence inventory, and the scalar
// placeholders the extractor later treats as absent.
func DailyTemplate(date time.Time, goals []GoalFile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Ежедневная рефлексия: %s\n\n", date.Format(templateDateLayout))
	b.WriteString("## Активные цели\n\n")

	for _, gf := range goals {
		g := gf.Goal
		fmt.Fprintf(&b, "- **%s**\n", g.Title)
		if g.Identity != "" {
			fmt.Fprintf(&b, "  - Идентичность: %s\n", g.Identity)
		}
		if g.Tactics.Objective != "" {
			fmt.Fprintf(&b, "  - Objective: %s\n", g.Tactics.Objective)
		} else if g.Tactics.SMARTGoal != "" {
			fmt.Fprintf(&b, "  - SMART-цель: %s...\n", clipRunes(g.Tactics.SMARTGoal, 100))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n## План на сегодня\n\n### Операционные действия\n\n#### Implementation Intentions:\n")
	writeChecklist(&b, collectPlans(goals, func(g Goal) []string { return g.Operations.IfThen }),
		"(нет активных If-Then планов)")

	b.WriteString("\n#### Tiny Habits:\n")
	writeChecklist(&b, collectPlans(goals, func(g Goal) []string { return g.Operations.TinyHabits }),
		"(нет активных Tiny Habits)")

	b.WriteString("\n### Тактические задачи\n\n")
	for _, gf := range goals {
		g := gf.Goal
		if len(g.Tactics.KeyResults) == 0 {
			continue
		}
		fmt.Fprintf(&b, "**%s:**\n", g.Title)
		for _, kr := range g.Tactics.KeyResults {
			// The key result line carries metrics after a bar; the plan
			// checklist wants only the description.
			fmt.Fprintf(&b, "- [ ] %s\n", strings.TrimSpace(strings.SplitN(kr, "|", 2)[0]))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n## Выполнение\n\n### Что сделано\n\n#### Операции:\n")
	b.WriteString("- [ ] \n\n#### Тактика:\n")
	b.WriteString("- [ ] \n\n### Доказательства идентичности\n\n")
	writeChecklist(&b, collectPlans(goals, func(g Goal) []string { return g.Evidence }),
		"(нет активных доказательств для отслеживания)")

	b.WriteString("\n### Препятствия и решения\n\n**Что помешало:**\n")
	b.WriteString("- \n\n**Что помогло:**\n")
	b.WriteString("- \n\n---\n\n## Оценка дня\n\n")
	b.WriteString("**Общая оценка:** [1-10]\n\n")
	b.WriteString("**Выполнение операций:** [%]\n")
	b.WriteString("**Выполнение тактики:** [%]\n\n")
	b.WriteString("**Энергия:** [высокая | средняя | низкая]\n")
	b.WriteString("**Мотивация:** [высокая | средняя | низкая]\n")
	b.WriteString("**Фокус:** [высокий | средний | низкий]\n\n")
	b.WriteString("---\n\n## Инсайты и наблюдения\n\n")
	b.WriteString("[Свободные заметки о дне, что узнал, что изменилось]\n\n")
	b.WriteString("---\n\n## План на завтра\n\n")
	b.WriteString("[Ключевые действия на следующий день]\n\n")
	b.WriteString("---\n\n## Комментарии ИИ-системы\n\n")
	b.WriteString("*[Автоматически генерируется после анализа заполненной рефлексии]*\n\n")
	b.WriteString("### Анализ прогресса:\n")
	b.WriteString("- \n\n### Рекомендации:\n")
	b.WriteString("- \n\n### Адаптации:\n")
	b.WriteString("- \n")

	return b.String()
}

func writeChecklist(b *strings.Builder, items []string, fallback string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "- [ ] %s\n", fallback)
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- [ ] %s\n", item)
	}
}

func collectPlans(goals []GoalFile, pick func(Goal) []string) []string {
	var all []string
	for _, gf := range goals {
		all = append(all, pick(gf.Goal)...)
	}
	return all
}

func clipRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
