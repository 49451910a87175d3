package analyzer

import (
	"fmt"
	"strings"

	"github.com/AzretMagometov/plan-expo/internal/journal"
)

const commentsHeader = "## Комментарии ИИ-системы"

// Advice collects the generated feedback for one reflection, bucketed
// the way the document section renders it.
type Advice struct {
	Analysis        []string    `json:"analysis"`
	Recommendations []string    `json:"recommendations"`
	Adaptations     []string    `json:"adaptations"`
	Events          []EventNote `json:"critical_events,omitempty"`
}

// EventNote is an escalated critical event with the goal-file action
// it calls for.
type EventNote struct {
	Kind    journal.EventKind `json:"type"`
	Message string            `json:"message"`
	Context string            `json:"context"`
	Action  string            `json:"action"`
}

// adviceRule inspects one record and appends to the advice buckets.
type adviceRule func(rec *journal.Record, adv *Advice)

var adviceRules = []adviceRule{
	criticalEvents,
	operationsAnalysis,
	tacticsAnalysis,
	evidenceAnalysis,
	obstacleAnalysis,
	helpfulFactorsAnalysis,
	lowTierAdvice,
	ratingAdvice,
	adaptations,
}

// BuildAdvice runs all advice rules over a parsed record. Empty
// recommendation and adaptation buckets fall back to stock lines, so
// the rendered section always has content under every heading.
func BuildAdvice(rec *journal.Record) Advice {
	var adv Advice
	for _, rule := range adviceRules {
		rule(rec, &adv)
	}
	if len(adv.Recommendations) == 0 {
		adv.Recommendations = append(adv.Recommendations,
			"Продолжайте отслеживать прогресс и отмечать маленькие победы!")
	}
	if len(adv.Adaptations) == 0 {
		adv.Adaptations = append(adv.Adaptations,
			"План работает хорошо, значительных изменений не требуется.")
	}
	return adv
}

// criticalEvents escalates detected change events into notes and
// per-kind recommendations.
func criticalEvents(rec *journal.Record, adv *Advice) {
	for _, ev := range rec.CriticalEvents {
		switch ev.Kind {
		case journal.EventForced:
			adv.Events = append(adv.Events, EventNote{
				Kind:    ev.Kind,
				Message: "⚠️ Обнаружено критическое событие: " + ev.Keyword,
				Context: ev.Context,
				Action:  `Рекомендуется обновить файл цели с типом изменения FORCED_CHANGE и добавить в секцию "КРИТИЧЕСКИЕ СОБЫТИЯ"`,
			})
			adv.Recommendations = append(adv.Recommendations, fmt.Sprintf(
				"🔴 КРИТИЧНО: Обнаружено вынужденное изменение (%s). "+
					"Необходимо обновить цель: изменить статус на 'paused' или 'cancelled' с подстатусом 'forced', "+
					"добавить событие в секцию 'КРИТИЧЕСКИЕ СОБЫТИЯ' и предложить адаптацию цели.",
				ev.Keyword))
		case journal.EventVoluntary:
			adv.Events = append(adv.Events, EventNote{
				Kind:    ev.Kind,
				Message: "💭 Обнаружено переосмысление: " + ev.Keyword,
				Context: ev.Context,
				Action:  "Рекомендуется обновить файл цели с типом изменения VOLUNTARY_CHANGE",
			})
			adv.Recommendations = append(adv.Recommendations, fmt.Sprintf(
				"💡 Обнаружено переосмысление приоритетов (%s). "+
					"Рекомендуется обновить цель с типом изменения VOLUNTARY_CHANGE или создать новую цель.",
				ev.Keyword))
		}
	}
}

// operationsAnalysis grades the day's operations work, preferring the
// recorded percentage over a bare count.
func operationsAnalysis(rec *journal.Record, adv *Advice) {
	if rec.OperationsPercent != nil {
		p := *rec.OperationsPercent
		switch {
		case p >= 80:
			adv.Analysis = append(adv.Analysis,
				fmt.Sprintf("✅ Отличное выполнение операций (%d%%)! Вы на правильном пути.", p))
		case p >= 60:
			adv.Analysis = append(adv.Analysis,
				fmt.Sprintf("⚠️  Хорошее выполнение операций (%d%%), но есть потенциал для улучшения.", p))
		default:
			adv.Analysis = append(adv.Analysis,
				fmt.Sprintf("❌ Низкое выполнение операций (%d%%). Нужно разобраться в причинах.", p))
		}
		return
	}
	if n := len(rec.OperationsDone); n > 0 {
		adv.Analysis = append(adv.Analysis, fmt.Sprintf("Выполнено %d операционных действий.", n))
	} else {
		adv.Analysis = append(adv.Analysis,
			"⚠️  Не выполнено ни одного операционного действия. Это может замедлить прогресс.")
	}
}

func tacticsAnalysis(rec *journal.Record, adv *Advice) {
	if rec.TacticsPercent == nil {
		return
	}
	p := *rec.TacticsPercent
	switch {
	case p >= 80:
		adv.Analysis = append(adv.Analysis,
			fmt.Sprintf("✅ Отличный прогресс по тактическим задачам (%d)!", p))
	case p >= 50:
		adv.Analysis = append(adv.Analysis,
			fmt.Sprintf("⚠️  Умеренный прогресс по тактике (%d%%).", p))
	default:
		adv.Analysis = append(adv.Analysis,
			fmt.Sprintf("❌ Низкий прогресс по тактике (%d%%). Возможно, задачи слишком сложные.", p))
	}
}

func evidenceAnalysis(rec *journal.Record, adv *Advice) {
	if n := len(rec.EvidenceDone); n > 0 {
		adv.Analysis = append(adv.Analysis,
			fmt.Sprintf("🎯 Отлично! Вы накопили %d доказательств вашей новой идентичности.", n))
	} else {
		adv.Analysis = append(adv.Analysis,
			"💡 Не забудьте отмечать действия, которые подтверждают вашу идентичность.")
	}
}

// obstacleAnalysis counts obstacles and suggests an If-Then plan for
// each one.
func obstacleAnalysis(rec *journal.Record, adv *Advice) {
	if len(rec.Obstacles) == 0 {
		return
	}
	adv.Analysis = append(adv.Analysis,
		fmt.Sprintf("🔍 Выявлено %d препятствий. Важно найти решения.", len(rec.Obstacles)))
	for _, obstacle := range rec.Obstacles {
		adv.Recommendations = append(adv.Recommendations, fmt.Sprintf(
			"Для препятствия '%s...' рассмотрите создание If-Then плана.",
			truncateRunes(obstacle, 50)))
	}
}

func helpfulFactorsAnalysis(rec *journal.Record, adv *Advice) {
	if n := len(rec.HelpfulFactors); n > 0 {
		adv.Analysis = append(adv.Analysis,
			fmt.Sprintf("✨ Выделено %d полезных факторов. Продолжайте их использовать!", n))
	}
}

// lowTierAdvice reacts to low energy, motivation and focus. Untouched
// tier placeholders still contain the separator bar, so they never
// trigger the advice.
func lowTierAdvice(rec *journal.Record, adv *Advice) {
	if lowTier(rec.Energy, "низкая") {
		adv.Recommendations = append(adv.Recommendations,
			"💪 Низкая энергия может влиять на выполнение. Рассмотрите изменение времени выполнения задач или добавление восстановительных практик.")
	}
	if lowTier(rec.Motivation, "низкая") {
		adv.Recommendations = append(adv.Recommendations,
			"🎯 Низкая мотивация? Напомните себе о стратегической идентичности и долгосрочных целях.")
	}
	if lowTier(rec.Focus, "низкий") {
		adv.Recommendations = append(adv.Recommendations,
			"🎯 Низкий фокус? Попробуйте технику Pomodoro или уменьшите количество одновременных задач.")
	}
}

func ratingAdvice(rec *journal.Record, adv *Advice) {
	if rec.Rating == nil {
		return
	}
	switch {
	case *rec.Rating < 5:
		adv.Recommendations = append(adv.Recommendations,
			"📉 Низкая оценка дня. Возможно, стоит упростить план или разбить задачи на меньшие шаги.")
	case *rec.Rating >= 8:
		adv.Recommendations = append(adv.Recommendations,
			"🎉 Высокая оценка дня! Продолжайте в том же духе. Можете даже немного увеличить сложность задач.")
	}
}

func adaptations(rec *journal.Record, adv *Advice) {
	if rec.OperationsPercent != nil && *rec.OperationsPercent < 50 {
		adv.Adaptations = append(adv.Adaptations,
			"💡 Рекомендуется упростить операционные действия или изменить триггеры для лучшего выполнения.")
	}
	if rec.TacticsPercent != nil && *rec.TacticsPercent < 50 {
		adv.Adaptations = append(adv.Adaptations,
			"💡 Тактические задачи могут быть слишком сложными. Рассмотрите разбиение на меньшие шаги.")
	}
}

// lowTier reports whether a tier value matches the given low keyword.
func lowTier(value, keyword string) bool {
	if value == "" || strings.Contains(value, "|") {
		return false
	}
	return strings.Contains(strings.ToLower(value), keyword)
}

// UpsertComments renders the advice as the reflection's feedback
// section and splices it into the document, replacing an earlier run's
// section when present.
func UpsertComments(content string, adv Advice) string {
	return upsertSection(content, renderComments(adv))
}

func renderComments(adv Advice) string {
	var b strings.Builder
	b.WriteString(commentsHeader + "\n\n")
	b.WriteString("*[Автоматически сгенерировано после анализа]*\n\n")

	b.WriteString("### Анализ прогресса:\n")
	for _, line := range adv.Analysis {
		b.WriteString("- " + line + "\n")
	}

	b.WriteString("\n### Рекомендации:\n")
	for _, line := range adv.Recommendations {
		b.WriteString("- " + line + "\n")
	}

	b.WriteString("\n### Адаптации:\n")
	for _, line := range adv.Adaptations {
		b.WriteString("- " + line + "\n")
	}

	if len(adv.Events) > 0 {
		b.WriteString("\n### ⚠️ Критические события:\n")
		for _, e := range adv.Events {
			fmt.Fprintf(&b, "- **%s:** %s\n", e.Kind, e.Message)
			fmt.Fprintf(&b, "  - Контекст: %s...\n", truncateRunes(e.Context, 150))
			fmt.Fprintf(&b, "  - Действие: %s\n", e.Action)
		}
	}
	return b.String()
}

// upsertSection replaces the existing feedback section in place or
// appends a new one. The replacement spans from the section header to
// the next h2 header or the end of the document.
func upsertSection(content, section string) string {
	start := strings.Index(content, commentsHeader)
	if start < 0 {
		return strings.TrimRight(content, " \t\r\n") + "\n\n" + section
	}

	end := len(content)
	if i := strings.Index(content[start:], "\n## "); i >= 0 {
		end = start + i
	} else if strings.HasSuffix(content, "\n") {
		end = len(content) - 1
	}
	return content[:start] + strings.TrimSpace(section) + content[end:]
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
