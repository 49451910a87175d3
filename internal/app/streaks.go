package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/AzretMagometov/plan-expo/internal/analyzer"
	"github.com/AzretMagometov/plan-expo/internal/journal"
	"github.com/AzretMagometov/plan-expo/internal/output"
)

var streaksFlagDays int

// Console report thresholds: a habit with no current streak and a low
// trailing month lands in the attention list.
const (
	attentionRate  = 60
	attentionLimit = 5
)

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Track habit streaks across daily reflections",
	Long: `Streaks derives the habit catalogue from the active goals (if-then
plans and tiny habits), replays the trailing window of daily
reflections against it, and reports per-habit streaks, completion
rates, and weekday patterns.

The full dataset is also exported as JSON for dashboards.`,
	RunE: runStreaks,
}

func init() {
	streaksCmd.Flags().IntVar(&streaksFlagDays, "days", 0, "analysis window in days (default from config)")
	rootCmd.AddCommand(streaksCmd)
}

// habitStats is one habit's entry in the streak dataset. Embedding
// flattens the statistics alongside the identity fields.
type habitStats struct {
	Name string            `json:"name"`
	Type journal.HabitKind `json:"type"`
	Goal string            `json:"goal"`
	analyzer.StreakStats
}

// streakDataset is the exported streak report.
type streakDataset struct {
	GeneratedAt string       `json:"generated_at"`
	Habits      []habitStats `json:"habits"`
}

func runStreaks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	days := streaksFlagDays
	if days <= 0 {
		days = cfg.Streaks.LookbackDays
	}

	goals, err := journal.ActiveGoals(cfg.GoalsDir())
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}

	window := journal.LoadRange(cfg.ReflectionsDir(), cfg.Today(), days)

	now := time.Now()
	if loc, err := cfg.Location(); err == nil {
		now = now.In(loc)
	}

	var calc analyzer.Calculator
	dataset := streakDataset{
		GeneratedAt: now.Format(time.RFC3339),
		Habits:      []habitStats{},
	}
	for _, gf := range goals {
		for _, habit := range journal.ExtractHabits(gf.Raw) {
			dataset.Habits = append(dataset.Habits, habitStats{
				Name:        habit.Name,
				Type:        habit.Kind,
				Goal:        gf.Goal.Title,
				StreakStats: calc.Calculate(habit, window),
			})
		}
	}

	if err := writeStreakData(cfg.StreaksDataPath(), dataset); err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dataset)
	}
	renderStreaks(cfg.StreaksDataPath(), days, dataset)
	return nil
}

func writeStreakData(path string, dataset streakDataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating streaks directory: %w", err)
	}
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding streak data: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing streak data: %w", err)
	}
	return nil
}

func renderStreaks(path string, days int, dataset streakDataset) {
	fmt.Println()
	fmt.Print(output.Section(fmt.Sprintf("Habit streaks (last %d days)", days)))

	if len(dataset.Habits) == 0 {
		fmt.Println(output.StyleMuted.Render("  no habit plans found in active goals"))
		return
	}

	ranked := make([]habitStats, len(dataset.Habits))
	copy(ranked, dataset.Habits)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CurrentStreak != ranked[j].CurrentStreak {
			return ranked[i].CurrentStreak > ranked[j].CurrentStreak
		}
		return ranked[i].CompletionRate30d > ranked[j].CompletionRate30d
	})

	table := output.NewTable("Habit", "Goal", "Current", "Max", "30 days")
	for _, h := range ranked {
		table.AddRow(
			clipCell(h.Name, 42),
			clipCell(h.Goal, 20),
			output.StreakFlame(h.CurrentStreak),
			fmt.Sprintf("%d", h.MaxStreak),
			output.RateBar(h.CompletionRate30d, 14),
		)
	}
	table.Print()

	var attention []habitStats
	for _, h := range ranked {
		if h.CurrentStreak == 0 && h.CompletionRate30d < attentionRate {
			attention = append(attention, h)
		}
	}
	if len(attention) > attentionLimit {
		attention = attention[:attentionLimit]
	}
	if len(attention) > 0 {
		fmt.Println()
		fmt.Print(output.Section("Needs attention"))
		for _, h := range attention {
			fmt.Printf(" %s %s\n", output.StyleWarning.Render("!"), clipCell(h.Name, 60))
		}
	}

	fmt.Println()
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Dataset:"), path)
}

// clipCell bounds a table cell to n runes.
func clipCell(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
