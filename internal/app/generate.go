package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AzretMagometov/plan-expo/internal/config"
	"github.com/AzretMagometov/plan-expo/internal/journal"
	"github.com/AzretMagometov/plan-expo/internal/output"
)

var (
	generateFlagDate  string
	generateFlagForce bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create the daily reflection template",
	Long: `Generate assembles a fresh daily reflection document from the active
goals: their identities, if-then plans, tiny habits, and tactical tasks
become the day's checklists.

The document is written to <reflections>/daily/<year>/<month>/<date>.md.
An existing reflection is never overwritten unless --force is given.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateFlagDate, "date", "", "reflection date (YYYY-MM-DD, default today)")
	generateCmd.Flags().BoolVar(&generateFlagForce, "force", false, "overwrite an existing reflection")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	date, err := resolveDate(cfg, generateFlagDate)
	if err != nil {
		return err
	}

	goals, err := journal.ActiveGoals(cfg.GoalsDir())
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}
	if len(goals) == 0 {
		return fmt.Errorf("no active goals in %s; nothing to plan", cfg.GoalsDir())
	}

	target := journal.DailyPath(cfg.ReflectionsDir(), date)
	if _, err := os.Stat(target); err == nil && !generateFlagForce {
		return fmt.Errorf("reflection already exists: %s (use --force to overwrite)", target)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating reflection directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(journal.DailyTemplate(date, goals)), 0o644); err != nil {
		return fmt.Errorf("writing reflection: %w", err)
	}

	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Created:"), target)
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Active goals:"), len(goals))
	return nil
}

// resolveDate parses a --date flag value in the configured timezone,
// defaulting to today when the flag is empty.
func resolveDate(cfg *config.Config, flag string) (time.Time, error) {
	if flag == "" {
		return cfg.Today(), nil
	}
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, fmt.Errorf("resolving timezone: %w", err)
	}
	date, err := time.ParseInLocation(journal.DateLayout, flag, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", flag)
	}
	return date, nil
}
