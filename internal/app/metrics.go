package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AzretMagometov/plan-expo/internal/analyzer"
	"github.com/AzretMagometov/plan-expo/internal/config"
	"github.com/AzretMagometov/plan-expo/internal/journal"
	"github.com/AzretMagometov/plan-expo/internal/logging"
	"github.com/AzretMagometov/plan-expo/internal/output"
)

var (
	metricsFlagDate   string
	metricsFlagPeriod string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Propagate reflection results into goal metrics",
	Long: `Metrics reads filled reflections and folds their results back into the
goal documents: identity evidence raises the progress counter (capped
at 10), operations completion updates the execution percentage, and
every change is stamped into the goal's history section.

A day already recorded in a goal's history is skipped, so re-runs are
safe. Each run is logged to <logs>/metrics_update_<today>.log.`,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&metricsFlagDate, "date", "", "process one reflection date (YYYY-MM-DD)")
	metricsCmd.Flags().StringVar(&metricsFlagPeriod, "period", "", "process a trailing period: week or month")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	today := cfg.Today()
	dates, err := metricsDates(cfg, today)
	if err != nil {
		return err
	}

	todayStr := today.Format(journal.DateLayout)
	logger, closeLog, err := logging.New(cfg.LogsDir(), "metrics_update_"+todayStr, flagVerbose)
	if err != nil {
		return err
	}
	defer closeLog()

	var (
		processed = []string{}
		skipped   = []string{}
		updated   int
	)
	for _, date := range dates {
		day := date.Format(journal.DateLayout)

		rec, err := journal.ParseFile(journal.DailyPath(cfg.ReflectionsDir(), date))
		if err != nil {
			logger.Warn().Str("date", day).Msg("reflection not found")
			skipped = append(skipped, day)
			continue
		}

		// Goal files are re-read for every date so sequential updates
		// stack instead of clobbering each other.
		goals, err := journal.ActiveGoals(cfg.GoalsDir())
		if err != nil {
			return fmt.Errorf("loading goals: %w", err)
		}

		n, err := applyToGoals(logger, goals, rec, day, todayStr)
		if err != nil {
			return err
		}
		updated += n
		processed = append(processed, day)
		logger.Info().Str("date", day).Int("goals_updated", n).Msg("reflection processed")
	}

	if flagJSON {
		payload := struct {
			Processed    []string `json:"processed"`
			Skipped      []string `json:"skipped"`
			GoalsUpdated int      `json:"goals_updated"`
		}{processed, skipped, updated}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Println()
	fmt.Print(output.Section("Metrics update"))
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Days processed:"), len(processed))
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Days skipped:"), len(skipped))
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Goal updates:"), updated)
	return nil
}

// metricsDates resolves the flags into the list of reflection dates to
// process, newest first. An explicit --date wins over --period.
func metricsDates(cfg *config.Config, today time.Time) ([]time.Time, error) {
	if metricsFlagDate != "" {
		date, err := resolveDate(cfg, metricsFlagDate)
		if err != nil {
			return nil, err
		}
		return []time.Time{date}, nil
	}

	days := 1
	switch metricsFlagPeriod {
	case "":
	case "week":
		days = 7
	case "month":
		days = 30
	default:
		return nil, fmt.Errorf("invalid period %q (want week or month)", metricsFlagPeriod)
	}

	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, -i)
	}
	return dates, nil
}

// applyToGoals folds one reflection into every active goal document,
// writing back only the goals whose text actually changed.
func applyToGoals(logger zerolog.Logger, goals []journal.GoalFile, rec *journal.Record, day, today string) (int, error) {
	updated := 0
	for _, gf := range goals {
		next, res, changed := analyzer.ApplyRecord(gf.Raw, rec, day, today)
		if !changed {
			continue
		}
		if err := os.WriteFile(gf.Path, []byte(next), 0o644); err != nil {
			return updated, fmt.Errorf("writing goal %s: %w", gf.Goal.ID, err)
		}
		updated++
		logger.Info().
			Str("goal", gf.Goal.ID).
			Str("date", day).
			Int("evidence_progress", res.EvidenceProgress).
			Int("operations_percent", res.OperationsPercent).
			Msg("goal metrics updated")
	}
	return updated, nil
}
