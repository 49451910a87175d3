package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AzretMagometov/plan-expo/internal/analyzer"
	"github.com/AzretMagometov/plan-expo/internal/journal"
	"github.com/AzretMagometov/plan-expo/internal/output"
)

var goalsFlagAll bool

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List goals with their current metrics",
	RunE:  runGoals,
}

func init() {
	goalsCmd.Flags().BoolVar(&goalsFlagAll, "all", false, "include non-active goals")
	rootCmd.AddCommand(goalsCmd)
}

// goalRow is one goal's listing entry.
type goalRow struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Status           string `json:"status"`
	Method           string `json:"method,omitempty"`
	EvidenceProgress *int   `json:"evidence_progress,omitempty"`
	ExecutionPercent *int   `json:"execution_percent,omitempty"`
	Habits           int    `json:"habits"`
}

func runGoals(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	goals, err := journal.ListGoals(cfg.GoalsDir())
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}

	rows := []goalRow{}
	for _, gf := range goals {
		if !goalsFlagAll && gf.Goal.Status != journal.StatusActive {
			continue
		}
		row := goalRow{
			ID:     gf.Goal.ID,
			Title:  gf.Goal.Title,
			Status: gf.Goal.Status,
			Method: gf.Goal.Tactics.Method,
			Habits: len(journal.ExtractHabits(gf.Raw)),
		}
		if n, ok := analyzer.EvidenceProgress(gf.Raw); ok {
			row.EvidenceProgress = &n
		}
		if n, ok := analyzer.ExecutionPercent(gf.Raw); ok {
			row.ExecutionPercent = &n
		}
		rows = append(rows, row)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Println()
	fmt.Print(output.Section("Goals"))
	if len(rows) == 0 {
		fmt.Println(output.StyleMuted.Render("  no goals found"))
		return nil
	}

	table := output.NewTable("ID", "Title", "Status", "Method", "Evidence", "Execution", "Habits")
	for _, row := range rows {
		table.AddRow(
			row.ID,
			clipCell(row.Title, 32),
			statusCell(row.Status),
			row.Method,
			formatCounter(row.EvidenceProgress, "/10"),
			formatCounter(row.ExecutionPercent, "%"),
			fmt.Sprintf("%d", row.Habits),
		)
	}
	table.Print()
	return nil
}

// statusCell colors a goal status for the listing.
func statusCell(status string) string {
	switch status {
	case journal.StatusActive:
		return output.StyleSuccess.Render(status)
	case journal.StatusPaused:
		return output.StyleWarning.Render(status)
	case journal.StatusCancelled:
		return output.StyleError.Render(status)
	default:
		return status
	}
}

// formatCounter renders an optional goal metric, "-" when the document
// carries none.
func formatCounter(v *int, suffix string) string {
	if v == nil {
		return output.StyleMuted.Render("-")
	}
	return fmt.Sprintf("%d%s", *v, suffix)
}
