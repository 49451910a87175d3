package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AzretMagometov/plan-expo/internal/analyzer"
	"github.com/AzretMagometov/plan-expo/internal/journal"
	"github.com/AzretMagometov/plan-expo/internal/output"
)

var (
	analyzeFlagDate string
	analyzeFlagFile string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a daily reflection and write feedback into it",
	Long: `Analyze parses one daily reflection, scans it for critical life-change
signals, generates analysis, recommendations, and adaptation advice,
and writes the result back into the document's feedback section.

Re-running analyze replaces the previous feedback section in place; the
rest of the document is never touched.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlagDate, "date", "", "reflection date (YYYY-MM-DD, default today)")
	analyzeCmd.Flags().StringVar(&analyzeFlagFile, "file", "", "analyze an explicit file instead of a dated one")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := analyzeFlagFile
	if path == "" {
		date, err := resolveDate(cfg, analyzeFlagDate)
		if err != nil {
			return err
		}
		path = journal.DailyPath(cfg.ReflectionsDir(), date)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading reflection: %w", err)
	}
	rec := journal.Extract(string(raw))
	rec.Date = strings.TrimSuffix(filepath.Base(path), ".md")

	adv := analyzer.BuildAdvice(rec)

	updated := analyzer.UpsertComments(string(raw), adv)
	if updated != string(raw) {
		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
			return fmt.Errorf("writing reflection: %w", err)
		}
	}

	if flagJSON {
		return renderAnalyzeJSON(path, rec, adv)
	}
	renderAnalyze(path, rec, adv)
	return nil
}

func renderAnalyzeJSON(path string, rec *journal.Record, adv analyzer.Advice) error {
	payload := struct {
		File   string          `json:"file"`
		Record *journal.Record `json:"record"`
		Advice analyzer.Advice `json:"advice"`
	}{path, rec, adv}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func renderAnalyze(path string, rec *journal.Record, adv analyzer.Advice) {
	fmt.Println()
	fmt.Print(output.Section("Reflection: " + rec.Date))

	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Rating:"), formatScore(rec.Rating, "/10"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Operations:"), formatScore(rec.OperationsPercent, "%"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Tactics:"), formatScore(rec.TacticsPercent, "%"))
	fmt.Printf(" %s %d done\n", output.StyleLabel.Render("Operational actions:"), len(rec.OperationsDone))
	fmt.Printf(" %s %d done\n", output.StyleLabel.Render("Tactical tasks:"), len(rec.TacticsDone))
	fmt.Printf(" %s %d marked\n", output.StyleLabel.Render("Identity evidence:"), len(rec.EvidenceDone))
	if len(rec.Obstacles) > 0 {
		fmt.Printf(" %s %d noted\n", output.StyleLabel.Render("Obstacles:"), len(rec.Obstacles))
	}
	fmt.Println()

	if len(adv.Events) > 0 {
		fmt.Print(output.Section("Critical events"))
		for _, ev := range adv.Events {
			style := output.StyleWarning
			if ev.Kind == journal.EventForced {
				style = output.StyleCritical
			}
			fmt.Printf(" %s  %s\n", style.Render(string(ev.Kind)), ev.Message)
		}
		fmt.Println()
	}

	fmt.Print(output.Section("Analysis"))
	for _, line := range adv.Analysis {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	fmt.Print(output.Section("Recommendations"))
	for _, line := range adv.Recommendations {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Feedback written:"), path)
}

// formatScore renders an optional numeric field, "-" when unfilled.
func formatScore(v *int, suffix string) string {
	if v == nil {
		return output.StyleMuted.Render("-")
	}
	return output.StyleValue.Render(fmt.Sprintf("%d%s", *v, suffix))
}
