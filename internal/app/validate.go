package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AzretMagometov/plan-expo/internal/output"
	"github.com/AzretMagometov/plan-expo/internal/validator"
)

var validateFlagFix bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check journal structure and document conventions",
	Long: `Validate checks every goal document for its required sections, status
field, and date stamps, and checks the reflection tree for misplaced
or misnamed files.

With --fix, reflections sitting directly in daily/ are moved into
their daily/<year>/<month>/ slot. The command exits nonzero when any
critical issue remains.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateFlagFix, "fix", false, "repair what can be repaired automatically")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, err := validator.Validate(cfg.GoalsDir(), cfg.DailyDir(), validateFlagFix)
	if err != nil {
		return fmt.Errorf("validating journal: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		renderValidate(report)
	}

	if report.HasCritical() {
		return fmt.Errorf("%d critical issue(s) found", report.Count(validator.SeverityCritical))
	}
	return nil
}

func renderValidate(report *validator.Report) {
	fmt.Println()
	fmt.Print(output.Section("Journal validation"))

	if len(report.Issues) == 0 {
		fmt.Println(output.StyleSuccess.Render("  all checks passed"))
		return
	}

	for _, sev := range []validator.Severity{
		validator.SeverityCritical,
		validator.SeverityWarning,
		validator.SeverityRecommendation,
	} {
		issues := report.BySeverity(sev)
		if len(issues) == 0 {
			continue
		}
		for _, issue := range issues {
			tag := output.Severity(strings.ToUpper(string(issue.Severity)))
			fmt.Printf(" %s  %s\n", tag, issue.Message)
			if issue.File != "" {
				fmt.Printf("    %s\n", output.StyleMuted.Render(issue.File))
			}
			if issue.Fix != "" {
				fmt.Printf("    %s\n", output.StyleMuted.Render("fix: "+issue.Fix))
			}
		}
		fmt.Println()
	}

	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Summary:"),
		fmt.Sprintf("%d critical, %d warnings, %d recommendations",
			report.Count(validator.SeverityCritical),
			report.Count(validator.SeverityWarning),
			report.Count(validator.SeverityRecommendation)))
}
