// Package app contains the Cobra command tree for planexpo.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AzretMagometov/plan-expo/internal/config"
	"github.com/AzretMagometov/plan-expo/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagConfig  string
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "planexpo",
	Short: "Analytics for a markdown goal-tracking journal",
	Long: `planexpo works on a personal goal journal kept in markdown: goal
documents with strategic, tactical and operational levels, and daily
reflection files. It generates the daily template, extracts structured
records from filled reflections, tracks habit streaks, folds daily results
back into goal metrics, and validates the document tree.

Run 'planexpo' with no arguments to see the subcommand summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("planexpo", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  generate  Write the daily reflection template from active goals")
		fmt.Println("  analyze   Parse a filled reflection and append feedback")
		fmt.Println("  streaks   Track habit streaks over the reflection history")
		fmt.Println("  metrics   Fold reflection results into goal metrics")
		fmt.Println("  goals     Show the goal inventory")
		fmt.Println("  validate  Check the document tree structure")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: <root>/config/user_settings.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// loadConfig loads the journal configuration and applies the color
// policy before any command renders output.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor || !cfg.Output.Color || !output.StdoutIsTerminal() {
		output.SetNoColor(true)
	}
	return cfg, nil
}
