// Command planexpo is the command-line interface for a markdown
// goal-tracking journal: it generates daily reflection templates,
// analyzes filled reflections, tracks habit streaks, propagates
// results into goal metrics, and validates the journal's structure.
package main

import "github.com/AzretMagometov/plan-expo/internal/app"

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	app.SetVersion(version)
	app.Execute()
}
