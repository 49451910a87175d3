// Package config provides configuration loading and defaults for planexpo.
package config

// DefaultRoot is the default journal root. Commands are expected to run
// from inside the journal directory unless project.root says otherwise.
const DefaultRoot = "."

// DefaultProjectName labels reports and generated documents.
const DefaultProjectName = "My Plan Expo"

// DefaultTimezone resolves date boundaries. "Local" uses the system zone;
// any IANA name ("Europe/Moscow", "UTC") is accepted.
const DefaultTimezone = "Local"

// DefaultConfigFile is the settings file looked up under <root>/config/.
const DefaultConfigFile = "user_settings.yaml"

// DefaultPaths holds the journal directory layout relative to the root.
var DefaultPaths = Paths{
	Goals:       "user_data/goals",
	Reflections: "user_data/reflections",
	Dashboards:  "user_data/dashboards",
	Logs:        "user_data/logs",
}

// DefaultStreaks holds the default streak analysis parameters.
var DefaultStreaks = Streaks{
	LookbackDays: 90,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}
