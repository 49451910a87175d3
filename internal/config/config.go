package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level planexpo configuration. It is loaded once at
// process start and passed down unchanged; components never re-read it.
type Config struct {
	Project Project `mapstructure:"project"`
	Paths   Paths   `mapstructure:"paths"`
	Streaks Streaks `mapstructure:"streaks"`
	Output  Output  `mapstructure:"output"`
}

// Project identifies the journal and its date handling.
type Project struct {
	Root     string `mapstructure:"root"`
	Name     string `mapstructure:"name"`
	Timezone string `mapstructure:"timezone"`
}

// Paths defines the journal directory layout, relative to the root
// unless given as absolute paths.
type Paths struct {
	Goals       string `mapstructure:"goals"`
	Reflections string `mapstructure:"reflections"`
	Dashboards  string `mapstructure:"dashboards"`
	Logs        string `mapstructure:"logs"`
}

// Streaks defines streak analysis parameters.
type Streaks struct {
	LookbackDays int `mapstructure:"lookback_days"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given file (or from
// <root>/config/user_settings.yaml) and returns a Config with all
// defaults applied. A missing settings file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("project.root", DefaultRoot)
	v.SetDefault("project.name", DefaultProjectName)
	v.SetDefault("project.timezone", DefaultTimezone)
	v.SetDefault("paths.goals", DefaultPaths.Goals)
	v.SetDefault("paths.reflections", DefaultPaths.Reflections)
	v.SetDefault("paths.dashboards", DefaultPaths.Dashboards)
	v.SetDefault("paths.logs", DefaultPaths.Logs)
	v.SetDefault("streaks.lookback_days", DefaultStreaks.LookbackDays)
	v.SetDefault("output.color", DefaultOutput.Color)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(filepath.Join(DefaultRoot, "config"))
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, ".yaml"))
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Project.Root = expandPath(cfg.Project.Root)
	if cfg.Project.Root == "" {
		cfg.Project.Root = DefaultRoot
	}
	if cfg.Streaks.LookbackDays <= 0 {
		cfg.Streaks.LookbackDays = DefaultStreaks.LookbackDays
	}

	return &cfg, nil
}

// resolve joins a configured path with the project root. Absolute paths
// pass through unchanged.
func (c *Config) resolve(p string) string {
	p = expandPath(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Project.Root, p)
}

// GoalsDir returns the absolute-or-root-relative goals directory.
func (c *Config) GoalsDir() string { return c.resolve(c.Paths.Goals) }

// ReflectionsDir returns the reflections directory.
func (c *Config) ReflectionsDir() string { return c.resolve(c.Paths.Reflections) }

// DailyDir returns the daily reflections tree under the reflections
// directory.
func (c *Config) DailyDir() string { return filepath.Join(c.ReflectionsDir(), "daily") }

// DashboardsDir returns the dashboards directory.
func (c *Config) DashboardsDir() string { return c.resolve(c.Paths.Dashboards) }

// StreaksDataPath returns the path of the exported streak dataset.
func (c *Config) StreaksDataPath() string {
	return filepath.Join(c.DashboardsDir(), "streaks", "streaks_data.json")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string { return c.resolve(c.Paths.Logs) }

// Location resolves the configured timezone. "Local" (or empty) means
// the system zone.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Project.Timezone
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

// Today returns the current date in the configured timezone, truncated
// to midnight. Falls back to the system zone when the configured zone
// does not resolve.
func (c *Config) Today() time.Time {
	loc, err := c.Location()
	if err != nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}
