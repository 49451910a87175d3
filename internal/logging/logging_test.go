package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesLogFile(t *testing.T) {
	dir := t.TempDir()

	logger, closer, err := New(dir, "metrics_update_2025-06-02", false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info().Str("goal", "fitness").Msg("metrics updated")
	closer()

	data, err := os.ReadFile(filepath.Join(dir, "metrics_update_2025-06-02.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"metrics updated"`) {
		t.Errorf("log file missing message, got: %s", data)
	}
	if !strings.Contains(string(data), `"goal":"fitness"`) {
		t.Errorf("log file missing structured field, got: %s", data)
	}
}

func TestNew_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	_, closer, err := New(dir, "run", false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	closer()

	if _, err := os.Stat(filepath.Join(dir, "run.log")); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	dir := t.TempDir()

	logger, closer, err := New(dir, "run", true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Debug().Msg("checking habit overlap")
	closer()

	data, _ := os.ReadFile(filepath.Join(dir, "run.log"))
	if !strings.Contains(string(data), "checking habit overlap") {
		t.Error("expected debug message in verbose log")
	}

	// Without verbose, debug is filtered.
	logger2, closer2, err := New(dir, "quiet", false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger2.Debug().Msg("hidden")
	closer2()

	data, _ = os.ReadFile(filepath.Join(dir, "quiet.log"))
	if strings.Contains(string(data), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
}
