package app

import (
	"testing"
	"time"

	"github.com/agentstation/helpman/pkg/constants"
)

// TestLoadConfig verifies basic config loading and defaults.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	if config.OutputDir == "" {
		t.Error("OutputDir not set to default")
	}
	if config.Section < constants.MinManSection || config.Section > constants.MaxManSection {
		t.Errorf("Section = %d, want a value in 1-8", config.Section)
	}
	if config.Timeout <= 0 {
		t.Errorf("Timeout = %v, want a positive duration", config.Timeout)
	}
	if config.MaxDepth <= 0 {
		t.Errorf("MaxDepth = %d, want positive", config.MaxDepth)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("SECTION", "8")
	t.Setenv("OUTPUT_DIR", "/tmp/man")
	t.Setenv("TITLE", "Ops Commands")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Section != 8 {
		t.Errorf("Section = %d, want 8", config.Section)
	}
	if config.OutputDir != "/tmp/man" {
		t.Errorf("OutputDir = %s, want /tmp/man", config.OutputDir)
	}
	if config.Title != "Ops Commands" {
		t.Errorf("Title = %s, want Ops Commands", config.Title)
	}
}

// TestConfig_TimeoutParsing verifies time duration parsing from environment.
func TestConfig_TimeoutParsing(t *testing.T) {
	t.Setenv("TIMEOUT", "12s")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Timeout != 12*time.Second {
		t.Errorf("Timeout = %v, want 12s", config.Timeout)
	}
}

// TestConfig_InvalidValuesFallBack verifies out-of-range values are replaced.
func TestConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_DEPTH", "-3")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.MaxDepth != constants.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want default %d", config.MaxDepth, constants.DefaultMaxDepth)
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "error")

	if !config.Verbose {
		t.Error("Verbose not updated from flag")
	}
	if config.Quiet {
		t.Error("Quiet should remain false")
	}
	if !config.NoColor {
		t.Error("NoColor not updated from flag")
	}
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error", config.LogLevel)
	}

	// An empty log level leaves the loaded value alone.
	config.UpdateFromFlags(false, true, false, "")
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error after empty flag", config.LogLevel)
	}
}
