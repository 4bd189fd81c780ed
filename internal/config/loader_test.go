package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults applied", func(t *testing.T) {
		path := writeConfigFile(t, `
telegram:
  token: "123:abc"
  admin_user_id: 42
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}

		if cfg.Logger.Level != DefaultLogLevel {
			t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, DefaultLogLevel)
		}
		if cfg.Database.Path != DefaultDBPath {
			t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, DefaultDBPath)
		}
		if cfg.Analyzer.ScoreThreshold != DefaultScoreThreshold {
			t.Errorf("ScoreThreshold = %d, want %d", cfg.Analyzer.ScoreThreshold, DefaultScoreThreshold)
		}
		if cfg.Analyzer.DefaultDeadline != DefaultDeadlineFallback {
			t.Errorf("DefaultDeadline = %v, want %v", cfg.Analyzer.DefaultDeadline, DefaultDeadlineFallback)
		}
		if cfg.Gemini.Enabled {
			t.Error("Gemini.Enabled = true by default, want false")
		}
		if task, ok := cfg.Scheduler.Tasks["chat_analysis"]; !ok || !task.Enabled {
			t.Errorf("chat_analysis task = %+v, want enabled by default", task)
		}
		if cfg.Messages.NoAnalysis == "" {
			t.Error("Messages.NoAnalysis default is empty")
		}
	})

	t.Run("File values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
telegram:
  token: "123:abc"
  admin_user_id: 42
  operator_user_id: 77
logger:
  level: debug
  json: false
analyzer:
  score_threshold: 4
  default_deadline: 48h
  lookback_days: 14
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}

		if cfg.Logger.Level != "debug" || cfg.Logger.JSON {
			t.Errorf("logger config = %q/%v, want debug/false", cfg.Logger.Level, cfg.Logger.JSON)
		}
		if cfg.Analyzer.ScoreThreshold != 4 {
			t.Errorf("ScoreThreshold = %d, want 4", cfg.Analyzer.ScoreThreshold)
		}
		if cfg.Analyzer.DefaultDeadline != 48*time.Hour {
			t.Errorf("DefaultDeadline = %v, want 48h", cfg.Analyzer.DefaultDeadline)
		}
		if cfg.Analyzer.LookbackDays != 14 {
			t.Errorf("LookbackDays = %d, want 14", cfg.Analyzer.LookbackDays)
		}
		if cfg.OperatorID() != 77 {
			t.Errorf("OperatorID() = %d, want 77", cfg.OperatorID())
		}
	})

	t.Run("Operator falls back to admin", func(t *testing.T) {
		path := writeConfigFile(t, `
telegram:
  token: "123:abc"
  admin_user_id: 42
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.OperatorID() != 42 {
			t.Errorf("OperatorID() = %d, want the admin id 42", cfg.OperatorID())
		}
	})

	t.Run("Missing token fails validation", func(t *testing.T) {
		path := writeConfigFile(t, `
telegram:
  admin_user_id: 42
`)

		if _, err := LoadConfig(path); err == nil {
			t.Fatal("LoadConfig accepted config without a bot token")
		}
	})

	t.Run("Gemini key required when enabled", func(t *testing.T) {
		path := writeConfigFile(t, `
telegram:
  token: "123:abc"
  admin_user_id: 42
gemini:
  enabled: true
`)

		if _, err := LoadConfig(path); err == nil {
			t.Fatal("LoadConfig accepted enabled Gemini without an API key")
		}
	})

	t.Run("Secrets from environment only", func(t *testing.T) {
		t.Setenv("PT_TELEGRAM_TOKEN", "456:def")
		t.Setenv("PT_TELEGRAM_ADMIN_USER_ID", "42")
		t.Setenv("PT_GEMINI_API_KEY", "key-from-env")

		path := writeConfigFile(t, `
gemini:
  enabled: true
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.Telegram.Token != "456:def" {
			t.Errorf("Telegram.Token = %q, want the environment value", cfg.Telegram.Token)
		}
		if cfg.Telegram.AdminUserID != 42 {
			t.Errorf("Telegram.AdminUserID = %d, want 42", cfg.Telegram.AdminUserID)
		}
		if cfg.Gemini.APIKey != "key-from-env" {
			t.Errorf("Gemini.APIKey = %q, want the environment value", cfg.Gemini.APIKey)
		}
	})

	t.Run("Environment variable overrides", func(t *testing.T) {
		t.Setenv("PT_LOGGER_LEVEL", "warn")

		path := writeConfigFile(t, `
telegram:
  token: "123:abc"
  admin_user_id: 42
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.Logger.Level != "warn" {
			t.Errorf("Logger.Level = %q, want %q from environment", cfg.Logger.Level, "warn")
		}
	})
}
