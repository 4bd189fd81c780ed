package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values for optional configuration parameters.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	DefaultDBPath = "promisetrack.db"

	DefaultGeminiModel      = "gemini-2.0-flash"
	DefaultGeminiTemp       = 0.1
	DefaultGeminiRetries    = 2
	DefaultGeminiRetryDelay = 5

	DefaultScoreThreshold    = 2
	DefaultDeadlineFallback  = 72 * time.Hour
	DefaultFulfillmentWindow = 7 * 24 * time.Hour
	DefaultContextGap        = 2 * time.Hour
	DefaultLookbackDays      = 30
)

// LoadConfig reads configuration from the given YAML file (optional), PT_*
// environment variables, and built-in defaults, then validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about; the
	// secrets have no defaults, so they are bound explicitly.
	for _, key := range []string{
		"telegram.token",
		"telegram.admin_user_id",
		"telegram.operator_user_id",
		"gemini.api_key",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, env and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("gemini.enabled", false)
	v.SetDefault("gemini.model_name", DefaultGeminiModel)
	v.SetDefault("gemini.temperature", DefaultGeminiTemp)
	v.SetDefault("gemini.max_retries", DefaultGeminiRetries)
	v.SetDefault("gemini.retry_delay_seconds", DefaultGeminiRetryDelay)

	v.SetDefault("analyzer.score_threshold", DefaultScoreThreshold)
	v.SetDefault("analyzer.default_deadline", DefaultDeadlineFallback)
	v.SetDefault("analyzer.fulfillment_window", DefaultFulfillmentWindow)
	v.SetDefault("analyzer.context_gap", DefaultContextGap)
	v.SetDefault("analyzer.lookback_days", DefaultLookbackDays)

	v.SetDefault("scheduler.tasks.chat_analysis.enabled", true)
	v.SetDefault("scheduler.tasks.chat_analysis.schedule", "0 8 * * *")
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 4 * * 0")

	v.SetDefault("messages.welcome", "Привіт! Я відстежую обіцянки менеджера у цьому чаті.")
	v.SetDefault("messages.not_authorized", "Ви не маєте доступу до цієї команди.")
	v.SetDefault("messages.analyzing", "Аналізую повідомлення...")
	v.SetDefault("messages.general_error", "Сталася помилка. Спробуйте пізніше.")
	v.SetDefault("messages.no_analysis", "Цей чат ще не аналізувався.")
	v.SetDefault("messages.reset_done", "Дані чату видалено.")
}
