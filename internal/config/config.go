// Package config provides configuration loading and validation for the
// promise-tracking bot. Values come from defaults, an optional config.yaml,
// and PT_* environment variables, and are validated with struct tags.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration for all components: logging,
// Telegram transport, Gemini verification, database, analyzer policy, and
// the task scheduler.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Analyzer  AnalyzerConfig  `mapstructure:"analyzer"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the identities the analyzer cares
// about. The operator is the party whose messages are scored for commitments;
// when unset it defaults to the admin. BotInfo is filled at startup, not from
// the config file.
type TelegramConfig struct {
	Token          string `mapstructure:"token"            validate:"required"`
	AdminUserID    int64  `mapstructure:"admin_user_id"    validate:"required,gt=0"`
	OperatorUserID int64  `mapstructure:"operator_user_id" validate:"omitempty,gt=0"`

	BotInfo *models.User `mapstructure:"-"`
}

// GeminiConfig configures the commitment-verification collaborator. The
// heuristic pipeline works without it; when disabled no external call is
// made.
type GeminiConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	APIKey            string  `mapstructure:"api_key" validate:"required_if=Enabled true"`
	ModelName         string  `mapstructure:"model_name"`
	Temperature       float32 `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelaySeconds int     `mapstructure:"retry_delay_seconds" validate:"min=0,max=300"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AnalyzerConfig exposes the tunable policy constants of the detection
// engine. The default deadline in particular is a policy choice with direct
// impact on false-positive overdue flags, so it is configuration rather than
// a fixed constant.
type AnalyzerConfig struct {
	ScoreThreshold    int           `mapstructure:"score_threshold"    validate:"min=0"`
	DefaultDeadline   time.Duration `mapstructure:"default_deadline"   validate:"min=1h"`
	FulfillmentWindow time.Duration `mapstructure:"fulfillment_window" validate:"min=1h"`
	ContextGap        time.Duration `mapstructure:"context_gap"        validate:"min=1m"`
	LookbackDays      int           `mapstructure:"lookback_days"      validate:"min=1,max=365"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a scheduled task and sets its cron expression.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds the user-facing bot replies.
type MessagesConfig struct {
	Welcome       string `mapstructure:"welcome"`
	NotAuthorized string `mapstructure:"not_authorized"`
	Analyzing     string `mapstructure:"analyzing"`
	GeneralError  string `mapstructure:"general_error"`
	NoAnalysis    string `mapstructure:"no_analysis"`
	ResetDone     string `mapstructure:"reset_done"`
}

// OperatorID returns the user ID treated as the operator ("manager"),
// falling back to the admin when no dedicated operator is configured.
func (c *Config) OperatorID() int64 {
	if c.Telegram.OperatorUserID != 0 {
		return c.Telegram.OperatorUserID
	}
	return c.Telegram.AdminUserID
}
