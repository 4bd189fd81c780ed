// Package tasks implements the bot's scheduled tasks: the periodic
// chat-analysis sweep and database maintenance.
package tasks

import (
	"log/slog"

	"github.com/obrio-labs/promisetrack/internal/analysis"
	"github.com/obrio-labs/promisetrack/internal/config"
	"github.com/obrio-labs/promisetrack/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Store    database.Store
	Analysis *analysis.Service
	Config   *config.Config
}
