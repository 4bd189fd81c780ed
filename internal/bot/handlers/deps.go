// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"log/slog"

	"github.com/obrio-labs/promisetrack/internal/analysis"
	"github.com/obrio-labs/promisetrack/internal/config"
	"github.com/obrio-labs/promisetrack/internal/database"
)

// HandlerDeps contains all dependencies required by command and message
// handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Store    database.Store
	Analysis *analysis.Service
	Config   *config.Config
}
