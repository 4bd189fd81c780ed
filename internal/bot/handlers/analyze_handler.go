package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/obrio-labs/promisetrack/internal/report"
)

// analyzeTimeout bounds one on-demand analysis, including the optional AI
// verification call.
const analyzeTimeout = 2 * time.Minute

// NewAnalyzeHandler returns a handler for the /pt_analyze command. It runs a
// full analysis of the current chat's recorded history and replies with the
// rendered report. Requires admin privileges (enforced by middleware).
func NewAnalyzeHandler(deps HandlerDeps) bot.HandlerFunc {
	return analyzeHandler{deps}.Handle
}

type analyzeHandler struct {
	deps HandlerDeps
}

func (h analyzeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "analyze")

	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Analyze handler called with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Admin requested chat analysis", "chat_id", chatID, "user_id", update.Message.From.ID)

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.Analyzing}); err != nil {
		log.ErrorContext(ctx, "Failed to send progress message", "error", err, "chat_id", chatID)
		// Proceed with the analysis anyway.
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	result, err := h.deps.Analysis.AnalyzeChat(timeoutCtx, chatID, chatName(update.Message.Chat))
	if err != nil {
		log.ErrorContext(ctx, "Chat analysis failed", "chat_id", chatID, "error", err)
		if _, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.GeneralError}); sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: report.RenderResult(result)}); err != nil {
		log.ErrorContext(ctx, "Failed to send analysis report", "error", err, "chat_id", chatID)
	}
}
