package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/obrio-labs/promisetrack/internal/report"
)

// NewReportHandler returns a handler for the /pt_report command. It replies
// with the most recently stored analysis of the current chat, or a
// "not yet analyzed" notice when no analysis row exists. Requires admin
// privileges (enforced by middleware).
func NewReportHandler(deps HandlerDeps) bot.HandlerFunc {
	return reportHandler{deps}.Handle
}

type reportHandler struct {
	deps HandlerDeps
}

func (h reportHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "report")

	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Report handler called with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Admin requested stored report", "chat_id", chatID, "user_id", update.Message.From.ID)

	analysis, err := h.deps.Store.GetLatestAnalysis(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load latest analysis", "chat_id", chatID, "error", err)
		if _, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.GeneralError}); sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	// nil means never analyzed; an analyzed-but-empty chat still has a row.
	text := h.deps.Config.Messages.NoAnalysis
	if analysis != nil {
		text = report.RenderStoredSummary(analysis.ChatName, analysis.AnalysisDate.Format("2006-01-02 15:04"), analysis.UnfulfilledCount)
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send stored report", "error", err, "chat_id", chatID)
	}
}
