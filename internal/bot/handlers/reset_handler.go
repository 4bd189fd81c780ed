package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewResetHandler returns a handler for the /pt_reset command. It deletes all
// recorded messages and stored analyses of the current chat. Requires admin
// privileges (enforced by middleware).
func NewResetHandler(deps HandlerDeps) bot.HandlerFunc {
	return resetHandler{deps}.Handle
}

type resetHandler struct {
	deps HandlerDeps
}

func (h resetHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "reset")

	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Reset handler called with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Admin requested chat data reset", "chat_id", chatID, "user_id", update.Message.From.ID)

	text := h.deps.Config.Messages.ResetDone
	if err := h.deps.Store.DeleteChatData(ctx, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to delete chat data", "chat_id", chatID, "error", err)
		text = h.deps.Config.Messages.GeneralError
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send reset confirmation", "error", err, "chat_id", chatID)
	}
}
