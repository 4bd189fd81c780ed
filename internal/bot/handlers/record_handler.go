package handlers

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/obrio-labs/promisetrack/internal/database"
)

// NewRecordHandler returns the default handler: it records every incoming
// text message into the store so the analyzer can later read the chat's
// history back. This is the chat-source side of the pipeline; no analysis
// happens here.
func NewRecordHandler(deps HandlerDeps) bot.HandlerFunc {
	return recordHandler{deps}.Handle
}

type recordHandler struct {
	deps HandlerDeps
}

func (h recordHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "record")

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	// Commands are transport control, not conversation content.
	if msg.Text == "" || strings.HasPrefix(msg.Text, "/") {
		return
	}

	record := &database.Message{
		ChatID:       msg.Chat.ID,
		ChatName:     chatName(msg.Chat),
		MessageID:    int64(msg.ID),
		Text:         msg.Text,
		FromOperator: msg.From.ID == h.deps.Config.OperatorID(),
		Timestamp:    time.Unix(int64(msg.Date), 0),
	}

	if msg.ReplyToMessage != nil {
		record.ReplyTo = sql.NullInt64{Int64: int64(msg.ReplyToMessage.ID), Valid: true}
	}
	if label := forwardedFrom(msg.ForwardOrigin); label != "" {
		record.ForwardedFrom = sql.NullString{String: label, Valid: true}
	}

	if err := h.deps.Store.SaveMessage(ctx, record); err != nil {
		log.ErrorContext(ctx, "Failed to record message",
			"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
		return
	}

	log.DebugContext(ctx, "Recorded message",
		"chat_id", msg.Chat.ID, "message_id", msg.ID, "from_operator", record.FromOperator)
}

func chatName(chat models.Chat) string {
	if chat.Title != "" {
		return chat.Title
	}
	name := strings.TrimSpace(chat.FirstName + " " + chat.LastName)
	if name != "" {
		return name
	}
	return chat.Username
}

// forwardedFrom extracts a display label for the original sender of a
// forwarded message, or "" when the message was not forwarded.
func forwardedFrom(origin *models.MessageOrigin) string {
	if origin == nil {
		return ""
	}

	switch origin.Type {
	case models.MessageOriginTypeUser:
		if origin.MessageOriginUser != nil {
			u := origin.MessageOriginUser.SenderUser
			return strings.TrimSpace(u.FirstName + " " + u.LastName)
		}
	case models.MessageOriginTypeHiddenUser:
		if origin.MessageOriginHiddenUser != nil {
			return origin.MessageOriginHiddenUser.SenderUserName
		}
	case models.MessageOriginTypeChat:
		if origin.MessageOriginChat != nil {
			return origin.MessageOriginChat.SenderChat.Title
		}
	case models.MessageOriginTypeChannel:
		if origin.MessageOriginChannel != nil {
			return origin.MessageOriginChannel.Chat.Title
		}
	}

	return ""
}
