package analyzer

import (
	"io"
	"log/slog"
	"sort"
)

// Normalizer is the parsing boundary between loosely-typed raw records and
// the strict Message type. Records that lack a usable id or timestamp are
// dropped with a warning; a malformed record never aborts the batch.
type Normalizer struct {
	log *slog.Logger
}

// NewNormalizer creates a Normalizer. A nil logger discards warnings.
func NewNormalizer(log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Normalizer{log: log.With("component", "normalizer")}
}

// Normalize converts raw records into Messages, skipping malformed ones.
// Output order is unspecified; ordering is fixed when the conversation is
// assembled.
func (n *Normalizer) Normalize(raw []RawMessage) []Message {
	messages := make([]Message, 0, len(raw))

	for _, r := range raw {
		if r.ID == 0 || r.Timestamp.IsZero() {
			n.log.Warn("skipping malformed message record",
				"message_id", r.ID,
				"chat_id", r.ChatID,
				"has_timestamp", !r.Timestamp.IsZero())
			continue
		}

		messages = append(messages, Message{
			ID:            r.ID,
			Timestamp:     r.Timestamp,
			Text:          r.Text,
			FromOperator:  r.FromOperator,
			ChatID:        r.ChatID,
			ReplyTo:       r.ReplyTo,
			ForwardedFrom: r.ForwardedFrom,
		})
	}

	return messages
}

// Processor runs the full normalization pipeline: raw records are normalized,
// filtered, stably sorted by timestamp, and assembled into a Conversation.
type Processor struct {
	normalizer *Normalizer
}

// NewProcessor creates a Processor. A nil logger discards normalization
// warnings.
func NewProcessor(log *slog.Logger) *Processor {
	return &Processor{normalizer: NewNormalizer(log)}
}

// Process builds a Conversation from raw chat-source records. When no record
// survives normalization and filtering, the result is an empty conversation
// carrying the chat id of the first raw record (or zero if there were none).
func (p *Processor) Process(raw []RawMessage) Conversation {
	messages := FilterMessages(p.normalizer.Normalize(raw))

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	chatID := int64(0)
	if len(messages) > 0 {
		chatID = messages[0].ChatID
	} else if len(raw) > 0 {
		chatID = raw[0].ChatID
	}

	return NewConversation(chatID, messages)
}
