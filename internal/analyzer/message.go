package analyzer

import "time"

// RawMessage is a loosely-validated message record as supplied by the chat
// source. It has not yet passed the normalization boundary; fields may be
// missing or zero-valued.
type RawMessage struct {
	ID            int64
	Timestamp     time.Time
	Text          string
	FromOperator  bool
	ChatID        int64
	ReplyTo       int64  // 0 when the message is not a reply
	ForwardedFrom string // empty when the message is not forwarded
}

// Message is a validated, immutable chat message. Instances are only created
// by the Normalizer, which guarantees a usable id and timestamp.
type Message struct {
	ID            int64
	Timestamp     time.Time
	Text          string
	FromOperator  bool
	ChatID        int64
	ReplyTo       int64
	ForwardedFrom string
}

// Conversation is a filtered, time-ordered view of one chat. It is built once
// per retrieval batch and read-only afterward. ChatName is set by the caller
// after construction; everything else is derived from the message sequence.
type Conversation struct {
	ChatID   int64
	ChatName string
	Messages []Message

	StartDate time.Time
	EndDate   time.Time

	TotalMessages   int
	OperatorCount   int
	ClientCount     int
}

// NewConversation assembles a Conversation from an already filtered and
// time-sorted message sequence. An empty sequence yields a valid empty
// conversation whose start and end dates are the current time; this is an
// explicit empty state, not an error, and downstream stages must accept it.
func NewConversation(chatID int64, messages []Message) Conversation {
	conv := Conversation{
		ChatID:        chatID,
		Messages:      messages,
		TotalMessages: len(messages),
	}

	if len(messages) == 0 {
		now := time.Now()
		conv.StartDate = now
		conv.EndDate = now
		return conv
	}

	conv.StartDate = messages[0].Timestamp
	conv.EndDate = messages[len(messages)-1].Timestamp

	for _, m := range messages {
		if m.FromOperator {
			conv.OperatorCount++
		} else {
			conv.ClientCount++
		}
	}

	return conv
}

// IsEmpty reports whether no messages survived filtering.
func (c Conversation) IsEmpty() bool { return len(c.Messages) == 0 }

// Duration returns the span between the first and last message.
func (c Conversation) Duration() time.Duration { return c.EndDate.Sub(c.StartDate) }
