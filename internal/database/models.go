package database

import (
	"database/sql"
	"time"
)

// Message is a recorded chat message. The bot stores every text message it
// sees so the analyzer can later read back a chat's history window.
type Message struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID        int64          `db:"chat_id"`
	ChatName      string         `db:"chat_name"`
	MessageID     int64          `db:"message_id"`
	Text          string         `db:"text"`
	FromOperator  bool           `db:"from_operator"`
	Timestamp     time.Time      `db:"timestamp"`
	ReplyTo       sql.NullInt64  `db:"reply_to"`
	ForwardedFrom sql.NullString `db:"forwarded_from"`
}

// ChatAnalysis is one stored analysis run for a chat: an opaque result blob
// (JSON) plus the unfulfilled-promise count for quick querying.
type ChatAnalysis struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID           int64     `db:"chat_id"`
	ChatName         string    `db:"chat_name"`
	AnalysisDate     time.Time `db:"analysis_date"`
	AnalysisResult   string    `db:"analysis_result"`
	UnfulfilledCount int       `db:"unfulfilled_count"`
}

// ActiveChat identifies a chat with recorded traffic in a given window, used
// by the scheduled analysis sweep.
type ActiveChat struct {
	ChatID       int64  `db:"chat_id"`
	ChatName     string `db:"chat_name"`
	MessageCount int    `db:"message_count"`
}
