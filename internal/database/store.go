package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations. Methods accept
// context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveMessage inserts a new recorded chat message.
	SaveMessage(ctx context.Context, message *Message) error

	// GetChatMessages retrieves all messages of a chat with a timestamp at or
	// after 'since', in insertion order.
	GetChatMessages(ctx context.Context, chatID int64, since time.Time) ([]Message, error)

	// GetActiveChats lists chats with at least one recorded message since the
	// given time, most recently active first.
	GetActiveChats(ctx context.Context, since time.Time) ([]ActiveChat, error)

	// SaveAnalysis inserts a new analysis result row for a chat.
	SaveAnalysis(ctx context.Context, analysis *ChatAnalysis) error

	// GetLatestAnalysis retrieves the most recent analysis for a chat.
	// Returns nil, nil when the chat has never been analyzed.
	GetLatestAnalysis(ctx context.Context, chatID int64) (*ChatAnalysis, error)

	// DeleteChatData removes all recorded messages and analyses of a chat in
	// a single transaction.
	DeleteChatData(ctx context.Context, chatID int64) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx. It requires a
// connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.ChatID == 0 {
		return fmt.Errorf("message must have a non-zero chat_id")
	}
	if message.MessageID == 0 {
		return fmt.Errorf("message must have a non-zero message_id")
	}
	if message.Timestamp.IsZero() {
		return fmt.Errorf("message must have a non-zero timestamp")
	}

	message.CreatedAt = time.Now().UTC()

	query := `INSERT INTO messages
		(created_at, chat_id, chat_name, message_id, text, from_operator, timestamp, reply_to, forwarded_from)
		VALUES (:created_at, :chat_id, :chat_name, :message_id, :text, :from_operator, :timestamp, :reply_to, :forwarded_from)`

	if _, err := s.db.NamedExecContext(ctx, query, message); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save message",
			"chat_id", message.ChatID, "message_id", message.MessageID, "error", err)
		return fmt.Errorf("failed to save message: %w", err)
	}

	return nil
}

func (s *sqlxStore) GetChatMessages(ctx context.Context, chatID int64, since time.Time) ([]Message, error) {
	var messages []Message

	query := `SELECT * FROM messages WHERE chat_id = ? AND timestamp >= ? ORDER BY id ASC`
	if err := s.db.SelectContext(ctx, &messages, query, chatID, since); err != nil {
		return nil, fmt.Errorf("failed to get messages for chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Fetched chat messages", "chat_id", chatID, "count", len(messages))
	return messages, nil
}

func (s *sqlxStore) GetActiveChats(ctx context.Context, since time.Time) ([]ActiveChat, error) {
	var chats []ActiveChat

	query := `SELECT chat_id, MAX(chat_name) AS chat_name, COUNT(*) AS message_count
		FROM messages WHERE timestamp >= ?
		GROUP BY chat_id ORDER BY MAX(timestamp) DESC`
	if err := s.db.SelectContext(ctx, &chats, query, since); err != nil {
		return nil, fmt.Errorf("failed to list active chats: %w", err)
	}

	return chats, nil
}

func (s *sqlxStore) SaveAnalysis(ctx context.Context, analysis *ChatAnalysis) error {
	if analysis == nil {
		return fmt.Errorf("cannot save nil analysis")
	}
	if analysis.ChatID == 0 {
		return fmt.Errorf("analysis must have a non-zero chat_id")
	}

	analysis.CreatedAt = time.Now().UTC()
	if analysis.AnalysisDate.IsZero() {
		analysis.AnalysisDate = analysis.CreatedAt
	}

	query := `INSERT INTO chat_analysis
		(created_at, chat_id, chat_name, analysis_date, analysis_result, unfulfilled_count)
		VALUES (:created_at, :chat_id, :chat_name, :analysis_date, :analysis_result, :unfulfilled_count)`

	if _, err := s.db.NamedExecContext(ctx, query, analysis); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save analysis", "chat_id", analysis.ChatID, "error", err)
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	s.logger.InfoContext(ctx, "Saved analysis result",
		"chat_id", analysis.ChatID, "unfulfilled_count", analysis.UnfulfilledCount)
	return nil
}

func (s *sqlxStore) GetLatestAnalysis(ctx context.Context, chatID int64) (*ChatAnalysis, error) {
	var analysis ChatAnalysis

	query := `SELECT * FROM chat_analysis WHERE chat_id = ? ORDER BY analysis_date DESC, id DESC LIMIT 1`
	err := s.db.GetContext(ctx, &analysis, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		// Never analyzed; distinct from an analysis with empty results.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest analysis for chat %d: %w", chatID, err)
	}

	return &analysis, nil
}

func (s *sqlxStore) DeleteChatData(ctx context.Context, chatID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to delete messages for chat %d: %w", chatID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_analysis WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to delete analyses for chat %d: %w", chatID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chat data deletion: %w", err)
	}
	tx = nil

	s.logger.InfoContext(ctx, "Deleted chat data", "chat_id", chatID)
	return nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Running SQL maintenance (VACUUM, ANALYZE)...")

	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to run VACUUM: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE"); err != nil {
		return fmt.Errorf("failed to run ANALYZE: %w", err)
	}

	s.logger.InfoContext(ctx, "SQL maintenance completed.")
	return nil
}
