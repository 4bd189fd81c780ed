// Package analysis wires the detection engine to its collaborators: it loads
// a chat's recorded history, runs the heuristic pipeline, optionally requests
// an independent Gemini verdict, and persists the outcome.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/obrio-labs/promisetrack/internal/analyzer"
	"github.com/obrio-labs/promisetrack/internal/config"
	"github.com/obrio-labs/promisetrack/internal/database"
	"github.com/obrio-labs/promisetrack/internal/gemini"
)

// Result is the outcome of one analysis run for a chat. An empty conversation
// produces a valid Result with empty slices; "never analyzed" is represented
// by the absence of a stored row, not by this type.
type Result struct {
	ChatID     int64
	ChatName   string
	AnalyzedAt time.Time

	Conversation analyzer.Conversation
	Candidates   []analyzer.CandidatePromise
	Unfulfilled  []analyzer.UnfulfilledPromise
	Groups       []analyzer.MessageGroup

	// Verdict is the independent AI assessment; nil when verification is
	// disabled or failed. It is never merged with the heuristic result.
	Verdict *gemini.Verdict
}

// Service runs chat analyses. It is safe for concurrent use; each run
// operates on its own conversation value and the lexicon is read-only.
type Service struct {
	log      *slog.Logger
	store    database.Store
	verifier gemini.Client // nil when verification is disabled

	processor *analyzer.Processor
	detector  *analyzer.Detector
	checker   *analyzer.FulfillmentChecker

	contextGap time.Duration
	lookback   time.Duration
}

// NewService creates the analysis service. verifier may be nil to skip AI
// verification entirely.
func NewService(log *slog.Logger, store database.Store, verifier gemini.Client, cfg *config.Config) *Service {
	lexicon := analyzer.DefaultLexicon()
	estimator := analyzer.NewDeadlineEstimator(cfg.Analyzer.DefaultDeadline)

	return &Service{
		log:        log.With("component", "analysis_service"),
		store:      store,
		verifier:   verifier,
		processor:  analyzer.NewProcessor(log),
		detector:   analyzer.NewDetector(lexicon, cfg.Analyzer.ScoreThreshold),
		checker:    analyzer.NewFulfillmentChecker(nil, cfg.Analyzer.FulfillmentWindow, estimator),
		contextGap: cfg.Analyzer.ContextGap,
		lookback:   time.Duration(cfg.Analyzer.LookbackDays) * 24 * time.Hour,
	}
}

// AnalyzeChat loads the chat's recorded history inside the lookback window,
// runs the full pipeline, persists the outcome, and returns it. A chat with
// no analyzable messages yields a valid empty Result, which is still
// persisted so "analyzed, nothing found" stays distinguishable from "never
// analyzed".
func (s *Service) AnalyzeChat(ctx context.Context, chatID int64, chatName string) (*Result, error) {
	since := time.Now().Add(-s.lookback)

	records, err := s.store.GetChatMessages(ctx, chatID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	raw := make([]analyzer.RawMessage, 0, len(records))
	for _, r := range records {
		raw = append(raw, analyzer.RawMessage{
			ID:            r.MessageID,
			Timestamp:     r.Timestamp,
			Text:          r.Text,
			FromOperator:  r.FromOperator,
			ChatID:        r.ChatID,
			ReplyTo:       r.ReplyTo.Int64,
			ForwardedFrom: r.ForwardedFrom.String,
		})
	}

	conv := s.processor.Process(raw)
	if conv.ChatID == 0 {
		conv.ChatID = chatID
	}
	conv.ChatName = chatName

	result := &Result{
		ChatID:       chatID,
		ChatName:     chatName,
		AnalyzedAt:   time.Now(),
		Conversation: conv,
		Candidates:   s.detector.FindCandidates(conv),
		Groups:       analyzer.GroupByContext(conv, s.contextGap),
	}
	result.Unfulfilled = s.checker.FindUnfulfilled(result.Candidates, conv)

	s.log.InfoContext(ctx, "Heuristic analysis complete",
		"chat_id", chatID,
		"messages", conv.TotalMessages,
		"candidates", len(result.Candidates),
		"unfulfilled", len(result.Unfulfilled),
		"groups", len(result.Groups))

	// The heuristic result stands on its own; a verification failure is
	// logged and the verdict stays nil.
	if s.verifier != nil && !conv.IsEmpty() {
		verdict, err := s.verifier.VerifyConversation(ctx, conv)
		if err != nil {
			s.log.WarnContext(ctx, "AI verification failed, continuing with heuristic result only",
				"chat_id", chatID, "error", err)
		} else {
			result.Verdict = verdict
		}
	}

	if err := s.persist(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// RunSweep analyzes every chat with recorded traffic inside the lookback
// window. A failure on one chat is logged and does not stop the sweep; the
// returned count is the number of chats analyzed successfully.
func (s *Service) RunSweep(ctx context.Context) (int, error) {
	since := time.Now().Add(-s.lookback)

	chats, err := s.store.GetActiveChats(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to list active chats: %w", err)
	}

	analyzed := 0
	for _, chat := range chats {
		if ctx.Err() != nil {
			return analyzed, ctx.Err()
		}

		if _, err := s.AnalyzeChat(ctx, chat.ChatID, chat.ChatName); err != nil {
			s.log.ErrorContext(ctx, "Failed to analyze chat during sweep",
				"chat_id", chat.ChatID, "error", err)
			continue
		}
		analyzed++
	}

	s.log.InfoContext(ctx, "Analysis sweep finished", "chats_total", len(chats), "chats_analyzed", analyzed)
	return analyzed, nil
}

// storedResult is the persisted analysis blob layout.
type storedResult struct {
	AnalyzedAt    time.Time        `json:"analyzed_at"`
	TotalMessages int              `json:"total_messages"`
	OperatorCount int              `json:"operator_messages"`
	ClientCount   int              `json:"client_messages"`
	Candidates    int              `json:"candidate_count"`
	Unfulfilled   []storedPromise  `json:"unfulfilled_promises"`
	Verdict       *gemini.Verdict  `json:"ai_verdict,omitempty"`
}

type storedPromise struct {
	MessageID   int64     `json:"message_id"`
	Sentences   []string  `json:"sentences"`
	Deadline    time.Time `json:"deadline"`
	Explicit    bool      `json:"deadline_explicit"`
	DaysOverdue int       `json:"days_overdue"`
	Score       int       `json:"score"`
}

func (s *Service) persist(ctx context.Context, result *Result) error {
	stored := storedResult{
		AnalyzedAt:    result.AnalyzedAt,
		TotalMessages: result.Conversation.TotalMessages,
		OperatorCount: result.Conversation.OperatorCount,
		ClientCount:   result.Conversation.ClientCount,
		Candidates:    len(result.Candidates),
		Unfulfilled:   make([]storedPromise, 0, len(result.Unfulfilled)),
		Verdict:       result.Verdict,
	}
	for _, p := range result.Unfulfilled {
		stored.Unfulfilled = append(stored.Unfulfilled, storedPromise{
			MessageID:   p.Message.ID,
			Sentences:   p.Sentences,
			Deadline:    p.Deadline.At,
			Explicit:    p.Deadline.Explicit,
			DaysOverdue: p.DaysOverdue,
			Score:       p.Score,
		})
	}

	blob, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	if err := s.store.SaveAnalysis(ctx, &database.ChatAnalysis{
		ChatID:           result.ChatID,
		ChatName:         result.ChatName,
		AnalysisDate:     result.AnalyzedAt,
		AnalysisResult:   string(blob),
		UnfulfilledCount: len(result.Unfulfilled),
	}); err != nil {
		return fmt.Errorf("failed to persist analysis: %w", err)
	}

	return nil
}
