package tasks

import (
	"context"
	"fmt"
	"time"
)

// newChatAnalysisTask creates the scheduled task that sweeps all active chats
// and re-runs the promise analysis on each.
func newChatAnalysisTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "chat_analysis")

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting scheduled chat-analysis sweep...")
		startTime := time.Now()

		analyzed, err := deps.Analysis.RunSweep(ctx)

		duration := time.Since(startTime)
		if err != nil {
			log.ErrorContext(ctx, "Chat-analysis sweep failed", "error", err, "chats_analyzed", analyzed, "duration", duration)
			return fmt.Errorf("chat analysis sweep failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled chat-analysis sweep completed", "chats_analyzed", analyzed, "duration", duration)
		return nil
	}
}
