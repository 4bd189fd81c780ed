// Package report renders analysis results as plain text for Telegram replies
// and console output. It only formats; all data comes from the analyzer and
// the verification collaborator.
package report

import (
	"fmt"
	"strings"

	"github.com/obrio-labs/promisetrack/internal/analysis"
	"github.com/obrio-labs/promisetrack/internal/analyzer"
	"github.com/obrio-labs/promisetrack/internal/gemini"
)

const dateFormat = "2006-01-02"
const timeFormat = "2006-01-02 15:04"

// RenderResult produces the full text report for one analysis run.
func RenderResult(result *analysis.Result) string {
	var sb strings.Builder

	sb.WriteString(RenderConversationStats(result.Conversation))

	if result.Conversation.IsEmpty() {
		sb.WriteString("\nНемає повідомлень для аналізу.\n")
		return sb.String()
	}

	sb.WriteString(RenderUnfulfilled(result.Unfulfilled))
	sb.WriteString(RenderGroups(result.Groups))

	if result.Verdict != nil {
		sb.WriteString(RenderVerdict(result.Verdict))
	}

	return sb.String()
}

// RenderConversationStats formats the basic conversation statistics.
func RenderConversationStats(conv analyzer.Conversation) string {
	var sb strings.Builder

	sb.WriteString("📊 Аналіз розмови:\n")
	fmt.Fprintf(&sb, "   Загальна кількість повідомлень: %d\n", conv.TotalMessages)
	fmt.Fprintf(&sb, "   Повідомлення менеджера: %d\n", conv.OperatorCount)
	fmt.Fprintf(&sb, "   Повідомлення клієнта: %d\n", conv.ClientCount)
	fmt.Fprintf(&sb, "   Період розмови: %s - %s\n",
		conv.StartDate.Format(dateFormat), conv.EndDate.Format(dateFormat))

	if conv.TotalMessages > 0 {
		ratio := float64(conv.OperatorCount) / float64(conv.TotalMessages) * 100
		fmt.Fprintf(&sb, "   Активність менеджера: %.1f%%\n", ratio)
	}

	return sb.String()
}

// RenderUnfulfilled formats the unfulfilled-promise list.
func RenderUnfulfilled(promises []analyzer.UnfulfilledPromise) string {
	if len(promises) == 0 {
		return "\n✅ Невиконаних обіцянок не виявлено.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n⚠️ Невиконані обіцянки (%d):\n", len(promises))

	for _, p := range promises {
		text := p.Message.Text
		if len(p.Sentences) > 0 {
			text = strings.Join(p.Sentences, "; ")
		}
		fmt.Fprintf(&sb, "- %s\n", text)
		fmt.Fprintf(&sb, "  Обіцяно: %s | Термін: %s", p.Message.Timestamp.Format(timeFormat), p.Deadline.At.Format(timeFormat))
		if !p.Deadline.Explicit {
			sb.WriteString(" (оцінка)")
		}
		if p.DaysOverdue > 0 {
			fmt.Fprintf(&sb, " | Прострочено: %d дн.", p.DaysOverdue)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// RenderGroups formats the context-group summary.
func RenderGroups(groups []analyzer.MessageGroup) string {
	if len(groups) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n🕐 Блоки розмови (%d):\n", len(groups))

	for i, g := range groups {
		fmt.Fprintf(&sb, "   %d. %s - %s: %d повідомлень (%.0f хв)\n",
			i+1, g.StartTime.Format(timeFormat), g.EndTime.Format("15:04"),
			g.TotalMessages, g.DurationMinutes)
	}

	return sb.String()
}

// RenderVerdict formats the independent AI assessment.
func RenderVerdict(verdict *gemini.Verdict) string {
	var sb strings.Builder

	sb.WriteString("\n=== AI Аналіз розмови ===\n")
	fmt.Fprintf(&sb, "Виявлено обіцянки: %t\n", verdict.PromisesFound)
	fmt.Fprintf(&sb, "Кількість невиконаних обіцянок: %d\n", verdict.UnfulfilledCount)
	fmt.Fprintf(&sb, "Висновок: %s\n", verdict.Summary)

	if len(verdict.Promises) > 0 {
		sb.WriteString("\nОбіцянки:\n")
		for _, p := range verdict.Promises {
			fmt.Fprintf(&sb, "- %s | Термін: %s | Виконано: %t", p.Text, p.Deadline, p.Fulfilled)
			if !p.Fulfilled && p.Reason != "" {
				fmt.Fprintf(&sb, " | Причина: %s", p.Reason)
			}
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// RenderStoredSummary formats the headline of a previously stored analysis.
func RenderStoredSummary(chatName string, analysisDate string, unfulfilledCount int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Останній аналіз чату %q: %s\n", chatName, analysisDate)
	if unfulfilledCount == 0 {
		sb.WriteString("✅ Невиконаних обіцянок не виявлено.\n")
	} else {
		fmt.Fprintf(&sb, "⚠️ Невиконаних обіцянок: %d\n", unfulfilledCount)
	}

	return sb.String()
}
