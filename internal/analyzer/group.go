package analyzer

import "time"

// DefaultContextGap is the inactivity gap that separates two context groups.
const DefaultContextGap = 2 * time.Hour

// MessageGroup is a contiguous block of conversation separated from adjacent
// blocks by an inactivity gap. Groups are purely derived and recomputed on
// demand.
type MessageGroup struct {
	StartTime       time.Time
	EndTime         time.Time
	Messages        []Message
	DurationMinutes float64
	OperatorCount   int
	ClientCount     int
	TotalMessages   int
}

// GroupByContext partitions a time-sorted conversation into contiguous
// groups: a new group starts whenever the gap to the previous message exceeds
// maxGap (non-positive values fall back to DefaultContextGap). Every message
// belongs to exactly one group, groups come out in chronological order, and
// an empty conversation yields no groups.
func GroupByContext(conv Conversation, maxGap time.Duration) []MessageGroup {
	if maxGap <= 0 {
		maxGap = DefaultContextGap
	}
	if len(conv.Messages) == 0 {
		return nil
	}

	var groups []MessageGroup
	start := 0

	for i := 1; i < len(conv.Messages); i++ {
		if conv.Messages[i].Timestamp.Sub(conv.Messages[i-1].Timestamp) > maxGap {
			groups = append(groups, newMessageGroup(conv.Messages[start:i]))
			start = i
		}
	}
	groups = append(groups, newMessageGroup(conv.Messages[start:]))

	return groups
}

func newMessageGroup(messages []Message) MessageGroup {
	group := MessageGroup{
		StartTime:     messages[0].Timestamp,
		EndTime:       messages[len(messages)-1].Timestamp,
		Messages:      messages,
		TotalMessages: len(messages),
	}
	group.DurationMinutes = group.EndTime.Sub(group.StartTime).Minutes()

	for _, m := range messages {
		if m.FromOperator {
			group.OperatorCount++
		} else {
			group.ClientCount++
		}
	}

	return group
}
