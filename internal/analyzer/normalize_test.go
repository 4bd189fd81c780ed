package analyzer

import (
	"testing"
	"time"
)

func TestNormalizerNormalize(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	normalizer := NewNormalizer(nil)

	raw := []RawMessage{
		{ID: 1, Timestamp: ts, Text: "перше", ChatID: 7},
		{ID: 0, Timestamp: ts, Text: "без ідентифікатора", ChatID: 7},
		{ID: 3, Text: "без часу", ChatID: 7},
		{ID: 4, Timestamp: ts.Add(time.Minute), Text: "друге", ChatID: 7, FromOperator: true, ReplyTo: 1},
	}

	got := normalizer.Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("got ids %d, %d, want 1, 4", got[0].ID, got[1].ID)
	}
	if !got[1].FromOperator || got[1].ReplyTo != 1 {
		t.Errorf("message fields not carried over: %+v", got[1])
	}
}

func TestProcessorProcess(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	processor := NewProcessor(nil)

	t.Run("Sorts and assembles", func(t *testing.T) {
		t.Parallel()
		raw := []RawMessage{
			{ID: 2, Timestamp: ts.Add(time.Hour), Text: "дякую, чекаю на прайс", ChatID: 7},
			{ID: 1, Timestamp: ts, Text: "надішлю прайс завтра", ChatID: 7, FromOperator: true},
			{ID: 3, Timestamp: ts.Add(2 * time.Hour), Text: "👍"},
		}

		conv := processor.Process(raw)
		if conv.ChatID != 7 {
			t.Errorf("ChatID = %d, want 7", conv.ChatID)
		}
		if conv.TotalMessages != 2 {
			t.Fatalf("TotalMessages = %d, want 2", conv.TotalMessages)
		}
		if conv.Messages[0].ID != 1 || conv.Messages[1].ID != 2 {
			t.Errorf("got order %d, %d, want 1, 2", conv.Messages[0].ID, conv.Messages[1].ID)
		}
		if conv.OperatorCount != 1 || conv.ClientCount != 1 {
			t.Errorf("counts = %d/%d, want 1/1", conv.OperatorCount, conv.ClientCount)
		}
		if !conv.StartDate.Equal(ts) || !conv.EndDate.Equal(ts.Add(time.Hour)) {
			t.Errorf("span = %v..%v, want %v..%v", conv.StartDate, conv.EndDate, ts, ts.Add(time.Hour))
		}
	})

	t.Run("Nothing survives filtering", func(t *testing.T) {
		t.Parallel()
		raw := []RawMessage{
			{ID: 1, Timestamp: ts, Text: "👍", ChatID: 7},
		}

		conv := processor.Process(raw)
		if !conv.IsEmpty() {
			t.Fatalf("conversation not empty: %+v", conv)
		}
		if conv.ChatID != 7 {
			t.Errorf("ChatID = %d, want 7 from the raw record", conv.ChatID)
		}
		if conv.StartDate.IsZero() || conv.EndDate.IsZero() {
			t.Error("empty conversation has zero dates")
		}
	})
}

func TestConversationCountsAddUp(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	messages := []Message{
		{ID: 1, Timestamp: ts, Text: "питання про доставку"},
		{ID: 2, Timestamp: ts.Add(time.Minute), Text: "уточню і повідомлю", FromOperator: true},
		{ID: 3, Timestamp: ts.Add(2 * time.Minute), Text: "дякую, чекаю"},
	}

	conv := NewConversation(7, messages)
	if conv.OperatorCount+conv.ClientCount != conv.TotalMessages {
		t.Errorf("counts do not add up: %d + %d != %d",
			conv.OperatorCount, conv.ClientCount, conv.TotalMessages)
	}
	if conv.Duration() != 2*time.Minute {
		t.Errorf("Duration = %v, want 2m", conv.Duration())
	}
}
