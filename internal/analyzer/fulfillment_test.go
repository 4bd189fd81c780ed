package analyzer

import (
	"testing"
	"time"
)

func TestFulfillmentCheckerCheck(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	checker := NewFulfillmentChecker(nil, 0, nil)

	promiseMsg := Message{ID: 1, Timestamp: base, Text: "Обов'язково надішлю прайс завтра", FromOperator: true}
	promise := CandidatePromise{Message: promiseMsg}

	tests := []struct {
		name          string
		followUps     []Message
		wantFulfilled bool
		wantEvidence  int64
	}{
		{
			name: "Operator confirmation within window",
			followUps: []Message{
				{ID: 2, Timestamp: base.Add(2 * time.Hour), Text: "Надіслав прайс, перевірте", FromOperator: true},
			},
			wantFulfilled: true,
			wantEvidence:  2,
		},
		{
			name: "Client confirmation is not evidence",
			followUps: []Message{
				{ID: 2, Timestamp: base.Add(2 * time.Hour), Text: "Дякую, все готово"},
			},
		},
		{
			name: "Earlier operator message is not evidence",
			followUps: []Message{
				{ID: 2, Timestamp: base.Add(-time.Hour), Text: "Вже відправив вам договір", FromOperator: true},
			},
		},
		{
			name: "Message at the promise instant is not evidence",
			followUps: []Message{
				{ID: 2, Timestamp: base, Text: "Готово", FromOperator: true},
			},
		},
		{
			name: "Confirmation past the window",
			followUps: []Message{
				{ID: 2, Timestamp: base.Add(8 * 24 * time.Hour), Text: "Надіслав прайс", FromOperator: true},
			},
		},
		{
			name: "Confirmation exactly at the window boundary",
			followUps: []Message{
				{ID: 2, Timestamp: base.Add(DefaultFulfillmentWindow), Text: "Надіслав прайс", FromOperator: true},
			},
			wantFulfilled: true,
			wantEvidence:  2,
		},
		{
			name: "Operator follow-up without indicator",
			followUps: []Message{
				{ID: 2, Timestamp: base.Add(2 * time.Hour), Text: "Ще працюю над цим", FromOperator: true},
			},
		},
		{
			name: "First matching message wins",
			followUps: []Message{
				{ID: 2, Timestamp: base.Add(time.Hour), Text: "Відправив кошторис", FromOperator: true},
				{ID: 3, Timestamp: base.Add(2 * time.Hour), Text: "І прайс теж надіслав", FromOperator: true},
			},
			wantFulfilled: true,
			wantEvidence:  2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			conv := NewConversation(0, append([]Message{promiseMsg}, tc.followUps...))

			got := checker.Check(promise, conv)
			if got.Fulfilled != tc.wantFulfilled {
				t.Fatalf("Fulfilled = %v, want %v", got.Fulfilled, tc.wantFulfilled)
			}
			if !tc.wantFulfilled {
				if got.Evidence != nil {
					t.Errorf("Evidence = %+v, want nil", got.Evidence)
				}
				return
			}
			if got.Evidence == nil {
				t.Fatal("Evidence = nil, want a message")
			}
			if got.Evidence.ID != tc.wantEvidence {
				t.Errorf("Evidence.ID = %d, want %d", got.Evidence.ID, tc.wantEvidence)
			}
		})
	}
}

func TestFulfillmentCheckerFindUnfulfilled(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	fulfilled := Message{ID: 1, Timestamp: base, Text: "Надішлю прайс завтра, обов'язково", FromOperator: true}
	evidence := Message{ID: 2, Timestamp: base.Add(30 * time.Minute), Text: "Надіслав прайс на пошту", FromOperator: true}
	broken := Message{ID: 3, Timestamp: base.Add(time.Hour), Text: "Підготую договір до п'ятниці, гарантую", FromOperator: true}

	conv := NewConversation(0, []Message{fulfilled, evidence, broken})
	candidates := []CandidatePromise{
		{Message: fulfilled, Score: Score{Total: 5}},
		{Message: broken, Score: Score{Total: 4}, Sentences: []string{"Підготую договір до п'ятниці"}},
	}

	checker := NewFulfillmentChecker(nil, 0, NewDeadlineEstimator(0))
	checker.now = func() time.Time { return base.Add(9 * 24 * time.Hour) }

	got := checker.FindUnfulfilled(candidates, conv)
	if len(got) != 1 {
		t.Fatalf("got %d unfulfilled promises, want 1", len(got))
	}

	u := got[0]
	if u.Message.ID != broken.ID {
		t.Errorf("unfulfilled message ID = %d, want %d", u.Message.ID, broken.ID)
	}
	if u.Score != 4 {
		t.Errorf("Score = %d, want 4", u.Score)
	}
	if u.Deadline.Matched != "до п'ятниці" {
		t.Errorf("Deadline.Matched = %q, want %q", u.Deadline.Matched, "до п'ятниці")
	}
	// Promised Monday 11:00, due Friday 11:00, checked Wednesday 10:00 next
	// week: four full days past the deadline.
	if u.DaysOverdue != 4 {
		t.Errorf("DaysOverdue = %d, want 4", u.DaysOverdue)
	}
}

func TestDaysOverdue(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "Before deadline", now: deadline.Add(-time.Hour), want: 0},
		{name: "At deadline", now: deadline, want: 0},
		{name: "Same day overdue", now: deadline.Add(3 * time.Hour), want: 0},
		{name: "Two and a half days", now: deadline.Add(60 * time.Hour), want: 2},
		{name: "Exactly three days", now: deadline.Add(72 * time.Hour), want: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := daysOverdue(tc.now, deadline); got != tc.want {
				t.Errorf("daysOverdue = %d, want %d", got, tc.want)
			}
		})
	}
}
