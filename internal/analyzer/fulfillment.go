package analyzer

import (
	"strings"
	"time"
)

// DefaultFulfillmentWindow bounds how far past the promise timestamp later
// operator messages are searched for completion language.
const DefaultFulfillmentWindow = 7 * 24 * time.Hour

// FulfillmentResult states whether completion evidence was found for a
// commitment. Evidence is nil when Fulfilled is false, so absence of evidence
// is distinguishable from an error (checking never fails).
type FulfillmentResult struct {
	Fulfilled bool
	Evidence  *Message
}

// UnfulfilledPromise is a commitment for which no completion evidence was
// found inside the lookahead window, annotated with its estimated deadline
// and how overdue it is.
type UnfulfilledPromise struct {
	Message     Message
	Sentences   []string
	Deadline    Deadline
	DaysOverdue int
	Score       int
}

// FulfillmentChecker inspects later operator messages for
// completion-indicating language within a fixed lookahead window.
type FulfillmentChecker struct {
	indicators []string
	window     time.Duration
	estimator  *DeadlineEstimator
	now        func() time.Time
}

// NewFulfillmentChecker creates a checker with the given indicator phrases
// and lookahead window. Nil indicators fall back to the defaults, a
// non-positive window to DefaultFulfillmentWindow.
func NewFulfillmentChecker(indicators []string, window time.Duration, estimator *DeadlineEstimator) *FulfillmentChecker {
	if indicators == nil {
		indicators = DefaultFulfillmentIndicators()
	}
	if window <= 0 {
		window = DefaultFulfillmentWindow
	}
	if estimator == nil {
		estimator = NewDeadlineEstimator(0)
	}
	return &FulfillmentChecker{
		indicators: lowerAll(indicators),
		window:     window,
		estimator:  estimator,
		now:        time.Now,
	}
}

// Check searches the conversation, in order, for an operator message strictly
// after the promise and within the lookahead window whose text contains a
// fulfillment indicator. The first match short-circuits the search.
func (c *FulfillmentChecker) Check(promise CandidatePromise, conv Conversation) FulfillmentResult {
	promisedAt := promise.Message.Timestamp
	cutoff := promisedAt.Add(c.window)

	for i := range conv.Messages {
		m := conv.Messages[i]
		if !m.FromOperator || !m.Timestamp.After(promisedAt) || m.Timestamp.After(cutoff) {
			continue
		}

		lower := strings.ToLower(m.Text)
		for _, indicator := range c.indicators {
			if strings.Contains(lower, indicator) {
				return FulfillmentResult{Fulfilled: true, Evidence: &conv.Messages[i]}
			}
		}
	}

	return FulfillmentResult{}
}

// FindUnfulfilled checks every candidate against the conversation and builds
// the unfulfilled-promise list. DaysOverdue is zero while the deadline is
// still in the future, never negative.
func (c *FulfillmentChecker) FindUnfulfilled(candidates []CandidatePromise, conv Conversation) []UnfulfilledPromise {
	var unfulfilled []UnfulfilledPromise

	for _, candidate := range candidates {
		if c.Check(candidate, conv).Fulfilled {
			continue
		}

		deadline := c.estimator.Estimate(candidate.Message.Text, candidate.Message.Timestamp)

		unfulfilled = append(unfulfilled, UnfulfilledPromise{
			Message:     candidate.Message,
			Sentences:   candidate.Sentences,
			Deadline:    deadline,
			DaysOverdue: daysOverdue(c.now(), deadline.At),
			Score:       candidate.Score.Total,
		})
	}

	return unfulfilled
}

func daysOverdue(now, deadline time.Time) int {
	if !now.After(deadline) {
		return 0
	}
	return int(now.Sub(deadline) / (24 * time.Hour))
}
