package analyzer

import (
	"strings"
	"time"
)

// DefaultDeadlineFallback is the deadline applied when a commitment carries
// no recognized temporal expression. Three days is a policy choice, not a
// derived value; callers can override it via NewDeadlineEstimator.
const DefaultDeadlineFallback = 72 * time.Hour

const endOfDayHour = 18

// Deadline is the result of estimating when a commitment is due. Explicit is
// false when no rule matched and the fallback was applied, so callers can
// tell "deadline stated" apart from "deadline assumed".
type Deadline struct {
	At       time.Time
	Matched  string // the phrase that selected the rule, empty for the fallback
	Explicit bool
}

// deadlineRule maps a set of trigger phrases to a deadline computation.
// Rules are evaluated in order; the first phrase match wins and rules are
// never combined.
type deadlineRule struct {
	phrases []string
	resolve func(t time.Time) time.Time
}

// DeadlineEstimator maps a commitment message's text and timestamp to an
// estimated deadline instant. Estimation is a total function: text with no
// recognized temporal expression yields the configured fallback rather than
// "no deadline".
type DeadlineEstimator struct {
	rules    []deadlineRule
	fallback time.Duration
}

// NewDeadlineEstimator creates an estimator with the built-in rule list and
// the given fallback delay for texts with no temporal expression. A
// non-positive fallback is replaced by DefaultDeadlineFallback.
func NewDeadlineEstimator(fallback time.Duration) *DeadlineEstimator {
	if fallback <= 0 {
		fallback = DefaultDeadlineFallback
	}
	return &DeadlineEstimator{
		fallback: fallback,
		rules: []deadlineRule{
			{
				phrases: []string{"сьогодні", "до кінця дня", "до кінця робочого дня"},
				resolve: endOfSameDay,
			},
			{
				phrases: []string{"завтра"},
				resolve: func(t time.Time) time.Time { return t.Add(24 * time.Hour) },
			},
			{
				phrases: []string{"до п'ятниці", "до кінця тижня"},
				resolve: nextFriday,
			},
			{
				phrases: []string{"на наступному тижні"},
				resolve: func(t time.Time) time.Time { return t.Add(7 * 24 * time.Hour) },
			},
			{
				phrases: []string{"через годину", "за годину"},
				resolve: func(t time.Time) time.Time { return t.Add(time.Hour) },
			},
			{
				phrases: []string{"через день"},
				resolve: func(t time.Time) time.Time { return t.Add(24 * time.Hour) },
			},
		},
	}
}

// Estimate returns the estimated deadline for a commitment made at the given
// instant. Rules are checked in order against the lower-cased text; the first
// matching phrase wins.
func (e *DeadlineEstimator) Estimate(text string, at time.Time) Deadline {
	lower := strings.ToLower(text)

	for _, rule := range e.rules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lower, phrase) {
				return Deadline{At: rule.resolve(at), Matched: phrase, Explicit: true}
			}
		}
	}

	return Deadline{At: at.Add(e.fallback)}
}

// endOfSameDay pins the deadline to 18:00 of the commitment's calendar day.
func endOfSameDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), endOfDayHour, 0, 0, 0, t.Location())
}

// nextFriday advances 0-6 days to the coming Friday; a commitment made on
// Friday is due the same day.
func nextFriday(t time.Time) time.Time {
	// Monday=0 weekday indexing, so Friday is 4.
	weekday := (int(t.Weekday()) + 6) % 7
	days := (4 - weekday + 7) % 7
	return t.Add(time.Duration(days) * 24 * time.Hour)
}
