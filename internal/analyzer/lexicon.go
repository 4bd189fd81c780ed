// Package analyzer implements the message-processing and promise-detection
// engine: normalization and filtering of raw chat messages, keyword scoring
// of candidate commitment statements, deadline estimation from natural-language
// time expressions, fulfillment checking, and temporal grouping of a
// conversation. Everything in this package is pure computation over in-memory
// data; retrieval, persistence, AI verification, and rendering live elsewhere.
package analyzer

import "strings"

// Lexicon holds the static phrase sets used for keyword-based scoring.
// Phrases are stored lower-cased; matching is case-insensitive substring
// containment. A Lexicon is immutable after construction and safe to share
// between concurrent analysis runs.
//
// Substring matching over-matches phrases embedded in larger words and misses
// morphological variants. That is a known precision/recall ceiling of this
// heuristic, kept deliberately so results stay comparable across runs.
type Lexicon struct {
	commitment []string
	temporal   []string
	business   []string
}

// NewLexicon builds a Lexicon from the given phrase sets. Input slices are
// copied and lower-cased; empty phrases are dropped.
func NewLexicon(commitment, temporal, business []string) *Lexicon {
	return &Lexicon{
		commitment: lowerAll(commitment),
		temporal:   lowerAll(temporal),
		business:   lowerAll(business),
	}
}

func lowerAll(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CommitmentPhrases returns the commitment phrase set.
func (l *Lexicon) CommitmentPhrases() []string { return l.commitment }

// TemporalPhrases returns the temporal-deadline phrase set.
func (l *Lexicon) TemporalPhrases() []string { return l.temporal }

// BusinessPhrases returns the business-context phrase set.
func (l *Lexicon) BusinessPhrases() []string { return l.business }

// DefaultLexicon returns the built-in Ukrainian phrase sets covering manager
// commitments, temporal deadlines, and business context.
func DefaultLexicon() *Lexicon {
	return NewLexicon(defaultCommitmentPhrases, defaultTemporalPhrases, defaultBusinessPhrases)
}

var defaultCommitmentPhrases = []string{
	// Direct commitments
	"зроблю", "підготую", "надішлю", "скину", "відправлю",
	"прорахую", "розрахую", "перевірю", "уточню", "дізнаюся",
	"зателефоную", "подзвоню", "напишу", "повідомлю",

	// Assurances
	"обов'язково", "точно", "гарантую", "обіцяю",
	"без проблем", "звичайно", "так, зроблю",

	// Document actions
	"підготую договір", "надішлю пропозицію", "скину прайс",
	"відправлю кошторис", "зроблю розрахунок",

	// Meetings and calls
	"зустрінемося", "домовимося", "призначу зустріч", "передзвоню",
}

var defaultTemporalPhrases = []string{
	// Day-bound
	"до кінця дня", "до кінця робочого дня", "сьогодні до вечора",
	"завтра", "післязавтра", "до п'ятниці", "до понеділка",
	"на наступному тижні", "до обіду", "після обіду",

	// Relative
	"через годину", "через пару годин", "через день",
	"за годину", "за пару хвилин", "незабаром", "скоро",

	// Clock-bound
	"о 15:00", "до 18:00", "вранці", "ввечері",
	"до закриття", "до обідньої перерви",
}

var defaultBusinessPhrases = []string{
	"прайс", "кошторис", "договір", "рахунок", "пропозиція",
	"презентація", "зустріч", "переговори", "угода",
	"замовлення", "послуга", "товар", "доставка",
	"оплата", "розрахунок", "вартість", "ціна",
}

// DefaultFulfillmentIndicators returns the built-in phrases that, when found
// in a later operator message, count as evidence that a commitment was
// carried out.
func DefaultFulfillmentIndicators() []string {
	return []string{
		"надіслав", "відправив", "скинув", "зробив", "підготував",
		"перевірив", "прорахував", "подзвонив", "готово", "виконано",
		"ось прайс", "ось договір", "ось розрахунок", "у вкладенні", "тримайте",
	}
}
