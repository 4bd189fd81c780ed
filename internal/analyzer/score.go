package analyzer

import "strings"

// temporalWeight doubles the contribution of temporal phrases: a time-bound
// expression is the strongest signal that a statement is a commitment.
const temporalWeight = 2

// Score holds the per-category keyword sub-scores of one message and their
// sum. Each matching phrase contributes once regardless of how many times it
// occurs in the text.
type Score struct {
	Commitment int
	Temporal   int
	Business   int
	Total      int
}

// Scorer computes keyword scores against an injected Lexicon.
type Scorer struct {
	lexicon *Lexicon
}

// NewScorer creates a Scorer over the given lexicon.
func NewScorer(lexicon *Lexicon) *Scorer {
	return &Scorer{lexicon: lexicon}
}

// Score computes the commitment, temporal, and business sub-scores of the
// text. Matching is case-insensitive substring containment; phrases are
// checked independently and overlapping matches across phrases are not
// deduplicated.
func (s *Scorer) Score(text string) Score {
	lower := strings.ToLower(text)

	score := Score{
		Commitment: countPhrases(lower, s.lexicon.commitment),
		Temporal:   countPhrases(lower, s.lexicon.temporal) * temporalWeight,
		Business:   countPhrases(lower, s.lexicon.business),
	}
	score.Total = score.Commitment + score.Temporal + score.Business

	return score
}

func countPhrases(lower string, phrases []string) int {
	count := 0
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}
