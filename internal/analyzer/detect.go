package analyzer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultScoreThreshold is the combined score a message must exceed
	// (strictly) to qualify as a candidate promise.
	DefaultScoreThreshold = 2

	minSentenceLength  = 10
	mentionContextSize = 20
)

// TimeMention is one temporal-phrase occurrence inside a message: the matched
// phrase, up to 20 characters of surrounding context on each side, and the
// character offset of the first occurrence.
type TimeMention struct {
	Phrase   string
	Context  string
	Position int
}

// CandidatePromise is a scored finding: an operator message whose combined
// keyword score cleared the threshold, together with the extracted
// commitment-bearing sentences and temporal mentions. Candidates are
// recomputed per analysis run and never persisted directly.
type CandidatePromise struct {
	Message      Message
	Score        Score
	Sentences    []string
	TimeMentions []TimeMention
}

// Detector finds candidate promises in a conversation.
type Detector struct {
	lexicon   *Lexicon
	scorer    *Scorer
	threshold int
}

// NewDetector creates a Detector. A threshold below zero falls back to
// DefaultScoreThreshold.
func NewDetector(lexicon *Lexicon, threshold int) *Detector {
	if threshold < 0 {
		threshold = DefaultScoreThreshold
	}
	return &Detector{
		lexicon:   lexicon,
		scorer:    NewScorer(lexicon),
		threshold: threshold,
	}
}

// FindCandidates scores every operator message in the conversation and
// returns those whose total score strictly exceeds the threshold, ordered by
// total score descending. The sort is stable: ties keep conversation order.
func (d *Detector) FindCandidates(conv Conversation) []CandidatePromise {
	var candidates []CandidatePromise

	for _, m := range conv.Messages {
		if !m.FromOperator {
			continue
		}

		score := d.scorer.Score(m.Text)
		if score.Total <= d.threshold {
			continue
		}

		candidates = append(candidates, CandidatePromise{
			Message:      m,
			Score:        score,
			Sentences:    d.extractSentences(m.Text),
			TimeMentions: d.extractTimeMentions(m.Text),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score.Total > candidates[j].Score.Total
	})

	return candidates
}

// extractSentences splits the text on sentence terminators and keeps trimmed
// fragments of at least 10 characters that contain a commitment phrase.
func (d *Detector) extractSentences(text string) []string {
	var sentences []string

	for _, fragment := range splitSentences(text) {
		fragment = strings.TrimSpace(fragment)
		if utf8.RuneCountInString(fragment) < minSentenceLength {
			continue
		}

		lower := strings.ToLower(fragment)
		for _, phrase := range d.lexicon.commitment {
			if strings.Contains(lower, phrase) {
				sentences = append(sentences, fragment)
				break
			}
		}
	}

	return sentences
}

// splitSentences splits on runs of '.', '!', '?'.
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// extractTimeMentions records, for each temporal phrase present in the text,
// its first occurrence with a context window clamped to the text bounds.
// Positions and window sizes are in characters, not bytes.
func (d *Detector) extractTimeMentions(text string) []TimeMention {
	runes := []rune(text)
	lowerRunes := []rune(strings.ToLower(text))

	var mentions []TimeMention
	for _, phrase := range d.lexicon.temporal {
		pos := runeIndex(lowerRunes, []rune(phrase))
		if pos < 0 {
			continue
		}

		start := pos - mentionContextSize
		if start < 0 {
			start = 0
		}
		end := pos + len([]rune(phrase)) + mentionContextSize
		if end > len(runes) {
			end = len(runes)
		}

		mentions = append(mentions, TimeMention{
			Phrase:   phrase,
			Context:  string(runes[start:end]),
			Position: pos,
		})
	}

	return mentions
}

// runeIndex returns the character offset of the first occurrence of needle
// in haystack, or -1.
func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
