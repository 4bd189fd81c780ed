package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minMessageLength   = 3
	spamMaxLength      = 1000
	spamMaxLinkCount   = 3
	spamUppercaseRatio = 0.7
)

// systemPhrases mark Telegram membership/metadata-change notices.
var systemPhrases = []string{
	"приєднався до групи",
	"залишив групу",
	"змінив назву групи",
	"встановив фото групи",
	"видалив фото групи",
}

// FilterMessages removes messages unlikely to carry meaningful content:
// too-short, emoji-only, system-generated, and spam-like ones. Checks run in
// that order and a message dropped by one check is never re-evaluated against
// later checks. Filtering is idempotent and preserves the order of surviving
// messages.
func FilterMessages(messages []Message) []Message {
	filtered := make([]Message, 0, len(messages))

	for _, m := range messages {
		if utf8.RuneCountInString(strings.TrimSpace(m.Text)) < minMessageLength {
			continue
		}
		if isOnlyEmoji(m.Text) {
			continue
		}
		if isSystemMessage(m.Text) {
			continue
		}
		if isSpamMessage(m.Text) {
			continue
		}
		filtered = append(filtered, m)
	}

	return filtered
}

// emojiRanges covers the recognized emoji/pictograph/symbol blocks. The
// U+24C2..U+1F251 block is deliberately broad: enclosed alphanumerics, CJK,
// and other pure-symbol runs count as "emoji" here, so messages made only of
// such characters are dropped like any sticker reaction.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200D, Hi: 0x200D, Stride: 1},
		{Lo: 0x231A, Hi: 0x231A, Stride: 1},
		{Lo: 0x23CF, Hi: 0x23CF, Stride: 1},
		{Lo: 0x23E9, Hi: 0x23E9, Stride: 1},
		{Lo: 0x24C2, Hi: 0xFFFF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0x1F251, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
	},
}

// isOnlyEmoji reports whether nothing remains after stripping emoji runes
// and whitespace.
func isOnlyEmoji(text string) bool {
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.Is(emojiRanges, r) {
			continue
		}
		return false
	}
	return true
}

func isSystemMessage(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range systemPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isSpamMessage applies the spam heuristics: excessive length, too many
// links, or a mostly-uppercase body.
func isSpamMessage(text string) bool {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return false
	}

	if total > spamMaxLength {
		return true
	}
	if strings.Count(text, "http") > spamMaxLinkCount {
		return true
	}

	upper := 0
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			upper++
		}
	}
	return float64(upper)/float64(total) > spamUppercaseRatio
}
