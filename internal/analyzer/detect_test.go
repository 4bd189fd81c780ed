package analyzer

import (
	"strings"
	"testing"
)

func operatorMessage(id int64, text string) Message {
	m := testMessage(id, text)
	m.FromOperator = true
	return m
}

func TestDetectorFindCandidates(t *testing.T) {
	t.Parallel()

	detector := NewDetector(DefaultLexicon(), DefaultScoreThreshold)

	t.Run("Client messages are ignored", func(t *testing.T) {
		t.Parallel()
		conv := NewConversation(0, []Message{
			testMessage(1, "Обов'язково надішлю прайс завтра"),
		})

		if got := detector.FindCandidates(conv); len(got) != 0 {
			t.Errorf("got %d candidates from client-only conversation, want 0", len(got))
		}
	})

	t.Run("Threshold is strict", func(t *testing.T) {
		t.Parallel()
		// "надішлю звіт" scores exactly 2: at the threshold, not above it.
		conv := NewConversation(0, []Message{
			operatorMessage(1, "надішлю звіт, точно надішлю"),
		})

		if got := detector.FindCandidates(conv); len(got) != 0 {
			t.Errorf("got %d candidates at threshold score, want 0", len(got))
		}
	})

	t.Run("Candidates sorted by score descending", func(t *testing.T) {
		t.Parallel()
		conv := NewConversation(0, []Message{
			operatorMessage(1, "зроблю завтра"),
			operatorMessage(2, "Обов'язково надішлю прайс завтра"),
			operatorMessage(3, "підготую договір завтра"),
		})

		got := detector.FindCandidates(conv)
		if len(got) != 3 {
			t.Fatalf("got %d candidates, want 3", len(got))
		}
		if got[0].Message.ID != 2 {
			t.Errorf("highest-scored candidate is message %d, want 2", got[0].Message.ID)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Score.Total > got[i-1].Score.Total {
				t.Errorf("candidates not sorted: %d before %d", got[i-1].Score.Total, got[i].Score.Total)
			}
		}
	})

	t.Run("Ties keep conversation order", func(t *testing.T) {
		t.Parallel()
		conv := NewConversation(0, []Message{
			operatorMessage(1, "зроблю завтра"),
			operatorMessage(2, "напишу завтра"),
		})

		got := detector.FindCandidates(conv)
		if len(got) != 2 {
			t.Fatalf("got %d candidates, want 2", len(got))
		}
		if got[0].Message.ID != 1 || got[1].Message.ID != 2 {
			t.Errorf("tied candidates reordered: got %d, %d", got[0].Message.ID, got[1].Message.ID)
		}
	})
}

func TestDetectorExtractSentences(t *testing.T) {
	t.Parallel()

	detector := NewDetector(DefaultLexicon(), DefaultScoreThreshold)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "Single commitment sentence",
			text: "Обов'язково надішлю прайс завтра",
			want: []string{"Обов'язково надішлю прайс завтра"},
		},
		{
			name: "Commitment sentence picked out of several",
			text: "Дякую за дзвінок! Підготую договір до п'ятниці. Гарного дня вам",
			want: []string{"Підготую договір до п'ятниці"},
		},
		{
			name: "Short fragments dropped",
			text: "Зроблю. Надішлю вам кошторис завтра.",
			want: []string{"Надішлю вам кошторис завтра"},
		},
		{
			name: "No commitment means no sentences",
			text: "Дякую за звернення, гарного дня",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := detector.extractSentences(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d sentences %v, want %d", len(got), got, len(tc.want))
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestDetectorExtractTimeMentions(t *testing.T) {
	t.Parallel()

	detector := NewDetector(DefaultLexicon(), DefaultScoreThreshold)

	t.Run("Position counts characters", func(t *testing.T) {
		t.Parallel()
		mentions := detector.extractTimeMentions("Обов'язково надішлю прайс завтра")
		if len(mentions) != 1 {
			t.Fatalf("got %d mentions, want 1", len(mentions))
		}

		m := mentions[0]
		if m.Phrase != "завтра" {
			t.Errorf("Phrase = %q, want %q", m.Phrase, "завтра")
		}
		if m.Position != 26 {
			t.Errorf("Position = %d, want 26", m.Position)
		}
		if !strings.HasSuffix(m.Context, "завтра") {
			t.Errorf("Context = %q, want suffix %q", m.Context, "завтра")
		}
	})

	t.Run("Context window is clamped", func(t *testing.T) {
		t.Parallel()
		mentions := detector.extractTimeMentions("завтра")
		if len(mentions) != 1 {
			t.Fatalf("got %d mentions, want 1", len(mentions))
		}
		if got := mentions[0]; got.Context != "завтра" || got.Position != 0 {
			t.Errorf("got context %q at %d, want %q at 0", got.Context, got.Position, "завтра")
		}
	})

	t.Run("Uppercase phrase keeps original context", func(t *testing.T) {
		t.Parallel()
		mentions := detector.extractTimeMentions("Надішлю ЗАВТРА вранці")
		if len(mentions) != 2 {
			t.Fatalf("got %d mentions, want 2", len(mentions))
		}

		var tomorrow *TimeMention
		for i := range mentions {
			if mentions[i].Phrase == "завтра" {
				tomorrow = &mentions[i]
			}
		}
		if tomorrow == nil {
			t.Fatalf("no mention for %q in %v", "завтра", mentions)
		}
		if tomorrow.Position != 8 {
			t.Errorf("Position = %d, want 8", tomorrow.Position)
		}
		if !strings.Contains(tomorrow.Context, "ЗАВТРА") {
			t.Errorf("Context = %q, want the original casing preserved", tomorrow.Context)
		}
	})

	t.Run("No temporal phrase", func(t *testing.T) {
		t.Parallel()
		if got := detector.extractTimeMentions("надішлю прайс"); len(got) != 0 {
			t.Errorf("got %d mentions, want 0", len(got))
		}
	})
}

func TestRuneIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{name: "Cyrillic offset", haystack: "прайс завтра", needle: "завтра", want: 6},
		{name: "At start", haystack: "завтра зранку", needle: "завтра", want: 0},
		{name: "Absent", haystack: "прайс", needle: "завтра", want: -1},
		{name: "Needle longer than haystack", haystack: "за", needle: "завтра", want: -1},
		{name: "Empty needle", haystack: "прайс", needle: "", want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := runeIndex([]rune(tc.haystack), []rune(tc.needle)); got != tc.want {
				t.Errorf("runeIndex(%q, %q) = %d, want %d", tc.haystack, tc.needle, got, tc.want)
			}
		})
	}
}
