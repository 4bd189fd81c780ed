package analyzer

import "testing"

func TestScorerScore(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultLexicon())

	tests := []struct {
		name           string
		text           string
		wantCommitment int
		wantTemporal   int
		wantBusiness   int
		wantTotal      int
	}{
		{
			name: "No signal",
			text: "дякую за інформацію",
		},
		{
			name:           "Commitment with temporal and business",
			text:           "Обов'язково надішлю прайс завтра",
			wantCommitment: 2,
			wantTemporal:   2,
			wantBusiness:   1,
			wantTotal:      5,
		},
		{
			name:           "Temporal doubled",
			text:           "зроблю завтра",
			wantCommitment: 1,
			wantTemporal:   2,
			wantTotal:      3,
		},
		{
			name:         "Business only",
			text:         "наш прайс у вкладенні",
			wantBusiness: 1,
			wantTotal:    1,
		},
		{
			name:           "Repeated phrase counted once",
			text:           "надішлю звіт, точно надішлю",
			wantCommitment: 2,
			wantTotal:      2,
		},
		{
			name:           "Case insensitive",
			text:           "НАДІШЛЮ ЗАВТРА",
			wantCommitment: 1,
			wantTemporal:   2,
			wantTotal:      3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := scorer.Score(tc.text)
			if got.Commitment != tc.wantCommitment {
				t.Errorf("Commitment = %d, want %d", got.Commitment, tc.wantCommitment)
			}
			if got.Temporal != tc.wantTemporal {
				t.Errorf("Temporal = %d, want %d", got.Temporal, tc.wantTemporal)
			}
			if got.Business != tc.wantBusiness {
				t.Errorf("Business = %d, want %d", got.Business, tc.wantBusiness)
			}
			if got.Total != tc.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total, tc.wantTotal)
			}
		})
	}
}
