package engine

import (
	"testing"

	"github.com/tatianab/spirit-tracker/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInput
		want models.ScoreBreakdown
	}{
		{
			name: "victory",
			in:   ScoreInput{Outcome: models.Victory, Difficulty: 6, Dahan: 8, Blight: 3, InvaderCards: 4, PlayerCount: 2},
			want: models.ScoreBreakdown{BaseScore: 40, InvaderScore: 8, DahanPoints: 4, BlightPenalty: 1, Total: 51},
		},
		{
			name: "defeat",
			in:   ScoreInput{Outcome: models.Defeat, Difficulty: 4, Dahan: 5, Blight: 10, InvaderCards: 6, PlayerCount: 3},
			want: models.ScoreBreakdown{BaseScore: 8, InvaderScore: 6, DahanPoints: 1, BlightPenalty: 3, Total: 12},
		},
		{
			name: "negative total is kept",
			in:   ScoreInput{Outcome: models.Defeat, Difficulty: -1, Blight: 12, PlayerCount: 1},
			want: models.ScoreBreakdown{BaseScore: -2, BlightPenalty: 12, Total: -14},
		},
		{
			name: "zero players treated as one",
			in:   ScoreInput{Outcome: models.Victory, Dahan: 3, PlayerCount: 0},
			want: models.ScoreBreakdown{BaseScore: 10, DahanPoints: 3, Total: 13},
		},
	}
	for _, tt := range tests {
		if got := Score(tt.in); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	in := ScoreInput{Outcome: models.Victory, Difficulty: 3, Dahan: 11, Blight: 4, InvaderCards: 2, PlayerCount: 4}
	if Score(in) != Score(in) {
		t.Error("Expected identical breakdowns for identical input")
	}
}

func TestInvaderCardCounts(t *testing.T) {
	tests := []struct {
		round, deckLen       int
		remaining, discarded int
	}{
		{1, 12, 10, 2},
		{5, 12, 6, 6},
		{11, 12, 0, 12},
		{20, 12, 0, 12},
		{3, 8, 4, 4},
	}
	for _, tt := range tests {
		remaining, discarded := InvaderCardCounts(tt.round, tt.deckLen)
		if remaining != tt.remaining || discarded != tt.discarded {
			t.Errorf("InvaderCardCounts(%d, %d) = %d, %d; expected %d, %d", tt.round, tt.deckLen, remaining, discarded, tt.remaining, tt.discarded)
		}
	}

	if got := InvaderCardsFor(models.Victory, 5, 12); got != 6 {
		t.Errorf("Expected 6 remaining cards on victory, got %d", got)
	}
	if got := InvaderCardsFor(models.Defeat, 3, 12); got != 4 {
		t.Errorf("Expected 4 drawn cards on defeat, got %d", got)
	}
}
