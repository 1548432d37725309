package engine

import "github.com/tatianab/spirit-tracker/internal/models"

// ScoreInput is everything the score formula depends on.
type ScoreInput struct {
	Outcome     models.Outcome
	Difficulty  int
	Dahan       int // surviving dahan
	Blight      int // blight on the island
	PlayerCount int
	// InvaderCards counts cards still in the deck on victory, and cards
	// face up or discarded on defeat.
	InvaderCards int
}

// Score computes the score breakdown. The total is not clamped.
func Score(in ScoreInput) models.ScoreBreakdown {
	players := max(in.PlayerCount, 1)

	var b models.ScoreBreakdown
	if in.Outcome == models.Victory {
		b.BaseScore = 5*in.Difficulty + 10
		b.InvaderScore = in.InvaderCards * 2
	} else {
		b.BaseScore = 2 * in.Difficulty
		b.InvaderScore = in.InvaderCards
	}
	b.DahanPoints = in.Dahan / players
	b.BlightPenalty = in.Blight / players
	b.Total = b.BaseScore + b.InvaderScore + b.DahanPoints - b.BlightPenalty
	return b
}

// InvaderMultiplier is the points per invader card for outcome.
func InvaderMultiplier(outcome models.Outcome) int {
	if outcome == models.Victory {
		return 2
	}
	return 1
}

// InvaderCardCounts derives the cards left in the deck and the cards drawn
// so far from the current round.
func InvaderCardCounts(round, deckLen int) (remaining, discarded int) {
	remaining = max(0, deckLen-(round+1))
	discarded = min(deckLen, round+1)
	return remaining, discarded
}

// InvaderCardsFor returns the card count the formula uses for outcome.
func InvaderCardsFor(outcome models.Outcome, round, deckLen int) int {
	remaining, discarded := InvaderCardCounts(round, deckLen)
	if outcome == models.Victory {
		return remaining
	}
	return discarded
}
