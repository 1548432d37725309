package engine

import "slices"

// RuleEnv is the environment adversary rule conditions are evaluated in.
type RuleEnv struct {
	Round int
	Level int
	Deck  []int
}

// FirstIndex returns the deck position of the first card of stage, or -1.
func (e RuleEnv) FirstIndex(stage int) int {
	return slices.Index(e.Deck, stage)
}

// HighImmigration reports whether England's extra Build tile is still in play.
func (e RuleEnv) HighImmigration() bool {
	return ShouldShowHighImmigration(e.Round, e.Deck, e.Level)
}

// ShouldShowHighImmigration reports whether the High Immigration tile is
// active in round. From level 4 it stays all game; at level 3 it is removed
// once the first Stage II card reaches it, three rounds after being explored.
func ShouldShowHighImmigration(round int, deck []int, level int) bool {
	if level >= 4 {
		return true
	}
	if i := slices.Index(deck, 2); i != -1 && round >= i+3 {
		return false
	}
	return true
}
