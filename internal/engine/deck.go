package engine

// StandardDeck is the invader deck layout used without an adversary.
const StandardDeck = "111-2222-33333"

// ParseDeck turns a layout such as "111-2222-33333" into card stages.
// Dashes are cosmetic; any other non-digit is dropped.
func ParseDeck(layout string) []int {
	deck := make([]int, 0, len(layout))
	for _, r := range layout {
		if r >= '0' && r <= '9' {
			deck = append(deck, int(r-'0'))
		}
	}
	return deck
}

// BuildDeck returns the invader deck for an adversary at level. An empty or
// unknown adversary id yields the standard deck.
func (e *Engine) BuildDeck(adversaryID string, level int) []int {
	layout := StandardDeck
	if adversaryID == "" {
		return ParseDeck(layout)
	}
	adv, ok := e.catalog.Adversary(adversaryID)
	if !ok {
		return ParseDeck(layout)
	}

	for l := level; l >= 0; l-- {
		if lvl, ok := adv.Level(l); ok && lvl.InvaderDeck != "" {
			layout = lvl.InvaderDeck
			break
		}
	}
	deck := ParseDeck(layout)

	for _, rule := range adv.DeckRules {
		if level < rule.MinLevel {
			continue
		}
		n := min(rule.RemoveTop, len(deck))
		deck = deck[n:]
	}
	return deck
}
