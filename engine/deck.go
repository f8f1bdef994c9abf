package engine

// NewDeck returns the 52 cards in index order.
func NewDeck() []Card {
	deck := make([]Card, DeckSize)
	for i := range deck {
		deck[i] = CardFromIndex(i)
	}
	return deck
}

// Remainder returns the deck minus every excluded card, in index order.
func Remainder(excluded ...[]Card) []Card {
	var seen [DeckSize]bool
	for _, set := range excluded {
		for _, c := range set {
			if i := c.Index(); i >= 0 {
				seen[i] = true
			}
		}
	}
	out := make([]Card, 0, DeckSize)
	for i := 0; i < DeckSize; i++ {
		if !seen[i] {
			out = append(out, CardFromIndex(i))
		}
	}
	return out
}
