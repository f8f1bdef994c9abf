package engine

import "fmt"

// Hand is a set of cards plus the shared starter card. IsCrib marks the
// communal hand, which only scores a flush when the starter matches.
//
// Starter is EmptyCard until the cut and must never duplicate a card in Cards.
type Hand struct {
	Cards   []Card
	Starter Card
	IsCrib  bool
}

// NewHand builds a hand without a starter.
func NewHand(cards ...Card) Hand {
	return Hand{Cards: append([]Card(nil), cards...), Starter: EmptyCard}
}

// NewCrib builds a communal hand without a starter.
func NewCrib(cards ...Card) Hand {
	h := NewHand(cards...)
	h.IsCrib = true
	return h
}

// HasStarter reports whether the starter has been cut.
func (h Hand) HasStarter() bool { return h.Starter != EmptyCard }

// WithStarter returns a copy of h sharing the card slice, with starter set.
func (h Hand) WithStarter(c Card) Hand {
	h.Starter = c
	return h
}

// Pool returns the hand cards followed by the starter, if any.
func (h Hand) Pool() []Card {
	pool := make([]Card, 0, len(h.Cards)+1)
	pool = append(pool, h.Cards...)
	if h.HasStarter() {
		pool = append(pool, h.Starter)
	}
	return pool
}

// Clone returns a deep copy.
func (h Hand) Clone() Hand {
	h.Cards = append([]Card(nil), h.Cards...)
	return h
}

// Contains reports whether c is one of the hand cards (not the starter).
func (h Hand) Contains(c Card) bool { return ContainsCard(h.Cards, c) }

// Discard removes each card from the hand. Nothing is removed if any card
// is missing.
func (h *Hand) Discard(cards ...Card) error {
	remaining := append([]Card(nil), h.Cards...)
	for _, c := range cards {
		idx := -1
		for i, x := range remaining {
			if x == c {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("discard %s: %w", c, ErrCardNotInHand)
		}
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	h.Cards = remaining
	return nil
}

// String renders the cards sorted by rank, with the starter after a bar.
func (h Hand) String() string {
	sorted := append([]Card(nil), h.Cards...)
	SortByRank(sorted)
	s := CardsString(sorted)
	if h.HasStarter() {
		s += " | " + h.Starter.String()
	}
	return s
}
