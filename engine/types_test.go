package engine

import "testing"

// TestCardPacking verifies suit and rank survive packing for the whole deck.
func TestCardPacking(t *testing.T) {
	for suit := uint8(0); suit < NumSuits; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			c := NewCard(suit, rank)
			if c.Suit() != suit || c.Rank() != rank {
				t.Errorf("NewCard(%d,%d) unpacked to (%d,%d)", suit, rank, c.Suit(), c.Rank())
			}
			if !c.Valid() {
				t.Errorf("%s should be valid", c)
			}
		}
	}
	if EmptyCard.Valid() {
		t.Error("EmptyCard should not be valid")
	}
}

// TestCardValue verifies face cards count ten and others count their rank.
func TestCardValue(t *testing.T) {
	tests := []struct {
		rank uint8
		want int
	}{
		{RankAce, 1}, {RankFive, 5}, {RankNine, 9}, {RankTen, 10},
		{RankJack, 10}, {RankQueen, 10}, {RankKing, 10},
	}
	for _, tt := range tests {
		if got := NewCard(SuitSpades, tt.rank).Value(); got != tt.want {
			t.Errorf("rank %d: Value() = %d, want %d", tt.rank, got, tt.want)
		}
	}
	if EmptyCard.Value() != 0 {
		t.Errorf("EmptyCard.Value() = %d, want 0", EmptyCard.Value())
	}
}

// TestCardIndexRoundTrip verifies Index and CardFromIndex cover 0..51 once.
func TestCardIndexRoundTrip(t *testing.T) {
	seen := make(map[Card]bool)
	for i := 0; i < DeckSize; i++ {
		c := CardFromIndex(i)
		if c.Index() != i {
			t.Errorf("CardFromIndex(%d).Index() = %d", i, c.Index())
		}
		if seen[c] {
			t.Errorf("duplicate card %s at index %d", c, i)
		}
		seen[c] = true
	}
	if CardFromIndex(52) != EmptyCard || CardFromIndex(-1) != EmptyCard {
		t.Error("out-of-range index should map to EmptyCard")
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"5s", NewCard(SuitSpades, RankFive)},
		{"10h", NewCard(SuitHearts, RankTen)},
		{"TH", NewCard(SuitHearts, RankTen)},
		{"jc", NewCard(SuitClubs, RankJack)},
		{"Q♦", NewCard(SuitDiamonds, RankQueen)},
		{"A♠", NewCard(SuitSpades, RankAce)},
		{" kd ", NewCard(SuitDiamonds, RankKing)},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.in)
		if err != nil {
			t.Errorf("ParseCard(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "5", "5x", "11h", "0s", "ZZ"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}

func TestCardString(t *testing.T) {
	if s := NewCard(SuitHearts, RankTen).String(); s != "10♥" {
		t.Errorf("String() = %q, want 10♥", s)
	}
	if s := NewCard(SuitClubs, RankJack).String(); s != "J♣" {
		t.Errorf("String() = %q, want J♣", s)
	}
	if s := EmptyCard.String(); s != "--" {
		t.Errorf("EmptyCard.String() = %q", s)
	}
}

func TestHandDiscard(t *testing.T) {
	h := NewHand(MustParseCards("5s", "5h", "6d", "7c", "8c", "js")...)
	if err := h.Discard(MustParseCards("5h", "js")...); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if len(h.Cards) != 4 {
		t.Fatalf("len = %d, want 4", len(h.Cards))
	}
	if h.Contains(MustParseCards("5h")[0]) {
		t.Error("5♥ should be gone")
	}

	before := len(h.Cards)
	err := h.Discard(MustParseCards("5s", "kd")...)
	if err == nil {
		t.Fatal("expected ErrCardNotInHand")
	}
	if len(h.Cards) != before {
		t.Error("failed discard must not remove any card")
	}
}

func TestRemainder(t *testing.T) {
	hand := MustParseCards("5s", "5h", "6d", "7c", "8c", "js")
	rest := Remainder(hand)
	if len(rest) != 46 {
		t.Fatalf("len = %d, want 46", len(rest))
	}
	for _, c := range hand {
		if ContainsCard(rest, c) {
			t.Errorf("remainder contains %s", c)
		}
	}
}

func TestCombinationsCount(t *testing.T) {
	tests := []struct{ n, k, want int }{
		{6, 4, 15}, {5, 4, 5}, {5, 2, 10}, {52, 2, 1326}, {3, 4, 0}, {4, 0, 1},
	}
	for _, tt := range tests {
		got := 0
		Combinations(tt.n, tt.k, func([]int) bool { got++; return true })
		if got != tt.want {
			t.Errorf("C(%d,%d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}
