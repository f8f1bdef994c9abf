package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Suit constants, packed into the upper 4 bits of Card.
const (
	SuitClubs    uint8 = 0
	SuitDiamonds uint8 = 1
	SuitHearts   uint8 = 2
	SuitSpades   uint8 = 3
)

// Rank constants, packed into the lower 4 bits of Card. Ace is low.
const (
	RankAce   uint8 = 1
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
)

const (
	NumSuits = 4
	NumRanks = 13
	DeckSize = NumSuits * NumRanks
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Value returns the count value of the card: face cards count 10.
func (c Card) Value() int {
	r := c.Rank()
	if c == EmptyCard || r == 0 {
		return 0
	}
	if r > RankTen {
		return 10
	}
	return int(r)
}

// Valid reports whether c is a real card of the 52-card deck.
func (c Card) Valid() bool {
	return c != EmptyCard && c.Suit() < NumSuits && c.Rank() >= RankAce && c.Rank() <= RankKing
}

// Index maps a card to 0..51 (suit-major). Invalid cards return -1.
func (c Card) Index() int {
	if !c.Valid() {
		return -1
	}
	return int(c.Suit())*NumRanks + int(c.Rank()-1)
}

// CardFromIndex is the inverse of Index.
func CardFromIndex(i int) Card {
	if i < 0 || i >= DeckSize {
		return EmptyCard
	}
	return NewCard(uint8(i/NumRanks), uint8(i%NumRanks)+1)
}

var rankNames = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var suitSymbols = [...]string{"♣", "♦", "♥", "♠"}

// RankString returns the short name of a rank ("A", "10", "K").
func RankString(rank uint8) string {
	if rank < RankAce || rank > RankKing {
		return "?"
	}
	return rankNames[rank]
}

// SuitString returns the suit symbol.
func SuitString(suit uint8) string {
	if suit >= NumSuits {
		return "?"
	}
	return suitSymbols[suit]
}

// String renders the card as rank followed by suit symbol, e.g. "10♥".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	return RankString(c.Rank()) + SuitString(c.Suit())
}

// ParseCard parses a card such as "5s", "10h", "TH", "jc" or "Q♦".
func ParseCard(s string) (Card, error) {
	in := strings.TrimSpace(s)
	if len(in) < 2 {
		return EmptyCard, fmt.Errorf("parse card %q: too short", s)
	}

	suitPart := ""
	rankPart := ""
	for _, sym := range suitSymbols {
		if strings.HasSuffix(in, sym) {
			suitPart = sym
			rankPart = strings.TrimSuffix(in, sym)
			break
		}
	}
	if suitPart == "" {
		suitPart = in[len(in)-1:]
		rankPart = in[:len(in)-1]
	}

	var suit uint8
	switch strings.ToUpper(suitPart) {
	case "C", "♣":
		suit = SuitClubs
	case "D", "♦":
		suit = SuitDiamonds
	case "H", "♥":
		suit = SuitHearts
	case "S", "♠":
		suit = SuitSpades
	default:
		return EmptyCard, fmt.Errorf("parse card %q: unknown suit %q", s, suitPart)
	}

	var rank uint8
	switch r := strings.ToUpper(rankPart); r {
	case "A", "1":
		rank = RankAce
	case "T", "10":
		rank = RankTen
	case "J":
		rank = RankJack
	case "Q":
		rank = RankQueen
	case "K":
		rank = RankKing
	default:
		if len(r) != 1 || r[0] < '2' || r[0] > '9' {
			return EmptyCard, fmt.Errorf("parse card %q: unknown rank %q", s, rankPart)
		}
		rank = r[0] - '0'
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses every string with ParseCard.
func ParseCards(ss ...string) ([]Card, error) {
	out := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParseCards is ParseCards for literals known to be valid.
func MustParseCards(ss ...string) []Card {
	cards, err := ParseCards(ss...)
	if err != nil {
		panic(err)
	}
	return cards
}

// SortByRank sorts cards by rank, then suit, in place.
func SortByRank(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Rank() != cards[j].Rank() {
			return cards[i].Rank() < cards[j].Rank()
		}
		return cards[i].Suit() < cards[j].Suit()
	})
}

// CardsString joins card strings with spaces.
func CardsString(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ContainsCard reports whether c is in cards.
func ContainsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
