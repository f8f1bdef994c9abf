// engine_adapter.go: conversions between engine values and event payloads.
package game

import (
	"fmt"
	"strings"

	engine "github.com/rsucco/doubleskunk/engine"
)

// engineRankToString converts an engine rank to its event string.
func engineRankToString(rank uint8) string {
	switch rank {
	case engine.RankAce:
		return "A"
	case engine.RankTen:
		return "T"
	case engine.RankJack:
		return "J"
	case engine.RankQueen:
		return "Q"
	case engine.RankKing:
		return "K"
	}
	if rank >= engine.RankTwo && rank <= engine.RankNine {
		return string(rune('0' + rank))
	}
	return "?"
}

// engineSuitToString converts an engine suit to its event string.
func engineSuitToString(suit uint8) string {
	switch suit {
	case engine.SuitClubs:
		return "C"
	case engine.SuitDiamonds:
		return "D"
	case engine.SuitHearts:
		return "H"
	case engine.SuitSpades:
		return "S"
	}
	return "?"
}

// cardCode is the compact form used in events, e.g. "TH". engine.ParseCard
// accepts it.
func cardCode(c engine.Card) string {
	return engineRankToString(c.Rank()) + engineSuitToString(c.Suit())
}

func toEventCard(c engine.Card) EventCard {
	return EventCard{
		Code:  cardCode(c),
		Rank:  engineRankToString(c.Rank()),
		Suit:  engineSuitToString(c.Suit()),
		Value: c.Value(),
	}
}

func toEventCards(cards []engine.Card) []EventCard {
	out := make([]EventCard, len(cards))
	for i, c := range cards {
		out[i] = toEventCard(c)
		idx := i
		out[i].Idx = &idx
	}
	return out
}

// fromEventCard parses the card an event carries.
func fromEventCard(ec *EventCard) (engine.Card, error) {
	if ec == nil {
		return engine.EmptyCard, fmt.Errorf("event has no card")
	}
	return engine.ParseCard(ec.Code)
}

func fromEventCards(ecs []EventCard) ([]engine.Card, error) {
	out := make([]engine.Card, 0, len(ecs))
	for i := range ecs {
		c, err := fromEventCard(&ecs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// tallyMessage renders one line of a hand count, e.g. "Pair royal for 8".
func tallyMessage(line engine.TallyLine) string {
	var label string
	switch line.Category {
	case engine.CategoryFifteen:
		label = "15"
	case engine.CategoryPair:
		label = "Pair"
	case engine.CategoryPairRoyal:
		label = "Pair royal"
	case engine.CategoryDoublePairRoyal:
		label = "Pair double royal"
	case engine.CategoryRun:
		label = fmt.Sprintf("%d-card run", len(line.Cards))
	case engine.CategoryFlush:
		label = fmt.Sprintf("%d-card flush", line.Points)
	case engine.CategoryNibs:
		label = "Nibs"
	default:
		label = line.Category.String()
	}
	return fmt.Sprintf("%s for %d: %s", label, line.Total, engine.CardsString(line.Cards))
}

func tallyMessages(lines []engine.TallyLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = tallyMessage(l)
	}
	return out
}

// pegMessage describes points pegged by one group during play.
func pegMessage(name string, g engine.ScoredGroup) string {
	var what string
	switch g.Category {
	case engine.CategoryFifteen:
		what = "15"
	case engine.CategoryThirtyOne:
		what = "31"
	case engine.CategoryPair:
		what = "a pair"
	case engine.CategoryPairRoyal:
		what = "a pair royal"
	case engine.CategoryDoublePairRoyal:
		what = "a pair double royal"
	case engine.CategoryRun:
		what = fmt.Sprintf("a %d-card run", len(g.Cards))
	case engine.CategoryGo:
		what = "a go"
	case engine.CategoryLastCard:
		what = "last card"
	case engine.CategoryHeels:
		what = "heels"
	default:
		what = g.Category.String()
	}
	unit := "points"
	if g.Points == 1 {
		unit = "point"
	}
	return fmt.Sprintf("%s scores %d %s for %s", name, g.Points, unit, what)
}

func skunkMessage(winner string, level engine.SkunkLevel) string {
	switch level {
	case engine.SkunkTriple:
		return winner + " wins with a TRIPLE SKUNK"
	case engine.SkunkDouble:
		return winner + " wins with a DOUBLE SKUNK"
	case engine.SkunkSingle:
		return winner + " wins with a SKUNK"
	}
	return winner + " wins"
}

// handLabel names a counted hand for messages.
func handLabel(name string, isCrib bool) string {
	if isCrib {
		return strings.TrimSpace(name) + "'s crib"
	}
	return strings.TrimSpace(name) + "'s hand"
}
