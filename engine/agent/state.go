// Package agent implements the computer player: discard evaluation, pegging
// play ranking, difficulty policy, and the per-seat record of seen cards
// that feeds them.
package agent

import (
	"math/bits"

	engine "github.com/rsucco/doubleskunk/engine"
)

// AgentState records what one seat has seen during a round. It is a flat
// value type and can be copied with =.
type AgentState struct {
	Seat       uint8
	NumPlayers uint8

	Hand    [engine.MaxHandSize]engine.Card // own cards still held
	HandLen uint8

	seen    uint64                   // bit per card index known to be out of the unseen pool
	oppHeld [engine.MaxPlayers]uint8 // cards each seat still holds for pegging
	starter engine.Card
}

// NewAgentState returns an empty state for a seat.
func NewAgentState(seat, numPlayers uint8) AgentState {
	if numPlayers == 0 {
		numPlayers = 2
	}
	return AgentState{Seat: seat, NumPlayers: numPlayers, starter: engine.EmptyCard}
}

// ResetRound forgets everything seen in the previous round.
func (a *AgentState) ResetRound() {
	*a = NewAgentState(a.Seat, a.NumPlayers)
}

func (a *AgentState) markSeen(c engine.Card) {
	if i := c.Index(); i >= 0 {
		a.seen |= 1 << uint(i)
	}
}

// ObserveHand records the seat's dealt cards. Every other seat is assumed to
// keep engine.KeepSize cards for pegging.
func (a *AgentState) ObserveHand(cards []engine.Card) {
	a.HandLen = uint8(copy(a.Hand[:], cards))
	for _, c := range cards {
		a.markSeen(c)
	}
	for s := uint8(0); s < a.NumPlayers; s++ {
		a.oppHeld[s] = engine.KeepSize
	}
}

// ObserveDiscard removes the seat's own discards from its hand. They stay
// seen: they are in the crib, not in an opponent's hand.
func (a *AgentState) ObserveDiscard(cards []engine.Card) {
	for _, c := range cards {
		a.removeOwn(c)
	}
}

// ObserveStarter records the cut card.
func (a *AgentState) ObserveStarter(c engine.Card) {
	a.starter = c
	a.markSeen(c)
}

// ObservePlay records a pegged card from any seat.
func (a *AgentState) ObservePlay(seat uint8, c engine.Card) {
	a.markSeen(c)
	if seat == a.Seat {
		a.removeOwn(c)
	}
	if seat < engine.MaxPlayers && a.oppHeld[seat] > 0 {
		a.oppHeld[seat]--
	}
}

func (a *AgentState) removeOwn(c engine.Card) {
	for i := uint8(0); i < a.HandLen; i++ {
		if a.Hand[i] == c {
			copy(a.Hand[i:], a.Hand[i+1:a.HandLen])
			a.HandLen--
			a.Hand[a.HandLen] = engine.EmptyCard
			return
		}
	}
}

// Update syncs the state from a game as seen by the seat: its own cards,
// the starter once cut, and every card pegged this round.
func (a *AgentState) Update(g *engine.GameState) {
	a.ResetRound()
	a.NumPlayers = g.NumPlayers()
	own := g.HandCards(a.Seat)
	if g.Phase == engine.PhasePegging {
		own = g.PegCards(a.Seat)
	}
	for _, c := range g.HandCards(a.Seat) {
		a.markSeen(c)
	}
	for _, c := range g.ThrownCards(a.Seat) {
		a.markSeen(c)
	}
	a.HandLen = uint8(copy(a.Hand[:], own))
	for _, c := range own {
		a.markSeen(c)
	}
	for s := uint8(0); s < a.NumPlayers; s++ {
		a.oppHeld[s] = g.Players[s].PegLen
	}
	if g.Starter != engine.EmptyCard {
		a.ObserveStarter(g.Starter)
	}
	for _, c := range g.PlayedCards() {
		a.markSeen(c)
	}
}

// Starter returns the cut card, or EmptyCard before the cut.
func (a *AgentState) Starter() engine.Card { return a.starter }

// OwnCards returns a copy of the cards the seat still holds.
func (a *AgentState) OwnCards() []engine.Card {
	return append([]engine.Card(nil), a.Hand[:a.HandLen]...)
}

// OpponentHandSize returns how many pegging cards a seat still holds.
func (a *AgentState) OpponentHandSize(seat uint8) int {
	if seat >= engine.MaxPlayers {
		return 0
	}
	return int(a.oppHeld[seat])
}

// SeenCount returns how many distinct cards the seat has seen.
func (a *AgentState) SeenCount() int { return bits.OnesCount64(a.seen) }

// Unseen returns every card the seat has not seen, in index order.
func (a *AgentState) Unseen() []engine.Card {
	out := make([]engine.Card, 0, engine.DeckSize)
	for i := 0; i < engine.DeckSize; i++ {
		if a.seen&(1<<uint(i)) == 0 {
			out = append(out, engine.CardFromIndex(i))
		}
	}
	return out
}

// Distribution returns the unseen cards counted by rank.
func (a *AgentState) Distribution() Distribution {
	return NewDistribution(a.Unseen())
}

// PlayContext builds the pegging context for the seat's next play, with opp
// as the seat that replies.
func (a *AgentState) PlayContext(legal, sequence []engine.Card, count int, opp uint8) PlayContext {
	d := a.Distribution()
	return PlayContext{
		Legal:            legal,
		Sequence:         sequence,
		Count:            count,
		Remaining:        &d,
		OpponentHandSize: a.OpponentHandSize(opp),
		Hand:             a.OwnCards(),
	}
}
