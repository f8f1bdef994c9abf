// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	engine "github.com/rsucco/doubleskunk/engine"
)

// ObfCard represents a card's state for client synchronization, potentially hiding details.
type ObfCard struct {
	Known bool   `json:"known"` // True if the card is revealed to the requesting client.
	Code  string `json:"code,omitempty"`
	Rank  string `json:"rank,omitempty"`
	Suit  string `json:"suit,omitempty"`
	Value int    `json:"value,omitempty"`
	Idx   *int   `json:"idx,omitempty"`
}

// ObfPlayerState represents the state of a single seat, obfuscated for a specific observer.
type ObfPlayerState struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Name          string    `json:"name"`
	Seat          int       `json:"seat"`
	Score         int       `json:"score"`
	HandSize      int       `json:"handSize"`
	PegHandSize   int       `json:"pegHandSize"`
	IsDealer      bool      `json:"isDealer"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	// RevealedHand is populated for the requesting seat, and for every seat
	// once hands have been shown.
	RevealedHand []ObfCard `json:"revealedHand,omitempty"`
}

// ObfGameState represents the overall game state, obfuscated for a specific observer.
type ObfGameState struct {
	GameID          uuid.UUID         `json:"gameId"`
	Started         bool              `json:"started"`
	GameOver        bool              `json:"gameOver"`
	Phase           string            `json:"phase"`
	Round           int               `json:"round"`
	DealerID        uuid.UUID         `json:"dealerId"`
	CurrentPlayerID uuid.UUID         `json:"currentPlayerId"`
	Count           int               `json:"count"`
	Sequence        []ObfCard         `json:"sequence,omitempty"`
	Starter         *ObfCard          `json:"starter,omitempty"`
	CribSize        int               `json:"cribSize"`
	Crib            []ObfCard         `json:"crib,omitempty"` // Revealed after the show.
	Players         []ObfPlayerState  `json:"players"`
	HouseRules      engine.HouseRules `json:"houseRules"`
}

func knownCard(c engine.Card, idx int) ObfCard {
	ec := toEventCard(c)
	return ObfCard{Known: true, Code: ec.Code, Rank: ec.Rank, Suit: ec.Suit, Value: ec.Value, Idx: &idx}
}

func knownCards(cards []engine.Card) []ObfCard {
	out := make([]ObfCard, len(cards))
	for i, c := range cards {
		out[i] = knownCard(c, i)
	}
	return out
}

// GetCurrentObfuscatedGameState generates a snapshot of the game state,
// tailored to the perspective of the requesting user (`forUser`). Users
// who are not seated see only public information.
// This function assumes the game lock is HELD by the caller.
func (g *CribbageGame) GetCurrentObfuscatedGameState(forUser uuid.UUID) ObfGameState {
	e := &g.Engine
	obf := ObfGameState{
		GameID:     g.ID,
		Started:    g.Started,
		GameOver:   e.IsTerminal() || g.GameOver,
		Phase:      e.Phase.String(),
		Round:      int(e.Round),
		DealerID:   g.Players[e.Dealer].ID(),
		Count:      int(e.Count),
		Sequence:   knownCards(e.SequenceCards()),
		CribSize:   int(e.CribLen),
		HouseRules: e.Rules,
	}
	if e.Phase == engine.PhasePegging && !obf.GameOver {
		obf.CurrentPlayerID = g.Players[e.CurrentPlayer].ID()
	}
	if e.Starter != engine.EmptyCard {
		s := knownCard(e.Starter, 0)
		s.Idx = nil
		obf.Starter = &s
	}
	if g.cribShown {
		obf.Crib = knownCards(e.CribCards())
	}

	self := g.seatOf(forUser)
	for i, p := range g.Players {
		seat := uint8(i)
		ps := ObfPlayerState{
			PlayerID:      p.ID(),
			Name:          p.Name(),
			Seat:          i,
			Score:         int(e.Players[seat].Score),
			HandSize:      int(e.Players[seat].HandLen),
			PegHandSize:   int(e.Players[seat].PegLen),
			IsDealer:      seat == e.Dealer,
			IsCurrentTurn: obf.CurrentPlayerID == p.ID(),
		}
		if i == self || g.cribShown {
			ps.RevealedHand = knownCards(e.HandCards(seat))
		}
		obf.Players = append(obf.Players, ps)
	}
	return obf
}
