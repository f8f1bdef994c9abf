// Package engine implements cribbage scoring and the round state machine.
//
// Scoring functions are pure and safe for concurrent use. GameState is a flat
// value type (no pointers, no slices) so it can be copied with = for
// simulation and lookahead.
package engine

const (
	MaxPlayers  = 3
	MaxHandSize = 6
	KeepSize    = 4
	CribSize    = 4
	MaxSequence = MaxPlayers * KeepSize
	// CutMargin is the number of cards that must stay on each side of a cut.
	CutMargin = 4
)

// Phase is the stage of the current round.
type Phase uint8

const (
	PhaseDeal Phase = iota
	PhaseDiscard
	PhaseCut
	PhasePegging
	PhaseShow
	PhaseGameOver
)

var phaseNames = [...]string{"deal", "discard", "cut", "pegging", "show", "game_over"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// PlayerState holds one seat's cards and score.
type PlayerState struct {
	Hand      [MaxHandSize]Card // dealt cards; the kept four after discarding
	HandLen   uint8
	PegHand   [KeepSize]Card // kept cards not yet pegged this round
	PegLen    uint8
	Thrown    [2]Card // own discards to the crib
	ThrownLen uint8
	Discarded bool
	Score     int16
	PrevScore int16 // score before the most recent award
}

// GameState holds the complete, self-contained state of a cribbage game.
type GameState struct {
	Players       [MaxPlayers]PlayerState
	Deck          [DeckSize]Card
	DeckLen       uint8
	Crib          [CribSize]Card
	CribLen       uint8
	Starter       Card
	Sequence      [MaxSequence]Card // cards pegged since the last reset
	SeqLen        uint8
	Played        [MaxSequence]Card // every card pegged this round
	PlayedLen     uint8
	Count         uint8
	Dealer        uint8
	CurrentPlayer uint8
	LastPlayer    int8  // last seat to play in the current sequence, -1 if none
	Passed        uint8 // bitmask of seats that said go in the current sequence
	Phase         Phase
	Winner        int8
	Round         uint16
	RNG           uint64
	Rules         HouseRules
}

// ---------------------------------------------------------------------------
// xorshift64 RNG
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewGame, CutForDeal and Deal
// ---------------------------------------------------------------------------

// NewGame initializes a GameState with the given seed and rules. Seat 0
// deals unless CutForDeal is called.
func NewGame(seed uint64, rules HouseRules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.Winner = -1
	g.LastPlayer = -1
	g.Starter = EmptyCard
	g.Phase = PhaseDeal
	return g
}

// CutForDeal has every seat cut a card from a fresh deck; the lowest rank
// deals. Ties for lowest are cut again. Returns the deciding cuts.
func (g *GameState) CutForDeal() ([MaxPlayers]Card, uint8) {
	n := g.Rules.numPlayers()
	var cuts [MaxPlayers]Card
	for {
		var taken [DeckSize]bool
		for p := uint8(0); p < MaxPlayers; p++ {
			cuts[p] = EmptyCard
		}
		for p := uint8(0); p < n; p++ {
			i := int(g.randN(DeckSize))
			for taken[i] {
				i = (i + 1) % DeckSize
			}
			taken[i] = true
			cuts[p] = CardFromIndex(i)
		}

		low, lowCount := uint8(RankKing+1), 0
		var dealer uint8
		for p := uint8(0); p < n; p++ {
			r := cuts[p].Rank()
			switch {
			case r < low:
				low, lowCount, dealer = r, 1, p
			case r == low:
				lowCount++
			}
		}
		if lowCount == 1 {
			g.Dealer = dealer
			return cuts, dealer
		}
	}
}

// Deal shuffles a full deck and deals a new round, starting left of the
// dealer. With three players one card from the deck starts the crib.
func (g *GameState) Deal() error {
	if g.IsTerminal() {
		return ErrGameOver
	}
	if g.Phase != PhaseDeal {
		return ErrWrongPhase
	}

	n := g.Rules.numPlayers()
	for p := range g.Players {
		score, prev := g.Players[p].Score, g.Players[p].PrevScore
		g.Players[p] = PlayerState{Score: score, PrevScore: prev}
	}
	g.CribLen = 0
	g.Starter = EmptyCard
	g.SeqLen = 0
	g.PlayedLen = 0
	g.Count = 0
	g.Passed = 0
	g.LastPlayer = -1

	for i := 0; i < DeckSize; i++ {
		g.Deck[i] = CardFromIndex(i)
	}
	g.DeckLen = DeckSize

	// Fisher-Yates shuffle.
	for i := int(g.DeckLen) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i]
	}

	for c := 0; c < g.Rules.HandSize(); c++ {
		for i := uint8(1); i <= n; i++ {
			p := (g.Dealer + i) % n
			g.Players[p].Hand[c] = g.draw()
			g.Players[p].HandLen++
		}
	}
	if n == 3 {
		g.Crib[0] = g.draw()
		g.CribLen = 1
	}

	g.Round++
	g.CurrentPlayer = g.Pone()
	g.Phase = PhaseDiscard
	return nil
}

// draw pops the top card of the deck.
func (g *GameState) draw() Card {
	g.DeckLen--
	return g.Deck[g.DeckLen]
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// NumPlayers returns the number of seats in this game.
func (g *GameState) NumPlayers() uint8 { return g.Rules.numPlayers() }

// NextPlayer returns the seat after p in turn order.
func (g *GameState) NextPlayer(p uint8) uint8 {
	return (p + 1) % g.Rules.numPlayers()
}

// Pone returns the seat left of the dealer, who cuts and leads.
func (g *GameState) Pone() uint8 { return g.NextPlayer(g.Dealer) }

// Opponents returns all seats except the given one.
func (g *GameState) Opponents(player uint8) []uint8 {
	n := g.Rules.numPlayers()
	opps := make([]uint8, 0, n-1)
	for i := uint8(0); i < n; i++ {
		if i != player {
			opps = append(opps, i)
		}
	}
	return opps
}

// HandCards returns a copy of the seat's dealt or kept cards.
func (g *GameState) HandCards(player uint8) []Card {
	p := &g.Players[player]
	return append([]Card(nil), p.Hand[:p.HandLen]...)
}

// PegCards returns a copy of the seat's cards still to be pegged.
func (g *GameState) PegCards(player uint8) []Card {
	p := &g.Players[player]
	return append([]Card(nil), p.PegHand[:p.PegLen]...)
}

// ThrownCards returns the seat's own discards this round.
func (g *GameState) ThrownCards(player uint8) []Card {
	p := &g.Players[player]
	return append([]Card(nil), p.Thrown[:p.ThrownLen]...)
}

// CribCards returns a copy of the crib.
func (g *GameState) CribCards() []Card {
	return append([]Card(nil), g.Crib[:g.CribLen]...)
}

// SequenceCards returns the cards pegged since the last reset.
func (g *GameState) SequenceCards() []Card {
	return append([]Card(nil), g.Sequence[:g.SeqLen]...)
}

// PlayedCards returns every card pegged this round.
func (g *GameState) PlayedCards() []Card {
	return append([]Card(nil), g.Played[:g.PlayedLen]...)
}

// DeckCards returns the undealt cards.
func (g *GameState) DeckCards() []Card {
	return append([]Card(nil), g.Deck[:g.DeckLen]...)
}

// Scores returns each seat's score.
func (g *GameState) Scores() []int {
	n := g.Rules.numPlayers()
	out := make([]int, n)
	for p := uint8(0); p < n; p++ {
		out[p] = int(g.Players[p].Score)
	}
	return out
}

// award adds points to a seat, capped at the target score. Reaching the
// target ends the game.
func (g *GameState) award(player uint8, points int) {
	if points <= 0 || g.IsTerminal() {
		return
	}
	p := &g.Players[player]
	p.PrevScore = p.Score
	score := int(p.Score) + points
	if target := g.Rules.Target(); score >= target {
		score = target
		g.Winner = int8(player)
		g.Phase = PhaseGameOver
	}
	p.Score = int16(score)
}
