package engine

import "fmt"

// CutResult is the starter card and any heels points it earned the dealer.
type CutResult struct {
	Starter Card
	Heels   int
}

// SequenceEnd describes how a pegging sequence closed. Group is the go or
// last-card point; it is zero when the sequence closed on 31.
type SequenceEnd struct {
	Player uint8
	Group  ScoredGroup
}

// PlayOutcome is the result of a Play or Go action.
type PlayOutcome struct {
	Player uint8
	Card   Card // EmptyCard for a go
	PegResult
	End         *SequenceEnd // set when this action closed the sequence
	PeggingDone bool
}

// ShowResult is the count of one hand or the crib.
type ShowResult struct {
	Player uint8
	IsCrib bool
	Hand   Hand
	Points int
	Tally  []TallyLine
}

func (g *GameState) checkSeat(player uint8) error {
	if player >= g.Rules.numPlayers() {
		return fmt.Errorf("seat %d: %w", player, ErrNotYourTurn)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Discard
// ---------------------------------------------------------------------------

// Discard moves cards from a seat's hand to the crib. Every seat discards
// exactly Rules.DiscardCount cards; once all have, the round moves to the cut.
func (g *GameState) Discard(player uint8, cards ...Card) error {
	if g.IsTerminal() {
		return ErrGameOver
	}
	if g.Phase != PhaseDiscard {
		return ErrWrongPhase
	}
	if err := g.checkSeat(player); err != nil {
		return err
	}
	p := &g.Players[player]
	if p.Discarded {
		return fmt.Errorf("seat %d already discarded: %w", player, ErrWrongPhase)
	}
	if len(cards) != g.Rules.DiscardCount() {
		return fmt.Errorf("discard %d cards, want %d: %w", len(cards), g.Rules.DiscardCount(), ErrInvalidHandSize)
	}

	h := NewHand(p.Hand[:p.HandLen]...)
	if err := h.Discard(cards...); err != nil {
		return err
	}

	p.HandLen = uint8(copy(p.Hand[:], h.Cards))
	for i := p.HandLen; i < MaxHandSize; i++ {
		p.Hand[i] = EmptyCard
	}
	for _, c := range cards {
		g.Crib[g.CribLen] = c
		g.CribLen++
		p.Thrown[p.ThrownLen] = c
		p.ThrownLen++
	}
	p.Discarded = true

	n := g.Rules.numPlayers()
	for s := uint8(0); s < n; s++ {
		if !g.Players[s].Discarded {
			return nil
		}
	}
	g.CurrentPlayer = g.Pone()
	g.Phase = PhaseCut
	return nil
}

// ---------------------------------------------------------------------------
// Cut
// ---------------------------------------------------------------------------

// Cut turns the starter at the given depth into the undealt deck. A negative
// depth cuts at random; other depths are clamped so at least CutMargin cards
// stay on each side. A jack starter scores heels for the dealer.
func (g *GameState) Cut(depth int) (CutResult, error) {
	if g.IsTerminal() {
		return CutResult{Starter: EmptyCard}, ErrGameOver
	}
	if g.Phase != PhaseCut {
		return CutResult{Starter: EmptyCard}, ErrWrongPhase
	}

	lo, hi := CutMargin, int(g.DeckLen)-CutMargin
	if depth < 0 {
		depth = lo + int(g.randN(uint64(hi-lo+1)))
	}
	depth = min(max(depth, lo), hi)

	g.Starter = g.Deck[depth]
	copy(g.Deck[depth:], g.Deck[depth+1:g.DeckLen])
	g.DeckLen--

	res := CutResult{Starter: g.Starter}
	if g.Starter.Rank() == RankJack && g.Rules.Heels {
		res.Heels = 2
		g.award(g.Dealer, res.Heels)
		if g.IsTerminal() {
			return res, nil
		}
	}

	n := g.Rules.numPlayers()
	for s := uint8(0); s < n; s++ {
		p := &g.Players[s]
		p.PegLen = uint8(copy(p.PegHand[:], p.Hand[:p.HandLen]))
	}
	g.CurrentPlayer = g.Pone()
	g.Phase = PhasePegging
	return res, nil
}

// ---------------------------------------------------------------------------
// Pegging
// ---------------------------------------------------------------------------

func (g *GameState) checkPegTurn(player uint8) error {
	if g.IsTerminal() {
		return ErrGameOver
	}
	if g.Phase != PhasePegging {
		return ErrWrongPhase
	}
	if err := g.checkSeat(player); err != nil {
		return err
	}
	if player != g.CurrentPlayer {
		return fmt.Errorf("seat %d, current %d: %w", player, g.CurrentPlayer, ErrNotYourTurn)
	}
	return nil
}

// Play pegs a card for the current seat.
func (g *GameState) Play(player uint8, card Card) (PlayOutcome, error) {
	out := PlayOutcome{Player: player, Card: card}
	if err := g.checkPegTurn(player); err != nil {
		return out, err
	}

	p := &g.Players[player]
	idx := -1
	for i := uint8(0); i < p.PegLen; i++ {
		if p.PegHand[i] == card {
			idx = int(i)
			break
		}
	}
	if idx < 0 {
		return out, fmt.Errorf("play %s: %w", card, ErrCardNotInHand)
	}

	res, err := PegScore(g.Sequence[:g.SeqLen], card, int(g.Count))
	if err != nil {
		return out, err
	}
	out.PegResult = res

	copy(p.PegHand[idx:], p.PegHand[idx+1:p.PegLen])
	p.PegLen--
	p.PegHand[p.PegLen] = EmptyCard
	g.Sequence[g.SeqLen] = card
	g.SeqLen++
	g.Played[g.PlayedLen] = card
	g.PlayedLen++
	g.Count = uint8(res.Count)
	g.LastPlayer = int8(player)

	g.award(player, res.Points)
	if g.IsTerminal() {
		return out, nil
	}

	if res.Count == MaxCount {
		out.End = &SequenceEnd{Player: player}
		out.PeggingDone = g.resetSequence()
		return out, nil
	}
	g.advance(&out)
	return out, nil
}

// Go passes for the current seat, which must hold no legal play.
func (g *GameState) Go(player uint8) (PlayOutcome, error) {
	out := PlayOutcome{Player: player, Card: EmptyCard, PegResult: PegResult{Count: int(g.Count)}}
	if err := g.checkPegTurn(player); err != nil {
		return out, err
	}
	p := &g.Players[player]
	if CanPlay(p.PegHand[:p.PegLen], int(g.Count)) {
		return out, fmt.Errorf("seat %d at %d: %w", player, g.Count, ErrMustPlay)
	}
	g.Passed |= 1 << player
	g.advance(&out)
	return out, nil
}

// advance hands the turn to the next seat that still holds cards and has not
// said go. When nobody can continue, the last seat to play scores one for go
// (or last card) and the sequence resets.
func (g *GameState) advance(out *PlayOutcome) {
	n := g.Rules.numPlayers()
	for i := uint8(1); i <= n; i++ {
		s := (g.CurrentPlayer + i) % n
		if g.Players[s].PegLen > 0 && g.Passed&(1<<s) == 0 {
			g.CurrentPlayer = s
			return
		}
	}

	if g.LastPlayer < 0 {
		g.LastPlayer = int8(g.CurrentPlayer)
		out.PeggingDone = g.resetSequence()
		return
	}
	last := uint8(g.LastPlayer)
	cat := CategoryGo
	if g.cardsLeft() == 0 {
		cat = CategoryLastCard
	}
	end := &SequenceEnd{
		Player: last,
		Group:  newGroup(cat, g.SequenceCards(), 1),
	}
	out.End = end
	g.award(last, 1)
	if g.IsTerminal() {
		return
	}
	out.PeggingDone = g.resetSequence()
}

// resetSequence starts a new count led by the seat after the last player.
// Returns true when every card has been pegged.
func (g *GameState) resetSequence() bool {
	last := uint8(g.LastPlayer)
	g.Count = 0
	g.SeqLen = 0
	g.Passed = 0
	g.LastPlayer = -1

	if g.cardsLeft() == 0 {
		g.Phase = PhaseShow
		g.CurrentPlayer = g.Pone()
		return true
	}
	n := g.Rules.numPlayers()
	for i := uint8(1); i <= n; i++ {
		s := (last + i) % n
		if g.Players[s].PegLen > 0 {
			g.CurrentPlayer = s
			break
		}
	}
	return false
}

func (g *GameState) cardsLeft() int {
	total := 0
	n := g.Rules.numPlayers()
	for s := uint8(0); s < n; s++ {
		total += int(g.Players[s].PegLen)
	}
	return total
}

// ---------------------------------------------------------------------------
// Show
// ---------------------------------------------------------------------------

// Show counts every hand starting left of the dealer, then the dealer's hand,
// then the crib. Counting stops as soon as a seat reaches the target. When
// the game continues the deal passes to the left.
func (g *GameState) Show() ([]ShowResult, error) {
	if g.IsTerminal() {
		return nil, ErrGameOver
	}
	if g.Phase != PhaseShow {
		return nil, ErrWrongPhase
	}

	n := g.Rules.numPlayers()
	var results []ShowResult
	count := func(player uint8, h Hand) {
		points, _ := Score(h)
		results = append(results, ShowResult{
			Player: player,
			IsCrib: h.IsCrib,
			Hand:   h,
			Points: points,
			Tally:  Tally(h),
		})
		g.award(player, points)
	}

	for i := uint8(1); i <= n; i++ {
		s := (g.Dealer + i) % n
		count(s, NewHand(g.HandCards(s)...).WithStarter(g.Starter))
		if g.IsTerminal() {
			return results, nil
		}
	}
	count(g.Dealer, NewCrib(g.CribCards()...).WithStarter(g.Starter))
	if g.IsTerminal() {
		return results, nil
	}

	g.Dealer = g.NextPlayer(g.Dealer)
	g.Phase = PhaseDeal
	return results, nil
}
