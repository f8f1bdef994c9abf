package engine

// LegalPlays returns the cards that can be played without the running count
// exceeding 31, in hand order.
func LegalPlays(hand []Card, count int) []Card {
	var out []Card
	for _, c := range hand {
		if count+c.Value() <= MaxCount {
			out = append(out, c)
		}
	}
	return out
}

// CanPlay reports whether any card in hand is a legal play.
func CanPlay(hand []Card, count int) bool {
	for _, c := range hand {
		if count+c.Value() <= MaxCount {
			return true
		}
	}
	return false
}

// LegalPlays returns the legal plays of the player to act.
func (g *GameState) LegalPlays() []Card {
	if g.Phase != PhasePegging {
		return nil
	}
	p := &g.Players[g.CurrentPlayer]
	return LegalPlays(p.PegHand[:p.PegLen], int(g.Count))
}

// MustGo reports whether the player to act holds cards but none can be played.
func (g *GameState) MustGo() bool {
	if g.Phase != PhasePegging {
		return false
	}
	p := &g.Players[g.CurrentPlayer]
	return p.PegLen > 0 && !CanPlay(p.PegHand[:p.PegLen], int(g.Count))
}
