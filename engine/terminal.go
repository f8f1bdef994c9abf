package engine

// SkunkLevel grades how badly a loser lost.
type SkunkLevel uint8

const (
	SkunkNone SkunkLevel = iota
	SkunkSingle
	SkunkDouble
	SkunkTriple
)

var skunkNames = [...]string{"none", "skunk", "double skunk", "triple skunk"}

func (s SkunkLevel) String() string {
	if int(s) < len(skunkNames) {
		return skunkNames[s]
	}
	return "unknown"
}

// IsTerminal returns true when a seat has reached the target score.
func (g *GameState) IsTerminal() bool { return g.Phase == PhaseGameOver }

// GetWinner returns the winning seat, or -1 while the game is in progress.
func (g *GameState) GetWinner() int8 { return g.Winner }

// SkunkFor grades a losing score against the house rule lines.
func (r *HouseRules) SkunkFor(score int) SkunkLevel {
	switch {
	case score < int(r.TripleSkunkLine):
		return SkunkTriple
	case score < int(r.DoubleSkunkLine):
		return SkunkDouble
	case score < int(r.SkunkLine):
		return SkunkSingle
	}
	return SkunkNone
}

// Skunk grades the given seat's loss. The winner and any seat of an
// unfinished game grade as SkunkNone.
func (g *GameState) Skunk(player uint8) SkunkLevel {
	if !g.IsTerminal() || int8(player) == g.Winner {
		return SkunkNone
	}
	return g.Rules.SkunkFor(int(g.Players[player].Score))
}
