package agent

import engine "github.com/rsucco/doubleskunk/engine"

// PegTuning scales the terms of the pegging weight pipeline.
type PegTuning struct {
	CounterRisk     float64 // opponent reaching 15 or 31 with one card
	PairRunRisk     float64 // opponent pairing or extending a run
	CounterOffset   float64 // share of our best re-reply credited against PairRunRisk
	GoWeight        float64 // opponent unable to respond
	GuaranteedBonus float64 // opponent certainly unable to respond
	// ThirtyOneBonus keeps any play reaching 31 ranked above every play that
	// does not.
	ThirtyOneBonus float64
	TieEpsilon     float64 // per rank; prefers the higher card among equals
}

// DefaultPegTuning returns the standard weights.
func DefaultPegTuning() PegTuning {
	return PegTuning{
		CounterRisk:     1.0,
		PairRunRisk:     1.0,
		CounterOffset:   0.5,
		GoWeight:        1.0,
		GuaranteedBonus: 0.5,
		ThirtyOneBonus:  16,
		TieEpsilon:      1e-6,
	}
}

// weightTerm scores one aspect of playing c in the given context.
type weightTerm func(t *PegTuning, ctx *PlayContext, c engine.Card) float64

// Term indices into PlayWeight.Terms.
const (
	TermImmediate = iota
	TermCounterRisk
	TermPairRunRisk
	TermGo
	TermTieBreak
	numTerms
)

// TermNames labels PlayWeight.Terms.
var TermNames = [numTerms]string{"immediate", "counter_risk", "pair_run_risk", "go", "tie_break"}

var pegPipeline = [numTerms]weightTerm{
	TermImmediate:   immediateScore,
	TermCounterRisk: counterRisk,
	TermPairRunRisk: pairRunRisk,
	TermGo:          goDynamics,
	TermTieBreak:    tieBreak,
}

// immediateScore is what the play pegs right now.
func immediateScore(t *PegTuning, ctx *PlayContext, c engine.Card) float64 {
	res, err := engine.PegScore(ctx.Sequence, c, ctx.Count)
	if err != nil {
		return 0
	}
	w := float64(res.Points)
	if res.Count == engine.MaxCount {
		w += t.ThirtyOneBonus
	}
	return w
}

// counterRisk penalizes leaving a count from which one card makes 15 or 31.
func counterRisk(t *PegTuning, ctx *PlayContext, c engine.Card) float64 {
	count := ctx.Count + c.Value()
	var need int
	switch {
	case count >= 5 && count < 15:
		need = 15 - count
	case count >= 21 && count < engine.MaxCount:
		need = engine.MaxCount - count
	default:
		return 0
	}
	return -2 * ctx.Remaining.HoldsValue(need, ctx.OpponentHandSize) * t.CounterRisk
}

// pairRunRisk penalizes the expected pair and run points of the opponent's
// reply, less a share of the best points we could answer with.
func pairRunRisk(t *PegTuning, ctx *PlayContext, c engine.Card) float64 {
	count := ctx.Count + c.Value()
	if count >= engine.MaxCount {
		return 0
	}
	seq := append(append([]engine.Card(nil), ctx.Sequence...), c)
	own := ctx.remainingAfter(c)

	var risk, counter float64
	for r := engine.RankAce; r <= engine.RankKing; r++ {
		if ctx.Remaining.Rank(r) == 0 {
			continue
		}
		reply := engine.NewCard(engine.SuitClubs, r)
		res, err := engine.PegScore(seq, reply, count)
		if err != nil {
			continue
		}
		points := pairRunPoints(res)
		if points == 0 {
			continue
		}
		p := ctx.Remaining.HoldsRank(r, ctx.OpponentHandSize)
		risk += p * float64(points)
		counter += p * float64(bestReply(append(seq, reply), res.Count, own))
	}
	penalty := risk*t.PairRunRisk - counter*t.CounterOffset
	if penalty < 0 {
		return 0
	}
	return -penalty
}

// goDynamics rewards counts the opponent is unlikely to be able to answer.
func goDynamics(t *PegTuning, ctx *PlayContext, c engine.Card) float64 {
	count := ctx.Count + c.Value()
	if count >= engine.MaxCount {
		return 0
	}
	stuck := 1 - ctx.Remaining.HoldsAtMost(engine.MaxCount-count, ctx.OpponentHandSize)
	w := t.GoWeight * stuck
	if stuck >= 1 {
		w += t.GuaranteedBonus
	}
	return w
}

// tieBreak prefers higher cards, keeping low cards for later.
func tieBreak(t *PegTuning, _ *PlayContext, c engine.Card) float64 {
	return t.TieEpsilon * float64(c.Rank())
}

func pairRunPoints(res engine.PegResult) int {
	points := 0
	for _, g := range res.Groups {
		switch g.Category {
		case engine.CategoryFifteen, engine.CategoryThirtyOne:
		default:
			points += g.Points
		}
	}
	return points
}

// bestReply is the most points any of our cards pegs on seq at count.
func bestReply(seq []engine.Card, count int, own []engine.Card) int {
	best := 0
	for _, d := range own {
		res, err := engine.PegScore(seq, d, count)
		if err == nil && res.Points > best {
			best = res.Points
		}
	}
	return best
}
