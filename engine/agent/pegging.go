package agent

import (
	"errors"
	"fmt"
	"sort"

	engine "github.com/rsucco/doubleskunk/engine"
)

var ErrNoDistribution = errors.New("no unseen-card distribution")

// PlayContext is everything the pegging engine knows at one decision.
type PlayContext struct {
	Legal            []engine.Card
	Sequence         []engine.Card // cards pegged since the last reset
	Count            int
	Remaining        *Distribution // unseen cards
	OpponentHandSize int
	Hand             []engine.Card // own unplayed cards; nil means Legal
}

func (ctx *PlayContext) remainingAfter(c engine.Card) []engine.Card {
	hand := ctx.Hand
	if hand == nil {
		hand = ctx.Legal
	}
	out := make([]engine.Card, 0, len(hand))
	for _, x := range hand {
		if x != c {
			out = append(out, x)
		}
	}
	return out
}

// PlayWeight is the heuristic value of one legal play, with the
// contribution of each pipeline term.
type PlayWeight struct {
	Card   engine.Card
	Weight float64
	Terms  [numTerms]float64
}

// PegEngine ranks pegging plays. It holds no mutable state.
type PegEngine struct {
	tuning PegTuning
}

// NewPegEngine returns an engine using the given tuning.
func NewPegEngine(tuning PegTuning) *PegEngine {
	return &PegEngine{tuning: tuning}
}

// RankPlays orders the legal plays best first. No plays means the caller
// must go; a single play is returned as is.
func (e *PegEngine) RankPlays(ctx PlayContext) ([]engine.Card, error) {
	switch len(ctx.Legal) {
	case 0:
		return nil, nil
	case 1:
		if err := checkLegal(ctx.Legal, ctx.Count); err != nil {
			return nil, err
		}
		return []engine.Card{ctx.Legal[0]}, nil
	}

	weights, err := e.WeighPlays(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]engine.Card, len(weights))
	for i, w := range weights {
		out[i] = w.Card
	}
	return out, nil
}

// WeighPlays sums the weight pipeline for every legal play and returns the
// plays sorted by weight, best first.
func (e *PegEngine) WeighPlays(ctx PlayContext) ([]PlayWeight, error) {
	if err := checkLegal(ctx.Legal, ctx.Count); err != nil {
		return nil, err
	}
	if ctx.Remaining == nil {
		return nil, ErrNoDistribution
	}

	weights := make([]PlayWeight, len(ctx.Legal))
	for i, c := range ctx.Legal {
		w := PlayWeight{Card: c}
		for term, fn := range pegPipeline {
			w.Terms[term] = fn(&e.tuning, &ctx, c)
			w.Weight += w.Terms[term]
		}
		weights[i] = w
	}
	sort.SliceStable(weights, func(a, b int) bool {
		return weights[a].Weight > weights[b].Weight
	})
	return weights, nil
}

func checkLegal(plays []engine.Card, count int) error {
	for _, c := range plays {
		if count+c.Value() > engine.MaxCount {
			return fmt.Errorf("%s on %d: %w", c, count, engine.ErrIllegalPlay)
		}
	}
	return nil
}
