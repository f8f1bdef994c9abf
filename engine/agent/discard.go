package agent

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	engine "github.com/rsucco/doubleskunk/engine"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoStarters    = errors.New("no starter candidates")
	ErrStarterInHand = errors.New("starter candidate is in the hand")
)

// DiscardEvaluation scores one way of splitting a dealt hand into a kept
// hand and a crib discard.
type DiscardEvaluation struct {
	Discard            []engine.Card
	Retained           engine.Hand
	MeanPoints         float64
	Min                Extreme
	Max                Extreme
	StdDev             float64
	ExpectedCribPoints float64
	NetExpectedPoints  float64
}

// Evaluator ranks discards. It is safe for concurrent use.
type Evaluator struct {
	tables  CribTables
	workers int
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithWorkers bounds the number of kept hands evaluated at once. Values
// below 1 use GOMAXPROCS.
func WithWorkers(n int) EvaluatorOption {
	return func(e *Evaluator) { e.workers = n }
}

// NewEvaluator returns an Evaluator using the given crib tables.
func NewEvaluator(tables CribTables, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{tables: tables}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// EvaluateDiscards scores every 4-card hand that can be kept from the
// starting hand against every card of the remainder as the starter, and
// returns the choices sorted by net expected points, best first. Ties keep
// enumeration order.
func (e *Evaluator) EvaluateDiscards(ctx context.Context, starting engine.Hand, remainder []engine.Card, asDealer bool) ([]DiscardEvaluation, error) {
	n := len(starting.Cards)
	if n <= engine.KeepSize || n > engine.MaxHandSize {
		return nil, fmt.Errorf("evaluate discards from %d cards: %w", n, engine.ErrInvalidHandSize)
	}
	if len(remainder) == 0 {
		return nil, ErrNoStarters
	}
	for _, c := range remainder {
		if starting.Contains(c) {
			return nil, fmt.Errorf("%s: %w", c, ErrStarterInHand)
		}
	}

	var keeps [][]int
	engine.Combinations(n, engine.KeepSize, func(idx []int) bool {
		keeps = append(keeps, append([]int(nil), idx...))
		return true
	})

	results := make([]DiscardEvaluation, len(keeps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, idx := range keeps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.evaluateKeep(starting.Cards, idx, remainder, asDealer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].NetExpectedPoints > results[b].NetExpectedPoints
	})
	return results, nil
}

func (e *Evaluator) evaluateKeep(cards []engine.Card, keepIdx []int, remainder []engine.Card, asDealer bool) DiscardEvaluation {
	keep := make([]engine.Card, 0, engine.KeepSize)
	var discard []engine.Card
	k := 0
	for i, c := range cards {
		if k < len(keepIdx) && keepIdx[k] == i {
			keep = append(keep, c)
			k++
			continue
		}
		discard = append(discard, c)
	}

	var stats handStats
	h := engine.Hand{Cards: keep}
	for _, s := range remainder {
		points, _ := engine.Score(h.WithStarter(s))
		stats.add(s, points)
	}

	crib := e.cribValue(discard, asDealer)
	net := stats.mean() - crib
	if asDealer {
		net = stats.mean() + crib
	}
	return DiscardEvaluation{
		Discard:            discard,
		Retained:           engine.NewHand(keep...),
		MeanPoints:         stats.mean(),
		Min:                stats.min,
		Max:                stats.max,
		StdDev:             stats.stdDev(),
		ExpectedCribPoints: crib,
		NetExpectedPoints:  net,
	}
}

// cribValue looks up the expected crib points of the discarded cards.
func (e *Evaluator) cribValue(discard []engine.Card, asDealer bool) float64 {
	t := e.tables.For(asDealer)
	switch len(discard) {
	case 1:
		return t.RowAverage(discard[0])
	case 2:
		return t.Expected(discard[0], discard[1])
	}
	return 0
}
