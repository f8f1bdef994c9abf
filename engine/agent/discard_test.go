package agent

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	engine "github.com/rsucco/doubleskunk/engine"
)

func evaluate(t *testing.T, e *Evaluator, cards []string, asDealer bool) []DiscardEvaluation {
	t.Helper()
	h := engine.NewHand(engine.MustParseCards(cards...)...)
	evals, err := e.EvaluateDiscards(context.Background(), h, engine.Remainder(h.Cards), asDealer)
	if err != nil {
		t.Fatalf("EvaluateDiscards(%v): %v", cards, err)
	}
	return evals
}

func TestEvaluateDiscardsInvalidSize(t *testing.T) {
	e := NewEvaluator(DefaultCribTables())
	for _, cards := range [][]string{
		{"ac", "2c", "3c", "4c"},
		{"ac", "2c", "3c", "4c", "5c", "6c", "7c"},
	} {
		h := engine.NewHand(engine.MustParseCards(cards...)...)
		_, err := e.EvaluateDiscards(context.Background(), h, engine.Remainder(h.Cards), false)
		if !errors.Is(err, engine.ErrInvalidHandSize) {
			t.Errorf("%d cards: err = %v, want ErrInvalidHandSize", len(cards), err)
		}
	}
}

func TestEvaluateDiscardsBadRemainder(t *testing.T) {
	e := NewEvaluator(DefaultCribTables())
	h := engine.NewHand(engine.MustParseCards("ac", "2c", "3c", "4c", "5c", "6c")...)
	if _, err := e.EvaluateDiscards(context.Background(), h, nil, false); !errors.Is(err, ErrNoStarters) {
		t.Errorf("empty remainder: err = %v, want ErrNoStarters", err)
	}
	rem := append(engine.Remainder(h.Cards), card("ac"))
	if _, err := e.EvaluateDiscards(context.Background(), h, rem, false); !errors.Is(err, ErrStarterInHand) {
		t.Errorf("remainder overlaps hand: err = %v, want ErrStarterInHand", err)
	}
}

func TestEvaluateDiscardsStatistics(t *testing.T) {
	e := NewEvaluator(DefaultCribTables())
	cards := []string{"5h", "5s", "5d", "jc", "kh", "2c"}
	hand := engine.MustParseCards(cards...)
	rem := engine.Remainder(hand)
	evals := evaluate(t, e, cards, true)

	if len(evals) != 15 {
		t.Fatalf("got %d evaluations, want 15", len(evals))
	}
	for i, ev := range evals {
		if i > 0 && ev.NetExpectedPoints > evals[i-1].NetExpectedPoints {
			t.Errorf("evaluation %d not sorted by net", i)
		}
		if len(ev.Discard) != 2 || len(ev.Retained.Cards) != 4 {
			t.Fatalf("discard %d / retained %d", len(ev.Discard), len(ev.Retained.Cards))
		}
		for _, c := range hand {
			in := engine.ContainsCard(ev.Discard, c) != ev.Retained.Contains(c)
			if !in {
				t.Errorf("%s must be in exactly one of discard and retained", c)
			}
		}

		sum, sumSq := 0.0, 0.0
		for _, s := range rem {
			p, _ := engine.Score(ev.Retained.WithStarter(s))
			sum += float64(p)
			sumSq += float64(p * p)
			if p < ev.Min.Points || p > ev.Max.Points {
				t.Errorf("%s with %s scores %d outside [%d,%d]", ev.Retained, s, p, ev.Min.Points, ev.Max.Points)
			}
		}
		mean := sum / float64(len(rem))
		if math.Abs(mean-ev.MeanPoints) > 1e-9 {
			t.Errorf("%s mean = %v, want %v", ev.Retained, ev.MeanPoints, mean)
		}
		std := math.Sqrt(sumSq/float64(len(rem)) - mean*mean)
		if math.Abs(std-ev.StdDev) > 1e-9 {
			t.Errorf("%s std dev = %v, want %v", ev.Retained, ev.StdDev, std)
		}
		for _, s := range ev.Max.Starters {
			if p, _ := engine.Score(ev.Retained.WithStarter(s)); p != ev.Max.Points {
				t.Errorf("max starter %s scores %d, want %d", s, p, ev.Max.Points)
			}
		}
		want := ev.MeanPoints + ev.ExpectedCribPoints
		if math.Abs(ev.NetExpectedPoints-want) > 1e-9 {
			t.Errorf("dealer net = %v, want %v", ev.NetExpectedPoints, want)
		}
	}

	best := evals[0].Retained
	for _, c := range []string{"5h", "5s", "5d"} {
		if !best.Contains(card(c)) {
			t.Errorf("best keep %s does not hold %s", best, c)
		}
	}
}

func TestEvaluateDiscardsPoneSubtractsCrib(t *testing.T) {
	e := NewEvaluator(DefaultCribTables())
	for _, ev := range evaluate(t, e, []string{"2c", "3d", "7h", "8s", "qd", "kc"}, false) {
		want := ev.MeanPoints - ev.ExpectedCribPoints
		if math.Abs(ev.NetExpectedPoints-want) > 1e-9 {
			t.Errorf("pone net = %v, want %v", ev.NetExpectedPoints, want)
		}
		tables := DefaultCribTables()
		if got := tables.Pone.Expected(ev.Discard[0], ev.Discard[1]); got != ev.ExpectedCribPoints {
			t.Errorf("crib = %v, want %v", ev.ExpectedCribPoints, got)
		}
	}
}

func TestEvaluateDiscardsFiveCards(t *testing.T) {
	e := NewEvaluator(DefaultCribTables())
	evals := evaluate(t, e, []string{"ac", "4d", "6h", "9s", "qc"}, true)
	if len(evals) != 5 {
		t.Fatalf("got %d evaluations, want 5", len(evals))
	}
	tables := DefaultCribTables()
	for _, ev := range evals {
		if len(ev.Discard) != 1 {
			t.Fatalf("discard %d cards, want 1", len(ev.Discard))
		}
		if got := tables.Dealer.RowAverage(ev.Discard[0]); got != ev.ExpectedCribPoints {
			t.Errorf("crib for %s = %v, want row average %v", ev.Discard[0], ev.ExpectedCribPoints, got)
		}
	}
}

func TestEvaluateDiscardsWorkerInvariance(t *testing.T) {
	cards := []string{"3c", "4c", "5d", "6h", "jc", "js"}
	one := evaluate(t, NewEvaluator(DefaultCribTables(), WithWorkers(1)), cards, false)
	many := evaluate(t, NewEvaluator(DefaultCribTables(), WithWorkers(8)), cards, false)
	if !reflect.DeepEqual(one, many) {
		t.Error("results depend on worker count")
	}
}

func TestEvaluateDiscardsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := engine.NewHand(engine.MustParseCards("ac", "2c", "3c", "4c", "5c", "6c")...)
	_, err := NewEvaluator(DefaultCribTables()).EvaluateDiscards(ctx, h, engine.Remainder(h.Cards), false)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// keepIndices returns the hand positions of the retained cards.
func keepIndices(hand []engine.Card, e DiscardEvaluation) []int {
	var idx []int
	for i, c := range hand {
		if e.Retained.Contains(c) {
			idx = append(idx, i)
		}
	}
	return idx
}

func lexLess(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// TestEvaluateDiscardsTiesKeepEnumerationOrder uses two kings of different
// suits in a hand that cannot flush, so swapping them gives keeps with
// identical scores.
func TestEvaluateDiscardsTiesKeepEnumerationOrder(t *testing.T) {
	cards := []string{"kh", "kd", "2c", "7s", "9c", "4s"}
	hand := engine.MustParseCards(cards...)
	for _, workers := range []int{1, 4} {
		evals := evaluate(t, NewEvaluator(DefaultCribTables(), WithWorkers(workers)), cards, true)

		first, second := -1, -1
		for i, e := range evals {
			switch {
			case reflect.DeepEqual(keepIndices(hand, e), []int{0, 2, 3, 4}):
				first = i
			case reflect.DeepEqual(keepIndices(hand, e), []int{1, 2, 3, 4}):
				second = i
			}
		}
		if first < 0 || second < 0 {
			t.Fatalf("workers=%d: missing king keeps", workers)
		}
		if evals[first].NetExpectedPoints != evals[second].NetExpectedPoints {
			t.Fatalf("workers=%d: net %v vs %v, want a tie", workers,
				evals[first].NetExpectedPoints, evals[second].NetExpectedPoints)
		}
		if first > second {
			t.Errorf("workers=%d: K♥ keep at %d after K♦ keep at %d", workers, first, second)
		}

		ties := 0
		for i := 1; i < len(evals); i++ {
			if evals[i].NetExpectedPoints != evals[i-1].NetExpectedPoints {
				continue
			}
			ties++
			prev, cur := keepIndices(hand, evals[i-1]), keepIndices(hand, evals[i])
			if !lexLess(prev, cur) {
				t.Errorf("workers=%d: tied keeps %v then %v, want enumeration order", workers, prev, cur)
			}
		}
		if ties == 0 {
			t.Errorf("workers=%d: no tied evaluations", workers)
		}
	}
}
