package engine

import "fmt"

// MaxCount is the running count that may not be exceeded while pegging.
const MaxCount = 31

// PegResult is the outcome of adding one card to the pegging sequence.
type PegResult struct {
	Count  int
	Points int
	Groups []ScoredGroup
}

// PegScore scores playing card onto sequence at the given running count.
// Only the trailing cards of the sequence can form pairs and runs: a run is
// the longest trailing window of three or more cards with consecutive ranks,
// a pair is the trailing group of cards sharing the played card's rank.
func PegScore(sequence []Card, card Card, count int) (PegResult, error) {
	newCount := count + card.Value()
	if newCount > MaxCount {
		return PegResult{Count: count}, fmt.Errorf("%s on %d: %w", card, count, ErrIllegalPlay)
	}

	seq := make([]Card, 0, len(sequence)+1)
	seq = append(seq, sequence...)
	seq = append(seq, card)

	res := PegResult{Count: newCount}
	add := func(g ScoredGroup) {
		res.Groups = append(res.Groups, g)
		res.Points += g.Points
	}

	switch newCount {
	case 15:
		add(newGroup(CategoryFifteen, append([]Card(nil), seq...), 2))
	case MaxCount:
		add(newGroup(CategoryThirtyOne, append([]Card(nil), seq...), 2))
	}

	if k := trailingSameRank(seq); k >= 2 {
		add(newGroup(pairCategory(k), append([]Card(nil), seq[len(seq)-k:]...), PairPoints(k)))
	}

	for n := len(seq); n >= 3; n-- {
		tail := seq[len(seq)-n:]
		if IsRun(tail) {
			add(newGroup(CategoryRun, append([]Card(nil), tail...), n))
			break
		}
	}
	return res, nil
}

// trailingSameRank counts the cards at the end of seq sharing the last rank.
func trailingSameRank(seq []Card) int {
	if len(seq) == 0 {
		return 0
	}
	r := seq[len(seq)-1].Rank()
	k := 0
	for i := len(seq) - 1; i >= 0 && seq[i].Rank() == r; i-- {
		k++
	}
	return k
}
