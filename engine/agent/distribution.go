package agent

import (
	"math"

	engine "github.com/rsucco/doubleskunk/engine"
)

// Distribution counts unseen cards by rank (index 1..13; index 0 unused).
type Distribution [engine.NumRanks + 1]uint8

// NewDistribution counts the given unseen cards.
func NewDistribution(unseen []engine.Card) Distribution {
	var d Distribution
	for _, c := range unseen {
		if c.Valid() {
			d[c.Rank()]++
		}
	}
	return d
}

// Total returns the number of unseen cards.
func (d Distribution) Total() int {
	total := 0
	for r := engine.RankAce; r <= engine.RankKing; r++ {
		total += int(d[r])
	}
	return total
}

// Rank returns the number of unseen cards of the given rank.
func (d Distribution) Rank(rank uint8) int {
	if rank < engine.RankAce || rank > engine.RankKing {
		return 0
	}
	return int(d[rank])
}

// Value returns the number of unseen cards with the given count value; ten
// and the face cards all count as value 10.
func (d Distribution) Value(v int) int {
	switch {
	case v < 1 || v > 10:
		return 0
	case v == 10:
		return int(d[engine.RankTen]) + int(d[engine.RankJack]) + int(d[engine.RankQueen]) + int(d[engine.RankKing])
	}
	return int(d[v])
}

// AtMost returns the number of unseen cards with count value <= v.
func (d Distribution) AtMost(v int) int {
	n := 0
	for x := 1; x <= min(v, 10); x++ {
		n += d.Value(x)
	}
	return n
}

// Remove takes one card of the rank out of the distribution.
func (d *Distribution) Remove(rank uint8) {
	if rank >= engine.RankAce && rank <= engine.RankKing && d[rank] > 0 {
		d[rank]--
	}
}

// HoldProbability is the chance that a hand of n cards holds at least one
// card of a kind drawn with per-card probability p: 1 − (1 − p)^n.
func HoldProbability(p float64, n int) float64 {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return 1 - math.Pow(1-p, float64(n))
}

func (d Distribution) fraction(count int) float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// HoldsRank is the chance an n-card hand holds the given rank.
func (d Distribution) HoldsRank(rank uint8, n int) float64 {
	return HoldProbability(d.fraction(d.Rank(rank)), n)
}

// HoldsValue is the chance an n-card hand holds a card of count value v.
func (d Distribution) HoldsValue(v, n int) float64 {
	return HoldProbability(d.fraction(d.Value(v)), n)
}

// HoldsAtMost is the chance an n-card hand holds a card of value <= v.
func (d Distribution) HoldsAtMost(v, n int) float64 {
	return HoldProbability(d.fraction(d.AtMost(v)), n)
}
