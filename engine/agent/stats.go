package agent

import (
	"math"

	engine "github.com/rsucco/doubleskunk/engine"
)

// Extreme is a score reached by a retained hand together with every starter
// that produces it.
type Extreme struct {
	Starters []engine.Card
	Points   int
}

// handStats accumulates the scores of one retained hand over all starters.
type handStats struct {
	n     int
	sum   float64
	sumSq float64
	min   Extreme
	max   Extreme
}

func (s *handStats) add(starter engine.Card, points int) {
	if s.n == 0 {
		s.min = Extreme{Points: points}
		s.max = Extreme{Points: points}
	}
	s.n++
	p := float64(points)
	s.sum += p
	s.sumSq += p * p

	switch {
	case points < s.min.Points:
		s.min = Extreme{Points: points, Starters: []engine.Card{starter}}
	case points == s.min.Points:
		s.min.Starters = append(s.min.Starters, starter)
	}
	switch {
	case points > s.max.Points:
		s.max = Extreme{Points: points, Starters: []engine.Card{starter}}
	case points == s.max.Points:
		s.max.Starters = append(s.max.Starters, starter)
	}
}

func (s *handStats) mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

// stdDev is the population standard deviation.
func (s *handStats) stdDev() float64 {
	if s.n == 0 {
		return 0
	}
	m := s.mean()
	v := s.sumSq/float64(s.n) - m*m
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}
