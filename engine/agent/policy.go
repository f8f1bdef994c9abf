package agent

import (
	"fmt"
	"math/rand/v2"
	"sort"

	engine "github.com/rsucco/doubleskunk/engine"
)

// Difficulty controls how often the computer takes its best option.
type Difficulty uint8

const (
	Easy   Difficulty = 1
	Medium Difficulty = 2
	Hard   Difficulty = 3
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", uint8(d))
}

// ParseDifficulty accepts 1-3 or easy/medium/hard.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "1", "easy":
		return Easy, nil
	case "2", "medium":
		return Medium, nil
	case "3", "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

const (
	mediumDiscardPool = 5
	mediumPlayPool    = 2
)

// ScoreSituation is the board as seen by the seat choosing a discard.
type ScoreSituation struct {
	AsDealer bool
	Own      int
	Opponent int // highest opponent score
	Target   int
}

// Policy turns ranked options into a choice for one difficulty. A Policy is
// not safe for concurrent use.
type Policy struct {
	Difficulty Difficulty
	rng        *rand.Rand
}

// NewPolicy returns a policy whose random choices are fixed by seed.
func NewPolicy(d Difficulty, seed uint64) *Policy {
	return &Policy{
		Difficulty: d,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Resort reorders discard evaluations for the endgame. When the opponent is
// likely to finish on their next count the pone plays for hand points;
// when the game looks lost it plays for the best possible hand.
func Resort(evals []DiscardEvaluation, s ScoreSituation) {
	target := s.Target
	if target <= 0 {
		target = 121
	}
	switch {
	case s.Opponent > target-17 && !s.AsDealer:
		sort.SliceStable(evals, func(a, b int) bool {
			return evals[a].MeanPoints > evals[b].MeanPoints
		})
	case s.Opponent > target-11 && ((s.Own < target-21 && !s.AsDealer) || s.Own < target-31):
		sort.SliceStable(evals, func(a, b int) bool {
			return evals[a].Max.Points > evals[b].Max.Points
		})
	}
}

// ChooseDiscard picks one of the evaluations, which must be sorted best
// first. The slice may be reordered.
func (p *Policy) ChooseDiscard(evals []DiscardEvaluation, s ScoreSituation) (DiscardEvaluation, error) {
	if len(evals) == 0 {
		return DiscardEvaluation{}, fmt.Errorf("choose discard: %w", engine.ErrInvalidHandSize)
	}
	Resort(evals, s)
	return evals[p.pick(len(evals), mediumDiscardPool)], nil
}

// ChoosePlay picks one of the ranked plays. No plays means go and returns
// EmptyCard.
func (p *Policy) ChoosePlay(ranked []engine.Card) engine.Card {
	if len(ranked) == 0 {
		return engine.EmptyCard
	}
	return ranked[p.pick(len(ranked), mediumPlayPool)]
}

func (p *Policy) pick(n, mediumPool int) int {
	switch p.Difficulty {
	case Hard:
		return 0
	case Medium:
		return p.rng.IntN(min(n, mediumPool))
	}
	return p.rng.IntN(n)
}
