package engine

// Category identifies the scoring rule that produced a group.
type Category uint8

const (
	CategoryFifteen Category = iota
	CategoryPair
	CategoryPairRoyal
	CategoryDoublePairRoyal
	CategoryRun
	CategoryFlush
	CategoryNibs
	// Pegging and cut categories.
	CategoryThirtyOne
	CategoryGo
	CategoryLastCard
	CategoryHeels
)

var categoryNames = [...]string{
	CategoryFifteen:         "fifteen",
	CategoryPair:            "pair",
	CategoryPairRoyal:       "pair royal",
	CategoryDoublePairRoyal: "double pair royal",
	CategoryRun:             "run",
	CategoryFlush:           "flush",
	CategoryNibs:            "nibs",
	CategoryThirtyOne:       "thirty-one",
	CategoryGo:              "go",
	CategoryLastCard:        "last card",
	CategoryHeels:           "heels",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// pairCategory maps a same-rank group size to its category.
func pairCategory(k int) Category {
	switch k {
	case 3:
		return CategoryPairRoyal
	case 4:
		return CategoryDoublePairRoyal
	}
	return CategoryPair
}

// PairPoints returns k²−k, the value of k cards of one rank.
func PairPoints(k int) int {
	if k < 2 {
		return 0
	}
	return k*k - k
}

// ScoredGroup is one scoring combination and the points it earns.
// Cards are sorted by rank.
type ScoredGroup struct {
	Category Category
	Cards    []Card
	Points   int
}

func newGroup(cat Category, cards []Card, points int) ScoredGroup {
	SortByRank(cards)
	return ScoredGroup{Category: cat, Cards: cards, Points: points}
}

// TallyLine is a scored group with the cumulative total after it is added.
type TallyLine struct {
	ScoredGroup
	Total int
}

// ---------------------------------------------------------------------------
// Hand scoring
// ---------------------------------------------------------------------------

// Score returns the total points of the hand and every scoring group, in
// tally order: fifteens, pairs (smallest first), runs, flush, nibs.
func Score(h Hand) (int, []ScoredGroup) {
	pool := h.Pool()

	var groups []ScoredGroup
	groups = append(groups, ScoreFifteens(pool)...)
	for k := 2; k <= 4; k++ {
		groups = append(groups, ScorePairs(pool, k)...)
	}
	groups = append(groups, ScoreRuns(pool)...)
	groups = append(groups, ScoreFlush(h)...)
	groups = append(groups, ScoreNibs(h)...)

	total := 0
	for _, g := range groups {
		total += g.Points
	}
	return total, groups
}

// Tally returns the scoring groups of the hand with running totals.
func Tally(h Hand) []TallyLine {
	_, groups := Score(h)
	lines := make([]TallyLine, len(groups))
	total := 0
	for i, g := range groups {
		total += g.Points
		lines[i] = TallyLine{ScoredGroup: g, Total: total}
	}
	return lines
}

// ScoreFifteens returns a 2-point group for every subset of the pool whose
// count values sum to 15.
func ScoreFifteens(pool []Card) []ScoredGroup {
	var groups []ScoredGroup
	for size := 2; size <= len(pool); size++ {
		Combinations(len(pool), size, func(idx []int) bool {
			sum := 0
			for _, i := range idx {
				sum += pool[i].Value()
			}
			if sum == 15 {
				groups = append(groups, newGroup(CategoryFifteen, pick(pool, idx), 2))
			}
			return true
		})
	}
	return groups
}

// ScorePairs returns every k-subset of same-rank cards. For k of 2 or 3 a
// subset only counts when the pool holds exactly k cards of that rank, so a
// pair royal is not also scored as three pairs.
func ScorePairs(pool []Card, k int) []ScoredGroup {
	if k < 2 || k > len(pool) {
		return nil
	}
	var rankCount [NumRanks + 1]int
	for _, c := range pool {
		rankCount[c.Rank()]++
	}

	var groups []ScoredGroup
	Combinations(len(pool), k, func(idx []int) bool {
		r := pool[idx[0]].Rank()
		for _, i := range idx[1:] {
			if pool[i].Rank() != r {
				return true
			}
		}
		if k < 4 && rankCount[r] != k {
			return true
		}
		groups = append(groups, newGroup(pairCategory(k), pick(pool, idx), PairPoints(k)))
		return true
	})
	return groups
}

// ScoreRuns returns every run of three or more consecutive ranks, scanning
// the largest subsets first. A run contained in an already-found run is
// skipped.
func ScoreRuns(pool []Card) []ScoredGroup {
	var (
		groups []ScoredGroup
		found  []uint32
	)
	for size := len(pool); size >= 3; size-- {
		Combinations(len(pool), size, func(idx []int) bool {
			var mask uint32
			for _, i := range idx {
				mask |= 1 << uint(i)
			}
			for _, f := range found {
				if mask&f == mask {
					return true
				}
			}
			cards := pick(pool, idx)
			if !IsRun(cards) {
				return true
			}
			found = append(found, mask)
			groups = append(groups, newGroup(CategoryRun, cards, size))
			return true
		})
	}
	return groups
}

// IsRun reports whether the cards, taken in any order, form a sequence of
// consecutive ranks with no duplicates. Fewer than three cards is never a run.
func IsRun(cards []Card) bool {
	if len(cards) < 3 {
		return false
	}
	var present [NumRanks + 2]bool
	lo, hi := uint8(RankKing+1), uint8(0)
	for _, c := range cards {
		r := c.Rank()
		if present[r] {
			return false
		}
		present[r] = true
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	return int(hi-lo)+1 == len(cards)
}

// ScoreFlush scores a flush when all four hand cards share a suit: 5 when
// the starter matches, otherwise 4. A crib scores only the five-card flush.
// Partial hands never score a flush.
func ScoreFlush(h Hand) []ScoredGroup {
	if len(h.Cards) != KeepSize {
		return nil
	}
	suit := h.Cards[0].Suit()
	for _, c := range h.Cards[1:] {
		if c.Suit() != suit {
			return nil
		}
	}

	cards := append([]Card(nil), h.Cards...)
	if h.HasStarter() && h.Starter.Suit() == suit {
		cards = append(cards, h.Starter)
		return []ScoredGroup{newGroup(CategoryFlush, cards, KeepSize+1)}
	}
	if h.IsCrib {
		return nil
	}
	return []ScoredGroup{newGroup(CategoryFlush, cards, KeepSize)}
}

// ScoreNibs scores one point for a jack in hand of the starter's suit. The
// group holds the jack and the starter.
func ScoreNibs(h Hand) []ScoredGroup {
	if !h.HasStarter() {
		return nil
	}
	for _, c := range h.Cards {
		if c.Rank() == RankJack && c.Suit() == h.Starter.Suit() {
			return []ScoredGroup{newGroup(CategoryNibs, []Card{c, h.Starter}, 1)}
		}
	}
	return nil
}
