package agent

import engine "github.com/rsucco/doubleskunk/engine"

// CribTable holds the average crib value of a two-card discard, indexed by
// [first rank - 1][second rank - 1]. The tables are not symmetric.
type CribTable [engine.NumRanks][engine.NumRanks]float64

// Expected returns the table value for discarding a then b.
func (t *CribTable) Expected(a, b engine.Card) float64 {
	return t[a.Rank()-1][b.Rank()-1]
}

// RowAverage returns the mean of a's row, used when a single card is
// discarded.
func (t *CribTable) RowAverage(a engine.Card) float64 {
	sum := 0.0
	for _, v := range t[a.Rank()-1] {
		sum += v
	}
	return sum / engine.NumRanks
}

// CribTables pairs the dealer and pone tables.
type CribTables struct {
	Dealer CribTable
	Pone   CribTable
}

// For returns the dealer table when asDealer is set, the pone table otherwise.
func (c *CribTables) For(asDealer bool) *CribTable {
	if asDealer {
		return &c.Dealer
	}
	return &c.Pone
}

// DefaultCribTables returns a copy of the empirical crib tables.
func DefaultCribTables() CribTables {
	return CribTables{Dealer: dealerCrib, Pone: poneCrib}
}

// Average crib points when the crib is your own.
var dealerCrib = CribTable{
	{5.2, 4.4, 4.6, 5.2, 5.2, 3.7, 3.7, 3.7, 3.3, 3.3, 3.5, 3.3, 3.3},
	{4.4, 5.8, 6.9, 4.6, 5.2, 3.9, 3.9, 3.7, 3.7, 3.6, 3.8, 3.6, 3.6},
	{4.6, 6.9, 5.9, 5.0, 5.9, 3.8, 3.8, 3.9, 3.7, 3.6, 3.9, 3.7, 3.7},
	{5.2, 4.6, 5.0, 5.5, 6.3, 3.9, 3.7, 3.9, 3.6, 3.4, 3.7, 3.5, 3.5},
	{5.2, 5.2, 5.9, 6.3, 8.5, 6.4, 5.8, 5.3, 5.1, 6.3, 6.7, 6.4, 6.3},
	{3.7, 3.9, 3.8, 3.9, 6.4, 5.6, 4.9, 4.6, 4.9, 3.0, 3.2, 3.0, 2.9},
	{3.7, 3.9, 3.8, 3.7, 5.8, 4.9, 5.8, 6.4, 4.0, 3.1, 3.3, 3.1, 3.1},
	{3.7, 3.7, 3.9, 3.9, 5.3, 4.6, 6.4, 5.3, 4.5, 3.7, 3.3, 3.1, 3.0},
	{3.3, 3.7, 3.7, 3.6, 5.1, 4.9, 4.0, 4.5, 4.9, 4.1, 3.7, 2.8, 2.8},
	{3.3, 3.6, 3.6, 3.4, 6.3, 3.0, 3.1, 3.7, 4.1, 4.6, 4.3, 3.3, 2.7},
	{3.5, 3.8, 3.9, 3.7, 6.7, 3.2, 3.3, 3.3, 3.7, 4.3, 5.1, 4.5, 3.8},
	{3.3, 3.6, 3.7, 3.5, 6.4, 3.0, 3.1, 3.1, 2.8, 3.3, 4.5, 4.5, 3.4},
	{3.3, 3.6, 3.7, 3.5, 6.3, 2.9, 3.1, 3.0, 2.8, 2.7, 3.8, 3.4, 4.4},
}

// Average crib points given away when the crib belongs to the opponent.
var poneCrib = CribTable{
	{5.4, 4.5, 4.7, 5.3, 5.5, 4.4, 4.3, 4.4, 4.1, 3.9, 4.2, 3.9, 3.9},
	{4.5, 5.7, 6.7, 4.8, 5.5, 4.6, 4.5, 4.4, 4.3, 4.1, 4.4, 4.1, 4.1},
	{4.7, 6.7, 6.0, 5.4, 6.0, 4.4, 4.5, 4.5, 4.3, 4.2, 4.5, 4.2, 4.1},
	{5.3, 4.8, 5.4, 5.7, 6.5, 4.7, 4.3, 4.4, 4.3, 4.0, 4.3, 4.0, 4.0},
	{5.5, 5.5, 6.0, 6.5, 7.4, 6.6, 6.1, 5.6, 5.5, 6.4, 6.7, 6.4, 6.4},
	{4.4, 4.6, 4.4, 4.7, 6.6, 6.2, 5.8, 5.4, 5.5, 3.9, 4.1, 3.8, 3.8},
	{4.3, 4.5, 4.5, 4.3, 6.1, 5.8, 6.2, 6.7, 4.8, 3.9, 4.2, 3.9, 3.9},
	{4.4, 4.4, 4.5, 4.4, 5.6, 5.4, 6.7, 5.8, 5.3, 4.5, 4.1, 3.9, 3.8},
	{4.1, 4.3, 4.3, 4.3, 5.5, 5.5, 4.8, 5.3, 5.5, 4.8, 4.4, 3.7, 3.7},
	{3.9, 4.1, 4.2, 4.0, 6.4, 3.9, 3.9, 4.5, 4.8, 5.1, 5.0, 4.1, 3.5},
	{4.2, 4.4, 4.5, 4.3, 6.7, 4.1, 4.2, 4.1, 4.4, 5.0, 5.5, 5.0, 4.4},
	{3.9, 4.1, 4.2, 4.0, 6.4, 3.8, 3.9, 3.9, 3.7, 4.1, 5.0, 5.0, 4.0},
	{3.9, 4.1, 4.1, 4.0, 6.4, 3.8, 3.9, 3.8, 3.7, 3.5, 4.4, 4.0, 4.8},
}
