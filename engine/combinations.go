package engine

// Combinations calls fn with every k-subset of the indices 0..n-1, in
// lexicographic order. The idx slice is reused between calls; fn must copy
// it to retain it. Returning false from fn stops the enumeration.
func Combinations(n, k int, fn func(idx []int) bool) {
	if k < 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// pick copies the cards at the given indices.
func pick(cards []Card, idx []int) []Card {
	out := make([]Card, len(idx))
	for i, j := range idx {
		out[i] = cards[j]
	}
	return out
}
