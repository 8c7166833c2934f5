package ordering

import "cmp"

// Lower is a tie-break rule for [Best] that prefers strictly smaller scores,
// so the first-seen minimum wins.
func Lower[S cmp.Ordered](a, b S) bool { return a < b }

// Higher prefers strictly larger scores; the first-seen maximum wins.
func Higher[S cmp.Ordered](a, b S) bool { return a > b }

// Best scans items once and returns the index of the best-scoring item.
//
// score reports an item's score and whether the item is a candidate at all;
// non-candidates are skipped. better(a, b) reports whether score a should
// replace the current best b. With a strict comparison such as [Lower],
// ties keep the earliest item. ok is false when no item is a candidate.
func Best[T any, S cmp.Ordered](items []T, score func(T) (S, bool), better func(a, b S) bool) (idx int, ok bool) {
	var best S
	idx = -1
	for i, it := range items {
		s, candidate := score(it)
		if !candidate {
			continue
		}
		if idx < 0 || better(s, best) {
			idx, best = i, s
		}
	}
	return idx, idx >= 0
}
