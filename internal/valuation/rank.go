package valuation

import (
	"cmp"
	"iter"
	"slices"
)

// RankTopHoldings yields the n holdings with the greatest current value,
// largest first. Equal values keep their input order. The input slice is
// copied, so the sequence can be ranged over any number of times.
func RankTopHoldings(values []HoldingValue, n int) iter.Seq[HoldingValue] {
	ranked := slices.Clone(values)
	slices.SortStableFunc(ranked, func(a, b HoldingValue) int {
		return cmp.Compare(0, a.CurrentValue.Cmp(b.CurrentValue))
	})
	if n < 0 {
		n = 0
	}
	if n < len(ranked) {
		ranked = ranked[:n]
	}

	return func(yield func(HoldingValue) bool) {
		for _, hv := range ranked {
			if !yield(hv) {
				return
			}
		}
	}
}
