package abr

import "math"

// visibleCosine is cos(75°); views whose cosine to the camera exceeds it are
// outside the "easy to see" cone and always collapse to the lowest quality.
const visibleCosine = 0.2588

// MCKP selects one quality level per view via a bounded depth-first
// multiple-choice knapsack search, maximising Σ q_i·(visibleCosine - cosθ_i)
// subject to Σ bitrate ≤ throughput.
type MCKP struct {
	views    int
	qualities []float64
}

// NewMCKP returns an MCKP selector for the given number of views and
// per-level quality scores.
func NewMCKP(views int, qualities []float64) *MCKP {
	return &MCKP{views: views, qualities: qualities}
}

// SelectQuality returns one quality index per view. bufferOccupancy is
// accepted for interface parity with Quetra but unused by MCKP. A throughput
// below 1e-4 is handled here rather than inside the recursion: spec.md §8
// requires it collapse to the lowest (cheapest) index per view, not the
// recursion's "unachievable" -Inf sentinel, which would otherwise fire on
// the very first call and return no selection at all.
func (m *MCKP) SelectQuality(bufferOccupancy uint64, networkThroughput float64, availableBitrates [][]uint64, cosines []float64) []int {
	if networkThroughput < 1e-4 {
		return make([]int, m.views)
	}
	_, chosen := m.selectQualityHelper(m.views, networkThroughput, availableBitrates, cosines, 0, nil)
	return chosen
}

// selectQualityHelper mirrors the reference recursion: it walks views from
// last to first, tries every level at the current view, and recurses with
// the remaining throughput budget. A throughput below 1e-4 at any step is
// unachievable and returns -Inf so the branch is pruned by the caller's
// comparison.
func (m *MCKP) selectQualityHelper(viewsLeft int, networkThroughput float64, availableBitrates [][]uint64, cosines []float64, quality float64, chosen []int) (float64, []int) {
	if networkThroughput < 1e-4 {
		return math.Inf(-1), nil
	}
	if viewsLeft == 0 {
		return quality, reversed(chosen)
	}

	result := 0.0
	resultChosen := make([]int, len(availableBitrates))

	for i, r := range availableBitrates[viewsLeft-1] {
		chosen = append(chosen, i)
		q, c := m.selectQualityHelper(
			viewsLeft-1,
			networkThroughput-float64(r),
			availableBitrates,
			cosines,
			quality-m.qualities[i]*(cosines[viewsLeft-1]-visibleCosine),
			chosen,
		)
		if result < q {
			result, resultChosen = q, c
		}
		chosen = chosen[:len(chosen)-1]
	}
	return result, resultChosen
}

func reversed(xs []int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}
