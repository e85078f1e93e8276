// Package abr implements the core's adaptive-bitrate selectors: a
// queueing-theoretic single-stream selector (Quetra), a viewport-aware
// multiple-choice-knapsack selector (MCKP), and a two-phase combination of
// the two for multiview streams (QuetraMultiview).
package abr

import "math"

// bufferSlack computes P_{K,r,b}, the expected steady-state occupancy of a
// size-K playout buffer filled from a stream of bitrate r under observed
// throughput b. For K>10 it short-circuits to the documented model limit
// P ≈ K/2 rather than evaluating the series, which is also where the
// recursive factorial in the reference source would start to overflow.
//
// xI(i,r,b) uses an iterative accumulator for (i-j)^j / j! instead of
// computing a separate factorial, so there is no recursion and no
// intermediate overflow for any K this function is actually called with.
func bufferSlack(k uint64, r, b float64) float64 {
	if k > 10 {
		return float64(k) / 2.0
	}
	if k == 0 {
		return 0
	}

	denominator := 1.0 + (b/r)*xI(k-1, r, b)

	var pkrb float64
	for i := uint64(0); i < k; i++ {
		pkrb += xI(i, r, b)
	}
	return pkrb / denominator
}

// xI evaluates Σ_{j=0..i} (-1)^j (i-j)^j/j! (b/r)^j exp((i-j)·b/r).
func xI(i uint64, r, b float64) float64 {
	var result float64
	for j := uint64(0); j <= i; j++ {
		term := firstTerm(i, j) * math.Pow(b/r, float64(j)) * math.Exp(float64(i-j)*(b/r))
		if j%2 == 0 {
			result += term
		} else {
			result -= term
		}
	}
	return result
}

// firstTerm computes (i-j)^j / j! by iteratively accumulating the product
// ∏_{m=1..j} (i-j)/m, which never forms j! as an intermediate value.
func firstTerm(i, j uint64) float64 {
	result := 1.0
	base := float64(i - j)
	for m := uint64(1); m <= j; m++ {
		result *= base / float64(m)
	}
	return result
}

// Quetra is the single-stream buffer-slack-matching selector.
type Quetra struct {
	// K is the playout buffer capacity in segments.
	K uint64
	// FPS is the nominal playout rate; carried for parity with the
	// reference model, which parameterises segment frequency on it.
	FPS uint32
}

// NewQuetra returns a Quetra selector for the given buffer capacity.
func NewQuetra(bufferCapacity uint64, fps uint32) *Quetra {
	return &Quetra{K: bufferCapacity, FPS: fps}
}

// SelectQuality picks the bitrate index minimising P_{K,r_i,b} - K_occ. Ties
// are broken toward the lower (lower-bitrate) index, since the loop only
// replaces its running best on a strictly smaller difference.
func (q *Quetra) SelectQuality(bufferOccupancy uint64, networkThroughput float64, availableBitrates []float64) int {
	result := 0
	minDiff := math.MaxFloat64
	for i, r := range availableBitrates {
		pkrb := bufferSlack(q.K, r, networkThroughput)
		diff := pkrb - float64(bufferOccupancy)
		if diff < minDiff {
			result = i
			minDiff = diff
		}
	}
	return result
}
