package abr

// mckpQualityScores is the fixed six-level quality table the reference
// source hard-codes for its six-view test content. The package tests pass it
// as the per-level scores of MCKP and QuetraMultiview; a session takes its
// table from the manifest provider instead.
var mckpQualityScores = []float64{1.72, 2.69, 3.61, 4.26, 4.47, 4.5}

// QuetraMultiview combines MCKP's viewport-aware level selection with
// Quetra's buffer-slack matching: MCKP proposes an initial per-view vector,
// then a single local-search pass tries swapping each view to each other
// level, keeping the swap that brings the joint buffer slack closer to the
// current occupancy.
type QuetraMultiview struct {
	K     uint64
	FPS   uint32
	views int
	mckp  *MCKP
}

// NewQuetraMultiview returns a QuetraMultiview selector. qualities supplies
// MCKP's per-level quality scores (one table shared by all views).
func NewQuetraMultiview(bufferCapacity uint64, fps uint32, views int, qualities []float64) *QuetraMultiview {
	return &QuetraMultiview{K: bufferCapacity, FPS: fps, views: views, mckp: NewMCKP(views, qualities)}
}

// SelectQuality returns one quality index per view.
func (q *QuetraMultiview) SelectQuality(bufferOccupancy uint64, networkThroughput float64, availableBitrates [][]uint64, cosines []float64) []int {
	selected := q.mckp.SelectQuality(bufferOccupancy, networkThroughput, availableBitrates, cosines)

	results := append([]int(nil), selected...)
	minDiff := diffForSelection(q.K, bufferOccupancy, networkThroughput, availableBitrates, selected)

	for plane, current := range selected {
		for level := range availableBitrates[plane] {
			if level == current {
				continue
			}
			candidate := append([]int(nil), selected...)
			candidate[plane] = level
			diff := diffForSelection(q.K, bufferOccupancy, networkThroughput, availableBitrates, candidate)
			if diff < minDiff {
				results = candidate
				minDiff = diff
			}
		}
	}
	return results
}

func diffForSelection(k uint64, bufferOccupancy uint64, networkThroughput float64, availableBitrates [][]uint64, selection []int) float64 {
	var totalBitrate uint64
	for plane, level := range selection {
		totalBitrate += availableBitrates[plane][level]
	}
	pkrb := bufferSlack(k, float64(totalBitrate), networkThroughput)
	diff := pkrb - float64(bufferOccupancy)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
