package abr

import "testing"

func TestQuetraMultiviewRespectsBudgetAndImprovesOrMatchesMCKP(t *testing.T) {
	bitrates := [][]uint64{
		{100, 200, 300, 400, 500, 600},
		{100, 200, 300, 400, 500, 600},
		{100, 200, 300, 400, 500, 600},
		{100, 200, 300, 400, 500, 600},
		{100, 200, 300, 400, 500, 600},
		{100, 200, 300, 400, 500, 600},
	}
	cosines := []float64{0.88, 0.17, 0.44, -0.94, 0.25, -0.17}

	qmv := NewQuetraMultiview(5, 30, 6, mckpQualityScores)
	const bufferOccupancy = 3
	const throughput = 3000.0

	mckpOnly := NewMCKP(6, mckpQualityScores)
	mckpSelection := mckpOnly.SelectQuality(bufferOccupancy, throughput, bitrates, cosines)
	mckpDiff := diffForSelection(qmv.K, bufferOccupancy, throughput, bitrates, mckpSelection)

	got := qmv.SelectQuality(bufferOccupancy, throughput, bitrates, cosines)
	if len(got) != 6 {
		t.Fatalf("expected one quality per view, got %v", got)
	}
	if bitrateSum(got, bitrates) > uint64(throughput) {
		t.Fatalf("selection %v exceeds throughput budget", got)
	}

	gotDiff := diffForSelection(qmv.K, bufferOccupancy, throughput, bitrates, got)
	if gotDiff > mckpDiff+epsilon {
		t.Fatalf("local search made buffer slack worse: mckp diff=%v, result diff=%v", mckpDiff, gotDiff)
	}
}

func TestQuetraMultiviewDeterministic(t *testing.T) {
	bitrates := [][]uint64{
		{100, 200, 300}, {100, 200, 300}, {100, 200, 300},
		{100, 200, 300}, {100, 200, 300}, {100, 200, 300},
	}
	cosines := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	qmv := NewQuetraMultiview(4, 30, 6, mckpQualityScores)

	a := qmv.SelectQuality(2, 900, bitrates, cosines)
	b := qmv.SelectQuality(2, 900, bitrates, cosines)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic selection: %v != %v", a, b)
		}
	}
}
