package abr

import (
	"reflect"
	"testing"
)

const epsilon = 1e-8

func nearlyEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

var mckpBitrates = [][]uint64{
	{133, 182, 323, 607, 990},
	{45, 45, 65, 96, 89},
	{122, 179, 317, 582, 896},
	{128, 179, 311, 572, 961},
	{37, 39, 54, 86, 83},
	{125, 192, 347, 653, 931},
}

func bitrateSum(chosen []int, bitrates [][]uint64) uint64 {
	var sum uint64
	for plane, level := range chosen {
		sum += bitrates[plane][level]
	}
	return sum
}

func TestMCKPBudgetRespect(t *testing.T) {
	mckp := NewMCKP(6, mckpQualityScores)
	cosines := []float64{0.88, 0.17, 0.44, -0.94, 0.25, -0.17}

	cases := []struct {
		throughput float64
		want       []int
	}{
		{750, []int{0, 2, 0, 1, 2, 1}},
		{1000, []int{0, 1, 0, 2, 1, 2}},
		{1500, []int{0, 4, 0, 3, 4, 2}},
	}
	for _, c := range cases {
		got := mckp.SelectQuality(0, c.throughput, mckpBitrates, cosines)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("throughput=%v: got %v, want %v", c.throughput, got, c.want)
		}
		if bitrateSum(got, mckpBitrates) > uint64(c.throughput) {
			t.Errorf("throughput=%v: selection %v exceeds budget", c.throughput, got)
		}
	}
}

func TestMCKPViewportGating(t *testing.T) {
	mckp := NewMCKP(6, mckpQualityScores)
	cosines := []float64{-0.18, 0.82, 0.53, 0.96, -0.20, 0.14}

	cases := []struct {
		throughput float64
		want       []int
	}{
		{500, []int{0, 0, 0, 0, 0, 0}},
		{1000, []int{2, 0, 0, 0, 4, 1}},
		{1500, []int{3, 0, 0, 0, 4, 2}},
	}
	for _, c := range cases {
		got := mckp.SelectQuality(0, c.throughput, mckpBitrates, cosines)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("throughput=%v: got %v, want %v", c.throughput, got, c.want)
		}
	}
}

func TestMCKPZeroThroughputReturnsLowestIndex(t *testing.T) {
	mckp := NewMCKP(6, mckpQualityScores)
	cosines := []float64{0.88, 0.17, 0.44, -0.94, 0.25, -0.17}
	got := mckp.SelectQuality(0, 0, mckpBitrates, cosines)
	want := []int{0, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBufferSlackValues(t *testing.T) {
	cases := []struct {
		k    uint64
		r, b float64
		want float64
	}{
		{2, 100, 500, 0.20107662},
		{3, 100, 300, 0.353471},
		{4, 100, 300, 0.35434551},
		{3, 125, 400, 0.32755053},
		{4, 125, 90, 2.74465},
		{4, 150, 70, 3.34906349},
	}
	for _, c := range cases {
		got := bufferSlack(c.k, c.r, c.b)
		if !nearlyEqual(got, c.want, epsilon) {
			t.Errorf("bufferSlack(%d,%v,%v) = %v, want %v", c.k, c.r, c.b, got, c.want)
		}
	}
}

func TestBufferSlackDeterministic(t *testing.T) {
	a := bufferSlack(4, 125, 90)
	b := bufferSlack(4, 125, 90)
	if a != b {
		t.Fatalf("bufferSlack not deterministic: %v != %v", a, b)
	}
}

func TestQuetraK1NoOverflow(t *testing.T) {
	q := NewQuetra(1, 30)
	got := q.SelectQuality(0, 500, []float64{100, 200, 300})
	if got < 0 || got > 2 {
		t.Fatalf("unexpected selection %d", got)
	}
}

func TestQuetraSelectsLowerIndexOnTie(t *testing.T) {
	q := NewQuetra(10, 30)
	got := q.SelectQuality(0, 1000, []float64{500, 500})
	if got != 0 {
		t.Fatalf("expected lower index on tie, got %d", got)
	}
}
