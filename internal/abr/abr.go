package abr

import "fmt"

// Strategy is a quality selector: given the current buffer occupancy,
// predicted throughput, per-view available bitrates, and cosines between
// the camera and each view's normal, it picks a quality index per view.
// Single-view selectors ignore every view past index 0.
type Strategy interface {
	SelectQuality(bufferOccupancy uint64, networkThroughput float64, availableBitrates [][]uint64, cosines []float64) []int
}

// Kind enumerates the configured ABR strategy.
type Kind string

const (
	KindQuetra          Kind = "quetra"
	KindMCKP            Kind = "mckp"
	KindQuetraMultiview Kind = "quetra-multiview"
)

// New builds a Strategy for the given configuration. qualities is MCKP's
// per-level quality score table; it is ignored by plain Quetra.
func New(kind Kind, bufferCapacity uint64, fps uint32, views int, qualities []float64) (Strategy, error) {
	switch kind {
	case KindQuetra:
		return singleViewAdapter{NewQuetra(bufferCapacity, fps)}, nil
	case KindMCKP:
		return NewMCKP(views, qualities), nil
	case KindQuetraMultiview:
		return NewQuetraMultiview(bufferCapacity, fps, views, qualities), nil
	default:
		return nil, fmt.Errorf("unknown abr strategy %q", kind)
	}
}

// singleViewAdapter adapts Quetra's single-bitrate-slice signature to the
// Strategy interface's multiview shape, always operating on view 0.
type singleViewAdapter struct {
	q *Quetra
}

func (a singleViewAdapter) SelectQuality(bufferOccupancy uint64, networkThroughput float64, availableBitrates [][]uint64, cosines []float64) []int {
	bitrates := make([]float64, len(availableBitrates[0]))
	for i, b := range availableBitrates[0] {
		bitrates[i] = float64(b)
	}
	return []int{a.q.SelectQuality(bufferOccupancy, networkThroughput, bitrates)}
}
