// Package manifest is the external collaborator that resolves object/segment
// metadata: total frame count, segment duration, per-view bitrate ladders,
// and the per-level quality scores MCKP needs for its objective term. The
// core only depends on the Provider interface; LocalProvider is a reference
// implementation that reads a directory tree instead of a DASH manifest.
package manifest

// Provider is the Manifest Provider collaborator.
type Provider interface {
	TotalFrames() int
	SegmentDuration() (numFrames int, fps int)
	// AvailableBitrates returns the bitrate ladder (bits per second) for one
	// view of one object. view is -1 for non-multiview objects.
	AvailableBitrates(objectID uint8, frameOffset uint64, view int) []uint64
	// QualityScores returns the per-level quality score table MCKP uses as
	// its objective weight q_i, shared across all views of the object.
	QualityScores(objectID uint8) []float64
}
