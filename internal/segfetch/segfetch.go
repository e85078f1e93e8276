// Package segfetch is the external collaborator that downloads or reads
// segment files: the Segment Fetcher Backend from the core's interface
// contract. HTTPBackend fetches over HTTP via resty; LocalBackend reads a
// local directory tree, optionally through a disk cache.
package segfetch

import "vvstream/internal/model"

// Backend is the Segment Fetcher Backend collaborator.
type Backend interface {
	// Download fetches one segment's per-view quality selections.
	// qualityPerView[i] is -1 for a view not in use. throttleBPS, when
	// non-zero, caps the backend's read rate to simulate a network trace.
	Download(objectID uint8, frameOffset uint64, qualityPerView [model.Views]int, multiview bool, throttleBPS float64) (model.FetchedSegment, error)
}
