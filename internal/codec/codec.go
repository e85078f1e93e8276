// Package codec is the external collaborator that turns fetched segment
// files into a stream of decoded point-cloud frames: the Codec Backend from
// the core's interface contract. Three reference implementations are
// provided: noop (synthetic frames, for exercising the pipeline without
// real payloads), patchset (a single length-prefixed binary container), and
// multipatch (one patchset file per view, merged frame by frame). None of
// these depend on a point-cloud codec library — see DESIGN.md for why the
// example pack has no such dependency to wire in.
package codec

import "vvstream/internal/model"

// Backend is the Codec Backend collaborator: Start prepares the decoder,
// Poll yields frames one at a time until the segment is exhausted.
type Backend interface {
	Start() error
	Poll() (model.Frame, bool)
}

// Kind enumerates the configured decoder implementation.
type Kind string

const (
	KindNoop      Kind = "noop"
	KindPatchSet  Kind = "patch-set"
	KindMultipatch Kind = "multipatch"
)
