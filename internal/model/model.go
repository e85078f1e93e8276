// Package model defines the core value types shared by the buffer manager,
// ABR, predictors, fetcher, and decoder: objects, segments, frame requests,
// and the buffer's own entry/status types.
package model

// Views is the fixed number of faces in a multiview encoding.
const Views = 6

// CameraPosition is a pose sample: a 3D point plus orientation.
type CameraPosition struct {
	X, Y, Z          float64
	Pitch, Yaw, Roll float64
}

// FrameRequest is emitted by the renderer and consumed by the buffer manager.
// Two requests are equal iff ObjectID and FrameOffset match; CameraPos is
// excluded from that comparison.
type FrameRequest struct {
	ObjectID    uint8
	FrameOffset uint64
	CameraPos   *CameraPosition // nil if the renderer did not supply one
}

// SameSegment reports whether two requests address the same (object, offset)
// pair, ignoring camera pose.
func (r FrameRequest) SameSegment(other FrameRequest) bool {
	return r.ObjectID == other.ObjectID && r.FrameOffset == other.FrameOffset
}

// FetchRequest is emitted by the buffer manager and consumed by the fetcher.
type FetchRequest struct {
	FrameRequest
	BufferOccupancy int // segments currently held, at the moment of issue
}

// FrameStatus is the state of a BufferEntry. Exactly one of the Is* methods
// reports true; Go has no sum types, so this is a small tagged struct
// instead of an interface to keep zero-value semantics simple.
type FrameStatus struct {
	kind      statusKind
	remaining int
	frames    PointCloudSource
}

type statusKind int

const (
	StatusFetching statusKind = iota
	StatusDecoding
	StatusReady
)

// Fetching constructs a Fetching status.
func Fetching() FrameStatus { return FrameStatus{kind: StatusFetching} }

// Decoding constructs a Decoding status.
func Decoding() FrameStatus { return FrameStatus{kind: StatusDecoding} }

// Ready constructs a Ready status carrying the remaining frame count and the
// pull-iterator frames are drained from.
func Ready(remaining int, frames PointCloudSource) FrameStatus {
	return FrameStatus{kind: StatusReady, remaining: remaining, frames: frames}
}

// Kind reports which state this status represents.
func (s FrameStatus) Kind() statusKind { return s.kind }

func (s FrameStatus) IsFetching() bool { return s.kind == StatusFetching }
func (s FrameStatus) IsDecoding() bool { return s.kind == StatusDecoding }
func (s FrameStatus) IsReady() bool    { return s.kind == StatusReady }

// Remaining is only meaningful when IsReady is true.
func (s FrameStatus) Remaining() int { return s.remaining }

// Source is only meaningful when IsReady is true.
func (s FrameStatus) Source() PointCloudSource { return s.frames }

// WithRemaining returns a copy with an updated remaining count, used after a
// frame is pulled from the entry's channel.
func (s FrameStatus) WithRemaining(remaining int) FrameStatus {
	s.remaining = remaining
	return s
}

// BufferEntry is one element of the buffer manager's FIFO queue.
type BufferEntry struct {
	Request FrameRequest
	Status  FrameStatus
	// PendingAnswer is true when a renderer request is waiting for this
	// entry to produce a frame (it is the queue's front entry and is not
	// yet Ready, or is Ready but empty).
	PendingAnswer bool
}

// Frame is one decoded point cloud payload moving through the pipeline.
// Deliberately opaque: the core never inspects point contents, only moves
// ownership of the slice along the pipeline.
type Frame struct {
	Points []byte
}

// PointCloudSource is a move-only pull-iterator over a segment's decoded
// frames: exactly SegmentSize values can be pulled in order, then Next
// reports ok=false forever. It is the Go analogue of a channel receiver end
// handed from the decoder to the buffer manager.
type PointCloudSource interface {
	Next() (Frame, bool)
}

// ChanSource adapts a channel of frames into a PointCloudSource.
type ChanSource struct {
	ch <-chan Frame
}

// NewChanSource wraps ch as a PointCloudSource.
func NewChanSource(ch <-chan Frame) ChanSource {
	return ChanSource{ch: ch}
}

// Next pulls the next frame, blocking until one is available or the channel
// is closed.
func (c ChanSource) Next() (Frame, bool) {
	f, ok := <-c.ch
	return f, ok
}

// Quality is an index into a view's available-bitrates list; ladders and
// quality-score tables ascend, so a higher index is a higher bitrate.
type Quality = int

// FetchedSegment is what the fetcher hands to the decoder: up to Views paths
// (empty entries for unused views) plus the throughput observed fetching them.
type FetchedSegment struct {
	Paths      [Views]string
	Throughput float64 // bits per second
}

// DecodedSegment is what the decoder hands to the buffer manager: the
// segment's identity plus a pull-iterator of its frames.
type DecodedSegment struct {
	ObjectID    uint8
	FrameOffset uint64
	Frames      PointCloudSource
}
