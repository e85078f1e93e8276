// Package reporter defines the event sink the buffer manager, fetcher, and
// decoder push progress and diagnostics through, and ships four
// implementations: a discarding NullReporter, a timestamped LogReporter, a
// colorized TerminalReporter for interactive use, and a CompositeReporter
// that forwards each event to several reporters.
package reporter

// PrefetchEvent reports that the buffer manager issued a prefetch for the
// segment following the current tail.
type PrefetchEvent struct {
	ObjectID    uint8
	FrameOffset uint64
	BufferLen   int
}

// SeekEvent reports a buffer clear triggered by a renderer request outside
// the buffered range.
type SeekEvent struct {
	ObjectID       uint8
	RequestedFrame uint64
	ClearedLen     int
}

// MissEvent reports a renderer request served by issuing a brand new fetch
// because nothing in the buffer could answer it.
type MissEvent struct {
	ObjectID    uint8
	FrameOffset uint64
}

// ServiceEvent reports a frame delivered to the renderer from a Ready entry.
type ServiceEvent struct {
	ObjectID    uint8
	FrameOffset uint64
	Remaining   int
}

// BufferFullEvent reports that the desired buffer level has been reached and
// no further prefetch was issued.
type BufferFullEvent struct {
	ObjectID  uint8
	BufferLen int
	Capacity  int
}

// FetchEvent reports a completed segment download.
type FetchEvent struct {
	ObjectID    uint8
	FrameOffset uint64
	Throughput  float64 // bits per second
	Quality     []int
}

// DecodeEvent reports a decoder starting work on a fetched segment.
type DecodeEvent struct {
	ObjectID    uint8
	FrameOffset uint64
}

// Reporter receives every domain event the streaming pipeline produces.
// Implementations must be safe for concurrent use: the buffer manager,
// fetcher, and decoder each call it from their own goroutine.
type Reporter interface {
	Prefetch(PrefetchEvent)
	Seek(SeekEvent)
	Miss(MissEvent)
	Service(ServiceEvent)
	BufferFull(BufferFullEvent)
	FetchComplete(FetchEvent)
	DecodeStarted(DecodeEvent)
	Warning(message string)
	Error(err error)
	Verbose(message string)
}
