package reporter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// LogReporter writes streaming events to a log file, one timestamped line
// per event.
type LogReporter struct {
	w  io.Writer
	mu sync.Mutex
}

// NewLogReporter creates a log reporter writing to w.
func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{w: w}
}

func (r *LogReporter) log(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(r.w, "%s [%s] %s\n", timestamp, level, msg)
}

func (r *LogReporter) Prefetch(e PrefetchEvent) {
	r.log("DEBUG", "prefetch object=%d offset=%d buffer_len=%d", e.ObjectID, e.FrameOffset, e.BufferLen)
}

func (r *LogReporter) Seek(e SeekEvent) {
	r.log("INFO", "seek object=%d requested=%d cleared=%d", e.ObjectID, e.RequestedFrame, e.ClearedLen)
}

func (r *LogReporter) Miss(e MissEvent) {
	r.log("DEBUG", "miss object=%d offset=%d", e.ObjectID, e.FrameOffset)
}

func (r *LogReporter) Service(e ServiceEvent) {
	r.log("DEBUG", "service object=%d offset=%d remaining=%d", e.ObjectID, e.FrameOffset, e.Remaining)
}

func (r *LogReporter) BufferFull(e BufferFullEvent) {
	r.log("DEBUG", "buffer full object=%d len=%d capacity=%d", e.ObjectID, e.BufferLen, e.Capacity)
}

func (r *LogReporter) FetchComplete(e FetchEvent) {
	r.log("INFO", "fetch complete object=%d offset=%d throughput=%.0fbps quality=%v", e.ObjectID, e.FrameOffset, e.Throughput, e.Quality)
}

func (r *LogReporter) DecodeStarted(e DecodeEvent) {
	r.log("DEBUG", "decode started object=%d offset=%d", e.ObjectID, e.FrameOffset)
}

func (r *LogReporter) Warning(message string) {
	r.log("WARN", "%s", message)
}

func (r *LogReporter) Error(err error) {
	r.log("ERROR", "%s", err)
}

func (r *LogReporter) Verbose(message string) {
	r.log("DEBUG", "%s", message)
}
