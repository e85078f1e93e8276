package reporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogReporterWritesEvents(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(&buf)

	r.Miss(MissEvent{ObjectID: 1, FrameOffset: 30})
	r.FetchComplete(FetchEvent{ObjectID: 1, FrameOffset: 30, Throughput: 1_000_000, Quality: []int{0, 1}})
	r.Error(errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"miss object=1 offset=30", "fetch complete object=1", "boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q: %s", want, out)
		}
	}
}

func TestNullReporterDiscardsEverything(t *testing.T) {
	var r Reporter = NullReporter{}
	r.Prefetch(PrefetchEvent{})
	r.Seek(SeekEvent{})
	r.Miss(MissEvent{})
	r.Service(ServiceEvent{})
	r.BufferFull(BufferFullEvent{})
	r.FetchComplete(FetchEvent{})
	r.DecodeStarted(DecodeEvent{})
	r.Warning("noop")
	r.Error(errors.New("noop"))
	r.Verbose("noop")
}
