package decoder

import (
	"context"
	"testing"
	"time"

	"vvstream/internal/codec"
	"vvstream/internal/fetcher"
	"vvstream/internal/model"
)

func TestDispatcherDecodesNoopSegment(t *testing.T) {
	d := New(Config{Kind: codec.KindNoop, SegmentFrames: 5, PointsPerFrame: 16})

	jobs := make(chan fetcher.Job, 1)
	out := make(chan model.DecodedSegment, 1)
	failed := make(chan model.FrameRequest, 1)
	jobs <- fetcher.Job{Request: model.FrameRequest{ObjectID: 3, FrameOffset: 60}}
	close(jobs)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx, jobs, out, failed) }()

	select {
	case seg := <-out:
		if seg.ObjectID != 3 || seg.FrameOffset != 60 {
			t.Fatalf("unexpected segment: %+v", seg)
		}
		count := 0
		for {
			_, ok := seg.Frames.Next()
			if !ok {
				break
			}
			count++
		}
		if count != 5 {
			t.Fatalf("expected 5 frames, got %d", count)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for decoded segment")
	}

	if err := <-errCh; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

// TestDispatcherReportsCodecStartFailureNonFatally exercises spec.md §7's
// contract: a codec Start() failure is fatal only for that segment, not the
// whole dispatcher. Run must return nil and the failing request must surface
// on the failed channel instead.
func TestDispatcherReportsCodecStartFailureNonFatally(t *testing.T) {
	d := New(Config{Kind: codec.KindPatchSet, SegmentFrames: 5})

	jobs := make(chan fetcher.Job, 1)
	out := make(chan model.DecodedSegment, 1)
	failed := make(chan model.FrameRequest, 1)
	req := model.FrameRequest{ObjectID: 7, FrameOffset: 90}
	var fetched model.FetchedSegment
	fetched.Paths[0] = "/nonexistent/path/segment.seg"
	jobs <- fetcher.Job{Request: req, Fetched: fetched}
	close(jobs)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx, jobs, out, failed) }()

	select {
	case got := <-failed:
		if got != req {
			t.Fatalf("failed request = %+v, want %+v", got, req)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for failure report")
	}

	select {
	case seg := <-out:
		t.Fatalf("unexpected segment delivered after codec failure: %+v", seg)
	default:
	}

	if err := <-errCh; err != nil {
		t.Fatalf("Run returned error: %v, want nil (codec failure must be non-fatal)", err)
	}
}
