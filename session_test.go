package vvstream

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

// writeSegment creates a single quality-level segment file for object 0,
// frame offset offset, single view, quality 0, containing n bytes.
func writeSegment(t *testing.T, root string, offset int, n int) {
	t.Helper()
	dir := filepath.Join(root, "0", strconv.Itoa(offset), "single")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	data := make([]byte, n)
	if err := os.WriteFile(filepath.Join(dir, "0.seg"), data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestSessionServesRequestedFramesWithNoopDecoder(t *testing.T) {
	root := t.TempDir()
	writeSegment(t, root, 0, 4096)

	player, err := New(root,
		WithBufferCapacity(1),
		WithSegmentFrames(4),
		WithDecoder("noop"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	session, err := player.NewSession(nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- session.Run(ctx) }()

	for offset := uint64(0); offset < 2; offset++ {
		select {
		case session.Requests() <- FrameRequest{ObjectID: 0, FrameOffset: offset}:
		case <-ctx.Done():
			t.Fatalf("timed out sending request for offset %d", offset)
		}

		select {
		case delivery := <-session.Frames():
			if delivery.Request.FrameOffset != offset {
				t.Fatalf("served offset %d, want %d", delivery.Request.FrameOffset, offset)
			}
		case <-ctx.Done():
			t.Fatalf("timed out waiting for frame at offset %d", offset)
		}
	}

	cancel()
	if err := <-runErr; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
