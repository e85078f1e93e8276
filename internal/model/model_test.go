package model

import "testing"

func TestFrameRequestSameSegment(t *testing.T) {
	a := FrameRequest{ObjectID: 1, FrameOffset: 30, CameraPos: &CameraPosition{X: 1}}
	b := FrameRequest{ObjectID: 1, FrameOffset: 30, CameraPos: &CameraPosition{X: 2}}
	if !a.SameSegment(b) {
		t.Fatalf("expected same segment despite differing camera pose")
	}
	c := FrameRequest{ObjectID: 1, FrameOffset: 31}
	if a.SameSegment(c) {
		t.Fatalf("expected different segment for differing frame offset")
	}
}

func TestChanSourceDrainsInOrder(t *testing.T) {
	ch := make(chan Frame, 3)
	ch <- Frame{Points: []byte{1}}
	ch <- Frame{Points: []byte{2}}
	close(ch)

	src := NewChanSource(ch)
	f, ok := src.Next()
	if !ok || f.Points[0] != 1 {
		t.Fatalf("expected first frame, got %v ok=%v", f, ok)
	}
	f, ok = src.Next()
	if !ok || f.Points[0] != 2 {
		t.Fatalf("expected second frame, got %v ok=%v", f, ok)
	}
	if _, ok = src.Next(); ok {
		t.Fatalf("expected exhausted source")
	}
}

func TestFrameStatusReadyRemaining(t *testing.T) {
	ch := make(chan Frame)
	close(ch)
	s := Ready(5, NewChanSource(ch))
	if !s.IsReady() || s.Remaining() != 5 {
		t.Fatalf("expected ready status with remaining=5, got %+v", s)
	}
	s = s.WithRemaining(4)
	if s.Remaining() != 4 {
		t.Fatalf("expected remaining updated to 4, got %d", s.Remaining())
	}
}
