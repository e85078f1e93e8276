package camtrace

import (
	"path/filepath"
	"testing"

	"vvstream/internal/model"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.csv")

	rec := NewRecorder(path)
	want := []model.CameraPosition{
		{X: 1, Y: 2, Z: 3, Pitch: 10, Yaw: 20, Roll: 30},
		{X: -1.5, Y: 0, Z: 2.25, Pitch: -5, Yaw: 90, Roll: 0},
	}
	for _, p := range want {
		rec.Record(p)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d poses, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pose %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPlayerWrapsAround(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.csv")
	rec := NewRecorder(path)
	rec.Record(model.CameraPosition{X: 1})
	rec.Record(model.CameraPosition{X: 2})
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p, err := NewPlayer(path)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	seq := []float64{p.Next().X, p.Next().X, p.Next().X}
	want := []float64{1, 2, 1}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("seq[%d] = %v, want %v", i, seq[i], want[i])
		}
	}
}
