package codec

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writePatchSet(t *testing.T, path string, frames [][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer func() { _ = f.Close() }()
	for _, frame := range frames {
		if err := binary.Write(f, binary.LittleEndian, uint32(len(frame))); err != nil {
			t.Fatalf("Write length: %v", err)
		}
		if _, err := f.Write(frame); err != nil {
			t.Fatalf("Write frame: %v", err)
		}
	}
}

func TestNoopDecoder(t *testing.T) {
	d := NewNoopDecoder(3, 8)
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	count := 0
	for {
		f, ok := d.Poll()
		if !ok {
			break
		}
		if len(f.Points) != 8 {
			t.Errorf("expected 8 points, got %d", len(f.Points))
		}
		count++
	}
	if count != 3 {
		t.Fatalf("expected 3 frames, got %d", count)
	}
}

func TestPatchSetDecoder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segment.bin")
	writePatchSet(t, path, [][]byte{{1, 2, 3}, {4, 5}})

	d := NewPatchSetDecoder(path)
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f1, ok := d.Poll()
	if !ok || len(f1.Points) != 3 {
		t.Fatalf("expected first frame of 3 bytes, got %+v ok=%v", f1, ok)
	}
	f2, ok := d.Poll()
	if !ok || len(f2.Points) != 2 {
		t.Fatalf("expected second frame of 2 bytes, got %+v ok=%v", f2, ok)
	}
	if _, ok := d.Poll(); ok {
		t.Fatalf("expected exhausted decoder")
	}
}

func TestMultipatchDecoderMerges(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.bin")
	pathB := filepath.Join(dir, "b.bin")
	writePatchSet(t, pathA, [][]byte{{1, 2}})
	writePatchSet(t, pathB, [][]byte{{9, 9}})

	d := NewMultipatchDecoder([]string{pathA, pathB})
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f, ok := d.Poll()
	if !ok {
		t.Fatalf("expected a merged frame")
	}
	want := []byte{1, 2, 9, 9}
	if string(f.Points) != string(want) {
		t.Fatalf("got %v, want %v", f.Points, want)
	}
	if _, ok := d.Poll(); ok {
		t.Fatalf("expected exhausted decoder")
	}
}
