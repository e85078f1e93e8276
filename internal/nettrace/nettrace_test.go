package nettrace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndWrapAround(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.txt")
	if err := os.WriteFile(path, []byte("100\n200.5\n\n300\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	seq := []float64{tr.NextBitsPerSecond(), tr.NextBitsPerSecond(), tr.NextBitsPerSecond(), tr.NextBitsPerSecond()}
	want := []float64{100 * 1024, 200.5 * 1024, 300 * 1024, 100 * 1024}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("seq[%d] = %v, want %v", i, seq[i], want[i])
		}
	}
}
