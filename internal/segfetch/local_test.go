package segfetch

import (
	"os"
	"path/filepath"
	"testing"

	"vvstream/internal/manifest"
	"vvstream/internal/model"
)

func buildFixture(t *testing.T) *manifest.LocalProvider {
	t.Helper()
	root := t.TempDir()
	segDir := filepath.Join(root, "0", "0", "single")
	if err := os.MkdirAll(segDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for q := 0; q < 3; q++ {
		path := filepath.Join(segDir, string(rune('0'+q))+".seg")
		data := make([]byte, (q+1)*100)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	p, err := manifest.NewLocalProvider(root, 300, 30, 30)
	if err != nil {
		t.Fatalf("NewLocalProvider: %v", err)
	}
	return p
}

func TestLocalBackendDownload(t *testing.T) {
	p := buildFixture(t)
	backend, err := NewLocalBackend(p, false, "")
	if err != nil {
		t.Fatalf("NewLocalBackend: %v", err)
	}

	var q [model.Views]int
	q[0] = 1
	for i := 1; i < model.Views; i++ {
		q[i] = -1
	}

	result, err := backend.Download(0, 0, q, false, 0)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if result.Paths[0] == "" {
		t.Fatalf("expected path for view 0, got %+v", result)
	}
}

func TestLocalBackendCaching(t *testing.T) {
	p := buildFixture(t)
	cacheBase := t.TempDir()
	backend, err := NewLocalBackend(p, true, cacheBase)
	if err != nil {
		t.Fatalf("NewLocalBackend: %v", err)
	}
	defer func() { _ = backend.Close() }()

	var q [model.Views]int
	q[0] = 0
	for i := 1; i < model.Views; i++ {
		q[i] = -1
	}

	result, err := backend.Download(0, 0, q, false, 0)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if _, err := os.Stat(result.Paths[0]); err != nil {
		t.Fatalf("expected cached file to exist: %v", err)
	}
}
