package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	cfg := New("/tmp/manifest", "/tmp/logs")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.ABR != DefaultABR {
		t.Fatalf("ABR = %q, want %q", cfg.ABR, DefaultABR)
	}
	if cfg.GetCacheDir() != cfg.ManifestRoot {
		t.Fatalf("GetCacheDir should fall back to ManifestRoot when unset")
	}
}

func TestValidateRejectsUnknownABR(t *testing.T) {
	cfg := New("/tmp/manifest", "/tmp/logs")
	cfg.ABR = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown abr")
	}
}

func TestValidateRequiresManifestRoot(t *testing.T) {
	cfg := New("", "/tmp/logs")
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when manifest_root is not set")
	}
	cfg.HTTPBaseURL = "https://example.test"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("http_base_url does not substitute for a required manifest_root")
	}
	cfg.ManifestRoot = "/tmp/manifest"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("manifest_root plus http_base_url should validate: %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	cfg := New("/tmp/manifest", "/tmp/logs")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "abr: mckp\nbuffer_capacity: 8\nmultiview: true\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := LoadFile(cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ABR != "mckp" {
		t.Fatalf("ABR = %q, want mckp", cfg.ABR)
	}
	if cfg.BufferCapacity != 8 {
		t.Fatalf("BufferCapacity = %d, want 8", cfg.BufferCapacity)
	}
	if !cfg.Multiview {
		t.Fatalf("Multiview should be true")
	}
	// Fields the file omitted keep their existing value.
	if cfg.ManifestRoot != "/tmp/manifest" {
		t.Fatalf("ManifestRoot should be preserved, got %q", cfg.ManifestRoot)
	}
}

func TestLoadEnvOverridesOnlySetVars(t *testing.T) {
	cfg := New("/tmp/manifest", "/tmp/logs")
	t.Setenv("VVSTREAM_ABR", "quetra-multiview")
	t.Setenv("VVSTREAM_BUFFER_CAPACITY", "12")

	if err := LoadEnv(cfg, ""); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.ABR != "quetra-multiview" {
		t.Fatalf("ABR = %q, want quetra-multiview", cfg.ABR)
	}
	if cfg.BufferCapacity != 12 {
		t.Fatalf("BufferCapacity = %d, want 12", cfg.BufferCapacity)
	}
	if cfg.LogDir != "/tmp/logs" {
		t.Fatalf("LogDir should be preserved, got %q", cfg.LogDir)
	}
}
