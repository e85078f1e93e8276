// Package config provides configuration types and defaults for vvstream.
package config

import "fmt"

// Default constants, field-for-field the table in spec.md §6.2.
const (
	// DefaultBufferCapacity is the hard cap on simultaneous in-flight segments.
	DefaultBufferCapacity int = 5

	// DefaultFPS is the nominal playout rate; Quetra stores it, but its
	// selection does not use it.
	DefaultFPS uint32 = 30

	// DefaultSegmentFrames is the nominal segment size in frames (1s @ 30fps).
	DefaultSegmentFrames int = 30

	// DefaultABR selects the single-stream buffer-slack-matching strategy.
	DefaultABR string = "quetra"

	// DefaultThroughputPredictor is the simple last-value predictor.
	DefaultThroughputPredictor string = "last"

	// DefaultThroughputAlpha is the EMA-family smoothing factor.
	DefaultThroughputAlpha float64 = 0.1

	// DefaultViewportPredictor is the only predictor the core requires.
	DefaultViewportPredictor string = "last"

	// DefaultMultiview disables six-view bitrate enumeration.
	DefaultMultiview bool = false

	// DefaultDecoder is the synthetic no-op codec backend.
	DefaultDecoder string = "noop"

	// DefaultEnableFetcherOptimizations leaves the local cache short-circuit off.
	DefaultEnableFetcherOptimizations bool = false
)

// Config holds all configuration for the streaming engine.
type Config struct {
	// Input/output paths
	ManifestRoot string // directory read by manifest.LocalProvider / segfetch.LocalBackend
	LogDir       string
	CacheDir     string // scratch dir for enable_fetcher_optimizations; GetCacheDir falls back to ManifestRoot

	// Playback parameters
	BufferCapacity int    // segments
	FPS            uint32 // nominal playout rate
	SegmentFrames  int    // frames per segment

	// ABR ∈ {quetra, mckp, quetra-multiview}
	ABR string

	// Predictors
	ThroughputPredictor string // ∈ {last, avg, ema, gaema, lpema, kama}
	ThroughputAlpha     float64
	ViewportPredictor   string // ∈ {last}

	// Multiview enables six-view bitrate enumeration.
	Multiview bool

	// Decoder ∈ {noop, draco, patch-set} (patch-set maps to codec.KindPatchSet
	// or codec.KindMultipatch depending on Multiview).
	Decoder string

	// NetworkTrace overrides measured throughput with file samples (Kbps/line).
	NetworkTrace string
	// CameraTrace overrides camera pose with file samples.
	CameraTrace string
	// RecordCameraTrace appends observed poses to file on shutdown.
	RecordCameraTrace string

	// EnableFetcherOptimizations skips fetch if the local cache already has
	// the segment.
	EnableFetcherOptimizations bool

	// HTTPBaseURL, when set, selects segfetch.HTTPBackend over LocalBackend
	// for segment downloads. ManifestRoot is still required: the manifest
	// (total frames, per-view bitrate ladders) is always read from a local
	// directory regardless of where segment bytes come from.
	HTTPBaseURL string

	// Debug options
	Verbose bool
}

// New creates a new Config with default values rooted at manifestRoot.
func New(manifestRoot, logDir string) *Config {
	return &Config{
		ManifestRoot:               manifestRoot,
		LogDir:                     logDir,
		BufferCapacity:             DefaultBufferCapacity,
		FPS:                        DefaultFPS,
		SegmentFrames:              DefaultSegmentFrames,
		ABR:                        DefaultABR,
		ThroughputPredictor:        DefaultThroughputPredictor,
		ThroughputAlpha:            DefaultThroughputAlpha,
		ViewportPredictor:          DefaultViewportPredictor,
		Multiview:                  DefaultMultiview,
		Decoder:                    DefaultDecoder,
		EnableFetcherOptimizations: DefaultEnableFetcherOptimizations,
	}
}

// Validate checks the configuration for errors. The core never starts in a
// malformed configuration state (spec.md §7).
func (c *Config) Validate() error {
	if c.BufferCapacity < 1 {
		return fmt.Errorf("buffer_capacity must be at least 1, got %d", c.BufferCapacity)
	}
	if c.FPS < 1 {
		return fmt.Errorf("fps must be at least 1, got %d", c.FPS)
	}
	if c.SegmentFrames < 1 {
		return fmt.Errorf("segment_frames must be at least 1, got %d", c.SegmentFrames)
	}

	switch c.ABR {
	case "quetra", "mckp", "quetra-multiview":
	default:
		return fmt.Errorf("abr must be one of quetra, mckp, quetra-multiview, got %q", c.ABR)
	}

	switch c.ThroughputPredictor {
	case "last", "avg", "ema", "gaema", "lpema", "kama":
	default:
		return fmt.Errorf("throughput_predictor must be one of last, avg, ema, gaema, lpema, kama, got %q", c.ThroughputPredictor)
	}

	if c.ThroughputAlpha <= 0 || c.ThroughputAlpha >= 1 {
		return fmt.Errorf("throughput_alpha must be in (0, 1), got %g", c.ThroughputAlpha)
	}

	switch c.ViewportPredictor {
	case "last":
	default:
		return fmt.Errorf("viewport_predictor must be \"last\", got %q", c.ViewportPredictor)
	}

	switch c.Decoder {
	case "noop", "draco", "patch-set":
	default:
		return fmt.Errorf("decoder must be one of noop, draco, patch-set, got %q", c.Decoder)
	}

	if c.ManifestRoot == "" {
		return fmt.Errorf("manifest_root must be set")
	}

	return nil
}

// GetCacheDir returns the configured cache directory, falling back to the
// manifest root if none was set.
func (c *Config) GetCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return c.ManifestRoot
}
