package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// envConfig mirrors Config's fields with env struct tags, the same
// struct-tag overlay BrunoKrugel-snapshot2stream's config package applies
// over its own defaults.
type envConfig struct {
	ManifestRoot string `env:"VVSTREAM_MANIFEST_ROOT"`
	LogDir       string `env:"VVSTREAM_LOG_DIR"`
	CacheDir     string `env:"VVSTREAM_CACHE_DIR"`

	BufferCapacity int    `env:"VVSTREAM_BUFFER_CAPACITY"`
	FPS            uint32 `env:"VVSTREAM_FPS"`
	SegmentFrames  int    `env:"VVSTREAM_SEGMENT_FRAMES"`

	ABR string `env:"VVSTREAM_ABR"`

	ThroughputPredictor string  `env:"VVSTREAM_THROUGHPUT_PREDICTOR"`
	ThroughputAlpha     float64 `env:"VVSTREAM_THROUGHPUT_ALPHA"`
	ViewportPredictor   string  `env:"VVSTREAM_VIEWPORT_PREDICTOR"`

	Multiview bool   `env:"VVSTREAM_MULTIVIEW"`
	Decoder   string `env:"VVSTREAM_DECODER"`

	NetworkTrace      string `env:"VVSTREAM_NETWORK_TRACE"`
	CameraTrace       string `env:"VVSTREAM_CAMERA_TRACE"`
	RecordCameraTrace string `env:"VVSTREAM_RECORD_CAMERA_TRACE"`

	EnableFetcherOptimizations bool   `env:"VVSTREAM_ENABLE_FETCHER_OPTIMIZATIONS"`
	HTTPBaseURL                string `env:"VVSTREAM_HTTP_BASE_URL"`

	Verbose bool `env:"VVSTREAM_VERBOSE"`
}

// LoadEnv loads a .env file (if present at dotenvPath) and then overlays any
// VVSTREAM_* environment variables onto cfg. Only variables that are
// actually set override cfg's current value; an unset variable leaves the
// field untouched.
func LoadEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			if err := godotenv.Load(dotenvPath); err != nil {
				return fmt.Errorf("failed to load .env file %s: %w", dotenvPath, err)
			}
		}
	}

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("failed to parse environment configuration: %w", err)
	}

	if ec.ManifestRoot != "" {
		cfg.ManifestRoot = ec.ManifestRoot
	}
	if ec.LogDir != "" {
		cfg.LogDir = ec.LogDir
	}
	if ec.CacheDir != "" {
		cfg.CacheDir = ec.CacheDir
	}
	if ec.BufferCapacity != 0 {
		cfg.BufferCapacity = ec.BufferCapacity
	}
	if ec.FPS != 0 {
		cfg.FPS = ec.FPS
	}
	if ec.SegmentFrames != 0 {
		cfg.SegmentFrames = ec.SegmentFrames
	}
	if ec.ABR != "" {
		cfg.ABR = ec.ABR
	}
	if ec.ThroughputPredictor != "" {
		cfg.ThroughputPredictor = ec.ThroughputPredictor
	}
	if ec.ThroughputAlpha != 0 {
		cfg.ThroughputAlpha = ec.ThroughputAlpha
	}
	if ec.ViewportPredictor != "" {
		cfg.ViewportPredictor = ec.ViewportPredictor
	}
	if os.Getenv("VVSTREAM_MULTIVIEW") != "" {
		cfg.Multiview = ec.Multiview
	}
	if ec.Decoder != "" {
		cfg.Decoder = ec.Decoder
	}
	if ec.NetworkTrace != "" {
		cfg.NetworkTrace = ec.NetworkTrace
	}
	if ec.CameraTrace != "" {
		cfg.CameraTrace = ec.CameraTrace
	}
	if ec.RecordCameraTrace != "" {
		cfg.RecordCameraTrace = ec.RecordCameraTrace
	}
	if os.Getenv("VVSTREAM_ENABLE_FETCHER_OPTIMIZATIONS") != "" {
		cfg.EnableFetcherOptimizations = ec.EnableFetcherOptimizations
	}
	if ec.HTTPBaseURL != "" {
		cfg.HTTPBaseURL = ec.HTTPBaseURL
	}
	if os.Getenv("VVSTREAM_VERBOSE") != "" {
		cfg.Verbose = ec.Verbose
	}
	return nil
}
