package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config's fields with YAML tags, the same nested-struct
// shape the Sensor-Logger config loader unmarshals into before copying
// values across with defaults preserved for zero-value fields.
type fileConfig struct {
	ManifestRoot string `yaml:"manifest_root"`
	LogDir       string `yaml:"log_dir"`
	CacheDir     string `yaml:"cache_dir"`

	BufferCapacity int    `yaml:"buffer_capacity"`
	FPS            uint32 `yaml:"fps"`
	SegmentFrames  int    `yaml:"segment_frames"`

	ABR string `yaml:"abr"`

	ThroughputPredictor string  `yaml:"throughput_predictor"`
	ThroughputAlpha     float64 `yaml:"throughput_alpha"`
	ViewportPredictor   string  `yaml:"viewport_predictor"`

	Multiview bool   `yaml:"multiview"`
	Decoder   string `yaml:"decoder"`

	NetworkTrace      string `yaml:"network_trace"`
	CameraTrace       string `yaml:"camera_trace"`
	RecordCameraTrace string `yaml:"record_camera_trace"`

	EnableFetcherOptimizations bool   `yaml:"enable_fetcher_optimizations"`
	HTTPBaseURL                string `yaml:"http_base_url"`

	Verbose bool `yaml:"verbose"`
}

// LoadFile reads a YAML configuration file and applies every field it sets
// onto cfg, leaving fields the file omits at their current (default) value.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	// Start from the current config so omitted YAML fields keep their
	// existing (default) values rather than being zeroed out.
	fc.fromConfig(cfg)

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.applyTo(cfg)
	return nil
}

func (fc *fileConfig) fromConfig(c *Config) {
	fc.ManifestRoot = c.ManifestRoot
	fc.LogDir = c.LogDir
	fc.CacheDir = c.CacheDir
	fc.BufferCapacity = c.BufferCapacity
	fc.FPS = c.FPS
	fc.SegmentFrames = c.SegmentFrames
	fc.ABR = c.ABR
	fc.ThroughputPredictor = c.ThroughputPredictor
	fc.ThroughputAlpha = c.ThroughputAlpha
	fc.ViewportPredictor = c.ViewportPredictor
	fc.Multiview = c.Multiview
	fc.Decoder = c.Decoder
	fc.NetworkTrace = c.NetworkTrace
	fc.CameraTrace = c.CameraTrace
	fc.RecordCameraTrace = c.RecordCameraTrace
	fc.EnableFetcherOptimizations = c.EnableFetcherOptimizations
	fc.HTTPBaseURL = c.HTTPBaseURL
	fc.Verbose = c.Verbose
}

func (fc *fileConfig) applyTo(c *Config) {
	c.ManifestRoot = fc.ManifestRoot
	c.LogDir = fc.LogDir
	c.CacheDir = fc.CacheDir
	c.BufferCapacity = fc.BufferCapacity
	c.FPS = fc.FPS
	c.SegmentFrames = fc.SegmentFrames
	c.ABR = fc.ABR
	c.ThroughputPredictor = fc.ThroughputPredictor
	c.ThroughputAlpha = fc.ThroughputAlpha
	c.ViewportPredictor = fc.ViewportPredictor
	c.Multiview = fc.Multiview
	c.Decoder = fc.Decoder
	c.NetworkTrace = fc.NetworkTrace
	c.CameraTrace = fc.CameraTrace
	c.RecordCameraTrace = fc.RecordCameraTrace
	c.EnableFetcherOptimizations = fc.EnableFetcherOptimizations
	c.HTTPBaseURL = fc.HTTPBaseURL
	c.Verbose = fc.Verbose
}
