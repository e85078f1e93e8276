// Package vvstream provides a Go library implementing the core streaming
// engine of a volumetric-video player: adaptive bitrate selection across
// Quetra, MCKP, and QuetraMultiview strategies, a buffer-manager-mediated
// fetch/decode/playback pipeline, and pluggable throughput/viewport
// predictors.
//
// Basic usage:
//
//	player, err := vvstream.New("/path/to/segments",
//	    vvstream.WithBufferCapacity(5),
//	    vvstream.WithABR("quetra-multiview"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := player.NewSession(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go session.Run(ctx)
//
//	session.Requests() <- vvstream.FrameRequest{ObjectID: 0, FrameOffset: 0}
//	delivery := <-session.Frames()
package vvstream

import (
	"vvstream/internal/config"
)

// Player is the main entry point: it holds validated configuration and
// mints Sessions that each own one running pipeline instance.
type Player struct {
	config *config.Config
}

// Option configures the player.
type Option func(*config.Config)

// New creates a new Player reading segments/manifest data from manifestRoot.
func New(manifestRoot string, opts ...Option) (*Player, error) {
	cfg := config.New(manifestRoot, "")

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Player{config: cfg}, nil
}

// NewFromConfig wraps an already-built and validated Config, the path
// cmd/vvplay uses after layering file/env/flag configuration.
func NewFromConfig(cfg *config.Config) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Player{config: cfg}, nil
}

// WithBufferCapacity sets the hard cap on simultaneous in-flight segments.
func WithBufferCapacity(capacity int) Option {
	return func(c *config.Config) { c.BufferCapacity = capacity }
}

// WithFPS sets the nominal playout rate; Quetra stores it, but its selection
// does not use it.
func WithFPS(fps uint32) Option {
	return func(c *config.Config) { c.FPS = fps }
}

// WithSegmentFrames sets the number of frames per segment.
func WithSegmentFrames(frames int) Option {
	return func(c *config.Config) { c.SegmentFrames = frames }
}

// WithABR selects the ABR strategy: "quetra", "mckp", or "quetra-multiview".
func WithABR(kind string) Option {
	return func(c *config.Config) { c.ABR = kind }
}

// WithThroughputPredictor selects the throughput predictor and its EMA-family
// smoothing factor.
func WithThroughputPredictor(kind string, alpha float64) Option {
	return func(c *config.Config) {
		c.ThroughputPredictor = kind
		c.ThroughputAlpha = alpha
	}
}

// WithMultiview enables six-view bitrate enumeration.
func WithMultiview() Option {
	return func(c *config.Config) { c.Multiview = true }
}

// WithDecoder selects the codec backend: "noop", "draco", or "patch-set".
func WithDecoder(kind string) Option {
	return func(c *config.Config) { c.Decoder = kind }
}

// WithNetworkTrace overrides measured throughput with samples from a trace
// file (Kbps per line).
func WithNetworkTrace(path string) Option {
	return func(c *config.Config) { c.NetworkTrace = path }
}

// WithCameraTrace overrides the renderer's camera pose with samples from a
// trace file.
func WithCameraTrace(path string) Option {
	return func(c *config.Config) { c.CameraTrace = path }
}

// WithRecordCameraTrace appends observed camera poses to path on shutdown.
func WithRecordCameraTrace(path string) Option {
	return func(c *config.Config) { c.RecordCameraTrace = path }
}

// WithEnableFetcherOptimizations skips a fetch when the local cache already
// has the segment.
func WithEnableFetcherOptimizations() Option {
	return func(c *config.Config) { c.EnableFetcherOptimizations = true }
}

// WithHTTPBackend fetches segment bytes over HTTP from baseURL instead of
// reading them from the manifest root's local directory. The manifest
// itself (total frames, per-view bitrate ladders) is still read from the
// configured manifest root.
func WithHTTPBackend(baseURL string) Option {
	return func(c *config.Config) { c.HTTPBaseURL = baseURL }
}

// WithCacheDir sets the scratch directory for fetcher optimizations.
func WithCacheDir(dir string) Option {
	return func(c *config.Config) { c.CacheDir = dir }
}
