package vvstream

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"vvstream/internal/abr"
	"vvstream/internal/buffer"
	"vvstream/internal/camtrace"
	"vvstream/internal/codec"
	"vvstream/internal/config"
	"vvstream/internal/decoder"
	"vvstream/internal/fetcher"
	"vvstream/internal/manifest"
	"vvstream/internal/model"
	"vvstream/internal/nettrace"
	"vvstream/internal/predict"
	"vvstream/internal/reporter"
	"vvstream/internal/segfetch"
)

// FrameRequest is the renderer-facing request type: which object and frame
// offset to display next, optionally carrying an observed camera pose.
type FrameRequest = model.FrameRequest

// CameraPosition is a camera pose sample.
type CameraPosition = model.CameraPosition

// Frame is one decoded point-cloud payload.
type Frame = model.Frame

// FrameDelivery pairs a serviced frame with the request it answers.
type FrameDelivery = buffer.FrameDelivery

// closer is satisfied by segfetch.LocalBackend and camtrace.Recorder.
type closer interface {
	Close() error
}

// Session is one running instance of the streaming pipeline: a buffer
// manager plus its fetcher and decoder tasks, wired together with
// internally-owned channels. A Session is driven by a single call to Run and
// talks to its caller through Requests and Frames.
type Session struct {
	cfg *config.Config

	buf      *buffer.Manager
	fetch    *fetcher.Fetcher
	decode   *decoder.Dispatcher
	reporter reporter.Reporter

	requests chan model.FrameRequest
	closers  []closer
}

// NewSession builds a Session from the Player's configuration. rep receives
// every domain event the pipeline produces; nil falls back to a reporter
// that discards them.
func (p *Player) NewSession(rep Reporter) (*Session, error) {
	cfg := p.config
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	manifestProvider, err := manifest.NewLocalProvider(cfg.ManifestRoot, manifestTotalFrames(cfg), cfg.SegmentFrames, int(cfg.FPS))
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	var closers []closer

	backend, err := buildBackend(cfg, manifestProvider, &closers)
	if err != nil {
		return nil, err
	}

	throughputPredictor, err := predict.New(predict.Kind(cfg.ThroughputPredictor), cfg.ThroughputAlpha)
	if err != nil {
		return nil, fmt.Errorf("building throughput predictor: %w", err)
	}

	views := 1
	if cfg.Multiview {
		views = model.Views
	}
	strategy, err := abr.New(abr.Kind(cfg.ABR), uint64(cfg.BufferCapacity), cfg.FPS, views, manifestProvider.QualityScores(0))
	if err != nil {
		return nil, fmt.Errorf("building abr strategy: %w", err)
	}

	var trace *nettrace.Trace
	if cfg.NetworkTrace != "" {
		trace, err = nettrace.Load(cfg.NetworkTrace)
		if err != nil {
			return nil, fmt.Errorf("loading network trace: %w", err)
		}
	}

	bufCfg := buffer.Config{
		Capacity:    cfg.BufferCapacity,
		SegmentSize: uint64(cfg.SegmentFrames),
		TotalFrames: uint64(manifestProvider.TotalFrames()),
		Reporter:    rep,
	}

	if cfg.CameraTrace != "" {
		player, err := camtrace.NewPlayer(cfg.CameraTrace)
		if err != nil {
			return nil, fmt.Errorf("loading camera trace: %w", err)
		}
		bufCfg.CameraPlayer = player
	} else if cfg.ViewportPredictor != "" {
		bufCfg.ViewportPredictor = camtrace.NewLastPose()
	}

	if cfg.RecordCameraTrace != "" {
		recorder := camtrace.NewRecorder(cfg.RecordCameraTrace)
		bufCfg.CameraRecorder = recorder
		closers = append(closers, recorder)
	}

	bufMgr := buffer.New(bufCfg)

	fetcherWorkers := cfg.BufferCapacity
	fetch := fetcher.New(fetcher.Config{
		Backend:      backend,
		Manifest:     manifestProvider,
		ABR:          strategy,
		Predictor:    throughputPredictor,
		NetworkTrace: trace,
		Multiview:    cfg.Multiview,
		Workers:      fetcherWorkers,
		Reporter:     rep,
	})

	codecKind, err := resolveCodecKind(cfg)
	if err != nil {
		return nil, err
	}
	dec := decoder.New(decoder.Config{
		Kind:           codecKind,
		Multiview:      cfg.Multiview,
		SegmentFrames:  cfg.SegmentFrames,
		PointsPerFrame: defaultPointsPerFrame,
		Reporter:       rep,
	})

	return &Session{
		cfg:      cfg,
		buf:      bufMgr,
		fetch:    fetch,
		decode:   dec,
		reporter: rep,
		requests: make(chan model.FrameRequest),
		closers:  closers,
	}, nil
}

// defaultPointsPerFrame parameterises the noop codec's synthetic payload
// size; it has no effect on the patch-set and multipatch backends, which
// read their frame sizes from the fetched segment files.
const defaultPointsPerFrame = 64

// Requests is where the caller (the renderer) sends frame requests.
func (s *Session) Requests() chan<- model.FrameRequest { return s.requests }

// Frames is the stream of serviced frames the renderer reads from.
func (s *Session) Frames() <-chan buffer.FrameDelivery { return s.buf.Frames() }

// Run starts the buffer manager, fetcher, and decoder tasks and blocks until
// ctx is cancelled or one of them returns a fatal error. On return, every
// registered closer (the local backend's cache directory, a camera-trace
// recorder) is flushed, and the first error from either the pipeline or a
// closer is returned.
func (s *Session) Run(ctx context.Context) error {
	toDecoder := make(chan fetcher.Job, s.cfg.BufferCapacity)
	pointClouds := make(chan model.DecodedSegment, s.cfg.BufferCapacity)
	fetchDone := make(chan model.FrameRequest, s.cfg.BufferCapacity)
	decodeFailed := make(chan model.FrameRequest, s.cfg.BufferCapacity)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.buf.Run(gctx, s.requests, fetchDone, pointClouds, decodeFailed)
	})
	g.Go(func() error {
		return s.fetch.Run(gctx, s.buf.FetchRequests(), toDecoder, fetchDone)
	})
	g.Go(func() error {
		return s.decode.Run(gctx, toDecoder, pointClouds, decodeFailed)
	})

	runErr := g.Wait()

	var closeErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}

	if runErr != nil {
		return runErr
	}
	return closeErr
}

// buildBackend selects LocalBackend or HTTPBackend per configuration,
// registering any backend that owns a cache directory as a closer.
func buildBackend(cfg *config.Config, provider *manifest.LocalProvider, closers *[]closer) (segfetch.Backend, error) {
	if cfg.HTTPBaseURL != "" {
		return segfetch.NewHTTPBackend(cfg.HTTPBaseURL, cfg.GetCacheDir()), nil
	}

	backend, err := segfetch.NewLocalBackend(provider, cfg.EnableFetcherOptimizations, cfg.GetCacheDir())
	if err != nil {
		return nil, fmt.Errorf("building local segment backend: %w", err)
	}
	*closers = append(*closers, backend)
	return backend, nil
}

// resolveCodecKind maps the configured decoder name to a codec.Kind,
// choosing between the single-file and per-view patch-set variants
// according to whether multiview is enabled.
func resolveCodecKind(cfg *config.Config) (codec.Kind, error) {
	switch cfg.Decoder {
	case "noop":
		return codec.KindNoop, nil
	case "patch-set", "draco":
		if cfg.Multiview {
			return codec.KindMultipatch, nil
		}
		return codec.KindPatchSet, nil
	default:
		return "", fmt.Errorf("unknown decoder %q", cfg.Decoder)
	}
}

// manifestTotalFrames is a placeholder asset length used until a real DASH
// manifest header is available; LocalProvider's directory tree carries no
// such header, so the core treats the buffer's prefetch anchor as wrapping
// at this bound. 108000 frames at the default 30fps is one hour of content.
const manifestDefaultTotalFrames = 108000

func manifestTotalFrames(cfg *config.Config) int {
	return manifestDefaultTotalFrames
}
