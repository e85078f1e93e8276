package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"vvstream"
	"vvstream/internal/config"
	"vvstream/internal/logging"
	"vvstream/internal/reporter"
)

// playArgs holds the parsed arguments for the play command.
type playArgs struct {
	manifestRoot string
	configFile   string
	envFile      string
	logDir       string
	verbose      bool
	noLog        bool

	bufferCapacity      int
	abr                 string
	throughputPredictor string
	throughputAlpha     float64
	viewportPredictor   string
	multiview           bool
	decoder             string
	networkTrace        string
	cameraTrace         string
	recordCameraTrace   string
	enableFetcherOpt    bool
	httpBaseURL         string

	objectID uint
	frames   int // number of frames to request; 0 means until interrupted
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Stream a point-cloud asset.

Usage:
  %s play [options]

Required:
  -i, --input <PATH>     Manifest root directory

Options:
  -c, --config <PATH>    YAML configuration file, layered over the defaults
  -e, --env <PATH>       .env file layered over the config file
  -l, --log-dir <PATH>   Log directory (defaults to ~/.local/state/vvstream/logs)
  -v, --verbose          Enable verbose output for troubleshooting

Streaming Options:
  --buffer <N>           Buffer capacity in segments
  --abr <NAME>           ABR strategy: quetra, mckp, quetra-multiview
  --throughput-predictor <NAME>  last, avg, ema, gaema, lpema, kama
  --throughput-alpha <F>  EMA-family smoothing factor
  --viewport-predictor <NAME>    last
  --multiview             Enable six-view bitrate enumeration
  --decoder <NAME>        noop, draco, patch-set
  --network-trace <PATH>  Replace measured throughput with file samples
  --camera-trace <PATH>   Replace renderer pose with file samples
  --record-camera-trace <PATH>  Append observed poses to file on shutdown
  --enable-fetcher-optimizations  Skip re-fetch of already-cached segments
  --http <URL>            Fetch segment bytes over HTTP instead of from the
                          manifest root's local directory (the manifest
                          root is still required for the manifest itself)

Playback Options:
  --object <N>            Object ID to request. Default: 0
  --frames <N>             Number of frames to request, 0 for until interrupted

Output Options:
  --no-log                Disable vvplay log file creation
`, appName)
	}

	var pa playArgs
	fs.StringVar(&pa.manifestRoot, "i", "", "Manifest root directory")
	fs.StringVar(&pa.manifestRoot, "input", "", "Manifest root directory")
	fs.StringVar(&pa.configFile, "c", "", "YAML configuration file")
	fs.StringVar(&pa.configFile, "config", "", "YAML configuration file")
	fs.StringVar(&pa.envFile, "e", "", ".env file")
	fs.StringVar(&pa.envFile, "env", "", ".env file")
	fs.StringVar(&pa.logDir, "l", "", "Log directory")
	fs.StringVar(&pa.logDir, "log-dir", "", "Log directory")
	fs.BoolVar(&pa.verbose, "v", false, "Enable verbose output")
	fs.BoolVar(&pa.verbose, "verbose", false, "Enable verbose output")

	fs.IntVar(&pa.bufferCapacity, "buffer", 0, "Buffer capacity in segments")
	fs.StringVar(&pa.abr, "abr", "", "ABR strategy")
	fs.StringVar(&pa.throughputPredictor, "throughput-predictor", "", "Throughput predictor")
	fs.Float64Var(&pa.throughputAlpha, "throughput-alpha", 0, "EMA-family smoothing factor")
	fs.StringVar(&pa.viewportPredictor, "viewport-predictor", "", "Viewport predictor")
	fs.BoolVar(&pa.multiview, "multiview", false, "Enable six-view bitrate enumeration")
	fs.StringVar(&pa.decoder, "decoder", "", "Decoder backend")
	fs.StringVar(&pa.networkTrace, "network-trace", "", "Network trace file")
	fs.StringVar(&pa.cameraTrace, "camera-trace", "", "Camera trace file")
	fs.StringVar(&pa.recordCameraTrace, "record-camera-trace", "", "Camera trace recording file")
	fs.BoolVar(&pa.enableFetcherOpt, "enable-fetcher-optimizations", false, "Skip re-fetch of already-cached segments")
	fs.StringVar(&pa.httpBaseURL, "http", "", "HTTP base URL for segment fetches")

	fs.UintVar(&pa.objectID, "object", 0, "Object ID to request")
	fs.IntVar(&pa.frames, "frames", 0, "Number of frames to request, 0 for until interrupted")

	fs.BoolVar(&pa.noLog, "no-log", false, "Disable log file creation")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if pa.manifestRoot == "" {
		return fmt.Errorf("manifest root is required (-i/--input)")
	}

	return executePlay(pa)
}

func executePlay(pa playArgs) error {
	var manifestRoot string
	if pa.manifestRoot != "" {
		abs, err := filepath.Abs(pa.manifestRoot)
		if err != nil {
			return fmt.Errorf("invalid manifest root: %w", err)
		}
		manifestRoot = abs
	}

	logDir := pa.logDir
	if logDir == "" {
		logDir = logging.DefaultLogDir()
	}

	logger, err := logging.Setup(logDir, pa.verbose, pa.noLog, os.Args)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
	}

	cfg := config.New(manifestRoot, logDir)

	if pa.configFile != "" {
		if err := config.LoadFile(cfg, pa.configFile); err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if err := config.LoadEnv(cfg, pa.envFile); err != nil {
		return fmt.Errorf("failed to load environment configuration: %w", err)
	}

	applyPlayArgs(cfg, pa)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if logger != nil {
		logger.Info("Manifest root: %s", cfg.ManifestRoot)
		logger.Info("ABR: %s, buffer capacity: %d, segment frames: %d, fps: %d", cfg.ABR, cfg.BufferCapacity, cfg.SegmentFrames, cfg.FPS)
		logger.Info("Throughput predictor: %s (alpha=%.3f), viewport predictor: %s", cfg.ThroughputPredictor, cfg.ThroughputAlpha, cfg.ViewportPredictor)
		logger.Info("Decoder: %s, multiview: %v", cfg.Decoder, cfg.Multiview)
	}

	termRep := reporter.NewTerminalReporterVerbose(pa.verbose)
	var rep reporter.Reporter = termRep
	if logger != nil {
		logRep := reporter.NewLogReporter(logger.Writer())
		rep = reporter.NewCompositeReporter(termRep, logRep)
	}

	player, err := vvstream.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to build player: %w", err)
	}

	session, err := player.NewSession(rep)
	if err != nil {
		return fmt.Errorf("failed to build session: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	runErrCh := make(chan error, 1)
	go func() { runErrCh <- session.Run(ctx) }()

	_ = drivePlayback(ctx, session, cfg, pa)
	cancel()

	return <-runErrCh
}

// drivePlayback stands in for a real renderer: it requests frames in order
// at the configured playout rate and discards the decoded payloads. It
// exists so the pipeline is exercised end to end without a GPU renderer,
// which remains out of scope per the non-goals.
func drivePlayback(ctx context.Context, session *vvstream.Session, cfg *config.Config, pa playArgs) error {
	objectID := uint8(pa.objectID)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	var offset uint64
	var served int
	for {
		if pa.frames > 0 && served >= pa.frames {
			return nil
		}

		select {
		case session.Requests() <- vvstream.FrameRequest{ObjectID: objectID, FrameOffset: offset}:
		case <-ctx.Done():
			return nil
		}

		select {
		case <-session.Frames():
			offset++
			served++
		case <-ctx.Done():
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil
		}
	}
}

func applyPlayArgs(cfg *config.Config, pa playArgs) {
	if pa.bufferCapacity != 0 {
		cfg.BufferCapacity = pa.bufferCapacity
	}
	if pa.abr != "" {
		cfg.ABR = pa.abr
	}
	if pa.throughputPredictor != "" {
		cfg.ThroughputPredictor = pa.throughputPredictor
	}
	if pa.throughputAlpha != 0 {
		cfg.ThroughputAlpha = pa.throughputAlpha
	}
	if pa.viewportPredictor != "" {
		cfg.ViewportPredictor = pa.viewportPredictor
	}
	if pa.multiview {
		cfg.Multiview = true
	}
	if pa.decoder != "" {
		cfg.Decoder = pa.decoder
	}
	if pa.networkTrace != "" {
		cfg.NetworkTrace = pa.networkTrace
	}
	if pa.cameraTrace != "" {
		cfg.CameraTrace = pa.cameraTrace
	}
	if pa.recordCameraTrace != "" {
		cfg.RecordCameraTrace = pa.recordCameraTrace
	}
	if pa.enableFetcherOpt {
		cfg.EnableFetcherOptimizations = true
	}
	if pa.httpBaseURL != "" {
		cfg.HTTPBaseURL = pa.httpBaseURL
	}
	cfg.Verbose = pa.verbose
}
