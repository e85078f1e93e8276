// Package decoder implements the decoder task: for each fetched segment it
// instantiates a codec backend, streams decoded frames into a per-segment
// channel, and hands that channel to the buffer manager as soon as the
// first frame (or the codec's readiness) is known.
package decoder

import (
	"context"
	"fmt"
	"sync"

	"vvstream/internal/codec"
	"vvstream/internal/fetcher"
	"vvstream/internal/model"
	"vvstream/internal/reporter"
)

// Config parameterises a Dispatcher.
type Config struct {
	Kind      codec.Kind
	Multiview bool
	// SegmentFrames and PointsPerFrame parameterise the noop codec.
	SegmentFrames  int
	PointsPerFrame int
	Reporter       reporter.Reporter
}

// Dispatcher is the decoder dispatcher task: it spawns one blocking worker
// goroutine per incoming segment and is itself cancellable between
// segments.
type Dispatcher struct {
	cfg Config
}

// New builds a Dispatcher from cfg.
func New(cfg Config) *Dispatcher {
	if cfg.Reporter == nil {
		cfg.Reporter = reporter.NullReporter{}
	}
	return &Dispatcher{cfg: cfg}
}

// Run consumes fetcher.Job values from jobs until it is closed or ctx is
// cancelled, spawning a decode worker per job and forwarding each worker's
// DecodedSegment to out. Per spec.md §7, a codec-start failure is fatal only
// for the segment it occurred on: it is reported on failed, not returned
// from Run. Run blocks until every in-flight worker has exited.
func (d *Dispatcher) Run(ctx context.Context, jobs <-chan fetcher.Job, out chan<- model.DecodedSegment, failed chan<- model.FrameRequest) error {
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil
		case job, ok := <-jobs:
			if !ok {
				wg.Wait()
				return nil
			}
			wg.Add(1)
			go func(job fetcher.Job) {
				defer wg.Done()
				d.decodeOne(ctx, job, out, failed)
			}(job)
		}
	}
}

// decodeOne instantiates a codec backend for one fetched segment and
// streams its frames into a buffered channel sized to the segment's known
// frame count, which is the Go analogue of spec.md §5's "unbounded"
// per-segment channel: the producer never blocks on it because the
// consumer can never ask for more than SegmentFrames values. A codec error
// is reported on failed and the worker exits without touching out.
func (d *Dispatcher) decodeOne(ctx context.Context, job fetcher.Job, out chan<- model.DecodedSegment, failed chan<- model.FrameRequest) {
	d.cfg.Reporter.DecodeStarted(reporter.DecodeEvent{ObjectID: job.Request.ObjectID, FrameOffset: job.Request.FrameOffset})

	backend, err := codec.New(codec.Config{
		Kind:           d.cfg.Kind,
		Paths:          job.Fetched.Paths,
		SegmentFrames:  d.cfg.SegmentFrames,
		PointsPerFrame: d.cfg.PointsPerFrame,
	})
	if err != nil {
		d.reportFailure(ctx, job.Request, fmt.Errorf("building decoder for object %d offset %d: %w", job.Request.ObjectID, job.Request.FrameOffset, err), failed)
		return
	}

	if err := backend.Start(); err != nil {
		d.reportFailure(ctx, job.Request, fmt.Errorf("starting decoder for object %d offset %d: %w", job.Request.ObjectID, job.Request.FrameOffset, err), failed)
		return
	}

	frames := make(chan model.Frame, d.cfg.SegmentFrames)
	segment := model.DecodedSegment{
		ObjectID:    job.Request.ObjectID,
		FrameOffset: job.Request.FrameOffset,
		Frames:      model.NewChanSource(frames),
	}

	select {
	case out <- segment:
	case <-ctx.Done():
		close(frames)
		return
	}

	for {
		if ctx.Err() != nil {
			close(frames)
			return
		}
		frame, ok := backend.Poll()
		if !ok {
			close(frames)
			return
		}
		select {
		case frames <- frame:
		case <-ctx.Done():
			close(frames)
			return
		}
	}
}

// reportFailure logs a non-fatal codec error and forwards the originating
// request on failed so the buffer manager can evict the segment and
// refetch it, per spec.md §7's "fatal for that segment" contract.
func (d *Dispatcher) reportFailure(ctx context.Context, req model.FrameRequest, err error, failed chan<- model.FrameRequest) {
	d.cfg.Reporter.Warning(err.Error())
	select {
	case failed <- req:
	case <-ctx.Done():
	}
}
