// Package fetcher implements the fetcher task: it translates FetchRequests
// from the buffer manager into segment downloads (or local reads), consults
// the ABR strategy for the quality to request, records observed throughput
// back into the throughput predictor, and forwards the fetched paths on to
// the decoder.
package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vvstream/internal/abr"
	"vvstream/internal/manifest"
	"vvstream/internal/model"
	"vvstream/internal/nettrace"
	"vvstream/internal/predict"
	"vvstream/internal/reporter"
	"vvstream/internal/segfetch"
)

// maxRetries bounds the "retried indefinitely" contract from spec.md §4.6 to
// a concrete, acceptable refinement: a handful of attempts with a short
// backoff before the failure is surfaced as fatal.
const maxRetries = 5

const retryBackoff = 100 * time.Millisecond

// Job is what the fetcher hands to the decoder: the original request plus
// the fetched segment paths and the throughput observed fetching them.
type Job struct {
	Request model.FrameRequest
	Fetched model.FetchedSegment
}

// Config parameterises a Fetcher.
type Config struct {
	Backend   segfetch.Backend
	Manifest  manifest.Provider
	ABR       abr.Strategy
	Predictor predict.Predictor
	// NetworkTrace, when set, overrides measured throughput with file
	// samples and throttles the backend to the sampled rate.
	NetworkTrace *nettrace.Trace
	Multiview    bool
	// Workers bounds the number of concurrent in-flight downloads; the
	// buffer manager never has more than buffer_capacity segments
	// in-flight, so this is sized to match.
	Workers  int
	Reporter reporter.Reporter
}

// Fetcher is the fetcher task. It is safe to Run exactly once.
type Fetcher struct {
	cfg Config
	sem chan struct{}
}

// New builds a Fetcher from cfg. A Workers value below 1 is treated as 1.
func New(cfg Config) *Fetcher {
	if cfg.Reporter == nil {
		cfg.Reporter = reporter.NullReporter{}
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{cfg: cfg, sem: make(chan struct{}, workers)}
}

// Run consumes FetchRequests from in until it is closed or ctx is
// cancelled, dispatching each to a bounded pool of download workers.
// Completed downloads are handed to the decoder via toDecoder and
// acknowledged to the buffer manager via fetchDone. Run returns the first
// unrecoverable error encountered, mirroring the buffer manager's own
// fatal-error-propagates-via-return contract.
func (f *Fetcher) Run(ctx context.Context, in <-chan model.FetchRequest, toDecoder chan<- Job, fetchDone chan<- model.FrameRequest) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	failed := make(chan struct{})
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			close(failed)
		}
	}

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil
		case <-failed:
			mu.Lock()
			defer mu.Unlock()
			return firstErr
		case req, ok := <-in:
			if !ok {
				wg.Wait()
				mu.Lock()
				defer mu.Unlock()
				return firstErr
			}

			select {
			case f.sem <- struct{}{}:
			case <-ctx.Done():
				wg.Wait()
				return nil
			}

			wg.Add(1)
			go func(req model.FetchRequest) {
				defer wg.Done()
				defer func() { <-f.sem }()

				if err := f.fetchOne(ctx, req, toDecoder, fetchDone); err != nil {
					if ctx.Err() != nil {
						return
					}
					f.cfg.Reporter.Error(err)
					setErr(err)
				}
			}(req)
		}
	}
}

// fetchOne runs the per-request pipeline: ABR selection, download with
// bounded retry, predictor feedback, and handoff to the decoder.
func (f *Fetcher) fetchOne(ctx context.Context, req model.FetchRequest, toDecoder chan<- Job, fetchDone chan<- model.FrameRequest) error {
	views, bitrates := f.availableBitrates(req)
	cosines := viewCosines(req.CameraPos, views)

	predicted, _ := f.cfg.Predictor.Predict()
	var throttleBPS float64
	if f.cfg.NetworkTrace != nil {
		predicted = f.cfg.NetworkTrace.NextBitsPerSecond()
		throttleBPS = predicted
	}

	selected := f.cfg.ABR.SelectQuality(uint64(req.BufferOccupancy), predicted, bitrates, cosines)

	var qualityPerView [model.Views]int
	for i := range qualityPerView {
		qualityPerView[i] = -1
	}
	for i, q := range selected {
		qualityPerView[i] = q
	}

	fetched, err := f.downloadWithRetry(ctx, req, qualityPerView, throttleBPS)
	if err != nil {
		return err
	}

	sample := fetched.Throughput
	if f.cfg.NetworkTrace != nil {
		sample = predicted
	}
	f.cfg.Predictor.Add(sample)

	f.cfg.Reporter.FetchComplete(reporter.FetchEvent{
		ObjectID:    req.ObjectID,
		FrameOffset: req.FrameOffset,
		Throughput:  sample,
		Quality:     selected,
	})

	select {
	case toDecoder <- Job{Request: req.FrameRequest, Fetched: fetched}:
	case <-ctx.Done():
		return nil
	}

	select {
	case fetchDone <- req.FrameRequest:
	case <-ctx.Done():
	}
	return nil
}

func (f *Fetcher) downloadWithRetry(ctx context.Context, req model.FetchRequest, qualityPerView [model.Views]int, throttleBPS float64) (model.FetchedSegment, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			f.cfg.Reporter.Warning(fmt.Sprintf("retrying fetch for object %d offset %d (attempt %d): %v", req.ObjectID, req.FrameOffset, attempt+1, lastErr))
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return model.FetchedSegment{}, ctx.Err()
			}
		}

		fetched, err := f.cfg.Backend.Download(req.ObjectID, req.FrameOffset, qualityPerView, f.cfg.Multiview, throttleBPS)
		if err == nil {
			return fetched, nil
		}
		lastErr = err
	}
	return model.FetchedSegment{}, fmt.Errorf("fetch failed for object %d offset %d after %d attempts: %w", req.ObjectID, req.FrameOffset, maxRetries, lastErr)
}

// availableBitrates builds the per-view bitrate ladders the configured ABR
// strategy expects: one entry for a single-view object, Views entries for a
// multiview one.
func (f *Fetcher) availableBitrates(req model.FetchRequest) (views int, bitrates [][]uint64) {
	if !f.cfg.Multiview {
		return 1, [][]uint64{f.cfg.Manifest.AvailableBitrates(req.ObjectID, req.FrameOffset, -1)}
	}

	bitrates = make([][]uint64, model.Views)
	for v := 0; v < model.Views; v++ {
		bitrates[v] = f.cfg.Manifest.AvailableBitrates(req.ObjectID, req.FrameOffset, v)
	}
	return model.Views, bitrates
}
