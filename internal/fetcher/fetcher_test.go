package fetcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vvstream/internal/model"
)

type fakeManifest struct{}

func (fakeManifest) TotalFrames() int                 { return 300 }
func (fakeManifest) SegmentDuration() (int, int)      { return 30, 30 }
func (fakeManifest) AvailableBitrates(uint8, uint64, int) []uint64 {
	return []uint64{100, 200, 300}
}
func (fakeManifest) QualityScores(uint8) []float64 { return []float64{1, 2, 3} }

type fakeStrategy struct{}

func (fakeStrategy) SelectQuality(uint64, float64, [][]uint64, []float64) []int {
	return []int{1}
}

type fakePredictor struct {
	mu      sync.Mutex
	samples []float64
}

func (p *fakePredictor) Add(s float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = append(p.samples, s)
}
func (p *fakePredictor) Predict() (float64, bool) { return 500, true }

type fakeBackend struct {
	mu    sync.Mutex
	calls int
	fail  int
}

func (b *fakeBackend) Download(objectID uint8, frameOffset uint64, q [model.Views]int, multiview bool, throttle float64) (model.FetchedSegment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.calls <= b.fail {
		return model.FetchedSegment{}, errors.New("transient")
	}
	return model.FetchedSegment{Paths: [model.Views]string{"seg.dat"}, Throughput: 800}, nil
}

func TestFetchOneHappyPath(t *testing.T) {
	pred := &fakePredictor{}
	backend := &fakeBackend{}
	f := New(Config{
		Backend:   backend,
		Manifest:  fakeManifest{},
		ABR:       fakeStrategy{},
		Predictor: pred,
		Workers:   1,
	})

	in := make(chan model.FetchRequest, 1)
	toDecoder := make(chan Job, 1)
	fetchDone := make(chan model.FrameRequest, 1)

	in <- model.FetchRequest{FrameRequest: model.FrameRequest{ObjectID: 1, FrameOffset: 0}, BufferOccupancy: 0}
	close(in)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := f.Run(ctx, in, toDecoder, fetchDone); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	select {
	case job := <-toDecoder:
		if job.Request.ObjectID != 1 || job.Fetched.Throughput != 800 {
			t.Fatalf("unexpected job: %+v", job)
		}
	default:
		t.Fatalf("expected a decoder job")
	}

	select {
	case req := <-fetchDone:
		if req.FrameOffset != 0 {
			t.Fatalf("unexpected fetch done: %+v", req)
		}
	default:
		t.Fatalf("expected a fetchDone signal")
	}

	if len(pred.samples) != 1 || pred.samples[0] != 800 {
		t.Fatalf("predictor should observe the measured throughput, got %v", pred.samples)
	}
}

func TestFetchOneRetriesTransientFailures(t *testing.T) {
	pred := &fakePredictor{}
	backend := &fakeBackend{fail: 2}
	f := New(Config{
		Backend:   backend,
		Manifest:  fakeManifest{},
		ABR:       fakeStrategy{},
		Predictor: pred,
		Workers:   1,
	})

	in := make(chan model.FetchRequest, 1)
	toDecoder := make(chan Job, 1)
	fetchDone := make(chan model.FrameRequest, 1)
	in <- model.FetchRequest{FrameRequest: model.FrameRequest{ObjectID: 2, FrameOffset: 30}}
	close(in)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := f.Run(ctx, in, toDecoder, fetchDone); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if backend.calls != 3 {
		t.Fatalf("expected 3 attempts (2 failures + 1 success), got %d", backend.calls)
	}
}

func TestViewCosinesNilPoseLooksAtEveryView(t *testing.T) {
	cosines := viewCosines(nil, model.Views)
	for i, c := range cosines {
		if c != 1 {
			t.Fatalf("cosines[%d] = %v, want 1", i, c)
		}
	}
}

func TestViewCosinesForwardZ(t *testing.T) {
	pose := model.CameraPosition{Yaw: 0, Pitch: 0}
	cosines := viewCosines(&pose, model.Views)
	// Forward vector is +Z when yaw=pitch=0; view index 4 is +Z.
	if cosines[4] < 0.99 {
		t.Fatalf("expected cosines[4] close to 1, got %v", cosines[4])
	}
}
