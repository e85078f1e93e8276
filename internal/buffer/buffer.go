// Package buffer implements the buffer manager: the single owner of the
// playback buffer that reconciles renderer demand against fetch/decode
// supply and drives prefetch. It is the only component allowed to move a
// segment through the Fetching -> Decoding -> Ready -> drained lifecycle.
package buffer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"vvstream/internal/camtrace"
	"vvstream/internal/model"
	"vvstream/internal/reporter"
)

// FrameDelivery pairs a serviced frame with the request it answers, handed
// to the renderer.
type FrameDelivery struct {
	Request model.FrameRequest
	Frame   model.Frame
}

// Config parameterises a Manager. CameraRecorder, CameraPlayer, and
// ViewportPredictor are all optional; Reporter defaults to a NullReporter.
type Config struct {
	Capacity    int    // max simultaneous in-flight segments
	SegmentSize uint64 // frames per segment
	TotalFrames uint64

	CameraRecorder    *camtrace.Recorder
	CameraPlayer      *camtrace.Player
	ViewportPredictor camtrace.PosePredictor

	Reporter reporter.Reporter
}

// Manager owns the FIFO buffer of in-flight segments. It is not safe for
// concurrent use from more than one goroutine; Run is the single mutator.
type Manager struct {
	cfg      Config
	reporter reporter.Reporter

	entries []model.BufferEntry

	lastReq  *model.FrameRequest
	lastPose *model.CameraPosition

	fetchOut chan model.FetchRequest
	frameOut chan FrameDelivery

	ctx context.Context
}

// New builds a Manager from cfg.
func New(cfg Config) *Manager {
	if cfg.Reporter == nil {
		cfg.Reporter = reporter.NullReporter{}
	}
	return &Manager{
		cfg:      cfg,
		reporter: cfg.Reporter,
		fetchOut: make(chan model.FetchRequest),
		frameOut: make(chan FrameDelivery),
	}
}

// FetchRequests is the outbound stream of fetch requests the fetcher task
// consumes.
func (m *Manager) FetchRequests() <-chan model.FetchRequest { return m.fetchOut }

// Frames is the outbound stream of serviced (request, frame) pairs the
// renderer consumes.
func (m *Manager) Frames() <-chan FrameDelivery { return m.frameOut }

// Run is the manager's single reconciling event loop. It multiplexes
// renderer requests, fetcher completions, and decoder attachments until ctx
// is cancelled or a fatal condition (a closed decoder channel) occurs, in
// which case it returns a non-nil error so the caller can initiate
// shutdown of the other tasks.
func (m *Manager) Run(ctx context.Context, requests <-chan model.FrameRequest, fetchDone <-chan model.FrameRequest, pointClouds <-chan model.DecodedSegment, decodeFailed <-chan model.FrameRequest) error {
	m.ctx = ctx
	for {
		select {
		case <-ctx.Done():
			return nil
		case req, ok := <-requests:
			if !ok {
				return nil
			}
			if err := m.handleRequest(req); err != nil {
				return err
			}
		case req, ok := <-fetchDone:
			if !ok {
				fetchDone = nil
				continue
			}
			m.handleFetchDone(req)
		case seg, ok := <-pointClouds:
			if !ok {
				pointClouds = nil
				continue
			}
			if err := m.handlePointCloud(seg); err != nil {
				return err
			}
		case req, ok := <-decodeFailed:
			if !ok {
				decodeFailed = nil
				continue
			}
			m.handleDecodeFailed(req)
		}
	}
}

// handleRequest runs the full per-request reconciliation algorithm: pose
// resolution, buffer realignment, then service-or-miss.
func (m *Manager) handleRequest(req model.FrameRequest) error {
	if err := m.resolvePose(&req); err != nil {
		return err
	}
	m.lastReq = &req
	if req.CameraPos != nil {
		m.lastPose = req.CameraPos
	}

	m.realign(req)

	if len(m.entries) == 0 {
		m.reporter.Miss(reporter.MissEvent{ObjectID: req.ObjectID, FrameOffset: req.FrameOffset})
		m.issueFetch(req, true)
		return nil
	}

	front := &m.entries[0]
	switch {
	case front.Status.IsFetching() || front.Status.IsDecoding():
		front.PendingAnswer = true
	case front.Status.IsReady():
		return m.deliverFront()
	}
	return nil
}

// resolvePose implements step 1: record the observed pose (if a recorder is
// configured) and resolve the pose that will travel with the request,
// either overwritten from a camera-trace player or replaced by the
// configured viewport predictor's output. Recording and prediction are
// independent of one another and run as the two branches of an errgroup.
func (m *Manager) resolvePose(req *model.FrameRequest) error {
	original := req.CameraPos
	var g errgroup.Group

	if m.cfg.CameraRecorder != nil && original != nil {
		pose := *original
		g.Go(func() error {
			m.cfg.CameraRecorder.Record(pose)
			return nil
		})
	}

	var predicted *model.CameraPosition
	g.Go(func() error {
		switch {
		case m.cfg.CameraPlayer != nil:
			pose := m.cfg.CameraPlayer.Next()
			predicted = &pose
		case m.cfg.ViewportPredictor != nil:
			if original != nil {
				m.cfg.ViewportPredictor.Add(*original)
			}
			if pose, ok := m.cfg.ViewportPredictor.Predict(); ok {
				predicted = &pose
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if predicted != nil {
		req.CameraPos = predicted
	}
	return nil
}

// realign implements step 2: clear the buffer on a seek, or pop drained
// front entries until the front matches the request.
func (m *Manager) realign(req model.FrameRequest) {
	if len(m.entries) == 0 {
		return
	}

	present := false
	for _, e := range m.entries {
		if e.Request.SameSegment(req) {
			present = true
			break
		}
	}
	if !present {
		cleared := len(m.entries)
		m.entries = nil
		m.reporter.Seek(reporter.SeekEvent{ObjectID: req.ObjectID, RequestedFrame: req.FrameOffset, ClearedLen: cleared})
		return
	}

	for len(m.entries) > 0 && !m.entries[0].Request.SameSegment(req) {
		m.entries = m.entries[1:]
	}
}

// deliverFront pulls one frame from the front entry's Ready source and
// forwards it to the renderer, retiring the entry once it is fully drained
// and triggering a prefetch if the desired buffer level has not been
// reached.
func (m *Manager) deliverFront() error {
	e := &m.entries[0]
	frame, ok := e.Status.Source().Next()
	if !ok {
		return m.evictFatal(0, fmt.Errorf("decoder channel closed for object %d offset %d", e.Request.ObjectID, e.Request.FrameOffset))
	}

	servedOffset := e.Request.FrameOffset
	objectID := e.Request.ObjectID
	remaining := e.Status.Remaining() - 1
	e.Request.FrameOffset++
	drained := remaining <= 0
	if !drained {
		e.Status = e.Status.WithRemaining(remaining)
		e.PendingAnswer = false
	}

	served := e.Request
	served.FrameOffset = servedOffset
	m.deliver(served, frame)
	m.reporter.Service(reporter.ServiceEvent{ObjectID: objectID, FrameOffset: servedOffset, Remaining: remaining})

	if drained {
		m.entries = m.entries[1:]
		m.maybePrefetch(objectID)
	}
	return nil
}

// handleFetchDone transitions the matching entry to Decoding and prefetches
// the next segment if the buffer has room.
func (m *Manager) handleFetchDone(req model.FrameRequest) {
	for i := range m.entries {
		if m.entries[i].Request.SameSegment(req) {
			m.entries[i].Status = model.Decoding()
			m.maybePrefetch(req.ObjectID)
			return
		}
	}
	m.reporter.Verbose(fmt.Sprintf("fetch done for evicted segment object=%d offset=%d", req.ObjectID, req.FrameOffset))
}

// handlePointCloud attaches a decoded frame source to its matching entry,
// immediately servicing a pending renderer request if one is waiting.
func (m *Manager) handlePointCloud(seg model.DecodedSegment) error {
	idx := -1
	for i := range m.entries {
		if m.entries[i].Request.ObjectID == seg.ObjectID && m.entries[i].Request.FrameOffset == seg.FrameOffset {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.reporter.Verbose(fmt.Sprintf("point cloud for evicted segment object=%d offset=%d", seg.ObjectID, seg.FrameOffset))
		return nil
	}

	e := &m.entries[idx]
	e.Status = model.Ready(int(m.cfg.SegmentSize), seg.Frames)
	if idx == 0 && e.PendingAnswer {
		return m.deliverFront()
	}
	return nil
}

// handleDecodeFailed implements spec.md §7's codec-start-failure contract: a
// decoder error is fatal only for the one segment it occurred on. The entry
// is evicted; if a renderer request was pending on it, the buffer manager
// falls through to the miss path and issues a fresh fetch for the same
// offset. A prefetched entry that was not yet awaited is simply dropped and
// will be re-fetched the ordinary way once the renderer reaches its offset.
func (m *Manager) handleDecodeFailed(req model.FrameRequest) {
	idx := -1
	for i := range m.entries {
		if m.entries[i].Request.SameSegment(req) {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.reporter.Verbose(fmt.Sprintf("decode failure for evicted segment object=%d offset=%d", req.ObjectID, req.FrameOffset))
		return
	}

	pending := m.entries[idx].PendingAnswer
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	m.reporter.Error(fmt.Errorf("decoder failed to start for object %d offset %d", req.ObjectID, req.FrameOffset))

	if pending {
		pose := req.CameraPos
		if pose == nil {
			pose = m.lastPose
		}
		m.issueFetch(model.FrameRequest{ObjectID: req.ObjectID, FrameOffset: req.FrameOffset, CameraPos: pose}, true)
	}
}

// maybePrefetch implements the prefetch policy: the next segment's offset
// is (last_buffered.frame_offset + segment_size) mod total_frames, issued
// only when the buffer has room. When the buffer has just drained to empty,
// the prefetch starts at the frame after the last renderer request, so
// playback stays continuous even with capacity == 1.
func (m *Manager) maybePrefetch(objectID uint8) {
	if len(m.entries) >= m.cfg.Capacity {
		m.reporter.BufferFull(reporter.BufferFullEvent{ObjectID: objectID, BufferLen: len(m.entries), Capacity: m.cfg.Capacity})
		return
	}

	var next uint64
	switch {
	case len(m.entries) > 0:
		next = (m.entries[len(m.entries)-1].Request.FrameOffset + m.cfg.SegmentSize) % m.cfg.TotalFrames
	case m.lastReq != nil:
		next = (m.lastReq.FrameOffset + 1) % m.cfg.TotalFrames
	default:
		return
	}

	req := model.FrameRequest{ObjectID: objectID, FrameOffset: next, CameraPos: m.lastPose}
	m.issueFetch(req, false)
	m.reporter.Prefetch(reporter.PrefetchEvent{ObjectID: objectID, FrameOffset: next, BufferLen: len(m.entries)})
}

// issueFetch appends a new Fetching entry and sends the corresponding
// FetchRequest downstream, carrying the buffer occupancy observed at the
// moment of issue.
func (m *Manager) issueFetch(req model.FrameRequest, pendingAnswer bool) {
	occupancy := len(m.entries)
	m.entries = append(m.entries, model.BufferEntry{
		Request:       req,
		Status:        model.Fetching(),
		PendingAnswer: pendingAnswer,
	})
	select {
	case m.fetchOut <- model.FetchRequest{FrameRequest: req, BufferOccupancy: occupancy}:
	case <-m.ctx.Done():
	}
}

func (m *Manager) deliver(req model.FrameRequest, frame model.Frame) {
	select {
	case m.frameOut <- FrameDelivery{Request: req, Frame: frame}:
	case <-m.ctx.Done():
	}
}

// evictFatal drops the entry at idx and returns a fatal error, per the
// contract that a lost decoder channel is unrecoverable for that segment.
func (m *Manager) evictFatal(idx int, err error) error {
	m.reporter.Error(err)
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	return err
}
