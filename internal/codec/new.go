package codec

import (
	"fmt"

	"vvstream/internal/model"
)

// Config selects and parameterises a decoder.
type Config struct {
	Kind Kind
	// Paths holds the fetched segment paths, one per view; unused views are
	// empty strings. NoopDecoder ignores it.
	Paths [model.Views]string
	// SegmentFrames and PointsPerFrame parameterise NoopDecoder.
	SegmentFrames  int
	PointsPerFrame int
}

// New builds a Backend for the given configuration.
func New(cfg Config) (Backend, error) {
	switch cfg.Kind {
	case KindNoop:
		return NewNoopDecoder(cfg.SegmentFrames, cfg.PointsPerFrame), nil
	case KindPatchSet:
		if cfg.Paths[0] == "" {
			return nil, fmt.Errorf("patch-set decoder requires a view-0 path")
		}
		return NewPatchSetDecoder(cfg.Paths[0]), nil
	case KindMultipatch:
		return NewMultipatchDecoder(cfg.Paths[:]), nil
	default:
		return nil, fmt.Errorf("unknown decoder kind %q", cfg.Kind)
	}
}
