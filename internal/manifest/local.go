package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LocalProvider reads object/segment metadata from a directory tree laid
// out as root/<objectID>/<frameOffset>/<view>/<quality>.seg, with view "single"
// for non-multiview objects. It builds its bitrate ladders once, from the
// first frame_offset directory found for each object, the same
// stat-ReadDir-filter-sort idiom the encoder side uses to enumerate input
// files.
type LocalProvider struct {
	root             string
	totalFrames      int
	segmentFrames    int
	fps              int
	ladders       map[uint8]map[int][]uint64 // objectID -> view -> bitrate ladder
	qualities     map[uint8][]float64
}

// NewLocalProvider scans root and builds a LocalProvider.
// totalFrames, segmentFrames, and fps describe the asset's timeline, since a
// plain directory tree carries no manifest header to read them from.
func NewLocalProvider(root string, totalFrames, segmentFrames, fps int) (*LocalProvider, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest root %s: %w", root, err)
	}

	p := &LocalProvider{
		root:          root,
		totalFrames:   totalFrames,
		segmentFrames: segmentFrames,
		fps:           fps,
		ladders:       make(map[uint8]map[int][]uint64),
		qualities:     make(map[uint8][]float64),
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		objID, err := strconv.ParseUint(entry.Name(), 10, 8)
		if err != nil {
			continue
		}
		if err := p.loadObject(uint8(objID)); err != nil {
			return nil, err
		}
	}

	if len(p.ladders) == 0 {
		return nil, fmt.Errorf("no objects found under manifest root %s", root)
	}
	return p, nil
}

func (p *LocalProvider) loadObject(objectID uint8) error {
	objDir := filepath.Join(p.root, strconv.Itoa(int(objectID)))
	frameDirs, err := os.ReadDir(objDir)
	if err != nil {
		return fmt.Errorf("cannot read object dir %s: %w", objDir, err)
	}

	var firstFrameDir string
	for _, fd := range frameDirs {
		if fd.IsDir() {
			firstFrameDir = fd.Name()
			break
		}
	}
	if firstFrameDir == "" {
		return fmt.Errorf("object %d has no segments under %s", objectID, objDir)
	}

	viewDirs, err := os.ReadDir(filepath.Join(objDir, firstFrameDir))
	if err != nil {
		return fmt.Errorf("cannot read segment dir: %w", err)
	}

	ladders := make(map[int][]uint64)
	var maxLevels int
	for _, vd := range viewDirs {
		if !vd.IsDir() {
			continue
		}
		view := viewIndex(vd.Name())
		ladder, err := readLadder(filepath.Join(objDir, firstFrameDir, vd.Name()))
		if err != nil {
			return err
		}
		ladders[view] = ladder
		if len(ladder) > maxLevels {
			maxLevels = len(ladder)
		}
	}

	p.ladders[objectID] = ladders
	p.qualities[objectID] = defaultQualityScores(maxLevels)
	return nil
}

// viewIndex maps a view directory name to an index, -1 for "single".
func viewIndex(name string) int {
	if name == "single" {
		return -1
	}
	v, err := strconv.Atoi(name)
	if err != nil {
		return -1
	}
	return v
}

func readLadder(viewDir string) ([]uint64, error) {
	entries, err := os.ReadDir(viewDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read view dir %s: %w", viewDir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".seg") {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		a, errA := strconv.Atoi(strings.TrimSuffix(names[i], ".seg"))
		b, errB := strconv.Atoi(strings.TrimSuffix(names[j], ".seg"))
		if errA != nil || errB != nil {
			return names[i] < names[j]
		}
		return a < b
	})

	ladder := make([]uint64, 0, len(names))
	for _, name := range names {
		info, err := os.Stat(filepath.Join(viewDir, name))
		if err != nil {
			return nil, err
		}
		ladder = append(ladder, uint64(info.Size())*8)
	}
	if len(ladder) == 0 {
		return nil, fmt.Errorf("no quality levels found in %s", viewDir)
	}
	return ladder, nil
}

// defaultQualityScores synthesises an ascending per-level quality table when
// the directory tree carries no explicit scores, matching the reference
// content's six-level table shape.
func defaultQualityScores(levels int) []float64 {
	scores := make([]float64, levels)
	for i := range scores {
		scores[i] = float64(i+1) * 0.8
	}
	return scores
}

func (p *LocalProvider) TotalFrames() int { return p.totalFrames }

func (p *LocalProvider) SegmentDuration() (numFrames int, fps int) {
	return p.segmentFrames, p.fps
}

func (p *LocalProvider) AvailableBitrates(objectID uint8, frameOffset uint64, view int) []uint64 {
	ladders, ok := p.ladders[objectID]
	if !ok {
		return nil
	}
	return ladders[view]
}

func (p *LocalProvider) QualityScores(objectID uint8) []float64 {
	return p.qualities[objectID]
}

// SegmentPath returns the on-disk path for one (object, frame_offset, view,
// quality) segment file, for use by segfetch.LocalBackend.
func (p *LocalProvider) SegmentPath(objectID uint8, frameOffset uint64, view int, quality int) string {
	viewName := "single"
	if view >= 0 {
		viewName = strconv.Itoa(view)
	}
	return filepath.Join(p.root, strconv.Itoa(int(objectID)), strconv.FormatUint(frameOffset, 10), viewName, fmt.Sprintf("%d.seg", quality))
}
