package codec

import (
	"bytes"
	"fmt"
	"os"

	"vvstream/internal/model"
)

// MultipatchDecoder reads one patchset file per view and merges them frame
// by frame, concatenating each view's frame payload into a single combined
// frame, so a multiview segment still yields one Frame per Poll.
type MultipatchDecoder struct {
	paths []string
	files []*os.File
}

// NewMultipatchDecoder returns a decoder reading the given per-view
// patchset files. Empty paths are skipped (unused views).
func NewMultipatchDecoder(paths []string) *MultipatchDecoder {
	var used []string
	for _, p := range paths {
		if p != "" {
			used = append(used, p)
		}
	}
	return &MultipatchDecoder{paths: used}
}

func (d *MultipatchDecoder) Start() error {
	d.files = make([]*os.File, len(d.paths))
	for i, p := range d.paths {
		f, err := os.Open(p)
		if err != nil {
			d.closeAll()
			return fmt.Errorf("opening patchset %s: %w", p, err)
		}
		d.files[i] = f
	}
	return nil
}

func (d *MultipatchDecoder) Poll() (model.Frame, bool) {
	if len(d.files) == 0 {
		return model.Frame{}, false
	}

	var combined bytes.Buffer
	for _, f := range d.files {
		if f == nil {
			continue
		}
		frame, ok, err := readPatchSetFrame(f)
		if err != nil || !ok {
			d.closeAll()
			return model.Frame{}, false
		}
		combined.Write(frame.Points)
	}
	return model.Frame{Points: combined.Bytes()}, true
}

func (d *MultipatchDecoder) closeAll() {
	for _, f := range d.files {
		if f != nil {
			_ = f.Close()
		}
	}
	d.files = nil
}
