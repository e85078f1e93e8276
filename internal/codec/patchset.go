package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"vvstream/internal/model"
)

// PatchSetDecoder reads a simple length-prefixed binary frame container:
// repeated [uint32 length][length bytes] records, one per frame, until EOF.
type PatchSetDecoder struct {
	path string
	file *os.File
}

// NewPatchSetDecoder returns a decoder for the patchset file at path.
func NewPatchSetDecoder(path string) *PatchSetDecoder {
	return &PatchSetDecoder{path: path}
}

func (d *PatchSetDecoder) Start() error {
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("opening patchset %s: %w", d.path, err)
	}
	d.file = f
	return nil
}

func (d *PatchSetDecoder) Poll() (model.Frame, bool) {
	if d.file == nil {
		return model.Frame{}, false
	}
	frame, ok, err := readPatchSetFrame(d.file)
	if err != nil || !ok {
		_ = d.file.Close()
		d.file = nil
		return model.Frame{}, false
	}
	return frame, true
}

func readPatchSetFrame(r io.Reader) (model.Frame, bool, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		if err == io.EOF {
			return model.Frame{}, false, nil
		}
		return model.Frame{}, false, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return model.Frame{}, false, err
	}
	return model.Frame{Points: buf}, true, nil
}
