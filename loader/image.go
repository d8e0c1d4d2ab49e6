package loader

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user-none/tmsvdp/vdp"
)

// bsaveID is the first byte of a file written by BSAVE.
const bsaveID = 0xFE

const bsaveHeaderSize = 7

// Image is a block of VRAM contents and the address it loads at.
type Image struct {
	Name  string
	Start uint16
	Data  []uint8
	// Exec is the BSAVE execution address, 0 for raw dumps
	Exec uint16
	// BSAVE is true if the data came from a BSAVE file
	BSAVE bool
}

// Parse decodes file contents. A file starting with the BSAVE identifier
// and a consistent header is a BSAVE image; .vram files and anything else
// are raw dumps loaded at address 0.
func Parse(name string, data []byte) (*Image, error) {
	img := &Image{Name: name, Data: data}

	if strings.ToLower(filepath.Ext(name)) != ".vram" && len(data) >= bsaveHeaderSize && data[0] == bsaveID {
		start := binary.LittleEndian.Uint16(data[1:3])
		end := binary.LittleEndian.Uint16(data[3:5])
		if end >= start {
			img.Start = start
			img.Exec = binary.LittleEndian.Uint16(data[5:7])
			img.BSAVE = true
			img.Data = data[bsaveHeaderSize:]
			// BSAVE end is inclusive; short files load what they have
			if n := int(end-start) + 1; n < len(img.Data) {
				img.Data = img.Data[:n]
			}
		}
	}

	if int(img.Start)+len(img.Data) > vdp.VRAMSize {
		return nil, fmt.Errorf("%w: %s spans 0x%04X-0x%04X", ErrOutOfRange,
			name, img.Start, int(img.Start)+len(img.Data)-1)
	}
	return img, nil
}

// End returns the address after the last byte of the image.
func (img *Image) End() int {
	return int(img.Start) + len(img.Data)
}

// ModeHint returns the screen mode implied by a .sc0-.sc3 extension.
func (img *Image) ModeHint() (vdp.Mode, bool) {
	switch strings.ToLower(filepath.Ext(img.Name)) {
	case ".sc0":
		return vdp.Text1, true
	case ".sc1":
		return vdp.Graphic1, true
	case ".sc2":
		return vdp.Graphic2, true
	case ".sc3":
		return vdp.MultiColor, true
	}
	return 0, false
}

// Apply copies the image into VRAM through d.
func (img *Image) Apply(d *vdp.VDP) {
	if len(img.Data) == 0 {
		return
	}
	d.CopyIn(img.Data, img.Start, uint16(len(img.Data)))
}
