package cli

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/user-none/tmsvdp/emu"
	"golang.org/x/image/draw"
)

// Snapshot renders the current frame of v and writes it to path as a PNG,
// scaled by an integer factor with nearest-neighbour sampling. An existing
// file is not overwritten.
func Snapshot(v *emu.VDP, path string, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid snapshot scale %d", scale)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("snapshot file (%s) already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	v.RenderFrame()
	img := ScaleFrame(v.Framebuffer(), scale)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// ScaleFrame returns src enlarged by scale with square pixels.
func ScaleFrame(src *image.RGBA, scale int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
