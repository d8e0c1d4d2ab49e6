package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/tmsvdp/emu"
)

// Screen scales the simulated VDP framebuffer into an ebiten window.
type Screen struct {
	vdp *emu.VDP

	offscreen *ebiten.Image           // Native resolution copy of the framebuffer
	drawOpts  ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation
}

// NewScreen creates a Screen showing v.
func NewScreen(v *emu.VDP) *Screen {
	return &Screen{vdp: v}
}

// Draw renders the framebuffer to screen, scaled to fit while preserving
// aspect ratio and centred.
func (s *Screen) Draw(screen *ebiten.Image) {
	if s.offscreen == nil {
		s.offscreen = ebiten.NewImage(emu.ScreenWidth, emu.ScreenHeight)
	}
	s.offscreen.WritePixels(s.vdp.Framebuffer().Pix)

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeW, nativeH := float64(emu.ScreenWidth), float64(emu.ScreenHeight)

	scale := float64(screenW) / nativeW
	if scaleY := float64(screenH) / nativeH; scaleY < scale {
		scale = scaleY
	}

	offsetX := (float64(screenW) - nativeW*scale) / 2
	offsetY := (float64(screenH) - nativeH*scale) / 2

	s.drawOpts = ebiten.DrawImageOptions{}
	s.drawOpts.GeoM.Scale(scale, scale)
	s.drawOpts.GeoM.Translate(offsetX, offsetY)
	s.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(s.offscreen, &s.drawOpts)
}
