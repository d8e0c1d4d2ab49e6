package cli

import (
	"github.com/user-none/tmsvdp/emu"
	"github.com/user-none/tmsvdp/loader"
	"github.com/user-none/tmsvdp/vdp"
)

// Scene fills the screen with generated test content for the current mode
// and bounces a ball sprite around it.
type Scene struct {
	d *vdp.VDP

	x, y   int
	dx, dy int
	color  uint8
	sprite bool // false while a loaded image owns VRAM
}

// NewScene creates a scene drawing through d.
func NewScene(d *vdp.VDP) *Scene {
	return &Scene{d: d, dx: 1, dy: 1, color: 15}
}

// Setup switches to mode and draws the test content.
func (s *Scene) Setup(mode vdp.Mode) {
	s.d.SetMode(mode)
	l := s.d.Layout()

	switch mode {
	case vdp.Text1:
		s.d.CopyIn(glyphs(), l.Pattern, l.PatternSize)
		s.d.SetWriteAddress(l.Name)
		for i := 0; i < int(l.NameSize); i++ {
			s.d.FastWrite(uint8(i % 96))
		}
	case vdp.Graphic1:
		s.d.CopyIn(glyphs(), l.Pattern, l.PatternSize)
		s.d.SetWriteAddress(l.Color)
		for i := 0; i < int(l.ColorSize); i++ {
			fg := uint8(i%15) + 1
			s.d.FastWrite(fg<<4 | 1)
		}
		s.d.SetWriteAddress(l.Name)
		for i := 0; i < int(l.NameSize); i++ {
			s.d.FastWrite(uint8(i))
		}
	case vdp.Graphic2:
		s.d.SortGraphic2Map()
		s.d.CopyIn(stripes(int(l.PatternSize)), l.Pattern, l.PatternSize)
		s.d.SetWriteAddress(l.Color)
		for i := 0; i < int(l.ColorSize); i++ {
			// One colour pair per pixel line
			line := uint8(i>>8)*8 + uint8(i&7)
			s.d.FastWrite((line%15+1)<<4 | (14-line%14)&0x0F)
		}
	case vdp.MultiColor:
		s.d.SortMultiColorMap()
		s.d.SetWriteAddress(l.Pattern)
		for i := 0; i < int(l.PatternSize); i++ {
			// Diagonal rainbow across the 64x48 blocks
			block := uint8(i>>3) + uint8(i&7)
			s.d.FastWrite((block%15+1)<<4 | ((block+1)%15 + 1))
		}
	}

	s.sprite = l.Sprites
	if s.sprite {
		s.loadBall()
		s.place()
	}
}

// ShowImage sets the image's mode, or keeps mode if the file does not
// imply one, and copies the image into VRAM. The ball is not drawn over
// loaded images.
func (s *Scene) ShowImage(img *loader.Image, mode vdp.Mode) {
	if m, ok := img.ModeHint(); ok {
		mode = m
	}
	s.d.SetMode(mode)
	img.Apply(s.d)
	s.sprite = false
}

// Resync follows the driver's current mode after the machine state was
// replaced. The ball is drawn again if the mode has sprites.
func (s *Scene) Resync() {
	s.sprite = s.d.Layout().Sprites
	if s.sprite {
		s.loadBall()
		s.place()
	}
}

// Step advances the ball by one frame.
func (s *Scene) Step() {
	if !s.sprite {
		return
	}
	extent := s.extent()
	s.x += s.dx
	s.y += s.dy
	if s.x <= 0 || s.x >= emu.ScreenWidth-extent {
		s.dx = -s.dx
	}
	if s.y <= 0 || s.y >= emu.ScreenHeight-extent {
		s.dy = -s.dy
	}
	s.x = clamp(s.x, 0, emu.ScreenWidth-extent)
	s.y = clamp(s.y, 0, emu.ScreenHeight-extent)
	s.place()
}

// ToggleSize switches between 8x8 and 16x16 sprites and redraws the ball.
func (s *Scene) ToggleSize() {
	if !s.sprite {
		return
	}
	if s.d.SpriteSize() == vdp.Size8x8 {
		s.d.SetSpriteSize(vdp.Size16x16)
	} else {
		s.d.SetSpriteSize(vdp.Size8x8)
	}
	s.loadBall()
	s.place()
}

// ToggleZoom switches sprite magnification.
func (s *Scene) ToggleZoom() {
	if !s.sprite {
		return
	}
	if s.d.SpriteZoom() == vdp.Zoom1x {
		s.d.SetSpriteZoom(vdp.Zoom2x)
	} else {
		s.d.SetSpriteZoom(vdp.Zoom1x)
	}
	s.place()
}

// NextColor cycles the ball colour.
func (s *Scene) NextColor() {
	s.color = s.color%15 + 1
	if s.sprite {
		s.place()
	}
}

// Ball returns the ball's screen position.
func (s *Scene) Ball() (x, y int) {
	return s.x, s.y
}

func (s *Scene) extent() int {
	n := 8
	if s.d.SpriteSize() == vdp.Size16x16 {
		n = 16
	}
	if s.d.SpriteZoom() == vdp.Zoom2x {
		n *= 2
	}
	return n
}

// place writes the ball to plane 0. Sprites are displayed one line below
// their Y coordinate.
func (s *Scene) place() {
	s.x = clamp(s.x, 0, emu.ScreenWidth-s.extent())
	s.y = clamp(s.y, 0, emu.ScreenHeight-s.extent())
	s.d.PlaceSprite(0, uint8(s.x), uint8(s.y-1), s.color, 0)
}

// loadBall writes a filled circle to sprite pattern 0 in the current size
func (s *Scene) loadBall() {
	base := s.d.Layout().SpritePattern
	if s.d.SpriteSize() == vdp.Size8x8 {
		s.d.CopyIn(ball(8), base, 8)
		return
	}
	s.d.CopyIn(ball(16), base, 32)
}

// ball returns a filled circle of diameter n (8 or 16) in sprite pattern
// order: for 16x16 the left 8 columns of all 16 lines, then the right 8.
func ball(n int) []uint8 {
	out := make([]uint8, n*n/8)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			dr, dc := 2*row-(n-1), 2*col-(n-1)
			if dr*dr+dc*dc > n*n {
				continue
			}
			idx := row + (col/8)*n
			out[idx] |= 0x80 >> (col % 8)
		}
	}
	return out
}

// glyphs generates 256 test patterns: a frame with a 4-bit code of the
// pattern number inside, distinguishable without a font.
func glyphs() []uint8 {
	out := make([]uint8, 256*8)
	for c := 0; c < 256; c++ {
		p := out[c*8 : c*8+8]
		p[0], p[7] = 0xFC, 0xFC
		for line := 1; line < 7; line++ {
			bits := uint8(0x84)
			if c>>((line-1)%4)&1 != 0 {
				bits |= 0x30
			}
			if c>>(4+(line-1)%4)&1 != 0 {
				bits |= 0x48
			}
			p[line] = bits
		}
	}
	return out
}

// stripes returns n bytes of alternating pattern lines
func stripes(n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		switch i & 3 {
		case 0:
			out[i] = 0xFF
		case 1:
			out[i] = 0xAA
		case 2:
			out[i] = 0x55
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
