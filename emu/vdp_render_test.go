package emu

import "testing"

// setupGraphic1 loads the Graphic1 register set with the display enabled
func setupGraphic1(v *VDP) {
	for n, value := range []uint8{0x00, 0xE0, 0x06, 0x80, 0x00, 0x36, 0x07, 0x04} {
		writeReg(v, uint8(n), value)
	}
}

// TestVDP_RenderScanline_DisplayDisabled tests blanking to the backdrop
func TestVDP_RenderScanline_DisplayDisabled(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	writeReg(v, 1, 0x00)
	writeReg(v, 7, 0x04)

	v.RenderScanline(0)
	fb := v.Framebuffer()
	for x := 0; x < ScreenWidth; x++ {
		if c := fb.RGBAAt(x, 0); c != palette[4] {
			t.Fatalf("Pixel (%d, 0): expected backdrop, got %v", x, c)
		}
	}
}

// TestVDP_RenderGraphic1_Tile tests pattern and colour lookup
func TestVDP_RenderGraphic1_Tile(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	setupGraphic1(v)
	vram := v.GetVRAM()

	// Name 0x1800: tile 9 at column 1. Pattern 9 line 0 = 0xF0.
	vram[0x1801] = 9
	vram[9*8] = 0xF0
	// Colour group 1 (patterns 8-15): ink 15 on 6
	vram[0x2001] = 0xF6
	// Hide sprites
	vram[0x1B00] = 0xD0

	v.RenderScanline(0)
	fb := v.Framebuffer()
	for px := 0; px < 8; px++ {
		want := palette[6]
		if px < 4 {
			want = palette[15]
		}
		if c := fb.RGBAAt(8+px, 0); c != want {
			t.Errorf("Pixel (%d, 0): expected %v, got %v", 8+px, want, c)
		}
	}
}

// TestVDP_RenderText1_Border tests the 8-pixel side borders and 6-pixel cells
func TestVDP_RenderText1_Border(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	for n, value := range []uint8{0x00, 0xF0, 0x00, 0x00, 0x01, 0x00, 0x00, 0xF4} {
		writeReg(v, uint8(n), value)
	}
	vram := v.GetVRAM()
	// Name 0x0000: character 'A' in the first cell, solid pattern
	vram[0] = 'A'
	vram[0x0800+'A'*8] = 0xFC

	v.RenderScanline(0)
	fb := v.Framebuffer()
	for x := 0; x < 8; x++ {
		if c := fb.RGBAAt(x, 0); c != palette[4] {
			t.Errorf("Border pixel (%d, 0): expected background, got %v", x, c)
		}
	}
	for x := 8; x < 14; x++ {
		if c := fb.RGBAAt(x, 0); c != palette[15] {
			t.Errorf("Cell pixel (%d, 0): expected ink, got %v", x, c)
		}
	}
	if c := fb.RGBAAt(14, 0); c != palette[4] {
		t.Errorf("Second cell pixel (14, 0): expected background, got %v", c)
	}
}

// TestVDP_RenderSprites_BasicSprite tests sprite placement at Y+1
func TestVDP_RenderSprites_BasicSprite(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	setupGraphic1(v)
	vram := v.GetVRAM()

	// Pattern 0 at 0x3800 solid
	for i := 0; i < 8; i++ {
		vram[0x3800+i] = 0xFF
	}
	// Sprite 0: Y=9 X=16 pattern 0 colour 8, then terminator
	copy(vram[0x1B00:], []uint8{9, 16, 0, 8, 0xD0})

	v.RenderScanline(9)
	if c := v.Framebuffer().RGBAAt(16, 9); c == palette[8] {
		t.Error("Sprite should not appear on line Y")
	}

	v.RenderScanline(10)
	fb := v.Framebuffer()
	for x := 16; x < 24; x++ {
		if c := fb.RGBAAt(x, 10); c != palette[8] {
			t.Errorf("Sprite pixel (%d, 10): expected colour 8, got %v", x, c)
		}
	}
	if c := fb.RGBAAt(24, 10); c == palette[8] {
		t.Error("Sprite should be 8 pixels wide")
	}
}

// TestVDP_RenderSprites_HiddenY tests that Y=0xD1 keeps a sprite off screen
func TestVDP_RenderSprites_HiddenY(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	setupGraphic1(v)
	vram := v.GetVRAM()
	for i := 0; i < 8; i++ {
		vram[0x3800+i] = 0xFF
	}
	for plane := 0; plane < 32; plane++ {
		copy(vram[0x1B00+plane*4:], []uint8{0xD1, 0, 0, 15})
	}

	v.RenderFrame()
	fb := v.Framebuffer()
	for line := 0; line < ScreenHeight; line++ {
		if c := fb.RGBAAt(0, line); c == palette[15] {
			t.Fatalf("Hidden sprite drawn on line %d", line)
		}
	}
}

// TestVDP_RenderSprites_Overflow tests the fifth sprite flag
func TestVDP_RenderSprites_Overflow(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	setupGraphic1(v)
	vram := v.GetVRAM()
	for plane := 0; plane < 5; plane++ {
		copy(vram[0x1B00+plane*4:], []uint8{0, uint8(plane * 16), 0, 1})
	}
	vram[0x1B00+5*4] = 0xD0

	v.RenderScanline(1)
	status := v.GetStatus()
	if status&statusFifth == 0 {
		t.Fatalf("expected 5S flag, got status 0x%02X", status)
	}
	if status&0x1F != 4 {
		t.Errorf("expected fifth sprite plane 4, got %d", status&0x1F)
	}
}

// TestVDP_RenderSprites_Collision tests the coincidence flag
func TestVDP_RenderSprites_Collision(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	setupGraphic1(v)
	vram := v.GetVRAM()
	vram[0x3800] = 0xFF
	copy(vram[0x1B00:], []uint8{0, 10, 0, 2, 0, 14, 0, 3, 0xD0})

	v.RenderScanline(1)
	if v.GetStatus()&statusCollision == 0 {
		t.Error("expected collision flag for overlapping sprites")
	}
}

// TestVDP_RenderSprites_Height16 tests 16x16 sprites using four 8x8 slots
func TestVDP_RenderSprites_Height16(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	setupGraphic1(v)
	writeReg(v, 1, 0xE2)
	vram := v.GetVRAM()

	// Pattern 4 (slots 4-7): right half line 0 set
	vram[0x3800+4*8+16] = 0xFF
	// Pattern number 5 is masked to 4
	copy(vram[0x1B00:], []uint8{0xFF, 0, 5, 9, 0xD0})

	v.RenderScanline(0)
	fb := v.Framebuffer()
	if c := fb.RGBAAt(0, 0); c == palette[9] {
		t.Error("Left half should be transparent")
	}
	for x := 8; x < 16; x++ {
		if c := fb.RGBAAt(x, 0); c != palette[9] {
			t.Errorf("Right half pixel (%d, 0): expected colour 9, got %v", x, c)
		}
	}
}

// TestVDP_RenderSprites_Zoom tests magnified sprites
func TestVDP_RenderSprites_Zoom(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	setupGraphic1(v)
	writeReg(v, 1, 0xE1)
	vram := v.GetVRAM()
	vram[0x3800] = 0x80
	copy(vram[0x1B00:], []uint8{0xFF, 0, 0, 10, 0xD0})

	v.RenderScanline(1)
	fb := v.Framebuffer()
	for x := 0; x < 2; x++ {
		if c := fb.RGBAAt(x, 1); c != palette[10] {
			t.Errorf("Zoomed pixel (%d, 1): expected colour 10, got %v", x, c)
		}
	}
	if c := fb.RGBAAt(2, 1); c == palette[10] {
		t.Error("Zoomed single bit should cover only 2 pixels")
	}
}

// TestVDP_RenderGraphic2_Thirds tests that each screen third uses its own
// pattern bank
func TestVDP_RenderGraphic2_Thirds(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	for n, value := range []uint8{0x02, 0xE0, 0x06, 0xFF, 0x03, 0x36, 0x07, 0x01} {
		writeReg(v, uint8(n), value)
	}
	vram := v.GetVRAM()
	vram[0x1B00] = 0xD0
	// Row 8 is the first row of the middle third; name 0 there
	// uses pattern 256
	vram[0x0800] = 0xFF
	vram[0x2800] = 0xD1

	v.RenderScanline(64)
	if c := v.Framebuffer().RGBAAt(0, 64); c != palette[13] {
		t.Errorf("Middle third pixel: expected colour 13, got %v", c)
	}
}

// TestVDP_RenderMultiColor_Blocks tests 4x4 colour blocks
func TestVDP_RenderMultiColor_Blocks(t *testing.T) {
	v := NewVDP(ModelTMS9918A)
	for n, value := range []uint8{0x00, 0xE8, 0x02, 0x00, 0x00, 0x36, 0x07, 0x01} {
		writeReg(v, uint8(n), value)
	}
	vram := v.GetVRAM()
	vram[0x1B00] = 0xD0
	// Name 0 at row 0: byte 0 covers lines 0-3
	vram[0] = 0x2C

	v.RenderScanline(0)
	fb := v.Framebuffer()
	if c := fb.RGBAAt(0, 0); c != palette[2] {
		t.Errorf("Left block: expected colour 2, got %v", c)
	}
	if c := fb.RGBAAt(4, 0); c != palette[12] {
		t.Errorf("Right block: expected colour 12, got %v", c)
	}
}
