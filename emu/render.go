package emu

import "image/color"

// palette is the fixed 15-colour TMS9918A palette. Index 0 is transparent
// and is resolved to the backdrop before lookup.
var palette = [16]color.RGBA{
	{0, 0, 0, 255},
	{0, 0, 0, 255},
	{33, 200, 66, 255},
	{94, 220, 120, 255},
	{84, 85, 237, 255},
	{125, 118, 252, 255},
	{212, 82, 77, 255},
	{66, 235, 245, 255},
	{252, 85, 84, 255},
	{255, 121, 120, 255},
	{212, 193, 84, 255},
	{230, 206, 128, 255},
	{33, 176, 59, 255},
	{201, 91, 186, 255},
	{204, 204, 204, 255},
	{255, 255, 255, 255},
}

// screenMode decodes M1/M2/M3 the same way the chip does
type screenMode int

const (
	modeGraphic1 screenMode = iota
	modeText1
	modeGraphic2
	modeMultiColor
)

func (v *VDP) screenMode() screenMode {
	switch {
	case v.register[1]&0x10 != 0:
		return modeText1
	case v.register[1]&0x08 != 0:
		return modeMultiColor
	case v.register[0]&0x02 != 0:
		return modeGraphic2
	}
	return modeGraphic1
}

// backdrop returns the colour index used for transparent pixels
func (v *VDP) backdrop() uint8 {
	return v.register[7] & 0x0F
}

func (v *VDP) setPixel(x, line int, c uint8) {
	if c == 0 {
		c = v.backdrop()
	}
	v.framebuffer.SetRGBA(x, line, palette[c&0x0F])
}

// RenderFrame renders all visible lines into the framebuffer
func (v *VDP) RenderFrame() {
	for line := 0; line < ScreenHeight; line++ {
		v.RenderScanline(line)
	}
}

// RenderScanline renders one line of the framebuffer
func (v *VDP) RenderScanline(line int) {
	if line < 0 || line >= ScreenHeight {
		return
	}

	// Register 1 bit 6 clear blanks the display to the backdrop
	if v.register[1]&0x40 == 0 {
		for x := 0; x < ScreenWidth; x++ {
			v.setPixel(x, line, 0)
		}
		return
	}

	switch v.screenMode() {
	case modeText1:
		v.renderText1(line)
		// No sprite layer in Text1
		return
	case modeGraphic1:
		v.renderGraphic1(line)
	case modeGraphic2:
		v.renderGraphic2(line)
	case modeMultiColor:
		v.renderMultiColor(line)
	}
	v.renderSprites(line)
}

func (v *VDP) nameBase() int    { return int(v.register[2]&0x0F) << 10 }
func (v *VDP) patternBase() int { return int(v.register[4]&0x07) << 11 }

// renderText1 draws 40 columns of 6-pixel cells with an 8-pixel border
func (v *VDP) renderText1(line int) {
	fg := v.register[7] >> 4
	bg := v.register[7] & 0x0F
	row, cellLine := line/8, line%8

	for x := 0; x < 8; x++ {
		v.setPixel(x, line, bg)
		v.setPixel(ScreenWidth-1-x, line, bg)
	}
	for col := 0; col < 40; col++ {
		name := v.vram[v.nameBase()+row*40+col]
		bits := v.vram[v.patternBase()+int(name)*8+cellLine]
		for px := 0; px < 6; px++ {
			c := bg
			if bits&(0x80>>px) != 0 {
				c = fg
			}
			v.setPixel(8+col*6+px, line, c)
		}
	}
}

// renderGraphic1 draws 32x24 tiles coloured in groups of 8 patterns
func (v *VDP) renderGraphic1(line int) {
	colorBase := int(v.register[3]) << 6
	row, cellLine := line/8, line%8

	for col := 0; col < 32; col++ {
		name := v.vram[v.nameBase()+row*32+col]
		bits := v.vram[v.patternBase()+int(name)*8+cellLine]
		colors := v.vram[colorBase+int(name>>3)]
		v.drawPatternByte(col*8, line, bits, colors)
	}
}

// renderGraphic2 draws 32x24 tiles with the screen split in thirds, each
// third with its own 256 patterns and a colour byte per pattern line.
// Registers 3 and 4 mask the table offsets.
func (v *VDP) renderGraphic2(line int) {
	patBase := int(v.register[4]&0x04) << 11
	patMask := int(v.register[4]&0x03)<<11 | 0x7FF
	colBase := int(v.register[3]&0x80) << 6
	colMask := int(v.register[3]&0x7F)<<6 | 0x3F

	row, cellLine := line/8, line%8
	third := row / 8

	for col := 0; col < 32; col++ {
		name := int(v.vram[v.nameBase()+row*32+col])
		offset := (third*256+name)*8 + cellLine
		bits := v.vram[patBase+(offset&patMask)]
		colors := v.vram[colBase+(offset&colMask)]
		v.drawPatternByte(col*8, line, bits, colors)
	}
}

// renderMultiColor draws 64x48 blocks of 4x4 pixels. Each pattern byte
// holds the colours of two horizontally adjacent blocks.
func (v *VDP) renderMultiColor(line int) {
	row, cellLine := line/8, line%8

	for col := 0; col < 32; col++ {
		name := int(v.vram[v.nameBase()+row*32+col])
		b := v.vram[v.patternBase()+name*8+(row&3)*2+cellLine/4]
		for px := 0; px < 8; px++ {
			c := b >> 4
			if px >= 4 {
				c = b & 0x0F
			}
			v.setPixel(col*8+px, line, c)
		}
	}
}

// drawPatternByte draws 8 pixels: foreground (high nibble) where bits are
// set, background (low nibble) otherwise
func (v *VDP) drawPatternByte(x, line int, bits, colors uint8) {
	fg := colors >> 4
	bg := colors & 0x0F
	for px := 0; px < 8; px++ {
		c := bg
		if bits&(0x80>>px) != 0 {
			c = fg
		}
		v.setPixel(x+px, line, c)
	}
}

// renderSprites draws up to four sprites on the line. Lower planes have
// priority; a fifth sprite sets the 5S flag and its plane number.
func (v *VDP) renderSprites(line int) {
	satBase := int(v.register[5]&0x7F) << 7
	patBase := int(v.register[6]&0x07) << 11

	size := 8
	if v.register[1]&0x02 != 0 {
		size = 16
	}
	zoomShift := 0
	if v.register[1]&0x01 != 0 {
		zoomShift = 1
	}
	height := size << zoomShift

	for i := range v.spritePixels {
		v.spritePixels[i] = false
	}

	onLine := 0
	for plane := 0; plane < 32; plane++ {
		entry := satBase + plane*4
		y := int(v.vram[entry])
		// Y = 208 ($D0) terminates the sprite list
		if y == 0xD0 {
			break
		}
		// Values above 0xE0 are partially off the top
		if y > 0xE0 {
			y -= 256
		}
		// Sprite Y is displayed at Y+1
		top := y + 1
		if line < top || line >= top+height {
			continue
		}

		onLine++
		if onLine > 4 {
			if v.status&statusFifth == 0 {
				v.status = v.status&0xE0 | statusFifth | uint8(plane)
			}
			break
		}

		x := int(v.vram[entry+1])
		pattern := int(v.vram[entry+2])
		attr := v.vram[entry+3]
		c := attr & 0x0F
		// Early clock shifts the sprite 32 pixels left
		if attr&0x80 != 0 {
			x -= 32
		}
		if size == 16 {
			pattern &= 0xFC
		}

		spriteLine := (line - top) >> zoomShift
		for px := 0; px < size<<zoomShift; px++ {
			screenX := x + px
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			patternPx := px >> zoomShift
			// 16x16 sprites store the left half (16 lines) then the right half
			addr := patBase + pattern*8 + spriteLine
			if patternPx >= 8 {
				addr += 16
				patternPx -= 8
			}
			if v.vram[addr]&(0x80>>patternPx) == 0 {
				continue
			}
			if v.spritePixels[screenX] {
				v.status |= statusCollision
				continue
			}
			v.spritePixels[screenX] = true
			if c != 0 {
				v.framebuffer.SetRGBA(screenX, line, palette[c])
			}
		}
	}
}
