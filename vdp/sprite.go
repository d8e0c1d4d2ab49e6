package vdp

import "fmt"

// Sprite attribute table geometry
const (
	SpritePlanes = 32
	spriteRecord = 4
	// HiddenY is below the 192 visible lines; the chip skips the sprite.
	HiddenY = 0xD1
)

// Size selects 8x8 or 16x16 sprite patterns (register 1 bit 1).
type Size uint8

const (
	Size8x8 Size = iota
	Size16x16
)

// Zoom selects normal or doubled sprite pixels (register 1 bit 0).
type Zoom uint8

const (
	Zoom1x Zoom = iota
	Zoom2x
)

// Sprite is one record of the sprite attribute table.
type Sprite struct {
	Y, X    uint8
	Pattern uint8
	Color   uint8
}

// ClearSprites hides all 32 sprites: Y = 0xD1, X, pattern and colour 0.
func (v *VDP) ClearSprites() {
	v.critical(func() {
		l := v.spriteLayout()
		v.clearSprites(l.SpriteAttr)
	})
}

// clearSprites writes all records through one write session.
func (v *VDP) clearSprites(base uint16) {
	v.setAddress(base, SessionWrite)
	for i := 0; i < SpritePlanes; i++ {
		v.write(HiddenY)
		v.write(0)
		v.write(0)
		v.write(0)
	}
}

// SetSpriteSize sets the pattern size used by all sprites.
func (v *VDP) SetSpriteSize(size Size) {
	v.critical(func() {
		r1 := v.mirror[1]
		if size == Size16x16 {
			r1 |= reg1Size
		} else {
			r1 &^= reg1Size
		}
		v.writeRegister(1, r1)
	})
}

// SetSpriteZoom sets the magnification used by all sprites.
func (v *VDP) SetSpriteZoom(zoom Zoom) {
	v.critical(func() {
		r1 := v.mirror[1]
		if zoom == Zoom2x {
			r1 |= reg1Mag
		} else {
			r1 &^= reg1Mag
		}
		v.writeRegister(1, r1)
	})
}

// SpriteSize returns the size currently selected in the register mirror.
func (v *VDP) SpriteSize() Size {
	if v.ReadRegister(1)&reg1Size != 0 {
		return Size16x16
	}
	return Size8x8
}

// SpriteZoom returns the zoom currently selected in the register mirror.
func (v *VDP) SpriteZoom() Zoom {
	if v.ReadRegister(1)&reg1Mag != 0 {
		return Zoom2x
	}
	return Zoom1x
}

// SpriteAttrAddr returns the VRAM address of the attribute record of plane.
func (v *VDP) SpriteAttrAddr(plane uint8) uint16 {
	checkPlane(plane)
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.spriteLayout().SpriteAttr + uint16(plane)*spriteRecord
}

// PlaceSprite shows a sprite on plane (0-31). With 16x16 sprites the
// pattern number counts 16x16 patterns and is multiplied by 4 to address
// the first of its four 8x8 slots.
func (v *VDP) PlaceSprite(plane, x, y, color, pattern uint8) {
	checkPlane(plane)
	checkColor(color)
	v.critical(func() {
		addr := v.spriteLayout().SpriteAttr + uint16(plane)*spriteRecord
		if v.mirror[1]&reg1Size != 0 {
			pattern <<= 2
		}
		v.setAddress(addr, SessionWrite)
		v.write(y)
		v.write(x)
		v.write(pattern)
		v.write(color)
	})
}

// Sprite reads back the attribute record of plane.
func (v *VDP) Sprite(plane uint8) Sprite {
	checkPlane(plane)
	var s Sprite
	v.critical(func() {
		addr := v.spriteLayout().SpriteAttr + uint16(plane)*spriteRecord
		v.setAddress(addr, SessionRead)
		s.Y = v.read()
		s.X = v.read()
		s.Pattern = v.read()
		s.Color = v.read()
	})
	return s
}

// spriteLayout returns the current layout, panicking in Text1 which has
// no sprite layer. Caller holds the lock.
func (v *VDP) spriteLayout() Layout {
	l := v.currentLayout()
	if !l.Sprites {
		panic(fmt.Sprintf("vdp: no sprites in %s mode", v.currentMode()))
	}
	return l
}

func checkPlane(plane uint8) {
	if plane >= SpritePlanes {
		panic(fmt.Sprintf("vdp: sprite plane %d out of range 0-31", plane))
	}
}
