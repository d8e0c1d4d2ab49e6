package vdp

import "fmt"

// Mode is one of the four TMS9918A display modes, numbered as MSX BASIC's
// SCREEN statement.
type Mode uint8

const (
	Text1      Mode = iota // SCREEN 0: 40x24 text
	Graphic1               // SCREEN 1: 32x24 tiles, colour per 8 patterns
	Graphic2               // SCREEN 2: 256x192, colour per pattern line
	MultiColor             // SCREEN 3: 64x48 blocks
)

func (m Mode) String() string {
	switch m {
	case Text1:
		return "Text1"
	case Graphic1:
		return "Graphic1"
	case Graphic2:
		return "Graphic2"
	case MultiColor:
		return "MultiColor"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ModeTable holds the values of registers 0-6 for a mode.
//
//	Reg/Bit  7      6    5     4   3   2  1     0
//	0        -      -    -     -   -   -  M3    EXTVID
//	1        4/16K  BLK  GINT  M1  M2  -  SIZE  MAG
type ModeTable [7]uint8

// Registers 0-6 for each mode, using the MSX BASIC table locations.
var modeTables = [...]ModeTable{
	Text1:      {0x00, 0xF0, 0x00, 0x00, 0x01, 0x00, 0x00},
	Graphic1:   {0x00, 0xE0, 0x06, 0x80, 0x00, 0x36, 0x07},
	Graphic2:   {0x02, 0xE0, 0x06, 0xFF, 0x03, 0x36, 0x07},
	MultiColor: {0x00, 0xE8, 0x02, 0x00, 0x00, 0x36, 0x07},
}

// Mode bits
const (
	reg0M3   = 0x02
	reg1M2   = 0x08
	reg1M1   = 0x10
	reg1Size = 0x02
	reg1Mag  = 0x01
)

// Layout is the VRAM map of a mode. Addresses without a table in the mode
// (colour in Text1 and MultiColor, sprites in Text1) are zero with a zero
// size.
type Layout struct {
	Columns, Rows int

	Name          uint16
	Pattern       uint16
	Color         uint16
	SpriteAttr    uint16
	SpritePattern uint16

	NameSize    uint16
	PatternSize uint16
	ColorSize   uint16
	Sprites     bool
}

// Table returns the register table for m.
func Table(m Mode) ModeTable {
	checkMode(m)
	return modeTables[m]
}

// LayoutFor returns the VRAM map of m.
func LayoutFor(m Mode) Layout {
	checkMode(m)
	return layoutOf(m, modeTables[m])
}

// layoutOf decodes the base address registers 2-6 for mode m.
func layoutOf(m Mode, t ModeTable) Layout {
	l := Layout{
		Columns:  32,
		Rows:     24,
		Name:     uint16(t[2]&0x0F) << 10,
		NameSize: 32 * 24,
	}

	switch m {
	case Text1:
		l.Columns = 40
		l.NameSize = 40 * 24
		l.Pattern = uint16(t[4]&0x07) << 11
		l.PatternSize = 0x800
		return l
	case Graphic1:
		l.Color = uint16(t[3]) << 6
		l.ColorSize = 0x20
		l.Pattern = uint16(t[4]&0x07) << 11
		l.PatternSize = 0x800
	case Graphic2:
		// Registers 3 and 4 act as masks in this mode; only the top bit of
		// each selects the table half.
		l.Color = uint16(t[3]&0x80) << 6
		l.ColorSize = 0x1800
		l.Pattern = uint16(t[4]&0x04) << 11
		l.PatternSize = 0x1800
	case MultiColor:
		l.Pattern = uint16(t[4]&0x07) << 11
		l.PatternSize = 0x600
	}

	l.Sprites = true
	l.SpriteAttr = uint16(t[5]&0x7F) << 7
	l.SpritePattern = uint16(t[6]&0x07) << 11
	return l
}

// Mode returns the current display mode. Before the first SetMode it is
// inferred from the mirrored M1/M2/M3 bits.
func (v *VDP) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.currentMode()
}

// Layout returns the VRAM map of the current mode.
func (v *VDP) Layout() Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.currentLayout()
}

func (v *VDP) currentMode() Mode {
	if v.modeSet {
		return v.mode
	}
	return modeFromRegisters(v.mirror[0], v.mirror[1])
}

func (v *VDP) currentLayout() Layout {
	if v.modeSet {
		return v.layout
	}
	m := v.currentMode()
	return layoutOf(m, modeTables[m])
}

func modeFromRegisters(r0, r1 uint8) Mode {
	switch {
	case r1&reg1M1 != 0:
		return Text1
	case r1&reg1M2 != 0:
		return MultiColor
	case r0&reg0M3 != 0:
		return Graphic2
	}
	return Graphic1
}

// SetMode initialises the display in mode m:
//   - the name table is cleared; Graphic1 also fills its colour table with
//     the current ink and background
//   - in graphic modes all sprites are hidden
//   - registers 0-6 are loaded from the mode table
//   - Text1 sets LINL40 to 39
//   - on a V9938 the upper VRAM address bits are cleared so addressing stays
//     in the first 16K
func (v *VDP) SetMode(m Mode) {
	checkMode(m)
	table := modeTables[m]
	layout := layoutOf(m, table)

	v.critical(func() {
		if m == Graphic1 {
			ink := v.vars.Peek(ForegroundColor) & 0x0F
			bg := v.vars.Peek(BackgroundColor) & 0x0F
			v.fill(layout.Color, layout.ColorSize, ink<<4|bg)
		}
		v.fill(layout.Name, layout.NameSize, 0)

		if layout.Sprites {
			v.clearSprites(layout.SpriteAttr)
		}

		for n, value := range table {
			v.writeRegister(uint8(n), value)
		}

		v.mode = m
		v.layout = layout
		v.modeSet = true

		if m == Text1 {
			v.vars.Poke(LineLength40, 39)
		}

		if p, ok := v.host.(ExtendedVRAMProber); ok && p.ExtendedVRAM() {
			// V9938 register 14 holds A14-A16 of the VRAM address.
			v.host.Out(ControlPort, 0x00)
			v.host.Out(ControlPort, 14|0x80)
			v.session = Session{}
		}
	})
}

// ClearScreen zeroes the name table of the current mode.
func (v *VDP) ClearScreen() {
	v.critical(func() {
		l := v.currentLayout()
		v.fill(l.Name, l.NameSize, 0)
	})
}

// SetColor stores ink, background and border in the system variables and
// updates register 7. In Text1 ink and background show immediately. In the
// graphic modes only the border shows immediately; ink and background are
// used the next time Graphic1 is set up.
func (v *VDP) SetColor(ink, background, border uint8) {
	checkColor(ink)
	checkColor(background)
	checkColor(border)

	v.critical(func() {
		v.vars.Poke(ForegroundColor, ink)
		v.vars.Poke(BackgroundColor, background)
		v.vars.Poke(BorderColor, border)

		// Register 7: bits 4-7 text colour, bits 0-3 backdrop
		if v.mirror[1]&reg1M1 != 0 {
			v.writeRegister(7, ink<<4|background)
		} else {
			v.writeRegister(7, background<<4|border)
		}
	})
}

// SortGraphic2Map fills the Graphic2 name table with 0-255 three times, so
// the pattern and colour tables map one-to-one onto the 256x192 screen.
func (v *VDP) SortGraphic2Map() {
	l := LayoutFor(Graphic2)
	v.critical(func() {
		v.setAddress(l.Name, SessionWrite)
		for i := 0; i < int(l.NameSize); i++ {
			v.write(uint8(i))
		}
	})
}

// SortMultiColorMap fills the MultiColor name table so that each group of
// four rows shares one run of 32 patterns, giving a linear 64x48 block
// screen.
func (v *VDP) SortMultiColorMap() {
	l := LayoutFor(MultiColor)
	v.critical(func() {
		v.setAddress(l.Name, SessionWrite)
		for row := 0; row < l.Rows; row++ {
			base := uint8((row / 4) * 32)
			for col := 0; col < l.Columns; col++ {
				v.write(base + uint8(col))
			}
		}
	})
}

func checkMode(m Mode) {
	if m > MultiColor {
		panic(fmt.Sprintf("vdp: unknown screen mode %d", m))
	}
}

func checkColor(c uint8) {
	if c > 15 {
		panic(fmt.Sprintf("vdp: colour %d out of range 0-15", c))
	}
}
