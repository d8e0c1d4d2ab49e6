package emu

import (
	"fmt"
	"image"
)

// Model selects the video chip fitted to the simulated machine.
type Model uint8

const (
	// ModelTMS9918A is an MSX1 VDP: 16K VRAM, 14-bit address counter,
	// register number decoded from 3 bits.
	ModelTMS9918A Model = iota
	// ModelV9938 is an MSX2 VDP running TMS modes: 128K VRAM, register 14
	// holds address bits A14-A16 and the counter carries into it.
	ModelV9938
)

func (m Model) String() string {
	switch m {
	case ModelTMS9918A:
		return "TMS9918A"
	case ModelV9938:
		return "V9938"
	}
	return fmt.Sprintf("Model(%d)", uint8(m))
}

// ParseModel maps a command-line name to a Model.
func ParseModel(s string) (Model, error) {
	switch s {
	case "msx1", "tms9918a", "tms9918":
		return ModelTMS9918A, nil
	case "msx2", "v9938":
		return ModelV9938, nil
	}
	return 0, fmt.Errorf("unknown video chip model: %s", s)
}

const (
	ScreenWidth  = 256
	ScreenHeight = 192
)

// Status register bits
const (
	statusInt       = 0x80 // F: frame interrupt
	statusFifth     = 0x40 // 5S: fifth sprite on a line
	statusCollision = 0x20 // C: sprite coincidence
)

// VDP is the device side of the two-port protocol.
type VDP struct {
	model      Model
	vram       []uint8 // 16K, or 128K on the V9938
	register   [8]uint8
	bank       uint8  // V9938 register 14
	addr       uint16 // Address counter A0-A13
	addrLatch  uint8  // First byte of control write
	writeLatch bool   // True if first byte written
	readBuffer uint8  // Read-ahead buffer
	status     uint8

	dataWrites int
	dataReads  int

	framebuffer *image.RGBA
	// Pre-allocated per-line sprite coverage (avoids per-scanline allocation)
	spritePixels []bool
}

func NewVDP(model Model) *VDP {
	size := 0x4000
	if model == ModelV9938 {
		size = 0x20000
	}
	return &VDP{
		model:        model,
		vram:         make([]uint8, size),
		framebuffer:  image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
		spritePixels: make([]bool, ScreenWidth),
	}
}

// Model returns the chip model.
func (v *VDP) Model() Model {
	return v.model
}

// vramIndex returns the VRAM offset of the address counter
func (v *VDP) vramIndex() int {
	if v.model == ModelV9938 {
		return int(v.bank&0x07)<<14 | int(v.addr&0x3FFF)
	}
	return int(v.addr & 0x3FFF)
}

// advance increments the address counter. The V9938 carries into
// register 14; the TMS9918A wraps at 16K.
func (v *VDP) advance() {
	v.addr = (v.addr + 1) & 0x3FFF
	if v.addr == 0 && v.model == ModelV9938 {
		v.bank = (v.bank + 1) & 0x07
	}
}

// ReadControl returns the status register and clears flags
func (v *VDP) ReadControl() uint8 {
	status := v.status
	v.status &^= statusInt | statusFifth | statusCollision
	v.writeLatch = false // Clear address latch (matches real hardware)
	return status
}

// WriteControl handles the two-write control port sequence
func (v *VDP) WriteControl(value uint8) {
	if !v.writeLatch {
		// First write: data byte or low byte of address
		v.addrLatch = value
		v.writeLatch = true
		return
	}

	// Second write: register select, or high address bits + direction
	v.writeLatch = false
	if value&0x80 != 0 {
		v.writeRegister(value, v.addrLatch)
		return
	}

	v.addr = uint16(v.addrLatch) | uint16(value&0x3F)<<8
	if value&0x40 == 0 {
		// VRAM read setup: pre-fetch byte into read buffer and increment
		v.readBuffer = v.vram[v.vramIndex()]
		v.advance()
	}
}

func (v *VDP) writeRegister(sel, value uint8) {
	if v.model == ModelTMS9918A {
		// Only three register select bits are decoded
		v.register[sel&0x07] = value
		return
	}
	n := sel & 0x3F
	switch {
	case n < 8:
		v.register[n] = value
	case n == 14:
		v.bank = value & 0x07
	}
}

// ReadData returns data from VRAM
func (v *VDP) ReadData() uint8 {
	// Data port access clears the control write latch (matches real hardware)
	v.writeLatch = false
	data := v.readBuffer
	v.readBuffer = v.vram[v.vramIndex()]
	v.advance()
	v.dataReads++
	return data
}

// RepeatRead models a read arriving before the chip fetched the next byte:
// the previous value is returned again and the address does not move.
func (v *VDP) RepeatRead() uint8 {
	v.writeLatch = false
	return v.readBuffer
}

// WriteData writes to VRAM
func (v *VDP) WriteData(value uint8) {
	v.writeLatch = false
	// Writing to the data port also loads the value into the read buffer
	v.readBuffer = value
	v.vram[v.vramIndex()] = value
	v.advance()
	v.dataWrites++
}

// SetVBlank sets the frame interrupt flag in the status register
func (v *VDP) SetVBlank() {
	v.status |= statusInt
}

// InterruptPending returns true if the VDP asserts its interrupt line:
// status F set and register 1 bit 5 (GINT) enabled.
func (v *VDP) InterruptPending() bool {
	return v.status&statusInt != 0 && v.register[1]&0x20 != 0
}

// Framebuffer returns the current framebuffer
func (v *VDP) Framebuffer() *image.RGBA {
	return v.framebuffer
}

// GetVRAM returns the VRAM contents
func (v *VDP) GetVRAM() []uint8 {
	return v.vram
}

// GetRegister returns the value of a VDP register (0-7)
func (v *VDP) GetRegister(n int) uint8 {
	if n < 0 || n >= len(v.register) {
		return 0
	}
	return v.register[n]
}

// GetBank returns V9938 register 14 (always 0 on the TMS9918A)
func (v *VDP) GetBank() uint8 {
	return v.bank
}

// GetAddress returns the current VRAM address counter (A0-A13)
func (v *VDP) GetAddress() uint16 {
	return v.addr
}

// GetWriteLatch returns whether a control write is pending
func (v *VDP) GetWriteLatch() bool {
	return v.writeLatch
}

// GetStatus returns the status register without clearing flags
func (v *VDP) GetStatus() uint8 {
	return v.status
}

// DataWrites returns the number of bytes stored through the data port.
func (v *VDP) DataWrites() int {
	return v.dataWrites
}

// DataReads returns the number of bytes fetched through the data port.
func (v *VDP) DataReads() int {
	return v.dataReads
}
