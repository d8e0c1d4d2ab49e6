// Package vdp drives a TMS9918A video display processor through its two
// host I/O ports. It owns the register mirror, the VRAM address/session
// protocol, block transfers, screen mode setup and the sprite attribute
// table.
//
// Misuse (register numbers above 7, sprite planes above 31, addresses past
// 16K, sequential transfers without an open session) panics. The ports
// themselves cannot fail, so no operation returns an error.
package vdp

import "fmt"

// I/O ports of the VDP on MSX computers
const (
	DataPort    = 0x98 // VRAM data (read/write)
	ControlPort = 0x99 // Address/register setup (write), status (read)
)

// AccessInterval is the minimum spacing, in host T-states, between two VRAM
// accesses through the data port. Accesses closer than this are dropped or
// duplicated by the chip during active display.
const AccessInterval = 29

// Host is the processor side of the two-port connection.
//
// DisableInterrupts and EnableInterrupts bracket every multi-byte protocol
// sequence. Settle must not return before at least the given number of
// T-states have elapsed since the previous port access; hosts without a
// timing constraint may implement it as a no-op.
type Host interface {
	In(port uint8) uint8
	Out(port uint8, value uint8)
	DisableInterrupts()
	EnableInterrupts()
	Settle(tstates int)
}

// ExtendedVRAMProber is implemented by hosts that can report whether the
// video chip is a V9938 (or later) with more than 16K of VRAM. Hosts that do
// not implement it are treated as MSX1 machines.
type ExtendedVRAMProber interface {
	ExtendedVRAM() bool
}

// SysVar is the host RAM address of an MSX system variable.
type SysVar uint16

// System variables read and written by this package
const (
	LineLength40    SysVar = 0xF3AE // LINL40: width of SCREEN 0
	ForegroundColor SysVar = 0xF3E9 // FORCLR: ink
	BackgroundColor SysVar = 0xF3EA // BAKCLR: background
	BorderColor     SysVar = 0xF3EB // BDRCLR: border
)

func (s SysVar) String() string {
	switch s {
	case LineLength40:
		return "LINL40"
	case ForegroundColor:
		return "FORCLR"
	case BackgroundColor:
		return "BAKCLR"
	case BorderColor:
		return "BDRCLR"
	}
	return fmt.Sprintf("SysVar(0x%04X)", uint16(s))
}

// SysVars is the host's system variable area.
type SysVars interface {
	Peek(v SysVar) uint8
	Poke(v SysVar, value uint8)
}

// memVars backs SysVars when the host provides none.
type memVars map[SysVar]uint8

func (m memVars) Peek(v SysVar) uint8        { return m[v] }
func (m memVars) Poke(v SysVar, value uint8) { m[v] = value }
