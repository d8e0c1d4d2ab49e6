package vdp

import (
	"fmt"
	"sync"
)

// VRAM address space reachable through the 14-bit address latch
const (
	VRAMSize = 0x4000
	addrMask = VRAMSize - 1
)

// Mirror is the shadow copy of write-only registers 0-7.
type Mirror [8]uint8

// VDP is the access layer for one video chip. The zero value is not usable;
// create one with New.
type VDP struct {
	host Host
	vars SysVars

	// mu serialises Go callers; host interrupts are masked separately
	// inside each critical section.
	mu      sync.Mutex
	mirror  Mirror
	session Session

	mode    Mode
	modeSet bool
	layout  Layout
}

// New creates an access layer over host. vars may be nil, in which case
// system variables are kept privately.
func New(host Host, vars SysVars) *VDP {
	if vars == nil {
		vars = memVars{}
	}
	return &VDP{
		host: host,
		vars: vars,
	}
}

// critical runs fn with the port lock held and host interrupts masked.
// Interrupts are restored even if fn panics.
func (v *VDP) critical(fn func()) {
	v.mu.Lock()
	v.host.DisableInterrupts()
	defer func() {
		v.host.EnableInterrupts()
		v.mu.Unlock()
	}()
	fn()
}

// ReadRegister returns the mirrored value of register n (0-7).
// The hardware is not accessed.
func (v *VDP) ReadRegister(n uint8) uint8 {
	checkRegister(n)
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mirror[n]
}

// WriteRegister writes value to register n (0-7) and records it in the
// mirror.
func (v *VDP) WriteRegister(n uint8, value uint8) {
	checkRegister(n)
	v.critical(func() {
		v.writeRegister(n, value)
	})
}

// Registers returns a copy of the register mirror.
func (v *VDP) Registers() Mirror {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mirror
}

// Reload writes all eight registers from regs in one critical section,
// for bringing the mirror back in step with a chip whose state was
// replaced behind the driver's back. The mode and layout are then decoded
// from the new register values.
func (v *VDP) Reload(regs Mirror) {
	v.critical(func() {
		for n, value := range regs {
			v.writeRegister(uint8(n), value)
		}
		var t ModeTable
		copy(t[:], regs[:len(t)])
		v.mode = modeFromRegisters(regs[0], regs[1])
		v.layout = layoutOf(v.mode, t)
		v.modeSet = true
	})
}

// writeRegister performs the value/select sequence. Caller holds the
// critical section.
func (v *VDP) writeRegister(n uint8, value uint8) {
	v.mirror[n] = value
	v.host.Out(ControlPort, value)
	v.host.Out(ControlPort, n|0x80)
	// The chip loads the value into its address latch, so any open
	// sequential session now points somewhere else.
	v.session = Session{}
}

// SysVars returns the system variable store used by v.
func (v *VDP) SysVars() SysVars {
	return v.vars
}

func checkRegister(n uint8) {
	if n > 7 {
		panic(fmt.Sprintf("vdp: register %d out of range 0-7", n))
	}
}

func checkAddr(addr uint16) {
	if addr > addrMask {
		panic(fmt.Sprintf("vdp: VRAM address 0x%04X outside 16K", addr))
	}
}
