package emu

import "github.com/user-none/tmsvdp/vdp"

// accessCost is the host time of one port access: OUT (n),A is 11
// T-states plus the M1 wait state MSX machines insert.
const accessCost = 12

// PortAccess is one entry of the port trace.
type PortAccess struct {
	Time  int64
	Port  uint8
	Value uint8
	Write bool
	ISR   bool // issued by the interrupt service routine
	Late  bool // data access closer than vdp.AccessInterval to the previous one
}

// MSXIO decodes the VDP ports and checks VRAM access spacing.
type MSXIO struct {
	vdp *VDP

	clock      int64 // Host T-states
	lastAccess int64 // Time of the previous port access
	lastVRAM   int64 // Time of the previous VRAM access by the chip

	strict     bool
	violations int

	tracing bool
	trace   []PortAccess
}

func NewMSXIO(v *VDP) *MSXIO {
	return &MSXIO{
		vdp:        v,
		lastAccess: -vdp.AccessInterval,
		lastVRAM:   -vdp.AccessInterval,
	}
}

func (e *MSXIO) In(port uint8, isr bool) uint8 {
	now := e.clock
	var value uint8
	late := false

	switch port {
	case vdp.DataPort:
		late = e.checkVRAM(now)
		if late && e.strict {
			value = e.vdp.RepeatRead()
		} else {
			value = e.vdp.ReadData()
		}
		e.lastVRAM = now
	case vdp.ControlPort:
		value = e.vdp.ReadControl()
	default:
		value = 0xFF
	}

	e.record(PortAccess{Time: now, Port: port, Value: value, ISR: isr, Late: late})
	return value
}

func (e *MSXIO) Out(port uint8, value uint8, isr bool) {
	now := e.clock
	late := false

	switch port {
	case vdp.DataPort:
		late = e.checkVRAM(now)
		if !(late && e.strict) {
			e.vdp.WriteData(value)
		}
		e.lastVRAM = now
	case vdp.ControlPort:
		readSetup := e.vdp.GetWriteLatch() && value&0xC0 == 0
		e.vdp.WriteControl(value)
		if readSetup {
			// The chip fetches the first byte right away
			e.lastVRAM = now
		}
	}

	e.record(PortAccess{Time: now, Port: port, Value: value, Write: true, ISR: isr, Late: late})
}

// Settle advances host time until tstates have passed since the previous
// port access
func (e *MSXIO) Settle(tstates int) {
	if target := e.lastAccess + int64(tstates); e.clock < target {
		e.clock = target
	}
}

// Advance adds host time spent outside port accesses
func (e *MSXIO) Advance(tstates int) {
	e.clock += int64(tstates)
}

func (e *MSXIO) checkVRAM(now int64) bool {
	if now-e.lastVRAM < vdp.AccessInterval {
		e.violations++
		return true
	}
	return false
}

func (e *MSXIO) record(a PortAccess) {
	e.lastAccess = a.Time
	// Service routine time is accounted per instruction by the CPU
	if !a.ISR {
		e.clock += accessCost
	}
	if e.tracing {
		e.trace = append(e.trace, a)
	}
}
