package emu

import (
	"github.com/user-none/go-chip-z80"
	"github.com/user-none/tmsvdp/vdp"
)

// Compile-time interface checks.
var _ vdp.Host = (*Machine)(nil)
var _ vdp.ExtendedVRAMProber = (*Machine)(nil)
var _ vdp.SysVars = (*Machine)(nil)

// Host RAM locations
const (
	msxID3  = 0x002D // BIOS: MSX version, 0 = MSX1
	isrBase = 0x0038 // RST 38h interrupt vector
	jiffy   = 0xFC9E // JIFFY: incremented by the interrupt routine
)

// defaultISR acknowledges the VDP, counts JIFFY and writes its low nibble
// to register 7, cycling the backdrop colour once per frame.
var defaultISR = []uint8{
	0xDB, 0x99,       // in a,(0x99)
	0x3A, 0x9E, 0xFC, // ld a,(JIFFY)
	0x3C,             // inc a
	0x32, 0x9E, 0xFC, // ld (JIFFY),a
	0xE6, 0x0F,       // and 0x0F
	0xD3, 0x99,       // out (0x99),a
	0x3E, 0x87,       // ld a,0x87
	0xD3, 0x99,       // out (0x99),a
}

const defaultISRInstructions = 8

// Machine is a simulated MSX host: CPU-side ports, RAM with the system
// variables, an interrupt line and a Z80 running the interrupt service
// routine. It implements vdp.Host, vdp.ExtendedVRAMProber and vdp.SysVars.
//
// Interrupts are taken at port access boundaries, which is where they can
// split a multi-byte protocol sequence.
type Machine struct {
	vdp *VDP
	io  *MSXIO
	ram [0x10000]uint8
	cpu *z80.CPU

	isrSteps int // Instructions per interrupt, including vector jumps

	interruptsOn bool
	irqPending   bool
	irqCountdown int // Port accesses until a scheduled interrupt, 0 = none
	inISR        bool
	ignoreMask   bool
	serviced     int
}

// NewMachine creates a machine fitted with the given video chip. MSX1 and
// MSX2 are told apart through the MSXID3 BIOS byte. Interrupts start
// enabled, as they are when BASIC or a ROM hands over control.
func NewMachine(model Model) *Machine {
	v := NewVDP(model)
	m := &Machine{
		vdp:          v,
		io:           NewMSXIO(v),
		interruptsOn: true,
	}
	if model == ModelV9938 {
		m.ram[msxID3] = 1
	}
	m.cpu = z80.New(NewISRBus(&m.ram, m.io))
	m.LoadISR(defaultISR, defaultISRInstructions)
	return m
}

// LoadISR installs an interrupt service routine of the given instruction
// count at the RST 38h vector. The reset vector jumps to it and the
// routine is followed by a jump back, so each interrupt runs
// instructions+2 CPU steps.
func (m *Machine) LoadISR(code []uint8, instructions int) {
	m.ram[0] = 0xC3 // jp isrBase
	m.ram[1] = uint8(isrBase & 0xFF)
	m.ram[2] = uint8(isrBase >> 8)
	end := isrBase + copy(m.ram[isrBase:], code)
	m.ram[end] = 0xC3 // jp 0x0000
	m.ram[end+1] = 0x00
	m.ram[end+2] = 0x00
	m.isrSteps = instructions + 2
}

// VDP returns the simulated video chip.
func (m *Machine) VDP() *VDP {
	return m.vdp
}

// RAM returns host memory.
func (m *Machine) RAM() []uint8 {
	return m.ram[:]
}

// In implements vdp.Host.
func (m *Machine) In(port uint8) uint8 {
	value := m.io.In(port, false)
	m.poll()
	return value
}

// Out implements vdp.Host.
func (m *Machine) Out(port uint8, value uint8) {
	m.io.Out(port, value, false)
	m.poll()
}

// DisableInterrupts implements vdp.Host (DI).
func (m *Machine) DisableInterrupts() {
	m.interruptsOn = false
}

// EnableInterrupts implements vdp.Host (EI). A pending interrupt is
// serviced immediately.
func (m *Machine) EnableInterrupts() {
	m.interruptsOn = true
	m.serviceIfPending()
}

// InterruptsEnabled reports the CPU interrupt enable state.
func (m *Machine) InterruptsEnabled() bool {
	return m.interruptsOn
}

// Settle implements vdp.Host.
func (m *Machine) Settle(tstates int) {
	m.io.Settle(tstates)
}

// ExtendedVRAM implements vdp.ExtendedVRAMProber by reading MSXID3.
func (m *Machine) ExtendedVRAM() bool {
	return m.ram[msxID3] != 0
}

// Peek implements vdp.SysVars.
func (m *Machine) Peek(v vdp.SysVar) uint8 {
	return m.ram[uint16(v)]
}

// Poke implements vdp.SysVars.
func (m *Machine) Poke(v vdp.SysVar, value uint8) {
	m.ram[uint16(v)] = value
}

// RaiseInterrupt asserts the interrupt line. It is serviced now if
// interrupts are enabled, otherwise when they are next enabled.
func (m *Machine) RaiseInterrupt() {
	m.irqPending = true
	m.serviceIfPending()
}

// ScheduleInterrupt raises the interrupt after the given number of further
// host port accesses. It places an interrupt between two specific bytes of
// a protocol sequence.
func (m *Machine) ScheduleInterrupt(afterAccesses int) {
	if afterAccesses <= 0 {
		m.RaiseInterrupt()
		return
	}
	m.irqCountdown = afterAccesses
}

// IgnoreInterruptMask makes the machine take interrupts even while they are
// disabled, modelling a driver with no critical sections.
func (m *Machine) IgnoreInterruptMask(ignore bool) {
	m.ignoreMask = ignore
}

// InterruptsServiced returns how many times the service routine ran.
func (m *Machine) InterruptsServiced() int {
	return m.serviced
}

// Jiffy returns the JIFFY counter maintained by the default routine.
func (m *Machine) Jiffy() uint8 {
	return m.ram[jiffy]
}

// RunFrame renders one frame and raises the frame interrupt if the VDP has
// it enabled.
func (m *Machine) RunFrame() {
	m.vdp.RenderFrame()
	m.vdp.SetVBlank()
	if m.vdp.InterruptPending() {
		m.RaiseInterrupt()
	}
}

// SetStrictTiming controls whether data port accesses closer than
// vdp.AccessInterval are dropped (writes) or repeat the previous byte
// (reads), as the chip does during active display.
func (m *Machine) SetStrictTiming(strict bool) {
	m.io.strict = strict
}

// TimingViolations returns the number of data port accesses that arrived
// too early.
func (m *Machine) TimingViolations() int {
	return m.io.violations
}

// Clock returns host time in T-states.
func (m *Machine) Clock() int64 {
	return m.io.clock
}

// SetTracing enables or disables the port access trace.
func (m *Machine) SetTracing(on bool) {
	m.io.tracing = on
}

// Trace returns the recorded port accesses.
func (m *Machine) Trace() []PortAccess {
	return m.io.trace
}

// ResetTrace discards recorded port accesses.
func (m *Machine) ResetTrace() {
	m.io.trace = m.io.trace[:0]
}

func (m *Machine) poll() {
	if m.irqCountdown > 0 {
		m.irqCountdown--
		if m.irqCountdown == 0 {
			m.irqPending = true
		}
	}
	m.serviceIfPending()
}

func (m *Machine) serviceIfPending() {
	if !m.irqPending || m.inISR {
		return
	}
	if !m.interruptsOn && !m.ignoreMask {
		return
	}
	m.service()
}

// service runs the interrupt routine to completion on the Z80
func (m *Machine) service() {
	m.irqPending = false
	m.inISR = true
	for i := 0; i < m.isrSteps; i++ {
		m.io.Advance(m.cpu.Step())
	}
	m.inISR = false
	m.serviced++
}
