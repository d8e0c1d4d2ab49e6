package emu

// ISRBus adapts host RAM and MSXIO into the go-chip-z80 Bus interface for
// the CPU that runs the interrupt service routine.
type ISRBus struct {
	ram *[0x10000]uint8
	io  *MSXIO
}

// NewISRBus creates a new ISRBus bridging host RAM and I/O.
func NewISRBus(ram *[0x10000]uint8, io *MSXIO) *ISRBus {
	return &ISRBus{ram: ram, io: io}
}

func (b *ISRBus) Fetch(addr uint16) uint8      { return b.ram[addr] }
func (b *ISRBus) Read(addr uint16) uint8       { return b.ram[addr] }
func (b *ISRBus) Write(addr uint16, val uint8) { b.ram[addr] = val }
func (b *ISRBus) In(port uint16) uint8         { return b.io.In(uint8(port), true) }
func (b *ISRBus) Out(port uint16, val uint8)   { b.io.Out(uint8(port), val, true) }
