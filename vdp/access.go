package vdp

import "fmt"

// SessionMode is the direction the chip's address latch was last set for.
type SessionMode uint8

const (
	SessionNone SessionMode = iota
	SessionRead
	SessionWrite
)

func (m SessionMode) String() string {
	switch m {
	case SessionRead:
		return "read"
	case SessionWrite:
		return "write"
	}
	return "none"
}

// Session is the open sequential-access state: direction and the address
// the next data port transfer will touch.
type Session struct {
	Mode SessionMode
	Addr uint16
}

// Session returns the current sequential-access state.
func (v *VDP) Session() Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session
}

// SetWriteAddress prepares the chip to write VRAM sequentially from addr.
func (v *VDP) SetWriteAddress(addr uint16) {
	checkAddr(addr)
	v.critical(func() {
		v.setAddress(addr, SessionWrite)
	})
}

// SetReadAddress prepares the chip to read VRAM sequentially from addr.
func (v *VDP) SetReadAddress(addr uint16) {
	checkAddr(addr)
	v.critical(func() {
		v.setAddress(addr, SessionRead)
	})
}

// FastWrite writes value at the current address and advances it.
// A write session must be open (SetWriteAddress, Poke or a previous
// FastWrite).
func (v *VDP) FastWrite(value uint8) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expect(SessionWrite)
	v.write(value)
}

// FastRead reads the byte at the current address and advances it.
// A read session must be open (SetReadAddress, Peek or a previous FastRead).
func (v *VDP) FastRead() uint8 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expect(SessionRead)
	return v.read()
}

// Poke writes one byte of VRAM. It leaves a write session open at addr+1.
func (v *VDP) Poke(addr uint16, value uint8) {
	checkAddr(addr)
	v.critical(func() {
		v.setAddress(addr, SessionWrite)
		v.write(value)
	})
}

// Peek reads one byte of VRAM. It leaves a read session open at addr+1.
func (v *VDP) Peek(addr uint16) uint8 {
	checkAddr(addr)
	var value uint8
	v.critical(func() {
		v.setAddress(addr, SessionRead)
		value = v.read()
	})
	return value
}

// setAddress emits the two-byte address sequence. Bit 6 of the second byte
// selects write (1) or read (0). Caller holds the critical section.
func (v *VDP) setAddress(addr uint16, mode SessionMode) {
	hi := uint8(addr>>8) & 0x3F
	if mode == SessionWrite {
		hi |= 0x40
	}
	v.host.Out(ControlPort, uint8(addr))
	v.host.Out(ControlPort, hi)
	v.session = Session{Mode: mode, Addr: addr & addrMask}
}

func (v *VDP) write(value uint8) {
	v.host.Settle(AccessInterval)
	v.host.Out(DataPort, value)
	v.session.Addr = (v.session.Addr + 1) & addrMask
}

func (v *VDP) read() uint8 {
	v.host.Settle(AccessInterval)
	value := v.host.In(DataPort)
	v.session.Addr = (v.session.Addr + 1) & addrMask
	return value
}

func (v *VDP) expect(mode SessionMode) {
	if v.session.Mode != mode {
		panic(fmt.Sprintf("vdp: sequential %s without a %s session (session is %s)",
			mode, mode, v.session.Mode))
	}
}
