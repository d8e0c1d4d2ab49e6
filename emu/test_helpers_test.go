package emu

import "github.com/user-none/tmsvdp/vdp"

// newDriver creates a machine and an access layer bound to it, with the
// machine's RAM holding the system variables.
func newDriver(model Model) (*Machine, *vdp.VDP) {
	m := NewMachine(model)
	return m, vdp.New(m, m)
}

// writeReg performs a raw register write through the control port.
func writeReg(v *VDP, n, value uint8) {
	v.WriteControl(value)
	v.WriteControl(0x80 | n)
}

// setWrite opens a raw VRAM write at addr.
func setWrite(v *VDP, addr uint16) {
	v.WriteControl(uint8(addr))
	v.WriteControl(uint8(addr>>8)&0x3F | 0x40)
}

// setRead opens a raw VRAM read at addr.
func setRead(v *VDP, addr uint16) {
	v.WriteControl(uint8(addr))
	v.WriteControl(uint8(addr>>8) & 0x3F)
}

// ramp returns n bytes of a repeating 0..255 sequence whose phase changes
// every 256 bytes, so shifted copies are told apart.
func ramp(n int) []uint8 {
	b := make([]uint8, n)
	for i := range b {
		b[i] = uint8(i + i>>8)
	}
	return b
}
