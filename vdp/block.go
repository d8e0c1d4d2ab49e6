package vdp

import "fmt"

// span converts a 16-bit block size to a transfer length. A size of zero
// is a full 65536-byte transfer, as with a 16-bit down-counter that only
// tests for zero after decrementing.
func span(count uint16) int {
	if count == 0 {
		return 0x10000
	}
	return int(count)
}

// FillBlock writes value to count consecutive VRAM bytes starting at addr.
// count 0 means 65536 bytes. Transfers past the top of VRAM wrap in the
// chip's address counter.
func (v *VDP) FillBlock(addr uint16, count uint16, value uint8) {
	checkAddr(addr)
	v.critical(func() {
		v.fill(addr, count, value)
	})
}

// CopyIn writes count bytes of src to VRAM starting at addr.
// count 0 means 65536 bytes; src must hold at least that many.
func (v *VDP) CopyIn(src []uint8, addr uint16, count uint16) {
	checkAddr(addr)
	n := span(count)
	if len(src) < n {
		panic(fmt.Sprintf("vdp: CopyIn of %d bytes from a %d byte source", n, len(src)))
	}
	v.critical(func() {
		v.setAddress(addr, SessionWrite)
		for _, b := range src[:n] {
			v.write(b)
		}
	})
}

// CopyOut reads count bytes of VRAM starting at addr.
// count 0 means 65536 bytes.
func (v *VDP) CopyOut(addr uint16, count uint16) []uint8 {
	checkAddr(addr)
	out := make([]uint8, span(count))
	v.critical(func() {
		v.setAddress(addr, SessionRead)
		for i := range out {
			out[i] = v.read()
		}
	})
	return out
}

// fill is FillBlock without the critical section.
func (v *VDP) fill(addr uint16, count uint16, value uint8) {
	v.setAddress(addr, SessionWrite)
	for n := span(count); n > 0; n-- {
		v.write(value)
	}
}
