package vdp

import (
	"fmt"
	"testing"
)

// TestWriteRegister_Sequence tests value then n|0x80 on the control port,
// inside one masked section
func TestWriteRegister_Sequence(t *testing.T) {
	h, v := newTestVDP()

	v.WriteRegister(7, 0xF4)

	want := []string{"di", "out 99,F4", "out 99,87", "ei"}
	if !equalOps(h.ops, want) {
		t.Errorf("expected %v, got %v", want, h.ops)
	}
	if got := v.ReadRegister(7); got != 0xF4 {
		t.Errorf("mirror: expected 0xF4, got 0x%02X", got)
	}
}

// TestReadRegister_NoHardwareAccess tests that mirror reads stay off the
// ports
func TestReadRegister_NoHardwareAccess(t *testing.T) {
	h, v := newTestVDP()
	v.WriteRegister(1, 0xE0)
	h.reset()

	for n := uint8(0); n < 8; n++ {
		v.ReadRegister(n)
	}
	if len(h.ops) != 0 {
		t.Errorf("expected no port traffic, got %v", h.ops)
	}
}

// TestRegisters_Copy tests that the returned mirror is a copy
func TestRegisters_Copy(t *testing.T) {
	_, v := newTestVDP()
	v.WriteRegister(3, 0x80)

	r := v.Registers()
	r[3] = 0
	if v.ReadRegister(3) != 0x80 {
		t.Error("modifying the copy changed the mirror")
	}
}

// TestRegister_OutOfRange tests register number checks
func TestRegister_OutOfRange(t *testing.T) {
	_, v := newTestVDP()
	expectPanic(t, "ReadRegister(8)", func() { v.ReadRegister(8) })
	expectPanic(t, "WriteRegister(8)", func() { v.WriteRegister(8, 0) })
}

// TestWriteRegister_EndsSession tests that a register write invalidates a
// sequential session
func TestWriteRegister_EndsSession(t *testing.T) {
	_, v := newTestVDP()
	v.SetWriteAddress(0x1000)
	v.WriteRegister(7, 0x01)

	if got := v.Session().Mode; got != SessionNone {
		t.Errorf("expected no session, got %s", got)
	}
	expectPanic(t, "FastWrite after WriteRegister", func() { v.FastWrite(0) })
}

// TestReload tests that every register is written in order and the mode
// and layout follow the new values
func TestReload(t *testing.T) {
	h, v := newTestVDP()
	v.SetMode(Graphic2)
	h.reset()

	// Text1 with the name table moved to 0x0400
	regs := Mirror{0x00, 0xF2, 0x01, 0x00, 0x01, 0x00, 0x00, 0xF4}
	v.Reload(regs)

	outs := h.outs()
	if len(outs) != 16 {
		t.Fatalf("expected 16 writes, got %d", len(outs))
	}
	for n, value := range regs {
		want := []string{fmt.Sprintf("99,%02X", value), fmt.Sprintf("99,%02X", 0x80|n)}
		if !equalOps(outs[2*n:2*n+2], want) {
			t.Errorf("register %d: expected %v, got %v", n, want, outs[2*n:2*n+2])
		}
	}
	if countPrefix(h.ops, "di") != 1 {
		t.Errorf("expected one masked section, got %d", countPrefix(h.ops, "di"))
	}
	if v.Registers() != regs {
		t.Errorf("expected mirror % X, got % X", regs, v.Registers())
	}
	if v.Mode() != Text1 {
		t.Errorf("expected Text1, got %s", v.Mode())
	}
	if l := v.Layout(); l.Name != 0x0400 || l.Pattern != 0x0800 || l.Sprites {
		t.Errorf("expected Text1 layout at 0x0400/0x0800, got %+v", l)
	}
	if v.SpriteSize() != Size16x16 {
		t.Error("expected the size bit from register 1")
	}
}
