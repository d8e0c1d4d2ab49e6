package vdp

import "testing"

// TestSetAddress_Bytes tests the two-byte address encoding
func TestSetAddress_Bytes(t *testing.T) {
	testCases := []struct {
		addr  uint16
		write bool
		want  []string
	}{
		{0x0000, true, []string{"99,00", "99,40"}},
		{0x1B00, true, []string{"99,00", "99,5B"}},
		{0x3FFF, true, []string{"99,FF", "99,7F"}},
		{0x0000, false, []string{"99,00", "99,00"}},
		{0x2345, false, []string{"99,45", "99,23"}},
	}

	for _, tc := range testCases {
		h, v := newTestVDP()
		if tc.write {
			v.SetWriteAddress(tc.addr)
		} else {
			v.SetReadAddress(tc.addr)
		}
		if got := h.outs(); !equalOps(got, tc.want) {
			t.Errorf("addr 0x%04X write=%v: expected %v, got %v", tc.addr, tc.write, tc.want, got)
		}
		if h.ops[0] != "di" || h.ops[len(h.ops)-1] != "ei" {
			t.Errorf("addr 0x%04X: expected a masked section, got %v", tc.addr, h.ops)
		}
	}
}

// TestAddress_OutOfRange tests that addresses past 16K are rejected
func TestAddress_OutOfRange(t *testing.T) {
	_, v := newTestVDP()
	expectPanic(t, "SetWriteAddress", func() { v.SetWriteAddress(0x4000) })
	expectPanic(t, "SetReadAddress", func() { v.SetReadAddress(0xFFFF) })
	expectPanic(t, "Poke", func() { v.Poke(0x4000, 0) })
	expectPanic(t, "Peek", func() { v.Peek(0x8000) })
	expectPanic(t, "FillBlock", func() { v.FillBlock(0x4000, 1, 0) })
	expectPanic(t, "CopyIn", func() { v.CopyIn([]uint8{0}, 0x4000, 1) })
	expectPanic(t, "CopyOut", func() { v.CopyOut(0x4000, 1) })
}

// TestPoke_Sequence tests a guarded address setup followed by one data write
func TestPoke_Sequence(t *testing.T) {
	h, v := newTestVDP()
	v.Poke(0x1800, 0x41)

	want := []string{"di", "out 99,00", "out 99,58", "out 98,41", "ei"}
	if !equalOps(h.ops, want) {
		t.Errorf("expected %v, got %v", want, h.ops)
	}
	if s := v.Session(); s.Mode != SessionWrite || s.Addr != 0x1801 {
		t.Errorf("expected write session at 0x1801, got %s at 0x%04X", s.Mode, s.Addr)
	}
}

// TestPeek_Sequence tests a read setup followed by one data read
func TestPeek_Sequence(t *testing.T) {
	h, v := newTestVDP()
	h.reads = []uint8{0x77}

	if got := v.Peek(0x0123); got != 0x77 {
		t.Errorf("expected 0x77, got 0x%02X", got)
	}
	want := []string{"di", "out 99,23", "out 99,01", "in 98=77", "ei"}
	if !equalOps(h.ops, want) {
		t.Errorf("expected %v, got %v", want, h.ops)
	}
	if s := v.Session(); s.Mode != SessionRead || s.Addr != 0x0124 {
		t.Errorf("expected read session at 0x0124, got %s at 0x%04X", s.Mode, s.Addr)
	}
}

// TestFast_Sequences tests that fast transfers touch only the data port
func TestFast_Sequences(t *testing.T) {
	h, v := newTestVDP()
	v.SetWriteAddress(0x0010)
	h.reset()

	v.FastWrite(0x01)
	v.FastWrite(0x02)
	want := []string{"unmasked", "out 98,01", "unmasked", "out 98,02"}
	if !equalOps(h.ops, want) {
		t.Errorf("expected %v, got %v", want, h.ops)
	}
	if s := v.Session(); s.Addr != 0x0012 {
		t.Errorf("expected session at 0x0012, got 0x%04X", s.Addr)
	}

	v.SetReadAddress(0x0010)
	h.reset()
	h.reads = []uint8{0x01, 0x02}
	if v.FastRead() != 0x01 || v.FastRead() != 0x02 {
		t.Error("FastRead returned the wrong bytes")
	}
	if len(h.ops) != 2 {
		t.Errorf("expected 2 data reads, got %v", h.ops)
	}
}

// TestFast_WrongSession tests that fast transfers require a matching session
func TestFast_WrongSession(t *testing.T) {
	_, v := newTestVDP()
	expectPanic(t, "FastWrite without session", func() { v.FastWrite(0) })
	expectPanic(t, "FastRead without session", func() { v.FastRead() })

	v.SetReadAddress(0)
	expectPanic(t, "FastWrite in read session", func() { v.FastWrite(0) })

	v.SetWriteAddress(0)
	expectPanic(t, "FastRead in write session", func() { v.FastRead() })
}

// TestSession_Wrap tests that the tracked address wraps at 16K
func TestSession_Wrap(t *testing.T) {
	_, v := newTestVDP()
	v.Poke(0x3FFF, 0)
	if s := v.Session(); s.Addr != 0x0000 {
		t.Errorf("expected session at 0x0000, got 0x%04X", s.Addr)
	}
}

// TestSessionMode_String tests session mode names
func TestSessionMode_String(t *testing.T) {
	if SessionNone.String() != "none" || SessionRead.String() != "read" || SessionWrite.String() != "write" {
		t.Error("unexpected session mode names")
	}
}
