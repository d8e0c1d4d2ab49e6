package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user-none/tmsvdp/emu"
	"github.com/user-none/tmsvdp/vdp"
)

// TestDumper_Registers tests that mirror and chip values are both printed
func TestDumper_Registers(t *testing.T) {
	m := emu.NewMachine(emu.ModelV9938)
	d := vdp.New(m, m)
	d.SetMode(vdp.Graphic1)

	var buf bytes.Buffer
	NewDumper(&buf).Registers(d, m.VDP())
	out := buf.String()

	if !strings.Contains(out, "R2   0x06    0x06") {
		t.Errorf("expected register 2 line, got:\n%s", out)
	}
	if !strings.Contains(out, "R14") {
		t.Errorf("expected the V9938 bank, got:\n%s", out)
	}
}

// TestDumper_Layout tests table ranges
func TestDumper_Layout(t *testing.T) {
	var buf bytes.Buffer
	NewDumper(&buf).Layout(vdp.Graphic1, vdp.LayoutFor(vdp.Graphic1))
	out := buf.String()

	for _, want := range []string{"0x1800", "0x1AFF", "0x2000", "0x201F", "0x1B00", "0x1B7F"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in layout, got:\n%s", want, out)
		}
	}
}

// TestDumper_Sprites tests that hidden planes are skipped
func TestDumper_Sprites(t *testing.T) {
	m := emu.NewMachine(emu.ModelTMS9918A)
	d := vdp.New(m, m)
	d.SetMode(vdp.Graphic1)
	d.PlaceSprite(3, 10, 20, 5, 1)

	var buf bytes.Buffer
	NewDumper(&buf).Sprites(d)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if len(lines) != 2 {
		t.Fatalf("expected header and one sprite, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "3   20   10    1   5") {
		t.Errorf("unexpected sprite line %q", lines[1])
	}
}

// TestDumper_Hex tests row layout
func TestDumper_Hex(t *testing.T) {
	data := make([]uint8, 20)
	for i := range data {
		data[i] = uint8(i)
	}

	var buf bytes.Buffer
	NewDumper(&buf).Hex(0x1800, data)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "1800") || !strings.Contains(lines[0], "07  08") {
		t.Errorf("unexpected first row %q", lines[0])
	}
	if !strings.Contains(lines[1], "1810") || !strings.HasSuffix(lines[1], "10 11 12 13") {
		t.Errorf("unexpected second row %q", lines[1])
	}
}
