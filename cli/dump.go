package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user-none/tmsvdp/emu"
	"github.com/user-none/tmsvdp/vdp"
)

type styles struct {
	header   lipgloss.Style
	addr     lipgloss.Style
	value    lipgloss.Style
	mismatch lipgloss.Style
	dim      lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		addr:     lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(3)),
		value:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)),
		mismatch: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
	}
}

// Dumper prints the access layer and the simulated chip side by side.
type Dumper struct {
	w      io.Writer
	styles styles
}

// NewDumper creates a Dumper writing to w.
func NewDumper(w io.Writer) *Dumper {
	return &Dumper{w: w, styles: newStyles()}
}

// Registers prints the register mirror next to the chip's registers.
// Registers that differ are highlighted. A V9938 bank is shown as R14.
func (p *Dumper) Registers(d *vdp.VDP, chip *emu.VDP) {
	fmt.Fprintln(p.w, p.styles.header.Render("reg  mirror  chip"))
	mirror := d.Registers()
	for n, m := range mirror {
		c := chip.GetRegister(n)
		line := fmt.Sprintf("R%-3d 0x%02X    0x%02X", n, m, c)
		if m != c {
			line = p.styles.mismatch.Render(line)
		} else {
			line = p.styles.value.Render(line)
		}
		fmt.Fprintln(p.w, line)
	}
	if chip.Model() == emu.ModelV9938 {
		fmt.Fprintln(p.w, p.styles.dim.Render(fmt.Sprintf("R14  -       0x%02X", chip.GetBank())))
	}
	s := d.Session()
	fmt.Fprintf(p.w, "%s %s @ 0x%04X, chip 0x%04X\n",
		p.styles.header.Render("session"), s.Mode, s.Addr, chip.GetAddress())
}

// Layout prints the VRAM map of mode.
func (p *Dumper) Layout(mode vdp.Mode, l vdp.Layout) {
	fmt.Fprintf(p.w, "%s %s %dx%d\n", p.styles.header.Render("mode"), mode, l.Columns, l.Rows)
	p.table("name", l.Name, l.NameSize)
	p.table("pattern", l.Pattern, l.PatternSize)
	p.table("colour", l.Color, l.ColorSize)
	if l.Sprites {
		p.table("sprite attr", l.SpriteAttr, vdp.SpritePlanes*4)
		p.table("sprite pattern", l.SpritePattern, 0x800)
	}
}

func (p *Dumper) table(name string, base, size uint16) {
	if size == 0 {
		fmt.Fprintf(p.w, "  %-15s %s\n", name, p.styles.dim.Render("-"))
		return
	}
	fmt.Fprintf(p.w, "  %-15s %s-%s\n", name,
		p.styles.addr.Render(fmt.Sprintf("0x%04X", base)),
		p.styles.addr.Render(fmt.Sprintf("0x%04X", int(base)+int(size)-1)))
}

// Sprites prints the attribute records of all visible planes.
func (p *Dumper) Sprites(d *vdp.VDP) {
	fmt.Fprintln(p.w, p.styles.header.Render("plane   y    x  pat col"))
	for plane := uint8(0); plane < vdp.SpritePlanes; plane++ {
		s := d.Sprite(plane)
		if s.Y == vdp.HiddenY {
			continue
		}
		fmt.Fprintf(p.w, "%5d %4d %4d %4d %3d\n", plane, s.Y, s.X, s.Pattern, s.Color&0x0F)
	}
}

// Hex prints data as 16-byte rows addressed from addr.
func (p *Dumper) Hex(addr uint16, data []uint8) {
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		var sb strings.Builder
		for i, b := range data[off:end] {
			if i == 8 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, " %02X", b)
		}
		fmt.Fprintf(p.w, "%s %s\n",
			p.styles.addr.Render(fmt.Sprintf("%04X", (int(addr)+off)&0x3FFF)), sb.String())
	}
}
