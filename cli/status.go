package cli

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/user-none/tmsvdp/emu"
	"github.com/user-none/tmsvdp/vdp"
	"golang.org/x/image/font/basicfont"
)

var (
	statusLabel = color.RGBA{190, 190, 190, 255}
	statusOff   = color.RGBA{120, 120, 120, 255}
	statusOn    = color.RGBA{0, 220, 90, 255}
	statusWarn  = color.RGBA{240, 80, 60, 255}
)

type statusToken struct {
	name  string
	color color.Color
}

// statusTokens describes the driver and machine state shown in the overlay.
func statusTokens(m *emu.Machine, d *vdp.VDP) []statusToken {
	flag := func(name string, on bool) statusToken {
		if on {
			return statusToken{name, statusOn}
		}
		return statusToken{name, statusOff}
	}

	violations := statusToken{fmt.Sprintf("LATE %d", m.TimingViolations()), statusOff}
	if m.TimingViolations() > 0 {
		violations.color = statusWarn
	}

	return []statusToken{
		{d.Mode().String(), statusOn},
		flag("16x16", d.SpriteSize() == vdp.Size16x16),
		flag("2x", d.SpriteZoom() == vdp.Zoom2x),
		{fmt.Sprintf("JIFFY %3d", m.Jiffy()), statusLabel},
		violations,
	}
}

func drawStatusLine(screen *ebiten.Image, x, baselineY int, label string, tokens []statusToken) {
	face := basicfont.Face7x13

	text.Draw(screen, label, face, x, baselineY, statusLabel)
	cursorX := x + text.BoundString(face, label).Dx() + 6

	for _, token := range tokens {
		text.Draw(screen, token.name, face, cursorX, baselineY, token.color)
		cursorX += text.BoundString(face, token.name).Dx() + 8
	}
}
