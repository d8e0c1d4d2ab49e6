// Package cli runs the simulated machine in a window and prints styled
// register and VRAM dumps.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/tmsvdp/emu"
	"github.com/user-none/tmsvdp/vdp"
)

// modeKeys switch screen modes, numbered as MSX SCREEN 0-3
var modeKeys = []ebiten.Key{ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3}

// Runner drives the machine one frame per tick and shows it in a window.
type Runner struct {
	machine *emu.Machine
	driver  *vdp.VDP
	scene   *Scene
	screen  *Screen

	statePath  string
	showStatus bool
	snapshots  int
}

// NewRunner creates a Runner. statePath, if not empty, is where F2 writes
// a save state and F3 reads it back.
func NewRunner(m *emu.Machine, d *vdp.VDP, scene *Scene, statePath string) *Runner {
	return &Runner{
		machine:   m,
		driver:    d,
		scene:     scene,
		screen:    NewScreen(m.VDP()),
		statePath: statePath,
	}
}

// ShowStatus turns the status line on or off.
func (r *Runner) ShowStatus(on bool) {
	r.showStatus = on
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}

	r.pollInput()
	r.scene.Step()
	r.machine.RunFrame()
	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.screen.Draw(screen)
	if r.showStatus {
		drawStatusLine(screen, 6, screen.Bounds().Dy()-6, r.machine.VDP().Model().String(),
			statusTokens(r.machine, r.driver))
	}
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Return window size so we control scaling in Draw()
	return outsideWidth, outsideHeight
}

// pollInput handles the keys: 0-3 mode, S sprite size, Z zoom, C colour,
// F2/F3 save and load state, F4 snapshot, F12 status line.
func (r *Runner) pollInput() {
	for i, key := range modeKeys {
		if inpututil.IsKeyJustPressed(key) {
			r.scene.Setup(vdp.Mode(i))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		r.scene.ToggleSize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		r.scene.ToggleZoom()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		r.scene.NextColor()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		if err := r.saveState(); err != nil {
			log.Printf("save state: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		if err := r.loadState(); err != nil {
			log.Printf("load state: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		r.snapshots++
		path := fmt.Sprintf("tmsview_%d.png", r.snapshots)
		if err := Snapshot(r.machine.VDP(), path, 2); err != nil {
			log.Printf("snapshot: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		r.showStatus = !r.showStatus
	}
}

func (r *Runner) saveState() error {
	if r.statePath == "" {
		return nil
	}
	return SaveState(r.machine, r.statePath)
}

func (r *Runner) loadState() error {
	if r.statePath == "" {
		return nil
	}
	if err := LoadState(r.machine, r.driver, r.statePath); err != nil {
		return err
	}
	r.scene.Resync()
	return nil
}

// SaveState writes a save state of m to path.
func SaveState(m *emu.Machine, path string) error {
	data, err := m.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadState restores m from the save state at path and reloads d's
// register mirror from the restored chip, so later read-modify-writes
// start from the chip's values.
func LoadState(m *emu.Machine, d *vdp.VDP, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := m.Deserialize(data); err != nil {
		return err
	}

	var regs vdp.Mirror
	for n := range regs {
		regs[n] = m.VDP().GetRegister(n)
	}
	d.Reload(regs)
	return nil
}
