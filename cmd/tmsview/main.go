package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/tmsvdp/cli"
	"github.com/user-none/tmsvdp/emu"
	"github.com/user-none/tmsvdp/loader"
	"github.com/user-none/tmsvdp/vdp"
)

func main() {
	modeFlag := flag.Int("mode", 2, "screen mode: 0 text, 1 graphic1, 2 graphic2, 3 multicolor")
	imagePath := flag.String("image", "", "VRAM image to show (BSAVE .sc0-.sc3, raw .bin/.vram, or an archive)")
	modelFlag := flag.String("model", "msx1", "video chip: msx1 or msx2")
	scale := flag.Int("scale", 2, "initial window scale")
	size16 := flag.Bool("size16", false, "use 16x16 sprites")
	zoom := flag.Bool("zoom", false, "magnify sprites")
	ink := flag.Int("ink", 15, "ink colour 0-15")
	bg := flag.Int("bg", 4, "background colour 0-15")
	border := flag.Int("border", 4, "border colour 0-15")
	statePath := flag.String("save", "", "save state file for F2 (save) and F3 (load)")
	strict := flag.Bool("strict", false, "drop VRAM accesses that violate the access interval")
	status := flag.Bool("status", false, "show the status line (toggle with F12)")
	flag.Parse()

	if *modeFlag < 0 || *modeFlag > 3 {
		log.Fatalf("Invalid mode: %d (use 0-3)", *modeFlag)
	}
	for _, c := range []int{*ink, *bg, *border} {
		if c < 0 || c > 15 {
			log.Fatalf("Invalid colour: %d (use 0-15)", c)
		}
	}
	model, err := emu.ParseModel(*modelFlag)
	if err != nil {
		log.Fatal(err)
	}

	m := emu.NewMachine(model)
	m.SetStrictTiming(*strict)
	d := vdp.New(m, m)
	d.SetColor(uint8(*ink), uint8(*bg), uint8(*border))

	scene := cli.NewScene(d)
	mode := vdp.Mode(*modeFlag)
	if *imagePath != "" {
		img, err := loader.Load(*imagePath)
		if err != nil {
			log.Fatalf("Failed to load image: %v", err)
		}
		scene.ShowImage(img, mode)
	} else {
		scene.Setup(mode)
		if *size16 {
			scene.ToggleSize()
		}
		if *zoom {
			scene.ToggleZoom()
		}
	}

	ebiten.SetWindowSize(emu.ScreenWidth*(*scale), emu.ScreenHeight*(*scale))
	ebiten.SetWindowTitle("tmsview - " + model.String())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	runner := cli.NewRunner(m, d, scene, *statePath)
	runner.ShowStatus(*status)
	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
	if m.TimingViolations() > 0 {
		log.Printf("%d VRAM timing violations", m.TimingViolations())
	}
}
