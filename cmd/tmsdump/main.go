package main

import (
	"flag"
	"log"
	"os"

	"github.com/user-none/tmsvdp/cli"
	"github.com/user-none/tmsvdp/emu"
	"github.com/user-none/tmsvdp/loader"
	"github.com/user-none/tmsvdp/vdp"
)

func main() {
	modeFlag := flag.Int("mode", 1, "screen mode: 0 text, 1 graphic1, 2 graphic2, 3 multicolor")
	imagePath := flag.String("image", "", "VRAM image to load before dumping")
	modelFlag := flag.String("model", "msx1", "video chip: msx1 or msx2")
	ink := flag.Int("ink", 15, "ink colour 0-15")
	bg := flag.Int("bg", 4, "background colour 0-15")
	border := flag.Int("border", 4, "border colour 0-15")
	addr := flag.Uint("addr", 0, "start address of the hex dump")
	length := flag.Uint("len", 0x100, "length of the hex dump")
	statePath := flag.String("save", "", "write a save state to this file")
	strict := flag.Bool("strict", false, "drop VRAM accesses that violate the access interval")
	pngPath := flag.String("png", "", "write a snapshot of the rendered screen to this file")
	pngScale := flag.Int("pngscale", 2, "snapshot scale factor")
	flag.Parse()

	if *modeFlag < 0 || *modeFlag > 3 {
		log.Fatalf("Invalid mode: %d (use 0-3)", *modeFlag)
	}
	if *addr > vdp.VRAMSize-1 || *length > vdp.VRAMSize {
		log.Fatalf("Invalid dump range 0x%X+0x%X", *addr, *length)
	}
	model, err := emu.ParseModel(*modelFlag)
	if err != nil {
		log.Fatal(err)
	}

	m := emu.NewMachine(model)
	m.SetStrictTiming(*strict)
	d := vdp.New(m, m)
	d.SetColor(uint8(*ink&0x0F), uint8(*bg&0x0F), uint8(*border&0x0F))

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
	}

	p := cli.NewDumper(os.Stdout)
	p.Registers(d, m.VDP())
	p.Layout(d.Mode(), d.Layout())
	if d.Layout().Sprites {
		p.Sprites(d)
	}
	if *length > 0 {
		p.Hex(uint16(*addr), d.CopyOut(uint16(*addr), uint16(*length)))
	}
	if m.TimingViolations() > 0 {
		log.Printf("%d VRAM timing violations", m.TimingViolations())
	}

	if *pngPath != "" {
		if err := cli.Snapshot(m.VDP(), *pngPath, *pngScale); err != nil {
			log.Fatal(err)
		}
	}

	if *statePath != "" {
		if err := cli.SaveState(m, *statePath); err != nil {
			log.Fatal(err)
		}
	}
}
