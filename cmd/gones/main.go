// Command gones runs a NES ROM in an ebiten window, or drops into the
// debug monitor with -bios, or renders headless with -dumpframe.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/haldane-dev/gones/cartridge"
	"github.com/haldane-dev/gones/machine"
	"github.com/haldane-dev/gones/ppu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sqweek/dialog"
)

var (
	romFile   = flag.String("rom", "", "Path to the NES ROM to run.")
	scale     = flag.Int("scale", 2, "Window (or -dumpframe image) scale factor.")
	bios      = flag.Bool("bios", false, "Enter the debug monitor instead of running.")
	dumpFrame = flag.String("dumpframe", "", "Run headless and write the last frame to this PNG.")
	frames    = flag.Int("frames", 60, "How many frames to run before -dumpframe snapshots.")
)

func main() {
	flag.Parse()

	path := *romFile
	if path == "" {
		var err error
		path, err = dialog.File().Filter("NES ROM", "nes").Title("Choose a ROM").Load()
		if err != nil {
			log.Fatalf("No ROM selected: %v", err)
		}
	}

	cart, err := cartridge.Load(path)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	m, err := machine.New(cart)
	if err != nil {
		log.Fatalf("Couldn't build machine: %v", err)
	}

	if *bios {
		m.Debugger(context.Background())
		os.Exit(0)
	}

	if *dumpFrame != "" {
		if err := writeSnapshot(m, *dumpFrame, *frames, *scale); err != nil {
			log.Fatalf("Couldn't write %s: %v", *dumpFrame, err)
		}
		os.Exit(0)
	}

	ebiten.SetWindowSize(ppu.Width**scale, ppu.Height**scale)
	ebiten.SetWindowTitle("gones")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newGame(m)); err != nil {
		log.Fatal(err)
	}
}
