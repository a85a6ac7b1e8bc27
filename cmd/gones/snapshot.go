package main

import (
	"image"
	"image/png"
	"os"

	"github.com/haldane-dev/gones/machine"
	"github.com/haldane-dev/gones/ppu"
	"golang.org/x/image/draw"
)

// writeSnapshot runs the machine headless for the requested number of
// frames, then writes the final frame to path as a PNG, upscaled by
// scale with nearest-neighbor so the pixels stay crisp.
func writeSnapshot(m *machine.Machine, path string, frames, scale int) error {
	for i := 0; i < frames; i++ {
		m.TickFrame()
	}

	src := &image.RGBA{
		Pix:    m.Render(),
		Stride: ppu.Width * 4,
		Rect:   image.Rect(0, 0, ppu.Width, ppu.Height),
	}

	if scale < 1 {
		scale = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, ppu.Width*scale, ppu.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, dst)
}
