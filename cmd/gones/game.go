package main

import (
	"github.com/haldane-dev/gones/joypad"
	"github.com/haldane-dev/gones/machine"
	"github.com/haldane-dev/gones/ppu"
	"github.com/hajimehoshi/ebiten/v2"
)

// keymap assigns host keys to the controller's buttons, in the
// shift register's own bit order.
var keymap = map[ebiten.Key]joypad.Button{
	ebiten.KeyA:     joypad.A,
	ebiten.KeyB:     joypad.B,
	ebiten.KeySpace: joypad.Select,
	ebiten.KeyEnter: joypad.Start,
	ebiten.KeyUp:    joypad.Up,
	ebiten.KeyDown:  joypad.Down,
	ebiten.KeyLeft:  joypad.Left,
	ebiten.KeyRight: joypad.Right,
}

type game struct {
	m *machine.Machine
}

func newGame(m *machine.Machine) *game {
	return &game{m: m}
}

// Update polls the keyboard into controller 1 and runs the machine
// for one frame. Ebiten calls it at 60Hz, which is close enough to
// the NTSC frame rate that no further pacing is needed.
func (g *game) Update() error {
	for key, button := range keymap {
		if ebiten.IsKeyPressed(key) {
			g.m.KeyDown(0, button)
		} else {
			g.m.KeyUp(0, button)
		}
	}

	g.m.TickFrame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.m.Render())
}

// Layout reports the NES's fixed resolution; ebiten scales it to
// whatever size the window ends up at.
func (g *game) Layout(w, h int) (int, int) {
	return ppu.Width, ppu.Height
}
