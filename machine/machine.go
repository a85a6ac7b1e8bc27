// Package machine assembles the console: it owns the CPU, PPU, both
// address buses, the cartridge mapper and the controller ports, and
// drives them in the fixed 3-PPU-dots-per-CPU-cycle ratio the NTSC
// hardware derives from its master clock.
package machine

import (
	"fmt"
	"log"

	"github.com/haldane-dev/gones/apu"
	"github.com/haldane-dev/gones/cartridge"
	"github.com/haldane-dev/gones/cpu"
	"github.com/haldane-dev/gones/cpubus"
	"github.com/haldane-dev/gones/joypad"
	"github.com/haldane-dev/gones/mappers"
	"github.com/haldane-dev/gones/ppu"
	"github.com/haldane-dev/gones/ppubus"
)

// Machine is a complete console wired around one cartridge.
type Machine struct {
	cart   *cartridge.Cartridge
	mapper mappers.Mapper

	cpu    *cpu.CPU
	ppu    *ppu.PPU
	cpuBus *cpubus.Bus
	ppuBus *ppubus.Bus

	apu  *apu.APU
	pads [2]*joypad.Controller
}

// New builds a machine around cart. It fails when the cartridge names
// a mapper this emulator doesn't implement.
func New(cart *cartridge.Cartridge) (*Machine, error) {
	mapper, err := mappers.Get(cart)
	if err != nil {
		return nil, fmt.Errorf("machine: %w", err)
	}

	m := &Machine{
		cart:   cart,
		mapper: mapper,
		apu:    apu.New(),
		pads:   [2]*joypad.Controller{joypad.New(), joypad.New()},
	}

	// The CPU, PPU and mapper reference each other in a cycle, so
	// the machine stands in as both the PPU's NMI line and the CPU
	// bus's stall target, forwarding to whichever chip the call is
	// really for.
	m.ppuBus = ppubus.New(mapper)
	m.ppu = ppu.New(m.ppuBus, m)
	m.cpuBus = cpubus.New(m.ppu, m.apu, mapper, m.pads[0], m.pads[1], m, m.oddCycle)
	m.cpu = cpu.New(m.cpuBus)
	m.cpu.UnsupportedOpcode = func(op uint8, pc uint16) {
		log.Printf("machine: unsupported opcode %02X at %04X, skipping", op, pc)
	}

	return m, nil
}

// SetNMI forwards the PPU's vertical-blank interrupt to the CPU.
func (m *Machine) SetNMI() { m.cpu.SetNMI() }

// Stall forwards the OAM DMA cycle penalty to the CPU.
func (m *Machine) Stall(cycles int) { m.cpu.Stall(cycles) }

func (m *Machine) oddCycle() bool { return m.cpu.OddCycle() }

// Reset pulls the reset line: the CPU re-reads its reset vector, but
// work RAM, VRAM, palette and OAM keep whatever they held, the same
// as pressing the button on a real front loader.
func (m *Machine) Reset() {
	m.cpu.Reset()
}

// Tick advances the machine by one CPU step (an instruction, a stall
// cycle, or an interrupt entry) and the matching three PPU dots per
// CPU cycle. It returns the number of CPU cycles that elapsed.
func (m *Machine) Tick() int {
	cycles := m.cpu.Step()
	for i := 0; i < cycles*3; i++ {
		m.ppu.Tick()
	}
	return cycles
}

// TickFrame runs Tick until the PPU finishes its current frame.
func (m *Machine) TickFrame() {
	frame := m.ppu.Frame()
	for m.ppu.Frame() == frame {
		m.Tick()
	}
}

// Render returns a snapshot of the current 256x240 frame as row-major
// RGBA bytes with alpha fixed at 0xFF.
func (m *Machine) Render() []byte {
	px := m.ppu.Pixels()
	out := make([]byte, len(px))
	copy(out, px)
	return out
}

// KeyDown marks button b held on controller port (0 or 1).
func (m *Machine) KeyDown(port int, b joypad.Button) {
	m.pads[port].KeyDown(b)
}

// KeyUp marks button b released on controller port (0 or 1).
func (m *Machine) KeyUp(port int, b joypad.Button) {
	m.pads[port].KeyUp(b)
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s | PPU line=%d dot=%d frame=%d",
		m.cpu, m.ppu.Scanline(), m.ppu.Dot(), m.ppu.Frame())
}
