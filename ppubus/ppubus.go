// Package ppubus implements the PPU's 14-bit address space: pattern
// tables routed to the cartridge mapper, two physical 1KiB nametables
// mirrored across the logical $2000-$3EFF window, and 32 bytes of
// palette RAM with its background-color aliasing.
package ppubus

import "github.com/haldane-dev/gones/cartridge"

// Mapper is the subset of mappers.Mapper the PPU bus needs. Declared
// locally so this package doesn't import mappers just for a type
// name.
type Mapper interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
}

const (
	nametableSize = 0x0400
	vramSize      = 2 * nametableSize
	paletteSize   = 32
)

// Bus is the PPU-side address bus.
type Bus struct {
	mapper  Mapper
	vram    [vramSize]byte
	palette [paletteSize]byte
}

// New wires a PPU bus to the cartridge's mapper.
func New(m Mapper) *Bus {
	return &Bus{mapper: m}
}

// Read serves a 14-bit PPU address.
func (b *Bus) Read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return b.mapper.PPURead(addr)
	case addr < 0x3F00:
		return b.vram[b.nametableIndex(addr)]
	default:
		return b.palette[paletteIndex(addr)]
	}
}

// Write serves a 14-bit PPU address.
func (b *Bus) Write(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		b.mapper.PPUWrite(addr, val)
	case addr < 0x3F00:
		b.vram[b.nametableIndex(addr)] = val
	default:
		b.palette[paletteIndex(addr)] = val
	}
}

// nametableIndex folds the logical $2000-$3EFF window (which repeats
// every $1000) down to one of the two physical 1KiB nametables
// according to the cartridge's mirroring mode.
func (b *Bus) nametableIndex(addr uint16) uint16 {
	a := (addr - 0x2000) % 0x1000
	table := a / nametableSize
	offset := a % nametableSize

	var physical uint16
	switch b.mapper.Mirroring() {
	case cartridge.MirrorVertical:
		physical = table % 2
	case cartridge.MirrorSingleScreen:
		physical = 0
	case cartridge.MirrorFourScreen:
		// No cartridge-supplied extra nametable RAM is modeled;
		// fold to vertical mirroring as the closest approximation.
		physical = table % 2
	default: // MirrorHorizontal
		physical = table / 2
	}
	return physical*nametableSize + offset
}

// paletteIndex folds the $3F00-$3FFF window down to 32 bytes, with
// the four background-color mirrors ($3F10/$3F14/$3F18/$3F1C) aliased
// onto their universal-background counterparts.
func paletteIndex(addr uint16) uint16 {
	i := (addr - 0x3F00) % paletteSize
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}
