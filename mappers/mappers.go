// Package mappers implements the cartridge bank-switching boards
// (mappers) that sit between the CPU/PPU buses and a cartridge's
// PRG/CHR data.
package mappers

import (
	"errors"
	"fmt"

	"github.com/haldane-dev/gones/cartridge"
)

// ErrUnsupportedMapper classifies a mapper ID with no registered
// implementation.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

// Mapper is the interface the CPU and PPU buses dispatch cartridge
// accesses through. Implementations own PRG-RAM, CHR-RAM (when the
// board has no CHR-ROM) and whatever bank-select state their specific
// board exposes.
type Mapper interface {
	// CPURead/CPUWrite serve the $6000-$FFFF window: PRG-RAM and
	// banked PRG-ROM.
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)

	// PPURead/PPUWrite serve the $0000-$1FFF pattern-table window:
	// CHR-ROM or CHR-RAM.
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)

	// Mirroring reports the board's current nametable mirroring.
	// Most boards return the value fixed by the cartridge header;
	// a handful (MMC1 among them) can change it at runtime.
	Mirroring() cartridge.Mirroring
}

type factory func(c *cartridge.Cartridge) Mapper

var registry = map[uint16]factory{}

func register(id uint16, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	registry[id] = f
}

// Get constructs the Mapper implementation a cartridge's header
// declares it needs.
func Get(c *cartridge.Cartridge) (Mapper, error) {
	f, ok := registry[c.MapperID]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d", ErrUnsupportedMapper, c.MapperID)
	}
	return f(c), nil
}

func init() {
	register(0, func(c *cartridge.Cartridge) Mapper { return newMmc0(c) })
	register(1, func(c *cartridge.Cartridge) Mapper { return newMmc1(c) })
}
