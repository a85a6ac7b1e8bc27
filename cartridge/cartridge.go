package cartridge

import (
	"fmt"
	"io"
	"os"
)

const (
	prgBlockSize = 16384
	chrBlockSize = 8192
	trainerSize  = 512
)

// Cartridge holds the immutable data read from a ROM image: PRG-ROM,
// CHR-ROM (or nothing, if the board uses CHR-RAM), and the header
// facts a mapper needs to decide how to bank it.
type Cartridge struct {
	Path string

	PRG []byte
	CHR []byte // empty when the board provides CHR-RAM instead

	Trainer []byte // 512 bytes, or nil

	MapperID  uint16
	Submapper uint8

	Mirror Mirroring
	Timing TimingMode
	Console ConsoleType

	Battery bool

	PRGRAMSize   int
	PRGNVRAMSize int
	CHRRAMSize   int
	CHRNVRAMSize int

	ExpansionDevice uint8
}

// Load reads an iNES or NES 2.0 ROM image from path.
func Load(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Parse decodes a complete ROM image already held in memory.
func Parse(raw []byte) (*Cartridge, error) {
	h, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}
	pos := 16

	var trainer []byte
	if h.hasTrainer() {
		if len(raw) < pos+trainerSize {
			return nil, fmt.Errorf("%w: truncated trainer", ErrBadRomHeader)
		}
		trainer = append([]byte(nil), raw[pos:pos+trainerSize]...)
		pos += trainerSize
	}

	prgLen := h.prgBlocks() * prgBlockSize
	if len(raw) < pos+prgLen {
		return nil, fmt.Errorf("%w: truncated PRG-ROM (want %d bytes, have %d)", ErrBadRomHeader, prgLen, len(raw)-pos)
	}
	prg := append([]byte(nil), raw[pos:pos+prgLen]...)
	pos += prgLen

	chrBlocks := h.chrBlocks()
	var chr []byte
	if chrBlocks > 0 {
		chrLen := chrBlocks * chrBlockSize
		if len(raw) < pos+chrLen {
			return nil, fmt.Errorf("%w: truncated CHR-ROM (want %d bytes, have %d)", ErrBadRomHeader, chrLen, len(raw)-pos)
		}
		chr = append([]byte(nil), raw[pos:pos+chrLen]...)
		pos += chrLen
	}

	chrRAMSize := h.chrRAMSize()
	if chrBlocks == 0 && chrRAMSize == 0 && h.chrNVRAMSize() == 0 {
		// Old iNES images that declare zero CHR blocks and say
		// nothing about RAM still mean "8KiB of CHR-RAM": that's
		// the de facto rule every NROM/MMC1 board built before
		// NES 2.0 relies on.
		chrRAMSize = 8192
	}

	return &Cartridge{
		PRG:     prg,
		CHR:     chr,
		Trainer: trainer,

		MapperID:  h.mapperID(),
		Submapper: h.submapper(),

		Mirror:  h.mirroring(),
		Timing:  h.timingMode(),
		Console: h.consoleType(),

		Battery: h.hasBattery(),

		PRGRAMSize:   h.prgRAMSize(),
		PRGNVRAMSize: h.prgNVRAMSize(),
		CHRRAMSize:   chrRAMSize,
		CHRNVRAMSize: h.chrNVRAMSize(),

		ExpansionDevice: h.expansionDeviceID(),
	}, nil
}

func (c *Cartridge) String() string {
	return fmt.Sprintf("mapper %d.%d, %dKiB PRG, %dKiB CHR-ROM, %dKiB CHR-RAM, mirror=%v",
		c.MapperID, c.Submapper, len(c.PRG)/1024, len(c.CHR)/1024, c.CHRRAMSize/1024, c.Mirror)
}

// PRGBlocks reports the number of 16KiB PRG-ROM banks present.
func (c *Cartridge) PRGBlocks() int { return len(c.PRG) / prgBlockSize }

// HasCHRROM reports whether the board ships fixed CHR-ROM data rather
// than relying entirely on CHR-RAM.
func (c *Cartridge) HasCHRROM() bool { return len(c.CHR) > 0 }
