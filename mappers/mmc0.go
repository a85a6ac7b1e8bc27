package mappers

import "github.com/haldane-dev/gones/cartridge"

const prgRAMSize = 0x2000

// Mmc0 is the NROM board: no bank switching at all. PRG-ROM is either
// 16KiB (mirrored into both halves of $8000-$FFFF) or 32KiB (mapped
// straight through). CHR is a single fixed 8KiB bank, ROM or RAM.
type Mmc0 struct {
	cart   *cartridge.Cartridge
	prgRAM [prgRAMSize]byte
	chrRAM []byte
}

func newMmc0(c *cartridge.Cartridge) *Mmc0 {
	m := &Mmc0{cart: c}
	if !c.HasCHRROM() {
		m.chrRAM = make([]byte, c.CHRRAMSize)
	}
	return m
}

func (m *Mmc0) CPURead(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		return m.prgRAM[addr-0x6000]
	}
	if addr < 0x8000 {
		return 0
	}
	a := addr - 0x8000
	if len(m.cart.PRG) <= 0x4000 {
		a %= 0x4000
	}
	return m.cart.PRG[a]
}

func (m *Mmc0) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = val
	}
}

func (m *Mmc0) PPURead(addr uint16) uint8 {
	if m.chrRAM != nil {
		return m.chrRAM[addr]
	}
	return m.cart.CHR[addr]
}

func (m *Mmc0) PPUWrite(addr uint16, val uint8) {
	if m.chrRAM != nil {
		m.chrRAM[addr] = val
	}
	// CHR-ROM writes are simply ignored.
}

func (m *Mmc0) Mirroring() cartridge.Mirroring { return m.cart.Mirror }
