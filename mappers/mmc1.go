package mappers

import "github.com/haldane-dev/gones/cartridge"

// Mmc1 implements the SxROM/MMC1 board: a single serial port at
// $8000-$FFFF that loads one bit per write into a 5-bit shift
// register, committing to one of four internal registers (control,
// CHR bank 0, CHR bank 1, PRG bank) on the fifth write. The first
// bit written lands in bit 4 of the committed value, the last in
// bit 0. Writing with bit 7 set resets the shift register
// immediately instead of loading a bit.
type Mmc1 struct {
	cart *cartridge.Cartridge

	prgRAM [prgRAMSize]byte
	chrRAM []byte

	shift   uint8
	count   int
	control uint8
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8
}

func newMmc1(c *cartridge.Cartridge) *Mmc1 {
	m := &Mmc1{cart: c, control: 0x0C} // power-on: PRG mode 3 (fixed last bank)
	if !c.HasCHRROM() {
		m.chrRAM = make([]byte, c.CHRRAMSize)
	}
	return m
}

func (m *Mmc1) resetShift() {
	m.shift = 0
	m.count = 0
}

func (m *Mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		return m.cart.PRG[m.prgOffset(addr)]
	default:
		return 0
	}
}

func (m *Mmc1) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.prgRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.writeSerial(addr, val)
	}
}

func (m *Mmc1) writeSerial(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.resetShift()
		m.control |= 0x0C
		return
	}

	m.shift = m.shift<<1 | val&1
	m.count++

	if m.count < 5 {
		return
	}

	switch addr & 0x6000 {
	case 0x0000:
		m.control = m.shift
	case 0x2000:
		m.chrBank0 = m.shift
	case 0x4000:
		m.chrBank1 = m.shift
	case 0x6000:
		m.prgBank = m.shift
	}
	m.resetShift()
}

func (m *Mmc1) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *Mmc1) chr4KB() bool   { return m.control&0x10 != 0 }

func (m *Mmc1) prgOffset(addr uint16) int {
	bank := int(m.prgBank & 0x0F)
	prgBanks16k := len(m.cart.PRG) / 0x4000

	switch m.prgMode() {
	case 0, 1:
		b := (bank &^ 1) >> 1
		return b*0x8000 + int(addr-0x8000)
	case 2:
		if addr < 0xC000 {
			return int(addr - 0x8000)
		}
		return (bank%prgBanks16k)*0x4000 + int(addr-0xC000)
	default: // 3: $8000 switches, last bank fixed at $C000
		if addr < 0xC000 {
			return (bank%prgBanks16k)*0x4000 + int(addr-0x8000)
		}
		last := prgBanks16k - 1
		return last*0x4000 + int(addr-0xC000)
	}
}

func (m *Mmc1) PPURead(addr uint16) uint8 {
	off := m.chrOffset(addr)
	if m.chrRAM != nil {
		return m.chrRAM[off]
	}
	return m.cart.CHR[off]
}

func (m *Mmc1) PPUWrite(addr uint16, val uint8) {
	if m.chrRAM != nil {
		m.chrRAM[m.chrOffset(addr)] = val
	}
}

func (m *Mmc1) chrOffset(addr uint16) int {
	if !m.chr4KB() {
		bank := int(m.chrBank0&0x1E) >> 1
		return bank*0x2000 + int(addr)
	}
	if addr < 0x1000 {
		return int(m.chrBank0)*0x1000 + int(addr)
	}
	return int(m.chrBank1)*0x1000 + int(addr-0x1000)
}

func (m *Mmc1) Mirroring() cartridge.Mirroring {
	switch m.control & 0x03 {
	case 0, 1:
		return cartridge.MirrorSingleScreen
	case 2:
		return cartridge.MirrorVertical
	default:
		return cartridge.MirrorHorizontal
	}
}
