package ppubus

import (
	"testing"

	"github.com/haldane-dev/gones/cartridge"
)

type stubMapper struct {
	mirror cartridge.Mirroring
	chr    [0x2000]byte
}

func (m *stubMapper) PPURead(addr uint16) uint8        { return m.chr[addr] }
func (m *stubMapper) PPUWrite(addr uint16, val uint8)  { m.chr[addr] = val }
func (m *stubMapper) Mirroring() cartridge.Mirroring   { return m.mirror }

func newTestBus(mirror cartridge.Mirroring) (*Bus, *stubMapper) {
	m := &stubMapper{mirror: mirror}
	return New(m), m
}

func TestPatternTableRoutesToMapper(t *testing.T) {
	b, m := newTestBus(cartridge.MirrorHorizontal)
	m.chr[0x10] = 0x42
	if got := b.Read(0x0010); got != 0x42 {
		t.Errorf("Read(0x0010) = %#x, want 0x42", got)
	}
	b.Write(0x0020, 0x55)
	if m.chr[0x20] != 0x55 {
		t.Errorf("mapper CHR[0x20] = %#x, want 0x55", m.chr[0x20])
	}
}

func TestHorizontalMirroring(t *testing.T) {
	b, _ := newTestBus(cartridge.MirrorHorizontal)
	b.Write(0x2000, 0x11) // table 0
	b.Write(0x2400, 0x22) // table 1, mirrors table 0
	b.Write(0x2800, 0x33) // table 2
	b.Write(0x2C00, 0x44) // table 3, mirrors table 2

	if got := b.Read(0x2400); got != 0x11 {
		t.Errorf("Read(0x2400) = %#x, want 0x11 (mirrors table 0)", got)
	}
	if got := b.Read(0x2C00); got != 0x33 {
		t.Errorf("Read(0x2C00) = %#x, want 0x33 (mirrors table 2)", got)
	}
}

func TestVerticalMirroring(t *testing.T) {
	b, _ := newTestBus(cartridge.MirrorVertical)
	b.Write(0x2000, 0x11) // table 0
	b.Write(0x2800, 0x22) // table 2, mirrors table 0

	if got := b.Read(0x2000); got != 0x22 {
		t.Errorf("Read(0x2000) = %#x, want 0x22 (vertical mirrors table 0 and 2)", got)
	}
}

func TestNametableMirrorAt3000(t *testing.T) {
	b, _ := newTestBus(cartridge.MirrorVertical)
	b.Write(0x2000, 0x77)
	if got := b.Read(0x3000); got != 0x77 {
		t.Errorf("Read(0x3000) = %#x, want 0x77 ($3000-$3EFF mirrors $2000-$2EFF)", got)
	}
}

func TestPaletteMirroring(t *testing.T) {
	b, _ := newTestBus(cartridge.MirrorHorizontal)
	b.Write(0x3F00, 0x0F)
	if got := b.Read(0x3F20); got != 0x0F {
		t.Errorf("Read(0x3F20) = %#x, want 0x0F (palette RAM repeats every 32 bytes)", got)
	}
}

func TestPaletteBackgroundAliases(t *testing.T) {
	b, _ := newTestBus(cartridge.MirrorHorizontal)
	b.Write(0x3F00, 0x01)
	if got := b.Read(0x3F10); got != 0x01 {
		t.Errorf("Read(0x3F10) = %#x, want 0x01 (aliases universal background)", got)
	}
	b.Write(0x3F14, 0x02)
	if got := b.Read(0x3F04); got != 0x02 {
		t.Errorf("Read(0x3F04) = %#x, want 0x02", got)
	}
}
