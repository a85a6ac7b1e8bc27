package machine

import (
	"testing"

	"github.com/haldane-dev/gones/cartridge"
	"github.com/haldane-dev/gones/cpu"
)

// newTestMachine builds a machine around a 32KiB NROM cartridge whose
// reset vector points at $8000. prg patches the PRG image before the
// machine (and therefore the CPU's reset sequence) sees it.
func newTestMachine(t *testing.T, prg func(p []byte)) *Machine {
	t.Helper()

	cart := &cartridge.Cartridge{
		PRG: make([]byte, 0x8000),
		CHR: make([]byte, 0x2000),
	}
	cart.PRG[0x7FFC] = 0x00
	cart.PRG[0x7FFD] = 0x80
	if prg != nil {
		prg(cart.PRG)
	}

	m, err := New(cart)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return m
}

func TestResetVectorAndPowerOnState(t *testing.T) {
	m := newTestMachine(t, func(p []byte) {
		p[0x7FFC] = 0xAA
		p[0x7FFD] = 0xBB
	})

	if m.cpu.PC != 0xBBAA {
		t.Errorf("PC = %04X, want BBAA", m.cpu.PC)
	}
	if m.cpu.SP != 0xFD {
		t.Errorf("SP = %02X, want FD", m.cpu.SP)
	}
	if m.cpu.P != 0x24 {
		t.Errorf("P = %02X, want 24", m.cpu.P)
	}
}

func TestWorkRAMMirrorsThroughMachine(t *testing.T) {
	m := newTestMachine(t, nil)

	m.cpuBus.Write(0x0000, 0x42)
	for _, addr := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := m.cpuBus.Read(addr); got != 0x42 {
			t.Errorf("Read(%04X) = %02X, want 42", addr, got)
		}
	}
}

func TestOAMDMATransfersAndStalls(t *testing.T) {
	m := newTestMachine(t, func(p []byte) {
		p[0x0000] = 0xEA // NOP, so the post-DMA fetch is observable
	})

	for i := 0; i < 256; i++ {
		m.cpuBus.Write(0x0200+uint16(i), uint8(i))
	}
	m.cpuBus.Write(0x4014, 0x02)

	for i := 0; i < 256; i++ {
		m.cpuBus.Write(0x2003, uint8(i))
		if got := m.cpuBus.Read(0x2004); got != uint8(i) {
			t.Fatalf("OAM[%d] = %02X, want %02X", i, got, i)
		}
	}

	// The next instruction only begins once the stall is consumed,
	// one cycle per Step.
	pc := m.cpu.PC
	steps := 0
	for m.cpu.PC == pc {
		m.cpu.Step()
		steps++
		if steps > 600 {
			t.Fatal("CPU never resumed after DMA")
		}
	}
	stall := steps - 1
	if stall != 513 && stall != 514 {
		t.Errorf("DMA stall = %d cycles, want 513 or 514", stall)
	}

	if got := m.cpuBus.Read(0x4014); got != 0x02 {
		t.Errorf("Read($4014) = %02X, want the last DMA page 02", got)
	}
}

func TestVBlankNMIVectorsThroughFFFA(t *testing.T) {
	m := newTestMachine(t, func(p []byte) {
		// $8000: LDA #$80 / STA $2000 / loop: JMP loop
		copy(p[0x0000:], []byte{0xA9, 0x80, 0x8D, 0x00, 0x20, 0x4C, 0x05, 0x80})
		// $9000: JMP $9000, the NMI handler parks here
		copy(p[0x1000:], []byte{0x4C, 0x00, 0x90})
		p[0x7FFA] = 0x00
		p[0x7FFB] = 0x90
	})

	for i := 0; i < 200000 && m.cpu.PC != 0x9000; i++ {
		m.Tick()
	}
	if m.cpu.PC != 0x9000 {
		t.Fatal("CPU never took the VBlank NMI")
	}

	if m.cpu.P&cpu.FlagI == 0 {
		t.Error("I flag not set after NMI entry")
	}
	if m.cpu.SP != 0xFA {
		t.Fatalf("SP = %02X after NMI entry, want FA", m.cpu.SP)
	}

	status := m.cpuBus.Read(0x01FB)
	if status&cpu.FlagB != 0 {
		t.Error("pushed status has B set; hardware interrupts push B clear")
	}
	if status&cpu.FlagU == 0 {
		t.Error("pushed status has U clear, want set")
	}

	retPC := uint16(m.cpuBus.Read(0x01FC)) | uint16(m.cpuBus.Read(0x01FD))<<8
	if retPC < 0x8005 || retPC > 0x8007 {
		t.Errorf("pushed return PC = %04X, want inside the $8005 loop", retPC)
	}
}

func TestMMC1SerialLoadThroughBus(t *testing.T) {
	cart := &cartridge.Cartridge{
		PRG:      make([]byte, 0x8000),
		CHR:      make([]byte, 0x2000),
		MapperID: 1,
	}
	m, err := New(cart)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	// Writing $01,$00,$01,$00,$00 through the bus commits
	// Control = 0b10100: 4KiB CHR banking, 32KiB PRG banking,
	// single-screen mirroring.
	for _, b := range []uint8{0x01, 0x00, 0x01, 0x00, 0x00} {
		m.cpuBus.Write(0x8000, b)
	}
	if got := m.mapper.Mirroring(); got != cartridge.MirrorSingleScreen {
		t.Errorf("Mirroring() = %v after serial load, want MirrorSingleScreen", got)
	}

	// Load control = 2 (vertical mirroring), first write carrying
	// the value's bit 4.
	for i := 4; i >= 0; i-- {
		m.cpuBus.Write(0x8000, (0x02>>uint(i))&1)
	}
	if got := m.mapper.Mirroring(); got != cartridge.MirrorVertical {
		t.Errorf("Mirroring() = %v after serial load, want MirrorVertical", got)
	}
}

func TestPaletteAliasThroughRegisterPort(t *testing.T) {
	m := newTestMachine(t, nil)

	m.cpuBus.Write(0x2006, 0x3F)
	m.cpuBus.Write(0x2006, 0x10)
	m.cpuBus.Write(0x2007, 0x3A)

	m.cpuBus.Write(0x2006, 0x3F)
	m.cpuBus.Write(0x2006, 0x00)
	if got := m.cpuBus.Read(0x2007); got != 0x3A {
		t.Errorf("palette $3F00 = %02X after writing $3F10, want 3A", got)
	}
}

func TestRenderSnapshotsOpaqueRGBAFrame(t *testing.T) {
	m := newTestMachine(t, func(p []byte) {
		p[0x0000] = 0x4C // JMP $8000
		p[0x0001] = 0x00
		p[0x0002] = 0x80
	})

	// The PPU powers on at the pre-render line, so the first frame
	// boundary arrives before any visible scanline has been drawn.
	m.TickFrame()
	m.TickFrame()
	px := m.Render()
	if len(px) != 256*240*4 {
		t.Fatalf("len(Render()) = %d, want %d", len(px), 256*240*4)
	}
	for i := 3; i < len(px); i += 4 {
		if px[i] != 0xFF {
			t.Fatalf("alpha at byte %d = %02X, want FF", i, px[i])
		}
	}

	// Render returns a snapshot, not a view of the live buffer.
	px[0] = ^px[0]
	if m.ppu.Pixels()[0] == px[0] {
		t.Error("Render() aliases the PPU's live frame buffer")
	}
}

func TestResetKeepsMemories(t *testing.T) {
	m := newTestMachine(t, nil)

	m.cpuBus.Write(0x0010, 0x99)
	m.cpuBus.Write(0x2006, 0x20)
	m.cpuBus.Write(0x2006, 0x00)
	m.cpuBus.Write(0x2007, 0x77)

	m.Reset()

	if got := m.cpuBus.Read(0x0010); got != 0x99 {
		t.Errorf("work RAM = %02X after reset, want 99", got)
	}
	if got := m.ppuBus.Read(0x2000); got != 0x77 {
		t.Errorf("VRAM = %02X after reset, want 77", got)
	}
}
