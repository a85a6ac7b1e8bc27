package cpubus

import "testing"

func TestWorkRAMMirroring(t *testing.T) {
	bus, _, _, _, _, _ := newTestBus()
	bus.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := bus.Read(mirror); got != 0x42 {
			t.Errorf("Read(%#x) = %#x, want 0x42 (RAM mirror)", mirror, got)
		}
	}
}

func TestPPURegisterPortFolding(t *testing.T) {
	bus, ppu, _, _, _, _ := newTestBus()
	bus.Write(0x2000, 0x80)
	if ppu.regs[0] != 0x80 {
		t.Fatalf("ppu.regs[0] = %#x, want 0x80", ppu.regs[0])
	}
	if got := bus.Read(0x2008); got != 0x80 {
		t.Errorf("Read(0x2008) = %#x, want 0x80 (register port mod 8)", got)
	}
	if got := bus.Read(0x3FF8); got != 0x80 {
		t.Errorf("Read(0x3FF8) = %#x, want 0x80", got)
	}
}

func TestJoypadStrobeFansOutToBothPorts(t *testing.T) {
	bus, _, _, _, _, _ := newTestBus()
	bus.Write(0x4016, 1)

	j1 := bus.joypad1.(*stubJoypad)
	j2 := bus.joypad2.(*stubJoypad)
	if len(j1.written) != 1 || j1.written[0] != 1 {
		t.Errorf("joypad1 did not receive the strobe write")
	}
	if len(j2.written) != 1 || j2.written[0] != 1 {
		t.Errorf("joypad2 did not receive the strobe write")
	}
}

func TestJoypadPortsReadIndependently(t *testing.T) {
	bus, _, _, _, _, _ := newTestBus()
	bus.joypad1.(*stubJoypad).toRead = 1
	bus.joypad2.(*stubJoypad).toRead = 0

	if got := bus.Read(0x4016); got != 1 {
		t.Errorf("Read(0x4016) = %d, want 1", got)
	}
	if got := bus.Read(0x4017); got != 0 {
		t.Errorf("Read(0x4017) = %d, want 0", got)
	}
}

func TestOAMDMACopies256Bytes(t *testing.T) {
	bus, ppu, _, _, cpu, _ := newTestBus()
	for i := 0; i < 256; i++ {
		bus.ram[i] = uint8(i)
	}
	bus.Write(0x4014, 0x00) // page 0 -> CPU addresses $0000-$00FF

	for i := 0; i < 256; i++ {
		if ppu.oam[i] != uint8(i) {
			t.Fatalf("oam[%d] = %d, want %d", i, ppu.oam[i], i)
		}
	}
	if cpu.stalled != 513 {
		t.Errorf("stalled = %d, want 513 on an even cycle", cpu.stalled)
	}
}

func TestOAMDMAOddCycleCostsExtraCycle(t *testing.T) {
	bus, _, _, _, cpu, odd := newTestBus()
	*odd = true
	bus.Write(0x4014, 0x00)
	if cpu.stalled != 514 {
		t.Errorf("stalled = %d, want 514 on an odd cycle", cpu.stalled)
	}
}

func TestMapperServesCartridgeSpace(t *testing.T) {
	bus, _, _, mapper, _, _ := newTestBus()
	mapper.reads[0x8000] = 0x99
	if got := bus.Read(0x8000); got != 0x99 {
		t.Errorf("Read(0x8000) = %#x, want 0x99", got)
	}
	bus.Write(0xC000, 0x11)
	if mapper.writes[0xC000] != 0x11 {
		t.Errorf("mapper did not receive write at 0xC000")
	}
}

func TestRead16LittleEndian(t *testing.T) {
	bus, _, _, _, _, _ := newTestBus()
	bus.Write(0x0010, 0x34)
	bus.Write(0x0011, 0x12)
	if got := bus.Read16(0x0010); got != 0x1234 {
		t.Errorf("Read16(0x0010) = %#x, want 0x1234", got)
	}
}
