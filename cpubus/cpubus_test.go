package cpubus

type stubPPU struct {
	regs [8]uint8
	oam  [256]uint8
	oamI uint8
}

func (p *stubPPU) ReadRegister(addr uint16) uint8 { return p.regs[addr%8] }
func (p *stubPPU) WriteRegister(addr uint16, val uint8) {
	if addr == 0x2004 {
		p.oam[p.oamI] = val
		p.oamI++
		return
	}
	p.regs[addr%8] = val
}

type stubAPU struct {
	status uint8
	writes map[uint16]uint8
}

func newStubAPU() *stubAPU { return &stubAPU{writes: map[uint16]uint8{}} }

func (a *stubAPU) ReadStatus() uint8             { return a.status }
func (a *stubAPU) WriteStatus(val uint8)         { a.status = val }
func (a *stubAPU) WriteRegister(addr uint16, v uint8) { a.writes[addr] = v }

type stubJoypad struct {
	written []uint8
	toRead  uint8
}

func (j *stubJoypad) Read() uint8        { return j.toRead }
func (j *stubJoypad) Write(val uint8)    { j.written = append(j.written, val) }

type stubMapper struct {
	reads  map[uint16]uint8
	writes map[uint16]uint8
}

func newStubMapper() *stubMapper {
	return &stubMapper{reads: map[uint16]uint8{}, writes: map[uint16]uint8{}}
}

func (m *stubMapper) CPURead(addr uint16) uint8      { return m.reads[addr] }
func (m *stubMapper) CPUWrite(addr uint16, val uint8) { m.writes[addr] = val }

type stubCPU struct {
	stalled int
}

func (c *stubCPU) Stall(cycles int) { c.stalled += cycles }

func newTestBus() (*Bus, *stubPPU, *stubAPU, *stubMapper, *stubCPU, *bool) {
	ppu := &stubPPU{}
	a := newStubAPU()
	mapper := newStubMapper()
	j1 := &stubJoypad{}
	j2 := &stubJoypad{}
	cpu := &stubCPU{}
	odd := false
	bus := New(ppu, a, mapper, j1, j2, cpu, func() bool { return odd })
	return bus, ppu, a, mapper, cpu, &odd
}
