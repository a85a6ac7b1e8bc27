package cpu

// initUnofficial wires up the commonly emulated undocumented 6502
// opcodes: the handful of combined read-modify-write instructions and
// no-op encodings that enough real cartridges (and most test ROMs)
// rely on that skipping them isn't an option.
func initUnofficial() {
	set(0xA7, modeZeroPage, 3, false, lax)
	set(0xB7, modeZeroPageY, 4, false, lax)
	set(0xAF, modeAbsolute, 4, false, lax)
	set(0xBF, modeAbsoluteY, 4, true, lax)
	set(0xA3, modeIndirectX, 6, false, lax)
	set(0xB3, modeIndirectY, 5, true, lax)

	set(0x87, modeZeroPage, 3, false, sax)
	set(0x97, modeZeroPageY, 4, false, sax)
	set(0x8F, modeAbsolute, 4, false, sax)
	set(0x83, modeIndirectX, 6, false, sax)

	set(0xC7, modeZeroPage, 5, false, dcp)
	set(0xD7, modeZeroPageX, 6, false, dcp)
	set(0xCF, modeAbsolute, 6, false, dcp)
	set(0xDF, modeAbsoluteX, 7, false, dcp)
	set(0xDB, modeAbsoluteY, 7, false, dcp)
	set(0xC3, modeIndirectX, 8, false, dcp)
	set(0xD3, modeIndirectY, 8, false, dcp)

	set(0xE7, modeZeroPage, 5, false, isb)
	set(0xF7, modeZeroPageX, 6, false, isb)
	set(0xEF, modeAbsolute, 6, false, isb)
	set(0xFF, modeAbsoluteX, 7, false, isb)
	set(0xFB, modeAbsoluteY, 7, false, isb)
	set(0xE3, modeIndirectX, 8, false, isb)
	set(0xF3, modeIndirectY, 8, false, isb)

	set(0x07, modeZeroPage, 5, false, slo)
	set(0x17, modeZeroPageX, 6, false, slo)
	set(0x0F, modeAbsolute, 6, false, slo)
	set(0x1F, modeAbsoluteX, 7, false, slo)
	set(0x1B, modeAbsoluteY, 7, false, slo)
	set(0x03, modeIndirectX, 8, false, slo)
	set(0x13, modeIndirectY, 8, false, slo)

	set(0x27, modeZeroPage, 5, false, rla)
	set(0x37, modeZeroPageX, 6, false, rla)
	set(0x2F, modeAbsolute, 6, false, rla)
	set(0x3F, modeAbsoluteX, 7, false, rla)
	set(0x3B, modeAbsoluteY, 7, false, rla)
	set(0x23, modeIndirectX, 8, false, rla)
	set(0x33, modeIndirectY, 8, false, rla)

	set(0x47, modeZeroPage, 5, false, sre)
	set(0x57, modeZeroPageX, 6, false, sre)
	set(0x4F, modeAbsolute, 6, false, sre)
	set(0x5F, modeAbsoluteX, 7, false, sre)
	set(0x5B, modeAbsoluteY, 7, false, sre)
	set(0x43, modeIndirectX, 8, false, sre)
	set(0x53, modeIndirectY, 8, false, sre)

	set(0x67, modeZeroPage, 5, false, rra)
	set(0x77, modeZeroPageX, 6, false, rra)
	set(0x6F, modeAbsolute, 6, false, rra)
	set(0x7F, modeAbsoluteX, 7, false, rra)
	set(0x7B, modeAbsoluteY, 7, false, rra)
	set(0x63, modeIndirectX, 8, false, rra)
	set(0x73, modeIndirectY, 8, false, rra)

	set(0xCB, modeImmediate, 2, false, axs)
	set(0xEB, modeImmediate, 2, false, sbc) // documented SBC alias

	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, modeImplied, 2, false, nop)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, modeImmediate, 2, false, nop)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, modeZeroPage, 3, false, nop)
	}
	set(0x0C, modeAbsolute, 4, false, nop)
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, modeZeroPageX, 4, false, nop)
	}
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, modeAbsoluteX, 4, true, nop)
	}

	// STP jams the CPU until the reset line is pulled.
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, modeImplied, 2, false, stp)
	}
}

func stp(c *CPU, addr uint16, mode addrMode) int {
	c.halted = true
	return 0
}

func lax(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	c.A, c.X = v, v
	c.setZN(v)
	return 0
}

func sax(c *CPU, addr uint16, mode addrMode) int {
	c.writeOperand(addr, mode, c.A&c.X)
	return 0
}

func dcp(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode) - 1
	c.writeOperand(addr, mode, v)
	c.setFlag(FlagC, c.A >= v)
	c.setZN(c.A - v)
	return 0
}

func isb(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode) + 1
	c.writeOperand(addr, mode, v)
	adcValue(c, ^v)
	return 0
}

func slo(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.writeOperand(addr, mode, v)
	c.A |= v
	c.setZN(c.A)
	return 0
}

func rla(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	carryIn := c.P & FlagC
	c.setFlag(FlagC, v&0x80 != 0)
	v = v<<1 | carryIn
	c.writeOperand(addr, mode, v)
	c.A &= v
	c.setZN(c.A)
	return 0
}

func sre(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.writeOperand(addr, mode, v)
	c.A ^= v
	c.setZN(c.A)
	return 0
}

func rra(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	carryIn := (c.P & FlagC) << 7
	c.setFlag(FlagC, v&0x01 != 0)
	v = v>>1 | carryIn
	c.writeOperand(addr, mode, v)
	adcValue(c, v)
	return 0
}

func axs(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	and := c.A & c.X
	c.setFlag(FlagC, and >= v)
	c.X = and - v
	c.setZN(c.X)
	return 0
}
