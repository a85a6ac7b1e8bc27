package cpu

type addrMode uint8

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
)

// operandAddress advances PC past the instruction's operand bytes and
// returns the effective address the opcode function should read or
// write, along with whether resolving it crossed a page boundary (the
// detail that adds one cycle to certain addressing modes).
func (c *CPU) operandAddress(mode addrMode) (uint16, bool) {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0, false

	case modeImmediate:
		addr := c.PC
		c.PC++
		return addr, false

	case modeZeroPage:
		addr := uint16(c.bus.Read(c.PC))
		c.PC++
		return addr, false

	case modeZeroPageX:
		addr := uint16(uint8(c.bus.Read(c.PC) + c.X))
		c.PC++
		return addr, false

	case modeZeroPageY:
		addr := uint16(uint8(c.bus.Read(c.PC) + c.Y))
		c.PC++
		return addr, false

	case modeAbsolute:
		addr := c.bus.Read16(c.PC)
		c.PC += 2
		return addr, false

	case modeAbsoluteX:
		base := c.bus.Read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		return addr, pageDiffers(base, addr)

	case modeAbsoluteY:
		base := c.bus.Read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		return addr, pageDiffers(base, addr)

	case modeIndirect:
		ptr := c.bus.Read16(c.PC)
		c.PC += 2
		return c.readIndirectBug(ptr), false

	case modeIndirectX:
		base := c.bus.Read(c.PC)
		c.PC++
		zp := uint8(base + c.X)
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(uint8(zp + 1))))
		return hi<<8 | lo, false

	case modeIndirectY:
		zp := c.bus.Read(c.PC)
		c.PC++
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(uint8(zp + 1))))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		return addr, pageDiffers(base, addr)

	case modeRelative:
		offset := int8(c.bus.Read(c.PC))
		c.PC++
		addr := uint16(int32(c.PC) + int32(offset))
		return addr, false

	default:
		return 0, false
	}
}

func pageDiffers(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// readIndirectBug reproduces the 6502's JMP ($xxFF) bug: the high
// byte of the target is fetched from $xx00 instead of crossing into
// the next page, because the CPU never carries into the high byte of
// the pointer itself.
func (c *CPU) readIndirectBug(ptr uint16) uint16 {
	lo := uint16(c.bus.Read(ptr))
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := uint16(c.bus.Read(hiAddr))
	return hi<<8 | lo
}
