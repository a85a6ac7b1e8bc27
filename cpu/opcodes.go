package cpu

type opFunc func(c *CPU, addr uint16, mode addrMode) int

type opcodeEntry struct {
	fn             opFunc
	mode           addrMode
	cycles         uint8
	pageCrossExtra bool
}

var opcodeTable [256]opcodeEntry

func set(op uint8, mode addrMode, cycles uint8, pageCrossExtra bool, fn opFunc) {
	opcodeTable[op] = opcodeEntry{fn: fn, mode: mode, cycles: cycles, pageCrossExtra: pageCrossExtra}
}

func init() {
	set(0x69, modeImmediate, 2, false, adc)
	set(0x65, modeZeroPage, 3, false, adc)
	set(0x75, modeZeroPageX, 4, false, adc)
	set(0x6D, modeAbsolute, 4, false, adc)
	set(0x7D, modeAbsoluteX, 4, true, adc)
	set(0x79, modeAbsoluteY, 4, true, adc)
	set(0x61, modeIndirectX, 6, false, adc)
	set(0x71, modeIndirectY, 5, true, adc)

	set(0x29, modeImmediate, 2, false, and)
	set(0x25, modeZeroPage, 3, false, and)
	set(0x35, modeZeroPageX, 4, false, and)
	set(0x2D, modeAbsolute, 4, false, and)
	set(0x3D, modeAbsoluteX, 4, true, and)
	set(0x39, modeAbsoluteY, 4, true, and)
	set(0x21, modeIndirectX, 6, false, and)
	set(0x31, modeIndirectY, 5, true, and)

	set(0x0A, modeAccumulator, 2, false, asl)
	set(0x06, modeZeroPage, 5, false, asl)
	set(0x16, modeZeroPageX, 6, false, asl)
	set(0x0E, modeAbsolute, 6, false, asl)
	set(0x1E, modeAbsoluteX, 7, false, asl)

	set(0x90, modeRelative, 2, false, branch(FlagC, false))
	set(0xB0, modeRelative, 2, false, branch(FlagC, true))
	set(0xF0, modeRelative, 2, false, branch(FlagZ, true))
	set(0xD0, modeRelative, 2, false, branch(FlagZ, false))
	set(0x30, modeRelative, 2, false, branch(FlagN, true))
	set(0x10, modeRelative, 2, false, branch(FlagN, false))
	set(0x50, modeRelative, 2, false, branch(FlagV, false))
	set(0x70, modeRelative, 2, false, branch(FlagV, true))

	set(0x24, modeZeroPage, 3, false, bit)
	set(0x2C, modeAbsolute, 4, false, bit)

	set(0x00, modeImplied, 7, false, brk)

	set(0x18, modeImplied, 2, false, clearFlag(FlagC))
	set(0xD8, modeImplied, 2, false, clearFlag(FlagD))
	set(0x58, modeImplied, 2, false, clearFlag(FlagI))
	set(0xB8, modeImplied, 2, false, clearFlag(FlagV))
	set(0x38, modeImplied, 2, false, setFlagOp(FlagC))
	set(0xF8, modeImplied, 2, false, setFlagOp(FlagD))
	set(0x78, modeImplied, 2, false, setFlagOp(FlagI))

	set(0xC9, modeImmediate, 2, false, compareWith(regA))
	set(0xC5, modeZeroPage, 3, false, compareWith(regA))
	set(0xD5, modeZeroPageX, 4, false, compareWith(regA))
	set(0xCD, modeAbsolute, 4, false, compareWith(regA))
	set(0xDD, modeAbsoluteX, 4, true, compareWith(regA))
	set(0xD9, modeAbsoluteY, 4, true, compareWith(regA))
	set(0xC1, modeIndirectX, 6, false, compareWith(regA))
	set(0xD1, modeIndirectY, 5, true, compareWith(regA))

	set(0xE0, modeImmediate, 2, false, compareWith(regX))
	set(0xE4, modeZeroPage, 3, false, compareWith(regX))
	set(0xEC, modeAbsolute, 4, false, compareWith(regX))

	set(0xC0, modeImmediate, 2, false, compareWith(regY))
	set(0xC4, modeZeroPage, 3, false, compareWith(regY))
	set(0xCC, modeAbsolute, 4, false, compareWith(regY))

	set(0xC6, modeZeroPage, 5, false, dec)
	set(0xD6, modeZeroPageX, 6, false, dec)
	set(0xCE, modeAbsolute, 6, false, dec)
	set(0xDE, modeAbsoluteX, 7, false, dec)

	set(0xCA, modeImplied, 2, false, decReg(regX))
	set(0x88, modeImplied, 2, false, decReg(regY))

	set(0x49, modeImmediate, 2, false, eor)
	set(0x45, modeZeroPage, 3, false, eor)
	set(0x55, modeZeroPageX, 4, false, eor)
	set(0x4D, modeAbsolute, 4, false, eor)
	set(0x5D, modeAbsoluteX, 4, true, eor)
	set(0x59, modeAbsoluteY, 4, true, eor)
	set(0x41, modeIndirectX, 6, false, eor)
	set(0x51, modeIndirectY, 5, true, eor)

	set(0xE6, modeZeroPage, 5, false, inc)
	set(0xF6, modeZeroPageX, 6, false, inc)
	set(0xEE, modeAbsolute, 6, false, inc)
	set(0xFE, modeAbsoluteX, 7, false, inc)

	set(0xE8, modeImplied, 2, false, incReg(regX))
	set(0xC8, modeImplied, 2, false, incReg(regY))

	set(0x4C, modeAbsolute, 3, false, jmp)
	set(0x6C, modeIndirect, 5, false, jmp)

	set(0x20, modeAbsolute, 6, false, jsr)

	set(0xA9, modeImmediate, 2, false, load(regA))
	set(0xA5, modeZeroPage, 3, false, load(regA))
	set(0xB5, modeZeroPageX, 4, false, load(regA))
	set(0xAD, modeAbsolute, 4, false, load(regA))
	set(0xBD, modeAbsoluteX, 4, true, load(regA))
	set(0xB9, modeAbsoluteY, 4, true, load(regA))
	set(0xA1, modeIndirectX, 6, false, load(regA))
	set(0xB1, modeIndirectY, 5, true, load(regA))

	set(0xA2, modeImmediate, 2, false, load(regX))
	set(0xA6, modeZeroPage, 3, false, load(regX))
	set(0xB6, modeZeroPageY, 4, false, load(regX))
	set(0xAE, modeAbsolute, 4, false, load(regX))
	set(0xBE, modeAbsoluteY, 4, true, load(regX))

	set(0xA0, modeImmediate, 2, false, load(regY))
	set(0xA4, modeZeroPage, 3, false, load(regY))
	set(0xB4, modeZeroPageX, 4, false, load(regY))
	set(0xAC, modeAbsolute, 4, false, load(regY))
	set(0xBC, modeAbsoluteX, 4, true, load(regY))

	set(0x4A, modeAccumulator, 2, false, lsr)
	set(0x46, modeZeroPage, 5, false, lsr)
	set(0x56, modeZeroPageX, 6, false, lsr)
	set(0x4E, modeAbsolute, 6, false, lsr)
	set(0x5E, modeAbsoluteX, 7, false, lsr)

	set(0xEA, modeImplied, 2, false, nop)

	set(0x09, modeImmediate, 2, false, ora)
	set(0x05, modeZeroPage, 3, false, ora)
	set(0x15, modeZeroPageX, 4, false, ora)
	set(0x0D, modeAbsolute, 4, false, ora)
	set(0x1D, modeAbsoluteX, 4, true, ora)
	set(0x19, modeAbsoluteY, 4, true, ora)
	set(0x01, modeIndirectX, 6, false, ora)
	set(0x11, modeIndirectY, 5, true, ora)

	set(0x48, modeImplied, 3, false, pha)
	set(0x08, modeImplied, 3, false, php)
	set(0x68, modeImplied, 4, false, pla)
	set(0x28, modeImplied, 4, false, plp)

	set(0x2A, modeAccumulator, 2, false, rol)
	set(0x26, modeZeroPage, 5, false, rol)
	set(0x36, modeZeroPageX, 6, false, rol)
	set(0x2E, modeAbsolute, 6, false, rol)
	set(0x3E, modeAbsoluteX, 7, false, rol)

	set(0x6A, modeAccumulator, 2, false, ror)
	set(0x66, modeZeroPage, 5, false, ror)
	set(0x76, modeZeroPageX, 6, false, ror)
	set(0x6E, modeAbsolute, 6, false, ror)
	set(0x7E, modeAbsoluteX, 7, false, ror)

	set(0x40, modeImplied, 6, false, rti)
	set(0x60, modeImplied, 6, false, rts)

	set(0xE9, modeImmediate, 2, false, sbc)
	set(0xE5, modeZeroPage, 3, false, sbc)
	set(0xF5, modeZeroPageX, 4, false, sbc)
	set(0xED, modeAbsolute, 4, false, sbc)
	set(0xFD, modeAbsoluteX, 4, true, sbc)
	set(0xF9, modeAbsoluteY, 4, true, sbc)
	set(0xE1, modeIndirectX, 6, false, sbc)
	set(0xF1, modeIndirectY, 5, true, sbc)

	set(0x85, modeZeroPage, 3, false, store(regA))
	set(0x95, modeZeroPageX, 4, false, store(regA))
	set(0x8D, modeAbsolute, 4, false, store(regA))
	set(0x9D, modeAbsoluteX, 5, false, store(regA))
	set(0x99, modeAbsoluteY, 5, false, store(regA))
	set(0x81, modeIndirectX, 6, false, store(regA))
	set(0x91, modeIndirectY, 6, false, store(regA))

	set(0x86, modeZeroPage, 3, false, store(regX))
	set(0x96, modeZeroPageY, 4, false, store(regX))
	set(0x8E, modeAbsolute, 4, false, store(regX))

	set(0x84, modeZeroPage, 3, false, store(regY))
	set(0x94, modeZeroPageX, 4, false, store(regY))
	set(0x8C, modeAbsolute, 4, false, store(regY))

	set(0xAA, modeImplied, 2, false, transfer(regA, regX))
	set(0xA8, modeImplied, 2, false, transfer(regA, regY))
	set(0xBA, modeImplied, 2, false, tsx)
	set(0x8A, modeImplied, 2, false, transfer(regX, regA))
	set(0x9A, modeImplied, 2, false, txs)
	set(0x98, modeImplied, 2, false, transfer(regY, regA))

	initUnofficial()
}

// --- register helpers, used to parameterize load/store/transfer/compare ---

type reg uint8

const (
	regA reg = iota
	regX
	regY
)

func (c *CPU) getReg(r reg) uint8 {
	switch r {
	case regX:
		return c.X
	case regY:
		return c.Y
	default:
		return c.A
	}
}

func (c *CPU) setReg(r reg, val uint8) {
	switch r {
	case regX:
		c.X = val
	case regY:
		c.Y = val
	default:
		c.A = val
	}
}

// --- official instruction bodies ---

func (c *CPU) readOperand(addr uint16, mode addrMode) uint8 {
	if mode == modeAccumulator {
		return c.A
	}
	return c.bus.Read(addr)
}

func (c *CPU) writeOperand(addr uint16, mode addrMode, val uint8) {
	if mode == modeAccumulator {
		c.A = val
		return
	}
	c.bus.Write(addr, val)
}

func adcValue(c *CPU, value uint8) {
	carryIn := uint16(0)
	if c.P&FlagC != 0 {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(value) + carryIn
	result := uint8(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (c.A^result)&(value^result)&0x80 != 0)
	c.A = result
	c.setZN(result)
}

func adc(c *CPU, addr uint16, mode addrMode) int {
	adcValue(c, c.readOperand(addr, mode))
	return 0
}

func sbc(c *CPU, addr uint16, mode addrMode) int {
	adcValue(c, ^c.readOperand(addr, mode))
	return 0
}

func and(c *CPU, addr uint16, mode addrMode) int {
	c.A &= c.readOperand(addr, mode)
	c.setZN(c.A)
	return 0
}

func ora(c *CPU, addr uint16, mode addrMode) int {
	c.A |= c.readOperand(addr, mode)
	c.setZN(c.A)
	return 0
}

func eor(c *CPU, addr uint16, mode addrMode) int {
	c.A ^= c.readOperand(addr, mode)
	c.setZN(c.A)
	return 0
}

func asl(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.writeOperand(addr, mode, v)
	c.setZN(v)
	return 0
}

func lsr(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.writeOperand(addr, mode, v)
	c.setZN(v)
	return 0
}

func rol(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	carryIn := c.P & FlagC
	c.setFlag(FlagC, v&0x80 != 0)
	v = v<<1 | carryIn
	c.writeOperand(addr, mode, v)
	c.setZN(v)
	return 0
}

func ror(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	carryIn := (c.P & FlagC) << 7
	c.setFlag(FlagC, v&0x01 != 0)
	v = v>>1 | carryIn
	c.writeOperand(addr, mode, v)
	c.setZN(v)
	return 0
}

func bit(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode)
	c.setFlag(FlagZ, c.A&v == 0)
	c.setFlag(FlagV, v&0x40 != 0)
	c.setFlag(FlagN, v&0x80 != 0)
	return 0
}

func branch(flag uint8, wantSet bool) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		set := c.P&flag != 0
		if set != wantSet {
			return 0
		}
		old := c.PC
		c.PC = addr
		if pageDiffers(old, addr) {
			return 2
		}
		return 1
	}
}

func clearFlag(flag uint8) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		c.P &^= flag
		return 0
	}
}

func setFlagOp(flag uint8) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		c.P |= flag
		return 0
	}
}

func compareWith(r reg) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		a := c.getReg(r)
		v := c.readOperand(addr, mode)
		c.setFlag(FlagC, a >= v)
		c.setZN(a - v)
		return 0
	}
}

func dec(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode) - 1
	c.writeOperand(addr, mode, v)
	c.setZN(v)
	return 0
}

func inc(c *CPU, addr uint16, mode addrMode) int {
	v := c.readOperand(addr, mode) + 1
	c.writeOperand(addr, mode, v)
	c.setZN(v)
	return 0
}

func decReg(r reg) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		v := c.getReg(r) - 1
		c.setReg(r, v)
		c.setZN(v)
		return 0
	}
}

func incReg(r reg) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		v := c.getReg(r) + 1
		c.setReg(r, v)
		c.setZN(v)
		return 0
	}
}

func jmp(c *CPU, addr uint16, mode addrMode) int {
	c.PC = addr
	return 0
}

func jsr(c *CPU, addr uint16, mode addrMode) int {
	c.push16(c.PC - 1)
	c.PC = addr
	return 0
}

func rts(c *CPU, addr uint16, mode addrMode) int {
	c.PC = c.pop16() + 1
	return 0
}

func brk(c *CPU, addr uint16, mode addrMode) int {
	c.PC++ // BRK's operand byte (a padding/signature byte) is skipped
	c.interrupt(vectorIRQ, true)
	return 0
}

func rti(c *CPU, addr uint16, mode addrMode) int {
	c.P = c.pop()&^FlagB | FlagU
	c.PC = c.pop16()
	return 0
}

func load(r reg) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		v := c.readOperand(addr, mode)
		c.setReg(r, v)
		c.setZN(v)
		return 0
	}
}

func store(r reg) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		c.writeOperand(addr, mode, c.getReg(r))
		return 0
	}
}

func transfer(from, to reg) opFunc {
	return func(c *CPU, addr uint16, mode addrMode) int {
		v := c.getReg(from)
		c.setReg(to, v)
		c.setZN(v)
		return 0
	}
}

func tsx(c *CPU, addr uint16, mode addrMode) int {
	c.X = c.SP
	c.setZN(c.X)
	return 0
}

func txs(c *CPU, addr uint16, mode addrMode) int {
	c.SP = c.X
	return 0
}

func pha(c *CPU, addr uint16, mode addrMode) int {
	c.push(c.A)
	return 0
}

func pla(c *CPU, addr uint16, mode addrMode) int {
	c.A = c.pop()
	c.setZN(c.A)
	return 0
}

func php(c *CPU, addr uint16, mode addrMode) int {
	c.push(c.P | FlagB | FlagU)
	return 0
}

func plp(c *CPU, addr uint16, mode addrMode) int {
	c.P = c.pop()&^FlagB | FlagU
	return 0
}

func nop(c *CPU, addr uint16, mode addrMode) int { return 0 }

// InstructionLength returns the total byte length (opcode plus
// operand) of the instruction op encodes, or 1 for bytes with no
// table entry. Debug front-ends use this to walk instruction memory.
func InstructionLength(op uint8) int {
	entry := opcodeTable[op]
	if entry.fn == nil {
		return 1
	}
	switch entry.mode {
	case modeImplied, modeAccumulator:
		return 1
	case modeAbsolute, modeAbsoluteX, modeAbsoluteY, modeIndirect:
		return 3
	default:
		return 2
	}
}
