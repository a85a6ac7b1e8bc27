// Package ppu implements the NES picture processing unit: a
// dot-and-scanline-driven state machine that composites a tiled
// background against up to 64 sprites (at most 8 per scanline) and
// raises NMI at the start of vertical blank.
package ppu

import "github.com/haldane-dev/gones/ppubus"

const (
	Width  = 256
	Height = 240

	dotsPerScanline     = 341
	scanlinesPerFrame   = 262
	postRenderScanline  = 240
	vblankStartScanline = 241
	preRenderScanline   = 261
)

// Register addresses, as they appear at their canonical $2000-$2007
// offsets (the CPU bus folds $2008-$3FFF down to these eight).
const (
	RegPPUCTRL   = 0x2000
	RegPPUMASK   = 0x2001
	RegPPUSTATUS = 0x2002
	RegOAMADDR   = 0x2003
	RegOAMDATA   = 0x2004
	RegPPUSCROLL = 0x2005
	RegPPUADDR   = 0x2006
	RegPPUDATA   = 0x2007
)

const (
	ctrlNMIEnable    uint8 = 1 << 7
	ctrlSpriteSize   uint8 = 1 << 5
	ctrlBgPattern    uint8 = 1 << 4
	ctrlSpritePattern uint8 = 1 << 3
	ctrlIncrement32  uint8 = 1 << 2
	ctrlNametable    uint8 = 0x03
)

const (
	statusVBlank    uint8 = 1 << 7
	statusSprite0   uint8 = 1 << 6
	statusOverflow  uint8 = 1 << 5
)

// NMILine is the line the PPU pulls low to interrupt the CPU.
type NMILine interface {
	SetNMI()
}

// PPU is a single picture processing unit.
type PPU struct {
	bus *ppubus.Bus
	nmi NMILine

	ctrl, mask, status uint8
	oamAddr            uint8
	oam                [256]uint8

	scrollX, scrollY uint8
	vramAddr         uint16
	writeLatch       bool
	readBuffer       uint8

	scanline int
	dot      int
	frame    uint64

	pixels [Width * Height * 4]uint8 // RGBA8888
}

// New wires a PPU to its bus and the CPU's NMI line.
func New(bus *ppubus.Bus, nmi NMILine) *PPU {
	return &PPU{bus: bus, nmi: nmi, scanline: preRenderScanline}
}

// Pixels returns the current frame buffer, laid out row-major RGBA.
func (p *PPU) Pixels() []uint8 { return p.pixels[:] }

// Frame returns the number of frames completed so far.
func (p *PPU) Frame() uint64 { return p.frame }

// Scanline returns the scanline currently being processed, 0-261.
func (p *PPU) Scanline() int { return p.scanline }

// Dot returns the dot within the current scanline, 0-340.
func (p *PPU) Dot() int { return p.dot }

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	switch {
	case p.scanline == vblankStartScanline && p.dot == 1:
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.nmi.SetNMI()
		}
	case p.scanline == preRenderScanline && p.dot == 1:
		p.status &^= statusVBlank | statusSprite0 | statusOverflow
	case p.scanline < Height && p.dot == 0:
		p.renderScanline(p.scanline)
	}

	p.dot++
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.frame++
		}
	}
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&ctrlIncrement32 != 0 {
		return 32
	}
	return 1
}

// ReadRegister serves a CPU read of one of the eight PPU ports.
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case RegPPUSTATUS:
		v := p.status
		p.status &^= statusVBlank
		p.writeLatch = false
		return v
	case RegOAMDATA:
		return p.oam[p.oamAddr]
	case RegPPUDATA:
		return p.readData()
	default:
		return 0
	}
}

// WriteRegister serves a CPU write to one of the eight PPU ports.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case RegPPUCTRL:
		wasEnabled := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = val
		// Enabling NMI mid-VBlank fires one right away; games rely
		// on this to catch the tail of a blank period they polled
		// their way into.
		if !wasEnabled && val&ctrlNMIEnable != 0 && p.status&statusVBlank != 0 {
			p.nmi.SetNMI()
		}
	case RegPPUMASK:
		p.mask = val
	case RegOAMADDR:
		p.oamAddr = val
	case RegOAMDATA:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case RegPPUSCROLL:
		if !p.writeLatch {
			p.scrollX = val
		} else {
			p.scrollY = val
		}
		p.writeLatch = !p.writeLatch
	case RegPPUADDR:
		if !p.writeLatch {
			p.vramAddr = p.vramAddr&0x00FF | uint16(val&0x3F)<<8
		} else {
			p.vramAddr = p.vramAddr&0xFF00 | uint16(val)
		}
		p.writeLatch = !p.writeLatch
	case RegPPUDATA:
		p.writeData(val)
	}
}

func (p *PPU) readData() uint8 {
	addr := p.vramAddr & 0x3FFF
	var result uint8
	if addr < 0x3F00 {
		result = p.readBuffer
		p.readBuffer = p.bus.Read(addr)
	} else {
		result = p.bus.Read(addr)
		p.readBuffer = p.bus.Read(addr - 0x1000)
	}
	p.vramAddr += p.vramIncrement()
	return result
}

func (p *PPU) writeData(val uint8) {
	p.bus.Write(p.vramAddr&0x3FFF, val)
	p.vramAddr += p.vramIncrement()
}
