package ppu

const (
	tilesPerRow  = 32
	tileRowCount = 30
)

// renderScanline composites one row of background tiles and the
// sprites active on it into the frame buffer. It runs once per
// visible scanline rather than dot-by-dot: the scroll and control
// registers a game sets during one scanline's HBlank are what's in
// effect for the whole next row, so snapshotting at the row boundary
// matches what the screen actually shows without needing a full
// per-dot background fetch pipeline.
func (p *PPU) renderScanline(y int) {
	bgOpaque := [Width]bool{}

	if p.mask&0x08 != 0 {
		p.renderBackgroundRow(y, &bgOpaque)
	} else {
		bg := p.paletteColor(0)
		for x := 0; x < Width; x++ {
			p.setPixel(x, y, bg)
		}
	}

	if p.mask&0x10 != 0 {
		p.renderSpriteRow(y, &bgOpaque)
	}
}

func (p *PPU) renderBackgroundRow(y int, bgOpaque *[Width]bool) {
	nametable := uint16(p.ctrl & ctrlNametable)
	patternBase := uint16(0)
	if p.ctrl&ctrlBgPattern != 0 {
		patternBase = 0x1000
	}

	scrolledY := (y + int(p.scrollY)) % (tileRowCount * 8)
	tileY := scrolledY / 8
	fineY := scrolledY % 8

	for x := 0; x < Width; x++ {
		scrolledX := (x + int(p.scrollX)) % (tilesPerRow * 8)
		tileX := scrolledX / 8
		fineX := scrolledX % 8

		nameAddr := 0x2000 + nametable*0x400 + uint16(tileY*tilesPerRow+tileX)
		tileIndex := uint16(p.bus.Read(nameAddr))

		patternAddr := patternBase + tileIndex*16 + uint16(fineY)
		lowPlane := p.bus.Read(patternAddr)
		highPlane := p.bus.Read(patternAddr + 8)

		bit := uint(7 - fineX)
		colorIndex := (lowPlane>>bit)&1 | ((highPlane>>bit)&1)<<1

		attrAddr := 0x2000 + nametable*0x400 + 0x3C0 + uint16((tileY/4)*8+(tileX/4))
		attrByte := p.bus.Read(attrAddr)
		shift := uint(((tileY & 2) << 1) | (tileX & 2))
		paletteIdx := (attrByte >> shift) & 0x03

		bgOpaque[x] = colorIndex != 0
		p.setPixel(x, y, p.backgroundColor(paletteIdx, colorIndex))
	}
}

type activeSprite struct {
	o       oam
	index   int
}

func (p *PPU) spritesOnScanline(y int) []activeSprite {
	height := 8
	if p.ctrl&ctrlSpriteSize != 0 {
		height = 16
	}

	var active []activeSprite
	for i := 0; i < 64 && len(active) < 8; i++ {
		entry := OAMFromBytes(p.oam[i*4 : i*4+4])
		top := int(entry.y) + 1
		if y < top || y >= top+height {
			continue
		}
		active = append(active, activeSprite{o: entry, index: i})
	}
	return active
}

func (p *PPU) renderSpriteRow(y int, bgOpaque *[Width]bool) {
	sprites := p.spritesOnScanline(y)
	spriteDrawn := [Width]bool{}

	for _, s := range sprites {
		height := 8
		if p.ctrl&ctrlSpriteSize != 0 {
			height = 16
		}
		row := y - (int(s.o.y) + 1)
		if s.o.flipV {
			row = height - 1 - row
		}

		patternBase, tileIndex := spritePatternAddr(s.o, p.ctrl, row)

		planeOffset := uint16(row % 8)
		patternAddr := patternBase + tileIndex*16 + planeOffset
		lowPlane := p.bus.Read(patternAddr)
		highPlane := p.bus.Read(patternAddr + 8)

		for col := 0; col < 8; col++ {
			x := int(s.o.x) + col
			if x >= Width || spriteDrawn[x] {
				continue
			}
			bit := col
			if !s.o.flipH {
				bit = 7 - col
			}
			colorIndex := (lowPlane>>uint(bit))&1 | ((highPlane>>uint(bit))&1)<<1
			if colorIndex == 0 {
				continue
			}

			if s.index == 0 && bgOpaque[x] && x != 255 {
				p.status |= statusSprite0
			}

			if s.o.renderP == BACK && bgOpaque[x] {
				continue
			}

			spriteDrawn[x] = true
			p.setPixel(x, y, p.spriteColor(s.o.palette, colorIndex))
		}
	}
}

// spritePatternAddr resolves the pattern-table base and tile index
// for one sprite row, accounting for 8x16 mode's rule that the
// pattern table comes from the tile index's low bit instead of
// PPUCTRL.
func spritePatternAddr(o oam, ctrl uint8, row int) (uint16, uint16) {
	if ctrl&ctrlSpriteSize == 0 {
		base := uint16(0)
		if ctrl&ctrlSpritePattern != 0 {
			base = 0x1000
		}
		return base, uint16(o.tileId)
	}

	base := uint16(o.tileId&1) * 0x1000
	tile := uint16(o.tileId &^ 1)
	if row >= 8 {
		tile++
	}
	return base, tile
}

func (p *PPU) backgroundColor(paletteIdx, colorIndex uint8) [4]uint8 {
	if colorIndex == 0 {
		return p.paletteColor(0)
	}
	return p.paletteColor(uint16(paletteIdx)*4 + uint16(colorIndex))
}

func (p *PPU) spriteColor(paletteIdx, colorIndex uint8) [4]uint8 {
	return p.paletteColor(0x10 + uint16(paletteIdx)*4 + uint16(colorIndex))
}

func (p *PPU) paletteColor(entry uint16) [4]uint8 {
	idx := p.bus.Read(0x3F00 + entry)
	return systemPalette[idx&0x3F]
}

func (p *PPU) setPixel(x, y int, c [4]uint8) {
	i := (y*Width + x) * 4
	p.pixels[i+0] = c[0]
	p.pixels[i+1] = c[1]
	p.pixels[i+2] = c[2]
	p.pixels[i+3] = c[3]
}
