// Package ppu implements the Ricoh 2C02 Picture Processing Unit: a
// dot-accurate pixel pipeline driven one PPU cycle at a time by the
// scheduler, rendering into a host-provided frame buffer and raising NMI
// into the CPU.
package ppu

import "github.com/rng999/gones/internal/bus"

// Region selects the scanline/dot geometry the PPU runs, per spec.md §3.4.
type Region int

const (
	NTSC Region = iota
	PAL
	Dendy
)

type geometry struct {
	scanlinesPerFrame int
	preRenderLine     int
	vblankStartLine   int
	skipOddFrameDot   bool
}

func geometryFor(r Region) geometry {
	switch r {
	case PAL:
		return geometry{scanlinesPerFrame: 312, preRenderLine: 311, vblankStartLine: 241, skipOddFrameDot: false}
	case Dendy:
		return geometry{scanlinesPerFrame: 312, preRenderLine: 311, vblankStartLine: 291, skipOddFrameDot: false}
	default:
		return geometry{scanlinesPerFrame: 262, preRenderLine: 261, vblankStartLine: 241, skipOddFrameDot: true}
	}
}

// FrameFormat selects the host frame-buffer's pixel encoding, per spec.md §6.
type FrameFormat int

const (
	RGB32 FrameFormat = iota
	Palette9
)

// PPU is the 2C02 core. Bus is the 16 KiB PPU address space (CHR + name
// tables, programmed by the cartridge's Mapper); CPU-visible registers are
// bound separately onto the CPU bus via AttachRegisters.
type PPU struct {
	Bus *bus.Bus
	geo geometry

	Format      FrameFormat
	FrameBuffer []uint32 // len 256*240; RGB32 pixels, or packed 6-bit palette index | 3-bit emphasis when Format is Palette9

	NMILine      func(bool)
	FrameReady   func()

	ctrl, mask, status uint8
	oamAddr             uint8

	v, t uint16
	x    uint8
	w    bool

	readBuffer uint8

	oam          [256]uint8
	secondaryOAM [32]uint8
	spriteCount  int
	spritePatLo  [8]uint8
	spritePatHi  [8]uint8
	spriteX      [8]uint8
	spriteAttr   [8]uint8
	spriteIsZero [8]bool

	palette [32]uint8

	scanline int
	dot      int
	frame    uint64
	oddFrame bool

	ntByte, atByte, tileLo, tileHi uint8
	bgShiftLo, bgShiftHi           uint16
	attrShiftLo, attrShiftHi       uint16
	latchAttrLo, latchAttrHi       uint8

	sprite0HitThisLine bool
	suppressVBLOnce    bool
}

// New constructs a PPU bound to ppuBus (CHR/nametable space). FrameBuffer
// must be sized width*height (256*240) before the first Tick.
func New(ppuBus *bus.Bus, region Region) *PPU {
	p := &PPU{Bus: ppuBus, geo: geometryFor(region)}
	p.FrameBuffer = make([]uint32, 256*240)
	p.bindPalette()
	return p
}

// Reset restores power-on register state: $2002's documented power-on
// value (VBlank and sprite-overflow set, sprite-0 hit clear).
func (p *PPU) Reset() {
	p.ctrl, p.mask = 0, 0
	p.status = 0xA0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.scanline = p.geo.preRenderLine
	p.dot = 0
	p.frame = 0
	p.oddFrame = false
}

func (p *PPU) renderingEnabled() bool { return p.mask&0x18 != 0 }
func (p *PPU) showBackground() bool   { return p.mask&0x08 != 0 }
func (p *PPU) showSprites() bool      { return p.mask&0x10 != 0 }

// Tick advances the PPU by exactly one dot, per spec.md §4.4.
func (p *PPU) Tick() {
	switch {
	case p.scanline == p.geo.preRenderLine:
		p.preRenderTick()
	case p.scanline >= 0 && p.scanline <= 239:
		p.visibleTick()
	case p.scanline == 240:
		// Post-render: idle.
	case p.scanline == p.geo.vblankStartLine:
		p.vblankStartTick()
	}
	p.advanceDot()
}

func (p *PPU) preRenderTick() {
	if p.dot == 1 {
		p.status &^= 0xE0 // clear VBlank, sprite0, overflow
	}
	if p.renderingEnabled() {
		p.backgroundFetchTick()
		if p.dot >= 280 && p.dot <= 304 {
			p.copyVertical()
		}
		if p.dot == 339 && p.oddFrame && p.geo.skipOddFrameDot {
			p.dot++ // skip the last dot of the pre-render line on odd frames
		}
	}
}

func (p *PPU) visibleTick() {
	if p.dot >= 1 && p.dot <= 256 {
		p.renderPixel()
	}
	if p.renderingEnabled() {
		p.backgroundFetchTick()
		if p.dot == 257 {
			p.evaluateSpritesForNextLine()
		}
	}
}

func (p *PPU) vblankStartTick() {
	if p.dot == 1 {
		if !p.suppressVBLOnce {
			p.status |= 0x80
			if p.ctrl&0x80 != 0 && p.NMILine != nil {
				p.NMILine(true)
			}
		}
		p.suppressVBLOnce = false
		if p.FrameReady != nil {
			p.FrameReady()
		}
	}
}

func (p *PPU) advanceDot() {
	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > p.geo.preRenderLine {
			p.scanline = 0
			p.frame++
			p.oddFrame = !p.oddFrame
		}
	}
}

// backgroundFetchTick runs the 8-dot NT/AT/pattern-low/pattern-high fetch
// sequence and shifts the background registers, per spec.md §4.4's "8-pixel
// cycle" description. Sprite-fetch dots (257-320) are spent idle here; this
// module resolves sprite pattern bytes directly in evaluateSpritesForNextLine
// rather than modeling their individual fetch dots.
func (p *PPU) backgroundFetchTick() {
	if (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336) {
		p.shiftBackground()
		switch p.dot % 8 {
		case 1:
			p.reloadShiftersFromLatches()
			p.ntByte = p.Bus.Read(0x2000 | (p.v & 0x0FFF))
		case 3:
			addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
			p.atByte = p.Bus.Read(addr)
		case 5:
			fineY := (p.v >> 12) & 0x7
			base := p.bgPatternTableBase()
			p.tileLo = p.Bus.Read(base + uint16(p.ntByte)*16 + fineY)
		case 7:
			fineY := (p.v >> 12) & 0x7
			base := p.bgPatternTableBase()
			p.tileHi = p.Bus.Read(base + uint16(p.ntByte)*16 + fineY + 8)
		case 0:
			p.incrementCoarseX()
		}
	}
	if p.dot == 256 {
		p.incrementFineY()
	}
	if p.dot == 257 {
		p.copyHorizontal()
	}
}

func (p *PPU) bgPatternTableBase() uint16 {
	if p.ctrl&0x10 != 0 {
		return 0x1000
	}
	return 0x0000
}

func (p *PPU) reloadShiftersFromLatches() {
	p.bgShiftLo = (p.bgShiftLo & 0xFF00) | uint16(p.tileLo)
	p.bgShiftHi = (p.bgShiftHi & 0xFF00) | uint16(p.tileHi)
	coarseX := p.v & 0x001F
	coarseY := (p.v >> 5) & 0x001F
	shift := ((coarseY & 0x02) << 1) | (coarseX & 0x02)
	attrBits := uint8((uint16(p.atByte) >> shift) & 0x03)
	if attrBits&0x01 != 0 {
		p.latchAttrLo = 0xFF
	} else {
		p.latchAttrLo = 0x00
	}
	if attrBits&0x02 != 0 {
		p.latchAttrHi = 0xFF
	} else {
		p.latchAttrHi = 0x00
	}
}

func (p *PPU) shiftBackground() {
	p.bgShiftLo <<= 1
	p.bgShiftHi <<= 1
	p.attrShiftLo = (p.attrShiftLo << 1) | uint16(p.latchAttrLo&1)
	p.attrShiftHi = (p.attrShiftHi << 1) | uint16(p.latchAttrHi&1)
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementFineY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontal() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVertical() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}
