package ppu

import "github.com/rng999/gones/internal/bus"

// AttachRegisters binds the CPU-visible $2000-$2007 register window (and
// its mirror through $3FFF) onto cpuBus, per spec.md §3.4/§6.
func (p *PPU) AttachRegisters(cpuBus *bus.Bus) {
	read := func(addr uint16) uint8 { return p.readRegister(addr & 0x2007) }
	write := func(addr uint16, v uint8) { p.writeRegister(addr&0x2007, v) }
	cpuBus.SetReadRange(0x2000, 0x4000, read)
	cpuBus.SetWriteRange(0x2000, 0x4000, write)
}

// bindPalette installs the PPU's internal 32-byte palette RAM onto the PPU
// bus at $3F00-$3FFF, with the background-color mirror quirk (writes to
// $3F10/$14/$18/$1C also appear at $3F00/$04/$08/$0C and vice versa).
func (p *PPU) bindPalette() {
	p.Bus.SetReadRange(0x3F00, 0x4000, func(addr uint16) uint8 {
		return p.readPalette(uint8(addr & 0x1F))
	})
	p.Bus.SetWriteRange(0x3F00, 0x4000, func(addr uint16, v uint8) {
		p.palette[paletteIndex(uint8(addr&0x1F))] = v & 0x3F
	})
}

func paletteIndex(addr uint8) uint8 {
	addr &= 0x1F
	if addr&0x13 == 0x10 {
		addr &^= 0x10
	}
	return addr
}

func (p *PPU) readPalette(addr uint8) uint8 { return p.palette[paletteIndex(addr)] }

func (p *PPU) readRegister(addr uint16) uint8 {
	switch addr {
	case 0x2002:
		v := p.status
		p.status &^= 0x80
		p.w = false
		if p.scanline == p.geo.vblankStartLine && p.dot <= 1 {
			p.suppressVBLOnce = true
		}
		return v
	case 0x2004:
		return p.oam[p.oamAddr]
	case 0x2007:
		var v uint8
		if p.v&0x3FFF >= 0x3F00 {
			v = p.Bus.Read(p.v & 0x3FFF)
			p.readBuffer = p.Bus.Read((p.v & 0x3FFF) - 0x1000)
		} else {
			v = p.readBuffer
			p.readBuffer = p.Bus.Read(p.v & 0x3FFF)
		}
		p.incrementVRAMAddr()
		return v
	default:
		return 0
	}
}

func (p *PPU) writeRegister(addr uint16, v uint8) {
	switch addr {
	case 0x2000:
		p.ctrl = v
		p.t = (p.t &^ 0x0C00) | (uint16(v&0x03) << 10)
	case 0x2001:
		p.mask = v
	case 0x2003:
		p.oamAddr = v
	case 0x2004:
		p.oam[p.oamAddr] = v
		p.oamAddr++
	case 0x2005:
		if !p.w {
			p.x = v & 0x07
			p.t = (p.t &^ 0x001F) | uint16(v>>3)
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(v&0x07) << 12) | (uint16(v&0xF8) << 2)
		}
		p.w = !p.w
	case 0x2006:
		if !p.w {
			p.t = (p.t &^ 0x7F00) | (uint16(v&0x3F) << 8)
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(v)
			p.v = p.t
		}
		p.w = !p.w
	case 0x2007:
		p.Bus.Write(p.v&0x3FFF, v)
		p.incrementVRAMAddr()
	}
}

func (p *PPU) incrementVRAMAddr() {
	if p.ctrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
}
