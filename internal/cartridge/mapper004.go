package cartridge

import "github.com/rng999/gones/internal/bus"

func init() { register(4, newMMC3) }

// mmc3 is mapper 4: eight bank registers R0-R7 selected by an even/odd
// write pair at $8000/$8001, independently swappable PRG and CHR window
// layouts, plus a scanline IRQ counter clocked from PPU A12 rises
// (approximated here via ScanlineTicker, see mapper.go).
type mmc3 struct {
	base

	bankSelect uint8
	reg        [8]uint8
	mirrorBit  uint8

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqPending bool
}

func newMMC3(rom *ROM) Mapper { return &mmc3{base: newBase(rom)} }

func (m *mmc3) Reset() {
	m.bankSelect = 0
	m.reg = [8]uint8{}
	m.irqLatch, m.irqCounter = 0, 0
	m.irqReload, m.irqEnabled, m.irqPending = false, false, false
}

func (m *mmc3) IRQ() bool { return m.irqPending }

// TickScanline implements cartridge.ScanlineTicker.
func (m *mmc3) TickScanline() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) writeRegister(addr uint16, val uint8) {
	even := addr&1 == 0
	switch {
	case addr < 0xA000:
		if even {
			m.bankSelect = val
		} else {
			m.reg[m.bankSelect&0x07] = val
		}
	case addr < 0xC000:
		if even {
			m.mirrorBit = val & 0x01
		}
		// $A001 PRG-RAM protect is accepted but this module always allows
		// PRG-RAM read/write (no copy-protection games depend on denial).
	case addr < 0xE000:
		if even {
			m.irqLatch = val
		} else {
			m.irqReload = true
		}
	default:
		if even {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) mirror() Mirror {
	if m.mirrorBit == 0 {
		return MirrorVertical
	}
	return MirrorHorizontal
}

func (m *mmc3) prgOffset(addr uint16) int {
	banks8k := m.prgBanks(8192)
	last := banks8k - 1
	secondLast := last - 1
	r6 := bankIndex(int(m.reg[6]&0x3F), banks8k)
	r7 := bankIndex(int(m.reg[7]&0x3F), banks8k)

	window := int(addr-0x8000) / 8192
	offsetInWindow := int(addr-0x8000) % 8192

	var bank int
	switch window {
	case 0:
		if m.bankSelect&0x40 == 0 {
			bank = r6
		} else {
			bank = secondLast
		}
	case 1:
		bank = r7
	case 2:
		if m.bankSelect&0x40 == 0 {
			bank = secondLast
		} else {
			bank = r6
		}
	default:
		bank = last
	}
	return bank*8192 + offsetInWindow
}

func (m *mmc3) chrOffset(addr uint16) int {
	banks1k := m.chrBanks(1024)
	r := func(i int, evenMask bool) int {
		v := int(m.reg[i])
		if evenMask {
			v &= 0xFE
		}
		return bankIndex(v, banks1k)
	}

	invert := m.bankSelect&0x80 != 0
	a := int(addr)
	if invert {
		a ^= 0x1000
	}
	switch {
	case a < 0x0800:
		return (r(0, true)+a/1024)*1024 + a%1024
	case a < 0x1000:
		return (r(1, true)+(a-0x0800)/1024)*1024 + a%1024
	case a < 0x1400:
		return r(2, false)*1024 + (a - 0x1000)
	case a < 0x1800:
		return r(3, false)*1024 + (a - 0x1400)
	case a < 0x1C00:
		return r(4, false)*1024 + (a - 0x1800)
	default:
		return r(5, false)*1024 + (a - 0x1C00)
	}
}

func (m *mmc3) ApplyMap(cpuBus, ppuBus *bus.Bus) {
	cpuBus.SetReadRange(0x6000, 0x8000, func(addr uint16) uint8 { return m.prgRAM[addr-0x6000] })
	cpuBus.SetWriteRange(0x6000, 0x8000, func(addr uint16, v uint8) { m.prgRAM[addr-0x6000] = v })

	cpuBus.SetReadRange(0x8000, 0x10000, func(addr uint16) uint8 {
		return m.prg[m.prgOffset(addr)%len(m.prg)]
	})
	cpuBus.SetWriteRange(0x8000, 0x10000, func(addr uint16, v uint8) { m.writeRegister(addr, v) })

	if m.hasCHRRAM {
		ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[m.chrOffset(addr)%len(m.chr)] })
		ppuBus.SetWriteRange(0x0000, 0x2000, func(addr uint16, v uint8) { m.chr[m.chrOffset(addr)%len(m.chr)] = v })
	} else {
		ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[m.chrOffset(addr)%len(m.chr)] })
		ppuBus.SetWriteRange(0x0000, 0x2000, func(uint16, uint8) {})
	}

	bindNametables(ppuBus, &m.nt, m.mirror)
}
