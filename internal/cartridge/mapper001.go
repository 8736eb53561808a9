package cartridge

import "github.com/rng999/gones/internal/bus"

func init() { register(1, newMMC1) }

// mmc1 is mapper 1: a 5-bit serial shift register loaded one bit per write
// (LSB first) to $8000-$FFFF; the fifth write latches into one of four
// internal registers selected by the address's bits 13-14 (control,
// CHR bank 0, CHR bank 1, PRG bank). A write with bit 7 set resets the
// shift register and forces PRG mode 3 (fixed last bank, switch $8000),
// regardless of which address received it.
type mmc1 struct {
	base

	shift    uint8
	shiftLen int

	control uint8 // bit0-1 mirroring, bit2-3 PRG mode, bit4 CHR mode
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8
}

func newMMC1(rom *ROM) Mapper {
	m := &mmc1{base: newBase(rom)}
	m.control = 0x0C
	return m
}

func (m *mmc1) Reset() {
	m.shift = 0
	m.shiftLen = 0
	m.control = 0x0C
	m.chrBank0, m.chrBank1, m.prgBank = 0, 0, 0
}

func (m *mmc1) mirror() Mirror {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleA
	case 1:
		return MirrorSingleB
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

func (m *mmc1) write(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.shift = 0
		m.shiftLen = 0
		m.control |= 0x0C
		return
	}
	m.shift |= (val & 1) << uint(m.shiftLen)
	m.shiftLen++
	if m.shiftLen < 5 {
		return
	}
	result := m.shift
	m.shift, m.shiftLen = 0, 0

	switch {
	case addr < 0xA000:
		m.control = result
	case addr < 0xC000:
		m.chrBank0 = result
	case addr < 0xE000:
		m.chrBank1 = result
	default:
		m.prgBank = result
	}
}

func (m *mmc1) prgOffset(addr uint16) int {
	bank16 := bankIndex(int(m.prgBank&0x0F), m.prgBanks(16384))
	switch (m.control >> 2) & 0x03 {
	case 0, 1:
		// 32KiB mode: ignore low bit of the bank number.
		bank32 := bankIndex(int(m.prgBank&0x0E)>>1, m.prgBanks(32768))
		return bank32*32768 + int(addr-0x8000)
	case 2:
		// Fix first bank at $8000, switch 16KiB at $C000.
		if addr < 0xC000 {
			return int(addr - 0x8000)
		}
		return bank16*16384 + int(addr-0xC000)
	default:
		// Fix last bank at $C000, switch 16KiB at $8000.
		if addr < 0xC000 {
			return bank16*16384 + int(addr-0x8000)
		}
		return (m.prgBanks(16384)-1)*16384 + int(addr-0xC000)
	}
}

func (m *mmc1) chrOffset(addr uint16) int {
	if m.control&0x10 == 0 {
		bank := bankIndex(int(m.chrBank0&0x1E)>>1, m.chrBanks(8192))
		return bank*8192 + int(addr)
	}
	if addr < 0x1000 {
		bank := bankIndex(int(m.chrBank0), m.chrBanks(4096))
		return bank*4096 + int(addr)
	}
	bank := bankIndex(int(m.chrBank1), m.chrBanks(4096))
	return bank*4096 + int(addr-0x1000)
}

func (m *mmc1) ApplyMap(cpuBus, ppuBus *bus.Bus) {
	cpuBus.SetReadRange(0x6000, 0x8000, func(addr uint16) uint8 { return m.prgRAM[addr-0x6000] })
	cpuBus.SetWriteRange(0x6000, 0x8000, func(addr uint16, v uint8) { m.prgRAM[addr-0x6000] = v })

	cpuBus.SetReadRange(0x8000, 0x10000, func(addr uint16) uint8 {
		off := m.prgOffset(addr) % len(m.prg)
		return m.prg[off]
	})
	cpuBus.SetWriteRange(0x8000, 0x10000, func(addr uint16, v uint8) { m.write(addr, v) })

	if m.hasCHRRAM {
		ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[m.chrOffset(addr)%len(m.chr)] })
		ppuBus.SetWriteRange(0x0000, 0x2000, func(addr uint16, v uint8) { m.chr[m.chrOffset(addr)%len(m.chr)] = v })
	} else {
		ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[m.chrOffset(addr)%len(m.chr)] })
		ppuBus.SetWriteRange(0x0000, 0x2000, func(uint16, uint8) {})
	}

	bindNametables(ppuBus, &m.nt, m.mirror)
}
