package cartridge

import "github.com/rng999/gones/internal/bus"

func init() { register(2, newUxROM) }

// uxrom is mapper 2: a single switchable 16KiB bank at $8000-$BFFF, fixed
// last 16KiB bank at $C000-$FFFF, 8KiB CHR-RAM.
type uxrom struct {
	base
	bank uint8
}

func newUxROM(rom *ROM) Mapper { return &uxrom{base: newBase(rom)} }

func (m *uxrom) Reset() { m.bank = 0 }

func (m *uxrom) ApplyMap(cpuBus, ppuBus *bus.Bus) {
	cpuBus.SetReadRange(0x6000, 0x8000, func(addr uint16) uint8 { return m.prgRAM[addr-0x6000] })
	cpuBus.SetWriteRange(0x6000, 0x8000, func(addr uint16, v uint8) { m.prgRAM[addr-0x6000] = v })

	banks := m.prgBanks(16384)
	cpuBus.SetReadRange(0x8000, 0xC000, func(addr uint16) uint8 {
		bank := bankIndex(int(m.bank), banks)
		return m.prg[bank*16384+int(addr-0x8000)]
	})
	lastBank := (banks - 1) * 16384
	cpuBus.SetReadRange(0xC000, 0x10000, func(addr uint16) uint8 { return m.prg[lastBank+int(addr-0xC000)] })
	cpuBus.SetWriteRange(0x8000, 0x10000, func(_ uint16, v uint8) { m.bank = v })

	ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[addr] })
	ppuBus.SetWriteRange(0x0000, 0x2000, func(addr uint16, v uint8) {
		if m.hasCHRRAM {
			m.chr[addr] = v
		}
	})

	bindNametables(ppuBus, &m.nt, func() Mirror { return m.mirror })
}
