package cartridge

import "github.com/rng999/gones/internal/bus"

func init() { register(7, newAxROM) }

// axrom is mapper 7: a single switchable 32KiB PRG bank, single-screen
// nametable mirroring selected by the same register's bit 4.
type axrom struct {
	base
	bank uint8
}

func newAxROM(rom *ROM) Mapper { return &axrom{base: newBase(rom)} }

func (m *axrom) Reset() { m.bank = 0 }

func (m *axrom) mirror() Mirror {
	if m.bank&0x10 != 0 {
		return MirrorSingleB
	}
	return MirrorSingleA
}

func (m *axrom) ApplyMap(cpuBus, ppuBus *bus.Bus) {
	banks := m.prgBanks(32768)
	cpuBus.SetReadRange(0x8000, 0x10000, func(addr uint16) uint8 {
		bank := bankIndex(int(m.bank&0x07), banks)
		return m.prg[bank*32768+int(addr-0x8000)]
	})
	cpuBus.SetWriteRange(0x8000, 0x10000, func(_ uint16, v uint8) { m.bank = v })

	ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[addr] })
	ppuBus.SetWriteRange(0x0000, 0x2000, func(addr uint16, v uint8) {
		if m.hasCHRRAM {
			m.chr[addr] = v
		}
	})

	bindNametables(ppuBus, &m.nt, m.mirror)
}
