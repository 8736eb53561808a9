package cartridge

import "github.com/rng999/gones/internal/bus"

func init() { register(3, newCNROM) }

// cnrom is mapper 3: fixed PRG (16 or 32KiB, mirrored like NROM), switchable
// 8KiB CHR-ROM bank selected by any write to $8000-$FFFF.
type cnrom struct {
	base
	chrSelect uint8
}

func newCNROM(rom *ROM) Mapper { return &cnrom{base: newBase(rom)} }

func (m *cnrom) Reset() { m.chrSelect = 0 }

func (m *cnrom) ApplyMap(cpuBus, ppuBus *bus.Bus) {
	cpuBus.SetReadRange(0x6000, 0x8000, func(addr uint16) uint8 { return m.prgRAM[addr-0x6000] })
	cpuBus.SetWriteRange(0x6000, 0x8000, func(addr uint16, v uint8) { m.prgRAM[addr-0x6000] = v })

	mask := uint16(len(m.prg) - 1)
	cpuBus.SetReadRange(0x8000, 0x10000, func(addr uint16) uint8 { return m.prg[(addr-0x8000)&mask] })
	cpuBus.SetWriteRange(0x8000, 0x10000, func(_ uint16, v uint8) { m.chrSelect = v })

	banks := m.chrBanks(8192)
	ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 {
		bank := bankIndex(int(m.chrSelect&0x03), banks)
		return m.chr[bank*8192+int(addr)]
	})
	ppuBus.SetWriteRange(0x0000, 0x2000, func(uint16, uint8) {})

	bindNametables(ppuBus, &m.nt, func() Mirror { return m.mirror })
}
