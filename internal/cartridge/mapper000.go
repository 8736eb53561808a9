package cartridge

import "github.com/rng999/gones/internal/bus"

func init() { register(0, newNROM) }

// nrom is mapper 0: fixed PRG (16KiB mirrored to fill the $8000-$FFFF
// window, or 32KiB filling it directly) and fixed 8KiB CHR, no registers.
type nrom struct {
	base
}

func newNROM(rom *ROM) Mapper {
	return &nrom{base: newBase(rom)}
}

func (m *nrom) Reset() {}

func (m *nrom) ApplyMap(cpuBus, ppuBus *bus.Bus) {
	cpuBus.SetReadRange(0x6000, 0x8000, func(addr uint16) uint8 { return m.prgRAM[addr-0x6000] })
	cpuBus.SetWriteRange(0x6000, 0x8000, func(addr uint16, v uint8) { m.prgRAM[addr-0x6000] = v })

	mask := uint16(len(m.prg) - 1)
	read := func(addr uint16) uint8 { return m.prg[(addr-0x8000)&mask] }
	cpuBus.SetReadRange(0x8000, 0x10000, read)
	cpuBus.SetWriteRange(0x8000, 0x10000, func(uint16, uint8) {})

	if m.hasCHRRAM {
		ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[addr] })
		ppuBus.SetWriteRange(0x0000, 0x2000, func(addr uint16, v uint8) { m.chr[addr] = v })
	} else {
		ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[addr] })
		ppuBus.SetWriteRange(0x0000, 0x2000, func(uint16, uint8) {})
	}

	bindNametables(ppuBus, &m.nt, func() Mirror { return m.mirror })
}
