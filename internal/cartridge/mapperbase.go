package cartridge

// base holds the fields and default (no-op) behavior shared by every
// mapper: the immutable ROM arrays, mutable RAM, and the PPU nametables.
// Concrete mappers embed base and override only what they actually do,
// the way the source's per-mapper classes each derive from a common
// cartridge-board base.
type base struct {
	prg []uint8
	chr []uint8

	prgRAM    []uint8
	hasCHRRAM bool

	mirror Mirror
	nt     nameTables
}

func newBase(rom *ROM) base {
	prgRAMSize := rom.PRGRAMSize
	if prgRAMSize == 0 {
		prgRAMSize = 8192
	}
	return base{
		prg:       rom.PRG,
		chr:       rom.CHR,
		prgRAM:    make([]uint8, prgRAMSize),
		hasCHRRAM: rom.HasCHRRAM,
		mirror:    rom.Mirror,
	}
}

func (b *base) prgBanks(size int) int {
	if size == 0 {
		return 1
	}
	return len(b.prg) / size
}

func (b *base) chrBanks(size int) int {
	if b.hasCHRRAM || size == 0 {
		return 1
	}
	return len(b.chr) / size
}

// Default Mapper methods shared by boards without IRQ counters or
// expansion audio.
func (b *base) Tick()                                              {}
func (b *base) IRQ() bool                                          { return false }
func (b *base) ExtAudioSample(mixed float32) float32               { return mixed }
func (b *base) PostProcessSample(s float32, outHz float64) float32 { return s }

func (b *base) staticMirror() Mirror { return b.mirror }
