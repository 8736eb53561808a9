package cartridge

import (
	"fmt"

	"github.com/rng999/gones/internal/bus"
)

// Mapper is the contract the Scheduler and the CPU/PPU buses see, per
// spec.md §4.2. A Mapper owns the cartridge's immutable ROM and mutable RAM
// arrays and binds CPU/PPU bus slots to route addresses into them.
type Mapper interface {
	// ApplyMap binds the CPU and PPU bus slots this mapper is responsible
	// for: PRG-RAM/PRG-ROM windows on cpuBus, CHR windows and nametable
	// routing on ppuBus.
	ApplyMap(cpuBus, ppuBus *bus.Bus)
	// Reset restores known bank-index state on a hard reset.
	Reset()
	// Tick is called once per CPU cycle; mappers whose IRQ counter counts
	// CPU cycles (mapper 069) clock it here. MMC3 keeps the no-op base Tick.
	Tick()
	// IRQ reports whether this mapper currently asserts the mapper IRQ
	// source bit.
	IRQ() bool
	// ExtAudioSample folds any cartridge expansion-audio channel into the
	// APU's mixed sample. Mappers without expansion audio return mixed
	// unchanged.
	ExtAudioSample(mixed float32) float32
	// PostProcessSample applies optional nonlinear per-sample shaping
	// (e.g. Sunsoft 5B's volume-crunch envelope). Mappers without such
	// shaping return sample unchanged.
	PostProcessSample(sample float32, outHz float64) float32
}

// New constructs the Mapper implementation for rom.MapperID, or
// ErrMapperUnsupported if none is registered.
func New(rom *ROM) (Mapper, error) {
	ctor, ok := registry[rom.MapperID]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d", ErrMapperUnsupported, rom.MapperID)
	}
	return ctor(rom), nil
}

// StateSaver is implemented by mappers whose bank-select state, PRG-RAM,
// and nametable RAM must survive a save state (spec.md §6's
// "mapper_state (opaque-per-mapper)"). Console wiring type-asserts for
// this and treats its absence as "nothing to persist" — every mapper in
// this module implements it, but a third-party mapper plugin need not.
type StateSaver interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}

// ScanlineTicker is implemented by mappers (MMC3 and its relatives) whose
// IRQ counter is clocked by PPU A12 rises rather than by CPU cycles. The
// PPU calls TickScanline once per visible/pre-render scanline, which is
// the edge-rate approximation §9's re-architecture notes permit in place
// of wiring true per-dot A12 transitions through the bus.
type ScanlineTicker interface {
	TickScanline()
}

var registry = map[uint8]func(*ROM) Mapper{}

func register(id uint8, ctor func(*ROM) Mapper) {
	registry[id] = ctor
}

// nameTables is the PPU's two physical 1 KiB nametables, plus cartridge-
// provided extra banks for four-screen boards (spec.md §4.2: "the PPU owns
// two physical nametables; additional ones, if present, are provided by
// the cartridge").
type nameTables struct {
	ram [0x1000]uint8 // 4 x 1KiB: slots 0-1 are PPU-internal, 2-3 are cart-provided (four-screen only)
}

// index resolves a $2000-$2FFF PPU address to an offset into ram per the
// mirroring mode, matching spec.md §4.2's "small lookup keyed by mirroring
// mode that maps each 1 KiB nametable slot to one of four 1 KiB backing
// arrays."
func (n *nameTables) index(mode Mirror, addr uint16) uint16 {
	addr &= 0x0FFF
	table := (addr >> 10) & 3
	offset := addr & 0x03FF
	switch mode {
	case MirrorHorizontal:
		if table >= 2 {
			return 0x400 + offset
		}
		return offset
	case MirrorVertical:
		if table == 1 || table == 3 {
			return 0x400 + offset
		}
		return offset
	case MirrorSingleA:
		return offset
	case MirrorSingleB:
		return 0x400 + offset
	case MirrorFourScreen:
		return table*0x400 + offset
	}
	return offset
}

// bindNametables programs ppuBus's $2000-$3EFF window (and its $3000-$3EFF
// mirror) to route through nt at the given, possibly-runtime-changeable,
// mirror mode. modeFn is called on every access so mappers that swap
// mirroring at runtime (MMC1) need only mutate their own stored mode.
func bindNametables(ppuBus *bus.Bus, nt *nameTables, modeFn func() Mirror) {
	read := func(addr uint16) uint8 {
		return nt.ram[nt.index(modeFn(), addr)]
	}
	write := func(addr uint16, val uint8) {
		nt.ram[nt.index(modeFn(), addr)] = val
	}
	ppuBus.SetReadRange(0x2000, 0x3000, read)
	ppuBus.SetWriteRange(0x2000, 0x3000, write)
	ppuBus.SetReadRange(0x3000, 0x3F00, func(addr uint16) uint8 { return read(addr - 0x1000) })
	ppuBus.SetWriteRange(0x3000, 0x3F00, func(addr uint16, val uint8) { write(addr-0x1000, val) })
}

// bankIndex sanitizes a raw bank-select value modulo the number of
// available banks, per spec.md §4.2's "out-of-range bank indices are
// sanitized modulo the number of banks at init and on every write."
func bankIndex(raw int, banks int) int {
	if banks <= 0 {
		return 0
	}
	raw %= banks
	if raw < 0 {
		raw += banks
	}
	return raw
}
