package console

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/rng999/gones/internal/apu"
	"github.com/rng999/gones/internal/bus"
	"github.com/rng999/gones/internal/cartridge"
	"github.com/rng999/gones/internal/cpu"
	"github.com/rng999/gones/internal/debug"
	"github.com/rng999/gones/internal/input"
	"github.com/rng999/gones/internal/ppu"
	"github.com/rng999/gones/internal/savestate"
	"github.com/rng999/gones/internal/scheduler"
)

// System is the top-level wiring of one running cartridge: a CPU bus, a
// PPU bus, the three processors, the cartridge mapper, the scheduler that
// interleaves them, and the two controller ports (see DESIGN.md).
type System struct {
	CPUBus *bus.Bus
	PPUBus *bus.Bus

	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU

	Mapper cartridge.Mapper
	rom    *cartridge.ROM

	Scheduler *scheduler.Scheduler
	Input     *input.InputState

	Config *Config
	Trace  *debug.Tracer
}

// New parses and loads romData, builds every component, and wires them
// onto the shared buses per spec.md §3.1/§4.1/§6. It returns
// cartridge.ErrRomInvalid or cartridge.ErrMapperUnsupported unchanged so
// callers can match them with errors.Is.
func New(cfg *Config, romData []byte) (*System, error) {
	rom, err := cartridge.LoadINES(bytes.NewReader(romData))
	if err != nil {
		return nil, err
	}
	if mismatched, hint := cartridge.RegionMismatch(rom, cfg.Region); mismatched {
		fmt.Fprintf(os.Stderr, "console: requested region does not match ROM header hint %v; using requested region\n", hint)
	}

	mapper, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	mapper.ApplyMap(cpuBus, ppuBus)

	c := cpu.New(cpuBus)
	c.Cfg = cfg.cpuConfig()

	pRegion := ppuRegionFor(cfg.Region)
	p := ppu.New(ppuBus, pRegion)
	p.AttachRegisters(cpuBus)
	p.NMILine = c.SetNMILine

	a := apu.New(c, apuRegionFor(cfg.Region))
	a.AttachRegisters(cpuBus)
	a.Mapper = mapper

	inputState := input.NewInputState()
	cpuBus.SetRead(0x4016, func(uint16) uint8 { return inputState.Read(0x4016) })
	cpuBus.SetRead(0x4017, func(uint16) uint8 { return inputState.Read(0x4017) })
	cpuBus.SetWrite(0x4016, func(_ uint16, v uint8) { inputState.Write(0x4016, v) })

	cpuBus.SetWrite(0x4014, func(_ uint16, v uint8) { c.RequestOAMDMA(v) })

	// cartridge.Mapper's Tick method already satisfies scheduler.MapperTicker;
	// mappers with no IRQ counter (NROM, UxROM, CNROM, AxROM) simply have a
	// no-op Tick.
	sched := scheduler.New(schedulerRegion(cfg.Region), c, p, a, mapper)

	sys := &System{
		CPUBus: cpuBus, PPUBus: ppuBus,
		CPU: c, PPU: p, APU: a,
		Mapper: mapper, rom: rom,
		Scheduler: sched, Input: inputState,
		Config: cfg,
		Trace:  debug.NewTracer(os.Stderr, cfg.DebugTrace),
	}
	sys.syncMapperIRQ()
	sys.Reset()
	return sys, nil
}

// Reset triggers the CPU's reset sequence and restores each component's
// own known state, per spec.md §5. Bus wiring (mapper banking, register
// windows) is bound once in New and is untouched here — real hardware's
// RESET line doesn't disconnect the cartridge or re-route the address
// bus, and work RAM contents likewise survive a reset.
func (s *System) Reset() {
	s.CPU.ResetToKnown()
	s.PPU.Reset()
	s.APU.Reset()
	s.Mapper.Reset()
	s.Input.Reset()
	s.Scheduler.Reset()
}

// RunFrame advances the system until the PPU reports one completed frame.
func (s *System) RunFrame() {
	done := false
	prevReady := s.PPU.FrameReady
	s.PPU.FrameReady = func() {
		if prevReady != nil {
			prevReady()
		}
		done = true
	}
	defer func() { s.PPU.FrameReady = prevReady }()

	for !done {
		s.Scheduler.RunCycles(1)
		s.syncMapperIRQ()
	}
}

// Advance drives the scheduler by wall-clock time, for hosts that pace
// themselves off a real-time loop (ebiten, TUI) rather than by frame
// count.
func (s *System) Advance(wall time.Time) int {
	n := s.Scheduler.Advance(wall)
	s.syncMapperIRQ()
	return n
}

// syncMapperIRQ pushes the mapper's IRQ line onto the CPU's bitmask, the
// same push model internal/apu uses for its own IRQ sources.
func (s *System) syncMapperIRQ() {
	s.CPU.SetIRQLine(cpu.IRQSourceMapper, s.Mapper.IRQ())
}

func ppuRegionFor(r cartridge.Region) ppu.Region {
	switch r {
	case cartridge.RegionPAL:
		return ppu.PAL
	case cartridge.RegionDendy:
		return ppu.Dendy
	default:
		return ppu.NTSC
	}
}

func apuRegionFor(r cartridge.Region) apu.Region {
	if r == cartridge.RegionNTSC {
		return apu.NTSC
	}
	// Dendy's APU behaves like PAL's (same CPU clock family); see
	// internal/scheduler's Dendy caveat for the same tradeoff.
	return apu.PAL
}

// SaveState captures a full savestate.Record for the running system.
func (s *System) SaveState() savestate.Record {
	mapperState := []byte(nil)
	if saver, ok := s.Mapper.(cartridge.StateSaver); ok {
		if b, err := saver.SaveState(); err == nil {
			mapperState = b
		}
	}
	workRAM := s.CPUBus.PeekRange(0x0000, 0x0800)
	return savestate.Record{
		Region:      uint8(s.Config.Region),
		CPU:         s.CPU.Snapshot(),
		PPU:         s.PPU.Snapshot(),
		APU:         s.APU.Snapshot(),
		Scheduler:   s.Scheduler.Snapshot(),
		WorkRAM:     workRAM,
		MapperState: mapperState,
		BusFloat:    s.CPUBus.GetFloat(),
	}
}

// LoadState restores a System from a previously captured Record.
func (s *System) LoadState(rec savestate.Record) error {
	s.CPU.Restore(rec.CPU)
	s.PPU.Restore(rec.PPU)
	s.APU.Restore(rec.APU)
	s.Scheduler.Restore(rec.Scheduler)
	s.CPUBus.CopyToMemory(rec.WorkRAM, 0x0000)
	s.CPUBus.SetFloat(rec.BusFloat)
	if saver, ok := s.Mapper.(cartridge.StateSaver); ok && rec.MapperState != nil {
		if err := saver.LoadState(rec.MapperState); err != nil {
			return fmt.Errorf("console: mapper state: %w", err)
		}
	}
	s.syncMapperIRQ()
	return nil
}
