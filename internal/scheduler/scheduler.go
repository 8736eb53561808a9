// Package scheduler interleaves the CPU, PPU, and APU at integer
// master-clock ratios, paced by wall-clock time, per spec.md §4.6.
package scheduler

import "time"

// Region selects the master-clock ratios. Mirrors ppu.Region/apu.Region
// (kept as a separate type since the scheduler is the only package that
// needs the crystal/divider numbers, not the channel/geometry logic those
// packages carry).
type Region int

const (
	NTSC Region = iota
	PAL
	Dendy
)

// timing holds one region's integer master-clock ratios. cpu_div/ppu_div/
// apu_div are each component's per-tick counter increment: the component
// with the smaller div reaches any given master_counter value in more
// ticks, i.e. runs proportionally faster. apu_div equals cpu_div because
// this module's APU clocks its frame counter and channel timers once per
// CPU cycle (see internal/apu's doc comment), not once per true half-rate
// APU cycle.
type timing struct {
	masterHz uint64
	cpuDiv   uint64
	ppuDiv   uint64
	apuDiv   uint64
}

func timingFor(r Region) timing {
	switch r {
	case PAL:
		// 26601712 Hz crystal / 16 = 1.662607 MHz CPU; / 5 = 5.320342 MHz PPU (3.2 dots/cycle).
		return timing{masterHz: 26601712, cpuDiv: 16, ppuDiv: 5, apuDiv: 16}
	case Dendy:
		// Dendy clones run the CPU at the PAL-ish rate but the PPU at a 3.0 dots/cycle ratio.
		// Not pack-grounded (no example models Dendy); commonly documented hobbyist values.
		return timing{masterHz: 26601712, cpuDiv: 15, ppuDiv: 5, apuDiv: 15}
	default:
		// 236.25/11 MHz crystal / 12 = 1.789773 MHz CPU; / 4 = 5.369318 MHz PPU (3.0 dots/cycle).
		return timing{masterHz: 21477272, cpuDiv: 12, ppuDiv: 4, apuDiv: 12}
	}
}

// CPUTicker advances the CPU by exactly one bus cycle.
type CPUTicker interface{ Step() }

// PPUTicker advances the PPU by exactly one dot.
type PPUTicker interface{ Tick() }

// APUTicker advances the APU by exactly one cycle.
type APUTicker interface{ Step() }

// MapperTicker is driven once per CPU cycle for mappers with a CPU-cycle
// IRQ counter (mapper 069). Mappers without one still receive the call;
// Tick is a no-op for them.
type MapperTicker interface{ Tick() }

type component struct {
	counter uint64
	div     uint64
}

// Scheduler owns the master/component counters and wall-clock pacing
// state described in spec.md §3.6/§4.6.
type Scheduler struct {
	t timing

	masterCounter uint64
	cpu, ppu, apu component

	accumWall time.Duration
	lastWall  time.Time

	cpuComp    CPUTicker
	ppuComp    PPUTicker
	apuComp    APUTicker
	mapperComp MapperTicker
}

// New constructs a Scheduler driving cpu/ppu/apu/mapper at region's
// integer ratios. mapper may be nil for mappers with no IRQ counter.
func New(region Region, cpu CPUTicker, ppu PPUTicker, apu APUTicker, mapper MapperTicker) *Scheduler {
	t := timingFor(region)
	return &Scheduler{
		t:          t,
		cpu:        component{div: t.cpuDiv},
		ppu:        component{div: t.ppuDiv},
		apu:        component{div: t.apuDiv},
		cpuComp:    cpu,
		ppuComp:    ppu,
		apuComp:    apu,
		mapperComp: mapper,
	}
}

// Reset zeroes the counters and wall-clock accumulator, per spec.md §5's
// "transitions the core to a known state between frames only."
func (s *Scheduler) Reset() {
	s.masterCounter = 0
	s.cpu.counter, s.ppu.counter, s.apu.counter = 0, 0, 0
	s.accumWall = 0
	s.lastWall = time.Time{}
}

// Advance runs the scheduler against the supplied wall-clock sample,
// dispatching every component tick that master_counter now covers, and
// returns how many ticks ran. Pass time.Now() from the host's main loop.
func (s *Scheduler) Advance(wall time.Time) int {
	if s.lastWall.IsZero() {
		s.lastWall = wall
	}
	s.accumWall += wall.Sub(s.lastWall)
	s.lastWall = wall

	// master_div is folded into masterHz for every region above (it is
	// always 1 at this crystal/divider granularity), so the invariant in
	// spec.md §3.6 reduces to accum_wall × master_hz / resolution.
	s.masterCounter = uint64(s.accumWall) * s.t.masterHz / uint64(time.Second)

	ticks := 0
	for s.tickOnce() {
		ticks++
	}
	return ticks
}

// RunCycles drives the scheduler directly by CPU-cycle count, ignoring
// wall-clock pacing entirely. Used by tests and by save-state-driven
// fast-forward, where the caller wants an exact number of CPU steps; PPU
// and APU still run interleaved at their normal ratios to reach there.
func (s *Scheduler) RunCycles(n uint64) {
	target := s.cpu.counter + n*s.cpu.div
	for s.cpu.counter < target {
		if s.masterCounter < s.cpu.counter {
			s.masterCounter = s.cpu.counter
		}
		s.tickOnce()
	}
	// The CPU runs first on equal counters, so PPU and APU are still
	// behind the last CPU cycle here; let them catch up to it.
	if n > 0 {
		if s.masterCounter < target-1 {
			s.masterCounter = target - 1
		}
		for s.tickOnce() {
		}
	}
}

// tickOnce advances the single most-due component (counter <= master
// counter, minimal among the three, ties broken CPU, PPU, APU) and
// reports whether anything ran.
func (s *Scheduler) tickOnce() bool {
	counters := [3]uint64{s.cpu.counter, s.ppu.counter, s.apu.counter}
	due := -1
	for i, c := range counters {
		if c > s.masterCounter {
			continue
		}
		if due == -1 || c < counters[due] {
			due = i
		}
	}
	if due == -1 {
		return false
	}
	switch due {
	case 0:
		s.cpuComp.Step()
		if s.mapperComp != nil {
			s.mapperComp.Tick()
		}
		s.cpu.counter += s.cpu.div
	case 1:
		s.ppuComp.Tick()
		s.ppu.counter += s.ppu.div
	case 2:
		s.apuComp.Step()
		s.apu.counter += s.apu.div
	}
	return true
}
