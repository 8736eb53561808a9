package scheduler

import "testing"

type countTicker struct{ n int }

func (c *countTicker) Step() { c.n++ }
func (c *countTicker) Tick() { c.n++ }

func TestRunCyclesAdvancesCPUExactly(t *testing.T) {
	cpu, ppu, apu := &countTicker{}, &countTicker{}, &countTicker{}
	s := New(NTSC, cpu, ppu, apu, nil)
	s.RunCycles(1000)
	if cpu.n != 1000 {
		t.Fatalf("cpu ticked %d times, want 1000", cpu.n)
	}
}

func TestRunCyclesKeepsPPURatioAtThreeToOne(t *testing.T) {
	cpu, ppu, apu := &countTicker{}, &countTicker{}, &countTicker{}
	s := New(NTSC, cpu, ppu, apu, nil)
	s.RunCycles(1000)
	if ppu.n != cpu.n*3 {
		t.Fatalf("ppu ticked %d times for %d cpu cycles, want exactly %d (3:1 NTSC ratio)", ppu.n, cpu.n, cpu.n*3)
	}
}

func TestRunCyclesTicksAPUOncePerCPUCycle(t *testing.T) {
	cpu, ppu, apu := &countTicker{}, &countTicker{}, &countTicker{}
	s := New(NTSC, cpu, ppu, apu, nil)
	s.RunCycles(500)
	if apu.n != cpu.n {
		t.Fatalf("apu ticked %d times for %d cpu cycles, want 1:1", apu.n, cpu.n)
	}
}

func TestMapperTickedOncePerCPUCycle(t *testing.T) {
	cpu, ppu, apu, mapper := &countTicker{}, &countTicker{}, &countTicker{}, &countTicker{}
	s := New(NTSC, cpu, ppu, apu, mapper)
	s.RunCycles(250)
	if mapper.n != cpu.n {
		t.Fatalf("mapper ticked %d times for %d cpu cycles, want 1:1", mapper.n, cpu.n)
	}
}

func TestResetClearsCounters(t *testing.T) {
	cpu, ppu, apu := &countTicker{}, &countTicker{}, &countTicker{}
	s := New(NTSC, cpu, ppu, apu, nil)
	s.RunCycles(100)
	s.Reset()
	if s.masterCounter != 0 || s.cpu.counter != 0 || s.ppu.counter != 0 || s.apu.counter != 0 {
		t.Fatal("Reset did not zero all counters")
	}
}
