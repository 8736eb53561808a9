package scheduler

import "testing"

type fakeTicker struct{}

func (fakeTicker) Step() {}
func (fakeTicker) Tick() {}

func newTestScheduler() *Scheduler {
	return New(NTSC, fakeTicker{}, fakeTicker{}, fakeTicker{}, fakeTicker{})
}

func TestSchedulerSnapshotRestoreRoundTrip(t *testing.T) {
	s := newTestScheduler()

	s.masterCounter = 555
	s.cpu.counter = 10
	s.ppu.counter = 20
	s.apu.counter = 30

	snap := s.Snapshot()

	s.masterCounter = 0
	s.cpu.counter, s.ppu.counter, s.apu.counter = 0, 0, 0

	s.Restore(snap)

	if s.masterCounter != 555 {
		t.Errorf("masterCounter = %d, want 555", s.masterCounter)
	}
	if s.cpu.counter != 10 || s.ppu.counter != 20 || s.apu.counter != 30 {
		t.Errorf("component counters = %d/%d/%d, want 10/20/30", s.cpu.counter, s.ppu.counter, s.apu.counter)
	}
	if !s.lastWall.IsZero() {
		t.Error("Restore should reset lastWall so Advance re-initializes pacing")
	}
}

func TestSchedulerRunCyclesAdvancesCPUCounter(t *testing.T) {
	s := newTestScheduler()
	s.RunCycles(100)
	want := 100 * s.cpu.div
	if s.cpu.counter != want {
		t.Errorf("cpu.counter = %d, want %d", s.cpu.counter, want)
	}
}
