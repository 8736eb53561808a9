package scheduler

import "time"

// State is the exported snapshot of the scheduler's master/component
// counters for save states (spec.md §6's `scheduler_counters`). Wall-clock
// pacing state (accumWall/lastWall) is deliberately excluded: it resets
// naturally from the first Advance call after a restore, the same way a
// freshly started host resets it today.
type State struct {
	MasterCounter uint64
	CPUCounter    uint64
	PPUCounter    uint64
	APUCounter    uint64
}

// Snapshot captures the master and per-component counters.
func (s *Scheduler) Snapshot() State {
	return State{
		MasterCounter: s.masterCounter,
		CPUCounter:    s.cpu.counter,
		PPUCounter:    s.ppu.counter,
		APUCounter:    s.apu.counter,
	}
}

// Restore installs a previously captured State. Divisors (cpu.div/ppu.div/
// apu.div) are fixed by the region passed to New and are not part of the
// snapshot.
func (s *Scheduler) Restore(st State) {
	s.masterCounter = st.MasterCounter
	s.cpu.counter = st.CPUCounter
	s.ppu.counter = st.PPUCounter
	s.apu.counter = st.APUCounter
	s.accumWall = 0
	s.lastWall = time.Time{}
}
