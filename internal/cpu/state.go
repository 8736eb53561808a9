package cpu

// State is the exported, gob-encodable snapshot of CPU register and
// interrupt-line state for save states (spec.md §6's `cpu_regs` and
// `cpu_internal_latches` fields). Snapshot/Restore only make sense at an
// instruction boundary (steps == nil, no DMA in flight); a caller that
// saves mid-instruction loses the partially executed opcode and resumes
// at its next fetch instead, the same tradeoff most cycle-accurate
// emulators accept rather than serializing a micro-op program counter.
type State struct {
	A, X, Y, S uint8
	PC         uint16

	C, Z, I, D, V, N bool

	NMILine     bool
	LastNMILine bool
	IRQLine     uint8

	Cycles uint64
}

// Snapshot captures the CPU's architectural register file and interrupt
// latches. Call only between instructions (immediately after a Step that
// completed one) for a restorable state.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, X: c.X, Y: c.Y, S: c.S, PC: c.PC,
		C: c.C, Z: c.Z, I: c.I, D: c.D, V: c.V, N: c.N,
		NMILine:     c.nmiLine,
		LastNMILine: c.lastNMILine,
		IRQLine:     c.irqLine,
		Cycles:      c.Cycles,
	}
}

// Restore installs a previously captured State and re-arms the
// instruction dispatch cursor to fetch fresh, per ResetAnalog's
// "resuming from a save state rather than a cold/hard reset" contract.
func (c *CPU) Restore(s State) {
	c.A, c.X, c.Y, c.S, c.PC = s.A, s.X, s.Y, s.S, s.PC
	c.C, c.Z, c.I, c.D, c.V, c.N = s.C, s.Z, s.I, s.D, s.V, s.N
	c.nmiLine, c.lastNMILine = s.NMILine, s.LastNMILine
	c.irqLine = s.IRQLine
	c.Cycles = s.Cycles
	c.dma = dmaState{}
	c.ResetAnalog()
}
