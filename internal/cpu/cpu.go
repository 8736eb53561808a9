// Package cpu implements the Ricoh 2A03's 6502 core as a per-cycle
// micro-op state machine: each opcode is an ordered list of step functions,
// one bus access per CPU cycle, with interrupt polling and RDY/DMA handling
// modeled at the same granularity the hardware observes them.
package cpu

import "github.com/rng999/gones/internal/bus"

// AddressingMode names the 6502's operand-fetch shapes.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase = 0x0100

	nFlagMask  = 0x80
	vFlagMask  = 0x40
	unusedMask = 0x20
	bFlagMask  = 0x10
	dFlagMask  = 0x08
	iFlagMask  = 0x04
	zFlagMask  = 0x02
	cFlagMask  = 0x01

	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// IRQ source bits composing irqLine, per spec.md §3.3's "bitmask of sources".
const (
	IRQSourceFrame uint8 = 1 << iota
	IRQSourceDMC
	IRQSourceMapper
)

// Config holds the implementation-defined choices spec.md §9 leaves open.
type Config struct {
	// MagicConstant is the constant ORed into the unstable ANE and LXA
	// opcodes; the SHx family does not use it. 0xFF is the
	// common "normal mode" value; 0xEE is the documented "verify mode".
	MagicConstant uint8
}

// DefaultConfig returns the normal-mode magic constant.
func DefaultConfig() Config { return Config{MagicConstant: 0xFF} }

type step func(c *CPU)

// CPU is the 6502 micro-cycle engine. Bus is the CPU's 64 KiB address space;
// the caller (console wiring) installs RAM, PPU register, APU register, and
// cartridge handlers on it before the first Step.
type CPU struct {
	Bus *bus.Bus
	Cfg Config

	A, X, Y, S uint8
	PC         uint16

	// Status flags (U is always reported set; B is synthesized on push).
	C, Z, I, D, V, N bool

	opcode  uint8
	steps   []step
	stepIdx int

	// Latched operands, per spec.md §3.3.
	address uint16
	pointer uint16
	target  uint16
	operand uint8

	branchTaken     bool
	branchPageCross bool

	nmiLine     bool
	lastNMILine bool
	detectedNMI bool
	handleNMI   bool

	irqLine           uint8
	irqSeenLowPhi2    bool
	irqStatusPhi1Flag bool
	handleIRQ         bool

	resetPending bool

	dma dmaState

	// Cycles is the running CPU-cycle count, exposed for tests and for
	// OAM-DMA alignment (odd/even start parity).
	Cycles uint64
}

// New constructs a CPU wired to the given CPU-bus with default config.
// ResetToKnown must be called before the first Step.
func New(b *bus.Bus) *CPU {
	return &CPU{Bus: b, Cfg: DefaultConfig()}
}

// ResetToKnown zeroes registers and arms the reset sequence, per spec.md
// §3.3's "reset_to_known zeroes registers and sets the reset flag."
func (c *CPU) ResetToKnown() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0
	c.C, c.Z, c.D, c.V, c.N = false, false, false, false, false
	c.I = true
	c.PC = 0
	c.opcode = 0
	c.steps = nil
	c.stepIdx = 0
	c.nmiLine, c.lastNMILine, c.detectedNMI, c.handleNMI = false, false, false, false
	c.irqLine, c.irqSeenLowPhi2, c.irqStatusPhi1Flag, c.handleIRQ = 0, false, false, false
	c.dma = dmaState{}
	c.resetPending = true
	c.Cycles = 0
}

// ResetAnalog leaves registers intact and reinstalls the dispatch cursor,
// per spec.md §3.3 — used when resuming from a save state rather than a
// cold/hard reset.
func (c *CPU) ResetAnalog() {
	c.steps = nil
	c.stepIdx = 0
}

// SetNMILine drives the external NMI line (level; edge-detected internally).
func (c *CPU) SetNMILine(asserted bool) { c.nmiLine = asserted }

// SetIRQLine asserts or clears one bit of the IRQ source bitmask.
func (c *CPU) SetIRQLine(source uint8, asserted bool) {
	if asserted {
		c.irqLine |= source
	} else {
		c.irqLine &^= source
	}
}

// RDY reports whether the CPU is free-running (true) or halted for DMA.
func (c *CPU) RDY() bool { return !c.dma.active }

// status packs the flag bools into the P register byte. brk selects the B
// bit's value as pushed (set for PHP/BRK, clear for hardware interrupts).
func (c *CPU) status(brk bool) uint8 {
	var p uint8 = unusedMask
	if c.C {
		p |= cFlagMask
	}
	if c.Z {
		p |= zFlagMask
	}
	if c.I {
		p |= iFlagMask
	}
	if c.D {
		p |= dFlagMask
	}
	if brk {
		p |= bFlagMask
	}
	if c.V {
		p |= vFlagMask
	}
	if c.N {
		p |= nFlagMask
	}
	return p
}

func (c *CPU) setStatus(p uint8) {
	c.C = p&cFlagMask != 0
	c.Z = p&zFlagMask != 0
	c.I = p&iFlagMask != 0
	c.D = p&dFlagMask != 0
	c.V = p&vFlagMask != 0
	c.N = p&nFlagMask != 0
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

func (c *CPU) push(v uint8) {
	c.Bus.Write(stackBase+uint16(c.S), v)
	c.S--
}

func (c *CPU) pop() uint8 {
	c.S++
	return c.Bus.Read(stackBase + uint16(c.S))
}

// Step advances the CPU by exactly one bus cycle (one PHI1+PHI2 pair).
func (c *CPU) Step() {
	c.irqStatusPhi1Flag = c.irqSeenLowPhi2
	c.irqSeenLowPhi2 = false

	if c.dma.active || c.dma.pending != nil {
		c.tickDMA()
		c.endCycle()
		return
	}

	if c.steps == nil {
		c.fetch()
		c.endCycle()
		return
	}
	if c.stepIdx < len(c.steps) {
		st := c.steps[c.stepIdx]
		c.stepIdx++
		st(c)
	}
	if c.stepIdx >= len(c.steps) {
		c.pollAtBoundary()
		c.steps = nil
	}
	c.endCycle()
}

func (c *CPU) endCycle() {
	c.Cycles++
	nmiEdge := c.nmiLine && !c.lastNMILine
	c.detectedNMI = c.detectedNMI || nmiEdge
	c.lastNMILine = c.nmiLine
	c.irqSeenLowPhi2 = c.irqSeenLowPhi2 || c.irqLine != 0
}

// pollAtBoundary latches the interrupt-handling decision at an instruction
// boundary, per spec.md §4.3.2.
func (c *CPU) pollAtBoundary() {
	if !c.I {
		c.handleIRQ = c.irqStatusPhi1Flag
	}
	c.handleNMI = c.handleNMI || c.detectedNMI
}

// fetch reads the next opcode byte, substituting BRK (0x00) and suppressing
// the PC increment when a reset, NMI, or unmasked IRQ is pending, per
// spec.md §4.3.2's interrupt-injection paragraph.
func (c *CPU) fetch() {
	interrupting := c.resetPending || c.handleNMI || c.handleIRQ

	var opcode uint8
	if interrupting {
		opcode = 0x00
		c.Bus.Read(c.PC) // dummy fetch; PC does not advance
	} else {
		opcode = c.Bus.Read(c.PC)
		c.PC++
	}
	c.opcode = opcode
	c.stepIdx = 0
	c.steps = buildSteps(opcode, interrupting)
}

func (c *CPU) clearInterruptLatch() {
	if c.resetPending {
		c.resetPending = false
		return
	}
	if c.handleNMI {
		c.handleNMI = false
		c.detectedNMI = false
		return
	}
	c.handleIRQ = false
}
