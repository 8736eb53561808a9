package cpu

import (
	"testing"

	"github.com/rng999/gones/internal/bus"
)

func newTestCPU(t *testing.T) (*CPU, *bus.Bus) {
	t.Helper()
	b := bus.New(0x10000)
	c := New(b)
	c.ResetToKnown()
	// Consume the 7-cycle reset sequence.
	for i := 0; i < 7; i++ {
		c.Step()
	}
	return c, b
}

func loadAt(b *bus.Bus, addr uint16, code ...uint8) {
	for i, v := range code {
		b.Write(addr+uint16(i), v)
	}
}

func setResetVector(b *bus.Bus, addr uint16) {
	b.Write(0xFFFC, uint8(addr))
	b.Write(0xFFFD, uint8(addr>>8))
}

func runCycles(c *CPU, n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

func TestResetVectorsPC(t *testing.T) {
	b := bus.New(0x10000)
	setResetVector(b, 0x8000)
	c := New(b)
	c.ResetToKnown()
	runCycles(c, 7)
	if c.PC != 0x8000 {
		t.Fatalf("PC after reset = %#04x, want 0x8000", c.PC)
	}
	if !c.I {
		t.Fatal("I flag should be set after reset")
	}
}

func TestLDAImmediateAndFlags(t *testing.T) {
	b := bus.New(0x10000)
	setResetVector(b, 0x8000)
	loadAt(b, 0x8000, 0xA9, 0x00) // LDA #$00
	c := New(b)
	c.ResetToKnown()
	runCycles(c, 7+2)
	if c.A != 0 || !c.Z || c.N {
		t.Fatalf("A=%#02x Z=%v N=%v, want A=0 Z=true N=false", c.A, c.Z, c.N)
	}
}

// S1: write 0x42 to $0001, read $0801 (mirror of $0001) via the bus.
func TestRAMMirrorRoundTrip(t *testing.T) {
	b := bus.New(0x10000)
	b.SetReadRange(0, 0x2000, func(a uint16) uint8 { return b.Peek(a & 0x07FF) })
	b.SetWriteRange(0, 0x2000, func(a uint16, v uint8) {
		lo := a & 0x07FF
		b.CopyToMemory([]byte{v}, lo)
	})
	b.Write(0x0001, 0x42)
	if got := b.Read(0x0801); got != 0x42 {
		t.Fatalf("mirrored read = %#02x, want 0x42", got)
	}
}

// S2: A=0x50, M=0x50, C=0 -> ADC #$50 yields A=0xA0, C=0, V=1, N=1, Z=0.
func TestADCOverflow(t *testing.T) {
	b := bus.New(0x10000)
	setResetVector(b, 0x8000)
	loadAt(b, 0x8000, 0xA9, 0x50, 0x69, 0x50) // LDA #$50; ADC #$50
	c := New(b)
	c.ResetToKnown()
	runCycles(c, 7+2+2)
	if c.A != 0xA0 || c.C || !c.V || !c.N || c.Z {
		t.Fatalf("A=%#02x C=%v V=%v N=%v Z=%v, want A=0xA0 C=false V=true N=true Z=false",
			c.A, c.C, c.V, c.N, c.Z)
	}
}

// S3: JMP ($10FF) with $10FF=0x34, $1000=0x12 (page-wrap bug, not $1100) -> PC=$1234.
func TestJMPIndirectPageWrapBug(t *testing.T) {
	b := bus.New(0x10000)
	setResetVector(b, 0x8000)
	loadAt(b, 0x8000, 0x6C, 0xFF, 0x10) // JMP ($10FF)
	b.Write(0x10FF, 0x34)
	b.Write(0x1000, 0x12)
	b.Write(0x1100, 0x99) // must NOT be used
	c := New(b)
	c.ResetToKnown()
	runCycles(c, 7+5)
	if c.PC != 0x1234 {
		t.Fatalf("PC = %#04x, want 0x1234", c.PC)
	}
}

func TestBranchCycleCounts(t *testing.T) {
	b := bus.New(0x10000)
	setResetVector(b, 0x8000)
	loadAt(b, 0x8000, 0xB0, 0x02) // BCS +2 (not taken: C is clear after reset)
	c := New(b)
	c.ResetToKnown()
	runCycles(c, 7)
	start := c.Cycles
	runCycles(c, 2) // BCS not taken = 2 cycles
	if c.Cycles-start != 2 {
		t.Fatalf("not-taken branch cycles = %d, want 2", c.Cycles-start)
	}
	if c.PC != 0x8002 {
		t.Fatalf("PC after not-taken branch = %#04x, want 0x8002", c.PC)
	}
}

func TestBranchTakenSamePage(t *testing.T) {
	b := bus.New(0x10000)
	setResetVector(b, 0x8000)
	loadAt(b, 0x8000, 0x38, 0xB0, 0x02) // SEC; BCS +2
	c := New(b)
	c.ResetToKnown()
	runCycles(c, 7+2) // execute SEC
	start := c.Cycles
	runCycles(c, 3) // taken, same page = 3 cycles
	if c.Cycles-start != 3 {
		t.Fatalf("taken branch cycles = %d, want 3", c.Cycles-start)
	}
	if c.PC != 0x8005 {
		t.Fatalf("PC = %#04x, want 0x8005", c.PC)
	}
}

// NMI is taken exactly once per rising edge; holding it high does not
// re-trigger a second interrupt sequence.
func TestNMIEdgeDetectOnce(t *testing.T) {
	b := bus.New(0x10000)
	setResetVector(b, 0x8000)
	b.Write(0xFFFA, 0x00)
	b.Write(0xFFFB, 0x90) // NMI vector -> $9000
	loadAt(b, 0x8000, 0xEA, 0xEA, 0xEA)
	loadAt(b, 0x9000, 0xEA, 0xEA, 0xEA, 0xEA)
	c := New(b)
	c.ResetToKnown()
	runCycles(c, 7)
	c.SetNMILine(true)
	runCycles(c, 2)  // finish the NOP, poll at boundary
	runCycles(c, 7)  // service the interrupt (BRK-shaped, 7 cycles)
	if c.PC != 0x9000 {
		t.Fatalf("PC after NMI = %#04x, want 0x9000", c.PC)
	}
	// Holding nmi_line high must not retrigger: next instructions execute
	// normally without re-entering the interrupt sequence.
	pcBefore := c.PC
	runCycles(c, 2) // one NOP at $9000
	if c.PC != pcBefore+1 {
		t.Fatalf("NMI retriggered: PC=%#04x, want %#04x", c.PC, pcBefore+1)
	}
}

// S4-shaped: OAM DMA triggered on an odd CPU cycle takes 514 cycles.
func TestOAMDMAOddAlignmentTakes514(t *testing.T) {
	b := bus.New(0x10000)
	setResetVector(b, 0x8000)
	c := New(b)
	c.ResetToKnown()
	runCycles(c, 7) // 7 cycles: odd total means next Cycles is odd (7)
	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), uint8(i))
	}
	start := c.Cycles
	c.RequestOAMDMA(0x02)
	count := 0
	for c.dma.active || c.dma.pending != nil {
		c.Step()
		count++
	}
	_ = start
	if count != 514 {
		t.Fatalf("OAM DMA took %d cycles, want 514", count)
	}
}
