package cpu

import (
	"testing"

	"github.com/rng999/gones/internal/bus"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	b := bus.New(0x10000)
	c := New(b)
	c.ResetToKnown()

	c.A, c.X, c.Y, c.S = 0x11, 0x22, 0x33, 0xF0
	c.PC = 0xBEEF
	c.C, c.Z, c.I, c.D, c.V, c.N = true, false, true, false, true, false
	c.nmiLine, c.lastNMILine = true, false
	c.irqLine = 0x02
	c.Cycles = 12345

	snap := c.Snapshot()

	// Mutate everything so Restore has actual work to do.
	c.A, c.X, c.Y, c.S = 0, 0, 0, 0
	c.PC = 0
	c.C, c.Z, c.I, c.D, c.V, c.N = false, true, false, true, false, true
	c.nmiLine, c.lastNMILine = false, true
	c.irqLine = 0
	c.Cycles = 0

	c.Restore(snap)

	if c.A != 0x11 || c.X != 0x22 || c.Y != 0x33 || c.S != 0xF0 || c.PC != 0xBEEF {
		t.Errorf("registers not restored: A=%#02x X=%#02x Y=%#02x S=%#02x PC=%#04x", c.A, c.X, c.Y, c.S, c.PC)
	}
	if !c.C || c.Z || !c.I || c.D || !c.V || c.N {
		t.Errorf("flags not restored: C=%t Z=%t I=%t D=%t V=%t N=%t", c.C, c.Z, c.I, c.D, c.V, c.N)
	}
	if !c.nmiLine || c.lastNMILine {
		t.Errorf("NMI lines not restored: nmiLine=%t lastNMILine=%t", c.nmiLine, c.lastNMILine)
	}
	if c.irqLine != 0x02 {
		t.Errorf("irqLine = %#02x, want 0x02", c.irqLine)
	}
	if c.Cycles != 12345 {
		t.Errorf("Cycles = %d, want 12345", c.Cycles)
	}
}

func TestRestoreDiscardsInFlightDMA(t *testing.T) {
	b := bus.New(0x10000)
	c := New(b)
	c.ResetToKnown()
	snap := c.Snapshot()

	c.RequestOAMDMA(0x02)
	c.Step() // the request is taken up (dma.active set) on the next Step
	if c.dma.active == false {
		t.Skip("DMA request did not arm; dma field shape differs from expectation")
	}

	c.Restore(snap)
	if c.dma != (dmaState{}) {
		t.Errorf("dma state not cleared by Restore: %+v", c.dma)
	}
}
