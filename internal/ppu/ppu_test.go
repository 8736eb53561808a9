package ppu

import (
	"testing"

	"github.com/rng999/gones/internal/bus"
)

func newTestPPU() (*PPU, *bus.Bus, *bus.Bus) {
	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	p := New(ppuBus, NTSC)
	p.AttachRegisters(cpuBus)
	p.Reset()
	return p, cpuBus, ppuBus
}

func TestVBlankSetAndNMIOnScanline241(t *testing.T) {
	p, cpuBus, _ := newTestPPU()
	p.ctrl = 0x80 // NMI enabled
	nmiRaised := false
	p.NMILine = func(v bool) { nmiRaised = v }

	p.scanline, p.dot = 0, 0
	for p.scanline != 241 || p.dot != 2 { // run through the dot-1 tick of scanline 241
		p.Tick()
	}
	status := cpuBus.Read(0x2002)
	if status&0x80 == 0 {
		t.Fatal("VBlank flag not set at scanline 241 dot 1")
	}
	if !nmiRaised {
		t.Fatal("NMI line not raised at VBlank start with NMI enabled")
	}
}

// Property 7: NTSC frame is 89342 PPU cycles on even frames (rendering
// enabled), 89341 on odd frames (the skipped pre-render dot).
func TestFrameTimingEvenVsOddFrame(t *testing.T) {
	p, _, _ := newTestPPU()
	p.mask = 0x18 // enable rendering so the odd-frame skip applies

	// Reset leaves the PPU on the pre-render line; run to the next frame
	// boundary so the count below covers one whole frame.
	for first := p.frame; p.frame == first; {
		p.Tick()
	}
	startFrame := p.frame
	cycles := 0
	for p.frame == startFrame {
		p.Tick()
		cycles++
	}
	if cycles != 89342 && cycles != 89341 {
		t.Fatalf("first frame took %d PPU cycles, want 89341 or 89342", cycles)
	}
}

func TestPPUADDRWriteTogglesAndLatchesV(t *testing.T) {
	p, cpuBus, _ := newTestPPU()
	cpuBus.Write(0x2006, 0x21)
	cpuBus.Write(0x2006, 0x08)
	if p.v != 0x2108 {
		t.Fatalf("v = %#04x, want 0x2108", p.v)
	}
}

func TestPPUDATAReadBufferDeferred(t *testing.T) {
	_, cpuBus, ppuBus := newTestPPU()
	ppuBus.CopyToMemory([]byte{0xAB}, 0x2100)
	cpuBus.Write(0x2006, 0x21)
	cpuBus.Write(0x2006, 0x00)
	first := cpuBus.Read(0x2007)
	if first == 0xAB {
		t.Fatal("first PPUDATA read should return the stale buffer, not the fresh byte")
	}
	second := cpuBus.Read(0x2007)
	if second != 0xAB {
		t.Fatalf("second PPUDATA read = %#02x, want 0xAB", second)
	}
}

func TestPaletteDirectReadNotBuffered(t *testing.T) {
	p, cpuBus, _ := newTestPPU()
	p.palette[0x05] = 0x16
	cpuBus.Write(0x2006, 0x3F)
	cpuBus.Write(0x2006, 0x05)
	if got := cpuBus.Read(0x2007); got != 0x16 {
		t.Fatalf("palette PPUDATA read = %#02x, want 0x16 (direct, unbuffered)", got)
	}
}

func TestPaletteBackgroundMirror(t *testing.T) {
	p, _, _ := newTestPPU()
	p.palette[paletteIndex(0x00)] = 0x0F
	if p.readPalette(0x10) != 0x0F {
		t.Fatal("$3F10 must mirror $3F00")
	}
}
