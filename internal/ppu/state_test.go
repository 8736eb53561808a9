package ppu

import (
	"testing"

	"github.com/rng999/gones/internal/bus"
)

func TestPPUSnapshotRestoreRoundTrip(t *testing.T) {
	ppuBus := bus.New(0x4000)
	p := New(ppuBus, NTSC)

	p.ctrl, p.mask, p.status = 0x80, 0x1E, 0x40
	p.oamAddr = 0x10
	p.v, p.t, p.x, p.w = 0x2000, 0x0C00, 3, true
	p.readBuffer = 0xAB
	p.oam[0] = 0xCD
	p.palette[0] = 0x0F
	p.scanline, p.dot, p.frame, p.oddFrame = 150, 200, 42, true
	p.sprite0HitThisLine = true

	snap := p.Snapshot()

	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.oam[0] = 0
	p.palette[0] = 0
	p.scanline, p.dot, p.frame, p.oddFrame = 0, 0, 0, false
	p.sprite0HitThisLine = false

	p.Restore(snap)

	if p.ctrl != 0x80 || p.mask != 0x1E || p.status != 0x40 {
		t.Errorf("registers not restored: ctrl=%#02x mask=%#02x status=%#02x", p.ctrl, p.mask, p.status)
	}
	if p.v != 0x2000 || p.t != 0x0C00 || p.x != 3 || !p.w {
		t.Errorf("scroll latches not restored: v=%#04x t=%#04x x=%d w=%t", p.v, p.t, p.x, p.w)
	}
	if p.oam[0] != 0xCD {
		t.Errorf("OAM not restored: %#02x", p.oam[0])
	}
	if p.palette[0] != 0x0F {
		t.Errorf("palette not restored: %#02x", p.palette[0])
	}
	if p.scanline != 150 || p.dot != 200 || p.frame != 42 || !p.oddFrame {
		t.Errorf("timing not restored: scanline=%d dot=%d frame=%d oddFrame=%t", p.scanline, p.dot, p.frame, p.oddFrame)
	}
	if !p.sprite0HitThisLine {
		t.Error("sprite0HitThisLine not restored")
	}
}
