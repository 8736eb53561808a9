package cartridge

import (
	"bytes"
	"testing"
)

func TestNROMStateRoundTrip(t *testing.T) {
	rom, err := LoadINES(bytes.NewReader(buildINES(1, 1, 0, false)))
	if err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	mp, err := New(rom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m := mp.(*nrom)
	m.prgRAM[0] = 0x42
	m.prgRAM[1] = 0x7f
	m.nt.ram[0x0100] = 0x99

	data, err := m.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	m.prgRAM[0] = 0
	m.nt.ram[0x0100] = 0

	if err := m.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if m.prgRAM[0] != 0x42 || m.prgRAM[1] != 0x7f {
		t.Errorf("PRG RAM not restored: %#02x %#02x", m.prgRAM[0], m.prgRAM[1])
	}
	if m.nt.ram[0x0100] != 0x99 {
		t.Errorf("nametable RAM not restored: %#02x", m.nt.ram[0x0100])
	}
}

func TestMMC3StateRoundTrip(t *testing.T) {
	rom, err := LoadINES(bytes.NewReader(buildINES(4, 4, 4, false)))
	if err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	mp, err := New(rom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m := mp.(*mmc3)
	m.bankSelect = 0x06
	m.reg = [8]uint8{1, 2, 3, 4, 5, 6, 7, 8}
	m.irqLatch = 0xAB
	m.irqCounter = 0x10
	m.irqEnabled = true
	m.irqPending = true

	data, err := m.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	*m = mmc3{base: m.base}

	if err := m.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if m.bankSelect != 0x06 {
		t.Errorf("bankSelect = %#02x, want 0x06", m.bankSelect)
	}
	if m.reg != [8]uint8{1, 2, 3, 4, 5, 6, 7, 8} {
		t.Errorf("reg = %v", m.reg)
	}
	if m.irqLatch != 0xAB || m.irqCounter != 0x10 {
		t.Errorf("irq latch/counter = %#02x/%#02x", m.irqLatch, m.irqCounter)
	}
	if !m.irqEnabled || !m.irqPending {
		t.Errorf("irq flags not restored: enabled=%t pending=%t", m.irqEnabled, m.irqPending)
	}
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	var s nromState
	if err := decodeState([]byte("not a gob stream"), &s); err == nil {
		t.Fatal("expected decode error for garbage input")
	}
}
