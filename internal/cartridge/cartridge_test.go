package cartridge

import (
	"bytes"
	"testing"

	"github.com/rng999/gones/internal/bus"
)

func buildINES(prgBanks, chrBanks int, mapperID uint8, mirrorVertical bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(uint8(prgBanks))
	buf.WriteByte(uint8(chrBanks))
	flags6 := (mapperID & 0x0F) << 4
	if mirrorVertical {
		flags6 |= 0x01
	}
	buf.WriteByte(flags6)
	buf.WriteByte((mapperID & 0xF0))
	buf.Write(make([]byte, 8)) // flags8-9, padding
	buf.Write(make([]byte, prgBanks*16384))
	buf.Write(make([]byte, chrBanks*8192))
	return buf.Bytes()
}

func TestLoadINESRejectsBadMagic(t *testing.T) {
	_, err := LoadINES(bytes.NewReader([]byte("GARBAGE!")))
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestLoadINESParsesNROM(t *testing.T) {
	data := buildINES(1, 1, 0, false)
	rom, err := LoadINES(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	if len(rom.PRG) != 16384 {
		t.Errorf("PRG size = %d, want 16384", len(rom.PRG))
	}
	if len(rom.CHR) != 8192 {
		t.Errorf("CHR size = %d, want 8192", len(rom.CHR))
	}
	if rom.Mirror != MirrorHorizontal {
		t.Errorf("mirror = %v, want horizontal", rom.Mirror)
	}
}

func TestNROMMirrorsHalfBankWindow(t *testing.T) {
	data := buildINES(1, 1, 0, false)
	// stamp a marker byte at the start of the single 16KiB bank.
	data[16] = 0xAB
	rom, err := LoadINES(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	m, err := New(rom)
	if err != nil {
		t.Fatalf("New mapper: %v", err)
	}
	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	m.ApplyMap(cpuBus, ppuBus)

	if got := cpuBus.Read(0x8000); got != 0xAB {
		t.Errorf("$8000 = %#02x, want 0xAB", got)
	}
	if got := cpuBus.Read(0xC000); got != 0xAB {
		t.Errorf("$C000 (mirror) = %#02x, want 0xAB", got)
	}
}

func TestUnsupportedMapperErrors(t *testing.T) {
	data := buildINES(1, 1, 255, false)
	rom, err := LoadINES(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	if _, err := New(rom); err == nil {
		t.Fatal("expected ErrMapperUnsupported")
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	data := buildINES(2, 0, 2, false)
	data[16] = 0x11               // bank 0 marker
	data[16+16384] = 0x22         // bank 1 marker
	rom, err := LoadINES(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadINES: %v", err)
	}
	m, err := New(rom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	m.ApplyMap(cpuBus, ppuBus)

	if got := cpuBus.Read(0x8000); got != 0x11 {
		t.Fatalf("initial bank 0 at $8000 = %#02x, want 0x11", got)
	}
	cpuBus.Write(0x8000, 1)
	if got := cpuBus.Read(0x8000); got != 0x22 {
		t.Fatalf("after bank switch $8000 = %#02x, want 0x22", got)
	}
	// Last bank stays fixed at $C000 regardless of the switch.
	if got := cpuBus.Read(0xC000); got != 0x22 {
		t.Fatalf("$C000 = %#02x, want fixed last bank 0x22", got)
	}
}
