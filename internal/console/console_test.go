package console

import (
	"bytes"
	"testing"

	"github.com/rng999/gones/internal/cartridge"
)

// buildINES builds a minimal NROM iNES image: 1 PRG bank with a reset
// vector at $C000 pointing at an infinite JMP loop, no CHR RAM/ROM beyond
// one blank bank.
func buildINES() []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(1) // 1x 16KiB PRG bank
	buf.WriteByte(1) // 1x 8KiB CHR bank
	buf.WriteByte(0) // mapper 0 (NROM), horizontal mirroring
	buf.WriteByte(0)
	buf.Write(make([]byte, 8))

	prg := make([]byte, 16384)
	// Reset vector at $FFFC (bank offset 0x3FFC) -> $C000 (offset 0).
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0xC0
	// JMP $C000 (infinite loop) at offset 0.
	prg[0] = 0x4C
	prg[1] = 0x00
	prg[2] = 0xC0
	buf.Write(prg)
	buf.Write(make([]byte, 8192))

	return buf.Bytes()
}

func testConfig() *Config {
	return &Config{Region: cartridge.RegionNTSC, MagicConstant: 0xFF}
}

func TestNewBuildsRunnableSystem(t *testing.T) {
	sys, err := New(testConfig(), buildINES())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sys.RunFrame()
	if sys.CPU.PC != 0xC000 {
		t.Errorf("PC after running the reset sequence = %#04x, want 0xC000", sys.CPU.PC)
	}
	if sys.PPU.FrameBuffer == nil {
		t.Error("FrameBuffer not allocated after RunFrame")
	}
}

func TestSaveLoadStateRoundTrip(t *testing.T) {
	sys, err := New(testConfig(), buildINES())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sys.RunFrame()

	sys.CPU.A = 0x42
	sys.CPU.Cycles = 123456

	rec := sys.SaveState()

	sys.CPU.A = 0
	sys.CPU.Cycles = 0

	if err := sys.LoadState(rec); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if sys.CPU.A != 0x42 {
		t.Errorf("CPU.A = %#02x, want 0x42", sys.CPU.A)
	}
	if sys.CPU.Cycles != 123456 {
		t.Errorf("CPU.Cycles = %d, want 123456", sys.CPU.Cycles)
	}
}

func TestResetRestoresResetVector(t *testing.T) {
	sys, err := New(testConfig(), buildINES())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sys.RunFrame()
	sys.Reset()
	sys.RunFrame()
	if sys.CPU.PC != 0xC000 {
		t.Errorf("PC after Reset = %#04x, want 0xC000", sys.CPU.PC)
	}
}
