package apu

import (
	"testing"

	"github.com/rng999/gones/internal/bus"
	"github.com/rng999/gones/internal/cpu"
)

func newTestAPU() (*APU, *bus.Bus) {
	cpuBus := bus.New(0x10000)
	c := cpu.New(cpuBus)
	c.ResetToKnown()
	a := New(c, NTSC)
	a.AttachRegisters(cpuBus)
	return a, cpuBus
}

func TestFrameCounterFourStepSetsIRQFlag(t *testing.T) {
	a, _ := newTestAPU()
	for i := 0; i < 29830; i++ {
		a.Step()
	}
	if !a.frameIRQFlag {
		t.Fatal("frame IRQ flag not set after a full 4-step sequence")
	}
}

func TestFrameCounterFiveStepNeverSetsIRQFlag(t *testing.T) {
	a, cpuBus := newTestAPU()
	cpuBus.Write(0x4017, 0x80) // 5-step mode
	for i := 0; i < 37281*2; i++ {
		a.Step()
		if a.frameIRQFlag {
			t.Fatal("5-step mode must never set the frame IRQ flag")
		}
	}
}

func TestFrameIRQFlagClearedByStatusRead(t *testing.T) {
	a, cpuBus := newTestAPU()
	for i := 0; i < 29830; i++ {
		a.Step()
	}
	if cpuBus.Read(0x4015)&0x40 == 0 {
		t.Fatal("status read should report the pending frame IRQ")
	}
	if a.frameIRQFlag {
		t.Fatal("reading $4015 must clear the frame IRQ flag")
	}
}

func TestPulseLengthCounterLoadAndStatus(t *testing.T) {
	a, cpuBus := newTestAPU()
	cpuBus.Write(0x4000, 0x30) // constant volume, volume 0
	cpuBus.Write(0x4002, 0xFF) // timer low
	cpuBus.Write(0x4003, 0x08) // timer high bits + length index 1 -> lengthTable[1] = 254
	cpuBus.Write(0x4015, 0x01) // enable pulse 1

	if a.pulse1.lengthCounter != 254 {
		t.Fatalf("pulse1 length counter = %d, want 254", a.pulse1.lengthCounter)
	}
	if cpuBus.Read(0x4015)&0x01 == 0 {
		t.Fatal("status bit 0 should reflect pulse1's active length counter")
	}
}

func TestChannelEnableClearsLengthCounter(t *testing.T) {
	a, cpuBus := newTestAPU()
	cpuBus.Write(0x4003, 0x08)
	cpuBus.Write(0x4015, 0x01)
	if a.pulse1.lengthCounter == 0 {
		t.Fatal("expected a nonzero length counter after enabling")
	}
	cpuBus.Write(0x4015, 0x00)
	if a.pulse1.lengthCounter != 0 {
		t.Fatal("disabling a channel must force its length counter to zero")
	}
}

func TestLengthCounterHaltPreventsDecrement(t *testing.T) {
	a, cpuBus := newTestAPU()
	cpuBus.Write(0x4000, 0x20) // bit 5 set: length counter halt
	cpuBus.Write(0x4003, 0x08)
	cpuBus.Write(0x4015, 0x01)
	before := a.pulse1.lengthCounter
	a.clockLengthAndSweep()
	if a.pulse1.lengthCounter != before {
		t.Fatalf("length counter decremented despite halt flag: %d -> %d", before, a.pulse1.lengthCounter)
	}
}

func TestMixerSilentWhenAllChannelsZero(t *testing.T) {
	if got := mixChannels(0, 0, 0, 0, 0); got != 0 {
		t.Fatalf("mixChannels(0,0,0,0,0) = %v, want 0", got)
	}
}

func TestMixerNonZeroWithPulseActive(t *testing.T) {
	if got := mixChannels(15, 0, 0, 0, 0); got <= 0 {
		t.Fatalf("mixChannels with an active pulse channel = %v, want > 0", got)
	}
}

// TestDMCSampleFetchViaBusSteal drives a DMC sample byte through the full
// request/pop round trip: stepDMCTimer arms a DMA request on the CPU, the
// CPU's own Step loop services the bus-steal, and a later stepDMCTimer call
// drains the fetched byte.
func TestDMCSampleFetchViaBusSteal(t *testing.T) {
	cpuBus := bus.New(0x10000)
	c := cpu.New(cpuBus)
	c.ResetToKnown()
	a := New(c, NTSC)
	a.AttachRegisters(cpuBus)

	cpuBus.Write(0xC100, 0xAA)
	a.writeDMCSampleAddress(0x04) // 0xC000 + 0x04<<6 = 0xC100
	a.writeDMCSampleLength(0x00)  // (0<<4)+1 = 1 byte
	a.writeChannelEnable(0x10)    // enable DMC; arms currentAddress/bytesRemaining

	a.stepDMCTimer() // arms the DMA request
	if !a.dmc.dmaRequested {
		t.Fatal("expected stepDMCTimer to arm a DMC DMA request")
	}

	for i := 0; i < 4; i++ {
		c.Step()
	}

	a.stepDMCTimer() // drains the fetched byte
	if a.dmc.dmaRequested {
		t.Fatal("DMA request should be drained after the CPU services it")
	}
	if a.dmc.sampleBuffer != 0xAA {
		t.Fatalf("sample buffer = %#02x, want 0xAA", a.dmc.sampleBuffer)
	}
	if a.dmc.bytesRemaining != 0 {
		t.Fatalf("bytesRemaining = %d, want 0", a.dmc.bytesRemaining)
	}
}

func TestNoiseShiftRegisterNeverZero(t *testing.T) {
	a, _ := newTestAPU()
	for i := 0; i < 100000; i++ {
		a.stepNoiseTimer(&a.noise)
		if a.noise.shiftRegister == 0 {
			t.Fatal("noise LFSR reached zero, which would lock it permanently")
		}
	}
}
