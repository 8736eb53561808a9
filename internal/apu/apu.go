// Package apu implements the Ricoh 2A03 Audio Processing Unit: the frame
// counter and the pulse/triangle/noise/DMC channels, clocked one CPU cycle
// at a time by the scheduler and mixed down to a single float sample per
// cycle.
package apu

import (
	"github.com/rng999/gones/internal/cartridge"
	"github.com/rng999/gones/internal/cpu"
)

// Region selects the DMC rate and noise period tables, which differ between
// NTSC and PAL hardware (spec.md §4.5: "DMC... frequency table per region").
type Region int

const (
	NTSC Region = iota
	PAL
)

// APU is the 2A03 sound core. It holds no audio-thread synchronization of
// its own; PushSample is called synchronously from Step and is expected to
// hand the sample to whatever ring buffer the host owns.
type APU struct {
	cpu *cpu.CPU

	pulse1   PulseChannel
	pulse2   PulseChannel
	triangle TriangleChannel
	noise    NoiseChannel
	dmc      DMCChannel

	frameCounter     uint16
	frameMode        bool // false = 4-step, true = 5-step
	frameIRQEnable   bool
	frameCounterStep uint8
	frameIRQFlag     bool

	channelEnable [5]bool // pulse1, pulse2, triangle, noise, dmc

	noisePeriodTable *[16]uint16
	dmcRateTable     *[16]uint16

	cycles uint64

	// Mapper, if set, folds in expansion audio and any per-sample
	// nonlinear shaping (Sunsoft 5B volume envelope and the like) before
	// the sample reaches the host.
	Mapper cartridge.Mapper
	// OutputHz is metadata handed to Mapper.PostProcessSample; the APU
	// itself performs no resampling and emits exactly one sample per
	// Step call, at the APU's own cycle rate.
	OutputHz float64
	// PushSample, if set, receives the mixed sample for every Step call.
	PushSample func(float32)
}

// New constructs an APU wired to c for IRQ assertion and DMC DMA bus-steal
// requests.
func New(c *cpu.CPU, region Region) *APU {
	apu := &APU{
		cpu:            c,
		frameMode:      false,
		frameIRQEnable: true,
	}
	if region == PAL {
		apu.noisePeriodTable = &noisePeriodTablePAL
		apu.dmcRateTable = &dmcRateTablePAL
	} else {
		apu.noisePeriodTable = &noisePeriodTableNTSC
		apu.dmcRateTable = &dmcRateTableNTSC
	}
	apu.noise.shiftRegister = 1
	return apu
}

// Reset restores power-on state. Per hardware, $4015 reads back as 0 and
// the frame counter resets to 4-step mode with IRQ enabled.
func (apu *APU) Reset() {
	apu.pulse1 = PulseChannel{}
	apu.pulse2 = PulseChannel{}
	apu.triangle = TriangleChannel{}
	apu.noise = NoiseChannel{shiftRegister: 1}
	apu.dmc = DMCChannel{}

	apu.frameCounter = 0
	apu.frameCounterStep = 0
	apu.frameMode = false
	apu.frameIRQEnable = true
	apu.frameIRQFlag = false

	for i := range apu.channelEnable {
		apu.channelEnable[i] = false
	}
	apu.cycles = 0
	apu.syncIRQLines()
}

// Step advances the APU by one CPU cycle: clocks the frame counter, the
// channel timers, and emits one mixed sample.
func (apu *APU) Step() {
	apu.cycles++
	apu.stepFrameCounter()
	apu.stepChannelTimers()
	apu.emitSample()
}

func (apu *APU) stepFrameCounter() {
	apu.frameCounter++
	if apu.frameMode {
		switch apu.frameCounter {
		case 7457:
			apu.clockEnvelopeAndLinear()
		case 14913:
			apu.clockEnvelopeAndLinear()
			apu.clockLengthAndSweep()
		case 22371:
			apu.clockEnvelopeAndLinear()
		case 37281:
			apu.clockEnvelopeAndLinear()
			apu.clockLengthAndSweep()
			apu.frameCounter = 0
			apu.frameCounterStep = 0
		}
		return
	}
	switch apu.frameCounter {
	case 7457:
		apu.clockEnvelopeAndLinear()
	case 14913:
		apu.clockEnvelopeAndLinear()
		apu.clockLengthAndSweep()
	case 22371:
		apu.clockEnvelopeAndLinear()
	case 29829:
		apu.clockEnvelopeAndLinear()
		apu.clockLengthAndSweep()
	case 29830:
		if apu.frameIRQEnable {
			apu.frameIRQFlag = true
			apu.syncIRQLines()
		}
		apu.frameCounter = 0
		apu.frameCounterStep = 0
	}
}

func (apu *APU) clockEnvelopeAndLinear() {
	apu.clockPulseEnvelope(&apu.pulse1)
	apu.clockPulseEnvelope(&apu.pulse2)
	apu.clockNoiseEnvelope(&apu.noise)
	apu.clockTriangleLinear(&apu.triangle)
}

func (apu *APU) clockLengthAndSweep() {
	apu.clockPulseLength(&apu.pulse1)
	apu.clockPulseSweep(&apu.pulse1, true)
	apu.clockPulseLength(&apu.pulse2)
	apu.clockPulseSweep(&apu.pulse2, false)
	apu.clockTriangleLength(&apu.triangle)
	apu.clockNoiseLength(&apu.noise)
}

// stepChannelTimers clocks every channel's timer/sequencer unconditionally:
// on real hardware $4015's enable bits silence a channel through its length
// counter (and, for DMC, by zeroing bytesRemaining), not by freezing the
// timer itself.
func (apu *APU) stepChannelTimers() {
	apu.stepPulseTimer(&apu.pulse1)
	apu.stepPulseTimer(&apu.pulse2)
	apu.stepTriangleTimer(&apu.triangle)
	apu.stepNoiseTimer(&apu.noise)
	apu.stepDMCTimer()
}

func (apu *APU) emitSample() {
	if apu.PushSample == nil {
		return
	}
	p1 := apu.getPulseOutput(&apu.pulse1)
	p2 := apu.getPulseOutput(&apu.pulse2)
	tri := apu.getTriangleOutput(&apu.triangle)
	noi := apu.getNoiseOutput(&apu.noise)
	dmcOut := apu.dmc.outputLevel

	mixed := mixChannels(p1, p2, tri, noi, dmcOut)
	if apu.Mapper != nil {
		mixed = apu.Mapper.ExtAudioSample(mixed)
		mixed = apu.Mapper.PostProcessSample(mixed, apu.OutputHz)
	}
	apu.PushSample(mixed)
}

// syncIRQLines pushes the frame and DMC IRQ flags onto the CPU's IRQ
// source bitmask; called whenever either flag transitions.
func (apu *APU) syncIRQLines() {
	if apu.cpu == nil {
		return
	}
	apu.cpu.SetIRQLine(cpu.IRQSourceFrame, apu.frameIRQFlag)
	apu.cpu.SetIRQLine(cpu.IRQSourceDMC, apu.dmc.irqFlag)
}

// mixChannels applies the standard NES non-linear mixer formula.
func mixChannels(pulse1, pulse2, triangle, noise, dmc uint8) float32 {
	pulseSum := float64(pulse1) + float64(pulse2)
	var pulseOut float64
	if pulseSum != 0 {
		pulseOut = 95.88 / ((8128.0 / pulseSum) + 100.0)
	}

	tndSum := (float64(triangle) / 8227.0) + (float64(noise) / 12241.0) + (float64(dmc) / 22638.0)
	var tndOut float64
	if tndSum != 0 {
		tndOut = 159.79 / ((1.0 / tndSum) + 100.0)
	}

	return float32(pulseOut + tndOut)
}
