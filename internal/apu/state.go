package apu

// PulseState mirrors PulseChannel's fields so they survive gob encoding
// (gob, like encoding/json, only sees exported fields).
type PulseState struct {
	DutyCycle       uint8
	EnvelopeLoop    bool
	EnvelopeDisable bool
	Volume          uint8

	SweepEnable  bool
	SweepPeriod  uint8
	SweepNegate  bool
	SweepShift   uint8
	SweepReload  bool
	SweepCounter uint8

	Timer        uint16
	TimerCounter uint16

	LengthCounter uint8
	LengthHalt    bool

	EnvelopeStart   bool
	EnvelopeCounter uint8
	EnvelopeDivider uint8

	DutyIndex    uint8
	SequencerPos uint8
}

func snapshotPulse(p *PulseChannel) PulseState {
	return PulseState{
		DutyCycle: p.dutyCycle, EnvelopeLoop: p.envelopeLoop, EnvelopeDisable: p.envelopeDisable, Volume: p.volume,
		SweepEnable: p.sweepEnable, SweepPeriod: p.sweepPeriod, SweepNegate: p.sweepNegate,
		SweepShift: p.sweepShift, SweepReload: p.sweepReload, SweepCounter: p.sweepCounter,
		Timer: p.timer, TimerCounter: p.timerCounter,
		LengthCounter: p.lengthCounter, LengthHalt: p.lengthHalt,
		EnvelopeStart: p.envelopeStart, EnvelopeCounter: p.envelopeCounter, EnvelopeDivider: p.envelopeDivider,
		DutyIndex: p.dutyIndex, SequencerPos: p.sequencerPos,
	}
}

func restorePulse(p *PulseChannel, s PulseState) {
	p.dutyCycle, p.envelopeLoop, p.envelopeDisable, p.volume = s.DutyCycle, s.EnvelopeLoop, s.EnvelopeDisable, s.Volume
	p.sweepEnable, p.sweepPeriod, p.sweepNegate = s.SweepEnable, s.SweepPeriod, s.SweepNegate
	p.sweepShift, p.sweepReload, p.sweepCounter = s.SweepShift, s.SweepReload, s.SweepCounter
	p.timer, p.timerCounter = s.Timer, s.TimerCounter
	p.lengthCounter, p.lengthHalt = s.LengthCounter, s.LengthHalt
	p.envelopeStart, p.envelopeCounter, p.envelopeDivider = s.EnvelopeStart, s.EnvelopeCounter, s.EnvelopeDivider
	p.dutyIndex, p.sequencerPos = s.DutyIndex, s.SequencerPos
}

// TriangleState mirrors TriangleChannel.
type TriangleState struct {
	LengthCounterHalt bool
	LinearCounterLoad uint8

	Timer        uint16
	TimerCounter uint16

	LengthCounter uint8

	LinearCounter       uint8
	LinearCounterReload bool

	SequencerPos uint8
}

func snapshotTriangle(t *TriangleChannel) TriangleState {
	return TriangleState{
		LengthCounterHalt: t.lengthCounterHalt, LinearCounterLoad: t.linearCounterLoad,
		Timer: t.timer, TimerCounter: t.timerCounter,
		LengthCounter:       t.lengthCounter,
		LinearCounter:       t.linearCounter,
		LinearCounterReload: t.linearCounterReload,
		SequencerPos:        t.sequencerPos,
	}
}

func restoreTriangle(t *TriangleChannel, s TriangleState) {
	t.lengthCounterHalt, t.linearCounterLoad = s.LengthCounterHalt, s.LinearCounterLoad
	t.timer, t.timerCounter = s.Timer, s.TimerCounter
	t.lengthCounter = s.LengthCounter
	t.linearCounter, t.linearCounterReload = s.LinearCounter, s.LinearCounterReload
	t.sequencerPos = s.SequencerPos
}

// NoiseState mirrors NoiseChannel.
type NoiseState struct {
	EnvelopeLoop    bool
	EnvelopeDisable bool
	Volume          uint8

	Mode         bool
	PeriodIndex  uint8
	TimerCounter uint16

	LengthCounter uint8
	LengthHalt    bool

	EnvelopeStart   bool
	EnvelopeCounter uint8
	EnvelopeDivider uint8

	ShiftRegister uint16
}

func snapshotNoise(n *NoiseChannel) NoiseState {
	return NoiseState{
		EnvelopeLoop: n.envelopeLoop, EnvelopeDisable: n.envelopeDisable, Volume: n.volume,
		Mode: n.mode, PeriodIndex: n.periodIndex, TimerCounter: n.timerCounter,
		LengthCounter: n.lengthCounter, LengthHalt: n.lengthHalt,
		EnvelopeStart: n.envelopeStart, EnvelopeCounter: n.envelopeCounter, EnvelopeDivider: n.envelopeDivider,
		ShiftRegister: n.shiftRegister,
	}
}

func restoreNoise(n *NoiseChannel, s NoiseState) {
	n.envelopeLoop, n.envelopeDisable, n.volume = s.EnvelopeLoop, s.EnvelopeDisable, s.Volume
	n.mode, n.periodIndex, n.timerCounter = s.Mode, s.PeriodIndex, s.TimerCounter
	n.lengthCounter, n.lengthHalt = s.LengthCounter, s.LengthHalt
	n.envelopeStart, n.envelopeCounter, n.envelopeDivider = s.EnvelopeStart, s.EnvelopeCounter, s.EnvelopeDivider
	n.shiftRegister = s.ShiftRegister
}

// DMCState mirrors DMCChannel.
type DMCState struct {
	IRQEnable bool
	Loop      bool
	RateIndex uint8

	OutputLevel uint8

	SampleAddress uint16
	SampleLength  uint16

	TimerCounter      uint16
	SampleBuffer      uint8
	SampleBufferBits  uint8
	SampleBufferEmpty bool
	BytesRemaining    uint16
	CurrentAddress    uint16
	DMARequested      bool

	IRQFlag bool
}

func snapshotDMC(d *DMCChannel) DMCState {
	return DMCState{
		IRQEnable: d.irqEnable, Loop: d.loop, RateIndex: d.rateIndex,
		OutputLevel:   d.outputLevel,
		SampleAddress: d.sampleAddress, SampleLength: d.sampleLength,
		TimerCounter: d.timerCounter, SampleBuffer: d.sampleBuffer, SampleBufferBits: d.sampleBufferBits,
		SampleBufferEmpty: d.sampleBufferEmpty, BytesRemaining: d.bytesRemaining,
		CurrentAddress: d.currentAddress, DMARequested: d.dmaRequested,
		IRQFlag: d.irqFlag,
	}
}

func restoreDMC(d *DMCChannel, s DMCState) {
	d.irqEnable, d.loop, d.rateIndex = s.IRQEnable, s.Loop, s.RateIndex
	d.outputLevel = s.OutputLevel
	d.sampleAddress, d.sampleLength = s.SampleAddress, s.SampleLength
	d.timerCounter, d.sampleBuffer, d.sampleBufferBits = s.TimerCounter, s.SampleBuffer, s.SampleBufferBits
	d.sampleBufferEmpty, d.bytesRemaining = s.SampleBufferEmpty, s.BytesRemaining
	d.currentAddress, d.dmaRequested = s.CurrentAddress, s.DMARequested
	d.irqFlag = s.IRQFlag
}

// State is the exported snapshot of the whole APU for save states
// (spec.md §6's `apu_regs+channels`).
type State struct {
	Pulse1   PulseState
	Pulse2   PulseState
	Triangle TriangleState
	Noise    NoiseState
	DMC      DMCState

	FrameCounter     uint16
	FrameMode        bool
	FrameIRQEnable   bool
	FrameCounterStep uint8
	FrameIRQFlag     bool

	ChannelEnable [5]bool

	Cycles uint64
}

// Snapshot captures every channel and the frame counter.
func (apu *APU) Snapshot() State {
	return State{
		Pulse1: snapshotPulse(&apu.pulse1), Pulse2: snapshotPulse(&apu.pulse2),
		Triangle: snapshotTriangle(&apu.triangle), Noise: snapshotNoise(&apu.noise),
		DMC:              snapshotDMC(&apu.dmc),
		FrameCounter:     apu.frameCounter,
		FrameMode:        apu.frameMode,
		FrameIRQEnable:   apu.frameIRQEnable,
		FrameCounterStep: apu.frameCounterStep,
		FrameIRQFlag:     apu.frameIRQFlag,
		ChannelEnable:    apu.channelEnable,
		Cycles:           apu.cycles,
	}
}

// Restore installs a previously captured State and re-syncs IRQ lines so
// a pending frame/DMC IRQ carries over to the CPU correctly.
func (apu *APU) Restore(s State) {
	restorePulse(&apu.pulse1, s.Pulse1)
	restorePulse(&apu.pulse2, s.Pulse2)
	restoreTriangle(&apu.triangle, s.Triangle)
	restoreNoise(&apu.noise, s.Noise)
	restoreDMC(&apu.dmc, s.DMC)
	apu.frameCounter = s.FrameCounter
	apu.frameMode = s.FrameMode
	apu.frameIRQEnable = s.FrameIRQEnable
	apu.frameCounterStep = s.FrameCounterStep
	apu.frameIRQFlag = s.FrameIRQFlag
	apu.channelEnable = s.ChannelEnable
	apu.cycles = s.Cycles
	apu.syncIRQLines()
}
