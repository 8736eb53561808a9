package apu

import "github.com/rng999/gones/internal/bus"

// AttachRegisters binds the CPU-visible $4000-$4013, $4015, and $4017
// registers onto cpuBus. $4014 (OAM DMA trigger) and $4016/$4017 reads
// (controller shift registers) belong to other components and are wired
// elsewhere.
func (apu *APU) AttachRegisters(cpuBus *bus.Bus) {
	cpuBus.SetWriteRange(0x4000, 0x4014, func(addr uint16, v uint8) { apu.writeRegister(addr, v) })
	cpuBus.SetRead(0x4015, func(uint16) uint8 { return apu.readStatus() })
	cpuBus.SetWrite(0x4015, func(_ uint16, v uint8) { apu.writeChannelEnable(v) })
	cpuBus.SetWrite(0x4017, func(_ uint16, v uint8) { apu.writeFrameCounter(v) })
}

func (apu *APU) writeRegister(address uint16, value uint8) {
	switch address {
	case 0x4000:
		apu.writePulseControl(&apu.pulse1, value)
	case 0x4001:
		apu.writePulseSweep(&apu.pulse1, value)
	case 0x4002:
		apu.writePulseTimerLow(&apu.pulse1, value)
	case 0x4003:
		apu.writePulseTimerHigh(&apu.pulse1, value)
	case 0x4004:
		apu.writePulseControl(&apu.pulse2, value)
	case 0x4005:
		apu.writePulseSweep(&apu.pulse2, value)
	case 0x4006:
		apu.writePulseTimerLow(&apu.pulse2, value)
	case 0x4007:
		apu.writePulseTimerHigh(&apu.pulse2, value)
	case 0x4008:
		apu.writeTriangleControl(value)
	case 0x400A:
		apu.writeTriangleTimerLow(value)
	case 0x400B:
		apu.writeTriangleTimerHigh(value)
	case 0x400C:
		apu.writeNoiseControl(value)
	case 0x400E:
		apu.writeNoisePeriod(value)
	case 0x400F:
		apu.writeNoiseLength(value)
	case 0x4010:
		apu.writeDMCControl(value)
	case 0x4011:
		apu.writeDMCDirectLoad(value)
	case 0x4012:
		apu.writeDMCSampleAddress(value)
	case 0x4013:
		apu.writeDMCSampleLength(value)
	}
}

// readStatus services $4015. Reading clears the frame IRQ flag.
func (apu *APU) readStatus() uint8 {
	var status uint8
	if apu.pulse1.lengthCounter > 0 {
		status |= 0x01
	}
	if apu.pulse2.lengthCounter > 0 {
		status |= 0x02
	}
	if apu.triangle.lengthCounter > 0 {
		status |= 0x04
	}
	if apu.noise.lengthCounter > 0 {
		status |= 0x08
	}
	if apu.dmc.bytesRemaining > 0 {
		status |= 0x10
	}
	if apu.frameIRQFlag {
		status |= 0x40
	}
	if apu.dmc.irqFlag {
		status |= 0x80
	}
	apu.frameIRQFlag = false
	apu.syncIRQLines()
	return status
}

func (apu *APU) writeChannelEnable(value uint8) {
	apu.channelEnable[0] = value&0x01 != 0
	apu.channelEnable[1] = value&0x02 != 0
	apu.channelEnable[2] = value&0x04 != 0
	apu.channelEnable[3] = value&0x08 != 0
	apu.channelEnable[4] = value&0x10 != 0

	if !apu.channelEnable[0] {
		apu.pulse1.lengthCounter = 0
	}
	if !apu.channelEnable[1] {
		apu.pulse2.lengthCounter = 0
	}
	if !apu.channelEnable[2] {
		apu.triangle.lengthCounter = 0
	}
	if !apu.channelEnable[3] {
		apu.noise.lengthCounter = 0
	}
	if !apu.channelEnable[4] {
		apu.dmc.bytesRemaining = 0
	} else if apu.dmc.bytesRemaining == 0 {
		apu.dmc.currentAddress = apu.dmc.sampleAddress
		apu.dmc.bytesRemaining = apu.dmc.sampleLength
	}

	apu.dmc.irqFlag = false
	apu.syncIRQLines()
}

func (apu *APU) writeFrameCounter(value uint8) {
	apu.frameMode = value&0x80 != 0
	apu.frameIRQEnable = value&0x40 == 0

	if !apu.frameIRQEnable {
		apu.frameIRQFlag = false
		apu.syncIRQLines()
	}

	apu.frameCounter = 0
	apu.frameCounterStep = 0

	if apu.frameMode {
		apu.clockEnvelopeAndLinear()
		apu.clockLengthAndSweep()
	}
}
