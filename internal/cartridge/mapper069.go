package cartridge

import "github.com/rng999/gones/internal/bus"

func init() { register(69, newSunsoft5B) }

// Sunsoft5BEnvelope, when true, enables the volume-crunch style envelope
// shaping the original source's post-processor implements for mapper 069.
// The source ships with this generator disabled (spec.md §9's open
// question); this module keeps that default and exposes the flag as a
// package-level switch rather than per-instance config, since it is a
// build-time behavior choice, not a per-ROM one.
var Sunsoft5BEnvelope = false

// sunsoft5b is mapper 69: a command/data latch pair selects one of sixteen
// internal registers (CHR banks 0-7, PRG banks 8-A with RAM-enable on 8,
// mirroring, IRQ control/counter, plus the 5B's three-channel PSG), an
// independent 16-bit down-counting IRQ clocked every CPU cycle, and three
// expansion-audio square channels mixed into the APU's output.
type sunsoft5b struct {
	base

	command uint8
	chr     [8]uint8
	prg     [3]uint8
	prgRAMEnabled bool
	mirrorMode    uint8

	irqEnabled bool
	irqCounter uint16

	audioSelect uint8
	audioRegs   [16]uint8
	phase       [3]float64
}

func newSunsoft5B(rom *ROM) Mapper { return &sunsoft5b{base: newBase(rom)} }

func (m *sunsoft5b) Reset() {
	m.command = 0
	m.chr = [8]uint8{}
	m.prg = [3]uint8{}
	m.prgRAMEnabled = false
	m.mirrorMode = 0
	m.irqEnabled = false
	m.irqCounter = 0
}

func (m *sunsoft5b) IRQ() bool { return m.irqEnabled && m.irqCounter == 0 }

// Tick decrements the 16-bit IRQ counter once per CPU cycle while enabled,
// per spec.md §4.2's "tick() called once per CPU cycle".
func (m *sunsoft5b) Tick() {
	if !m.irqEnabled {
		return
	}
	if m.irqCounter > 0 {
		m.irqCounter--
	}
}

func (m *sunsoft5b) mirror() Mirror {
	switch m.mirrorMode & 0x03 {
	case 0:
		return MirrorVertical
	case 1:
		return MirrorHorizontal
	case 2:
		return MirrorSingleA
	default:
		return MirrorSingleB
	}
}

func (m *sunsoft5b) writeCommand(val uint8) { m.command = val & 0x0F }

func (m *sunsoft5b) writeData(val uint8) {
	switch {
	case m.command <= 0x07:
		m.chr[m.command] = val
	case m.command <= 0x0A:
		m.prg[m.command-0x08] = val & 0x3F
		if m.command == 0x08 {
			m.prgRAMEnabled = val&0x40 != 0
		}
	case m.command == 0x0C:
		m.mirrorMode = val
	case m.command == 0x0D:
		m.irqEnabled = val&0x01 != 0
		if val&0x80 != 0 {
			m.irqEnabled = false
		}
	case m.command == 0x0E:
		m.irqCounter = (m.irqCounter & 0xFF00) | uint16(val)
	case m.command == 0x0F:
		m.irqCounter = (m.irqCounter & 0x00FF) | uint16(val)<<8
	}
}

func (m *sunsoft5b) writeAudioData(val uint8) {
	m.audioRegs[m.audioSelect] = val
}

func (m *sunsoft5b) prgOffset(addr uint16) int {
	banks := m.prgBanks(8192)
	last := banks - 1
	window := int(addr-0x8000) / 8192
	off := int(addr-0x8000) % 8192
	if window == 3 {
		return last*8192 + off
	}
	return bankIndex(int(m.prg[window]), banks)*8192 + off
}

func (m *sunsoft5b) chrOffset(addr uint16) int {
	bank := bankIndex(int(m.chr[addr/1024]), m.chrBanks(1024))
	return bank*1024 + int(addr%1024)
}

func (m *sunsoft5b) ApplyMap(cpuBus, ppuBus *bus.Bus) {
	cpuBus.SetReadRange(0x6000, 0x8000, func(addr uint16) uint8 {
		if !m.prgRAMEnabled {
			return 0
		}
		return m.prgRAM[addr-0x6000]
	})
	cpuBus.SetWriteRange(0x6000, 0x8000, func(addr uint16, v uint8) {
		if m.prgRAMEnabled {
			m.prgRAM[addr-0x6000] = v
		}
	})

	cpuBus.SetReadRange(0x8000, 0x10000, func(addr uint16) uint8 {
		return m.prg[m.prgOffset(addr)%len(m.prg)]
	})

	cpuBus.SetWriteRange(0x8000, 0xA000, func(_ uint16, v uint8) { m.writeCommand(v) })
	cpuBus.SetWriteRange(0xA000, 0xC000, func(_ uint16, v uint8) { m.writeData(v) })
	cpuBus.SetWriteRange(0xC000, 0xE000, func(_ uint16, v uint8) { m.audioSelect = v & 0x0F })
	cpuBus.SetWriteRange(0xE000, 0x10000, func(_ uint16, v uint8) { m.writeAudioData(v) })

	if m.hasCHRRAM {
		ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[m.chrOffset(addr)%len(m.chr)] })
		ppuBus.SetWriteRange(0x0000, 0x2000, func(addr uint16, v uint8) { m.chr[m.chrOffset(addr)%len(m.chr)] = v })
	} else {
		ppuBus.SetReadRange(0x0000, 0x2000, func(addr uint16) uint8 { return m.chr[m.chrOffset(addr)%len(m.chr)] })
		ppuBus.SetWriteRange(0x0000, 0x2000, func(uint16, uint8) {})
	}

	bindNametables(ppuBus, &m.nt, m.mirror)
}

// ExtAudioSample mixes the 5B's three square channels (a coarse model: a
// band-limited-free square wave per channel, gated by its volume nibble)
// into the APU's output.
func (m *sunsoft5b) ExtAudioSample(mixed float32) float32 {
	var out float32
	for ch := 0; ch < 3; ch++ {
		toneLo := m.audioRegs[ch*2]
		toneHi := m.audioRegs[ch*2+1] & 0x0F
		period := uint16(toneLo) | uint16(toneHi)<<8
		vol := m.audioRegs[8+ch] & 0x0F
		if period == 0 || vol == 0 {
			continue
		}
		freq := 1789773.0 / (16.0 * float64(period+1))
		m.phase[ch] += freq / 44100.0
		if m.phase[ch] >= 1 {
			m.phase[ch] -= 1
		}
		level := float32(vol) / 15.0
		if m.phase[ch] < 0.5 {
			out += level
		} else {
			out -= level
		}
	}
	return mixed + out*0.1
}

// PostProcessSample applies the optional volume-crunch envelope per
// spec.md §9's open question; disabled unless Sunsoft5BEnvelope is set.
func (m *sunsoft5b) PostProcessSample(sample float32, outHz float64) float32 {
	if !Sunsoft5BEnvelope {
		return sample
	}
	// A fixed, memoryless crunch curve (0.8*s + 0.2*s*s) with no running
	// state, which is the shape (not exact transfer function) of the
	// source's disabled envelope generator.
	return sample*0.8 + sample*sample*0.2
}
