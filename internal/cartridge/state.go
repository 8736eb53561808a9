package cartridge

import (
	"bytes"
	"encoding/gob"
)

// baseState carries the battery/work RAM and nametable RAM every mapper
// owns through base, regardless of its own bank-select fields.
type baseState struct {
	PRGRAM []uint8
	NTRAM  [0x1000]uint8
}

func snapshotBase(b *base) baseState {
	ram := make([]uint8, len(b.prgRAM))
	copy(ram, b.prgRAM)
	return baseState{PRGRAM: ram, NTRAM: b.nt.ram}
}

func restoreBase(b *base, s baseState) {
	copy(b.prgRAM, s.PRGRAM)
	b.nt.ram = s.NTRAM
}

func encodeState(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeState(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// nromState has no bank-select fields of its own: PRG/CHR are fixed at
// load, so only the base RAM needs to round-trip.
type nromState struct {
	Base baseState
}

func (m *nrom) SaveState() ([]byte, error) {
	return encodeState(nromState{Base: snapshotBase(&m.base)})
}

func (m *nrom) LoadState(data []byte) error {
	var s nromState
	if err := decodeState(data, &s); err != nil {
		return err
	}
	restoreBase(&m.base, s.Base)
	return nil
}

type mmc1State struct {
	Base     baseState
	Shift    uint8
	ShiftLen int
	Control  uint8
	ChrBank0 uint8
	ChrBank1 uint8
	PrgBank  uint8
}

func (m *mmc1) SaveState() ([]byte, error) {
	return encodeState(mmc1State{
		Base: snapshotBase(&m.base),
		Shift: m.shift, ShiftLen: m.shiftLen, Control: m.control,
		ChrBank0: m.chrBank0, ChrBank1: m.chrBank1, PrgBank: m.prgBank,
	})
}

func (m *mmc1) LoadState(data []byte) error {
	var s mmc1State
	if err := decodeState(data, &s); err != nil {
		return err
	}
	restoreBase(&m.base, s.Base)
	m.shift, m.shiftLen, m.control = s.Shift, s.ShiftLen, s.Control
	m.chrBank0, m.chrBank1, m.prgBank = s.ChrBank0, s.ChrBank1, s.PrgBank
	return nil
}

type uxromState struct {
	Base baseState
	Bank uint8
}

func (m *uxrom) SaveState() ([]byte, error) {
	return encodeState(uxromState{Base: snapshotBase(&m.base), Bank: m.bank})
}

func (m *uxrom) LoadState(data []byte) error {
	var s uxromState
	if err := decodeState(data, &s); err != nil {
		return err
	}
	restoreBase(&m.base, s.Base)
	m.bank = s.Bank
	return nil
}

type cnromState struct {
	Base      baseState
	ChrSelect uint8
}

func (m *cnrom) SaveState() ([]byte, error) {
	return encodeState(cnromState{Base: snapshotBase(&m.base), ChrSelect: m.chrSelect})
}

func (m *cnrom) LoadState(data []byte) error {
	var s cnromState
	if err := decodeState(data, &s); err != nil {
		return err
	}
	restoreBase(&m.base, s.Base)
	m.chrSelect = s.ChrSelect
	return nil
}

type mmc3State struct {
	Base       baseState
	BankSelect uint8
	Reg        [8]uint8
	MirrorBit  uint8
	IRQLatch   uint8
	IRQCounter uint8
	IRQReload  bool
	IRQEnabled bool
	IRQPending bool
}

func (m *mmc3) SaveState() ([]byte, error) {
	return encodeState(mmc3State{
		Base: snapshotBase(&m.base),
		BankSelect: m.bankSelect, Reg: m.reg, MirrorBit: m.mirrorBit,
		IRQLatch: m.irqLatch, IRQCounter: m.irqCounter,
		IRQReload: m.irqReload, IRQEnabled: m.irqEnabled, IRQPending: m.irqPending,
	})
}

func (m *mmc3) LoadState(data []byte) error {
	var s mmc3State
	if err := decodeState(data, &s); err != nil {
		return err
	}
	restoreBase(&m.base, s.Base)
	m.bankSelect, m.reg, m.mirrorBit = s.BankSelect, s.Reg, s.MirrorBit
	m.irqLatch, m.irqCounter = s.IRQLatch, s.IRQCounter
	m.irqReload, m.irqEnabled, m.irqPending = s.IRQReload, s.IRQEnabled, s.IRQPending
	return nil
}

type axromState struct {
	Base baseState
	Bank uint8
}

func (m *axrom) SaveState() ([]byte, error) {
	return encodeState(axromState{Base: snapshotBase(&m.base), Bank: m.bank})
}

func (m *axrom) LoadState(data []byte) error {
	var s axromState
	if err := decodeState(data, &s); err != nil {
		return err
	}
	restoreBase(&m.base, s.Base)
	m.bank = s.Bank
	return nil
}

type sunsoft5bState struct {
	Base          baseState
	Command       uint8
	Chr           [8]uint8
	Prg           [3]uint8
	PrgRAMEnabled bool
	MirrorMode    uint8
	IRQEnabled    bool
	IRQCounter    uint16
	AudioSelect   uint8
	AudioRegs     [16]uint8
	Phase         [3]float64
}

func (m *sunsoft5b) SaveState() ([]byte, error) {
	return encodeState(sunsoft5bState{
		Base: snapshotBase(&m.base),
		Command: m.command, Chr: m.chr, Prg: m.prg,
		PrgRAMEnabled: m.prgRAMEnabled, MirrorMode: m.mirrorMode,
		IRQEnabled: m.irqEnabled, IRQCounter: m.irqCounter,
		AudioSelect: m.audioSelect, AudioRegs: m.audioRegs, Phase: m.phase,
	})
}

func (m *sunsoft5b) LoadState(data []byte) error {
	var s sunsoft5bState
	if err := decodeState(data, &s); err != nil {
		return err
	}
	restoreBase(&m.base, s.Base)
	m.command, m.chr, m.prg = s.Command, s.Chr, s.Prg
	m.prgRAMEnabled, m.mirrorMode = s.PrgRAMEnabled, s.MirrorMode
	m.irqEnabled, m.irqCounter = s.IRQEnabled, s.IRQCounter
	m.audioSelect, m.audioRegs, m.phase = s.AudioSelect, s.AudioRegs, s.Phase
	return nil
}
