package ppu

// State is the exported snapshot of PPU register, OAM, and palette RAM
// state for save states (spec.md §6's `ppu_regs+oam+nt_ram+palette`; the
// nametable RAM itself belongs to the cartridge mapper and is carried in
// the mapper's own save state, not here).
type State struct {
	Ctrl, Mask, Status uint8
	OAMAddr            uint8

	V, T uint16
	X    uint8
	W    bool

	ReadBuffer uint8

	OAM     [256]uint8
	Palette [32]uint8

	Scanline int
	Dot      int
	Frame    uint64
	OddFrame bool

	NtByte, AtByte, TileLo, TileHi uint8
	BgShiftLo, BgShiftHi           uint16
	AttrShiftLo, AttrShiftHi       uint16
	LatchAttrLo, LatchAttrHi       uint8

	Sprite0HitThisLine bool
	SuppressVBLOnce    bool
}

// Snapshot captures the PPU's register, timing, and internal RAM state.
func (p *PPU) Snapshot() State {
	return State{
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status,
		OAMAddr:    p.oamAddr,
		V:          p.v,
		T:          p.t,
		X:          p.x,
		W:          p.w,
		ReadBuffer: p.readBuffer,
		OAM:        p.oam,
		Palette:    p.palette,
		Scanline:   p.scanline,
		Dot:        p.dot,
		Frame:      p.frame,
		OddFrame:   p.oddFrame,
		NtByte:     p.ntByte, AtByte: p.atByte, TileLo: p.tileLo, TileHi: p.tileHi,
		BgShiftLo: p.bgShiftLo, BgShiftHi: p.bgShiftHi,
		AttrShiftLo: p.attrShiftLo, AttrShiftHi: p.attrShiftHi,
		LatchAttrLo: p.latchAttrLo, LatchAttrHi: p.latchAttrHi,
		Sprite0HitThisLine: p.sprite0HitThisLine,
		SuppressVBLOnce:    p.suppressVBLOnce,
	}
}

// Restore installs a previously captured State.
func (p *PPU) Restore(s State) {
	p.ctrl, p.mask, p.status = s.Ctrl, s.Mask, s.Status
	p.oamAddr = s.OAMAddr
	p.v, p.t, p.x, p.w = s.V, s.T, s.X, s.W
	p.readBuffer = s.ReadBuffer
	p.oam = s.OAM
	p.palette = s.Palette
	p.scanline, p.dot, p.frame, p.oddFrame = s.Scanline, s.Dot, s.Frame, s.OddFrame
	p.ntByte, p.atByte, p.tileLo, p.tileHi = s.NtByte, s.AtByte, s.TileLo, s.TileHi
	p.bgShiftLo, p.bgShiftHi = s.BgShiftLo, s.BgShiftHi
	p.attrShiftLo, p.attrShiftHi = s.AttrShiftLo, s.AttrShiftHi
	p.latchAttrLo, p.latchAttrHi = s.LatchAttrLo, s.LatchAttrHi
	p.sprite0HitThisLine = s.Sprite0HitThisLine
	p.suppressVBLOnce = s.SuppressVBLOnce
}
