package cpu

type opKind int

const (
	kindImplied opKind = iota
	kindAccumulator
	kindRead
	kindWrite
	kindRMW
	kindBranch
	kindJMP
	kindJMPIndirect
	kindJSR
	kindRTS
	kindRTI
	kindPush
	kindPull
)

type opDef struct {
	name string
	mode AddressingMode
	kind opKind

	read  func(c *CPU, v uint8)
	rmw   func(c *CPU, v uint8) uint8
	impl  func(c *CPU)
	write func(c *CPU) uint8
	pull  func(c *CPU, v uint8)
	cond  func(c *CPU) bool
}

var opcodeTable [256]opDef

func def(opcode uint8, d opDef) {
	if d.name == "" {
		d.name = "???"
	}
	opcodeTable[opcode] = d
}

// --- ALU / register operations (read kind: mutate CPU from operand v) ---

func (c *CPU) adc(v uint8) {
	sum := uint16(c.A) + uint16(v)
	if c.C {
		sum++
	}
	result := uint8(sum)
	c.V = (^(c.A ^ v) & (c.A ^ result) & 0x80) != 0
	c.C = sum > 0xFF
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) sbc(v uint8) { c.adc(v ^ 0xFF) }

func opLDA(c *CPU, v uint8) { c.A = v; c.setZN(v) }
func opLDX(c *CPU, v uint8) { c.X = v; c.setZN(v) }
func opLDY(c *CPU, v uint8) { c.Y = v; c.setZN(v) }
func opAND(c *CPU, v uint8) { c.A &= v; c.setZN(c.A) }
func opORA(c *CPU, v uint8) { c.A |= v; c.setZN(c.A) }
func opEOR(c *CPU, v uint8) { c.A ^= v; c.setZN(c.A) }
func opADC(c *CPU, v uint8) { c.adc(v) }
func opSBC(c *CPU, v uint8) { c.sbc(v) }
func opBIT(c *CPU, v uint8) {
	c.Z = (c.A & v) == 0
	c.V = v&0x40 != 0
	c.N = v&0x80 != 0
}
func cmp(c *CPU, reg, v uint8) {
	r := reg - v
	c.C = reg >= v
	c.setZN(r)
}
func opCMP(c *CPU, v uint8) { cmp(c, c.A, v) }
func opCPX(c *CPU, v uint8) { cmp(c, c.X, v) }
func opCPY(c *CPU, v uint8) { cmp(c, c.Y, v) }

// --- unofficial read-class ops ---

func opLAX(c *CPU, v uint8) { c.A = v; c.X = v; c.setZN(v) }

// ANE/XAA: A = (A | magic) & X & M — documented unstable per spec.md §4.3.4.
func opANE(c *CPU, v uint8) {
	c.A = (c.A | c.Cfg.MagicConstant) & c.X & v
	c.setZN(c.A)
}

// LXA: A = X = (A | magic) & M.
func opLXA(c *CPU, v uint8) {
	c.A = (c.A | c.Cfg.MagicConstant) & v
	c.X = c.A
	c.setZN(c.A)
}

func opANC(c *CPU, v uint8) {
	c.A &= v
	c.setZN(c.A)
	c.C = c.A&0x80 != 0
}
func opALR(c *CPU, v uint8) {
	c.A &= v
	c.C = c.A&0x01 != 0
	c.A >>= 1
	c.setZN(c.A)
}
func opARR(c *CPU, v uint8) {
	c.A &= v
	c.A = (c.A >> 1) | boolBit(c.C)<<7
	c.setZN(c.A)
	c.C = c.A&0x40 != 0
	c.V = ((c.A>>6)^(c.A>>5))&1 != 0
}
func opSBX(c *CPU, v uint8) {
	r := (c.A & c.X) - v
	c.C = (c.A & c.X) >= v
	c.X = r
	c.setZN(c.X)
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// --- RMW-class ops (return new value; may also fold a register-side ALU
// step, as the SLO/RLA/SRE/RRA/DCP/ISC combined unofficial opcodes do) ---

func opASL(c *CPU, v uint8) uint8 {
	c.C = v&0x80 != 0
	r := v << 1
	c.setZN(r)
	return r
}
func opLSR(c *CPU, v uint8) uint8 {
	c.C = v&0x01 != 0
	r := v >> 1
	c.setZN(r)
	return r
}
func opROL(c *CPU, v uint8) uint8 {
	carryIn := boolBit(c.C)
	c.C = v&0x80 != 0
	r := (v << 1) | carryIn
	c.setZN(r)
	return r
}
func opROR(c *CPU, v uint8) uint8 {
	carryIn := boolBit(c.C)
	c.C = v&0x01 != 0
	r := (v >> 1) | (carryIn << 7)
	c.setZN(r)
	return r
}
func opINC(c *CPU, v uint8) uint8 { r := v + 1; c.setZN(r); return r }
func opDEC(c *CPU, v uint8) uint8 { r := v - 1; c.setZN(r); return r }

func opSLO(c *CPU, v uint8) uint8 { r := opASL(c, v); c.A |= r; c.setZN(c.A); return r }
func opRLA(c *CPU, v uint8) uint8 { r := opROL(c, v); c.A &= r; c.setZN(c.A); return r }
func opSRE(c *CPU, v uint8) uint8 { r := opLSR(c, v); c.A ^= r; c.setZN(c.A); return r }
func opRRA(c *CPU, v uint8) uint8 { r := opROR(c, v); c.adc(r); return r }
func opDCP(c *CPU, v uint8) uint8 { r := opDEC(c, v); cmp(c, c.A, r); return r }
func opISC(c *CPU, v uint8) uint8 { r := opINC(c, v); c.sbc(r); return r }

// --- write-class ops (return the byte to store) ---

func opSTA(c *CPU) uint8 { return c.A }
func opSTX(c *CPU) uint8 { return c.X }
func opSTY(c *CPU) uint8 { return c.Y }
func opSAX(c *CPU) uint8 { return c.A & c.X }

// SHA/SHX/SHY/SHS (unstable, "AND with high byte + 1" family): the high
// byte used is taken from the resolved address before any carry fixup,
// matching the common "no dropped-AND on page cross" branch spec.md §4.3.4
// leaves implementation-defined.
func opSHA(c *CPU) uint8 { return c.A & c.X & uint8(c.address>>8+1) }
func opSHX(c *CPU) uint8 { return c.X & uint8(c.address>>8+1) }
func opSHY(c *CPU) uint8 { return c.Y & uint8(c.address>>8+1) }
func opSHS(c *CPU) uint8 {
	c.S = c.A & c.X
	return c.S & uint8(c.address>>8+1)
}

// --- implied-class ops ---

func opCLC(c *CPU) { c.C = false }
func opSEC(c *CPU) { c.C = true }
func opCLI(c *CPU) { c.I = false }
func opSEI(c *CPU) { c.I = true }
func opCLV(c *CPU) { c.V = false }
func opCLD(c *CPU) { c.D = false }
func opSED(c *CPU) { c.D = true }
func opNOP(c *CPU) {}
func opTAX(c *CPU) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *CPU) { c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *CPU) { c.A = c.X; c.setZN(c.A) }
func opTYA(c *CPU) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU) { c.X = c.S; c.setZN(c.X) }
func opTXS(c *CPU) { c.S = c.X }
func opINX(c *CPU) { c.X++; c.setZN(c.X) }
func opINY(c *CPU) { c.Y++; c.setZN(c.Y) }
func opDEX(c *CPU) { c.X--; c.setZN(c.X) }
func opDEY(c *CPU) { c.Y--; c.setZN(c.Y) }

// --- push/pull ---

func pushA(c *CPU) uint8 { return c.A }
func pushP(c *CPU) uint8 { return c.status(true) }
func pullA(c *CPU, v uint8) { c.A = v; c.setZN(v) }
func pullP(c *CPU, v uint8) { c.setStatus(v) }

// --- branch conditions ---

func condCC(c *CPU) bool { return !c.C }
func condCS(c *CPU) bool { return c.C }
func condEQ(c *CPU) bool { return c.Z }
func condNE(c *CPU) bool { return !c.Z }
func condMI(c *CPU) bool { return c.N }
func condPL(c *CPU) bool { return !c.N }
func condVC(c *CPU) bool { return !c.V }
func condVS(c *CPU) bool { return c.V }

func init() {
	// Default fill: any opcode byte not explicitly assigned below behaves
	// as an implied-mode NOP (2 cycles). Real silicon's remaining undocumented opcodes
	// are NOP-equivalent variants not distinguished further here.
	for i := range opcodeTable {
		opcodeTable[i] = opDef{name: "NOP", kind: kindImplied, impl: opNOP}
	}

	// Official load/store/transfer.
	def(0xA9, opDef{name: "LDA", mode: Immediate, kind: kindRead, read: opLDA})
	def(0xA5, opDef{name: "LDA", mode: ZeroPage, kind: kindRead, read: opLDA})
	def(0xB5, opDef{name: "LDA", mode: ZeroPageX, kind: kindRead, read: opLDA})
	def(0xAD, opDef{name: "LDA", mode: Absolute, kind: kindRead, read: opLDA})
	def(0xBD, opDef{name: "LDA", mode: AbsoluteX, kind: kindRead, read: opLDA})
	def(0xB9, opDef{name: "LDA", mode: AbsoluteY, kind: kindRead, read: opLDA})
	def(0xA1, opDef{name: "LDA", mode: IndexedIndirect, kind: kindRead, read: opLDA})
	def(0xB1, opDef{name: "LDA", mode: IndirectIndexed, kind: kindRead, read: opLDA})

	def(0xA2, opDef{name: "LDX", mode: Immediate, kind: kindRead, read: opLDX})
	def(0xA6, opDef{name: "LDX", mode: ZeroPage, kind: kindRead, read: opLDX})
	def(0xB6, opDef{name: "LDX", mode: ZeroPageY, kind: kindRead, read: opLDX})
	def(0xAE, opDef{name: "LDX", mode: Absolute, kind: kindRead, read: opLDX})
	def(0xBE, opDef{name: "LDX", mode: AbsoluteY, kind: kindRead, read: opLDX})

	def(0xA0, opDef{name: "LDY", mode: Immediate, kind: kindRead, read: opLDY})
	def(0xA4, opDef{name: "LDY", mode: ZeroPage, kind: kindRead, read: opLDY})
	def(0xB4, opDef{name: "LDY", mode: ZeroPageX, kind: kindRead, read: opLDY})
	def(0xAC, opDef{name: "LDY", mode: Absolute, kind: kindRead, read: opLDY})
	def(0xBC, opDef{name: "LDY", mode: AbsoluteX, kind: kindRead, read: opLDY})

	def(0x85, opDef{name: "STA", mode: ZeroPage, kind: kindWrite, write: opSTA})
	def(0x95, opDef{name: "STA", mode: ZeroPageX, kind: kindWrite, write: opSTA})
	def(0x8D, opDef{name: "STA", mode: Absolute, kind: kindWrite, write: opSTA})
	def(0x9D, opDef{name: "STA", mode: AbsoluteX, kind: kindWrite, write: opSTA})
	def(0x99, opDef{name: "STA", mode: AbsoluteY, kind: kindWrite, write: opSTA})
	def(0x81, opDef{name: "STA", mode: IndexedIndirect, kind: kindWrite, write: opSTA})
	def(0x91, opDef{name: "STA", mode: IndirectIndexed, kind: kindWrite, write: opSTA})

	def(0x86, opDef{name: "STX", mode: ZeroPage, kind: kindWrite, write: opSTX})
	def(0x96, opDef{name: "STX", mode: ZeroPageY, kind: kindWrite, write: opSTX})
	def(0x8E, opDef{name: "STX", mode: Absolute, kind: kindWrite, write: opSTX})

	def(0x84, opDef{name: "STY", mode: ZeroPage, kind: kindWrite, write: opSTY})
	def(0x94, opDef{name: "STY", mode: ZeroPageX, kind: kindWrite, write: opSTY})
	def(0x8C, opDef{name: "STY", mode: Absolute, kind: kindWrite, write: opSTY})

	def(0xAA, opDef{name: "TAX", kind: kindImplied, impl: opTAX})
	def(0xA8, opDef{name: "TAY", kind: kindImplied, impl: opTAY})
	def(0x8A, opDef{name: "TXA", kind: kindImplied, impl: opTXA})
	def(0x98, opDef{name: "TYA", kind: kindImplied, impl: opTYA})
	def(0xBA, opDef{name: "TSX", kind: kindImplied, impl: opTSX})
	def(0x9A, opDef{name: "TXS", kind: kindImplied, impl: opTXS})

	// Stack.
	def(0x48, opDef{name: "PHA", kind: kindPush, write: pushA})
	def(0x08, opDef{name: "PHP", kind: kindPush, write: pushP})
	def(0x68, opDef{name: "PLA", kind: kindPull, pull: pullA})
	def(0x28, opDef{name: "PLP", kind: kindPull, pull: pullP})

	// Logic / arithmetic (read class).
	regAll := func(base uint8, name string, fn func(c *CPU, v uint8)) {
		def(base, opDef{name: name, mode: IndexedIndirect, kind: kindRead, read: fn})
		def(base+0x04, opDef{name: name, mode: ZeroPage, kind: kindRead, read: fn})
		def(base+0x08, opDef{name: name, mode: Immediate, kind: kindRead, read: fn})
		def(base+0x0C, opDef{name: name, mode: Absolute, kind: kindRead, read: fn})
		def(base+0x10, opDef{name: name, mode: IndirectIndexed, kind: kindRead, read: fn})
		def(base+0x14, opDef{name: name, mode: ZeroPageX, kind: kindRead, read: fn})
		def(base+0x18, opDef{name: name, mode: AbsoluteY, kind: kindRead, read: fn})
		def(base+0x1C, opDef{name: name, mode: AbsoluteX, kind: kindRead, read: fn})
	}
	regAll(0x01, "ORA", opORA)
	regAll(0x21, "AND", opAND)
	regAll(0x41, "EOR", opEOR)
	regAll(0x61, "ADC", opADC)
	regAll(0xC1, "CMP", opCMP)
	regAll(0xE1, "SBC", opSBC)

	def(0x24, opDef{name: "BIT", mode: ZeroPage, kind: kindRead, read: opBIT})
	def(0x2C, opDef{name: "BIT", mode: Absolute, kind: kindRead, read: opBIT})

	def(0xE0, opDef{name: "CPX", mode: Immediate, kind: kindRead, read: opCPX})
	def(0xE4, opDef{name: "CPX", mode: ZeroPage, kind: kindRead, read: opCPX})
	def(0xEC, opDef{name: "CPX", mode: Absolute, kind: kindRead, read: opCPX})
	def(0xC0, opDef{name: "CPY", mode: Immediate, kind: kindRead, read: opCPY})
	def(0xC4, opDef{name: "CPY", mode: ZeroPage, kind: kindRead, read: opCPY})
	def(0xCC, opDef{name: "CPY", mode: Absolute, kind: kindRead, read: opCPY})

	// RMW.
	regRMW := func(zp, zpx, abs, absx uint8, name string, fn func(c *CPU, v uint8) uint8) {
		def(zp, opDef{name: name, mode: ZeroPage, kind: kindRMW, rmw: fn})
		def(zpx, opDef{name: name, mode: ZeroPageX, kind: kindRMW, rmw: fn})
		def(abs, opDef{name: name, mode: Absolute, kind: kindRMW, rmw: fn})
		def(absx, opDef{name: name, mode: AbsoluteX, kind: kindRMW, rmw: fn})
	}
	regRMW(0x06, 0x16, 0x0E, 0x1E, "ASL", opASL)
	regRMW(0x46, 0x56, 0x4E, 0x5E, "LSR", opLSR)
	regRMW(0x26, 0x36, 0x2E, 0x3E, "ROL", opROL)
	regRMW(0x66, 0x76, 0x6E, 0x7E, "ROR", opROR)
	regRMW(0xE6, 0xF6, 0xEE, 0xFE, "INC", opINC)
	regRMW(0xC6, 0xD6, 0xCE, 0xDE, "DEC", opDEC)

	def(0x0A, opDef{name: "ASL", mode: Accumulator, kind: kindAccumulator, rmw: opASL})
	def(0x4A, opDef{name: "LSR", mode: Accumulator, kind: kindAccumulator, rmw: opLSR})
	def(0x2A, opDef{name: "ROL", mode: Accumulator, kind: kindAccumulator, rmw: opROL})
	def(0x6A, opDef{name: "ROR", mode: Accumulator, kind: kindAccumulator, rmw: opROR})

	// Flags/implied.
	def(0x18, opDef{name: "CLC", kind: kindImplied, impl: opCLC})
	def(0x38, opDef{name: "SEC", kind: kindImplied, impl: opSEC})
	def(0x58, opDef{name: "CLI", kind: kindImplied, impl: opCLI})
	def(0x78, opDef{name: "SEI", kind: kindImplied, impl: opSEI})
	def(0xB8, opDef{name: "CLV", kind: kindImplied, impl: opCLV})
	def(0xD8, opDef{name: "CLD", kind: kindImplied, impl: opCLD})
	def(0xF8, opDef{name: "SED", kind: kindImplied, impl: opSED})
	def(0xEA, opDef{name: "NOP", kind: kindImplied, impl: opNOP})
	def(0xE8, opDef{name: "INX", kind: kindImplied, impl: opINX})
	def(0xC8, opDef{name: "INY", kind: kindImplied, impl: opINY})
	def(0xCA, opDef{name: "DEX", kind: kindImplied, impl: opDEX})
	def(0x88, opDef{name: "DEY", kind: kindImplied, impl: opDEY})

	// Control flow.
	def(0x4C, opDef{name: "JMP", kind: kindJMP})
	def(0x6C, opDef{name: "JMP", kind: kindJMPIndirect})
	def(0x20, opDef{name: "JSR", kind: kindJSR})
	def(0x60, opDef{name: "RTS", kind: kindRTS})
	def(0x40, opDef{name: "RTI", kind: kindRTI})

	def(0x90, opDef{name: "BCC", kind: kindBranch, cond: condCC})
	def(0xB0, opDef{name: "BCS", kind: kindBranch, cond: condCS})
	def(0xF0, opDef{name: "BEQ", kind: kindBranch, cond: condEQ})
	def(0xD0, opDef{name: "BNE", kind: kindBranch, cond: condNE})
	def(0x30, opDef{name: "BMI", kind: kindBranch, cond: condMI})
	def(0x10, opDef{name: "BPL", kind: kindBranch, cond: condPL})
	def(0x50, opDef{name: "BVC", kind: kindBranch, cond: condVC})
	def(0x70, opDef{name: "BVS", kind: kindBranch, cond: condVS})

	// Unofficial: LAX, SAX.
	def(0xA7, opDef{name: "LAX", mode: ZeroPage, kind: kindRead, read: opLAX})
	def(0xB7, opDef{name: "LAX", mode: ZeroPageY, kind: kindRead, read: opLAX})
	def(0xAF, opDef{name: "LAX", mode: Absolute, kind: kindRead, read: opLAX})
	def(0xBF, opDef{name: "LAX", mode: AbsoluteY, kind: kindRead, read: opLAX})
	def(0xA3, opDef{name: "LAX", mode: IndexedIndirect, kind: kindRead, read: opLAX})
	def(0xB3, opDef{name: "LAX", mode: IndirectIndexed, kind: kindRead, read: opLAX})

	def(0x87, opDef{name: "SAX", mode: ZeroPage, kind: kindWrite, write: opSAX})
	def(0x97, opDef{name: "SAX", mode: ZeroPageY, kind: kindWrite, write: opSAX})
	def(0x8F, opDef{name: "SAX", mode: Absolute, kind: kindWrite, write: opSAX})
	def(0x83, opDef{name: "SAX", mode: IndexedIndirect, kind: kindWrite, write: opSAX})

	// Unofficial combined RMW: SLO, RLA, SRE, RRA, DCP, ISC.
	regRMWFull := func(zp, zpx, abs, absx, absy, indx, indy uint8, name string, fn func(c *CPU, v uint8) uint8) {
		def(zp, opDef{name: name, mode: ZeroPage, kind: kindRMW, rmw: fn})
		def(zpx, opDef{name: name, mode: ZeroPageX, kind: kindRMW, rmw: fn})
		def(abs, opDef{name: name, mode: Absolute, kind: kindRMW, rmw: fn})
		def(absx, opDef{name: name, mode: AbsoluteX, kind: kindRMW, rmw: fn})
		def(absy, opDef{name: name, mode: AbsoluteY, kind: kindRMW, rmw: fn})
		def(indx, opDef{name: name, mode: IndexedIndirect, kind: kindRMW, rmw: fn})
		def(indy, opDef{name: name, mode: IndirectIndexed, kind: kindRMW, rmw: fn})
	}
	regRMWFull(0x07, 0x17, 0x0F, 0x1F, 0x1B, 0x03, 0x13, "SLO", opSLO)
	regRMWFull(0x27, 0x37, 0x2F, 0x3F, 0x3B, 0x23, 0x33, "RLA", opRLA)
	regRMWFull(0x47, 0x57, 0x4F, 0x5F, 0x5B, 0x43, 0x53, "SRE", opSRE)
	regRMWFull(0x67, 0x77, 0x6F, 0x7F, 0x7B, 0x63, 0x73, "RRA", opRRA)
	regRMWFull(0xC7, 0xD7, 0xCF, 0xDF, 0xDB, 0xC3, 0xD3, "DCP", opDCP)
	regRMWFull(0xE7, 0xF7, 0xEF, 0xFF, 0xFB, 0xE3, 0xF3, "ISC", opISC)

	// Unofficial immediate-class.
	def(0x0B, opDef{name: "ANC", mode: Immediate, kind: kindRead, read: opANC})
	def(0x2B, opDef{name: "ANC", mode: Immediate, kind: kindRead, read: opANC})
	def(0x4B, opDef{name: "ALR", mode: Immediate, kind: kindRead, read: opALR})
	def(0x6B, opDef{name: "ARR", mode: Immediate, kind: kindRead, read: opARR})
	def(0xCB, opDef{name: "SBX", mode: Immediate, kind: kindRead, read: opSBX})
	def(0xEB, opDef{name: "SBC", mode: Immediate, kind: kindRead, read: opSBC})
	def(0x8B, opDef{name: "ANE", mode: Immediate, kind: kindRead, read: opANE})
	def(0xAB, opDef{name: "LXA", mode: Immediate, kind: kindRead, read: opLXA})

	// Unofficial high-byte-AND family.
	def(0x9F, opDef{name: "SHA", mode: AbsoluteY, kind: kindWrite, write: opSHA})
	def(0x93, opDef{name: "SHA", mode: IndirectIndexed, kind: kindWrite, write: opSHA})
	def(0x9E, opDef{name: "SHX", mode: AbsoluteY, kind: kindWrite, write: opSHX})
	def(0x9C, opDef{name: "SHY", mode: AbsoluteX, kind: kindWrite, write: opSHY})
	def(0x9B, opDef{name: "SHS", mode: AbsoluteY, kind: kindWrite, write: opSHS})
	def(0xBB, opDef{name: "LAS", mode: AbsoluteY, kind: kindRead, read: func(c *CPU, v uint8) {
		c.A = v & c.S
		c.X, c.S = c.A, c.A
		c.setZN(c.A)
	}})

	// Unofficial NOPs (various addressing modes, operand discarded).
	implNOP := opDef{name: "NOP", kind: kindImplied, impl: opNOP}
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		def(op, implNOP)
	}
	readNOP := func(op uint8, mode AddressingMode) {
		def(op, opDef{name: "NOP", mode: mode, kind: kindRead, read: func(c *CPU, v uint8) {}})
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		readNOP(op, Immediate)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		readNOP(op, ZeroPage)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		readNOP(op, ZeroPageX)
	}
	readNOP(0x0C, Absolute)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		readNOP(op, AbsoluteX)
	}

	// JAM/KIL opcodes: real hardware locks the bus; this module rewinds PC
	// so the opcode re-executes itself in 2-cycle passes forever rather
	// than modeling the bus lockup, since no licensed ROM executes them
	// intentionally.
	jam := opDef{name: "JAM", kind: kindImplied, impl: func(c *CPU) { c.PC-- }}
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		def(op, jam)
	}
}
