package cpu

// buildSteps returns the post-fetch step list for opcode, or for the
// BRK-shaped interrupt sequence when interrupting is true (opcode is
// always 0x00 in that case; isBRK distinguishes genuine software BRK from
// a hardware NMI/IRQ/reset injection).
func buildSteps(opcode uint8, interrupting bool) []step {
	if opcode == 0x00 {
		return buildInterruptSteps(!interrupting)
	}
	def := &opcodeTable[opcode]
	switch def.kind {
	case kindImplied:
		return []step{func(c *CPU) { c.Bus.Read(c.PC); def.impl(c) }}
	case kindAccumulator:
		return []step{func(c *CPU) {
			c.Bus.Read(c.PC)
			c.A = def.rmw(c, c.A)
		}}
	case kindRead:
		return buildReadSteps(def.mode, def.read)
	case kindWrite:
		return buildWriteSteps(def.mode, def.write)
	case kindRMW:
		return buildRMWSteps(def.mode, def.rmw)
	case kindBranch:
		return buildBranchSteps(def.cond)
	case kindJMP:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { hi := c.Bus.Read(c.PC); c.PC++; c.PC = uint16(hi)<<8 | c.address },
		}
	case kindJMPIndirect:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(lo) },
			func(c *CPU) { hi := c.Bus.Read(c.PC); c.PC++; c.pointer |= uint16(hi) << 8 },
			func(c *CPU) { c.address = uint16(c.Bus.Read(c.pointer)) },
			func(c *CPU) {
				hiAddr := (c.pointer & 0xFF00) | ((c.pointer + 1) & 0x00FF)
				hi := c.Bus.Read(hiAddr)
				c.PC = uint16(hi)<<8 | c.address
			},
		}
	case kindJSR:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { c.Bus.Read(stackBase + uint16(c.S)) },
			func(c *CPU) { c.push(uint8(c.PC >> 8)) },
			func(c *CPU) { c.push(uint8(c.PC)) },
			func(c *CPU) { hi := c.Bus.Read(c.PC); c.PC = uint16(hi)<<8 | c.address },
		}
	case kindRTS:
		return []step{
			func(c *CPU) { c.Bus.Read(c.PC) },
			func(c *CPU) { c.Bus.Read(stackBase + uint16(c.S)) },
			func(c *CPU) { c.address = uint16(c.pop()) },
			func(c *CPU) { hi := c.pop(); c.PC = uint16(hi)<<8 | c.address },
			func(c *CPU) { c.Bus.Read(c.PC); c.PC++ },
		}
	case kindRTI:
		return []step{
			func(c *CPU) { c.Bus.Read(c.PC) },
			func(c *CPU) { c.Bus.Read(stackBase + uint16(c.S)) },
			func(c *CPU) { c.setStatus(c.pop()) },
			func(c *CPU) { c.address = uint16(c.pop()) },
			func(c *CPU) { hi := c.pop(); c.PC = uint16(hi)<<8 | c.address },
		}
	case kindPush:
		return []step{
			func(c *CPU) { c.Bus.Read(c.PC) },
			func(c *CPU) { c.push(def.write(c)) },
		}
	case kindPull:
		return []step{
			func(c *CPU) { c.Bus.Read(c.PC) },
			func(c *CPU) { c.Bus.Read(stackBase + uint16(c.S)) },
			func(c *CPU) { def.pull(c, c.pop()) },
		}
	default:
		return []step{func(c *CPU) { c.Bus.Read(c.PC) }}
	}
}

// buildInterruptSteps builds the shared 6-cycle BRK/NMI/IRQ/RESET shape,
// per spec.md §4.3.2. isBRK is true only for a genuinely fetched BRK
// opcode, in which case the signature byte advances PC and the pushed P
// has the B bit set.
func buildInterruptSteps(isBRK bool) []step {
	return []step{
		func(c *CPU) {
			c.Bus.Read(c.PC)
			if isBRK {
				c.PC++
			}
		},
		func(c *CPU) {
			hi := uint8(c.PC >> 8)
			if c.resetPending {
				c.Bus.Read(stackBase + uint16(c.S))
				c.S--
			} else {
				c.push(hi)
			}
		},
		func(c *CPU) {
			lo := uint8(c.PC)
			if c.resetPending {
				c.Bus.Read(stackBase + uint16(c.S))
				c.S--
			} else {
				c.push(lo)
			}
		},
		func(c *CPU) {
			p := c.status(isBRK)
			if c.resetPending {
				c.Bus.Read(stackBase + uint16(c.S))
				c.S--
			} else {
				c.push(p)
			}
		},
		func(c *CPU) {
			vector, _, _ := c.vectorFor(isBRK)
			lo := c.Bus.Read(vector)
			c.address = uint16(lo)
		},
		func(c *CPU) {
			vector, _, _ := c.vectorFor(isBRK)
			hi := c.Bus.Read(vector + 1)
			c.PC = uint16(hi)<<8 | c.address
			c.I = true
			c.clearInterruptLatch()
		},
	}
}

func (c *CPU) vectorFor(isBRK bool) (vector uint16, pushB bool, isReset bool) {
	switch {
	case isBRK:
		return irqVector, true, false
	case c.resetPending:
		return resetVector, false, true
	case c.handleNMI:
		return nmiVector, false, false
	default:
		return irqVector, false, false
	}
}

func buildReadSteps(mode AddressingMode, fn func(c *CPU, v uint8)) []step {
	switch mode {
	case Immediate:
		return []step{func(c *CPU) {
			v := c.Bus.Read(c.PC)
			c.PC++
			fn(c, v)
		}}
	case ZeroPage:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { fn(c, c.Bus.Read(c.address)) },
		}
	case ZeroPageX, ZeroPageY:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { c.Bus.Read(c.address); c.address = uint16(uint8(c.address) + indexFor(c, mode)) },
			func(c *CPU) { fn(c, c.Bus.Read(c.address)) },
		}
	case Absolute:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { hi := c.Bus.Read(c.PC); c.PC++; c.address |= uint16(hi) << 8 },
			func(c *CPU) { fn(c, c.Bus.Read(c.address)) },
		}
	case AbsoluteX, AbsoluteY:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(lo) },
			func(c *CPU) {
				hi := c.Bus.Read(c.PC)
				c.PC++
				idx := indexFor(c, mode)
				base := uint16(hi)<<8 | c.pointer
				c.target = base + uint16(idx)
				c.address = uint16(hi)<<8 | ((c.pointer + uint16(idx)) & 0x00FF)
			},
			func(c *CPU) {
				v := c.Bus.Read(c.address)
				if c.address == c.target {
					fn(c, v)
					c.stepIdx = len(c.steps)
				}
			},
			func(c *CPU) { fn(c, c.Bus.Read(c.target)) },
		}
	case IndexedIndirect:
		return []step{
			func(c *CPU) { zp := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(zp) },
			func(c *CPU) { c.Bus.Read(c.pointer) },
			func(c *CPU) {
				c.pointer = (c.pointer + uint16(c.X)) & 0x00FF
				lo := c.Bus.Read(c.pointer)
				c.address = uint16(lo)
			},
			func(c *CPU) {
				hi := c.Bus.Read((c.pointer + 1) & 0x00FF)
				c.address |= uint16(hi) << 8
			},
			func(c *CPU) { fn(c, c.Bus.Read(c.address)) },
		}
	case IndirectIndexed:
		return []step{
			func(c *CPU) { zp := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(zp) },
			func(c *CPU) { lo := c.Bus.Read(c.pointer); c.address = uint16(lo) },
			func(c *CPU) {
				hi := c.Bus.Read((c.pointer + 1) & 0x00FF)
				base := uint16(hi)<<8 | (c.address & 0x00FF)
				c.target = base + uint16(c.Y)
				c.address = uint16(hi)<<8 | ((c.address + uint16(c.Y)) & 0x00FF)
			},
			func(c *CPU) {
				v := c.Bus.Read(c.address)
				if c.address == c.target {
					fn(c, v)
					c.stepIdx = len(c.steps)
				}
			},
			func(c *CPU) { fn(c, c.Bus.Read(c.target)) },
		}
	default:
		return []step{func(c *CPU) {}}
	}
}

func buildWriteSteps(mode AddressingMode, value func(c *CPU) uint8) []step {
	switch mode {
	case ZeroPage:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { c.Bus.Write(c.address, value(c)) },
		}
	case ZeroPageX, ZeroPageY:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { c.Bus.Read(c.address); c.address = uint16(uint8(c.address) + indexFor(c, mode)) },
			func(c *CPU) { c.Bus.Write(c.address, value(c)) },
		}
	case Absolute:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { hi := c.Bus.Read(c.PC); c.PC++; c.address |= uint16(hi) << 8 },
			func(c *CPU) { c.Bus.Write(c.address, value(c)) },
		}
	case AbsoluteX, AbsoluteY:
		return []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(lo) },
			func(c *CPU) {
				hi := c.Bus.Read(c.PC)
				c.PC++
				idx := indexFor(c, mode)
				c.target = uint16(hi)<<8 | c.pointer + uint16(idx)
				c.address = uint16(hi)<<8 | ((c.pointer + uint16(idx)) & 0x00FF)
			},
			func(c *CPU) { c.Bus.Read(c.address) },
			func(c *CPU) { c.Bus.Write(c.target, value(c)) },
		}
	case IndexedIndirect:
		return []step{
			func(c *CPU) { zp := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(zp) },
			func(c *CPU) { c.Bus.Read(c.pointer) },
			func(c *CPU) {
				c.pointer = (c.pointer + uint16(c.X)) & 0x00FF
				lo := c.Bus.Read(c.pointer)
				c.address = uint16(lo)
			},
			func(c *CPU) {
				hi := c.Bus.Read((c.pointer + 1) & 0x00FF)
				c.address |= uint16(hi) << 8
			},
			func(c *CPU) { c.Bus.Write(c.address, value(c)) },
		}
	case IndirectIndexed:
		return []step{
			func(c *CPU) { zp := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(zp) },
			func(c *CPU) { lo := c.Bus.Read(c.pointer); c.address = uint16(lo) },
			func(c *CPU) {
				hi := c.Bus.Read((c.pointer + 1) & 0x00FF)
				c.target = uint16(hi)<<8 | (c.address & 0x00FF) + uint16(c.Y)
				c.address = uint16(hi)<<8 | ((c.address + uint16(c.Y)) & 0x00FF)
			},
			func(c *CPU) { c.Bus.Read(c.address) },
			func(c *CPU) { c.Bus.Write(c.target, value(c)) },
		}
	default:
		return []step{func(c *CPU) {}}
	}
}

func buildRMWSteps(mode AddressingMode, fn func(c *CPU, v uint8) uint8) []step {
	access := func(addr func(c *CPU) uint16) []step {
		return []step{
			func(c *CPU) { c.operand = c.Bus.Read(addr(c)) },
			func(c *CPU) { c.Bus.Write(addr(c), c.operand) },
			func(c *CPU) { c.operand = fn(c, c.operand); c.Bus.Write(addr(c), c.operand) },
		}
	}
	switch mode {
	case ZeroPage:
		head := []step{func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) }}
		return append(head, access(func(c *CPU) uint16 { return c.address })...)
	case ZeroPageX:
		head := []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { c.Bus.Read(c.address); c.address = uint16(uint8(c.address) + c.X) },
		}
		return append(head, access(func(c *CPU) uint16 { return c.address })...)
	case Absolute:
		head := []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.address = uint16(lo) },
			func(c *CPU) { hi := c.Bus.Read(c.PC); c.PC++; c.address |= uint16(hi) << 8 },
		}
		return append(head, access(func(c *CPU) uint16 { return c.address })...)
	case AbsoluteX, AbsoluteY:
		head := []step{
			func(c *CPU) { lo := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(lo) },
			func(c *CPU) {
				hi := c.Bus.Read(c.PC)
				c.PC++
				idx := indexFor(c, mode)
				c.target = uint16(hi)<<8 | c.pointer + uint16(idx)
				c.address = uint16(hi)<<8 | ((c.pointer + uint16(idx)) & 0x00FF)
			},
			func(c *CPU) { c.Bus.Read(c.address) },
		}
		return append(head, access(func(c *CPU) uint16 { return c.target })...)
	case IndexedIndirect:
		head := []step{
			func(c *CPU) { zp := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(zp) },
			func(c *CPU) { c.Bus.Read(c.pointer) },
			func(c *CPU) {
				c.pointer = (c.pointer + uint16(c.X)) & 0x00FF
				lo := c.Bus.Read(c.pointer)
				c.address = uint16(lo)
			},
			func(c *CPU) {
				hi := c.Bus.Read((c.pointer + 1) & 0x00FF)
				c.address |= uint16(hi) << 8
			},
		}
		return append(head, access(func(c *CPU) uint16 { return c.address })...)
	case IndirectIndexed:
		head := []step{
			func(c *CPU) { zp := c.Bus.Read(c.PC); c.PC++; c.pointer = uint16(zp) },
			func(c *CPU) { lo := c.Bus.Read(c.pointer); c.address = uint16(lo) },
			func(c *CPU) {
				hi := c.Bus.Read((c.pointer + 1) & 0x00FF)
				c.target = uint16(hi)<<8 | (c.address & 0x00FF) + uint16(c.Y)
				c.address = uint16(hi)<<8 | ((c.address + uint16(c.Y)) & 0x00FF)
			},
			func(c *CPU) { c.Bus.Read(c.address) },
		}
		return append(head, access(func(c *CPU) uint16 { return c.target })...)
	default:
		return []step{func(c *CPU) {}}
	}
}

func buildBranchSteps(cond func(c *CPU) bool) []step {
	return []step{
		func(c *CPU) {
			off := int8(c.Bus.Read(c.PC))
			c.PC++
			if !cond(c) {
				c.stepIdx = len(c.steps)
				return
			}
			c.target = uint16(int32(c.PC) + int32(off))
		},
		func(c *CPU) {
			c.Bus.Read(c.PC)
			if c.target&0xFF00 == c.PC&0xFF00 {
				c.PC = c.target
				c.stepIdx = len(c.steps)
				return
			}
			c.PC = (c.PC & 0xFF00) | (c.target & 0x00FF)
		},
		func(c *CPU) {
			c.Bus.Read(c.PC)
			c.PC = c.target
		},
	}
}

func indexFor(c *CPU, mode AddressingMode) uint8 {
	switch mode {
	case ZeroPageX, AbsoluteX:
		return c.X
	case ZeroPageY, AbsoluteY:
		return c.Y
	default:
		return 0
	}
}
