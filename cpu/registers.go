package cpu

// 8-bit register indices, shared by the load-group (0x40-0x7F), ALU-group
// (0x80-0xBF), and CB-prefixed opcode tables: the low 3 bits of those
// opcodes select a register or (HL) in this fixed order.
const (
	regB byte = iota
	regC
	regD
	regE
	regH
	regL
	regHLInd // not a register; selects the byte at (HL)
	regA
)

// reg8 reads an 8-bit operand selected by the 3-bit index used throughout
// the load, ALU, and CB tables.
func (c *Cpu) reg8(i byte) byte {
	switch i {
	case regB:
		return c.B
	case regC:
		return c.C
	case regD:
		return c.D
	case regE:
		return c.E
	case regH:
		return c.H
	case regL:
		return c.L
	case regHLInd:
		return c.Bus.Read8(c.HL())
	case regA:
		return c.A
	}
	panic("cpu: invalid register index")
}

// setReg8 writes an 8-bit operand selected by the same index reg8 uses.
func (c *Cpu) setReg8(i byte, v byte) {
	switch i {
	case regB:
		c.B = v
	case regC:
		c.C = v
	case regD:
		c.D = v
	case regE:
		c.E = v
	case regH:
		c.H = v
	case regL:
		c.L = v
	case regHLInd:
		c.Bus.Write8(c.HL(), v)
	case regA:
		c.A = v
	default:
		panic("cpu: invalid register index")
	}
}

// BC, DE, HL and AF are the four 16-bit register pairs. AF's low nibble is
// always masked to zero: the unused bits of F never read back set.
func (c *Cpu) BC() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *Cpu) DE() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *Cpu) HL() uint16 { return uint16(c.H)<<8 | uint16(c.L) }
func (c *Cpu) AF() uint16 { return uint16(c.A)<<8 | uint16(c.F&0xF0) }

func (c *Cpu) SetBC(v uint16) { c.B, c.C = byte(v>>8), byte(v) }
func (c *Cpu) SetDE(v uint16) { c.D, c.E = byte(v>>8), byte(v) }
func (c *Cpu) SetHL(v uint16) { c.H, c.L = byte(v>>8), byte(v) }
func (c *Cpu) SetAF(v uint16) { c.A, c.F = byte(v>>8), byte(v)&0xF0 }

// pair16 and setPair16 select one of BC/DE/HL/SP by the 2-bit index used in
// the 16-bit load/arithmetic opcode groups (0x01,0x11,0x21,0x31, etc).
func (c *Cpu) pair16(i byte) uint16 {
	switch i {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	case 3:
		return c.SP
	}
	panic("cpu: invalid register-pair index")
}

func (c *Cpu) setPair16(i byte, v uint16) {
	switch i {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	case 3:
		c.SP = v
	}
}

// pair16Stack is the same indexing used by PUSH/POP, where slot 3 is AF
// instead of SP.
func (c *Cpu) pair16Stack(i byte) uint16 {
	if i == 3 {
		return c.AF()
	}
	return c.pair16(i)
}

func (c *Cpu) setPair16Stack(i byte, v uint16) {
	if i == 3 {
		c.SetAF(v)
		return
	}
	c.setPair16(i, v)
}
