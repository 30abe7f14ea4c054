package cpu

import "fmt"

// An Opcode pairs a human-readable mnemonic (for the debug inspector and
// crash dump) with the handler that performs the fetch-of-operands,
// execution, and PC/flag updates for one instruction. Exec returns the
// actual number of T-states consumed, which for conditional branches,
// CALL/RET, and JR depends on whether the condition held.
type Opcode struct {
	Name string
	Exec func(c *Cpu) int
}

// primaryOpcodes and cbOpcodes are indexed directly by the fetched byte.
// Every slot has an entry except primary 0xCB, the prefix byte, which Tick
// intercepts before consulting primaryOpcodes; the reserved bytes carry a
// name but no handler.
var primaryOpcodes [256]Opcode
var cbOpcodes [256]Opcode

// illegalOpcode marks the primary byte values with no hardware-defined
// behavior; Tick checks this before dispatching to primaryOpcodes and
// returns ErrOpNotImplemented rather than executing the table entry.
var illegalOpcode [256]bool

var illegalPrimary = [...]byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

// aluName/rotName/reg8Name give CB/ALU table entries readable mnemonics.
var aluName = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
var rotName = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
var reg8Name = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// pairName/stackName/condName name the 16-bit register-pair and condition
// tables pair16/pair16Stack/condition index into.
var pairName = [4]string{"BC", "DE", "HL", "SP"}
var stackName = [4]string{"BC", "DE", "HL", "AF"}
var condName = [4]string{"NZ", "Z", "NC", "C"}

func init() {
	for _, op := range illegalPrimary {
		illegalOpcode[op] = true
		primaryOpcodes[op] = Opcode{Name: fmt.Sprintf("ILLEGAL_%02X", op)}
	}

	initPrimaryFixed()
	initPairGroup()
	initStackGroup()
	initCondGroup()
	initLoadGroup()
	initALUGroup()
	initCBGroup()
}

// initPairGroup fills the regular 16-bit register-pair opcode family — LD
// rr,d16, INC rr, DEC rr, ADD HL,rr — one instance per pair16/setPair16
// index (0=BC, 1=DE, 2=HL, 3=SP).
func initPairGroup() {
	for pair := byte(0); pair < 4; pair++ {
		pair := pair
		base := pair * 0x10
		name := pairName[pair]

		primaryOpcodes[base+0x01] = Opcode{
			Name: fmt.Sprintf("LD %s,d16", name),
			Exec: func(c *Cpu) int { c.setPair16(pair, c.imm16()); return 12 },
		}
		primaryOpcodes[base+0x03] = Opcode{
			Name: fmt.Sprintf("INC %s", name),
			Exec: func(c *Cpu) int { c.setPair16(pair, c.pair16(pair)+1); return 8 },
		}
		primaryOpcodes[base+0x0B] = Opcode{
			Name: fmt.Sprintf("DEC %s", name),
			Exec: func(c *Cpu) int { c.setPair16(pair, c.pair16(pair)-1); return 8 },
		}
		primaryOpcodes[base+0x09] = Opcode{
			Name: fmt.Sprintf("ADD HL,%s", name),
			Exec: func(c *Cpu) int { c.addHL(c.pair16(pair)); return 8 },
		}
	}
}

// initStackGroup fills PUSH/POP (0xC1-0xF5 on the C1/C5 diagonal), using
// pair16Stack/setPair16Stack where slot 3 is AF instead of SP.
func initStackGroup() {
	for pair := byte(0); pair < 4; pair++ {
		pair := pair
		base := 0xC0 + pair*0x10
		name := stackName[pair]

		primaryOpcodes[base+0x01] = Opcode{
			Name: fmt.Sprintf("POP %s", name),
			Exec: func(c *Cpu) int { c.setPair16Stack(pair, c.pop16()); return 12 },
		}
		primaryOpcodes[base+0x05] = Opcode{
			Name: fmt.Sprintf("PUSH %s", name),
			Exec: func(c *Cpu) int { c.push16(c.pair16Stack(pair)); return 16 },
		}
	}
}

// initCondGroup fills the conditional JR/JP/CALL/RET family, using
// condition's 2-bit index (0=NZ, 1=Z, 2=NC, 3=C).
func initCondGroup() {
	for cc := byte(0); cc < 4; cc++ {
		cc := cc
		name := condName[cc]

		primaryOpcodes[0x20+cc*0x08] = Opcode{
			Name: fmt.Sprintf("JR %s,r8", name),
			Exec: func(c *Cpu) int { return c.jrCond(c.condition(cc)) },
		}
		primaryOpcodes[0xC2+cc*0x08] = Opcode{
			Name: fmt.Sprintf("JP %s,a16", name),
			Exec: func(c *Cpu) int { return c.jpCond(c.condition(cc)) },
		}
		primaryOpcodes[0xC4+cc*0x08] = Opcode{
			Name: fmt.Sprintf("CALL %s,a16", name),
			Exec: func(c *Cpu) int { return c.callCond(c.condition(cc)) },
		}
		primaryOpcodes[0xC0+cc*0x08] = Opcode{
			Name: fmt.Sprintf("RET %s", name),
			Exec: func(c *Cpu) int { return c.retCond(c.condition(cc)) },
		}
	}
}

// initLoadGroup fills 0x40-0x7F, the 8-bit register-to-register load block,
// with 0x76 (what would be LD (HL),(HL)) overridden as HALT.
func initLoadGroup() {
	for op := 0x40; op <= 0x7F; op++ {
		op := byte(op)
		dst := (op >> 3) & 0x07
		src := op & 0x07

		if op == 0x76 {
			primaryOpcodes[op] = Opcode{Name: "HALT", Exec: execHALT}
			continue
		}

		name := fmt.Sprintf("LD %s,%s", reg8Name[dst], reg8Name[src])
		cycles := 4
		if dst == regHLInd || src == regHLInd {
			cycles = 8
		}
		primaryOpcodes[op] = Opcode{Name: name, Exec: makeLoadR(dst, src, cycles)}
	}
}

func makeLoadR(dst, src byte, cycles int) func(c *Cpu) int {
	return func(c *Cpu) int {
		c.setReg8(dst, c.reg8(src))
		return cycles
	}
}

// initALUGroup fills 0x80-0xBF, ADD/ADC/SUB/SBC/AND/XOR/OR/CP against A and
// an 8-bit register or (HL).
func initALUGroup() {
	for op := 0x80; op <= 0xBF; op++ {
		op := byte(op)
		group := (op >> 3) & 0x07
		src := op & 0x07

		cycles := 4
		if src == regHLInd {
			cycles = 8
		}
		name := fmt.Sprintf("%s A,%s", aluName[group], reg8Name[src])
		primaryOpcodes[op] = Opcode{Name: name, Exec: makeALU(group, cycles, func(c *Cpu) byte { return c.reg8(src) })}
	}
}

// makeALU dispatches to the shared 8-bit ALU core; operand() supplies the
// right-hand operand so the same builder serves both the register/(HL) form
// (0x80-0xBF) and the immediate form (0xC6,0xCE,0xD6,...).
func makeALU(group byte, cycles int, operand func(c *Cpu) byte) func(c *Cpu) int {
	return func(c *Cpu) int {
		v := operand(c)
		switch group {
		case 0:
			c.aluAdd(v, false)
		case 1:
			c.aluAdd(v, c.cy())
		case 2:
			c.aluSub(v, false)
		case 3:
			c.aluSub(v, c.cy())
		case 4:
			c.aluAnd(v)
		case 5:
			c.aluXor(v)
		case 6:
			c.aluOr(v)
		case 7:
			c.aluCp(v)
		}
		return cycles
	}
}

// initCBGroup fills all 256 CB-prefixed opcodes: rotate/shift (0x00-0x3F),
// BIT (0x40-0x7F), RES (0x80-0xBF), SET (0xC0-0xFF).
func initCBGroup() {
	for op := 0; op <= 0xFF; op++ {
		op := byte(op)
		reg := op & 0x07
		cycles := 8
		if reg == regHLInd {
			cycles = 16
		}

		switch {
		case op < 0x40:
			kind := (op >> 3) & 0x07
			cbOpcodes[op] = Opcode{
				Name: fmt.Sprintf("%s %s", rotName[kind], reg8Name[reg]),
				Exec: makeShift(kind, reg, cycles),
			}
		case op < 0x80:
			bit := (op >> 3) & 0x07
			bitCycles := cycles
			if reg == regHLInd {
				bitCycles = 12 // BIT (HL) has no write-back
			}
			cbOpcodes[op] = Opcode{
				Name: fmt.Sprintf("BIT %d,%s", bit, reg8Name[reg]),
				Exec: makeBIT(bit, reg, bitCycles),
			}
		case op < 0xC0:
			bit := (op >> 3) & 0x07
			cbOpcodes[op] = Opcode{
				Name: fmt.Sprintf("RES %d,%s", bit, reg8Name[reg]),
				Exec: makeRES(bit, reg, cycles),
			}
		default:
			bit := (op >> 3) & 0x07
			cbOpcodes[op] = Opcode{
				Name: fmt.Sprintf("SET %d,%s", bit, reg8Name[reg]),
				Exec: makeSET(bit, reg, cycles),
			}
		}
	}
}

func makeShift(kind, reg byte, cycles int) func(c *Cpu) int {
	return func(c *Cpu) int {
		v := c.reg8(reg)
		var out byte
		switch kind {
		case 0:
			out = c.rlc(v)
		case 1:
			out = c.rrc(v)
		case 2:
			out = c.rl(v)
		case 3:
			out = c.rr(v)
		case 4:
			out = c.sla(v)
		case 5:
			out = c.sra(v)
		case 6:
			out = c.swap(v)
		case 7:
			out = c.srl(v)
		}
		c.setReg8(reg, out)
		return cycles
	}
}

func makeBIT(bit, reg byte, cycles int) func(c *Cpu) int {
	return func(c *Cpu) int {
		v := c.reg8(reg)
		c.setZ(v&(1<<bit) == 0)
		c.setN(false)
		c.setH(true)
		return cycles
	}
}

func makeRES(bit, reg byte, cycles int) func(c *Cpu) int {
	return func(c *Cpu) int {
		c.setReg8(reg, c.reg8(reg)&^(1<<bit))
		return cycles
	}
}

func makeSET(bit, reg byte, cycles int) func(c *Cpu) int {
	return func(c *Cpu) int {
		c.setReg8(reg, c.reg8(reg)|(1<<bit))
		return cycles
	}
}

// initPrimaryFixed fills every primary opcode not covered by the regular
// load/ALU/pair/stack/condition blocks.
func initPrimaryFixed() {
	o := func(op byte, name string, cycles int, exec func(c *Cpu)) {
		primaryOpcodes[op] = Opcode{Name: name, Exec: func(c *Cpu) int { exec(c); return cycles }}
	}
	ocond := func(op byte, name string, exec func(c *Cpu) int) {
		primaryOpcodes[op] = Opcode{Name: name, Exec: exec}
	}

	o(0x00, "NOP", 4, func(c *Cpu) {})
	o(0x02, "LD (BC),A", 8, func(c *Cpu) { c.Bus.Write8(c.BC(), c.A) })
	o(0x04, "INC B", 4, func(c *Cpu) { c.B = c.inc8(c.B) })
	o(0x05, "DEC B", 4, func(c *Cpu) { c.B = c.dec8(c.B) })
	o(0x06, "LD B,d8", 8, func(c *Cpu) { c.B = c.imm8() })
	o(0x07, "RLCA", 4, func(c *Cpu) { c.A = c.rlc(c.A); c.setZ(false) })
	o(0x08, "LD (a16),SP", 20, func(c *Cpu) { c.Bus.Write16(c.imm16(), c.SP) })
	o(0x0A, "LD A,(BC)", 8, func(c *Cpu) { c.A = c.Bus.Read8(c.BC()) })
	o(0x0C, "INC C", 4, func(c *Cpu) { c.C = c.inc8(c.C) })
	o(0x0D, "DEC C", 4, func(c *Cpu) { c.C = c.dec8(c.C) })
	o(0x0E, "LD C,d8", 8, func(c *Cpu) { c.C = c.imm8() })
	o(0x0F, "RRCA", 4, func(c *Cpu) { c.A = c.rrc(c.A); c.setZ(false) })

	// STOP is encoded with a trailing 0x00 byte; both bytes are consumed. The
	// value of the trailing byte is not checked.
	o(0x10, "STOP", 4, func(c *Cpu) { c.imm8(); c.Stop = true })
	o(0x12, "LD (DE),A", 8, func(c *Cpu) { c.Bus.Write8(c.DE(), c.A) })
	o(0x14, "INC D", 4, func(c *Cpu) { c.D = c.inc8(c.D) })
	o(0x15, "DEC D", 4, func(c *Cpu) { c.D = c.dec8(c.D) })
	o(0x16, "LD D,d8", 8, func(c *Cpu) { c.D = c.imm8() })
	o(0x17, "RLA", 4, func(c *Cpu) { c.A = c.rl(c.A); c.setZ(false) })
	ocond(0x18, "JR r8", func(c *Cpu) int { c.jr(); return 12 })
	o(0x1A, "LD A,(DE)", 8, func(c *Cpu) { c.A = c.Bus.Read8(c.DE()) })
	o(0x1C, "INC E", 4, func(c *Cpu) { c.E = c.inc8(c.E) })
	o(0x1D, "DEC E", 4, func(c *Cpu) { c.E = c.dec8(c.E) })
	o(0x1E, "LD E,d8", 8, func(c *Cpu) { c.E = c.imm8() })
	o(0x1F, "RRA", 4, func(c *Cpu) { c.A = c.rr(c.A); c.setZ(false) })

	o(0x22, "LD (HL+),A", 8, func(c *Cpu) { c.Bus.Write8(c.HL(), c.A); c.SetHL(c.HL() + 1) })
	o(0x24, "INC H", 4, func(c *Cpu) { c.H = c.inc8(c.H) })
	o(0x25, "DEC H", 4, func(c *Cpu) { c.H = c.dec8(c.H) })
	o(0x26, "LD H,d8", 8, func(c *Cpu) { c.H = c.imm8() })
	o(0x27, "DAA", 4, func(c *Cpu) { c.daa() })
	o(0x2A, "LD A,(HL+)", 8, func(c *Cpu) { c.A = c.Bus.Read8(c.HL()); c.SetHL(c.HL() + 1) })
	o(0x2C, "INC L", 4, func(c *Cpu) { c.L = c.inc8(c.L) })
	o(0x2D, "DEC L", 4, func(c *Cpu) { c.L = c.dec8(c.L) })
	o(0x2E, "LD L,d8", 8, func(c *Cpu) { c.L = c.imm8() })
	o(0x2F, "CPL", 4, func(c *Cpu) { c.A = ^c.A; c.setN(true); c.setH(true) })

	o(0x32, "LD (HL-),A", 8, func(c *Cpu) { c.Bus.Write8(c.HL(), c.A); c.SetHL(c.HL() - 1) })
	o(0x33, "INC SP", 8, func(c *Cpu) { c.SP++ })
	o(0x34, "INC (HL)", 12, func(c *Cpu) { c.Bus.Write8(c.HL(), c.inc8(c.Bus.Read8(c.HL()))) })
	o(0x35, "DEC (HL)", 12, func(c *Cpu) { c.Bus.Write8(c.HL(), c.dec8(c.Bus.Read8(c.HL()))) })
	o(0x36, "LD (HL),d8", 12, func(c *Cpu) { c.Bus.Write8(c.HL(), c.imm8()) })
	o(0x37, "SCF", 4, func(c *Cpu) { c.setN(false); c.setH(false); c.setC(true) })
	o(0x3A, "LD A,(HL-)", 8, func(c *Cpu) { c.A = c.Bus.Read8(c.HL()); c.SetHL(c.HL() - 1) })
	o(0x3B, "DEC SP", 8, func(c *Cpu) { c.SP-- })
	o(0x3C, "INC A", 4, func(c *Cpu) { c.A = c.inc8(c.A) })
	o(0x3D, "DEC A", 4, func(c *Cpu) { c.A = c.dec8(c.A) })
	o(0x3E, "LD A,d8", 8, func(c *Cpu) { c.A = c.imm8() })
	o(0x3F, "CCF", 4, func(c *Cpu) { c.setN(false); c.setH(false); c.setC(!c.cy()) })

	ocond(0xC3, "JP a16", func(c *Cpu) int { c.PC = c.imm16(); return 16 })
	o(0xC6, "ADD A,d8", 8, func(c *Cpu) { c.aluAdd(c.imm8(), false) })
	ocond(0xC7, "RST 00H", func(c *Cpu) int { c.rst(0x00); return 16 })
	ocond(0xC9, "RET", func(c *Cpu) int { c.PC = c.pop16(); return 16 })
	// 0xCB is intercepted in Tick before this table is consulted.
	ocond(0xCD, "CALL a16", func(c *Cpu) int { addr := c.imm16(); c.push16(c.PC); c.PC = addr; return 24 })
	o(0xCE, "ADC A,d8", 8, func(c *Cpu) { c.aluAdd(c.imm8(), c.cy()) })
	ocond(0xCF, "RST 08H", func(c *Cpu) int { c.rst(0x08); return 16 })

	o(0xD6, "SUB d8", 8, func(c *Cpu) { c.aluSub(c.imm8(), false) })
	ocond(0xD7, "RST 10H", func(c *Cpu) int { c.rst(0x10); return 16 })
	ocond(0xD9, "RETI", func(c *Cpu) int { c.PC = c.pop16(); c.IME = true; return 16 })
	o(0xDE, "SBC A,d8", 8, func(c *Cpu) { c.aluSub(c.imm8(), c.cy()) })
	ocond(0xDF, "RST 18H", func(c *Cpu) int { c.rst(0x18); return 16 })

	o(0xE0, "LDH (a8),A", 12, func(c *Cpu) { c.Bus.Write8(0xFF00+uint16(c.imm8()), c.A) })
	o(0xE2, "LD (C),A", 8, func(c *Cpu) { c.Bus.Write8(0xFF00+uint16(c.C), c.A) })
	o(0xE6, "AND d8", 8, func(c *Cpu) { c.aluAnd(c.imm8()) })
	ocond(0xE7, "RST 20H", func(c *Cpu) int { c.rst(0x20); return 16 })
	ocond(0xE8, "ADD SP,r8", func(c *Cpu) int { c.SP = c.addSPSigned(c.simm8()); return 16 })
	// JP (HL): the corrected behavior jumps to HL directly rather than
	// dereferencing it (§9).
	ocond(0xE9, "JP (HL)", func(c *Cpu) int { c.PC = c.HL(); return 4 })
	o(0xEA, "LD (a16),A", 16, func(c *Cpu) { c.Bus.Write8(c.imm16(), c.A) })
	o(0xEE, "XOR d8", 8, func(c *Cpu) { c.aluXor(c.imm8()) })
	ocond(0xEF, "RST 28H", func(c *Cpu) int { c.rst(0x28); return 16 })

	o(0xF0, "LDH A,(a8)", 12, func(c *Cpu) { c.A = c.Bus.Read8(0xFF00 + uint16(c.imm8())) })
	o(0xF2, "LD A,(C)", 8, func(c *Cpu) { c.A = c.Bus.Read8(0xFF00 + uint16(c.C)) })
	o(0xF3, "DI", 4, func(c *Cpu) { c.clearIME() })
	o(0xF6, "OR d8", 8, func(c *Cpu) { c.aluOr(c.imm8()) })
	ocond(0xF7, "RST 30H", func(c *Cpu) int { c.rst(0x30); return 16 })
	o(0xF8, "LD HL,SP+r8", 12, func(c *Cpu) { c.SetHL(c.addSPSigned(c.simm8())) })
	o(0xF9, "LD SP,HL", 8, func(c *Cpu) { c.SP = c.HL() })
	o(0xFA, "LD A,(a16)", 16, func(c *Cpu) { c.A = c.Bus.Read8(c.imm16()) })
	o(0xFB, "EI", 4, func(c *Cpu) { c.armEI() })
	o(0xFE, "CP d8", 8, func(c *Cpu) { c.aluCp(c.imm8()) })
	ocond(0xFF, "RST 38H", func(c *Cpu) int { c.rst(0x38); return 16 })
}
