// Package cpu implements the Core: the hybrid Z80/8080 processor at the
// center of the handheld, a register file plus a table-driven decoder for
// 256 primary and 256 CB-prefixed opcodes. The Core has no memory of its
// own; it reads and writes exclusively through a *mem.Bus.
package cpu

import (
	"errors"
	"fmt"

	"gbcore/mem"
)

// Cpu is the register file and execution state of the Core. There is
// exactly one per emulator session.
type Cpu struct {
	Bus *mem.Bus

	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP uint16
	PC uint16

	// IME is the interrupt master enable. EI is deferred by one instruction,
	// modeled by pendingIME: EI arms it, and the next Tick (the one running
	// the instruction after EI) commits IME=true. DI is not deferred: it
	// clears IME and any pending edge immediately.
	IME        bool
	pendingIME int // 0: no pending edge; 1: armed by EI last Tick; 2: committed this Tick

	Halt bool
	Stop bool

	// lastPC and lastMnemonic record the most recently fetched instruction,
	// purely for the crash dump and debug inspector; no opcode depends on
	// them.
	lastPC       uint16
	lastMnemonic string
}

// New returns a Cpu wired to bus. If bus has a boot overlay mapped in
// (§4.1), the Cpu starts at PC=0x0000 with the pre-boot hardware state
// (all registers and flags zero) and is expected to execute the boot image
// itself: the Boot Stub (C4) establishes SP, the post-boot register values,
// and the Z/N/H/C flags, then disables the overlay by writing 0xFF50 before
// falling into the cartridge's entry point at 0x0100, exactly as real
// hardware does. With no boot overlay, New skips straight to that post-boot
// state (§4.2) so a cartridge can be run without supplying a boot image.
func New(bus *mem.Bus) *Cpu {
	c := &Cpu{Bus: bus}
	if bus.BootActive() {
		return c
	}
	c.A, c.F = 0x01, 0xB0 // Z=1 N=0 H=1 C=1
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = true
	return c
}

// ErrOpNotImplemented is returned by Tick when the fetched byte falls in the
// reserved/unofficial opcode set (§4.2/§7): none of those 11 primary byte
// values has hardware-defined behavior.
var ErrOpNotImplemented = errors.New("cpu: opcode not implemented")

// ErrBusFault is returned by Tick when PC is fetched from 0xFF00-0xFFFF, the
// I/O register and interrupt-enable window: there is no executable program
// there, so a fetch from this range means the program jumped somewhere it
// should not have (§4.2/§7).
var ErrBusFault = errors.New("cpu: fetch from non-executable region")

// imm8 reads the byte at PC and advances PC past it.
func (c *Cpu) imm8() byte {
	v := c.Bus.Read8(c.PC)
	c.PC++
	return v
}

// imm16 reads the little-endian word at PC and advances PC past it.
func (c *Cpu) imm16() uint16 {
	v := c.Bus.Read16(c.PC)
	c.PC += 2
	return v
}

// simm8 reads a signed 8-bit immediate and advances PC past it.
func (c *Cpu) simm8() int8 {
	return int8(c.imm8())
}

// push16 pushes v onto the stack, high byte first, decrementing SP twice.
func (c *Cpu) push16(v uint16) {
	c.SP--
	c.Bus.Write8(c.SP, byte(v>>8))
	c.SP--
	c.Bus.Write8(c.SP, byte(v))
}

// pop16 pops a little-endian word off the stack, incrementing SP twice. This
// reads SP then SP+1 and restores SP symmetrically with push16, correcting
// the off-by-one stack bug the reference implementation carried (§9).
func (c *Cpu) pop16() uint16 {
	lo := c.Bus.Read8(c.SP)
	c.SP++
	hi := c.Bus.Read8(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// WakeFromHalt clears the HALT latch without performing a real interrupt
// dispatch. This is the seam an external wake source uses to resume
// execution; nothing in this module calls it, and the Frame Loop keeps
// billing idle cycles for as long as the latch stays set. Full interrupt
// dispatch is out of scope for this Core (§4.2).
func (c *Cpu) WakeFromHalt() {
	c.Halt = false
}

// LastDecoded returns the PC and mnemonic of the most recently fetched
// instruction, for the debug inspector and crash dump.
func (c *Cpu) LastDecoded() (pc uint16, mnemonic string) {
	return c.lastPC, c.lastMnemonic
}

// Tick fetches, decodes, and executes exactly one instruction, returning the
// number of T-states it consumed. If HALT or STOP is set, the caller should
// skip calling Tick and instead bill the fixed 4-cycle idle charge itself
// (§5); Tick does not do this on the caller's behalf so that the Frame Loop
// can observe the latch directly.
func (c *Cpu) Tick() (uint32, error) {
	if c.pendingIME == 1 {
		c.IME = true
		c.pendingIME = 2
	} else if c.pendingIME == 2 {
		c.pendingIME = 0
	}

	pc := c.PC
	if pc >= 0xFF00 {
		return 0, fmt.Errorf("%w: PC=0x%04X", ErrBusFault, pc)
	}

	op := c.imm8()

	if op == 0xCB {
		cb := c.imm8()
		table := &cbOpcodes[cb]
		c.lastPC = pc
		c.lastMnemonic = table.Name
		return uint32(table.Exec(c)), nil
	}

	if illegalOpcode[op] {
		c.lastPC = pc
		c.lastMnemonic = primaryOpcodes[op].Name
		return 0, fmt.Errorf("%w: 0x%02X at 0x%04X", ErrOpNotImplemented, op, pc)
	}

	table := &primaryOpcodes[op]
	c.lastPC = pc
	c.lastMnemonic = table.Name
	return uint32(table.Exec(c)), nil
}

// armEI schedules IME=true to take effect after the next instruction
// finishes, per the deferred EI edge (§4.2, §9).
func (c *Cpu) armEI() {
	c.pendingIME = 1
}

// clearIME disables interrupts immediately; DI is not deferred.
func (c *Cpu) clearIME() {
	c.IME = false
	c.pendingIME = 0
}
