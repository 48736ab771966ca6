// Package isa describes the supported MIPS instruction subset and the bit
// layouts of its three instruction formats.
package isa

import (
	"fmt"
	"strings"
)

type Word uint32

func (w Word) String() string {
	return fmt.Sprintf("%08x", uint32(w))
}

type Format int

const (
	FormatR Format = iota
	FormatI
	FormatJ
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatJ:
		return "J"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Class refines a format by how its operands are interpreted.
type Class int

const (
	ClassRegister Class = iota
	ClassImmediate
	ClassMemory
	ClassBranch
	ClassJump
)

const (
	OpcodeSpecial = 0x00
	OpcodeJ       = 0x02
	OpcodeBEQ     = 0x04
	OpcodeBNE     = 0x05
	OpcodeBLEZ    = 0x06
	OpcodeBGTZ    = 0x07
	OpcodeADDI    = 0x08
	OpcodeANDI    = 0x0C
	OpcodeLW      = 0x23
	OpcodeSW      = 0x2B
)

const (
	FunctSLL  = 0x00
	FunctSRL  = 0x02
	FunctSLLV = 0x04
	FunctSRLV = 0x06
	FunctADD  = 0x20
	FunctSUB  = 0x22
	FunctAND  = 0x24
	FunctOR   = 0x25
)

type Op struct {
	Mnemonic string
	Format   Format
	Class    Class
	Opcode   uint8
	Funct    uint8 // R format only
}

var ops = []Op{
	{"add", FormatR, ClassRegister, OpcodeSpecial, FunctADD},
	{"sub", FormatR, ClassRegister, OpcodeSpecial, FunctSUB},
	{"and", FormatR, ClassRegister, OpcodeSpecial, FunctAND},
	{"or", FormatR, ClassRegister, OpcodeSpecial, FunctOR},
	{"sll", FormatR, ClassRegister, OpcodeSpecial, FunctSLL},
	{"srl", FormatR, ClassRegister, OpcodeSpecial, FunctSRL},
	{"sllv", FormatR, ClassRegister, OpcodeSpecial, FunctSLLV},
	{"srlv", FormatR, ClassRegister, OpcodeSpecial, FunctSRLV},
	{"addi", FormatI, ClassImmediate, OpcodeADDI, 0},
	{"andi", FormatI, ClassImmediate, OpcodeANDI, 0},
	{"lw", FormatI, ClassMemory, OpcodeLW, 0},
	{"sw", FormatI, ClassMemory, OpcodeSW, 0},
	{"beq", FormatI, ClassBranch, OpcodeBEQ, 0},
	{"bne", FormatI, ClassBranch, OpcodeBNE, 0},
	{"blez", FormatI, ClassBranch, OpcodeBLEZ, 0},
	{"bgtz", FormatI, ClassBranch, OpcodeBGTZ, 0},
	{"j", FormatJ, ClassJump, OpcodeJ, 0},
}

var byMnemonic = func() map[string]Op {
	m := make(map[string]Op, len(ops))
	for _, op := range ops {
		m[op.Mnemonic] = op
	}
	return m
}()

// Lookup returns the table entry for a mnemonic. Mnemonics are matched
// case-insensitively.
func Lookup(mnemonic string) (Op, bool) {
	op, ok := byMnemonic[strings.ToLower(mnemonic)]
	return op, ok
}

// Ops returns a copy of the instruction table in declaration order.
func Ops() []Op {
	out := make([]Op, len(ops))
	copy(out, ops)
	return out
}

func EncodeR(op Op, rs, rt, rd, shamt uint8) Word {
	return Word(uint32(op.Opcode&0x3F)<<26 |
		uint32(rs&0x1F)<<21 |
		uint32(rt&0x1F)<<16 |
		uint32(rd&0x1F)<<11 |
		uint32(shamt&0x1F)<<6 |
		uint32(op.Funct&0x3F))
}

func EncodeI(op Op, rs, rt uint8, imm uint16) Word {
	return Word(uint32(op.Opcode&0x3F)<<26 |
		uint32(rs&0x1F)<<21 |
		uint32(rt&0x1F)<<16 |
		uint32(imm))
}

func EncodeJ(op Op, target uint32) Word {
	return Word(uint32(op.Opcode&0x3F)<<26 | target&0x03FFFFFF)
}

// BranchOffset returns the 16-bit word offset from the instruction at pc to
// target, relative to pc+4.
func BranchOffset(pc, target uint32) uint16 {
	delta := (int64(target) - int64(pc) - 4) / 4
	return uint16(delta & 0xFFFF)
}

// BranchTarget is the inverse of BranchOffset.
func BranchTarget(pc uint32, offset uint16) uint32 {
	return uint32(int64(pc) + 4 + int64(int16(offset))*4)
}

// JumpTarget returns the 26-bit word address field for a jump to addr.
func JumpTarget(addr uint32) uint32 {
	return (addr >> 2) & 0x03FFFFFF
}

// Fields holds every bit field of a word. Which ones are meaningful depends
// on the format implied by the opcode.
type Fields struct {
	Opcode uint8
	Rs     uint8
	Rt     uint8
	Rd     uint8
	Shamt  uint8
	Funct  uint8
	Imm    uint16
	Target uint32
}

func Decode(w Word) Fields {
	v := uint32(w)
	return Fields{
		Opcode: uint8(v >> 26),
		Rs:     uint8((v >> 21) & 0x1F),
		Rt:     uint8((v >> 16) & 0x1F),
		Rd:     uint8((v >> 11) & 0x1F),
		Shamt:  uint8((v >> 6) & 0x1F),
		Funct:  uint8(v & 0x3F),
		Imm:    uint16(v & 0xFFFF),
		Target: v & 0x03FFFFFF,
	}
}

// OpFor finds the table entry a decoded word was produced from.
func OpFor(f Fields) (Op, bool) {
	for _, op := range ops {
		if op.Opcode != f.Opcode {
			continue
		}
		if op.Format == FormatR && op.Funct != f.Funct {
			continue
		}
		return op, true
	}
	return Op{}, false
}

// Disassemble renders a word in the operand order the assembler accepts.
// Branch and jump targets are printed numerically: a branch shows its signed
// word offset, a jump its absolute byte address within the current region.
func Disassemble(w Word) string {
	f := Decode(w)
	op, ok := OpFor(f)
	if !ok {
		return fmt.Sprintf(".word 0x%08x", uint32(w))
	}

	switch op.Format {
	case FormatR:
		return fmt.Sprintf("%s $%d, $%d, $%d", op.Mnemonic, f.Rd, f.Rs, f.Rt)
	case FormatI:
		if op.Class == ClassMemory {
			return fmt.Sprintf("%s $%d, %d($%d)", op.Mnemonic, f.Rt, int16(f.Imm), f.Rs)
		}
		return fmt.Sprintf("%s $%d, $%d, %d", op.Mnemonic, f.Rt, f.Rs, int16(f.Imm))
	case FormatJ:
		return fmt.Sprintf("%s 0x%08x", op.Mnemonic, f.Target<<2)
	default:
		return fmt.Sprintf(".word 0x%08x", uint32(w))
	}
}
