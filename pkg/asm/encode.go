package asm

import (
	"fmt"
	"strconv"
	"strings"

	"gomips/pkg/isa"
)

// encodeLines is the second pass. It re-walks the classified lines from the
// base address and encodes every instruction against the finished table.
func (a *Assembler) encodeLines(lines []Line, labels *LabelTable, diag *diagnostics) []Record {
	records := make([]Record, 0, len(lines))
	address := a.base()

	for _, l := range lines {
		if !l.occupiesSlot(a.opts.ReserveLabelSlots) {
			continue
		}

		if !l.HasInstruction() {
			// reserved label slot
			address += 4
			continue
		}

		word, err := encodeInstruction(l.Text, l.Number, address, labels)
		if err != nil {
			diag.fail(l, err)
			if !a.opts.HoldAddressOnError {
				address += 4
			}
			continue
		}

		records = append(records, Record{Address: address, Word: word, Line: l.Number})
		address += 4
	}

	return records
}

func encodeInstruction(text string, lineNo int, address uint32, labels *LabelTable) (isa.Word, error) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0, fmt.Errorf("empty instruction on line %d", lineNo)
	}

	op, ok := isa.Lookup(tokens[0])
	if !ok {
		return 0, &UnknownMnemonicError{Line: lineNo, Mnemonic: tokens[0]}
	}
	ops := tokens[1:]

	switch op.Format {
	case isa.FormatR:
		return encodeRegister(op, ops, lineNo)
	case isa.FormatI:
		switch op.Class {
		case isa.ClassBranch:
			return encodeBranch(op, ops, lineNo, address, labels)
		case isa.ClassMemory:
			return encodeMemory(op, ops, strings.Contains(text, "("), lineNo)
		default:
			return encodeImmediate(op, ops, lineNo)
		}
	case isa.FormatJ:
		return encodeJump(op, ops, lineNo, labels)
	default:
		return 0, fmt.Errorf("unsupported format %v for %s on line %d", op.Format, op.Mnemonic, lineNo)
	}
}

// encodeRegister handles "op rd, rs, rt". The shift forms read their third
// operand as rt as well; shamt is always zero.
func encodeRegister(op isa.Op, ops []string, lineNo int) (isa.Word, error) {
	if len(ops) != 3 {
		return 0, &OperandCountError{Line: lineNo, Mnemonic: op.Mnemonic, Want: "3", Got: len(ops)}
	}
	regs, err := parseRegisters(ops, lineNo)
	if err != nil {
		return 0, err
	}
	rd, rs, rt := regs[0], regs[1], regs[2]
	return isa.EncodeR(op, rs, rt, rd, 0), nil
}

// encodeImmediate handles "op rt, rs, imm".
func encodeImmediate(op isa.Op, ops []string, lineNo int) (isa.Word, error) {
	if len(ops) != 3 {
		return 0, &OperandCountError{Line: lineNo, Mnemonic: op.Mnemonic, Want: "3", Got: len(ops)}
	}
	regs, err := parseRegisters(ops[:2], lineNo)
	if err != nil {
		return 0, err
	}
	imm, err := parseImmediate(ops[2], lineNo)
	if err != nil {
		return 0, err
	}
	return isa.EncodeI(op, regs[1], regs[0], imm), nil
}

// encodeMemory accepts both "op rt, rs, imm" and "op rt, imm(rs)".
func encodeMemory(op isa.Op, ops []string, offsetForm bool, lineNo int) (isa.Word, error) {
	if !offsetForm {
		return encodeImmediate(op, ops, lineNo)
	}

	var immTok, baseTok string
	switch len(ops) {
	case 2:
		immTok, baseTok = "0", ops[1]
	case 3:
		immTok, baseTok = ops[1], ops[2]
	default:
		return 0, &OperandCountError{Line: lineNo, Mnemonic: op.Mnemonic, Want: "2 or 3", Got: len(ops)}
	}

	rt, err := parseRegister(ops[0], lineNo)
	if err != nil {
		return 0, err
	}
	rs, err := parseRegister(baseTok, lineNo)
	if err != nil {
		return 0, err
	}
	imm, err := parseImmediate(immTok, lineNo)
	if err != nil {
		return 0, err
	}
	return isa.EncodeI(op, rs, rt, imm), nil
}

// encodeBranch handles "op rt, rs, label". blez and bgtz also take the
// two-operand "op rs, label" form with rt zero.
func encodeBranch(op isa.Op, ops []string, lineNo int, address uint32, labels *LabelTable) (isa.Word, error) {
	var rs, rt uint8
	var label string

	compareZero := op.Opcode == isa.OpcodeBLEZ || op.Opcode == isa.OpcodeBGTZ
	switch {
	case len(ops) == 3:
		regs, err := parseRegisters(ops[:2], lineNo)
		if err != nil {
			return 0, err
		}
		rt, rs, label = regs[0], regs[1], ops[2]
	case len(ops) == 2 && compareZero:
		r, err := parseRegister(ops[0], lineNo)
		if err != nil {
			return 0, err
		}
		rs, label = r, ops[1]
	default:
		want := "3"
		if compareZero {
			want = "2 or 3"
		}
		return 0, &OperandCountError{Line: lineNo, Mnemonic: op.Mnemonic, Want: want, Got: len(ops)}
	}

	target, ok := labels.Lookup(label)
	if !ok {
		return 0, &UndefinedLabelError{Line: lineNo, Mnemonic: op.Mnemonic, Label: label}
	}
	return isa.EncodeI(op, rs, rt, isa.BranchOffset(address, target)), nil
}

func encodeJump(op isa.Op, ops []string, lineNo int, labels *LabelTable) (isa.Word, error) {
	if len(ops) != 1 {
		return 0, &OperandCountError{Line: lineNo, Mnemonic: op.Mnemonic, Want: "1", Got: len(ops)}
	}
	target, ok := labels.Lookup(ops[0])
	if !ok {
		return 0, &UndefinedLabelError{Line: lineNo, Mnemonic: op.Mnemonic, Label: ops[0]}
	}
	return isa.EncodeJ(op, isa.JumpTarget(target)), nil
}

func parseRegisters(tokens []string, lineNo int) ([]uint8, error) {
	out := make([]uint8, len(tokens))
	for i, tok := range tokens {
		r, err := parseRegister(tok, lineNo)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// parseImmediate reads a decimal or 0x-prefixed hex literal, optionally
// signed, and truncates it to 16 bits.
func parseImmediate(token string, lineNo int) (uint16, error) {
	s := token
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	var v uint64
	var err error
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 64)
	} else {
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, &ImmediateError{Line: lineNo, Token: token, Err: err}
	}

	if neg {
		v = -v
	}
	return uint16(v & 0xFFFF), nil
}
