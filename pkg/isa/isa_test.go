package isa

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		mnemonic string
		format   Format
		opcode   uint8
		funct    uint8
		ok       bool
	}{
		{"add", FormatR, 0b000000, 0b100000, true},
		{"sub", FormatR, 0b000000, 0b100010, true},
		{"and", FormatR, 0b000000, 0b100100, true},
		{"or", FormatR, 0b000000, 0b100101, true},
		{"sll", FormatR, 0b000000, 0b000000, true},
		{"srl", FormatR, 0b000000, 0b000010, true},
		{"sllv", FormatR, 0b000000, 0b000100, true},
		{"srlv", FormatR, 0b000000, 0b000110, true},
		{"addi", FormatI, 0b001000, 0, true},
		{"andi", FormatI, 0b001100, 0, true},
		{"lw", FormatI, 0b100011, 0, true},
		{"sw", FormatI, 0b101011, 0, true},
		{"beq", FormatI, 0b000100, 0, true},
		{"bne", FormatI, 0b000101, 0, true},
		{"blez", FormatI, 0b000110, 0, true},
		{"bgtz", FormatI, 0b000111, 0, true},
		{"j", FormatJ, 0b000010, 0, true},
		{"ADD", FormatR, 0b000000, 0b100000, true},
		{"jal", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}

	for _, tc := range tests {
		op, ok := Lookup(tc.mnemonic)
		if ok != tc.ok {
			t.Errorf("Lookup(%q) ok = %v; want %v", tc.mnemonic, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if op.Format != tc.format || op.Opcode != tc.opcode || op.Funct != tc.funct {
			t.Errorf("Lookup(%q) = {%v %06b %06b}; want {%v %06b %06b}",
				tc.mnemonic, op.Format, op.Opcode, op.Funct, tc.format, tc.opcode, tc.funct)
		}
	}
}

func TestEncodeR(t *testing.T) {
	add, _ := Lookup("add")
	// add $1, $2, $3
	if got := EncodeR(add, 2, 3, 1, 0); got != 0x00430820 {
		t.Errorf("EncodeR(add, 2, 3, 1, 0) = %v; want 00430820", got)
	}
}

func TestEncodeIMasksImmediate(t *testing.T) {
	addi, _ := Lookup("addi")
	minusOne := int16(-1)
	got := EncodeI(addi, 0, 1, uint16(minusOne))
	if got != 0x2001FFFF {
		t.Errorf("EncodeI(addi, 0, 1, -1) = %v; want 2001ffff", got)
	}
}

func TestEncodeJ(t *testing.T) {
	j, _ := Lookup("j")
	got := EncodeJ(j, JumpTarget(0x00400010))
	if got != 0x08100004 {
		t.Errorf("EncodeJ(j, 0x00400010) = %v; want 08100004", got)
	}
}

func TestBranchOffset(t *testing.T) {
	tests := []struct {
		pc, target uint32
		want       uint16
	}{
		{0x00400004, 0x00400000, 0xFFFE},
		{0x00400000, 0x00400004, 0x0000},
		{0x00400000, 0x00400010, 0x0003},
		{0x00400008, 0x00400008, 0xFFFF},
	}
	for _, tc := range tests {
		got := BranchOffset(tc.pc, tc.target)
		if got != tc.want {
			t.Errorf("BranchOffset(0x%08x, 0x%08x) = 0x%04x; want 0x%04x", tc.pc, tc.target, got, tc.want)
		}
		if back := BranchTarget(tc.pc, got); back != tc.target {
			t.Errorf("BranchTarget(0x%08x, 0x%04x) = 0x%08x; want 0x%08x", tc.pc, got, back, tc.target)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, op := range Ops() {
		var w Word
		switch op.Format {
		case FormatR:
			w = EncodeR(op, 7, 9, 31, 0)
		case FormatI:
			w = EncodeI(op, 7, 9, 0xBEEF)
		case FormatJ:
			w = EncodeJ(op, 0x0123456)
		}

		f := Decode(w)
		if f.Opcode != op.Opcode {
			t.Errorf("%s: opcode = %06b; want %06b", op.Mnemonic, f.Opcode, op.Opcode)
		}
		got, ok := OpFor(f)
		if !ok || got.Mnemonic != op.Mnemonic {
			t.Errorf("%s: OpFor = %q, %v", op.Mnemonic, got.Mnemonic, ok)
		}

		switch op.Format {
		case FormatR:
			if f.Rs != 7 || f.Rt != 9 || f.Rd != 31 || f.Shamt != 0 || f.Funct != op.Funct {
				t.Errorf("%s: decoded %+v", op.Mnemonic, f)
			}
		case FormatI:
			if f.Rs != 7 || f.Rt != 9 || f.Imm != 0xBEEF {
				t.Errorf("%s: decoded %+v", op.Mnemonic, f)
			}
		case FormatJ:
			if f.Target != 0x0123456 {
				t.Errorf("%s: target = 0x%07x", op.Mnemonic, f.Target)
			}
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		word Word
		want string
	}{
		{0x00430820, "add $1, $2, $3"},
		{0x20010005, "addi $1, $0, 5"},
		{0x1020FFFE, "beq $0, $1, -2"},
		{0x8C480004, "lw $8, 4($2)"},
		{0x08100004, "j 0x00400010"},
		{0xFC000000, ".word 0xfc000000"},
		{0x0000003F, ".word 0x0000003f"},
	}
	for _, tc := range tests {
		if got := Disassemble(tc.word); got != tc.want {
			t.Errorf("Disassemble(%v) = %q; want %q", tc.word, got, tc.want)
		}
	}
}
