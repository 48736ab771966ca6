package asm

import (
	"errors"
	"fmt"
)

var ErrMisalignedBase = errors.New("base address must be a multiple of 4")

type UnknownMnemonicError struct {
	Line     int
	Mnemonic string
}

func (e *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("unknown instruction on line %d: %s", e.Line, e.Mnemonic)
}

type UndefinedLabelError struct {
	Line     int
	Mnemonic string
	Label    string
}

func (e *UndefinedLabelError) Error() string {
	return fmt.Sprintf("undefined label '%s' in %s on line %d", e.Label, e.Mnemonic, e.Line)
}

type InvalidRegisterError struct {
	Line  int
	Token string
}

func (e *InvalidRegisterError) Error() string {
	return fmt.Sprintf("invalid register '%s' on line %d", e.Token, e.Line)
}

// ImmediateError reports an immediate operand that is not an integer literal.
type ImmediateError struct {
	Line  int
	Token string
	Err   error
}

func (e *ImmediateError) Error() string {
	return fmt.Sprintf("invalid immediate '%s' on line %d", e.Token, e.Line)
}

func (e *ImmediateError) Unwrap() error { return e.Err }

type OperandCountError struct {
	Line     int
	Mnemonic string
	Want     string
	Got      int
}

func (e *OperandCountError) Error() string {
	return fmt.Sprintf("%s expects %s operands on line %d, got %d", e.Mnemonic, e.Want, e.Line, e.Got)
}

type InvalidLabelError struct {
	Line  int
	Label string
}

func (e *InvalidLabelError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("invalid label on line %d", e.Line)
	}
	return fmt.Sprintf("invalid label '%s' on line %d", e.Label, e.Line)
}

// DuplicateLabelError is reported when a label is redefined. The later
// definition replaces the earlier one.
type DuplicateLabelError struct {
	Line     int
	Label    string
	Previous uint32
	Address  uint32
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label '%s' on line %d (was 0x%08x, now 0x%08x)",
		e.Label, e.Line, e.Previous, e.Address)
}
