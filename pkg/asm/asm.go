// Package asm is a two-pass assembler for a small MIPS subset. The first
// pass binds labels to addresses, the second encodes each instruction into
// a 32-bit word.
package asm

import (
	"fmt"
	"io"
	"strings"

	"gomips/pkg/isa"
)

// DefaultBase is the load address of the first instruction.
const DefaultBase uint32 = 0x00400000

type Options struct {
	// Base is the load address. Zero selects DefaultBase.
	Base uint32

	// ReserveLabelSlots makes a line holding only labels consume an
	// instruction slot, so its labels point at an empty word instead of
	// the next instruction.
	ReserveLabelSlots bool

	// HoldAddressOnError keeps the address counter still when a line fails
	// to encode. Later lines then shift down relative to the label table.
	HoldAddressOnError bool

	Reporter Reporter
}

type Assembler struct {
	opts Options
}

func NewAssembler(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

func (a *Assembler) base() uint32 {
	if a.opts.Base == 0 {
		return DefaultBase
	}
	return a.opts.Base
}

type Record struct {
	Address uint32
	Word    isa.Word
	Line    int
}

func (r Record) String() string {
	return fmt.Sprintf("%08x %v", r.Address, r.Word)
}

type Program struct {
	Base        uint32
	Records     []Record
	Labels      *LabelTable
	Lines       []Line
	Diagnostics []Event
}

// WriteTo writes one "<address> <word>" record per line.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, r := range p.Records {
		n, err := fmt.Fprintf(w, "%08x %08x\n", r.Address, uint32(r.Word))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (p *Program) String() string {
	var sb strings.Builder
	_, _ = p.WriteTo(&sb)
	return sb.String()
}

// Errors returns the error of every line that failed, in reporting order.
func (p *Program) Errors() []error {
	var errs []error
	for _, e := range p.Diagnostics {
		if e.Kind == EventError {
			errs = append(errs, e.Err)
		}
	}
	return errs
}

// Words returns the encoded words in address order.
func (p *Program) Words() []isa.Word {
	out := make([]isa.Word, len(p.Records))
	for i, r := range p.Records {
		out[i] = r.Word
	}
	return out
}

func Assemble(lines []string) (*Program, error) {
	return NewAssembler(Options{}).Assemble(lines)
}

func AssembleString(code string) (*Program, error) {
	return NewAssembler(Options{}).AssembleString(code)
}

func (a *Assembler) AssembleString(code string) (*Program, error) {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	return a.Assemble(strings.Split(code, "\n"))
}

// Assemble runs both passes over lines. The returned program is never nil
// unless the options are invalid; the error joins every line that could not
// be assembled.
func (a *Assembler) Assemble(lines []string) (*Program, error) {
	base := a.base()
	if base%4 != 0 {
		return nil, fmt.Errorf("base 0x%08x: %w", base, ErrMisalignedBase)
	}

	diag := &diagnostics{reporter: a.opts.Reporter}
	classified := ClassifyLines(lines)

	labels := a.collectLabels(classified, diag)
	records := a.encodeLines(classified, labels, diag)

	return &Program{
		Base:        base,
		Records:     records,
		Labels:      labels,
		Lines:       classified,
		Diagnostics: diag.events,
	}, diag.err()
}
