package asm

import (
	"strings"
	"unicode"
)

type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineLabelOnly
	LineLabeledInstruction
	LineInstruction
	LineInvalid
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineLabelOnly:
		return "label"
	case LineLabeledInstruction:
		return "labeled-instruction"
	case LineInstruction:
		return "instruction"
	case LineInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Line is a classified source line. Both passes consume the same
// classification so they agree on which lines occupy an address.
type Line struct {
	Number int
	Raw    string
	Kind   LineKind
	Labels []string
	Text   string // instruction text with labels and comments removed
	Err    error  // set for LineInvalid
}

func (l Line) HasInstruction() bool {
	return l.Kind == LineInstruction || l.Kind == LineLabeledInstruction
}

func (l Line) occupiesSlot(reserveLabelSlots bool) bool {
	if l.HasInstruction() {
		return true
	}
	return reserveLabelSlots && l.Kind == LineLabelOnly
}

func ClassifyLines(lines []string) []Line {
	out := make([]Line, len(lines))
	for i, raw := range lines {
		out[i] = ClassifyLine(raw, i+1)
	}
	return out
}

func ClassifyLine(raw string, lineNo int) Line {
	l := Line{Number: lineNo, Raw: raw}

	line := strings.TrimSpace(raw)
	if line == "" {
		l.Kind = LineBlank
		return l
	}
	if strings.HasPrefix(line, "#") {
		l.Kind = LineComment
		return l
	}

	line = strings.TrimSpace(stripComment(line))

	for {
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			break
		}

		label := strings.TrimSpace(line[:colon])
		if !isIdentifier(label) {
			l.Kind = LineInvalid
			l.Err = &InvalidLabelError{Line: lineNo, Label: label}
			return l
		}

		l.Labels = append(l.Labels, label)
		line = strings.TrimSpace(line[colon+1:])
	}

	l.Text = line
	switch {
	case line == "":
		l.Kind = LineLabelOnly
	case len(l.Labels) > 0:
		l.Kind = LineLabeledInstruction
	default:
		l.Kind = LineInstruction
	}
	return l
}

func stripComment(line string) string {
	if hash := strings.IndexByte(line, '#'); hash >= 0 {
		return line[:hash]
	}
	return line
}

var operandSeparators = strings.NewReplacer(",", " ", "(", " ", ")", " ")

// Tokenize splits instruction text into mnemonic and operand tokens.
func Tokenize(text string) []string {
	return strings.Fields(operandSeparators.Replace(text))
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' && r != '.' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}

	return true
}
