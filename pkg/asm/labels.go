package asm

// LabelTable maps label names to addresses. It is filled by the label pass
// and only read afterwards.
type LabelTable struct {
	addrs map[string]uint32
	order []string
}

func newLabelTable() *LabelTable {
	return &LabelTable{addrs: make(map[string]uint32)}
}

func (t *LabelTable) Lookup(name string) (uint32, bool) {
	if t == nil {
		return 0, false
	}
	addr, ok := t.addrs[name]
	return addr, ok
}

func (t *LabelTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.addrs)
}

// Names returns label names in order of first definition.
func (t *LabelTable) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Map returns a copy of the bindings.
func (t *LabelTable) Map() map[string]uint32 {
	out := make(map[string]uint32, t.Len())
	if t == nil {
		return out
	}
	for k, v := range t.addrs {
		out[k] = v
	}
	return out
}

func (t *LabelTable) bind(name string, addr uint32) (prev uint32, redefined bool) {
	prev, redefined = t.addrs[name]
	if !redefined {
		t.order = append(t.order, name)
	}
	t.addrs[name] = addr
	return prev, redefined
}

// collectLabels is the first pass: it walks the classified lines, binds
// every label to the address of the slot it precedes and counts slots.
func (a *Assembler) collectLabels(lines []Line, diag *diagnostics) *LabelTable {
	table := newLabelTable()
	address := a.base()

	for _, l := range lines {
		switch l.Kind {
		case LineBlank, LineComment:
			continue
		case LineInvalid:
			diag.fail(l, l.Err)
			continue
		}

		for _, name := range l.Labels {
			prev, redefined := table.bind(name, address)
			if redefined {
				diag.fail(l, &DuplicateLabelError{Line: l.Number, Label: name, Previous: prev, Address: address})
			}
			diag.label(l, name, address)
		}

		if l.occupiesSlot(a.opts.ReserveLabelSlots) {
			address += 4
		}
	}

	return table
}
