package asm

import (
	"errors"
	"fmt"
)

type EventKind int

const (
	EventLabel EventKind = iota
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventLabel:
		return "label"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a diagnostic produced while assembling. Label events carry Label
// and Address; error events carry Err.
type Event struct {
	Kind    EventKind
	Line    int
	Text    string
	Label   string
	Address uint32
	Err     error
}

func (e Event) String() string {
	switch e.Kind {
	case EventLabel:
		return fmt.Sprintf("label found: %s at address %08x", e.Label, e.Address)
	default:
		return fmt.Sprintf("%d (%s): %v", e.Line, e.Text, e.Err)
	}
}

type Reporter interface {
	Report(Event)
}

type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

const previewLen = 64

type diagnostics struct {
	reporter Reporter
	events   []Event
	errs     []error
}

func (d *diagnostics) emit(e Event) {
	d.events = append(d.events, e)
	if d.reporter != nil {
		d.reporter.Report(e)
	}
}

func (d *diagnostics) label(l Line, name string, addr uint32) {
	d.emit(Event{Kind: EventLabel, Line: l.Number, Text: preview(l.Raw), Label: name, Address: addr})
}

func (d *diagnostics) fail(l Line, err error) {
	d.errs = append(d.errs, err)
	d.emit(Event{Kind: EventError, Line: l.Number, Text: preview(l.Raw), Err: err})
}

func (d *diagnostics) err() error {
	return errors.Join(d.errs...)
}

func preview(raw string) string {
	if len(raw) > previewLen {
		return raw[:previewLen]
	}
	return raw
}
