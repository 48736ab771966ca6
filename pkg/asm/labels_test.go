package asm

import (
	"errors"
	"reflect"
	"testing"
)

func TestCollectLabels(t *testing.T) {
	lines := ClassifyLines([]string{
		"# header",
		"",
		"start: addi $1, $0, 5",
		"loop:",
		"a: b: add $1, $2, $3",
		"j later",
		"later:",
	})

	diag := &diagnostics{}
	table := NewAssembler(Options{}).collectLabels(lines, diag)

	want := map[string]uint32{
		"start": 0x00400000,
		"loop":  0x00400004,
		"a":     0x00400004,
		"b":     0x00400004,
		"later": 0x0040000C,
	}
	if got := table.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v; want %v", got, want)
	}
	if got, want := table.Names(), []string{"start", "loop", "a", "b", "later"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v; want %v", got, want)
	}
	if table.Len() != 5 {
		t.Errorf("Len() = %d; want 5", table.Len())
	}
	if diag.err() != nil {
		t.Errorf("unexpected errors: %v", diag.err())
	}
	if len(diag.events) != 5 {
		t.Errorf("got %d label events; want 5", len(diag.events))
	}
}

func TestCollectLabelsDuplicate(t *testing.T) {
	lines := ClassifyLines([]string{
		"x: add $1, $2, $3",
		"x: sub $1, $2, $3",
	})

	diag := &diagnostics{}
	table := NewAssembler(Options{}).collectLabels(lines, diag)

	if addr, _ := table.Lookup("x"); addr != 0x00400004 {
		t.Errorf("x = 0x%08x; want last definition 0x00400004", addr)
	}
	if got := table.Names(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("Names() = %v; want [x]", got)
	}

	var dup *DuplicateLabelError
	if !errors.As(diag.err(), &dup) {
		t.Fatalf("err = %v; want DuplicateLabelError", diag.err())
	}
	if dup.Line != 2 || dup.Previous != 0x00400000 || dup.Address != 0x00400004 {
		t.Errorf("DuplicateLabelError = %+v", dup)
	}
}

func TestCollectLabelsSkipsInvalidLines(t *testing.T) {
	lines := ClassifyLines([]string{
		"bad label: add $1, $2, $3",
		"ok: add $1, $2, $3",
	})

	diag := &diagnostics{}
	table := NewAssembler(Options{}).collectLabels(lines, diag)

	if addr, ok := table.Lookup("ok"); !ok || addr != 0x00400000 {
		t.Errorf("ok = 0x%08x, %v; want 0x00400000", addr, ok)
	}
	var invalid *InvalidLabelError
	if !errors.As(diag.err(), &invalid) {
		t.Errorf("err = %v; want InvalidLabelError", diag.err())
	}
}

func TestNilLabelTable(t *testing.T) {
	var table *LabelTable
	if _, ok := table.Lookup("x"); ok {
		t.Error("Lookup on nil table succeeded")
	}
	if table.Len() != 0 || table.Names() != nil || len(table.Map()) != 0 {
		t.Error("nil table is not empty")
	}
}

func TestLabelTableIsACopy(t *testing.T) {
	prog, err := AssembleString("start: add $1, $2, $3")
	if err != nil {
		t.Fatal(err)
	}
	m := prog.Labels.Map()
	m["start"] = 0
	names := prog.Labels.Names()
	names[0] = "other"

	if addr, _ := prog.Labels.Lookup("start"); addr != 0x00400000 {
		t.Errorf("table changed through Map(): start = 0x%08x", addr)
	}
	if got := prog.Labels.Names(); got[0] != "start" {
		t.Errorf("table changed through Names(): %v", got)
	}
}
