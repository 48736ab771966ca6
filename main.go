//go:build !js

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"

	"gomips/pkg/asm"
	"gomips/pkg/utils"
)

func main() {
	_ = flag.Set("logtostderr", "true")

	inPath := flag.String("in", "", "input assembly file path (or pass it as the first argument)")
	outPath := flag.String("out", "", "output object file path (default: input with .obj extension)")
	baseFlag := flag.String("base", fmt.Sprintf("0x%08x", asm.DefaultBase), "load address of the first instruction")
	reserveSlots := flag.Bool("reserve-label-slots", false, "let label-only lines occupy an instruction slot")
	holdOnError := flag.Bool("hold-address-on-error", false, "do not advance the address past lines that fail to assemble")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gomips [options] input.asm\n\nAssembles MIPS source into \"<address> <word>\" hex records.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	input := *inPath
	if input == "" && flag.NArg() > 0 {
		input = flag.Arg(0)
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in <file.asm> or an input path")
		flag.Usage()
		os.Exit(2)
	}

	base, err := parseAddress(*baseFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -base %q: %v\n", *baseFlag, err)
		os.Exit(2)
	}

	opts := asm.Options{
		Base:               base,
		ReserveLabelSlots:  *reserveSlots,
		HoldAddressOnError: *holdOnError,
		Reporter:           utils.GlogReporter{LabelLevel: 1},
	}

	prog, output, err := assembleFile(input, *outPath, opts)
	if err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}

	glog.V(1).Infof("Labels collected: %v", prog.Labels.Map())
	fmt.Printf("assembled %d instructions -> %s\n", len(prog.Records), output)

	if errs := prog.Errors(); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "%d line(s) could not be assembled\n", len(errs))
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

// assembleFile assembles inPath into outPath, deriving outPath from inPath
// when it is empty. Lines that fail to assemble are left out of the output
// and reported through opts.Reporter; only I/O and option errors are
// returned.
func assembleFile(inPath, outPath string, opts asm.Options) (*asm.Program, string, error) {
	fullPath, _, err := utils.GetPathInfo(inPath)
	if err != nil {
		return nil, "", err
	}

	lines, err := utils.ReadLines(fullPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read input file %q: %w", inPath, err)
	}

	prog, err := asm.NewAssembler(opts).Assemble(lines)
	if prog == nil {
		return nil, "", err
	}

	if outPath == "" {
		outPath = utils.ObjectPath(inPath)
	}
	if err := writeObject(outPath, prog); err != nil {
		return nil, "", fmt.Errorf("failed to write object file %q: %w", outPath, err)
	}

	return prog, outPath, nil
}

func writeObject(path string, prog *asm.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := prog.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	if v%4 != 0 {
		return 0, asm.ErrMisalignedBase
	}
	return uint32(v), nil
}
