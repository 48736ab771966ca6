package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"gomips/pkg/asm"
	"gomips/pkg/isa"
	"gomips/pkg/utils"
)

const testSource = `# count down from five
start:  addi $t0, $zero, 5
loop:   addi $t0, $t0, -1
        bgtz $t0, loop
        j    start
`

func main() {
	_ = flag.Set("logtostderr", "true")
	reserveSlots := flag.Bool("reserve-label-slots", false, "let label-only lines occupy an instruction slot")
	holdOnError := flag.Bool("hold-address-on-error", false, "do not advance the address past lines that fail to assemble")
	flag.Parse()
	defer glog.Flush()

	lines := strings.Split(testSource, "\n")
	if flag.NArg() > 0 {
		var err error
		lines, err = utils.ReadLines(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			glog.Flush()
			os.Exit(1)
		}
	}

	printer := pp.New()
	printer.SetColoringEnabled(term.IsTerminal(int(os.Stdout.Fd())))

	a := asm.NewAssembler(asm.Options{
		ReserveLabelSlots:  *reserveSlots,
		HoldAddressOnError: *holdOnError,
		Reporter:           utils.GlogReporter{LabelLevel: 2},
	})
	prog, err := a.Assemble(lines)
	if prog == nil {
		fmt.Fprintln(os.Stderr, "assemble error:", err)
		glog.Flush()
		os.Exit(1)
	}

	dump(os.Stdout, printer, prog)
}

func dump(w io.Writer, printer *pp.PrettyPrinter, prog *asm.Program) {
	fmt.Fprintf(w, "Lines (%d)\n", len(prog.Lines))
	for _, l := range prog.Lines {
		fmt.Fprintf(w, "  %4d %-20s %-12s %s\n", l.Number, l.Kind, strings.Join(l.Labels, ","), l.Text)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Labels (%d)\n", prog.Labels.Len())
	for _, name := range prog.Labels.Names() {
		addr, _ := prog.Labels.Lookup(name)
		fmt.Fprintf(w, "  %-16s %08x\n", name, addr)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Program (%d)\n", len(prog.Records))
	for _, r := range prog.Records {
		fmt.Fprintf(w, "  %v  %-28s ; line %d\n", r, isa.Disassemble(r.Word), r.Line)
	}
	fmt.Fprintln(w)

	if errs := prog.Errors(); len(errs) > 0 {
		fmt.Fprintf(w, "Errors (%d)\n", len(errs))
		printer.Fprintln(w, errs)
	}
}
