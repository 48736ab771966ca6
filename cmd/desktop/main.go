package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"gomips/pkg/asm"
	"gomips/pkg/grid"
	"gomips/pkg/isa"
	"gomips/pkg/utils"
)

const (
	screenWidth  = 640
	screenHeight = 480
	margin       = 8
	lineHeight   = 16
	statusHeight = 20
	memoryCols   = 4
)

var (
	textColor  = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	errorColor = color.RGBA{0xff, 0x60, 0x60, 0xff}
)

type row struct {
	text string
	err  bool
}

type Viewer struct {
	name    string
	prog    *asm.Program
	listing []row
	memory  []row
	scroll  int
	showMem bool
}

func NewViewer(name string, prog *asm.Program) *Viewer {
	return &Viewer{
		name:    name,
		prog:    prog,
		listing: listingRows(prog),
		memory:  memoryRows(prog, memoryCols),
	}
}

func (v *Viewer) rows() []row {
	if v.showMem {
		return v.memory
	}
	return v.listing
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.showMem = !v.showMem
		v.scroll = 0
	}

	page := visibleRows(screenHeight)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		v.scroll++
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		v.scroll--
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		v.scroll += page
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		v.scroll -= page
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.scroll = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		v.scroll = len(v.rows())
	}
	_, dy := ebiten.Wheel()
	if dy != 0 {
		v.scroll -= int(dy)
	}
	v.scroll = clampScroll(v.scroll, len(v.rows()), page)

	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13
	rows := v.rows()
	page := visibleRows(screenHeight)

	for i := 0; i < page && v.scroll+i < len(rows); i++ {
		r := rows[v.scroll+i]
		c := textColor
		if r.err {
			c = errorColor
		}
		text.Draw(screen, r.text, face, margin, margin+(i+1)*lineHeight, c)
	}

	mode := "listing"
	if v.showMem {
		mode = "memory"
	}
	status := fmt.Sprintf("%s | %s | %d words | %d errors | Tab: toggle view",
		v.name, mode, len(v.prog.Records), len(v.prog.Errors()))
	ebitenutil.DebugPrintAt(screen, status, margin, screenHeight-statusHeight+2)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func visibleRows(height int) int {
	n := (height - margin - statusHeight) / lineHeight
	if n < 1 {
		return 1
	}
	return n
}

func clampScroll(scroll, total, page int) int {
	maxScroll := total - page
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// listingRows renders one row per record followed by one row per failed line.
func listingRows(prog *asm.Program) []row {
	rows := make([]row, 0, len(prog.Records))
	for _, r := range prog.Records {
		src := ""
		if r.Line > 0 && r.Line <= len(prog.Lines) {
			src = strings.TrimSpace(prog.Lines[r.Line-1].Raw)
		}
		rows = append(rows, row{text: fmt.Sprintf("%v  %-24s ; %s", r, isa.Disassemble(r.Word), src)})
	}
	for _, e := range prog.Diagnostics {
		if e.Kind == asm.EventError {
			rows = append(rows, row{text: fmt.Sprintf("line %d: %v", e.Line, e.Err), err: true})
		}
	}
	return rows
}

// memoryRows lays the program's words out by address, cols words per row.
// Slots without a word show dashes.
func memoryRows(prog *asm.Program, cols int) []row {
	if len(prog.Records) == 0 {
		return nil
	}

	last := prog.Records[len(prog.Records)-1]
	slots := int((last.Address-prog.Base)/4) + 1
	n := grid.Rows(slots, cols)

	cells := make([][]string, n)
	for y := range cells {
		cells[y] = make([]string, cols)
		for x := range cells[y] {
			cells[y][x] = "--------"
		}
	}
	for _, r := range prog.Records {
		x, y := grid.GetGridCoords(int((r.Address-prog.Base)/4), cols)
		cells[y][x] = r.Word.String()
	}

	rows := make([]row, n)
	for y, line := range cells {
		addr := prog.Base + uint32(y*cols*4)
		rows[y] = row{text: fmt.Sprintf("%08x: %s", addr, strings.Join(line, " "))}
	}
	return rows
}

func main() {
	_ = flag.Set("logtostderr", "true")
	reserveSlots := flag.Bool("reserve-label-slots", false, "let label-only lines occupy an instruction slot")
	holdOnError := flag.Bool("hold-address-on-error", false, "do not advance the address past lines that fail to assemble")
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: desktop [options] input.asm")
		os.Exit(2)
	}

	fullPath, _, err := utils.GetPathInfo(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to resolve source path: %v", err)
	}
	lines, err := utils.ReadLines(fullPath)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	prog, err := asm.NewAssembler(asm.Options{
		ReserveLabelSlots:  *reserveSlots,
		HoldAddressOnError: *holdOnError,
		Reporter:           utils.GlogReporter{LabelLevel: 1},
	}).Assemble(lines)
	if prog == nil {
		log.Fatalf("Assembly failed: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("gomips - " + filepath.Base(fullPath))

	if err := ebiten.RunGame(NewViewer(filepath.Base(fullPath), prog)); err != nil {
		log.Fatal(err)
	}
}
