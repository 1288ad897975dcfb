package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"multiverse/src/base"
	"multiverse/src/convert/convfen"
)

// ANSI-code
const (
	reset   = "\033[0m"
	lightBg = "\033[47m"
	darkBg  = "\033[100m"
	markBg  = "\033[43m"
	whiteF  = "\033[97m"
	blackF  = "\033[30m"
	dimF    = "\033[90m"
)

// cell is three columns wide, plus the rank column and a gap
const (
	cellW  = 3
	rankW  = 3
	gapW   = 2
	minCol = 20
)

// Piece -> unicode glyph for the classic set, other pieces print as letters
var pieceGlyph = map[rune]string{
	'K': "♔", 'Q': "♕", 'R': "♖", 'B': "♗", 'N': "♘", 'P': "♙",
	'k': "♚", 'q': "♛", 'r': "♜", 'b': "♝", 'n': "♞", 'p': "♟",
}

type DumpOptions struct {
	Width   int  // terminal columns, boards of one layer wrap past it
	Color   bool // ANSI colours
	Unicode bool // chess glyphs instead of letters
}

type dumpBoard struct {
	base.Board
	grid base.Grid
}

// Dump prints every board of the snapshot, one layer per band, with the
// highlighted squares marked and the present column starred
func Dump(w io.Writer, s *base.Snapshot, opt DumpOptions) error {
	lx, ly := base.DefaultLengthX, base.DefaultLengthY
	if s.Size != nil {
		lx, ly = s.Size.X, s.Size.Y
	}

	layers := make(map[int][]dumpBoard)
	for _, b := range s.Boards {
		if b.FEN == "" {
			continue
		}
		g, err := convfen.ConvertFENToGrid(b.FEN, lx, ly)
		if err != nil {
			return fmt.Errorf("board %s: %w", b.Pos, err)
		}
		layers[b.L] = append(layers[b.L], dumpBoard{Board: b, grid: g})
	}
	keys := make([]int, 0, len(layers))
	for l := range layers {
		keys = append(keys, l)
	}
	sort.Ints(keys)

	marked := make(map[base.Square]bool)
	for _, h := range s.Highlights {
		for _, sq := range h.Coordinates {
			marked[sq] = true
		}
	}

	width := max(opt.Width, minCol)
	boardW := rankW + lx*cellW + gapW
	perRow := max(width/boardW, 1)

	d := dumper{w: w, opt: opt, lx: lx, ly: ly, marked: marked, present: s.Present}
	for _, l := range keys {
		row := layers[l]
		sort.Slice(row, func(i, j int) bool { return row[i].V() < row[j].V() })
		for len(row) > 0 {
			n := min(perRow, len(row))
			d.band(row[:n])
			row = row[n:]
		}
	}
	return d.err
}

type dumper struct {
	w       io.Writer
	opt     DumpOptions
	lx, ly  int
	marked  map[base.Square]bool
	present *base.Present
	err     error
}

func (d *dumper) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *dumper) band(boards []dumpBoard) {
	inner := d.lx * cellW
	for _, b := range boards {
		title := b.Pos.String()
		if d.present != nil && d.present.V() == b.V() {
			title += "*"
		}
		d.printf("%*s%-*s%*s", rankW, "", inner, title, gapW, "")
	}
	d.printf("\n")

	for row := 0; row < d.ly; row++ {
		rank := d.ly - row
		for _, b := range boards {
			d.printf("%2d ", rank)
			for col := 0; col < d.lx; col++ {
				sq := base.Square{Pos: b.Pos, X: col, Y: rank - 1}
				d.cell(b.grid.At(row, col), (row+col)%2 == 0, d.marked[sq])
			}
			d.printf("%*s", gapW, "")
		}
		d.printf("\n")
	}

	files := make([]string, d.lx)
	for i := range files {
		f := fmt.Sprint(i)
		if i < 26 {
			f = string(rune('a' + i))
		}
		files[i] = fmt.Sprintf(" %-*s", cellW-1, f)
	}
	line := strings.Join(files, "")
	for range boards {
		d.printf("%*s%s%*s", rankW, "", line, gapW, "")
	}
	d.printf("\n\n")
}

func (d *dumper) cell(p base.Piece, light, marked bool) {
	g := " "
	if !p.IsEmpty() {
		g = p.String()
		if u, ok := pieceGlyph[rune(g[0])]; ok && d.opt.Unicode {
			g = u
		}
	}
	if !d.opt.Color {
		switch {
		case marked && p.IsEmpty():
			g = "*"
		case p.IsEmpty() && !light:
			g = "."
		}
		d.printf(" %s ", g)
		return
	}

	bg := darkBg
	if light {
		bg = lightBg
	}
	if marked {
		bg = markBg
	}
	fg := dimF
	switch {
	case p.IsWhite():
		fg = whiteF
		if light || marked {
			fg = blackF
		}
	case p.IsBlack():
		fg = blackF
	default:
	}
	d.printf("%s%s %s %s", bg, fg, g, reset)
}
