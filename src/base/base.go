package base

import (
	"bytes"
	"fmt"
	"strings"
)

// default board geometry of a standard variant
const (
	DefaultLengthX int = 8
	DefaultLengthY int = 8
)

// ---- Pieces ----

type Piece byte

const EmptyPiece Piece = 0

// piece letters known to the renderer, upper case = white
const PieceLetters string = "BCDKNPSQRUWYbcdknpsqruwy"

func PieceFromRune(r rune) (Piece, bool) {
	if r > 0x7f || !strings.ContainsRune(PieceLetters, r) {
		return EmptyPiece, false
	}
	return Piece(r), true
}

func (p Piece) IsEmpty() bool {
	return p == EmptyPiece
}

func (p Piece) IsWhite() bool {
	return p >= 'A' && p <= 'Z'
}

func (p Piece) IsBlack() bool {
	return p >= 'a' && p <= 'z'
}

// String is the asset name of the piece glyph
func (p Piece) String() string {
	if p == EmptyPiece {
		return ""
	}
	return string(rune(p))
}

// Grid holds parsed board rows, Grid[0] is the top rank on screen
type Grid [][]Piece

func (g Grid) At(row, col int) Piece {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return EmptyPiece
	}
	return g[row][col]
}

// ---- Coordinates ----

// Parity selects one of the two half-columns of a timeline
type Parity bool

const (
	White Parity = false
	Black Parity = true
)

func (c Parity) Int() int {
	if c {
		return 1
	}
	return 0
}

func (c Parity) String() string {
	if c {
		return "b"
	}
	return "w"
}

// UnmarshalJSON accepts both 0/1 and false/true
func (c *Parity) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "0", "false", "null":
		*c = White
	case "1", "true":
		*c = Black
	default:
		return fmt.Errorf("invalid parity %s", data)
	}
	return nil
}

// Pos addresses one board: layer, timeline and parity
type Pos struct {
	L int    `json:"l"`
	T int    `json:"t"`
	C Parity `json:"c"`
}

// V linearizes timeline and parity into the horizontal axis
func (p Pos) V() int {
	return p.T<<1 | p.C.Int()
}

func PosFromLV(l, v int) Pos {
	return Pos{L: l, T: v >> 1, C: v&1 != 0}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%dT%d%s)", p.L, p.T, p.C)
}

// Square is one cell of one board
type Square struct {
	Pos
	X int `json:"x"`
	Y int `json:"y"`
}

func (s Square) String() string {
	return fmt.Sprintf("%s%s", s.Pos, AlgebraicFromXY(s.X, s.Y))
}

// AlgebraicFromXY returns "e4" style notation, files past 'z' fall back to numbers
func AlgebraicFromXY(x, y int) string {
	if x >= 0 && x < 26 {
		return fmt.Sprintf("%c%d", 'a'+x, y+1)
	}
	return fmt.Sprintf("%d:%d", x, y+1)
}

// ---- Snapshot ----

type Board struct {
	Pos
	FEN string `json:"fen,omitempty"`
}

type Arrow struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Highlight groups every highlight kind drawn with one color token
type Highlight struct {
	Color       string   `json:"color"`
	Coordinates []Square `json:"coordinates,omitempty"`
	Arrows      []Arrow  `json:"arrows,omitempty"`
	Timelines   []int    `json:"timelines,omitempty"`
	Boards      []Pos    `json:"boards,omitempty"`
}

type Present struct {
	T     int    `json:"t"`
	C     Parity `json:"c"`
	Color string `json:"color,omitempty"`
}

func (p Present) V() int {
	return p.T<<1 | p.C.Int()
}

type Size struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snapshot is one complete render input pushed by the host
type Snapshot struct {
	Boards        []Board     `json:"boards"`
	Present       *Present    `json:"present,omitempty"`
	Highlights    []Highlight `json:"highlights,omitempty"`
	Size          *Size       `json:"size,omitempty"`
	Focus         []Pos       `json:"focus,omitempty"`
	Phantom       []Board     `json:"phantom,omitempty"`
	PhantomChecks []Arrow     `json:"phantomChecks,omitempty"`
	Fade          *float64    `json:"fade,omitempty"`
}

// AddHighlight appends values to the color block, creating it when missing
func (s *Snapshot) AddHighlight(h Highlight) {
	for i := range s.Highlights {
		if s.Highlights[i].Color != h.Color {
			continue
		}
		blk := &s.Highlights[i]
		blk.Coordinates = append(blk.Coordinates, h.Coordinates...)
		blk.Arrows = append(blk.Arrows, h.Arrows...)
		blk.Timelines = append(blk.Timelines, h.Timelines...)
		blk.Boards = append(blk.Boards, h.Boards...)
		return
	}
	s.Highlights = append(s.Highlights, h)
}

// PhantomFade is the saturation fade applied while phantom boards are shown
const PhantomFade float64 = 0.5

// MergePhantom folds the phantom boards and their checks into the visible
// snapshot, on the half-column opposite to the present
func (s *Snapshot) MergePhantom(boardColor, checkColor string) bool {
	if len(s.Phantom) == 0 || s.Present == nil {
		return false
	}
	opp := !s.Present.C

	boards := make([]Pos, 0, len(s.Phantom))
	for _, b := range s.Phantom {
		boards = append(boards, Pos{L: b.L, T: b.T, C: opp})
	}
	s.AddHighlight(Highlight{Color: boardColor, Boards: boards})
	s.Boards = append(s.Boards, s.Phantom...)

	arrows := make([]Arrow, 0, len(s.PhantomChecks))
	for _, a := range s.PhantomChecks {
		a.From.C, a.To.C = opp, opp
		arrows = append(arrows, a)
	}
	s.AddHighlight(Highlight{Color: checkColor, Arrows: arrows})

	fade := PhantomFade
	s.Fade = &fade
	return true
}
