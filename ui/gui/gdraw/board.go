package gdraw

import (
	"fmt"
	"math"

	"multiverse/src/base"
	"multiverse/src/convert/convfen"
	"multiverse/src/logx"
	"multiverse/ui/gui/gcolor"
	"multiverse/ui/gui/glod"
	"multiverse/ui/gui/gview"
)

// board geometry in world units
const (
	SquareSize  = 10
	BoardMargin = 4
	// space between neighbouring boards, split on both sides
	boardGap = 20
	// boards are never flatter than this, so tiles stay roughly square
	minAspect = 1.12

	// below this on-screen square size boards are painted flat
	squareVisiblePx = 0.7

	// focused board width in view widths (3 boards of 120px at zoom 1)
	focusBoardPx = 120
	focusBoards  = 3
)

// View is the part of the viewport the renderer drives
type View interface {
	StartAnimation()
	MoveToZoom(worldX, worldY, zoom float64)
	Camera() gview.Camera
	Size() (w, h int)
}

// PieceSource hands out the prepared piece images, nil until loaded
type PieceSource interface {
	Selector() *glod.Selector
}

type SquareFunc func(sq base.Square)

// BoardRenderer lays boards out on the (layer, timeline) plane and paints
// the visible part of the current snapshot
type BoardRenderer struct {
	logx   logx.Logger
	view   View
	colors *gcolor.Resolver
	pieces PieceSource

	lengthX, lengthY int
	skipX, skipY     float64

	data  *base.Snapshot
	grids []base.Grid // parallel to data.Boards

	focus      []base.Pos
	focusIndex int

	cache      visibleCache
	recomputes int
	status     string

	Debug      bool // origin marker
	ShowLabels bool

	OnClickSquare      SquareFunc
	OnRightClickSquare SquareFunc
	OnStatus           func(text string)
}

func NewBoardRenderer(view View, colors *gcolor.Resolver, pieces PieceSource, l logx.Logger) *BoardRenderer {
	r := &BoardRenderer{
		logx:   l,
		view:   view,
		colors: colors,
		pieces: pieces,
		focus:  []base.Pos{{}},
	}
	r.setSize(base.DefaultLengthX, base.DefaultLengthY)
	return r
}

// Bind installs the renderer as the viewport's render and pointer handler
func (r *BoardRenderer) Bind(v *gview.Viewport) {
	v.OnRender = r.Render
	v.OnClick = func(x, y float64) { r.HandleClick(x, y, false) }
	v.OnRightClick = func(x, y float64) { r.HandleClick(x, y, true) }
	v.OnHover = r.HandleHover
}

func (r *BoardRenderer) setSize(x, y int) {
	r.lengthX, r.lengthY = x, y
	r.skipX = float64(x*SquareSize + boardGap)
	r.skipY = math.Max(float64(y*SquareSize+boardGap), math.Floor(r.skipX*minAspect))
}

// SetData replaces the snapshot. Board rows are parsed here, once; a bad
// row is an engine defect and is returned without touching the current
// snapshot.
func (r *BoardRenderer) SetData(s *base.Snapshot) error {
	if s == nil {
		r.data, r.grids = nil, nil
		r.invalidate()
		return nil
	}

	lx, ly := r.lengthX, r.lengthY
	if s.Size != nil {
		lx, ly = s.Size.X, s.Size.Y
	}
	grids := make([]base.Grid, len(s.Boards))
	for i, b := range s.Boards {
		if b.FEN == "" {
			continue
		}
		g, err := convfen.ConvertFENToGrid(b.FEN, lx, ly)
		if err != nil {
			return fmt.Errorf("board %s: %w", b.Pos, err)
		}
		grids[i] = g
	}

	r.data, r.grids = s, grids
	if s.Size != nil {
		r.setSize(lx, ly)
	}
	if len(s.Focus) > 0 {
		r.focus = append([]base.Pos(nil), s.Focus...)
		r.focusIndex %= len(r.focus)
	}
	if s.Fade != nil {
		r.colors.SetFade(*s.Fade)
	} else {
		r.colors.ClearFade()
	}
	r.logx.Debugf("snapshot: %d boards, %d highlight blocks, board %dx%d", len(s.Boards), len(s.Highlights), r.lengthX, r.lengthY)

	r.invalidate()
	return nil
}

func (r *BoardRenderer) Data() *base.Snapshot {
	return r.data
}

// ReloadColors re-reads the theme, e.g. after a theme switch
func (r *BoardRenderer) ReloadColors() {
	r.colors.ReloadColors()
	if r.data != nil && r.data.Fade != nil {
		r.colors.SetFade(*r.data.Fade)
	}
	r.view.StartAnimation()
}

func (r *BoardRenderer) invalidate() {
	r.cache.valid = false
	r.view.StartAnimation()
}

// BoardSize is the board dimension in squares
func (r *BoardRenderer) BoardSize() (int, int) {
	return r.lengthX, r.lengthY
}

// Skip is the world distance between neighbouring board origins
func (r *BoardRenderer) Skip() (float64, float64) {
	return r.skipX, r.skipY
}

// ---- Coordinates ----

// BoardOrigin is the world position of a board's top-left square
func (r *BoardRenderer) BoardOrigin(p base.Pos) (float64, float64) {
	return float64(p.V()) * r.skipX, float64(p.L) * r.skipY
}

// BoardToPixel is the top-left world position of a square, rank 1 at
// the bottom
func (r *BoardRenderer) BoardToPixel(sq base.Square) (float64, float64) {
	ox, oy := r.BoardOrigin(sq.Pos)
	return float64(sq.X*SquareSize) + ox, float64((r.lengthY-1-sq.Y)*SquareSize) + oy
}

// PixelToBoard inverts BoardToPixel; the square may lie outside the grid
func (r *BoardRenderer) PixelToBoard(wx, wy float64) base.Square {
	l := int(math.Floor(wy / r.skipY))
	v := int(math.Floor(wx / r.skipX))
	x := int(math.Floor((wx - float64(v)*r.skipX) / SquareSize))
	y := r.lengthY - 1 - int(math.Floor((wy-float64(l)*r.skipY)/SquareSize))
	return base.Square{Pos: base.PosFromLV(l, v), X: x, Y: y}
}

func (r *BoardRenderer) inGrid(sq base.Square) bool {
	return sq.X >= 0 && sq.X < r.lengthX && sq.Y >= 0 && sq.Y < r.lengthY
}

// ---- Pointer ----

// HandleClick forwards clicks that land on a square, margins and
// background are ignored
func (r *BoardRenderer) HandleClick(wx, wy float64, right bool) {
	sq := r.PixelToBoard(wx, wy)
	if !r.inGrid(sq) {
		return
	}
	side := "left"
	if right {
		side = "right"
		if r.OnRightClickSquare != nil {
			r.OnRightClickSquare(sq)
		}
	} else if r.OnClickSquare != nil {
		r.OnClickSquare(sq)
	}
	r.setStatus(fmt.Sprintf("%s click at %s", side, sq))
}

func (r *BoardRenderer) HandleHover(wx, wy float64) {
	r.setStatus(fmt.Sprintf("x = %.2f y = %.2f", wx, wy))
}

func (r *BoardRenderer) setStatus(s string) {
	r.status = s
	if r.OnStatus != nil {
		r.OnStatus(s)
	}
}

func (r *BoardRenderer) Status() string {
	return r.status
}

// ---- Focus ----

func (r *BoardRenderer) AddFocusPoint(p base.Pos) {
	r.focus = append(r.focus, p)
}

func (r *BoardRenderer) SetFocusPoints(points []base.Pos) {
	r.focus = append([]base.Pos(nil), points...)
	r.focusIndex = 0
}

func (r *BoardRenderer) FocusPoints() []base.Pos {
	return r.focus
}

// GoToNextFocus cycles the focus points, zooming so a board spans a
// fixed share of the view width
func (r *BoardRenderer) GoToNextFocus() {
	if len(r.focus) == 0 {
		return
	}
	r.focusIndex = (r.focusIndex + 1) % len(r.focus)
	p := r.focus[r.focusIndex]

	w, _ := r.view.Size()
	zoom := math.Log2(float64(w) / focusBoardPx / focusBoards)
	ox, oy := r.BoardOrigin(p)
	r.view.MoveToZoom(
		ox+float64(r.lengthX*SquareSize)/2,
		oy+float64(r.lengthY*SquareSize)/2,
		zoom,
	)
}
