package gdraw

import (
	"fmt"
	"math"

	"multiverse/src/base"
	"multiverse/ui/gui/gview"
)

// Window is the integer range of layers and half-columns in view
type Window struct {
	LMin, LMax int
	VMin, VMax int
}

func (w Window) Contains(l, v int) bool {
	return l >= w.LMin && l <= w.LMax && v >= w.VMin && v <= w.VMax
}

func (w Window) ContainsPos(p base.Pos) bool {
	return w.Contains(p.L, p.V())
}

func (w Window) String() string {
	return fmt.Sprintf("(L%dV%d) -- (L%dV%d)", w.LMin, w.VMin, w.LMax, w.VMax)
}

// WindowFor rounds the visible world rectangle outwards to board cells
func (r *BoardRenderer) WindowFor(b gview.Bounds) Window {
	return Window{
		LMin: int(math.Floor(b.Top / r.skipY)),
		VMin: int(math.Floor(b.Left / r.skipX)),
		LMax: int(math.Ceil(b.Bottom / r.skipY)),
		VMax: int(math.Ceil(b.Right / r.skipX)),
	}
}

// highlightBlock is the visible part of one snapshot highlight
type highlightBlock struct {
	color     string
	coords    []base.Square
	arrows    []base.Arrow
	timelines []int
	boards    []base.Pos
}

type visibleCache struct {
	valid      bool
	window     Window
	boards     []int // indices into the snapshot boards
	highlights []highlightBlock
}

// refresh re-filters the snapshot iff the window moved or the data changed
func (r *BoardRenderer) refresh(w Window) {
	if r.cache.valid && r.cache.window == w {
		return
	}
	r.recomputes++
	r.cache.valid = true
	r.cache.window = w
	r.cache.boards = r.cache.boards[:0]
	r.cache.highlights = r.cache.highlights[:0]
	if r.data == nil {
		return
	}

	for i, b := range r.data.Boards {
		if b.FEN != "" && w.ContainsPos(b.Pos) {
			r.cache.boards = append(r.cache.boards, i)
		}
	}

	for _, h := range r.data.Highlights {
		blk := highlightBlock{color: h.Color}
		for _, sq := range h.Coordinates {
			if w.ContainsPos(sq.Pos) {
				blk.coords = append(blk.coords, sq)
			}
		}
		// partly visible arrows are kept
		for _, a := range h.Arrows {
			if w.ContainsPos(a.From.Pos) || w.ContainsPos(a.To.Pos) {
				blk.arrows = append(blk.arrows, a)
			}
		}
		for _, l := range h.Timelines {
			if l >= w.LMin && l <= w.LMax {
				blk.timelines = append(blk.timelines, l)
			}
		}
		for _, p := range h.Boards {
			if w.ContainsPos(p) {
				blk.boards = append(blk.boards, p)
			}
		}
		r.cache.highlights = append(r.cache.highlights, blk)
	}
}

// Recomputes counts visible subset recomputations
func (r *BoardRenderer) Recomputes() int {
	return r.recomputes
}

// Window is the last computed window
func (r *BoardRenderer) Window() Window {
	return r.cache.window
}

// VisibleBoards lists the boards that passed the last window filter
func (r *BoardRenderer) VisibleBoards() []base.Board {
	if r.data == nil {
		return nil
	}
	out := make([]base.Board, 0, len(r.cache.boards))
	for _, i := range r.cache.boards {
		out = append(out, r.data.Boards[i])
	}
	return out
}
