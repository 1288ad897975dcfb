package gdraw

import (
	"fmt"
	"image/color"
	"math"

	"multiverse/src/base"
	"multiverse/ui/gui/gbase"
	"multiverse/ui/gui/gview"
)

const (
	timelineAlpha  = 0.2
	squareHlAlpha  = 0.5
	arrowAlpha     = 0.8
	debugMarkerLen = 10

	// labels fade out between these distances in screen pixels
	labelNearPx = 150
	labelFarPx  = 450
	labelPx     = 14
)

// Render is the viewport render callback
func (r *BoardRenderer) Render(c gbase.Canvas, b gview.Bounds) {
	w := r.WindowFor(b)
	r.refresh(w)
	if r.data != nil {
		r.paint(c, w)
	}
	if r.Debug {
		r.fill(c, 0, 0, debugMarkerLen, debugMarkerLen, r.colors.Palette().DebugMarker)
	}
}

func (r *BoardRenderer) zoom() float64 {
	return r.view.Camera().ZoomLevel()
}

func (r *BoardRenderer) paint(c gbase.Canvas, w Window) {
	pal := r.colors.Palette()
	boardW := float64(r.lengthX * SquareSize)
	boardH := float64(r.lengthY * SquareSize)
	shiftX := (r.skipX - boardW) / 2
	shiftY := (r.skipY - boardH) / 2
	cols := float64(w.VMax-w.VMin+1) * r.skipX
	rows := float64(w.LMax-w.LMin+1) * r.skipY
	left := float64(w.VMin)*r.skipX - shiftX
	top := float64(w.LMin)*r.skipY - shiftY

	// background and (layer + timeline) tint blocks
	r.fill(c, left, top, cols, rows, pal.GridLight)
	for l := w.LMin - 1; l <= w.LMax; l++ {
		for t := w.VMin >> 1; t <= w.VMax>>1; t++ {
			if (l+t)%2 == 0 {
				r.fill(c, float64(t*2)*r.skipX-shiftX, float64(l)*r.skipY-shiftY, 2*r.skipX, r.skipY, pal.GridDark)
			}
		}
	}
	if r.ShowLabels {
		r.paintLabels(c, w, shiftX, shiftY, pal.Label)
	}

	// highlighted timelines span the whole window width
	for _, h := range r.cache.highlights {
		col, ok := r.colors.Resolve(h.color)
		if !ok {
			continue
		}
		col = scaleAlpha(col, timelineAlpha)
		for _, l := range h.timelines {
			r.fill(c, left, float64(l)*r.skipY-shiftY, cols, r.skipY, col)
		}
	}

	if p := r.data.Present; p != nil {
		col := pal.Present
		if p.Color != "" {
			if rc, ok := r.colors.Resolve(p.Color); ok {
				col = rc
			}
		}
		r.fill(c, float64(p.V())*r.skipX-shiftX, top, r.skipX, rows, col)
	}

	// margins, then board highlights over them
	for _, i := range r.cache.boards {
		b := r.data.Boards[i]
		col := pal.BoardMarginWhite
		if b.C == base.Black {
			col = pal.BoardMarginBlack
		}
		r.fillMargin(c, b.Pos, boardW, boardH, col)
	}
	for _, h := range r.cache.highlights {
		col, ok := r.colors.Resolve(h.color)
		if !ok {
			continue
		}
		for _, p := range h.boards {
			r.fillMargin(c, p, boardW, boardH, col)
		}
	}

	squarePx := r.zoom() * SquareSize
	detailed := squarePx > squareVisiblePx
	for _, i := range r.cache.boards {
		ox, oy := r.BoardOrigin(r.data.Boards[i].Pos)
		if !detailed {
			r.fill(c, ox, oy, boardW, boardH, pal.SquareFuzzy)
			continue
		}
		r.fill(c, ox, oy, boardW, boardH, pal.SquareBlack)
		for row := 0; row < r.lengthY; row++ {
			for col := 0; col < r.lengthX; col++ {
				if (row+col)%2 == 0 {
					r.fill(c, ox+float64(col*SquareSize), oy+float64(row*SquareSize), SquareSize, SquareSize, pal.SquareWhite)
				}
			}
		}
	}

	for _, h := range r.cache.highlights {
		col, ok := r.colors.Resolve(h.color)
		if !ok {
			continue
		}
		col = scaleAlpha(col, squareHlAlpha)
		for _, sq := range h.coords {
			x, y := r.BoardToPixel(sq)
			r.fill(c, x, y, SquareSize, SquareSize, col)
		}
	}

	if detailed {
		r.paintPieces(c, squarePx)
	}

	r.paintArrows(c, pal.ArrowTop)
}

func (r *BoardRenderer) paintPieces(c gbase.Canvas, squarePx float64) {
	if r.pieces == nil {
		return
	}
	sel := r.pieces.Selector()
	if sel == nil {
		return
	}
	imgs := sel.Choose(squarePx)
	for _, i := range r.cache.boards {
		ox, oy := r.BoardOrigin(r.data.Boards[i].Pos)
		grid := r.grids[i]
		for row := 0; row < r.lengthY; row++ {
			for col := 0; col < r.lengthX; col++ {
				p := grid.At(row, col)
				if p.IsEmpty() {
					continue
				}
				img := imgs[p.String()]
				if img == nil {
					continue
				}
				c.DrawImage(img, ox+float64(col*SquareSize), oy+float64(row*SquareSize), SquareSize, SquareSize)
			}
		}
	}
}

func (r *BoardRenderer) paintArrows(c gbase.Canvas, top color.NRGBA) {
	half := float64(SquareSize) / 2
	top = scaleAlpha(top, arrowAlpha)
	for _, h := range r.cache.highlights {
		if len(h.arrows) == 0 {
			continue
		}
		col, ok := r.colors.Resolve(h.color)
		if !ok {
			continue
		}
		col = scaleAlpha(col, arrowAlpha)
		for _, a := range h.arrows {
			fx, fy := r.BoardToPixel(a.From)
			tx, ty := r.BoardToPixel(a.To)
			if fx == tx && fy == ty {
				continue
			}
			fx, fy, tx, ty = fx+half, fy+half, tx+half, ty+half
			c.FillPolygon(ArrowPolygon(fx, fy, tx, ty), gbase.Paint{
				Color:    col,
				Gradient: ArrowGradient(fx, fy, tx, ty, r.lengthX, top, col),
			})
		}
	}
}

// paintLabels names each tint block at its top-left corner. Labels fade
// in as the view centre approaches the corner.
func (r *BoardRenderer) paintLabels(c gbase.Canvas, w Window, shiftX, shiftY float64, col color.NRGBA) {
	cam := r.view.Camera()
	z := cam.ZoomLevel()
	cx, cy := -cam.X, -cam.Y
	near, far := labelNearPx/z, labelFarPx/z
	size := math.Min(labelPx/z, r.skipY/4)
	pad := size / 3

	for l := w.LMin - 1; l <= w.LMax; l++ {
		for t := w.VMin >> 1; t <= w.VMax>>1; t++ {
			x := float64(t*2)*r.skipX - shiftX
			y := float64(l)*r.skipY - shiftY
			a := 1 - smoothstep(near, far, math.Hypot(x-cx, y-cy))
			if a <= 0 {
				continue
			}
			c.DrawText(fmt.Sprintf("L%d T%d", l, t), x+pad, y+pad, size, scaleAlpha(col, a))
		}
	}
}

func (r *BoardRenderer) fillMargin(c gbase.Canvas, p base.Pos, boardW, boardH float64, col color.NRGBA) {
	ox, oy := r.BoardOrigin(p)
	r.fill(c, ox-BoardMargin, oy-BoardMargin, boardW+2*BoardMargin, boardH+2*BoardMargin, col)
}

func (r *BoardRenderer) fill(c gbase.Canvas, x, y, w, h float64, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	c.FillRect(x, y, w, h, col)
}

func scaleAlpha(c color.NRGBA, k float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * k))
	return c
}

func smoothstep(e0, e1, x float64) float64 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := math.Max(0, math.Min(1, (x-e0)/(e1-e0)))
	return t * t * (3 - 2*t)
}
