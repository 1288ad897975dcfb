package ghelper

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// whiteTexture is the source for solid triangles. Only the inner pixel is
// used, so linear filtering never samples the clear border.
func whiteTexture() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

func RenderRoundedRect(w, h, radius int, fill color.Color, stroke color.Color, strokeW float64) *ebiten.Image {
	// anti-aliased through gg, then uploaded once
	dc := gg.NewContext(w, h)
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(radius))
	dc.FillPreserve()
	dc.SetColor(stroke)
	dc.SetLineWidth(strokeW)
	dc.Stroke()
	return ebiten.NewImageFromImage(dc.Image())
}

func PointInRect(px, py, rx, ry, rw, rh int) bool {
	return px >= rx && px < rx+rw && py >= ry && py < ry+rh
}

// StatusBar is a rounded plate with one line of text, re-rendered only when
// its width changes
type StatusBar struct {
	Face   text.Face
	Fill   color.Color
	Stroke color.Color
	Text   color.Color

	plate  *ebiten.Image
	plateW int
}

const (
	statusPad    = 6
	statusRadius = 6
)

// Invalidate forces the plate to be re-rendered, e.g. after a colour change
func (s *StatusBar) Invalidate() {
	if s.plate != nil {
		s.plate.Deallocate()
		s.plate = nil
	}
}

func (s *StatusBar) Draw(screen *ebiten.Image, msg string, x, y int) {
	if msg == "" || s.Face == nil {
		return
	}
	tw, th := text.Measure(msg, s.Face, 0)
	w := int(tw) + 2*statusPad
	h := int(th) + 2*statusPad
	if s.plate == nil || s.plateW != w || s.plate.Bounds().Dy() != h {
		if s.plate != nil {
			s.plate.Deallocate()
		}
		s.plate = RenderRoundedRect(w, h, statusRadius, s.Fill, s.Stroke, 1)
		s.plateW = w
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y-h))
	screen.DrawImage(s.plate, op)

	top := &text.DrawOptions{}
	top.GeoM.Translate(float64(x+statusPad), float64(y-h+statusPad))
	top.ColorScale.ScaleWithColor(s.Text)
	text.Draw(screen, msg, s.Face, top)
}
