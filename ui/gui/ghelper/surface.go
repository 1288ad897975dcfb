package ghelper

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"multiverse/ui/gui/gbase"
	"multiverse/ui/gui/ghelper/gfont"
)

const (
	// labels smaller than this on screen are not drawn
	minTextPx = 4
	// uploaded piece images kept before the cache is dropped
	maxCachedImages = 512
)

// Surface is an offscreen ebiten image the viewport paints into. It keeps
// the last frame, so the game only blits it while the view is settled.
type Surface struct {
	img   *ebiten.Image
	w, h  int
	fonts *gfont.Fonts

	tr     gbase.Transform
	images map[image.Image]*ebiten.Image
	path   vector.Path
	vs     []ebiten.Vertex
	is     []uint16
}

func NewSurface(w, h int, fonts *gfont.Fonts) *Surface {
	s := &Surface{fonts: fonts, images: make(map[image.Image]*ebiten.Image)}
	s.SetSize(w, h)
	return s
}

// SetSize reallocates the image when the outside size changes
func (s *Surface) SetSize(w, h int) bool {
	w, h = max(w, 1), max(h, 1)
	if s.img != nil && w == s.w && h == s.h {
		return false
	}
	if s.img != nil {
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(w, h)
	s.w, s.h = w, h
	return true
}

func (s *Surface) Image() *ebiten.Image {
	return s.img
}

func (s *Surface) Size() (int, int) {
	return s.w, s.h
}

func (s *Surface) Begin(tr gbase.Transform) gbase.Canvas {
	s.tr = tr
	s.img.Clear()
	return s
}

func (s *Surface) End() {
	if len(s.images) > maxCachedImages {
		s.ForgetImages()
	}
}

// ForgetImages drops uploaded copies, e.g. after the piece set changed
func (s *Surface) ForgetImages() {
	for _, img := range s.images {
		img.Deallocate()
	}
	clear(s.images)
}

// ---- gbase.Canvas ----

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	sx, sy := s.tr.Apply(x, y)
	sw, sh := w*s.tr.Scale, h*s.tr.Scale
	if sx+sw < 0 || sy+sh < 0 || sx > float64(s.w) || sy > float64(s.h) {
		return
	}
	vector.DrawFilledRect(s.img, float32(sx), float32(sy), float32(sw), float32(sh), c, false)
}

func (s *Surface) FillPolygon(pts []gbase.Point, p gbase.Paint) {
	if len(pts) < 3 {
		return
	}
	if p.Gradient != nil {
		s.fillGradient(pts, p.Gradient)
		return
	}

	s.path = vector.Path{}
	for i, pt := range pts {
		x, y := s.tr.Apply(pt.X, pt.Y)
		if i == 0 {
			s.path.MoveTo(float32(x), float32(y))
		} else {
			s.path.LineTo(float32(x), float32(y))
		}
	}
	s.path.Close()

	s.vs, s.is = s.path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	r, g, b, a := straight(p.Color)
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 1, 1
		s.vs[i].ColorR, s.vs[i].ColorG, s.vs[i].ColorB, s.vs[i].ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.FillRuleNonZero}
	s.img.DrawTriangles(s.vs, s.is, whiteTexture(), op)
}

// fillGradient rasterises the polygon with gg over its screen bounding box
func (s *Surface) fillGradient(pts []gbase.Point, lg *gbase.LinearGradient) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	screen := make([]gbase.Point, len(pts))
	for i, pt := range pts {
		x, y := s.tr.Apply(pt.X, pt.Y)
		screen[i] = gbase.Point{X: x, Y: y}
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	minX, minY = math.Max(math.Floor(minX), 0), math.Max(math.Floor(minY), 0)
	maxX, maxY = math.Min(math.Ceil(maxX), float64(s.w)), math.Min(math.Ceil(maxY), float64(s.h))
	bw, bh := int(maxX-minX), int(maxY-minY)
	if bw <= 0 || bh <= 0 {
		return
	}

	dc := gg.NewContext(bw, bh)
	x0, y0 := s.tr.Apply(lg.X0, lg.Y0)
	x1, y1 := s.tr.Apply(lg.X1, lg.Y1)
	grad := gg.NewLinearGradient(x0-minX, y0-minY, x1-minX, y1-minY)
	for _, st := range lg.Stops {
		grad.AddColorStop(st.Offset, st.Color)
	}
	dc.SetFillStyle(grad)
	for _, pt := range screen {
		dc.LineTo(pt.X-minX, pt.Y-minY)
	}
	dc.ClosePath()
	dc.Fill()

	img := ebiten.NewImageFromImage(dc.Image())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(minX, minY)
	s.img.DrawImage(img, op)
	img.Deallocate()
}

func (s *Surface) DrawImage(img image.Image, x, y, w, h float64) {
	sx, sy := s.tr.Apply(x, y)
	sw, sh := w*s.tr.Scale, h*s.tr.Scale
	if sx+sw < 0 || sy+sh < 0 || sx > float64(s.w) || sy > float64(s.h) {
		return
	}
	eimg := s.upload(img)
	b := eimg.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(sw/float64(b.Dx()), sh/float64(b.Dy()))
	op.GeoM.Translate(sx, sy)
	s.img.DrawImage(eimg, op)
}

func (s *Surface) upload(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.images[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	s.images[img] = e
	return e
}

func (s *Surface) DrawText(str string, x, y, size float64, c color.Color) {
	px := size * s.tr.Scale
	if s.fonts == nil || px < minTextPx {
		return
	}
	sx, sy := s.tr.Apply(x, y)
	op := &text.DrawOptions{}
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, s.fonts.LabelFace(px), op)
}

func straight(c color.Color) (r, g, b, a float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(n.R) / 0xff, float32(n.G) / 0xff, float32(n.B) / 0xff, float32(n.A) / 0xff
}
