package glod

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// OriginalSize is the raster size used for the full resolution set when
// the source is a vector
const OriginalSize = 128

// Glyph is one piece image source
type Glyph interface {
	// Original is drawn at large on-screen sizes
	Original() (image.Image, error)
	// Rasterize renders a size x size image
	Rasterize(size int) (image.Image, error)
}

// ---- Bitmap ----

type bitmapGlyph struct {
	img image.Image
}

func BitmapGlyph(img image.Image) Glyph {
	return bitmapGlyph{img: img}
}

func (g bitmapGlyph) Original() (image.Image, error) {
	return g.img, nil
}

func (g bitmapGlyph) Rasterize(size int) (image.Image, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), g.img, g.img.Bounds(), draw.Over, nil)
	return dst, nil
}

// ---- SVG ----

type svgGlyph struct {
	data []byte
}

// SVGGlyph keeps the document and parses it for every raster, an
// SvgIcon is not safe for concurrent SetTarget/Draw
func SVGGlyph(data []byte) (Glyph, error) {
	if _, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode); err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	return svgGlyph{data: data}, nil
}

func (g svgGlyph) Original() (image.Image, error) {
	return g.Rasterize(OriginalSize)
}

func (g svgGlyph) Rasterize(size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(g.data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return dst, nil
}

// ---- Fallback letters ----

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

func letterFont() (*opentype.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

type letterGlyph struct {
	letter string
	white  bool
}

// LetterGlyph draws the piece letter in a disc, used when no artwork is
// mapped for a symbol
func LetterGlyph(letter string, white bool) Glyph {
	return letterGlyph{letter: letter, white: white}
}

func (g letterGlyph) Original() (image.Image, error) {
	return g.Rasterize(OriginalSize)
}

func (g letterGlyph) Rasterize(size int) (image.Image, error) {
	f, err := letterFont()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size) * 0.6,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	fill, ink := color.NRGBA{0xf0, 0xf0, 0xf0, 0xff}, color.NRGBA{0x20, 0x20, 0x20, 0xff}
	if !g.white {
		fill, ink = ink, fill
	}

	s := float64(size)
	dc := gg.NewContext(size, size)
	dc.DrawCircle(s/2, s/2, s*0.45)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(ink)
	dc.SetLineWidth(s * 0.04)
	dc.Stroke()
	dc.SetFontFace(face)
	dc.DrawStringAnchored(g.letter, s/2, s/2, 0.5, 0.4)
	return dc.Image(), nil
}

// LetterGlyphs covers every letter, upper case is white
func LetterGlyphs(letters string) map[string]Glyph {
	out := make(map[string]Glyph, len(letters))
	for _, r := range letters {
		name := string(r)
		out[name] = LetterGlyph(strings.ToUpper(name), unicode.IsUpper(r))
	}
	return out
}
