package gimages

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"
	"unicode"

	"multiverse/src/base"
	"multiverse/ui/gui/glod"
)

// Mapping is piece symbol -> file name inside the assets dir
type Mapping map[string]string

// extensions tried by Discover, first match wins
var extensions = []string{".svg", ".png", ".jpg"}

// DefaultName is the file stem for a symbol: colour prefix and upper
// case letter, so white and black never clash on case-insensitive disks
func DefaultName(symbol string) string {
	r := []rune(symbol)
	if len(r) != 1 {
		return symbol
	}
	prefix := "b"
	if unicode.IsUpper(r[0]) {
		prefix = "w"
	}
	return prefix + strings.ToUpper(symbol)
}

// Discover maps every piece symbol whose default file exists in fsys
func Discover(fsys fs.FS) Mapping {
	m := make(Mapping)
	for _, r := range base.PieceLetters {
		sym := string(r)
		stem := DefaultName(sym)
		for _, ext := range extensions {
			if _, err := fs.Stat(fsys, stem+ext); err == nil {
				m[sym] = stem + ext
				break
			}
		}
	}
	return m
}

// LoadGlyphs reads every mapped file. SVG stays a vector and is rasterised
// per tier, bitmaps are scaled.
func LoadGlyphs(fsys fs.FS, m Mapping) (map[string]glod.Glyph, error) {
	out := make(map[string]glod.Glyph, len(m))
	var errs []error
	for sym, name := range m {
		g, err := loadGlyph(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("piece %q: %w", sym, err))
			continue
		}
		out[sym] = g
	}
	return out, errors.Join(errs...)
}

func loadGlyph(fsys fs.FS, name string) (glod.Glyph, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(path.Ext(name), ".svg") {
		return glod.SVGGlyph(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return glod.BitmapGlyph(img), nil
}
