package gfont

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFile is looked up in the assets dir, Go Regular is used without it
const FontFile = "label.ttf"

const statusSize = 13

type Fonts struct {
	// Label is scaled per draw, labels follow the zoom
	Label *text.GoTextFaceSource
	// Status is a fixed-size face for the status line
	Status text.Face
}

func LoadFonts(workdir string) (*Fonts, error) {
	ttf := goregular.TTF
	if workdir != "" {
		data, err := os.ReadFile(filepath.Join(workdir, FontFile))
		switch {
		case err == nil:
			ttf = data
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("error parse label font: %w", err)
	}

	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	status, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    statusSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return &Fonts{
		Label:  src,
		Status: text.NewGoXFace(status),
	}, nil
}

// LabelFace is the label face at size pixels
func (f *Fonts) LabelFace(size float64) text.Face {
	return &text.GoTextFace{Source: f.Label, Size: size}
}
