package gcolor

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrBadColor = errors.New("unrecognized color")

// HSLA is a color in hue (degrees), saturation, lightness and alpha, all
// but hue in 0..1
type HSLA struct {
	H, S, L, A float64
}

func FromColor(c color.Color) HSLA {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fromRGB(float64(nc.R)/255, float64(nc.G)/255, float64(nc.B)/255, float64(nc.A)/255)
}

func fromRGB(r, g, b, a float64) HSLA {
	h, s, l := colorful.Color{R: r, G: g, B: b}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	if math.IsNaN(s) {
		s = 0
	}
	return HSLA{H: h, S: s, L: l, A: a}
}

// NRGBA converts back for painting
func (c HSLA) NRGBA() color.NRGBA {
	r, g, b := colorful.Hsl(c.H, c.S, c.L).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.A) * 255))}
}

func (c HSLA) String() string {
	h := strconv.FormatFloat(c.H, 'f', -1, 64)
	s := strconv.FormatFloat(c.S*100, 'f', -1, 64)
	l := strconv.FormatFloat(c.L*100, 'f', -1, 64)
	if c.A < 1 {
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", h, s, l, strconv.FormatFloat(c.A, 'f', -1, 64))
	}
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", h, s, l)
}

// ApplyFade scales saturation by 1-f, hue and lightness are left untouched
func ApplyFade(c HSLA, f float64) HSLA {
	c.S *= 1 - clamp01(f)
	return c
}

// UnapplyFade reverses ApplyFade. A full fade lost the saturation, so it is
// left as is.
func UnapplyFade(c HSLA, f float64) HSLA {
	f = clamp01(f)
	if f >= 1 {
		return c
	}
	c.S = math.Min(c.S/(1-f), 1)
	return c
}

// Parse understands hex forms, rgb()/rgba(), hsl()/hsla(), named colors
// and "transparent"
func Parse(s string) (HSLA, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	switch {
	case str == "":
		return HSLA{}, ErrBadColor
	case str == "transparent":
		return HSLA{}, nil
	case strings.HasPrefix(str, "#"):
		return parseHex(str[1:], s)
	case strings.HasPrefix(str, "rgb"):
		args, err := funcArgs(str, "rgba", "rgb")
		if err != nil {
			return HSLA{}, fmt.Errorf("%w: %q", err, s)
		}
		return parseRGBArgs(args, s)
	case strings.HasPrefix(str, "hsl"):
		args, err := funcArgs(str, "hsla", "hsl")
		if err != nil {
			return HSLA{}, fmt.Errorf("%w: %q", err, s)
		}
		return parseHSLArgs(args, s)
	default:
	}
	if named, ok := colornames.Map[str]; ok {
		return FromColor(named), nil
	}
	return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

func MustParse(s string) HSLA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(hex, orig string) (HSLA, error) {
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	a := uint64(0xff)
	if len(hex) == 8 {
		a = v & 0xff
		v >>= 8
	}
	return fromRGB(float64(v>>16&0xff)/255, float64(v>>8&0xff)/255, float64(v&0xff)/255, float64(a)/255), nil
}

// funcArgs splits "name(a, b, c)" and "name(a b c / d)" into arguments
func funcArgs(s string, names ...string) ([]string, error) {
	for _, n := range names {
		if !strings.HasPrefix(s, n+"(") {
			continue
		}
		if !strings.HasSuffix(s, ")") {
			return nil, ErrBadColor
		}
		body := s[len(n)+1 : len(s)-1]
		body = strings.NewReplacer(",", " ", "/", " ").Replace(body)
		return strings.Fields(body), nil
	}
	return nil, ErrBadColor
}

func parseRGBArgs(args []string, orig string) (HSLA, error) {
	if len(args) != 3 && len(args) != 4 {
		return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	var rgb [3]float64
	for i := 0; i < 3; i++ {
		v, err := parseNumber(args[i], 255)
		if err != nil {
			return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
		}
		rgb[i] = clamp01(v / 255)
	}
	a, err := parseAlpha(args)
	if err != nil {
		return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	return fromRGB(rgb[0], rgb[1], rgb[2], a), nil
}

func parseHSLArgs(args []string, orig string) (HSLA, error) {
	if len(args) != 3 && len(args) != 4 {
		return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	s, err1 := parseNumber(args[1], 100)
	l, err2 := parseNumber(args[2], 100)
	if err1 != nil || err2 != nil {
		return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	a, err := parseAlpha(args)
	if err != nil {
		return HSLA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return HSLA{H: h, S: clamp01(s / 100), L: clamp01(l / 100), A: a}, nil
}

// parseNumber reads a plain number or a percentage of full
func parseNumber(s string, full float64) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return v / 100 * full, err
	}
	return strconv.ParseFloat(s, 64)
}

func parseAlpha(args []string) (float64, error) {
	if len(args) < 4 {
		return 1, nil
	}
	a, err := parseNumber(args[3], 1)
	return clamp01(a), err
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
