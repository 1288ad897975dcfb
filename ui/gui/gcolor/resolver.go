package gcolor

import (
	"image/color"
	"strings"

	"multiverse/src/logx"
	"multiverse/ui/gui/gbase"
)

// Palette holds the fixed colors of the board painter
type Palette struct {
	GridLight        color.NRGBA
	GridDark         color.NRGBA
	Present          color.NRGBA
	BoardMarginBlack color.NRGBA
	BoardMarginWhite color.NRGBA
	SquareBlack      color.NRGBA
	SquareWhite      color.NRGBA
	SquareFuzzy      color.NRGBA
	ArrowTop         color.NRGBA
	DebugMarker      color.NRGBA
	Label            color.NRGBA
}

func (p *Palette) set(token string, c color.NRGBA) {
	switch token {
	case gbase.TokenGridLight:
		p.GridLight = c
	case gbase.TokenGridDark:
		p.GridDark = c
	case gbase.TokenPresent:
		p.Present = c
	case gbase.TokenBoardMarginBlack:
		p.BoardMarginBlack = c
	case gbase.TokenBoardMarginWhite:
		p.BoardMarginWhite = c
	case gbase.TokenSquareBlack:
		p.SquareBlack = c
	case gbase.TokenSquareWhite:
		p.SquareWhite = c
	case gbase.TokenSquareFuzzy:
		p.SquareFuzzy = c
	case gbase.TokenArrowTop:
		p.ArrowTop = c
	case gbase.TokenDebugMarker:
		p.DebugMarker = c
	case gbase.TokenLabel:
		p.Label = c
	default:
	}
}

type resolved struct {
	c  color.NRGBA
	ok bool
}

// Resolver turns theme tokens into colors and applies the saturation fade.
// Unfaded values are kept so a fade can be changed without a reload.
type Resolver struct {
	logx  logx.Logger
	theme Theme

	base    map[string]HSLA
	palette Palette

	fade    float64
	fadeOn  bool
	resolve map[string]resolved
}

func NewResolver(theme Theme, l logx.Logger) *Resolver {
	r := &Resolver{logx: l, theme: theme}
	r.LoadColors()
	return r
}

// SetTheme swaps the variable set and reloads the palette
func (r *Resolver) SetTheme(theme Theme) {
	r.theme = theme
	r.ReloadColors()
}

func (r *Resolver) Theme() Theme {
	return r.theme
}

// LoadColors resolves the palette tokens against the current theme,
// falling back to built-in defaults
func (r *Resolver) LoadColors() {
	r.base = make(map[string]HSLA, len(gbase.PaletteTokens))
	for _, pt := range gbase.PaletteTokens {
		val, err := r.theme.Lookup(pt.Token)
		if err != nil {
			r.logx.Debugf("theme token %s: %v, using %s", pt.Token, err, pt.Fallback)
			val = pt.Fallback
		}
		c, err := Parse(val)
		if err != nil {
			r.logx.Warnf("theme token %s: %v, using %s", pt.Token, err, pt.Fallback)
			c = MustParse(pt.Fallback)
		}
		r.base[pt.Token] = c
	}
	r.rebuild()
}

func (r *Resolver) ReloadColors() {
	r.LoadColors()
}

// SetFade clamps f to 0..1 and fades every non exempt color
func (r *Resolver) SetFade(f float64) {
	r.fade = clamp01(f)
	r.fadeOn = true
	r.rebuild()
}

func (r *Resolver) ClearFade() {
	r.fade = 0
	r.fadeOn = false
	r.rebuild()
}

func (r *Resolver) Fade() (float64, bool) {
	return r.fade, r.fadeOn
}

func (r *Resolver) Palette() Palette {
	return r.palette
}

// Base returns the unfaded color of a palette token
func (r *Resolver) Base(token string) (HSLA, bool) {
	c, ok := r.base[token]
	return c, ok
}

func (r *Resolver) rebuild() {
	var p Palette
	for token, c := range r.base {
		p.set(token, r.faded(token, c).NRGBA())
	}
	r.palette = p
	r.resolve = make(map[string]resolved)
}

func (r *Resolver) faded(token string, c HSLA) HSLA {
	if !r.fadeOn || r.fade <= 0 || gbase.FadeExempt[token] {
		return c
	}
	return ApplyFade(c, r.fade)
}

// Resolve maps a highlight token to a color. A token is a theme variable
// ("--x" or "var(--x)"), a literal color, or a bare name. The second
// result is false when nothing paintable was found.
func (r *Resolver) Resolve(token string) (color.NRGBA, bool) {
	if res, ok := r.resolve[token]; ok {
		return res.c, res.ok
	}
	c, ok := r.resolveUncached(strings.TrimSpace(token))
	if !ok {
		r.logx.Debugf("unresolved color token %q", token)
	}
	r.resolve[token] = resolved{c: c, ok: ok}
	return c, ok
}

func (r *Resolver) resolveUncached(t string) (color.NRGBA, bool) {
	if t == "" {
		return color.NRGBA{}, false
	}
	if name, fallback, isRef := varRef(t); isRef {
		val, err := r.theme.Lookup(name)
		if err != nil {
			if fallback == "" {
				return color.NRGBA{}, false
			}
			val = fallback
		}
		c, err := Parse(val)
		if err != nil {
			return color.NRGBA{}, false
		}
		return r.faded(name, c).NRGBA(), true
	}

	c, err := Parse(t)
	if err != nil {
		return color.NRGBA{}, false
	}
	if isLiteral(t) {
		return r.faded(t, c).NRGBA(), true
	}
	// named colors pass through unfaded
	return c.NRGBA(), true
}

func isLiteral(t string) bool {
	return strings.HasPrefix(t, "#") || strings.Contains(t, "(")
}
