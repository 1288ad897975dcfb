package gbase

import (
	"errors"
)

// ---- Exit Call ----

var ErrExit = errors.New("exit request")

// --- UI constants ---

const (
	WindowW int = 1000
	WindowH int = 700
)

// ---- Theme tokens ----

// Token names mirror the theme variables a theme file may define.
const (
	TokenGridLight        = "--sp-grid-white"
	TokenGridDark         = "--sp-grid-black"
	TokenPresent          = "--present"
	TokenBoardMarginBlack = "--board-margin-black"
	TokenBoardMarginWhite = "--board-margin-white"
	TokenSquareBlack      = "--square-black"
	TokenSquareWhite      = "--square-white"
	TokenSquareFuzzy      = "--square-fuzzy"
	TokenArrowTop         = "--arrow-white-top"
	TokenDebugMarker      = "--debug-red"
	TokenLabel            = "--label"

	// highlight tokens used by hosts
	TokenHighlightCheck         = "--highlight-check"
	TokenHighlightPhantomBoard  = "--highlight-phantom-board"
	TokenHighlightGeneratedMove = "--highlight-generated-move"
)

// PaletteTokens is the fixed set every theme must resolve, with the value
// used when a theme lacks it.
var PaletteTokens = []struct {
	Token    string
	Fallback string
}{
	{TokenGridLight, "#ffffff"},
	{TokenGridDark, "#f5f5f5"},
	{TokenPresent, "rgba(219,172,52,0.4)"},
	{TokenBoardMarginBlack, "#555555"},
	{TokenBoardMarginWhite, "#dfdfdf"},
	{TokenSquareBlack, "#7f7f7f"},
	{TokenSquareWhite, "#cccccc"},
	{TokenSquareFuzzy, "#a6a6a6"},
	{TokenArrowTop, "rgba(255,255,255,0.8)"},
	{TokenDebugMarker, "red"},
	{TokenLabel, "#222222"},
}

// FadeExempt tokens keep their saturation while a fade is active
var FadeExempt = map[string]bool{
	TokenHighlightCheck:        true,
	TokenHighlightPhantomBoard: true,
}

// ---- Styles (themes) ----

type ThemeName string

const (
	ThemeLight ThemeName = "light"
	ThemeDark  ThemeName = "dark"
)

func ThemeFromString(s string) ThemeName {
	switch s {
	case "dark":
		return ThemeDark
	default:
	}
	return ThemeLight
}

var LightTheme = map[string]string{
	TokenGridLight:              "#ffffff",
	TokenGridDark:               "#f5f5f5",
	TokenPresent:                "rgba(219,172,52,0.4)",
	TokenBoardMarginBlack:       "#555555",
	TokenBoardMarginWhite:       "#dfdfdf",
	TokenSquareBlack:            "#7f7f7f",
	TokenSquareWhite:            "#cccccc",
	TokenSquareFuzzy:            "#a6a6a6",
	TokenArrowTop:               "rgba(255,255,255,0.8)",
	TokenDebugMarker:            "red",
	TokenLabel:                  "#222222",
	TokenHighlightCheck:         "#e03030",
	TokenHighlightPhantomBoard:  "rgba(120,120,255,0.5)",
	TokenHighlightGeneratedMove: "#2288cc",
}

var DarkTheme = map[string]string{
	TokenGridLight:              "#121212",
	TokenGridDark:               "#1c1c1c",
	TokenPresent:                "rgba(42,161,209,0.35)",
	TokenBoardMarginBlack:       "#202020",
	TokenBoardMarginWhite:       "#8a8a8a",
	TokenSquareBlack:            "#4a4a4a",
	TokenSquareWhite:            "#9a9a9a",
	TokenSquareFuzzy:            "#707070",
	TokenArrowTop:               "rgba(238,238,238,0.8)",
	TokenDebugMarker:            "red",
	TokenLabel:                  "#eeeeee",
	TokenHighlightCheck:         "#ff5050",
	TokenHighlightPhantomBoard:  "rgba(140,140,255,0.5)",
	TokenHighlightGeneratedMove: "var(--accent)",
	"--accent":                  "#2aa1d1",
}

func (t ThemeName) Variables() map[string]string {
	switch t {
	case ThemeDark:
		return DarkTheme
	default:
	}
	return LightTheme
}
