package gbase

import (
	"image"
	"image/color"
)

// ---- Drawing primitives shared by the viewport and its back-ends ----

type Point struct {
	X, Y float64
}

// Transform maps world coordinates to screen pixels: s = w*Scale + Offset
type Transform struct {
	Scale            float64
	OffsetX, OffsetY float64
}

func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.OffsetX, y*t.Scale + t.OffsetY
}

func (t Transform) Invert(sx, sy float64) (float64, float64) {
	return (sx - t.OffsetX) / t.Scale, (sy - t.OffsetY) / t.Scale
}

type GradientStop struct {
	Offset float64 // 0..1 along the gradient axis
	Color  color.Color
}

// LinearGradient runs from (X0,Y0) to (X1,Y1) in world coordinates
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []GradientStop
}

// Paint is a solid color unless Gradient is set
type Paint struct {
	Color    color.Color
	Gradient *LinearGradient
}

func Solid(c color.Color) Paint {
	return Paint{Color: c}
}

// Canvas is the world-space drawing context handed to render callbacks.
// Coordinates are world units; the implementation applies the camera.
type Canvas interface {
	FillRect(x, y, w, h float64, c color.Color)
	FillPolygon(pts []Point, p Paint)
	// DrawImage stretches img over the world rectangle
	DrawImage(img image.Image, x, y, w, h float64)
	// DrawText places s with its top-left at (x, y); size is in world units
	DrawText(s string, x, y, size float64, c color.Color)
}
