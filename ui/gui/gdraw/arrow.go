package gdraw

import (
	"image/color"
	"math"

	"multiverse/ui/gui/gbase"
)

const (
	arrowHeadLen   = 8.0
	arrowHalfWidth = 1.5
	arrowTipSpan   = math.Pi / 7
)

// ArrowPolygon outlines a shaft from (fx, fy) to (tx, ty) ending in a
// triangular head, clockwise from the tail
func ArrowPolygon(fx, fy, tx, ty float64) []gbase.Point {
	angle := math.Atan2(ty-fy, tx-fx)
	sin, cos := math.Sin(angle), math.Cos(angle)

	leftX := tx - arrowHeadLen*math.Cos(angle-arrowTipSpan)
	leftY := ty - arrowHeadLen*math.Sin(angle-arrowTipSpan)
	rightX := tx - arrowHeadLen*math.Cos(angle+arrowTipSpan)
	rightY := ty - arrowHeadLen*math.Sin(angle+arrowTipSpan)
	// where the shaft meets the head
	midX := tx - arrowHeadLen*math.Cos(arrowTipSpan)*cos
	midY := ty - arrowHeadLen*math.Cos(arrowTipSpan)*sin

	w := arrowHalfWidth
	return []gbase.Point{
		{X: fx - w*sin, Y: fy + w*cos},
		{X: fx + w*sin, Y: fy - w*cos},
		{X: midX + w*sin, Y: midY - w*cos},
		{X: rightX, Y: rightY},
		{X: tx, Y: ty},
		{X: leftX, Y: leftY},
		{X: midX - w*sin, Y: midY + w*cos},
	}
}

// ArrowGradient fades the trail in from the tail. The opaque part starts
// half a board width from the tail whatever the arrow length.
func ArrowGradient(fx, fy, tx, ty float64, lengthX int, top, c color.NRGBA) *gbase.LinearGradient {
	d := math.Hypot(tx-fx, ty-fy)
	u := 1.0
	if d > 0 {
		u = math.Min(float64(lengthX)/2/d, 1)
	}
	clear := color.NRGBA{R: 255, G: 255, B: 255}
	return &gbase.LinearGradient{
		X0: fx, Y0: fy, X1: tx, Y1: ty,
		Stops: []gbase.GradientStop{
			{Offset: 0, Color: clear},
			{Offset: u / 3, Color: clear},
			{Offset: u, Color: top},
			{Offset: 1, Color: c},
		},
	}
}
