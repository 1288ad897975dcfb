package gview

import (
	"math"
	"multiverse/ui/gui/gbase"
	"time"
)

// termination thresholds of camera easing
const (
	DefaultPositionEps = 0.1
	DefaultScaleEps    = 0.02

	// easing toward a target scale of 0 would otherwise never settle
	scaleSnap = 1e-9
)

// Camera looks at the world origin minus (X, Y). Scale is a base 2
// exponent: the zoom level is 2^Scale.
type Camera struct {
	X, Y  float64
	Scale float64
}

// Bounds is a world-space rectangle
type Bounds struct {
	Left, Top, Right, Bottom float64
}

func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

func NewCamera(x, y, scale float64) Camera {
	return Camera{X: x, Y: y, Scale: scale}
}

func (c Camera) Clone() Camera {
	return c
}

// IsCloseTo uses the default thresholds
func (c Camera) IsCloseTo(other Camera) bool {
	return c.IsCloseToEps(other, DefaultPositionEps, DefaultScaleEps)
}

// IsCloseToEps compares scales as a ratio. A zero other.Scale yields an
// infinite or NaN ratio, which never counts as close unless the scales
// differ by less than scaleSnap.
func (c Camera) IsCloseToEps(other Camera, posEps, scaleEps float64) bool {
	if math.Abs(c.X-other.X) >= posEps || math.Abs(c.Y-other.Y) >= posEps {
		return false
	}
	if math.Abs(c.Scale-other.Scale) < scaleSnap {
		return true
	}
	return math.Abs(c.Scale/other.Scale-1) < scaleEps
}

// LerpTowards moves 1 - 1/(1+dt*speed) of the remaining distance, dt in ms
func (c *Camera) LerpTowards(target Camera, dt time.Duration, speed float64) {
	if c.IsCloseTo(target) {
		return
	}
	ms := float64(dt) / float64(time.Millisecond)
	f := 1.0 - 1.0/(1.0+ms*speed)
	c.X += (target.X - c.X) * f
	c.Y += (target.Y - c.Y) * f
	c.Scale += (target.Scale - c.Scale) * f
}

func (c Camera) ZoomLevel() float64 {
	return math.Exp2(c.Scale)
}

func (c Camera) ScreenToWorld(sx, sy float64, viewW, viewH int) (float64, float64) {
	z := c.ZoomLevel()
	return (sx-float64(viewW)/2)/z - c.X, (sy-float64(viewH)/2)/z - c.Y
}

func (c Camera) WorldToScreen(wx, wy float64, viewW, viewH int) (float64, float64) {
	z := c.ZoomLevel()
	return (wx+c.X)*z + float64(viewW)/2, (wy+c.Y)*z + float64(viewH)/2
}

func (c Camera) VisibleWorldBounds(viewW, viewH int) Bounds {
	left, top := c.ScreenToWorld(0, 0, viewW, viewH)
	right, bottom := c.ScreenToWorld(float64(viewW), float64(viewH), viewW, viewH)
	return Bounds{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Transform is translate(center) * scale(zoom) * translate(camera)
func (c Camera) Transform(viewW, viewH int) gbase.Transform {
	z := c.ZoomLevel()
	return gbase.Transform{
		Scale:   z,
		OffsetX: c.X*z + float64(viewW)/2,
		OffsetY: c.Y*z + float64(viewH)/2,
	}
}
