package gview

import (
	"math"
	"time"
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

type GestureState int

const (
	GestureIdle GestureState = iota
	GesturePressed
	GestureDragging
)

func (g GestureState) String() string {
	switch g {
	case GesturePressed:
		return "pressed"
	case GestureDragging:
		return "dragging"
	default:
	}
	return "idle"
}

// a touch released within this window without dragging is a tap
const TapWindow = 300 * time.Millisecond

type touchPoint struct {
	id   int
	x, y float64
}

type gestureTracker struct {
	state GestureState

	// drag anchor in scaled screen space, see anchorAt
	anchorX, anchorY float64
	pressX, pressY   float64
	pressedAt        time.Time

	touches    []touchPoint // active, in arrival order
	pinching   bool
	startDist  float64
	startScale float64
}

func (v *Viewport) Gesture() GestureState {
	return v.gesture.state
}

// anchorAt records the pointer so that later moves update the camera
// target relative to where it was when the press happened
func (v *Viewport) anchorAt(sx, sy float64) {
	k := v.cfg.DragSpeed / v.camCurrent.ZoomLevel()
	v.gesture.anchorX = k*sx - v.camTarget.X
	v.gesture.anchorY = k*sy - v.camTarget.Y
	v.gesture.pressX, v.gesture.pressY = sx, sy
}

func (v *Viewport) dragTo(sx, sy float64) {
	k := v.cfg.DragSpeed / v.camCurrent.ZoomLevel()
	v.camTarget.X = k*sx - v.gesture.anchorX
	v.camTarget.Y = k*sy - v.gesture.anchorY
	v.StartAnimation()
}

// beyondThreshold reports whether the pointer left the press point far
// enough to count as a drag
func (v *Viewport) beyondThreshold(sx, sy float64) bool {
	if v.cfg.DragThreshold <= 0 {
		return true
	}
	return math.Hypot(sx-v.gesture.pressX, sy-v.gesture.pressY) >= v.cfg.DragThreshold
}

// ---- Mouse ----

func (v *Viewport) PointerDown(sx, sy float64, b Button) {
	if b != ButtonLeft {
		return
	}
	v.gesture.state = GesturePressed
	v.anchorAt(sx, sy)
}

func (v *Viewport) PointerMove(sx, sy float64) {
	switch v.gesture.state {
	case GesturePressed:
		if v.beyondThreshold(sx, sy) {
			v.gesture.state = GestureDragging
			v.dragTo(sx, sy)
		}
	case GestureDragging:
		v.dragTo(sx, sy)
	default:
	}

	if v.OnHover != nil {
		wx, wy := v.screenToWorld(sx, sy)
		v.OnHover(wx, wy)
	}
}

func (v *Viewport) PointerUp(sx, sy float64, b Button) {
	wx, wy := v.screenToWorld(sx, sy)
	switch b {
	case ButtonLeft:
		clicked := v.gesture.state == GesturePressed
		v.gesture.state = GestureIdle
		if clicked && v.OnClick != nil {
			v.OnClick(wx, wy)
		}
	case ButtonRight:
		if v.gesture.state != GestureDragging && v.OnRightClick != nil {
			v.OnRightClick(wx, wy)
		}
	default:
	}
}

// PointerLeave drops any gesture in progress
func (v *Viewport) PointerLeave() {
	v.gesture.state = GestureIdle
}

// Wheel zooms the target by deltaY in page scroll units, positive = away
func (v *Viewport) Wheel(deltaY float64) {
	v.camTarget.Scale = clamp(v.camTarget.Scale-deltaY*v.cfg.ZoomSpeed, v.cfg.MinZoom, v.cfg.MaxZoom)
	v.StartAnimation()
}

// ---- Touch ----

func (v *Viewport) TouchStart(id int, sx, sy float64, now time.Time) {
	g := &v.gesture
	g.touches = append(g.touches, touchPoint{id: id, x: sx, y: sy})
	switch len(g.touches) {
	case 1:
		g.state = GesturePressed
		g.pressedAt = now
		v.anchorAt(sx, sy)
	default:
		// a second finger never ends in a tap
		g.state = GestureDragging
		v.beginPinch()
	}
}

func (v *Viewport) TouchMove(id int, sx, sy float64) {
	g := &v.gesture
	i := g.indexOf(id)
	if i < 0 {
		return
	}
	g.touches[i].x, g.touches[i].y = sx, sy

	if g.pinching {
		if g.startDist > 0 {
			d := g.pinchDistance()
			if d > 0 {
				v.camTarget.Scale = clamp(g.startScale+math.Log2(d/g.startDist), v.cfg.MinZoom, v.cfg.MaxZoom)
				v.StartAnimation()
			}
		}
		return
	}

	switch g.state {
	case GesturePressed:
		if v.beyondThreshold(sx, sy) {
			g.state = GestureDragging
			v.dragTo(sx, sy)
		}
	case GestureDragging:
		v.dragTo(sx, sy)
	default:
	}
}

func (v *Viewport) TouchEnd(id int, now time.Time) {
	g := &v.gesture
	i := g.indexOf(id)
	if i < 0 {
		return
	}
	lifted := g.touches[i]
	g.touches = append(g.touches[:i], g.touches[i+1:]...)

	switch len(g.touches) {
	case 0:
		tap := g.state == GesturePressed && now.Sub(g.pressedAt) < TapWindow
		g.state = GestureIdle
		g.pinching = false
		if tap && v.OnClick != nil {
			wx, wy := v.screenToWorld(lifted.x, lifted.y)
			v.OnClick(wx, wy)
		}
	case 1:
		// continue as a fresh single finger drag
		g.pinching = false
		g.state = GestureDragging
		v.anchorAt(g.touches[0].x, g.touches[0].y)
	default:
		v.beginPinch()
	}
}

// TouchCancel forgets every finger without dispatching
func (v *Viewport) TouchCancel() {
	v.gesture.touches = v.gesture.touches[:0]
	v.gesture.pinching = false
	v.gesture.state = GestureIdle
}

func (v *Viewport) beginPinch() {
	g := &v.gesture
	g.pinching = true
	g.startDist = g.pinchDistance()
	g.startScale = v.camTarget.Scale
}

func (g *gestureTracker) pinchDistance() float64 {
	if len(g.touches) < 2 {
		return 0
	}
	a, b := g.touches[0], g.touches[1]
	return math.Hypot(a.x-b.x, a.y-b.y)
}

func (g *gestureTracker) indexOf(id int) int {
	for i, t := range g.touches {
		if t.id == id {
			return i
		}
	}
	return -1
}
