package ghelper

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"multiverse/ui/gui/gview"
)

// wheelStepPx converts one wheel notch into page scroll units
const wheelStepPx = 100

// Pointer is the viewport's input side
type Pointer interface {
	PointerDown(sx, sy float64, b gview.Button)
	PointerMove(sx, sy float64)
	PointerUp(sx, sy float64, b gview.Button)
	PointerLeave()
	Wheel(deltaY float64)
	TouchStart(id int, sx, sy float64, now time.Time)
	TouchMove(id int, sx, sy float64)
	TouchEnd(id int, now time.Time)
}

type TouchPoint struct {
	ID   int
	X, Y int
}

// InputFrame is the input observed during one game update
type InputFrame struct {
	CursorX, CursorY int
	Pressed          []gview.Button
	Released         []gview.Button
	WheelY           float64 // notches, positive = up

	TouchesStarted []TouchPoint
	TouchesHeld    []TouchPoint
	TouchesEnded   []int
}

// InputPoller turns ebiten's polled state into viewport events
type InputPoller struct {
	target Pointer
	w, h   int

	inside     bool
	lastX      int
	lastY      int
	seenCursor bool
	touchPos   map[int]TouchPoint

	touchIDs []ebiten.TouchID

	// Block claims mouse presses over overlay widgets
	Block func(x, y int) bool
}

func NewInputPoller(target Pointer) *InputPoller {
	return &InputPoller{target: target, touchPos: make(map[int]TouchPoint)}
}

// SetArea is the window area in which the cursor counts as inside
func (p *InputPoller) SetArea(w, h int) {
	p.w, p.h = w, h
}

var mouseButtons = []struct {
	eb ebiten.MouseButton
	b  gview.Button
}{
	{ebiten.MouseButtonLeft, gview.ButtonLeft},
	{ebiten.MouseButtonRight, gview.ButtonRight},
	{ebiten.MouseButtonMiddle, gview.ButtonMiddle},
}

// Poll reads ebiten input, call once per Update
func (p *InputPoller) Poll(now time.Time) {
	var f InputFrame
	f.CursorX, f.CursorY = ebiten.CursorPosition()
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.eb) {
			f.Pressed = append(f.Pressed, mb.b)
		}
		if inpututil.IsMouseButtonJustReleased(mb.eb) {
			f.Released = append(f.Released, mb.b)
		}
	}
	_, f.WheelY = ebiten.Wheel()

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		f.TouchesStarted = append(f.TouchesStarted, TouchPoint{ID: int(id), X: x, Y: y})
	}
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		f.TouchesHeld = append(f.TouchesHeld, TouchPoint{ID: int(id), X: x, Y: y})
	}
	p.touchIDs = inpututil.AppendJustReleasedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		f.TouchesEnded = append(f.TouchesEnded, int(id))
	}

	p.Apply(f, now)
}

// Apply dispatches one frame of input. Touch devices also synthesise a
// cursor, so mouse events are ignored while fingers are down.
func (p *InputPoller) Apply(f InputFrame, now time.Time) {
	for _, t := range f.TouchesStarted {
		p.touchPos[t.ID] = t
		p.target.TouchStart(t.ID, float64(t.X), float64(t.Y), now)
	}
	for _, t := range f.TouchesHeld {
		if prev, ok := p.touchPos[t.ID]; ok && (prev.X != t.X || prev.Y != t.Y) {
			p.touchPos[t.ID] = t
			p.target.TouchMove(t.ID, float64(t.X), float64(t.Y))
		}
	}
	for _, id := range f.TouchesEnded {
		if _, ok := p.touchPos[id]; ok {
			delete(p.touchPos, id)
			p.target.TouchEnd(id, now)
		}
	}
	if len(p.touchPos) > 0 || len(f.TouchesStarted) > 0 || len(f.TouchesEnded) > 0 {
		return
	}

	x, y := f.CursorX, f.CursorY
	inside := PointInRect(x, y, 0, 0, p.w, p.h)
	if !inside {
		if p.inside {
			p.target.PointerLeave()
		}
		p.inside = false
		return
	}
	p.inside = true

	fx, fy := float64(x), float64(y)
	if !p.seenCursor || x != p.lastX || y != p.lastY {
		p.seenCursor = true
		p.lastX, p.lastY = x, y
		p.target.PointerMove(fx, fy)
	}
	if p.Block == nil || !p.Block(x, y) {
		for _, b := range f.Pressed {
			p.target.PointerDown(fx, fy, b)
		}
	}
	for _, b := range f.Released {
		p.target.PointerUp(fx, fy, b)
	}
	if f.WheelY != 0 {
		p.target.Wheel(-f.WheelY * wheelStepPx)
	}
}
