package ghelper

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ---- UI ELEMENTS ----

// ---- Button ----

type Button struct {
	Label      string
	X, Y, W, H int
	Image      *ebiten.Image // pre-rendered rounded rect with stroke

	Hover   bool // mouse over
	Pressed bool // mouse went down on this button and is still down

	Scale         float64 // current scale, 1 at rest
	TargetScale   float64
	OffsetY       float64 // pressed push-down
	TargetOffsetY float64
	AnimSpeed     float64 // approach rate per second
}

func (b *Button) Contains(px, py int) bool {
	return PointInRect(px, py, b.X, b.Y, b.W, b.H)
}

// HandleInput is called every Update and reports a completed click
func (b *Button) HandleInput(px, py int, justClicked, justReleased bool) bool {
	inside := b.Contains(px, py)
	b.Hover = inside

	if justClicked && inside {
		b.Pressed = true
		b.TargetScale = 0.96
		b.TargetOffsetY = 2
	}
	if justReleased {
		clicked := b.Pressed && inside
		b.Pressed = false
		b.TargetOffsetY = 0
		if clicked {
			b.TargetScale = 1.03 // bounce, damped in UpdateAnim
			return true
		}
		b.TargetScale = 1
	}
	if !b.Pressed {
		b.TargetOffsetY = 0
		if inside {
			b.TargetScale = 1.02
		} else if b.TargetScale != 1.03 {
			b.TargetScale = 1
		}
	}
	return false
}

// UpdateAnim moves the animated values toward their targets, dt in seconds.
// It reports whether the button is still moving.
func (b *Button) UpdateAnim(dt float64) bool {
	if b.AnimSpeed <= 0 {
		b.AnimSpeed = 8.0
	}
	t := 1.0 - math.Exp(-b.AnimSpeed*dt)
	b.Scale += (b.TargetScale - b.Scale) * t
	b.OffsetY += (b.TargetOffsetY - b.OffsetY) * t

	if !b.Pressed && math.Abs(b.Scale-1.03) < 0.005 {
		b.TargetScale = 1.0
	}
	return math.Abs(b.Scale-b.TargetScale) > 1e-3 || math.Abs(b.OffsetY-b.TargetOffsetY) > 1e-2
}

func (b *Button) DrawAnimated(screen *ebiten.Image, face text.Face, ink color.Color) {
	if b.Image == nil {
		return
	}
	cx := float64(b.X) + float64(b.W)/2
	cy := float64(b.Y) + float64(b.H)/2 + b.OffsetY

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-float64(b.Image.Bounds().Dx())/2, -float64(b.Image.Bounds().Dy())/2)
	op.GeoM.Scale(b.Scale, b.Scale)
	op.GeoM.Translate(cx, cy)
	screen.DrawImage(b.Image, op)

	if face == nil {
		return
	}
	top := &text.DrawOptions{}
	top.PrimaryAlign = text.AlignCenter
	top.SecondaryAlign = text.AlignCenter
	top.GeoM.Translate(cx, cy)
	top.ColorScale.ScaleWithColor(ink)
	text.Draw(screen, b.Label, face, top)
}
