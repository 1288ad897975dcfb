package gview

import (
	"errors"
	"multiverse/src/logx"
	"multiverse/ui/gui/gbase"
	"time"
)

var ErrNoSurface = errors.New("viewport: rendering surface not found")

// Target is the surface a viewport paints into. Begin clears it and returns
// a canvas with the camera transform applied, End flushes the frame.
type Target interface {
	Size() (w, h int)
	Begin(tr gbase.Transform) gbase.Canvas
	End()
}

type Config struct {
	MinZoom   float64 `json:"min_zoom"`
	MaxZoom   float64 `json:"max_zoom"`
	ZoomSpeed float64 `json:"zoom_speed"` // scale per wheel delta unit
	DragSpeed float64 `json:"drag_speed"`
	LerpSpeed float64 `json:"lerp_speed"` // per millisecond
	InitialX  float64 `json:"initial_x"`
	InitialY  float64 `json:"initial_y"`
	// InitialZoom is a scale exponent, like MinZoom/MaxZoom
	InitialZoom float64 `json:"initial_zoom"`
	// DragThreshold in pixels before a press becomes a drag, 0 = any move
	DragThreshold float64 `json:"drag_threshold"`
}

func DefaultConfig() Config {
	return Config{
		MinZoom:     -5.0,
		MaxZoom:     7.0,
		ZoomSpeed:   0.005,
		DragSpeed:   1.0,
		LerpSpeed:   0.01,
		InitialZoom: -1.0,
	}
}

// correctable repairs values the controller cannot work with
func (c Config) correctable() Config {
	def := DefaultConfig()
	if c.MinZoom >= c.MaxZoom {
		c.MinZoom, c.MaxZoom = def.MinZoom, def.MaxZoom
	}
	if c.ZoomSpeed <= 0 {
		c.ZoomSpeed = def.ZoomSpeed
	}
	if c.DragSpeed <= 0 {
		c.DragSpeed = def.DragSpeed
	}
	if c.LerpSpeed <= 0 {
		c.LerpSpeed = def.LerpSpeed
	}
	if c.DragThreshold < 0 {
		c.DragThreshold = 0
	}
	c.InitialZoom = clamp(c.InitialZoom, c.MinZoom, c.MaxZoom)
	return c
}

type RenderFunc func(c gbase.Canvas, b Bounds)
type PointFunc func(worldX, worldY float64)

// Viewport is an infinite pannable and zoomable view onto a Target
type Viewport struct {
	target Target
	cfg    Config
	logx   logx.Logger

	camTarget  Camera // set by input
	camCurrent Camera // eased toward camTarget every frame
	sched      *Scheduler

	width, height int

	gesture gestureTracker

	// callback slots, assigned by the owner
	OnRender     RenderFunc
	OnClick      PointFunc
	OnRightClick PointFunc
	OnHover      PointFunc
}

func NewViewport(target Target, cfg Config, l logx.Logger) (*Viewport, error) {
	if target == nil {
		return nil, ErrNoSurface
	}
	cfg = cfg.correctable()
	v := &Viewport{
		target:    target,
		cfg:       cfg,
		logx:      l,
		camTarget: NewCamera(cfg.InitialX, cfg.InitialY, cfg.InitialZoom),
	}
	v.camCurrent = v.camTarget.Clone()
	v.sched = NewScheduler(v.frame)
	v.Resize()
	return v, nil
}

func (v *Viewport) Config() Config {
	return v.cfg
}

func (v *Viewport) frame(dt time.Duration) FrameState {
	v.camCurrent.LerpTowards(v.camTarget, dt, v.cfg.LerpSpeed)
	v.Render()
	if v.camCurrent.IsCloseTo(v.camTarget) {
		return Settled
	}
	return Animating
}

// Render paints one frame with the current (eased) camera
func (v *Viewport) Render() {
	canvas := v.target.Begin(v.camCurrent.Transform(v.width, v.height))
	if v.OnRender != nil {
		v.OnRender(canvas, v.camCurrent.VisibleWorldBounds(v.width, v.height))
	}
	v.target.End()
}

// Tick advances the animation by one display frame
func (v *Viewport) Tick(now time.Time) bool {
	return v.sched.Tick(now)
}

func (v *Viewport) StartAnimation() {
	v.sched.Start()
}

func (v *Viewport) StopAnimation() {
	v.sched.Stop()
}

func (v *Viewport) Animating() bool {
	return v.sched.Running()
}

// Resize re-reads the surface dimensions and renders once
func (v *Viewport) Resize() {
	w, h := v.target.Size()
	if w != v.width || h != v.height {
		v.logx.Debugf("viewport resize %dx%d -> %dx%d", v.width, v.height, w, h)
	}
	v.width, v.height = w, h
	v.Render()
}

func (v *Viewport) Size() (int, int) {
	return v.width, v.height
}

// MoveTo centers the view on a world position, keeping the zoom target
func (v *Viewport) MoveTo(worldX, worldY float64) {
	v.camTarget.X = -worldX
	v.camTarget.Y = -worldY
	v.StartAnimation()
}

// MoveToZoom centers the view on a world position at the given scale exponent
func (v *Viewport) MoveToZoom(worldX, worldY, zoom float64) {
	v.camTarget.Scale = clamp(zoom, v.cfg.MinZoom, v.cfg.MaxZoom)
	v.MoveTo(worldX, worldY)
}

func (v *Viewport) ResetView() {
	v.MoveToZoom(0, 0, v.cfg.InitialZoom)
}

// Camera returns a copy of the current camera
func (v *Viewport) Camera() Camera {
	return v.camCurrent.Clone()
}

// TargetCamera returns a copy of the camera the view is easing toward
func (v *Viewport) TargetCamera() Camera {
	return v.camTarget.Clone()
}

func (v *Viewport) VisibleBounds() Bounds {
	return v.camCurrent.VisibleWorldBounds(v.width, v.height)
}

func (v *Viewport) screenToWorld(sx, sy float64) (float64, float64) {
	return v.camCurrent.ScreenToWorld(sx, sy, v.width, v.height)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
