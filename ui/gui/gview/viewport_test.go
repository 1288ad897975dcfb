package gview

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"multiverse/src/logx"
	"multiverse/ui/gui/gbase"

	"gonum.org/v1/gonum/floats/scalar"
)

type nopCanvas struct{}

func (nopCanvas) FillRect(x, y, w, h float64, c color.Color) {}
func (nopCanvas) FillPolygon(pts []gbase.Point, p gbase.Paint) {}
func (nopCanvas) DrawImage(img image.Image, x, y, w, h float64) {}
func (nopCanvas) DrawText(s string, x, y, size float64, c color.Color) {}

type fakeTarget struct {
	w, h   int
	begins int
	ends   int
	last   gbase.Transform
}

func (f *fakeTarget) Size() (int, int) { return f.w, f.h }

func (f *fakeTarget) Begin(tr gbase.Transform) gbase.Canvas {
	f.begins++
	f.last = tr
	return nopCanvas{}
}

func (f *fakeTarget) End() { f.ends++ }

type recorder struct {
	clicks, rightClicks, hovers int
	lastX, lastY                float64
}

func newTestViewport(t *testing.T, cfg Config) (*Viewport, *fakeTarget, *recorder) {
	t.Helper()
	ft := &fakeTarget{w: 1000, h: 700}
	v, err := NewViewport(ft, cfg, logx.NewNop())
	if err != nil {
		t.Fatalf("NewViewport: %v", err)
	}
	rec := &recorder{}
	v.OnClick = func(x, y float64) { rec.clicks++; rec.lastX, rec.lastY = x, y }
	v.OnRightClick = func(x, y float64) { rec.rightClicks++; rec.lastX, rec.lastY = x, y }
	v.OnHover = func(x, y float64) { rec.hovers++ }
	return v, ft, rec
}

// settle ticks until the scheduler stops
func settle(t *testing.T, v *Viewport) int {
	t.Helper()
	now := time.Unix(0, 0)
	n := 0
	for v.Tick(now) {
		now = now.Add(16 * time.Millisecond)
		n++
		if n > 2000 {
			t.Fatalf("viewport never settled, camera %+v target %+v", v.Camera(), v.TargetCamera())
		}
	}
	return n
}

func TestNewViewport_NoSurface(t *testing.T) {
	_, err := NewViewport(nil, DefaultConfig(), logx.NewNop())
	if !errors.Is(err, ErrNoSurface) {
		t.Errorf("err %v, want %v", err, ErrNoSurface)
	}
}

func TestNewViewport_Defaults(t *testing.T) {
	v, ft, _ := newTestViewport(t, DefaultConfig())
	c := v.Camera()
	if c != NewCamera(0, 0, -1) {
		t.Errorf("initial camera %+v", c)
	}
	if ft.begins != 1 || ft.ends != 1 {
		t.Errorf("construction rendered %d/%d times, want one frame", ft.begins, ft.ends)
	}
	if w, h := v.Size(); w != 1000 || h != 700 {
		t.Errorf("size %dx%d", w, h)
	}
	if v.Animating() {
		t.Errorf("animating right after construction")
	}
}

func TestConfig_Repair(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero value",
			in:   Config{},
			want: Config{MinZoom: -5, MaxZoom: 7, ZoomSpeed: 0.005, DragSpeed: 1, LerpSpeed: 0.01, InitialZoom: 0},
		},
		{
			name: "initial zoom clamped",
			in:   Config{MinZoom: -2, MaxZoom: 2, ZoomSpeed: 1, DragSpeed: 2, LerpSpeed: 1, InitialZoom: 9},
			want: Config{MinZoom: -2, MaxZoom: 2, ZoomSpeed: 1, DragSpeed: 2, LerpSpeed: 1, InitialZoom: 2},
		},
		{
			name: "negative threshold",
			in:   Config{MinZoom: -1, MaxZoom: 1, ZoomSpeed: 1, DragSpeed: 1, LerpSpeed: 1, DragThreshold: -3},
			want: Config{MinZoom: -1, MaxZoom: 1, ZoomSpeed: 1, DragSpeed: 1, LerpSpeed: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.correctable(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewport_ClickWithoutMove(t *testing.T) {
	v, _, rec := newTestViewport(t, DefaultConfig())
	before := v.TargetCamera()

	v.PointerDown(600, 400, ButtonLeft)
	if v.Gesture() != GesturePressed {
		t.Fatalf("gesture %v after press", v.Gesture())
	}
	v.PointerUp(600, 400, ButtonLeft)

	if rec.clicks != 1 || rec.rightClicks != 0 {
		t.Errorf("clicks %d right %d, want 1 and 0", rec.clicks, rec.rightClicks)
	}
	// zoom 0.5: 100px right of center is 200 world units
	if rec.lastX != 200 || rec.lastY != 100 {
		t.Errorf("click at (%v, %v), want (200, 100)", rec.lastX, rec.lastY)
	}
	if v.TargetCamera() != before || v.Animating() {
		t.Errorf("click moved the camera")
	}
	if v.Gesture() != GestureIdle {
		t.Errorf("gesture %v after release", v.Gesture())
	}
}

func TestViewport_DragSuppressesClick(t *testing.T) {
	v, _, rec := newTestViewport(t, DefaultConfig())

	v.PointerDown(100, 100, ButtonLeft)
	v.PointerMove(110, 95)
	if v.Gesture() != GestureDragging {
		t.Fatalf("gesture %v after move", v.Gesture())
	}
	v.PointerUp(110, 95, ButtonLeft)

	if rec.clicks != 0 {
		t.Errorf("drag dispatched %d clicks", rec.clicks)
	}
	if rec.hovers != 1 {
		t.Errorf("hovers %d, want 1", rec.hovers)
	}
	// dragSpeed 1 at zoom 0.5 moves the target 2 world units per pixel
	tc := v.TargetCamera()
	if tc.X != 20 || tc.Y != -10 {
		t.Errorf("target (%v, %v), want (20, -10)", tc.X, tc.Y)
	}
	if !v.Animating() {
		t.Errorf("drag did not start the animation")
	}
}

func TestViewport_DragThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DragThreshold = 5
	v, _, rec := newTestViewport(t, cfg)

	v.PointerDown(100, 100, ButtonLeft)
	v.PointerMove(102, 101)
	if v.Gesture() != GesturePressed {
		t.Errorf("small move started a drag")
	}
	v.PointerUp(102, 101, ButtonLeft)
	if rec.clicks != 1 {
		t.Errorf("clicks %d, want 1", rec.clicks)
	}
}

func TestViewport_RightClick(t *testing.T) {
	v, _, rec := newTestViewport(t, DefaultConfig())
	v.PointerDown(500, 350, ButtonRight)
	if v.Gesture() != GestureIdle {
		t.Errorf("right press changed gesture to %v", v.Gesture())
	}
	v.PointerMove(520, 350)
	v.PointerUp(520, 350, ButtonRight)
	if rec.rightClicks != 1 || rec.clicks != 0 {
		t.Errorf("right %d left %d", rec.rightClicks, rec.clicks)
	}
	if v.Animating() {
		t.Errorf("right button dragged the camera")
	}
}

func TestViewport_PointerLeave(t *testing.T) {
	v, _, rec := newTestViewport(t, DefaultConfig())
	v.PointerDown(100, 100, ButtonLeft)
	v.PointerLeave()
	v.PointerUp(100, 100, ButtonLeft)
	if rec.clicks != 0 {
		t.Errorf("click dispatched after leave")
	}
}

func TestViewport_Wheel(t *testing.T) {
	v, _, _ := newTestViewport(t, DefaultConfig())
	v.Wheel(100)
	if got := v.TargetCamera().Scale; !scalar.EqualWithinAbs(got, -1.5, tol) {
		t.Errorf("scale %v, want -1.5", got)
	}
	v.Wheel(1e6)
	if got := v.TargetCamera().Scale; got != -5 {
		t.Errorf("scale %v, want clamp to -5", got)
	}
	v.Wheel(-1e6)
	if got := v.TargetCamera().Scale; got != 7 {
		t.Errorf("scale %v, want clamp to 7", got)
	}
}

func TestViewport_TouchTap(t *testing.T) {
	t0 := time.Unix(10, 0)
	tests := []struct {
		name  string
		held  time.Duration
		moveX float64
		want  int
	}{
		{"quick tap", 100 * time.Millisecond, 0, 1},
		{"long press", 400 * time.Millisecond, 0, 0},
		{"quick drag", 100 * time.Millisecond, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, rec := newTestViewport(t, DefaultConfig())
			v.TouchStart(1, 300, 300, t0)
			if tt.moveX != 0 {
				v.TouchMove(1, 300+tt.moveX, 300)
			}
			v.TouchEnd(1, t0.Add(tt.held))
			if rec.clicks != tt.want {
				t.Errorf("clicks %d, want %d", rec.clicks, tt.want)
			}
			if v.Gesture() != GestureIdle {
				t.Errorf("gesture %v after lift", v.Gesture())
			}
		})
	}
}

func TestViewport_Pinch(t *testing.T) {
	v, _, rec := newTestViewport(t, DefaultConfig())
	t0 := time.Unix(0, 0)

	v.TouchStart(1, 400, 300, t0)
	v.TouchStart(2, 500, 300, t0)
	v.TouchMove(2, 600, 300) // distance doubled
	if got := v.TargetCamera().Scale; !scalar.EqualWithinAbs(got, 0, tol) {
		t.Errorf("scale %v after doubling distance, want 0", got)
	}
	v.TouchMove(2, 450, 300) // back to half the start distance
	if got := v.TargetCamera().Scale; !scalar.EqualWithinAbs(got, -2, tol) {
		t.Errorf("scale %v, want -2 relative to gesture start", got)
	}

	// lifting one finger continues as a single finger drag
	v.TouchEnd(2, t0.Add(50*time.Millisecond))
	if v.Gesture() != GestureDragging {
		t.Fatalf("gesture %v after lifting one finger", v.Gesture())
	}
	before := v.TargetCamera()
	v.TouchMove(1, 410, 300)
	if v.TargetCamera().X == before.X {
		t.Errorf("remaining finger did not pan")
	}
	v.TouchEnd(1, t0.Add(60*time.Millisecond))
	if rec.clicks != 0 {
		t.Errorf("pinch ended in a tap")
	}
}

func TestViewport_MoveToSettles(t *testing.T) {
	v, ft, _ := newTestViewport(t, DefaultConfig())
	var bounds []Bounds
	v.OnRender = func(c gbase.Canvas, b Bounds) { bounds = append(bounds, b) }

	zoom := 2.0
	v.MoveToZoom(100, -50, zoom)
	frames := settle(t, v)
	if frames == 0 {
		t.Fatalf("MoveTo did not animate")
	}
	c := v.Camera()
	if !c.IsCloseTo(NewCamera(-100, 50, 2)) {
		t.Errorf("settled at %+v", c)
	}
	if len(bounds) != frames {
		t.Errorf("%d renders for %d frames", len(bounds), frames)
	}
	if got := bounds[len(bounds)-1]; got != v.VisibleBounds() {
		t.Errorf("last render bounds %+v, visible %+v", got, v.VisibleBounds())
	}
	if ft.last != c.Transform(1000, 700) {
		t.Errorf("last transform %+v does not match camera", ft.last)
	}
}

func TestViewport_MoveToZoomClamped(t *testing.T) {
	v, _, _ := newTestViewport(t, DefaultConfig())
	v.MoveToZoom(0, 0, 50)
	if got := v.TargetCamera().Scale; got != 7 {
		t.Errorf("scale %v, want 7", got)
	}
	v.ResetView()
	if got := v.TargetCamera(); got != NewCamera(0, 0, -1) {
		t.Errorf("reset target %+v", got)
	}
}

func TestViewport_Resize(t *testing.T) {
	v, ft, _ := newTestViewport(t, DefaultConfig())
	ft.w, ft.h = 400, 300
	v.Resize()
	if w, h := v.Size(); w != 400 || h != 300 {
		t.Errorf("size %dx%d after resize", w, h)
	}
	b := v.VisibleBounds()
	if b.Width() != 800 || b.Height() != 600 {
		t.Errorf("bounds %+v at zoom 0.5", b)
	}
}
