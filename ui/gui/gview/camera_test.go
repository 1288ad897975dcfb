package gview

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func TestCamera_ScreenWorldRoundTrip(t *testing.T) {
	cams := []Camera{
		NewCamera(0, 0, 0),
		NewCamera(0, 0, -1),
		NewCamera(123.5, -77.25, 3.3),
		NewCamera(-1e4, 2e4, -5),
		NewCamera(0.1, 0.2, 7),
	}
	points := [][2]float64{{0, 0}, {500, 350}, {1000, 700}, {-20, 913.7}}

	for _, c := range cams {
		for _, p := range points {
			wx, wy := c.ScreenToWorld(p[0], p[1], 1000, 700)
			sx, sy := c.WorldToScreen(wx, wy, 1000, 700)
			if !scalar.EqualWithinAbsOrRel(sx, p[0], tol, tol) || !scalar.EqualWithinAbsOrRel(sy, p[1], tol, tol) {
				t.Errorf("camera %+v: round trip of %v gave (%v, %v)", c, p, sx, sy)
			}
		}
	}
}

func TestCamera_TransformMatchesWorldToScreen(t *testing.T) {
	c := NewCamera(12, -40, 1.5)
	tr := c.Transform(800, 600)
	for _, p := range [][2]float64{{0, 0}, {100, -3}, {-55.5, 20}} {
		ax, ay := tr.Apply(p[0], p[1])
		bx, by := c.WorldToScreen(p[0], p[1], 800, 600)
		if !scalar.EqualWithinAbs(ax, bx, tol) || !scalar.EqualWithinAbs(ay, by, tol) {
			t.Errorf("transform(%v) = (%v, %v), want (%v, %v)", p, ax, ay, bx, by)
		}
		wx, wy := tr.Invert(ax, ay)
		if !scalar.EqualWithinAbs(wx, p[0], tol) || !scalar.EqualWithinAbs(wy, p[1], tol) {
			t.Errorf("invert gave (%v, %v), want %v", wx, wy, p)
		}
	}
}

func TestCamera_VisibleWorldBounds(t *testing.T) {
	c := NewCamera(0, 0, 1) // zoom 2
	b := c.VisibleWorldBounds(1000, 700)
	want := Bounds{Left: -250, Top: -175, Right: 250, Bottom: 175}
	if b != want {
		t.Errorf("bounds %+v, want %+v", b, want)
	}
	if b.Width() != 500 || b.Height() != 350 {
		t.Errorf("size %vx%v, want 500x350", b.Width(), b.Height())
	}
}

func TestCamera_IsCloseTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Camera
		want bool
	}{
		{"identical", NewCamera(1, 2, 3), NewCamera(1, 2, 3), true},
		{"identical zero scale", NewCamera(1, 2, 0), NewCamera(1, 2, 0), true},
		{"small offset", NewCamera(1, 2, 3), NewCamera(1.05, 1.95, 3.03), true},
		{"x too far", NewCamera(1, 2, 3), NewCamera(1.1, 2, 3), false},
		{"y too far", NewCamera(1, 2, 3), NewCamera(1, 2.2, 3), false},
		{"scale ratio", NewCamera(0, 0, 1), NewCamera(0, 0, 1.05), false},
		{"zero target scale", NewCamera(0, 0, 0.001), NewCamera(0, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsCloseTo(tt.b); got != tt.want {
				t.Errorf("IsCloseTo = %v, want %v", got, tt.want)
			}
			if tt.a == tt.b && !tt.b.IsCloseTo(tt.a) {
				t.Errorf("not symmetric for identical cameras")
			}
		})
	}
}

func TestCamera_LerpConverges(t *testing.T) {
	targets := []struct {
		from, to Camera
	}{
		{NewCamera(0, 0, -1), NewCamera(100, -50, 2)},
		{NewCamera(-3000, 4000, 7), NewCamera(0, 0, -5)},
		{NewCamera(5, 5, -1), NewCamera(5, 5, 0)},
	}
	for _, tt := range targets {
		c := tt.from.Clone()
		prev := math.Inf(1)
		steps := 0
		for !c.IsCloseTo(tt.to) {
			c.LerpTowards(tt.to, 16*time.Millisecond, 0.01)
			d := math.Abs(c.X-tt.to.X) + math.Abs(c.Y-tt.to.Y) + math.Abs(c.Scale-tt.to.Scale)
			if d > prev {
				t.Fatalf("distance grew from %v to %v", prev, d)
			}
			prev = d
			steps++
			if steps > 1000 {
				t.Fatalf("no convergence from %+v to %+v, at %+v", tt.from, tt.to, c)
			}
		}
	}
}

func TestCamera_LerpNoopWhenClose(t *testing.T) {
	c := NewCamera(1, 1, 1)
	target := NewCamera(1.01, 1, 1)
	c.LerpTowards(target, 50*time.Millisecond, 0.01)
	if c != NewCamera(1, 1, 1) {
		t.Errorf("camera moved to %+v", c)
	}
}

func TestCamera_CloneIndependent(t *testing.T) {
	c := NewCamera(1, 2, 3)
	d := c.Clone()
	d.X = 10
	if c.X != 1 {
		t.Errorf("clone shares state")
	}
}
