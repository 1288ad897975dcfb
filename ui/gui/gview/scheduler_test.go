package gview

import (
	"testing"
	"time"
)

func TestScheduler_DeltaAndClamp(t *testing.T) {
	var got []time.Duration
	s := NewScheduler(func(dt time.Duration) FrameState {
		got = append(got, dt)
		return Animating
	})

	t0 := time.Unix(1000, 0)
	if s.Tick(t0) {
		t.Fatalf("tick ran before Start")
	}
	s.Start()
	s.Tick(t0)
	s.Tick(t0.Add(16 * time.Millisecond))
	s.Tick(t0.Add(5 * time.Second))

	want := []time.Duration{20 * time.Millisecond, 16 * time.Millisecond, 100 * time.Millisecond}
	if len(got) != len(want) {
		t.Fatalf("frames %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d dt %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScheduler_SettledStops(t *testing.T) {
	n := 0
	s := NewScheduler(func(time.Duration) FrameState {
		n++
		if n == 3 {
			return Settled
		}
		return Animating
	})
	s.Start()
	now := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		s.Tick(now)
		now = now.Add(16 * time.Millisecond)
	}
	if n != 3 {
		t.Errorf("ran %d frames, want 3", n)
	}
	if s.Running() {
		t.Errorf("still running after settle")
	}
}

func TestScheduler_StartIdempotent(t *testing.T) {
	var got []time.Duration
	s := NewScheduler(func(dt time.Duration) FrameState {
		got = append(got, dt)
		return Animating
	})
	t0 := time.Unix(0, 0)
	s.Start()
	s.Tick(t0)
	s.Start() // must not reset the frame clock
	s.Tick(t0.Add(10 * time.Millisecond))
	if got[1] != 10*time.Millisecond {
		t.Errorf("dt after second Start = %v, want 10ms", got[1])
	}
}

func TestScheduler_StopDuringFrame(t *testing.T) {
	var s *Scheduler
	n := 0
	s = NewScheduler(func(time.Duration) FrameState {
		n++
		s.Stop()
		return Animating
	})
	s.Start()
	s.Tick(time.Unix(0, 0))
	s.Tick(time.Unix(1, 0))
	if n != 1 {
		t.Errorf("ran %d frames after Stop, want 1", n)
	}
}

func TestFrameState_String(t *testing.T) {
	if Animating.String() != "animating" || Settled.String() != "settled" {
		t.Errorf("unexpected names %q %q", Animating, Settled)
	}
}
