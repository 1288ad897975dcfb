package gview

import "time"

const (
	// dt reported for the first frame after Start
	firstFrameDelta = 20 * time.Millisecond
	// larger gaps (backgrounded window, breakpoints) are clamped
	maxFrameDelta = 100 * time.Millisecond
)

type FrameState int

const (
	Settled FrameState = iota
	Animating
)

func (s FrameState) String() string {
	if s == Animating {
		return "animating"
	}
	return "settled"
}

type FrameFunc func(dt time.Duration) FrameState

// Scheduler runs FrameFunc once per display frame until it settles.
// The host frame loop drives it through Tick.
type Scheduler struct {
	frame   FrameFunc
	running bool
	last    time.Time
	hasLast bool
}

func NewScheduler(frame FrameFunc) *Scheduler {
	return &Scheduler{frame: frame}
}

// Start is a no-op while already running
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.hasLast = false
}

// Stop takes effect before the next frame, a frame in progress completes
func (s *Scheduler) Stop() {
	s.running = false
}

func (s *Scheduler) Running() bool {
	return s.running
}

// Tick runs one frame if the scheduler is running and reports whether it did
func (s *Scheduler) Tick(now time.Time) bool {
	if !s.running {
		return false
	}
	dt := firstFrameDelta
	if s.hasLast {
		dt = now.Sub(s.last)
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}
		if dt < 0 {
			dt = 0
		}
	}
	s.last = now
	s.hasLast = true

	state := s.frame(dt)
	if !s.running || state == Settled {
		s.running = false
	}
	return true
}
