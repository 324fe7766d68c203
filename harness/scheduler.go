package harness

import (
	"context"
	"fmt"
	"time"

	"cloudscape/core"
)

// Scheduler drives one redraw per display refresh. Parameter changes
// queued by other goroutines are applied between frames, in arrival order.
type Scheduler struct {
	harness *Harness
	surface Surface
	params  <-chan core.Param

	// Now is the frame clock; tests replace it
	Now func() time.Time

	frames     int
	lastReport time.Time
}

// NewScheduler creates a scheduler. params may be nil.
func NewScheduler(h *Harness, s Surface, params <-chan core.Param) *Scheduler {
	return &Scheduler{
		harness: h,
		surface: s,
		params:  params,
		Now:     time.Now,
	}
}

// Run starts the clock and renders until the surface is closed or ctx is
// done. It returns immediately if the harness is not ready.
func (s *Scheduler) Run(ctx context.Context) {
	if s.harness.State() != core.StateReady {
		return
	}

	s.harness.StartClock(s.Now())
	for !s.surface.ShouldClose() {
		if ctx.Err() != nil {
			return
		}
		s.Tick()
	}
}

// Tick renders a single frame
func (s *Scheduler) Tick() {
	s.surface.PollEvents()
	s.drain()
	now := s.Now()
	s.harness.OnFrame(now)
	s.surface.SwapBuffers()
	s.countFrame(now)
}

// countFrame logs the frame rate about once a second
func (s *Scheduler) countFrame(now time.Time) {
	if s.lastReport.IsZero() {
		s.lastReport = now
	}
	s.frames++
	if elapsed := now.Sub(s.lastReport); elapsed >= time.Second {
		fps := float64(s.frames) / elapsed.Seconds()
		s.harness.logger.Debug("frame rate", "fps", fmt.Sprintf("%.1f", fps), "time", fmt.Sprintf("%.1fs", s.harness.Elapsed(now)))
		s.frames = 0
		s.lastReport = now
	}
}

// drain applies every queued parameter without blocking
func (s *Scheduler) drain() {
	if s.params == nil {
		return
	}
	for {
		select {
		case p, ok := <-s.params:
			if !ok {
				s.params = nil
				return
			}
			s.harness.OnParameter(p)
		default:
			return
		}
	}
}
