// Package animation provides the timing primitives widgets use for recurring
// visual work such as caret blinking.
//
// A [Scheduler] belongs to one scene. The scene calls [Scheduler.Step] once
// per frame; every active [Interval] whose period has elapsed fires on that
// call, on the scene's event loop. Nothing runs on other goroutines.
//
//	blink := scheduler.Every(500*time.Millisecond, func() {
//	    caret.SetVisible(!caret.Visible())
//	})
//	...
//	blink.Stop()
package animation

import (
	"time"

	"github.com/go-drift/caret/pkg/errors"
)

// Interval is a recurring callback registered with a Scheduler.
type Interval struct {
	scheduler *Scheduler
	period    time.Duration
	callback  func()
	next      time.Time
	active    bool
}

// Stop cancels the interval. After Stop returns the callback never runs
// again, including later in the Step that is currently executing.
func (i *Interval) Stop() {
	if i == nil || !i.active {
		return
	}
	i.active = false
	i.scheduler.remove(i)
}

// IsActive reports whether the interval is still scheduled.
func (i *Interval) IsActive() bool {
	return i != nil && i.active
}

// Period returns the interval period.
func (i *Interval) Period() time.Duration {
	return i.period
}

// Scheduler runs Intervals from a frame loop.
// It is not safe for concurrent use; all calls belong on the scene loop.
type Scheduler struct {
	clock     Clock
	intervals []*Interval
}

// NewScheduler creates a scheduler reading time from clock.
// A nil clock uses SystemClock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Every schedules callback to run once per period, starting one period from
// now. Non-positive periods are clamped to one millisecond.
func (s *Scheduler) Every(period time.Duration, callback func()) *Interval {
	if period <= 0 {
		period = time.Millisecond
	}
	i := &Interval{
		scheduler: s,
		period:    period,
		callback:  callback,
		next:      s.clock.Now().Add(period),
		active:    true,
	}
	s.intervals = append(s.intervals, i)
	errors.Logger().Debug("interval scheduled", "period", period, "active", len(s.intervals))
	return i
}

// Step fires every interval whose deadline has passed. An interval that is
// several periods behind fires once per missed period.
func (s *Scheduler) Step() {
	if len(s.intervals) == 0 {
		return
	}
	now := s.clock.Now()
	pending := make([]*Interval, len(s.intervals))
	copy(pending, s.intervals)

	for _, i := range pending {
		for i.active && !now.Before(i.next) {
			i.next = i.next.Add(i.period)
			if i.callback != nil {
				i.callback()
			}
		}
	}
}

// Active returns the number of scheduled intervals.
func (s *Scheduler) Active() int {
	return len(s.intervals)
}

// StopAll cancels every interval.
func (s *Scheduler) StopAll() {
	for _, i := range s.intervals {
		i.active = false
	}
	s.intervals = nil
}

func (s *Scheduler) remove(target *Interval) {
	for idx, i := range s.intervals {
		if i == target {
			s.intervals = append(s.intervals[:idx], s.intervals[idx+1:]...)
			return
		}
	}
}
