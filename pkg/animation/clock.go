package animation

import "time"

// Clock provides time to a Scheduler. Tests and replays inject a fake clock
// to drive blink cycles deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall-clock time.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }
