package stack

import "time"

// Clock abstracts time so retransmission-schedule tests can run against a
// fake clock instead of real wall time, mirroring the parent codebase's
// TimeProvider pattern (net.TimeProvider, file.TimeProvider).
type Clock interface {
	Now() time.Time
	// NewTimer creates a timer that fires after d, usable as the
	// cancellable-sleep suspension point spec.md §5 requires.
	NewTimer(d time.Duration) Timer
}

// Timer is the minimal subset of time.Timer the schedule loop needs,
// abstracted so a fake clock can deliver its channel on demand instead of
// waiting for real time to pass.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// realClock implements Clock using the standard library.
type realClock struct{}

// RealClock is the default Clock, backed by time.Now/time.NewTimer.
var RealClock Clock = realClock{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) Timer {
	return &realTimer{t: time.NewTimer(d)}
}

type realTimer struct{ t *time.Timer }

func (r *realTimer) C() <-chan time.Time { return r.t.C }
func (r *realTimer) Stop() bool          { return r.t.Stop() }
