// Package timing implements the retransmission schedule derived from a
// transaction's timing configuration: how long to wait before each
// retransmit, when to stop doubling, and how long the final grace period
// lasts before a transaction is declared timed out.
package timing

import (
	"fmt"
	"time"
)

// Default values for the timing policy, matching org.ice4j.stack's
// StunClientTransaction defaults (100ms/1600ms/6 retransmissions).
const (
	DefaultMaxRetransmissions = 6
	DefaultOriginalWait       = 100 * time.Millisecond
	DefaultMaxWait            = 1600 * time.Millisecond
)

// Policy is an immutable description of a client transaction's
// retransmission schedule. It is a pure value: constructing one performs
// no I/O and starts no timers.
type Policy struct {
	// MaxRetransmissions is N, the number of send attempts after the
	// first (so N+1 total sends: attempt 0 plus N retransmits).
	MaxRetransmissions int
	// OriginalWait is T0, the wait before the first retransmit.
	OriginalWait time.Duration
	// MaxWait is Tmax, the cap that OriginalWait doubles toward.
	MaxWait time.Duration
}

// Default returns the policy realized by the reference implementation:
// N=6, T0=100ms, Tmax=1600ms.
func Default() Policy {
	return Policy{
		MaxRetransmissions: DefaultMaxRetransmissions,
		OriginalWait:       DefaultOriginalWait,
		MaxWait:            DefaultMaxWait,
	}
}

// Validate checks the invariants from spec.md §4.2: N >= 1 and
// 1 <= T0 <= Tmax.
func (p Policy) Validate() error {
	if p.MaxRetransmissions < 1 {
		return fmt.Errorf("timing: max retransmissions must be >= 1, got %d", p.MaxRetransmissions)
	}
	if p.OriginalWait < time.Millisecond {
		return fmt.Errorf("timing: original wait must be >= 1ms, got %s", p.OriginalWait)
	}
	if p.MaxWait < p.OriginalWait {
		return fmt.Errorf("timing: max wait %s must be >= original wait %s", p.MaxWait, p.OriginalWait)
	}
	return nil
}

// Schedule returns the wait-before-attempt-i values for i in
// [0, MaxRetransmissions), followed by the final grace wait observed after
// the last retransmit before the transaction is declared timed out. With
// the defaults this yields waits of {100, 200, 400, 800, 1600, 1600} plus a
// final grace of 1600, which the ClientTransaction accumulates into the
// send offsets {0, 100, 300, 700, 1500, 3100, 4700} and a timeout at 6300ms
// documented in spec.md §4.2/§8.
func (p Policy) Schedule() (waits []time.Duration, finalGrace time.Duration) {
	waits = make([]time.Duration, p.MaxRetransmissions)
	next := p.OriginalWait
	for i := range waits {
		waits[i] = next
		next = p.double(next)
	}
	finalGrace = p.double(next)
	return waits, finalGrace
}

// double doubles d, capping it at MaxWait, matching the reference
// implementation's "if(nextWaitInterval < maxWaitInterval) nextWaitInterval
// *= 2" rule (once at the cap, it stays constant rather than overshooting).
func (p Policy) double(d time.Duration) time.Duration {
	if d < p.MaxWait {
		doubled := d * 2
		if doubled > p.MaxWait {
			return p.MaxWait
		}
		return doubled
	}
	return d
}

// TotalTimeout returns the elapsed time from transaction start until the
// transaction would be declared timed out, assuming no response arrives.
func (p Policy) TotalTimeout() time.Duration {
	waits, grace := p.Schedule()
	var total time.Duration
	for _, w := range waits {
		total += w
	}
	return total + grace
}
