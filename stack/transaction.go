// Package stack implements the STUN client-transaction engine: the
// retransmission state machine (spec.md §4.3) and the registry that
// demultiplexes inbound responses to in-flight transactions by
// transaction id (spec.md §4.4). This mirrors the layout of the original
// implementation's org.ice4j.stack package.
package stack

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sonbt56/ice4j/collector"
	"github.com/sonbt56/ice4j/config"
	"github.com/sonbt56/ice4j/message"
	"github.com/sonbt56/ice4j/netaccess"
	"github.com/sonbt56/ice4j/txid"
)

// Status is a client transaction's lifecycle state (spec.md §3).
type Status int32

const (
	// StatusInit is the zero value: constructed but not yet started.
	// newClientTransaction never leaves a transaction visible in this state
	// (Start runs before Submit returns tx), but naming the zero value
	// explicitly means a stray Status() call before Start can never be
	// misread as "armed".
	StatusInit Status = iota
	// StatusArmed means the transaction is live: registered, retransmitting
	// or waiting out its final grace period.
	StatusArmed
	// StatusCancelled means Cancel() won the race; no further sends, no
	// collector callback.
	StatusCancelled
	// StatusCompleted means a terminal outcome (response or timeout) has
	// been delivered to the collector.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusArmed:
		return "armed"
	case StatusCancelled:
		return "cancelled"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// registrar is the narrow slice of Registry a ClientTransaction needs: a
// place to add itself once its first send succeeds, and to remove itself
// on every terminal transition. Keeping this as an interface (rather than
// a *Registry field) keeps the transaction testable without a registry.
type registrar interface {
	register(id txid.ID, tx *ClientTransaction)
	unregister(id txid.ID)
}

// ClientTransaction owns one outbound STUN request: it executes the
// retransmission schedule, reacts to an inbound response or an external
// cancel, and guarantees the collector sees exactly one terminal callback
// (spec.md §3 invariant 2), except in KeepAfterResponse mode.
type ClientTransaction struct {
	id          txid.ID
	request     *message.Request
	destination netaccess.Address
	accessPoint netaccess.PointDescriptor
	access      netaccess.AccessLayer
	collector   collector.Collector
	cfg         config.Config
	clock       Clock
	reg         registrar

	mu                    sync.Mutex
	status                Status
	started               bool
	retransmissionCounter int

	doneOnce sync.Once
	done     chan struct{}
}

// newClientTransaction assembles a transaction. Unexported: only Registry
// constructs transactions, so the registrar back-reference is always
// valid and invariant 3 (registered iff Armed) stays enforceable in one
// place.
func newClientTransaction(
	id txid.ID,
	req *message.Request,
	dest netaccess.Address,
	ap netaccess.PointDescriptor,
	access netaccess.AccessLayer,
	coll collector.Collector,
	cfg config.Config,
	clock Clock,
	reg registrar,
) *ClientTransaction {
	return &ClientTransaction{
		id:          id,
		request:     req,
		destination: dest,
		accessPoint: ap,
		access:      access,
		collector:   coll,
		cfg:         cfg,
		clock:       clock,
		reg:         reg,
		done:        make(chan struct{}),
	}
}

// ID returns the transaction's identifier.
func (t *ClientTransaction) ID() txid.ID { return t.id }

// Request returns the request this transaction is retransmitting.
func (t *ClientTransaction) Request() *message.Request { return t.request }

// Status reports the transaction's current lifecycle state.
func (t *ClientTransaction) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Start sends attempt 0 synchronously on the caller's goroutine. If that
// send fails, Start returns the error and the transaction is never
// registered or armed (spec.md §4.3). On success it registers itself,
// becomes Armed, and schedules the remaining attempts on an internal
// worker so Start returns promptly.
func (t *ClientTransaction) Start() error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return ErrAlreadyStarted
	}
	t.started = true
	t.mu.Unlock()

	if err := t.request.Stamp(t.id); err != nil {
		return ErrEncodeFailed
	}

	payload, err := t.request.Raw()
	if err != nil {
		return ErrEncodeFailed
	}

	if err := t.access.Send(payload, t.accessPoint, t.destination); err != nil {
		return &SendError{TransactionID: txid.String(t.id), Destination: t.destination.String(), Err: err}
	}

	t.mu.Lock()
	t.status = StatusArmed
	t.mu.Unlock()

	t.reg.register(t.id, t)

	logrus.WithFields(logrus.Fields{
		"component":      "client-transaction",
		"transaction_id": txid.String(t.id),
		"destination":    t.destination.String(),
	}).Info("client transaction started")

	go t.run()
	return nil
}

// Cancel atomically transitions Armed -> Cancelled: no further sends, no
// collector callback, and the transaction is unregistered. Safe to call
// from any goroutine, any number of times; calls after the first are
// no-ops (spec.md §4.3).
func (t *ClientTransaction) Cancel() {
	t.mu.Lock()
	if t.status != StatusArmed {
		t.mu.Unlock()
		return
	}
	t.status = StatusCancelled
	t.mu.Unlock()

	t.wake()
	t.reg.unregister(t.id)

	logrus.WithFields(logrus.Fields{
		"component":      "client-transaction",
		"transaction_id": txid.String(t.id),
	}).Debug("client transaction cancelled")
}

// DeliverResponse is invoked by the registry when an inbound message's
// transaction id matches this transaction. In default mode it atomically
// transitions Armed -> Completed, unregisters, and invokes
// collector.OnResponse exactly once, returning true. If the transaction
// was already non-Armed it is a no-op and returns false.
//
// In KeepAfterResponse mode the transaction stays Armed and registered so
// it keeps matching later responses and still times out on schedule
// (spec.md §4.3, §8 scenario 6); each matching response still invokes
// OnResponse.
func (t *ClientTransaction) DeliverResponse(resp *message.Response, from netaccess.Address) bool {
	evt := collector.Event{Response: resp, From: from, At: t.clock.Now()}

	if t.cfg.KeepAfterResponse {
		t.mu.Lock()
		armed := t.status == StatusArmed
		t.mu.Unlock()
		if !armed {
			return false
		}
		t.collector.OnResponse(evt)
		return true
	}

	t.mu.Lock()
	if t.status != StatusArmed {
		t.mu.Unlock()
		return false
	}
	t.status = StatusCompleted
	t.mu.Unlock()

	t.wake()
	t.reg.unregister(t.id)

	logrus.WithFields(logrus.Fields{
		"component":      "client-transaction",
		"transaction_id": txid.String(t.id),
	}).Info("client transaction completed by response")

	t.collector.OnResponse(evt)
	return true
}

// wake interrupts the worker's current sleep, if any. Idempotent: only
// the first call closes the channel.
func (t *ClientTransaction) wake() {
	t.doneOnce.Do(func() { close(t.done) })
}

// sleep waits for d or until wake() is called, whichever comes first.
// This is the sole suspension point in the engine (spec.md §5).
func (t *ClientTransaction) sleep(d time.Duration) {
	timer := t.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C():
	case <-t.done:
	}
}

// run drives the retransmission schedule on a dedicated goroutine so
// Start returns promptly (spec.md §4.3, "the loop must be driven on a
// worker distinct from the caller of start()").
func (t *ClientTransaction) run() {
	waits, grace := t.cfg.Timing.Schedule()

	for _, wait := range waits {
		t.sleep(wait)

		if t.Status() != StatusArmed {
			return
		}

		if err := t.retransmit(); err != nil {
			logrus.WithFields(logrus.Fields{
				"component":      "client-transaction",
				"transaction_id": txid.String(t.id),
				"destination":    t.destination.String(),
			}).WithError(err).Warn("retransmission failed, schedule continues")
		}
	}

	t.sleep(grace)

	t.mu.Lock()
	if t.status != StatusArmed {
		t.mu.Unlock()
		return
	}
	t.status = StatusCompleted
	t.mu.Unlock()

	t.reg.unregister(t.id)

	logrus.WithFields(logrus.Fields{
		"component":      "client-transaction",
		"transaction_id": txid.String(t.id),
	}).Info("client transaction timed out")

	t.collector.OnTimeout()
}

// retransmit re-sends the stamped request. Only the worker goroutine
// calls this, so retransmissionCounter needs no lock (spec.md §5). It
// re-checks status under the lock immediately before sending, mirroring
// the original's "if (cancelled) return" guard at send time: the
// post-sleep check in run() can be stale by the time this is called, and
// a transaction cancelled or completed in that window must never put a
// datagram on the wire (invariant 6, P5).
func (t *ClientTransaction) retransmit() error {
	t.mu.Lock()
	armed := t.status == StatusArmed
	t.mu.Unlock()
	if !armed {
		return nil
	}

	payload, err := t.request.Raw()
	if err != nil {
		return err
	}
	t.retransmissionCounter++
	return t.access.Send(payload, t.accessPoint, t.destination)
}
