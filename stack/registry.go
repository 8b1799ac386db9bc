package stack

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sonbt56/ice4j/collector"
	"github.com/sonbt56/ice4j/config"
	"github.com/sonbt56/ice4j/message"
	"github.com/sonbt56/ice4j/netaccess"
	"github.com/sonbt56/ice4j/txid"
)

// Registry is the process-wide demultiplexer from transaction id to live
// ClientTransaction (spec.md §4.4). It mirrors the callback router's
// register/unregister/dispatch shape, keyed by a 12-byte transaction id
// instead of a connection handle.
type Registry struct {
	access netaccess.AccessLayer
	clock  Clock

	mu    sync.RWMutex
	table map[txid.ID]*ClientTransaction
}

// NewRegistry builds a Registry that sends through access and times
// transactions with clock. Pass RealClock outside of tests.
func NewRegistry(access netaccess.AccessLayer, clock Clock) *Registry {
	if clock == nil {
		clock = RealClock
	}
	return &Registry{
		access: access,
		clock:  clock,
		table:  make(map[txid.ID]*ClientTransaction),
	}
}

// Submit allocates a transaction id, builds a ClientTransaction for req,
// and starts it. On a first-send failure the transaction is never
// registered and Submit returns that error; the caller owns req in that
// case and may retry with a fresh Submit call.
func (r *Registry) Submit(
	req *message.Request,
	dest netaccess.Address,
	ap netaccess.PointDescriptor,
	coll collector.Collector,
	cfg config.Config,
) (*ClientTransaction, error) {
	id, err := txid.New()
	if err != nil {
		return nil, err
	}

	tx := newClientTransaction(id, req, dest, ap, r.access, coll, cfg, r.clock, r)
	if err := tx.Start(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Deliver routes a decoded response to the transaction whose id it
// carries. It returns false if no live transaction matches, which is not
// an error: a late response for an already-completed or unknown
// transaction is simply logged and dropped (spec.md §8 scenario 4).
func (r *Registry) Deliver(resp *message.Response, from netaccess.Address) bool {
	id := resp.TransactionID()

	r.mu.RLock()
	tx, ok := r.table[id]
	r.mu.RUnlock()

	if !ok {
		logrus.WithFields(logrus.Fields{
			"component":      "registry",
			"transaction_id": txid.String(id),
			"from":           from.String(),
		}).Debug("response matched no live transaction, dropping")
		return false
	}

	return tx.DeliverResponse(resp, from)
}

// CancelAll cancels every transaction currently registered, e.g. on
// shutdown. It snapshots the table before cancelling so Cancel's own
// unregister calls don't mutate the map out from under the iteration.
func (r *Registry) CancelAll() {
	r.mu.RLock()
	snapshot := make([]*ClientTransaction, 0, len(r.table))
	for _, tx := range r.table {
		snapshot = append(snapshot, tx)
	}
	r.mu.RUnlock()

	for _, tx := range snapshot {
		tx.Cancel()
	}
}

// Len reports how many transactions are currently registered, mainly
// useful for tests asserting invariant 6 (spec.md §3: terminal
// transactions leave no residue).
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}

// register implements registrar. Called by ClientTransaction.Start once
// its first send has succeeded.
func (r *Registry) register(id txid.ID, tx *ClientTransaction) {
	r.mu.Lock()
	r.table[id] = tx
	r.mu.Unlock()
}

// unregister implements registrar. Called on every Armed -> terminal
// transition (response, timeout, or cancel).
func (r *Registry) unregister(id txid.ID) {
	r.mu.Lock()
	delete(r.table, id)
	r.mu.Unlock()
}
