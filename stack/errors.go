package stack

import (
	"errors"
	"fmt"
)

// Sentinel errors for the transaction lifecycle (spec.md §7).
var (
	// ErrAlreadyStarted is returned by ClientTransaction.Start when called
	// a second time on the same transaction.
	ErrAlreadyStarted = errors.New("stack: transaction already started")

	// ErrEncodeFailed indicates the request could not be stamped/encoded
	// before the first send.
	ErrEncodeFailed = errors.New("stack: request encoding failed")
)

// SendError wraps a first-send transport failure with the context needed
// to diagnose it: which transaction, to which destination. Subsequent
// retransmit failures are logged, not returned, per spec.md §7 ("Internal
// retransmit failures never fail the transaction").
type SendError struct {
	TransactionID string
	Destination   string
	Err           error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("stack: send to %s for transaction %s: %v", e.Destination, e.TransactionID, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
