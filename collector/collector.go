// Package collector defines the capability an application supplies to
// receive the terminal outcome of a client transaction: a matched
// response, or a timeout verdict. It is deliberately a two-method
// capability rather than a callback-holding base class (spec.md §9,
// "Polymorphic collector... avoid inheritance hierarchies").
package collector

import (
	"time"

	"github.com/sonbt56/ice4j/message"
	"github.com/sonbt56/ice4j/netaccess"
)

// Event is delivered to Collector.OnResponse: the decoded response plus
// the address it arrived from and when the client transaction observed
// it, enough context for an ICE agent to attribute the response to a
// candidate pair without this engine knowing anything about pairs.
type Event struct {
	Response *message.Response
	From     netaccess.Address
	At       time.Time
}

// Collector is the capability a submitter passes to Registry.Submit.
// OnTimeout is invoked on the transaction's worker goroutine; OnResponse
// is invoked synchronously on the goroutine that calls Registry.Deliver.
// Implementations must not block indefinitely (spec.md §6).
type Collector interface {
	// OnResponse is called when a response matching the transaction's id
	// is delivered. At most once per transaction, unless the transaction
	// was configured with KeepAfterResponse.
	OnResponse(evt Event)

	// OnTimeout is called when the transaction's retransmission schedule
	// and final grace period elapse with no matching response. Mutually
	// exclusive with OnResponse in default mode.
	OnTimeout()
}

// Funcs adapts two plain functions into a Collector, for callers that
// don't want to declare a named type.
type Funcs struct {
	Response func(Event)
	Timeout  func()
}

// OnResponse implements Collector.
func (f Funcs) OnResponse(evt Event) {
	if f.Response != nil {
		f.Response(evt)
	}
}

// OnTimeout implements Collector.
func (f Funcs) OnTimeout() {
	if f.Timeout != nil {
		f.Timeout()
	}
}
