// Package message wraps the wire-level STUN request/response the engine
// hands to the access layer and receives back from it. The byte-level
// codec itself is out of scope for this engine (spec.md §1): this package
// only stamps and reads the transaction id and exposes the encoded bytes,
// delegating actual attribute encoding to github.com/pion/stun.
package message

import (
	"errors"
	"fmt"

	"github.com/pion/stun"

	"github.com/sonbt56/ice4j/limits"
	"github.com/sonbt56/ice4j/txid"
)

// ErrNotYetEncoded is returned by Raw when the request has not yet been
// stamped (Stamp is what encodes it).
var ErrNotYetEncoded = errors.New("message: request has not been encoded")

// Request is the opaque STUN request the client transaction owns: message
// class request, a method, a set of attributes, and a mutable transaction
// id slot the engine stamps before the first send. After stamping the
// engine treats it as immutable.
type Request struct {
	msg *stun.Message
}

// NewRequest builds a STUN request of the given method with the supplied
// attribute setters, deferring transaction id assignment to Stamp.
func NewRequest(method stun.Method, setters ...stun.Setter) (*Request, error) {
	all := append([]stun.Setter{stun.NewType(method, stun.ClassRequest)}, setters...)
	m, err := stun.Build(all...)
	if err != nil {
		return nil, err
	}
	// Build already encodes the header; drop those bytes so Raw reports
	// ErrNotYetEncoded until Stamp re-encodes with the real id.
	m.Raw = m.Raw[:0]
	return &Request{msg: m}, nil
}

// Stamp assigns id as the request's transaction id and re-encodes the
// message so Raw reflects it. This is the one point spec.md's invariant 1
// ("the identifier is stamped on the request before the first
// transmission and never changes") is enforced.
func (r *Request) Stamp(id txid.ID) error {
	r.msg.TransactionID = id
	r.msg.Encode()
	return nil
}

// TransactionID returns the id currently stamped on the request.
func (r *Request) TransactionID() txid.ID {
	return r.msg.TransactionID
}

// Raw returns the encoded wire bytes ready to hand to an access layer's
// Send. Returns ErrNotYetEncoded if Stamp has never been called.
func (r *Request) Raw() ([]byte, error) {
	if len(r.msg.Raw) == 0 {
		return nil, ErrNotYetEncoded
	}
	return r.msg.Raw, nil
}

// Response is a decoded inbound STUN message the registry dispatches to a
// matching client transaction. Decoding the raw datagram into a Response
// is the codec's job (out of scope here); the registry only needs the
// transaction id to demultiplex and the message itself to hand to the
// collector.
type Response struct {
	Msg *stun.Message
}

// TransactionID returns the id carried in the response's STUN header.
func (r *Response) TransactionID() txid.ID {
	return r.Msg.TransactionID
}

// DecodeResponse parses raw datagram bytes into a Response.
func DecodeResponse(raw []byte) (*Response, error) {
	if err := limits.ValidateWireMessageSize(raw); err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}

	m := new(stun.Message)
	m.Raw = append([]byte(nil), raw...)
	if err := m.Decode(); err != nil {
		return nil, err
	}
	return &Response{Msg: m}, nil
}
