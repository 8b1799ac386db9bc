// Package ice4j implements a STUN client-transaction engine: the
// retransmission state machine and transaction registry an ICE agent
// uses to send a STUN request and collect exactly one terminal outcome,
// a matched response or a timeout.
//
// # Getting Started
//
// Build a registry over an access layer, then submit a request:
//
//	access := netaccess.NewUDPAccessLayer(n, nil)
//	ap := netaccess.NewPointDescriptor("local0")
//	access.Bind(ap, "0.0.0.0:0")
//
//	registry := stack.NewRegistry(access, stack.RealClock)
//
//	req, _ := message.NewRequest(stun.MethodBinding)
//	tx, err := registry.Submit(req, dest, ap, collector.Funcs{
//	    Response: func(evt collector.Event) { /* matched */ },
//	    Timeout:  func() { /* no response within the schedule */ },
//	}, config.Default())
//
// Inbound datagrams are decoded with message.DecodeResponse and handed to
// registry.Deliver, which routes them to the matching transaction by
// transaction id.
//
// # Packages
//
//   - txid: the 96-bit transaction identifier.
//   - timing: the retransmission-schedule policy (attempt count, base
//     interval, interval cap).
//   - message: the STUN request/response wrapper around pion/stun.
//   - netaccess: the access-layer boundary to the socket layer.
//   - collector: the capability that receives a transaction's terminal
//     outcome.
//   - config: process-wide configuration, sampled once per transaction.
//   - limits: STUN message size bounds shared by message and netaccess.
//   - stack: the client transaction and registry.
//
// See cmd/stun-probe for a runnable example that wires every package
// together against a live STUN server.
package ice4j
