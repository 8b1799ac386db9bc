// Package netaccess models the boundary between the client-transaction
// engine and the socket layer: transport addresses, the access-point
// descriptor that names a local sending endpoint, and the AccessLayer
// capability a client transaction calls to actually put a datagram on the
// wire (spec.md §6, "access-layer contract").
package netaccess

import (
	"fmt"
	"net"
	"sync"

	"github.com/pion/logging"
	"github.com/pion/transport/v2"

	"github.com/sonbt56/ice4j/limits"
)

// PointDescriptor is an opaque handle identifying which local
// socket/endpoint a transaction was sent from. Its lifetime exceeds any
// single transaction; the AccessLayer uses it to pick the right socket
// when a retransmission goes out.
type PointDescriptor struct {
	name string
}

// NewPointDescriptor names an access point. Two descriptors with the same
// name are considered the same access point by a UDPAccessLayer.
func NewPointDescriptor(name string) PointDescriptor {
	return PointDescriptor{name: name}
}

func (p PointDescriptor) String() string { return p.name }

// AccessLayer is the capability a ClientTransaction requires to send a
// datagram: synchronous, safe to call from the transaction's worker
// goroutine, and reporting only transport-level failure (spec.md §6).
type AccessLayer interface {
	Send(payload []byte, ap PointDescriptor, dest Address) error
}

// UDPAccessLayer is a concrete AccessLayer backed by one or more UDP
// sockets, keyed by access-point descriptor. It uses pion/transport's Net
// abstraction rather than calling net.ListenUDP directly so it can be
// pointed at a virtual network in tests exactly as pion/ice does for its
// own UDP mux, and accepts a pion/logging.LeveledLogger so it slots into
// an existing ICE agent's logger factory without an adapter.
type UDPAccessLayer struct {
	net transport.Net
	log logging.LeveledLogger

	mu    sync.RWMutex
	socks map[string]net.PacketConn
}

// NewUDPAccessLayer builds an access layer over the given network
// abstraction and logger. Pass nil for logger to fall back to a logger
// from pion/logging's default factory (Error level unless its PION_LOG_*
// environment variables say otherwise).
func NewUDPAccessLayer(n transport.Net, log logging.LeveledLogger) *UDPAccessLayer {
	if log == nil {
		log = logging.NewDefaultLoggerFactory().NewLogger("netaccess")
	}
	return &UDPAccessLayer{
		net:   n,
		log:   log,
		socks: make(map[string]net.PacketConn),
	}
}

// Bind opens (or reuses) the local UDP socket for ap at localAddr and
// registers it under ap's name. It must be called once before the access
// point is used to Send.
func (a *UDPAccessLayer) Bind(ap PointDescriptor, localAddr string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.socks[ap.String()]; exists {
		return nil
	}

	conn, err := a.net.ListenPacket("udp", localAddr)
	if err != nil {
		return fmt.Errorf("netaccess: bind %s: %w", ap, err)
	}
	a.socks[ap.String()] = conn
	a.log.Infof("bound access point %s on %s", ap, conn.LocalAddr())
	return nil
}

// Send transmits payload from ap's bound socket to dest. It is
// synchronous and safe to call from a client transaction's retransmission
// worker (spec.md §5, "no blocking I/O on the worker beyond the scheduled
// sleep").
func (a *UDPAccessLayer) Send(payload []byte, ap PointDescriptor, dest Address) error {
	if err := limits.ValidateDatagramSize(payload); err != nil {
		return fmt.Errorf("netaccess: %w", err)
	}

	a.mu.RLock()
	conn, ok := a.socks[ap.String()]
	a.mu.RUnlock()
	if !ok {
		return fmt.Errorf("netaccess: unknown access point %s", ap)
	}

	udpDest, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", dest.Host, dest.Port))
	if err != nil {
		return fmt.Errorf("netaccess: resolve %s: %w", dest, err)
	}

	n, err := conn.WriteTo(payload, udpDest)
	if err != nil {
		return fmt.Errorf("netaccess: send to %s: %w", dest, err)
	}
	if n != len(payload) {
		return fmt.Errorf("netaccess: short write to %s: wrote %d of %d bytes", dest, n, len(payload))
	}
	return nil
}

// Close shuts down every socket the access layer has bound.
func (a *UDPAccessLayer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var firstErr error
	for name, conn := range a.socks {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(a.socks, name)
	}
	return firstErr
}
