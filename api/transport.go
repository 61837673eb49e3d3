// File: api/transport.go
// Author: momentics <momentics@gmail.com>
//
// Descriptor exposure and datagram socket contracts used to decouple
// event-loop integration from the concrete UDP-Lite socket.

package api

import "net/netip"

// Descriptor exposes an OS-level socket descriptor for readiness polling.
// The owner keeps the descriptor; callers must never close it.
type Descriptor interface {
	RawFD() uintptr
}

// DatagramConn is the subset of a datagram socket a polling service needs.
type DatagramConn interface {
	Descriptor

	// RecvFrom reads one datagram into p and reports its sender.
	RecvFrom(p []byte) (n int, from netip.AddrPort, err error)

	// SendTo transmits p as one datagram to addr.
	SendTo(p []byte, addr netip.AddrPort) (n int, err error)

	// LocalAddr returns the bound local address.
	LocalAddr() (netip.AddrPort, error)

	Close() error
}
