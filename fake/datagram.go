// File: fake/datagram.go
// Author: momentics <momentics@gmail.com>
//
// In-memory api.DatagramConn with scripted would-block behavior.

package fake

import (
	"net/netip"
	"sync"
	"syscall"

	"github.com/momentics/hioload-udplite/api"
)

// Datagram is one payload with its peer address.
type Datagram struct {
	Payload []byte
	Addr    netip.AddrPort
}

// DatagramConn is a fake api.DatagramConn. Inbound datagrams are queued with
// Deliver; sent datagrams are recorded in Sent. RecvFrom on an empty inbound
// queue and SendTo while SendBlocked is set fail with EAGAIN, like a
// nonblocking socket.
type DatagramConn struct {
	mu          sync.Mutex
	fd          uintptr
	local       netip.AddrPort
	inbound     []Datagram
	sent        []Datagram
	sendBlocked bool
	sendErr     error
	closed      bool
}

// NewDatagramConn creates a fake socket reporting fd and local.
func NewDatagramConn(fd uintptr, local netip.AddrPort) *DatagramConn {
	return &DatagramConn{fd: fd, local: local}
}

// Deliver queues an inbound datagram.
func (c *DatagramConn) Deliver(payload []byte, from netip.AddrPort) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inbound = append(c.inbound, Datagram{Payload: append([]byte(nil), payload...), Addr: from})
}

// SetSendBlocked makes SendTo fail with EAGAIN while blocked is true.
func (c *DatagramConn) SetSendBlocked(blocked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendBlocked = blocked
}

// SetSendError makes SendTo fail with err; nil restores normal behavior.
func (c *DatagramConn) SetSendError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendErr = err
}

// Sent returns copies of the datagrams sent so far.
func (c *DatagramConn) Sent() []Datagram {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Datagram(nil), c.sent...)
}

// RawFD implements api.Descriptor.
func (c *DatagramConn) RawFD() uintptr { return c.fd }

// RecvFrom implements api.DatagramConn.
func (c *DatagramConn) RecvFrom(p []byte) (int, netip.AddrPort, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, netip.AddrPort{}, api.ErrSocketClosed
	}
	if len(c.inbound) == 0 {
		return 0, netip.AddrPort{}, syscall.EAGAIN
	}
	d := c.inbound[0]
	c.inbound = c.inbound[1:]
	return copy(p, d.Payload), d.Addr, nil
}

// SendTo implements api.DatagramConn.
func (c *DatagramConn) SendTo(p []byte, addr netip.AddrPort) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.closed:
		return 0, api.ErrSocketClosed
	case c.sendErr != nil:
		return 0, c.sendErr
	case c.sendBlocked:
		return 0, syscall.EAGAIN
	}
	c.sent = append(c.sent, Datagram{Payload: append([]byte(nil), p...), Addr: addr})
	return len(p), nil
}

// LocalAddr implements api.DatagramConn.
func (c *DatagramConn) LocalAddr() (netip.AddrPort, error) { return c.local, nil }

// Close implements api.DatagramConn.
func (c *DatagramConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

var _ api.DatagramConn = (*DatagramConn)(nil)
