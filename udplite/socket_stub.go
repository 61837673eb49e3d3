//go:build !linux && !freebsd

// File: udplite/socket_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub for targets without UDP-Lite. Bind fails immediately, so no Socket
// value can exist and the methods below are unreachable in practice.

package udplite

import (
	"fmt"
	"net/netip"
	"runtime"
	"time"

	"github.com/momentics/hioload-udplite/api"
)

var errUnsupported = fmt.Errorf("udplite: %s: %w", runtime.GOOS, api.ErrProtocolNotSupported)

// Socket is a UDP-Lite datagram socket.
type Socket struct{}

// Capabilities returns the UDP-Lite constants compiled in for this target.
func Capabilities() api.Capabilities {
	return api.Capabilities{OS: runtime.GOOS}
}

// Bind always fails on this platform.
func Bind(netip.AddrPort, ...Option) (*Socket, error) { return nil, errUnsupported }

// FromFD always fails on this platform.
func FromFD(int) (*Socket, error) { return nil, errUnsupported }

func (s *Socket) RawFD() uintptr                             { return ^uintptr(0) }
func (s *Socket) Connect(netip.AddrPort) error               { return errUnsupported }
func (s *Socket) Send([]byte) (int, error)                   { return 0, errUnsupported }
func (s *Socket) SendTo([]byte, netip.AddrPort) (int, error) { return 0, errUnsupported }
func (s *Socket) Recv([]byte) (int, error)                   { return 0, errUnsupported }
func (s *Socket) Peek([]byte) (int, error)                   { return 0, errUnsupported }
func (s *Socket) SetSendChecksumCoverage(Coverage) error     { return errUnsupported }
func (s *Socket) SendChecksumCoverage() (Coverage, error)    { return FullCoverage, errUnsupported }
func (s *Socket) SetRecvChecksumCoverage(Coverage) error     { return errUnsupported }
func (s *Socket) RecvChecksumCoverage() (Coverage, error)    { return FullCoverage, errUnsupported }
func (s *Socket) SetNonblocking(bool) error                  { return errUnsupported }
func (s *Socket) LocalAddr() (netip.AddrPort, error)         { return netip.AddrPort{}, errUnsupported }
func (s *Socket) PeerAddr() (netip.AddrPort, error)          { return netip.AddrPort{}, errUnsupported }
func (s *Socket) Dup() (*Socket, error)                      { return nil, errUnsupported }
func (s *Socket) SetCloexec(bool) error                      { return errUnsupported }
func (s *Socket) IsCloexec() (bool, error)                   { return false, errUnsupported }
func (s *Socket) SetReadTimeout(time.Duration) error         { return errUnsupported }
func (s *Socket) SetWriteTimeout(time.Duration) error        { return errUnsupported }
func (s *Socket) SetTTL(int) error                           { return errUnsupported }
func (s *Socket) TTL() (int, error)                          { return 0, errUnsupported }
func (s *Socket) TakeError() error                           { return errUnsupported }
func (s *Socket) Release() (int, error)                      { return -1, errUnsupported }
func (s *Socket) Close() error                               { return nil }
func (s *Socket) String() string                             { return "udplite.Socket{unsupported}" }

func (s *Socket) RecvFrom([]byte) (int, netip.AddrPort, error) {
	return 0, netip.AddrPort{}, errUnsupported
}

func (s *Socket) PeekFrom([]byte) (int, netip.AddrPort, error) {
	return 0, netip.AddrPort{}, errUnsupported
}
