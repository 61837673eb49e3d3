//go:build linux || freebsd

// File: udplite/socket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// UDP-Lite socket handle over golang.org/x/sys/unix.

package udplite

import (
	"fmt"
	"net/netip"
	"os"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-udplite/api"
	"golang.org/x/sys/unix"
)

// Socket is a UDP-Lite datagram socket. It owns its descriptor and closes it
// exactly once. A Socket is meant to be used by one goroutine at a time.
type Socket struct {
	fd     int
	family int
	closed atomic.Bool
}

// Bind creates a UDP-Lite socket in the family of laddr and binds it.
// Port 0 lets the OS choose a port.
func Bind(laddr netip.AddrPort, opts ...Option) (*Socket, error) {
	o := collectOptions(opts)
	family := familyOf(laddr)
	sa, err := sockaddrFor(family, laddr)
	if err != nil {
		return nil, fmt.Errorf("udplite: bind: %w", err)
	}
	fd, err := openSocket(family, o.nonblocking)
	if err != nil {
		return nil, err
	}
	s := &Socket{fd: fd, family: family}
	if err := ignoringEINTR(func() error { return unix.Bind(fd, sa) }); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("bind", err)
	}
	if err := o.applyCoverage(s); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// FromFD takes ownership of an existing UDP-Lite descriptor.
// The protocol of fd is not verified.
func FromFD(fd int) (*Socket, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return nil, os.NewSyscallError("getsockname", err)
	}
	family := unix.AF_INET6
	if _, ok := sa.(*unix.SockaddrInet4); ok {
		family = unix.AF_INET
	}
	return &Socket{fd: fd, family: family}, nil
}

func openSocket(family int, nonblocking bool) (int, error) {
	typ := unix.SOCK_DGRAM | unix.SOCK_CLOEXEC
	if nonblocking {
		typ |= unix.SOCK_NONBLOCK
	}
	fd, err := unix.Socket(family, typ, ipprotoUDPLite)
	if err != nil {
		return -1, os.NewSyscallError("socket", err)
	}
	return fd, nil
}

func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}

// sysfd returns the descriptor unless the socket has been closed.
func (s *Socket) sysfd(op string) (int, error) {
	if s.closed.Load() {
		return -1, fmt.Errorf("udplite: %s: %w", op, api.ErrSocketClosed)
	}
	return s.fd, nil
}

// RawFD exposes the descriptor for readiness polling. The Socket keeps
// ownership: callers must not close it, and the value is meaningless after
// Close.
func (s *Socket) RawFD() uintptr {
	return uintptr(s.fd)
}

// Connect sets the default destination used by Send and filters received
// datagrams to that peer.
func (s *Socket) Connect(raddr netip.AddrPort) error {
	fd, err := s.sysfd("connect")
	if err != nil {
		return err
	}
	sa, err := sockaddrFor(s.family, raddr)
	if err != nil {
		return fmt.Errorf("udplite: connect: %w", err)
	}
	if err := unix.Connect(fd, sa); err != nil {
		return os.NewSyscallError("connect", err)
	}
	return nil
}

// Send transmits p to the connected peer.
func (s *Socket) Send(p []byte) (int, error) {
	fd, err := s.sysfd("send")
	if err != nil {
		return 0, err
	}
	n, err := unix.SendmsgN(fd, p, nil, nil, 0)
	if err != nil {
		return 0, os.NewSyscallError("send", err)
	}
	return n, nil
}

// SendTo transmits p to raddr without requiring Connect.
func (s *Socket) SendTo(p []byte, raddr netip.AddrPort) (int, error) {
	fd, err := s.sysfd("sendto")
	if err != nil {
		return 0, err
	}
	sa, err := sockaddrFor(s.family, raddr)
	if err != nil {
		return 0, fmt.Errorf("udplite: sendto: %w", err)
	}
	n, err := unix.SendmsgN(fd, p, nil, sa, 0)
	if err != nil {
		return 0, os.NewSyscallError("sendto", err)
	}
	return n, nil
}

// Recv reads one datagram into p. Bytes beyond len(p) are discarded.
func (s *Socket) Recv(p []byte) (int, error) {
	n, _, err := s.recvfrom("recv", p, 0)
	return n, err
}

// RecvFrom reads one datagram into p and reports its sender.
func (s *Socket) RecvFrom(p []byte) (int, netip.AddrPort, error) {
	return s.recvfrom("recvfrom", p, 0)
}

// Peek is Recv without removing the datagram from the queue.
func (s *Socket) Peek(p []byte) (int, error) {
	n, _, err := s.recvfrom("recv", p, unix.MSG_PEEK)
	return n, err
}

// PeekFrom is RecvFrom without removing the datagram from the queue.
func (s *Socket) PeekFrom(p []byte) (int, netip.AddrPort, error) {
	return s.recvfrom("recvfrom", p, unix.MSG_PEEK)
}

func (s *Socket) recvfrom(op string, p []byte, flags int) (int, netip.AddrPort, error) {
	fd, err := s.sysfd(op)
	if err != nil {
		return 0, netip.AddrPort{}, err
	}
	n, sa, err := unix.Recvfrom(fd, p, flags)
	if err != nil {
		return 0, netip.AddrPort{}, os.NewSyscallError(op, err)
	}
	var from netip.AddrPort
	if sa != nil {
		from = addrPortOf(sa)
	}
	return n, from, nil
}

// SetSendChecksumCoverage sets how much of the payload of sent datagrams is
// covered by the checksum.
func (s *Socket) SetSendChecksumCoverage(c Coverage) error {
	return s.setCoverage(udpliteSendCscov, c)
}

// SendChecksumCoverage reads back the coverage of sent datagrams.
func (s *Socket) SendChecksumCoverage() (Coverage, error) {
	return s.coverage(udpliteSendCscov)
}

// SetRecvChecksumCoverage sets the minimum coverage of accepted datagrams.
// The kernel silently drops datagrams with less coverage before delivery.
func (s *Socket) SetRecvChecksumCoverage(c Coverage) error {
	return s.setCoverage(udpliteRecvCscov, c)
}

// RecvChecksumCoverage reads back the receive coverage filter.
func (s *Socket) RecvChecksumCoverage() (Coverage, error) {
	return s.coverage(udpliteRecvCscov)
}

func (s *Socket) setCoverage(opt int, c Coverage) error {
	fd, err := s.sysfd("setsockopt")
	if err != nil {
		return err
	}
	v, err := c.optionValue()
	if err != nil {
		return fmt.Errorf("udplite: setsockopt: %w", err)
	}
	if err := unix.SetsockoptInt(fd, ipprotoUDPLite, opt, v); err != nil {
		return os.NewSyscallError("setsockopt", err)
	}
	return nil
}

func (s *Socket) coverage(opt int) (Coverage, error) {
	fd, err := s.sysfd("getsockopt")
	if err != nil {
		return FullCoverage, err
	}
	v, err := unix.GetsockoptInt(fd, ipprotoUDPLite, opt)
	if err != nil {
		return FullCoverage, os.NewSyscallError("getsockopt", err)
	}
	c, err := coverageFromOption(v)
	if err != nil {
		return FullCoverage, fmt.Errorf("udplite: getsockopt: %w", err)
	}
	return c, nil
}

// SetNonblocking toggles O_NONBLOCK on the descriptor.
func (s *Socket) SetNonblocking(nonblocking bool) error {
	fd, err := s.sysfd("fcntl")
	if err != nil {
		return err
	}
	if err := unix.SetNonblock(fd, nonblocking); err != nil {
		return os.NewSyscallError("fcntl", err)
	}
	return nil
}

// LocalAddr returns the address the socket is bound to.
func (s *Socket) LocalAddr() (netip.AddrPort, error) {
	fd, err := s.sysfd("getsockname")
	if err != nil {
		return netip.AddrPort{}, err
	}
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return netip.AddrPort{}, os.NewSyscallError("getsockname", err)
	}
	return addrPortOf(sa), nil
}

// PeerAddr returns the connected peer. It fails with ENOTCONN before Connect.
func (s *Socket) PeerAddr() (netip.AddrPort, error) {
	fd, err := s.sysfd("getpeername")
	if err != nil {
		return netip.AddrPort{}, err
	}
	sa, err := unix.Getpeername(fd)
	if err != nil {
		return netip.AddrPort{}, os.NewSyscallError("getpeername", err)
	}
	return addrPortOf(sa), nil
}

// Dup returns a second handle for the same socket. The new descriptor always
// has close-on-exec set, whatever the flag on the original.
func (s *Socket) Dup() (*Socket, error) {
	fd, err := s.sysfd("fcntl")
	if err != nil {
		return nil, err
	}
	nfd, err := unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, os.NewSyscallError("fcntl", err)
	}
	return &Socket{fd: nfd, family: s.family}, nil
}

// SetCloexec sets or clears close-on-exec. New sockets have it set.
func (s *Socket) SetCloexec(cloexec bool) error {
	fd, err := s.sysfd("fcntl")
	if err != nil {
		return err
	}
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	if err != nil {
		return os.NewSyscallError("fcntl", err)
	}
	if cloexec {
		flags |= unix.FD_CLOEXEC
	} else {
		flags &^= unix.FD_CLOEXEC
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, flags); err != nil {
		return os.NewSyscallError("fcntl", err)
	}
	return nil
}

// IsCloexec reports whether close-on-exec is set.
func (s *Socket) IsCloexec() (bool, error) {
	fd, err := s.sysfd("fcntl")
	if err != nil {
		return false, err
	}
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	if err != nil {
		return false, os.NewSyscallError("fcntl", err)
	}
	return flags&unix.FD_CLOEXEC != 0, nil
}

// SetReadTimeout sets SO_RCVTIMEO. Zero blocks indefinitely.
func (s *Socket) SetReadTimeout(d time.Duration) error {
	return s.setTimeout(unix.SO_RCVTIMEO, d)
}

// SetWriteTimeout sets SO_SNDTIMEO. Zero blocks indefinitely.
func (s *Socket) SetWriteTimeout(d time.Duration) error {
	return s.setTimeout(unix.SO_SNDTIMEO, d)
}

func (s *Socket) setTimeout(opt int, d time.Duration) error {
	fd, err := s.sysfd("setsockopt")
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("udplite: timeout %v: %w", d, api.ErrInvalidArgument)
	}
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, opt, &tv); err != nil {
		return os.NewSyscallError("setsockopt", err)
	}
	return nil
}

// SetTTL sets the IPv4 TTL or the IPv6 unicast hop limit.
func (s *Socket) SetTTL(ttl int) error {
	fd, err := s.sysfd("setsockopt")
	if err != nil {
		return err
	}
	level, opt := s.ttlOption()
	if err := unix.SetsockoptInt(fd, level, opt, ttl); err != nil {
		return os.NewSyscallError("setsockopt", err)
	}
	return nil
}

// TTL returns the IPv4 TTL or the IPv6 unicast hop limit.
func (s *Socket) TTL() (int, error) {
	fd, err := s.sysfd("getsockopt")
	if err != nil {
		return 0, err
	}
	level, opt := s.ttlOption()
	ttl, err := unix.GetsockoptInt(fd, level, opt)
	if err != nil {
		return 0, os.NewSyscallError("getsockopt", err)
	}
	return ttl, nil
}

// TakeError returns and clears the pending SO_ERROR of the socket, typically
// an ICMP-reported failure of an earlier send on a connected socket. It
// returns nil when nothing is pending.
func (s *Socket) TakeError() error {
	fd, err := s.sysfd("getsockopt")
	if err != nil {
		return err
	}
	errno, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return os.NewSyscallError("getsockopt", err)
	}
	if errno == 0 {
		return nil
	}
	return os.NewSyscallError("so_error", unix.Errno(errno))
}

func (s *Socket) ttlOption() (level, opt int) {
	if s.family == unix.AF_INET {
		return unix.IPPROTO_IP, unix.IP_TTL
	}
	return unix.IPPROTO_IPV6, unix.IPV6_UNICAST_HOPS
}

// Release gives up ownership of the descriptor and returns it. The Socket
// behaves as closed afterwards and the caller becomes responsible for it.
func (s *Socket) Release() (int, error) {
	if !s.closed.CompareAndSwap(false, true) {
		return -1, fmt.Errorf("udplite: release: %w", api.ErrSocketClosed)
	}
	return s.fd, nil
}

// Close releases the descriptor. Calling Close again is a no-op.
func (s *Socket) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := unix.Close(s.fd); err != nil {
		return os.NewSyscallError("close", err)
	}
	return nil
}

// String renders the bound address and descriptor, for debugging.
func (s *Socket) String() string {
	if s.closed.Load() {
		return fmt.Sprintf("udplite.Socket{fd: %d, closed}", s.fd)
	}
	if addr, err := s.LocalAddr(); err == nil {
		return fmt.Sprintf("udplite.Socket{addr: %s, fd: %d}", addr, s.fd)
	}
	return fmt.Sprintf("udplite.Socket{fd: %d}", s.fd)
}

var _ api.DatagramConn = (*Socket)(nil)
