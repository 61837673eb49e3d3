//go:build linux || freebsd

// File: udplite/sockaddr.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Conversion between netip.AddrPort and unix.Sockaddr.

package udplite

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"

	"github.com/momentics/hioload-udplite/api"
	"golang.org/x/sys/unix"
)

// familyOf picks the socket family for a bind address.
func familyOf(ap netip.AddrPort) int {
	if ap.Addr().Unmap().Is4() {
		return unix.AF_INET
	}
	return unix.AF_INET6
}

// sockaddrFor builds the sockaddr for ap as seen by a socket of family.
// IPv4 destinations are mapped when the socket is IPv6.
func sockaddrFor(family int, ap netip.AddrPort) (unix.Sockaddr, error) {
	if !ap.IsValid() {
		return nil, fmt.Errorf("address %v: %w", ap, api.ErrInvalidArgument)
	}
	addr := ap.Addr().Unmap()
	switch family {
	case unix.AF_INET:
		if !addr.Is4() {
			return nil, fmt.Errorf("address %v on an IPv4 socket: %w", ap, api.ErrInvalidArgument)
		}
		return &unix.SockaddrInet4{Port: int(ap.Port()), Addr: addr.As4()}, nil
	case unix.AF_INET6:
		sa := &unix.SockaddrInet6{Port: int(ap.Port()), Addr: addr.As16()}
		if zone := ap.Addr().Zone(); zone != "" {
			sa.ZoneId = zoneIndex(zone)
		}
		return sa, nil
	default:
		return nil, fmt.Errorf("address family %d: %w", family, api.ErrNotSupported)
	}
}

// addrPortOf converts a kernel-returned sockaddr.
func addrPortOf(sa unix.Sockaddr) netip.AddrPort {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrPortFrom(netip.AddrFrom4(sa.Addr), uint16(sa.Port))
	case *unix.SockaddrInet6:
		addr := netip.AddrFrom16(sa.Addr)
		if sa.ZoneId != 0 {
			addr = addr.WithZone(zoneName(sa.ZoneId))
		}
		return netip.AddrPortFrom(addr, uint16(sa.Port))
	}
	return netip.AddrPort{}
}

func zoneIndex(zone string) uint32 {
	if ifi, err := net.InterfaceByName(zone); err == nil {
		return uint32(ifi.Index)
	}
	n, _ := strconv.ParseUint(zone, 10, 32)
	return uint32(n)
}

func zoneName(index uint32) string {
	if ifi, err := net.InterfaceByIndex(int(index)); err == nil {
		return ifi.Name
	}
	return strconv.FormatUint(uint64(index), 10)
}
