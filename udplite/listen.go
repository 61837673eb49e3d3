// File: udplite/listen.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Binding from textual host:port addresses.

package udplite

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/momentics/hioload-udplite/api"
)

// Listen resolves address ("host:port") and binds to the first resolved
// address that accepts the bind. An empty host means 0.0.0.0. When every
// candidate fails, the error of the last attempt is returned.
func Listen(ctx context.Context, address string, opts ...Option) (*Socket, error) {
	candidates, err := ResolveAddrs(ctx, address)
	if err != nil {
		return nil, err
	}
	lastErr := fmt.Errorf("udplite: listen %q: %w", address, api.ErrNoAddresses)
	for _, ap := range candidates {
		s, err := Bind(ap, opts...)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// ResolveAddrs turns "host:port" into candidate socket addresses. Literal IP
// hosts are not looked up.
func ResolveAddrs(ctx context.Context, address string) ([]netip.AddrPort, error) {
	host, service, err := net.SplitHostPort(address)
	if err != nil {
		return nil, fmt.Errorf("udplite: %w", err)
	}
	port, err := net.DefaultResolver.LookupPort(ctx, "udp", service)
	if err != nil {
		return nil, fmt.Errorf("udplite: %w", err)
	}
	if host == "" {
		return []netip.AddrPort{netip.AddrPortFrom(netip.IPv4Unspecified(), uint16(port))}, nil
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return []netip.AddrPort{netip.AddrPortFrom(addr, uint16(port))}, nil
	}
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, fmt.Errorf("udplite: %w", err)
	}
	out := make([]netip.AddrPort, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, netip.AddrPortFrom(addr.Unmap(), uint16(port)))
	}
	return out, nil
}
