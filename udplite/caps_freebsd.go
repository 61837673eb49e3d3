//go:build freebsd

// File: udplite/caps_freebsd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// UDP-Lite constants for FreeBSD, from netinet/udplite.h.

package udplite

const (
	ipprotoUDPLite   = 136
	udpliteSendCscov = 2
	udpliteRecvCscov = 4
)
