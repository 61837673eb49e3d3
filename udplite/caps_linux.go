//go:build linux

// File: udplite/caps_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// UDP-Lite constants for Linux and Android (GOOS=android also satisfies the
// linux constraint). Android's libc does not export them, so they are spelled
// out here rather than taken from headers.

package udplite

const (
	ipprotoUDPLite   = 136
	udpliteSendCscov = 10
	udpliteRecvCscov = 11
)
