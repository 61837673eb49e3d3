// File: udplite/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Classification of the OS errors returned by Socket methods.

package udplite

import (
	"errors"
	"syscall"

	"github.com/momentics/hioload-udplite/api"
)

// IsWouldBlock reports whether err is the retryable condition of a
// nonblocking socket that has no data or no buffer space.
func IsWouldBlock(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}

// IsAddrInUse reports whether a bind failed because the address is taken.
func IsAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}

// IsNotConnected reports whether Send was used without a connected peer.
// Linux answers EDESTADDRREQ, other kernels ENOTCONN.
func IsNotConnected(err error) bool {
	return errors.Is(err, syscall.ENOTCONN) || errors.Is(err, syscall.EDESTADDRREQ)
}

// IsProtocolNotSupported reports whether the platform or the running kernel
// lacks UDP-Lite.
func IsProtocolNotSupported(err error) bool {
	return errors.Is(err, api.ErrProtocolNotSupported) ||
		errors.Is(err, syscall.EPROTONOSUPPORT)
}
