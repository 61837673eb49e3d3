// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared by the socket wrapper, the reactor adapter and tools.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrSocketClosed         = fmt.Errorf("socket is closed")
	ErrInvalidArgument      = fmt.Errorf("invalid argument")
	ErrInvalidCoverage      = fmt.Errorf("invalid checksum coverage")
	ErrNoAddresses          = fmt.Errorf("could not resolve to any addresses")
	ErrNotSupported         = fmt.Errorf("operation not supported")
	ErrProtocolNotSupported = fmt.Errorf("UDP-Lite is not supported on this platform")
	ErrReactorClosed        = fmt.Errorf("reactor is closed")
	ErrNotRegistered        = fmt.Errorf("descriptor is not registered")
)
