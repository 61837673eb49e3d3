// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// Capabilities describes the UDP-Lite constants resolved for the build target.
type Capabilities struct {
	// Supported is false when the target has no UDP-Lite implementation.
	Supported bool

	OS string

	// Protocol is the IP protocol number passed to socket(2).
	Protocol int

	// Option names for UDPLITE_SEND_CSCOV and UDPLITE_RECV_CSCOV.
	SendCoverageOption int
	RecvCoverageOption int
}
