//go:build linux || freebsd

// File: udplite/caps.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package udplite

import (
	"runtime"

	"github.com/momentics/hioload-udplite/api"
)

// Capabilities returns the UDP-Lite constants compiled in for this target.
func Capabilities() api.Capabilities {
	return api.Capabilities{
		Supported:          true,
		OS:                 runtime.GOOS,
		Protocol:           ipprotoUDPLite,
		SendCoverageOption: udpliteSendCscov,
		RecvCoverageOption: udpliteRecvCscov,
	}
}
