//go:build !linux && !freebsd
// +build !linux,!freebsd

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import (
	"fmt"
	"runtime"

	"github.com/momentics/hioload-udplite/api"
)

func newPlatformReactor(int) (EventReactor, error) {
	return nil, fmt.Errorf("reactor: %s: %w", runtime.GOOS, api.ErrNotSupported)
}
