// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform probes: OS, CPU count and the compiled-in UDP-Lite capability table.

package control

import (
	"runtime"

	"github.com/momentics/hioload-udplite/udplite"
)

// RegisterPlatformProbes sets platform debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.udplite", func() any {
		return udplite.Capabilities()
	})
}
