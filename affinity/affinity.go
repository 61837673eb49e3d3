// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files guarded by build tags.

package affinity

import (
	"fmt"
	"runtime"

	"github.com/momentics/hioload-udplite/api"
)

// SetAffinity pins the calling OS thread to the given logical CPU. Callers
// that want a goroutine to stay pinned must hold runtime.LockOSThread.
func SetAffinity(cpuID int) error {
	if cpuID < 0 || cpuID >= runtime.NumCPU() {
		return fmt.Errorf("affinity: cpu %d of %d: %w", cpuID, runtime.NumCPU(), api.ErrInvalidArgument)
	}
	return setAffinityPlatform(cpuID)
}

// Pin locks the calling goroutine to its OS thread and pins that thread to
// cpuID. The returned func undoes the lock; the thread keeps its CPU mask.
func Pin(cpuID int) (unpin func(), err error) {
	runtime.LockOSThread()
	if err := SetAffinity(cpuID); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return runtime.UnlockOSThread, nil
}
