// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package affinity_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/momentics/hioload-udplite/affinity"
	"github.com/momentics/hioload-udplite/api"
)

func TestSetAffinity_OutOfRange(t *testing.T) {
	for _, cpu := range []int{-1, runtime.NumCPU()} {
		if err := affinity.SetAffinity(cpu); !errors.Is(err, api.ErrInvalidArgument) {
			t.Errorf("SetAffinity(%d) = %v, want ErrInvalidArgument", cpu, err)
		}
	}
}

func TestPin(t *testing.T) {
	unpin, err := affinity.Pin(0)
	if errors.Is(err, api.ErrNotSupported) {
		t.Skip("CPU affinity not supported on " + runtime.GOOS)
	}
	if err != nil {
		// Restricted cpusets in containers may exclude CPU 0.
		t.Skipf("pin to CPU 0: %v", err)
	}
	unpin()
}
