// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Named probes reporting live socket state for diagnostics.

package control

import (
	"sort"
	"sync"

	"github.com/momentics/hioload-udplite/udplite"
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// Names lists registered probes in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// RegisterSocketProbes exposes the address and coverage of s under prefix.
// Probe errors are reported as their message.
func RegisterSocketProbes(dp *DebugProbes, prefix string, s *udplite.Socket) {
	dp.RegisterProbe(prefix+".socket", func() any { return s.String() })
	dp.RegisterProbe(prefix+".send_coverage", func() any {
		c, err := s.SendChecksumCoverage()
		if err != nil {
			return err.Error()
		}
		return c.String()
	})
	dp.RegisterProbe(prefix+".recv_coverage", func() any {
		c, err := s.RecvChecksumCoverage()
		if err != nil {
			return err.Error()
		}
		return c.String()
	})
}
