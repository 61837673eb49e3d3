// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// metrics_test.go — MetricsRegistry counters and DebugProbes coverage.
package control_test

import (
	"sync"
	"testing"

	"github.com/momentics/hioload-udplite/control"
)

func TestMetricsRegistry_Basic(t *testing.T) {
	reg := control.NewMetricsRegistry()
	reg.Set("socket.addr", "127.0.0.1:9000")
	reg.Add(control.MetricDatagramsIn, 2)
	reg.Add(control.MetricDatagramsIn, 3)

	metrics := reg.GetSnapshot()
	if metrics[control.MetricDatagramsIn] != int64(5) {
		t.Errorf("MetricsRegistry: counter = %v, want 5", metrics[control.MetricDatagramsIn])
	}
	if metrics["socket.addr"] != "127.0.0.1:9000" {
		t.Error("MetricsRegistry: string value mismatch")
	}
	if reg.Counter(control.MetricBytesOut) != 0 {
		t.Error("MetricsRegistry: absent counter not zero")
	}
	if reg.Updated().IsZero() {
		t.Error("MetricsRegistry: update time not recorded")
	}
}

func TestMetricsRegistry_ConcurrentAdd(t *testing.T) {
	reg := control.NewMetricsRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				reg.Add(control.MetricBytesIn, 1)
			}
		}()
	}
	wg.Wait()
	if got := reg.Counter(control.MetricBytesIn); got != 8000 {
		t.Errorf("counter = %d, want 8000", got)
	}
}

func TestDebugProbes_Platform(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)

	names := dp.Names()
	if len(names) != 2 || names[0] != "platform.cpus" || names[1] != "platform.udplite" {
		t.Fatalf("probes = %v", names)
	}
	state := dp.DumpState()
	if cpus, ok := state["platform.cpus"].(int); !ok || cpus < 1 {
		t.Errorf("platform.cpus = %v", state["platform.cpus"])
	}
}
