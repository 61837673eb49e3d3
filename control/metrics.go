// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime counters for socket tools, kept in a thread-safe map with
// dynamic registration.

package control

import (
	"sync"
	"time"
)

// Well-known metric keys used by the echo service and the CLI.
const (
	MetricDatagramsIn  = "datagrams.in"
	MetricDatagramsOut = "datagrams.out"
	MetricBytesIn      = "bytes.in"
	MetricBytesOut     = "bytes.out"
	MetricWouldBlock   = "send.would_block"
	MetricQueued       = "send.queued"
	MetricDropped      = "send.dropped"
	MetricErrors       = "errors"
)

// MetricsRegistry holds counters and free-form values.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Add increments an int64 counter, creating it at zero.
func (mr *MetricsRegistry) Add(key string, delta int64) {
	mr.mu.Lock()
	v, _ := mr.metrics[key].(int64)
	mr.metrics[key] = v + delta
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Counter returns an int64 counter, or zero if it was never added to.
func (mr *MetricsRegistry) Counter(key string) int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	v, _ := mr.metrics[key].(int64)
	return v
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}

// Updated returns when a metric last changed.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
