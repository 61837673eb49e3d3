// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral event reactor interface for descriptor readiness polling.

package reactor

import (
	"context"
	"fmt"

	"github.com/momentics/hioload-udplite/api"
	"go.uber.org/zap"
)

// DefaultMaxEvents bounds the events collected by a single Poll.
const DefaultMaxEvents = 128

// FDEventType is a bit set of readiness conditions.
type FDEventType uint32

const (
	EventRead FDEventType = 1 << iota
	EventWrite
	// EventError is reported on error or hang-up; it is never requested.
	EventError
	// EventEdgeTriggered asks for edge-triggered notification.
	EventEdgeTriggered
)

func (e FDEventType) String() string {
	s := ""
	for _, f := range []struct {
		bit  FDEventType
		name string
	}{
		{EventRead, "read"},
		{EventWrite, "write"},
		{EventError, "error"},
		{EventEdgeTriggered, "edge"},
	} {
		if e&f.bit == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += f.name
	}
	if s == "" {
		return "none"
	}
	return s
}

// FDCallback is invoked from Poll for every ready descriptor.
type FDCallback func(fd uintptr, events FDEventType)

// EventReactor multiplexes readiness of registered descriptors.
type EventReactor interface {
	// Register adds fd with the given interest.
	Register(fd uintptr, events FDEventType, cb FDCallback) error

	// Modify replaces the interest of a registered fd.
	Modify(fd uintptr, events FDEventType) error

	// Unregister removes fd. The descriptor itself is left open.
	Unregister(fd uintptr) error

	// Poll waits up to timeoutMs (negative blocks) and dispatches callbacks.
	// It returns the number of callbacks invoked.
	Poll(timeoutMs int) (int, error)

	// Close releases the kernel polling object.
	Close() error
}

// NewReactor constructs the platform reactor with DefaultMaxEvents.
func NewReactor() (EventReactor, error) {
	return NewReactorSize(DefaultMaxEvents)
}

// NewReactorSize constructs the platform reactor collecting at most
// maxEvents per Poll.
func NewReactorSize(maxEvents int) (EventReactor, error) {
	if maxEvents <= 0 {
		return nil, fmt.Errorf("reactor: max events %d: %w", maxEvents, api.ErrInvalidArgument)
	}
	return newPlatformReactor(maxEvents)
}

// RegisterSource registers the descriptor exposed by src.
func RegisterSource(r EventReactor, src api.Descriptor, events FDEventType, cb FDCallback) error {
	return r.Register(src.RawFD(), events, cb)
}

// Loop polls r until ctx is done, waking at least every timeoutMs to observe
// cancellation. It returns ctx.Err() on cancellation or the first Poll error.
func Loop(ctx context.Context, r EventReactor, timeoutMs int) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := r.Poll(timeoutMs); err != nil {
			return err
		}
	}
}

// dispatch runs cb, containing panics so one callback cannot stop the loop.
func dispatch(cb FDCallback, fd uintptr, events FDEventType) {
	defer func() {
		if p := recover(); p != nil {
			Logger().Error("reactor callback panicked",
				zap.Uintptr("fd", fd),
				zap.Stringer("events", events),
				zap.Any("panic", p))
		}
	}()
	cb(fd, events)
}
