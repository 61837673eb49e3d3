// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the reactor and datagram
// socket contracts.

package fake

import (
	"fmt"
	"sync"

	"github.com/momentics/hioload-udplite/api"
	"github.com/momentics/hioload-udplite/reactor"
)

// Reactor is a fake reactor.EventReactor. Readiness is injected with Fire
// instead of being polled from the kernel.
type Reactor struct {
	mu        sync.Mutex
	interest  map[uintptr]reactor.FDEventType
	callbacks map[uintptr]reactor.FDCallback
	ready     []readyEvent
	closed    bool
	polls     int
}

type readyEvent struct {
	fd     uintptr
	events reactor.FDEventType
}

// NewReactor creates an empty fake reactor.
func NewReactor() *Reactor {
	return &Reactor{
		interest:  make(map[uintptr]reactor.FDEventType),
		callbacks: make(map[uintptr]reactor.FDCallback),
	}
}

// Register implements reactor.EventReactor.
func (r *Reactor) Register(fd uintptr, events reactor.FDEventType, cb reactor.FDCallback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return api.ErrReactorClosed
	}
	r.interest[fd] = events
	r.callbacks[fd] = cb
	return nil
}

// Modify implements reactor.EventReactor.
func (r *Reactor) Modify(fd uintptr, events reactor.FDEventType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.callbacks[fd]; !ok {
		return fmt.Errorf("fake reactor: fd %d: %w", fd, api.ErrNotRegistered)
	}
	r.interest[fd] = events
	return nil
}

// Unregister implements reactor.EventReactor.
func (r *Reactor) Unregister(fd uintptr) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.callbacks[fd]; !ok {
		return fmt.Errorf("fake reactor: fd %d: %w", fd, api.ErrNotRegistered)
	}
	delete(r.callbacks, fd)
	delete(r.interest, fd)
	return nil
}

// Fire queues readiness for fd; the next Poll delivers the subset that
// matches the registered interest (errors are always delivered).
func (r *Reactor) Fire(fd uintptr, events reactor.FDEventType) {
	r.mu.Lock()
	r.ready = append(r.ready, readyEvent{fd: fd, events: events})
	r.mu.Unlock()
}

// Interest returns the current interest for fd.
func (r *Reactor) Interest(fd uintptr) reactor.FDEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interest[fd]
}

// Polls counts Poll calls.
func (r *Reactor) Polls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.polls
}

// Poll implements reactor.EventReactor. The timeout is ignored.
func (r *Reactor) Poll(int) (int, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0, api.ErrReactorClosed
	}
	r.polls++
	ready := r.ready
	r.ready = nil
	type call struct {
		cb     reactor.FDCallback
		fd     uintptr
		events reactor.FDEventType
	}
	var calls []call
	for _, ev := range ready {
		cb, ok := r.callbacks[ev.fd]
		if !ok {
			continue
		}
		mask := r.interest[ev.fd]&(reactor.EventRead|reactor.EventWrite) | reactor.EventError
		if got := ev.events & mask; got != 0 {
			calls = append(calls, call{cb: cb, fd: ev.fd, events: got})
		}
	}
	r.mu.Unlock()

	for _, c := range calls {
		c.cb(c.fd, c.events)
	}
	return len(calls), nil
}

// Close implements reactor.EventReactor.
func (r *Reactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

var _ reactor.EventReactor = (*Reactor)(nil)
