//go:build freebsd

// File: reactor/reactor_freebsd.go
// Author: momentics <momentics@gmail.com>
//
// FreeBSD kqueue(2)-based reactor. Each kqueue filter is reported as its own
// event, so a descriptor ready for reading and writing gets two callbacks.

package reactor

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-udplite/api"
	"golang.org/x/sys/unix"
)

type registration struct {
	cb     FDCallback
	events FDEventType
}

type kqueueReactor struct {
	kq     int
	events []unix.Kevent_t
	mu     sync.RWMutex
	regs   map[uintptr]registration
	closed atomic.Bool
}

func newPlatformReactor(maxEvents int) (EventReactor, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("kqueue create: %w", err)
	}
	unix.CloseOnExec(kq)
	return &kqueueReactor{
		kq:     kq,
		events: make([]unix.Kevent_t, maxEvents),
		regs:   make(map[uintptr]registration),
	}, nil
}

// changes computes the kevent change list moving fd from old to next interest.
func changes(fd uintptr, old, next FDEventType) []unix.Kevent_t {
	var out []unix.Kevent_t
	add := unix.EV_ADD | unix.EV_ENABLE
	if next&EventEdgeTriggered != 0 {
		add |= unix.EV_CLEAR
	}
	for _, f := range []struct {
		bit    FDEventType
		filter int
	}{
		{EventRead, unix.EVFILT_READ},
		{EventWrite, unix.EVFILT_WRITE},
	} {
		var ev unix.Kevent_t
		switch {
		case next&f.bit != 0:
			unix.SetKevent(&ev, int(fd), f.filter, add)
		case old&f.bit != 0:
			unix.SetKevent(&ev, int(fd), f.filter, unix.EV_DELETE)
		default:
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (r *kqueueReactor) apply(changes []unix.Kevent_t) error {
	if len(changes) == 0 {
		return nil
	}
	if _, err := unix.Kevent(r.kq, changes, nil, nil); err != nil {
		return fmt.Errorf("kevent: %w", err)
	}
	return nil
}

func (r *kqueueReactor) Register(fd uintptr, events FDEventType, cb FDCallback) error {
	if r.closed.Load() {
		return api.ErrReactorClosed
	}
	if cb == nil {
		return fmt.Errorf("reactor: nil callback: %w", api.ErrInvalidArgument)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.regs[fd]; ok {
		return fmt.Errorf("reactor: fd %d already registered: %w", fd, api.ErrInvalidArgument)
	}
	if err := r.apply(changes(fd, 0, events)); err != nil {
		return err
	}
	r.regs[fd] = registration{cb: cb, events: events}
	return nil
}

func (r *kqueueReactor) Modify(fd uintptr, events FDEventType) error {
	if r.closed.Load() {
		return api.ErrReactorClosed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[fd]
	if !ok {
		return fmt.Errorf("reactor: fd %d: %w", fd, api.ErrNotRegistered)
	}
	if err := r.apply(changes(fd, reg.events, events)); err != nil {
		return err
	}
	reg.events = events
	r.regs[fd] = reg
	return nil
}

func (r *kqueueReactor) Unregister(fd uintptr) error {
	if r.closed.Load() {
		return api.ErrReactorClosed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[fd]
	if !ok {
		return fmt.Errorf("reactor: fd %d: %w", fd, api.ErrNotRegistered)
	}
	delete(r.regs, fd)
	return r.apply(changes(fd, reg.events, 0))
}

func (r *kqueueReactor) Poll(timeoutMs int) (int, error) {
	if r.closed.Load() {
		return 0, api.ErrReactorClosed
	}
	var ts *unix.Timespec
	if timeoutMs >= 0 {
		t := unix.NsecToTimespec(int64(timeoutMs) * 1e6)
		ts = &t
	}
	n, err := unix.Kevent(r.kq, nil, r.events, ts)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("kevent wait: %w", err)
	}

	handled := 0
	for i := 0; i < n; i++ {
		ev := r.events[i]
		fd := uintptr(ev.Ident)

		r.mu.RLock()
		reg, ok := r.regs[fd]
		r.mu.RUnlock()
		if !ok {
			continue
		}

		var ready FDEventType
		switch ev.Filter {
		case unix.EVFILT_READ:
			ready |= EventRead
		case unix.EVFILT_WRITE:
			ready |= EventWrite
		}
		if ev.Flags&(unix.EV_EOF|unix.EV_ERROR) != 0 {
			ready |= EventError
		}
		dispatch(reg.cb, fd, ready)
		handled++
	}
	return handled, nil
}

func (r *kqueueReactor) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return unix.Close(r.kq)
}
