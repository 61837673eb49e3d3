//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based reactor implementation and factory.

package reactor

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-udplite/api"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// epollReactor is an epoll-based event reactor.
type epollReactor struct {
	epfd      int
	events    []unix.EpollEvent
	mu        sync.RWMutex
	callbacks map[uintptr]FDCallback
	closed    atomic.Bool
}

func newPlatformReactor(maxEvents int) (EventReactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &epollReactor{
		epfd:      epfd,
		events:    make([]unix.EpollEvent, maxEvents),
		callbacks: make(map[uintptr]FDCallback),
	}, nil
}

func epollMask(events FDEventType) uint32 {
	var mask uint32
	if events&EventRead != 0 {
		mask |= unix.EPOLLIN
	}
	if events&EventWrite != 0 {
		mask |= unix.EPOLLOUT
	}
	if events&EventEdgeTriggered != 0 {
		mask |= unix.EPOLLET
	}
	return mask
}

// Register adds a file descriptor to the epoll watch list.
func (r *epollReactor) Register(fd uintptr, events FDEventType, cb FDCallback) error {
	if r.closed.Load() {
		return api.ErrReactorClosed
	}
	if cb == nil {
		return fmt.Errorf("reactor: nil callback: %w", api.ErrInvalidArgument)
	}
	ev := unix.EpollEvent{Events: epollMask(events), Fd: int32(fd)}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev); err != nil {
		return fmt.Errorf("epoll ctl add: %w", err)
	}
	r.callbacks[fd] = cb
	Logger().Debug("registered descriptor", zap.Uintptr("fd", fd), zap.Stringer("events", events))
	return nil
}

// Modify replaces the interest set of a registered descriptor.
func (r *epollReactor) Modify(fd uintptr, events FDEventType) error {
	if r.closed.Load() {
		return api.ErrReactorClosed
	}
	r.mu.RLock()
	_, ok := r.callbacks[fd]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("reactor: fd %d: %w", fd, api.ErrNotRegistered)
	}
	ev := unix.EpollEvent{Events: epollMask(events), Fd: int32(fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_MOD, int(fd), &ev); err != nil {
		return fmt.Errorf("epoll ctl mod: %w", err)
	}
	return nil
}

// Unregister removes a file descriptor from the epoll watch list.
func (r *epollReactor) Unregister(fd uintptr) error {
	if r.closed.Load() {
		return api.ErrReactorClosed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.callbacks[fd]; !ok {
		return fmt.Errorf("reactor: fd %d: %w", fd, api.ErrNotRegistered)
	}
	delete(r.callbacks, fd)
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, int(fd), nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	return nil
}

// Poll blocks up to timeoutMs and dispatches ready descriptors.
func (r *epollReactor) Poll(timeoutMs int) (int, error) {
	if r.closed.Load() {
		return 0, api.ErrReactorClosed
	}
	if timeoutMs < 0 {
		timeoutMs = -1
	}
	n, err := unix.EpollWait(r.epfd, r.events, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("epoll wait: %w", err)
	}

	handled := 0
	for i := 0; i < n; i++ {
		ev := r.events[i]
		fd := uintptr(ev.Fd)

		r.mu.RLock()
		cb, ok := r.callbacks[fd]
		r.mu.RUnlock()
		if !ok {
			continue
		}

		var ready FDEventType
		if ev.Events&unix.EPOLLIN != 0 {
			ready |= EventRead
		}
		if ev.Events&unix.EPOLLOUT != 0 {
			ready |= EventWrite
		}
		if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			ready |= EventError
		}
		dispatch(cb, fd, ready)
		handled++
	}
	return handled, nil
}

// Close closes the epoll instance.
func (r *epollReactor) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return unix.Close(r.epfd)
}
