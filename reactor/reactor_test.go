//go:build linux || freebsd

// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package reactor_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/momentics/hioload-udplite/api"
	"github.com/momentics/hioload-udplite/reactor"
)

type fileSource struct{ f *os.File }

func (s fileSource) RawFD() uintptr { return s.f.Fd() }

func newPipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r, w
}

func newReactor(t *testing.T) reactor.EventReactor {
	t.Helper()
	r, err := reactor.NewReactor()
	if err != nil {
		t.Fatalf("NewReactor: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestReactor_ReadReadiness(t *testing.T) {
	r := newReactor(t)
	pr, pw := newPipe(t)

	var got reactor.FDEventType
	calls := 0
	err := reactor.RegisterSource(r, fileSource{pr}, reactor.EventRead, func(fd uintptr, ev reactor.FDEventType) {
		calls++
		got = ev
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if n, err := r.Poll(0); err != nil || n != 0 {
		t.Fatalf("Poll on idle pipe = %d, %v", n, err)
	}

	if _, err := pw.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	n, err := r.Poll(1000)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if n != 1 || calls != 1 {
		t.Fatalf("Poll dispatched %d (calls %d), want 1", n, calls)
	}
	if got&reactor.EventRead == 0 {
		t.Errorf("events = %v, want read", got)
	}
}

func TestReactor_ModifyAndUnregister(t *testing.T) {
	r := newReactor(t)
	_, pw := newPipe(t)
	fd := pw.Fd()

	var got reactor.FDEventType
	if err := r.Register(fd, reactor.EventRead, func(_ uintptr, ev reactor.FDEventType) { got = ev }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if n, _ := r.Poll(0); n != 0 {
		t.Fatalf("write end reported readable")
	}

	if err := r.Modify(fd, reactor.EventWrite); err != nil {
		t.Fatalf("Modify: %v", err)
	}
	if n, err := r.Poll(1000); err != nil || n != 1 {
		t.Fatalf("Poll after Modify = %d, %v", n, err)
	}
	if got&reactor.EventWrite == 0 {
		t.Errorf("events = %v, want write", got)
	}

	if err := r.Unregister(fd); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if n, _ := r.Poll(0); n != 0 {
		t.Errorf("unregistered fd dispatched")
	}
	if err := r.Unregister(fd); !errors.Is(err, api.ErrNotRegistered) {
		t.Errorf("second Unregister: %v", err)
	}
	if err := r.Modify(fd, reactor.EventRead); !errors.Is(err, api.ErrNotRegistered) {
		t.Errorf("Modify after Unregister: %v", err)
	}
}

func TestReactor_CallbackPanicContained(t *testing.T) {
	r := newReactor(t)
	_, pw := newPipe(t)

	err := r.Register(pw.Fd(), reactor.EventWrite, func(uintptr, reactor.FDEventType) {
		panic("boom")
	})
	if err != nil {
		t.Fatal(err)
	}
	if n, err := r.Poll(1000); err != nil || n != 1 {
		t.Fatalf("Poll = %d, %v", n, err)
	}
}

func TestReactor_Closed(t *testing.T) {
	r, err := reactor.NewReactor()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := r.Poll(0); !errors.Is(err, api.ErrReactorClosed) {
		t.Errorf("Poll after Close: %v", err)
	}
	if err := r.Register(0, reactor.EventRead, func(uintptr, reactor.FDEventType) {}); !errors.Is(err, api.ErrReactorClosed) {
		t.Errorf("Register after Close: %v", err)
	}
}

func TestReactor_Validation(t *testing.T) {
	if _, err := reactor.NewReactorSize(0); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("NewReactorSize(0): %v", err)
	}
	r := newReactor(t)
	pr, _ := newPipe(t)
	if err := r.Register(pr.Fd(), reactor.EventRead, nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("nil callback: %v", err)
	}
}

func TestLoop_StopsOnCancel(t *testing.T) {
	r := newReactor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := reactor.Loop(ctx, r, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("Loop = %v, want context.Canceled", err)
	}
}

func TestFDEventType_String(t *testing.T) {
	cases := map[reactor.FDEventType]string{
		0:                                              "none",
		reactor.EventRead:                              "read",
		reactor.EventRead | reactor.EventWrite:         "read|write",
		reactor.EventWrite | reactor.EventEdgeTriggered: "write|edge",
	}
	for ev, want := range cases {
		if got := ev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", ev, got, want)
		}
	}
}
