// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package pool_test

import (
	"testing"

	"github.com/momentics/hioload-udplite/pool"
)

func TestBytePoolReuse(t *testing.T) {
	bp := pool.NewBytePool(128)
	b1 := bp.Get(100)
	if len(b1) != 100 || cap(b1) != 128 {
		t.Fatalf("Get(100): len %d cap %d", len(b1), cap(b1))
	}
	bp.Put(b1)
	b2 := bp.Get(64)
	// b2 may reuse b1's storage; either way its capacity matches the pool
	if cap(b2) != 128 {
		t.Error("Buffer capacity mismatch; reuse failed")
	}
}

func TestBytePoolCopy(t *testing.T) {
	bp := pool.NewBytePool(4)
	got := bp.Copy([]byte("datagram"))
	if string(got) != "data" {
		t.Fatalf("Copy truncated to %q, want %q", got, "data")
	}
}

func TestBytePoolClamp(t *testing.T) {
	for _, size := range []int{0, -1, pool.MaxDatagram + 1} {
		if got := pool.NewBytePool(size).Size(); got != pool.MaxDatagram {
			t.Errorf("NewBytePool(%d).Size() = %d", size, got)
		}
	}
}

func TestBytePoolPutForeign(t *testing.T) {
	bp := pool.NewBytePool(16)
	bp.Put(make([]byte, 8))
	if b := bp.Get(16); cap(b) != 16 {
		t.Fatalf("foreign slice leaked into pool: cap %d", cap(b))
	}
}

func TestSyncPool(t *testing.T) {
	var created int
	sp := pool.NewSyncPool(func() *int {
		created++
		v := created
		return &v
	})
	var op pool.ObjectPool[*int] = sp
	v := op.Get()
	if *v != 1 {
		t.Fatalf("first object = %d", *v)
	}
	op.Put(v)
}
