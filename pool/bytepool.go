// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

// MaxDatagram is the largest UDP-Lite payload over IPv4 or IPv6 without
// jumbograms.
const MaxDatagram = 65535

// BytePool hands out byte slices of up to size bytes. Slices are kept behind
// a pointer so Put does not allocate.
type BytePool struct {
	size int
	sp   *SyncPool[*[]byte]
}

// NewBytePool returns a pool of slices with capacity size. A size outside
// 1..MaxDatagram is clamped to MaxDatagram.
func NewBytePool(size int) *BytePool {
	if size <= 0 || size > MaxDatagram {
		size = MaxDatagram
	}
	return &BytePool{
		size: size,
		sp: NewSyncPool(func() *[]byte {
			b := make([]byte, size)
			return &b
		}),
	}
}

// Size returns the capacity of every slice in the pool.
func (b *BytePool) Size() int { return b.size }

// Get returns a slice of length n. n above Size is truncated to Size.
func (b *BytePool) Get(n int) []byte {
	if n > b.size {
		n = b.size
	}
	return (*b.sp.Get())[:n]
}

// Copy returns a pooled copy of p, truncated to Size.
func (b *BytePool) Copy(p []byte) []byte {
	buf := b.Get(len(p))
	copy(buf, p)
	return buf
}

// Put returns buf to the pool. Slices not obtained from this pool are
// ignored.
func (b *BytePool) Put(buf []byte) {
	if cap(buf) != b.size {
		return
	}
	buf = buf[:b.size]
	b.sp.Put(&buf)
}
