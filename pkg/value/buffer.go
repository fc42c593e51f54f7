package value

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// ElementSize returns the byte size of one element of kind k, for the
// buffered kinds (DOUBLE, COMPLEX, LOGICAL, CHAR).
func ElementSize(k Kind) int {
	switch k {
	case DOUBLE:
		return 8
	case COMPLEX:
		return 16 // interleaved (re, im) float64 pair
	case LOGICAL, CHAR:
		return 1
	default:
		return 0
	}
}

// Buffer is the reference-counted, column-major byte buffer backing
// a buffered Value (spec §3.3's invariant "buffer_bytes = elements *
// element_size(kind)"). Sharing and copy-on-write are implemented
// exactly as spec §4.3 describes: assignment bumps refCount (through
// Value.Share), any mutating access detaches first.
type Buffer struct {
	alloc    Allocator
	data     []byte
	refCount *atomic.Int32
}

// NewBuffer allocates a zeroed buffer of n elements of elemSize bytes
// each, through alloc (or value.DefaultAllocator if alloc is nil).
func NewBuffer(alloc Allocator, elemSize, n int) *Buffer {
	if alloc == nil {
		alloc = DefaultAllocator
	}
	b := &Buffer{alloc: alloc, data: alloc.Allocate(elemSize * n), refCount: new(atomic.Int32)}
	b.refCount.Store(1)
	return b
}

// AddRef increments the reference count; called when a Value sharing
// this buffer is copied (spec §4.3).
func (b *Buffer) AddRef() {
	if b != nil {
		b.refCount.Add(1)
	}
}

// Release decrements the reference count, freeing the underlying
// bytes through the allocator if it reaches zero.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	if b.refCount.Add(-1) == 0 {
		b.alloc.Free(b.data)
	}
}

// Shared reports count > 1, the condition spec §4.3 requires a
// mutating access to check before writing in place.
func (b *Buffer) Shared() bool { return b != nil && b.refCount.Load() > 1 }

// Detach returns a uniquely-owned buffer with the same content as b:
// b itself if already unique, or a fresh byte-copy (with b's count
// decremented) otherwise. This is spec §4.3's "detach" step.
func (b *Buffer) Detach() *Buffer {
	if b == nil || !b.Shared() {
		return b
	}
	nb := NewBuffer(b.alloc, 1, len(b.data))
	copy(nb.data, b.data)
	b.Release()
	return nb
}

func (b *Buffer) Len() int { return len(b.data) }

func (b *Buffer) GetFloat64(i int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b.data[i*8:]))
}

func (b *Buffer) SetFloat64(i int, v float64) {
	binary.LittleEndian.PutUint64(b.data[i*8:], math.Float64bits(v))
}

func (b *Buffer) GetComplex(i int) (re, im float64) {
	return b.GetFloat64(2 * i), b.GetFloat64(2*i + 1)
}

func (b *Buffer) SetComplex(i int, re, im float64) {
	b.SetFloat64(2*i, re)
	b.SetFloat64(2*i+1, im)
}

func (b *Buffer) GetByte(i int) byte     { return b.data[i] }
func (b *Buffer) SetByte(i int, v byte)  { b.data[i] = v }

// Grow returns a new buffer of n elements of elemSize bytes holding
// b's content followed by zero bytes, without mutating b (the caller
// is responsible for releasing the old buffer once the resize is
// committed to a Value).
func (b *Buffer) Grow(elemSize, n int) *Buffer {
	nb := NewBuffer(b.alloc, elemSize, n)
	copy(nb.data, b.data)
	return nb
}
