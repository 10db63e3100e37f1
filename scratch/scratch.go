// Package scratch provides a bump-allocated arena for the transient
// buffers ring and glwe operations need (decomposition digits, DFT
// staging, wide accumulators), so that a call chain of evaluator
// methods can share one pre-sized backing array instead of allocating
// on every call.
//
// Implemented as a base pointer, length and running offset, where
// take-order determines drop-order. Lattigo itself has no direct
// equivalent since it pre-allocates fixed Buff* fields on each
// Evaluator (rlwe/evaluator.go) rather than a general-purpose arena;
// this is the idiom it would reach for if its buffers needed to vary
// in size per call.
package scratch

import (
	"fmt"
	"unsafe"
)

// Scratch is a bump arena over a single backing byte slice. Take
// carves aligned sub-slices off the front; there is no free for
// individual allocations, only Drop, which rewinds the offset to a
// previously recorded mark. Callers must release scratch in the exact
// reverse order they took it (take-order = drop-order), matching a
// stack discipline.
type Scratch struct {
	buf []byte
	off int
}

// New wraps buf as a fresh Scratch with nothing taken.
func New(buf []byte) *Scratch {
	return &Scratch{buf: buf}
}

// Len returns the total backing capacity in bytes.
func (s *Scratch) Len() int { return len(s.buf) }

// Avail returns the number of bytes not yet taken.
func (s *Scratch) Avail() int { return len(s.buf) - s.off }

// Mark returns the current offset, to be passed back to Drop once the
// caller is done with everything taken since.
func (s *Scratch) Mark() int { return s.off }

// Drop rewinds the arena to a mark obtained from Mark.
func (s *Scratch) Drop(mark int) {
	if mark < 0 || mark > s.off {
		panic(fmt.Errorf("scratch.Drop: invalid mark %d (current offset %d)", mark, s.off))
	}
	s.off = mark
}

// TakeBytes carves n bytes off the front of the arena.
func (s *Scratch) TakeBytes(n int) []byte {
	if n < 0 {
		panic(fmt.Errorf("scratch.TakeBytes: negative length %d", n))
	}
	if s.off+n > len(s.buf) {
		panic(fmt.Errorf("scratch.TakeBytes: out of space (want %d, have %d)", n, s.Avail()))
	}
	b := s.buf[s.off : s.off+n : s.off+n]
	s.off += n
	return b
}

// TakeInt64 carves n int64 words off the front of the arena.
func (s *Scratch) TakeInt64(n int) []int64 {
	return Take[int64](s, n)
}

// Take carves n elements of T off the front of the arena, reinterpreting
// the underlying bytes. T must be a fixed-size numeric or struct type
// with no pointers (int64, complex128, the ring package's Int128). In
// this tree it is instantiated only with int64, via TakeInt64 (used by
// glwe.Evaluator); the ring and gadget packages do not use scratch.
func Take[T any](s *Scratch, n int) []T {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 || n == 0 {
		return make([]T, n)
	}
	raw := s.TakeBytes(n*sz + sz) // + sz slack for alignment rounding
	base := unsafe.Pointer(&raw[0])
	aligned := (uintptr(base) + uintptr(sz) - 1) &^ (uintptr(sz) - 1)
	return unsafe.Slice((*T)(unsafe.Pointer(aligned)), n)
}
