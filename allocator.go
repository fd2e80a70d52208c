package rbfreelist

import (
	"fmt"

	"github.com/mikenye/rbfreelist/rbtree"
	"github.com/mikenye/rbfreelist/tree"
)

// Addr identifies a byte offset into an Allocator's buffer. It is an
// alias for tree.Addr so callers never need to import package tree
// themselves.
type Addr = tree.Addr

// Nil is the address returned on allocation failure.
const Nil = tree.Nil

// Allocator manages a single fixed-capacity buffer, handing out aligned
// byte regions on request and reclaiming them on release.
//
// An Allocator is not safe for concurrent use; callers sharing one
// across goroutines must synchronize externally.
type Allocator struct {
	buf       []byte
	capacity  int32
	free      *rbtree.Tree
	allocated *rbtree.Tree
}

func sizeLess(a *Allocator) tree.LessFunc {
	return func(x, y tree.Addr) bool {
		return a.chunkSize(x) < a.chunkSize(y)
	}
}

// New constructs an Allocator over a freshly obtained buffer of the
// given capacity. capacity must exceed the header size H, since a
// buffer that cannot even hold one header plus a single payload byte
// cannot service any request.
func New(capacity uint32) (*Allocator, error) {
	if capacity <= uint32(headerSize) {
		return nil, fmt.Errorf("rbfreelist: capacity %d must exceed header size %d", capacity, headerSize)
	}

	a := &Allocator{
		buf:      make([]byte, capacity),
		capacity: int32(capacity),
	}
	a.free = rbtree.New(a, sizeLess(a))
	a.allocated = rbtree.New(a, sizeLess(a))

	a.writeHeader(0, a.capacity, 0, rbtree.Red)
	a.free.Insert(0)

	return a, nil
}

// Close releases the Allocator's buffer. Any address returned by a
// prior Allocate becomes invalid; the caller must not use it again.
func (a *Allocator) Close() {
	a.buf = nil
	a.free = nil
	a.allocated = nil
}

// Capacity returns the total buffer size the Allocator was constructed
// with.
func (a *Allocator) Capacity() int32 {
	return a.capacity
}

// Bytes returns the payload window of size bytes starting at addr, for
// the caller to read or write. The caller must not read or write
// outside [addr, addr+size).
func (a *Allocator) Bytes(addr tree.Addr, size int32) []byte {
	return a.buf[int(addr) : int(addr)+int(size)]
}
