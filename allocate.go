package rbfreelist

import (
	"fmt"

	"github.com/mikenye/rbfreelist/rbtree"
	"github.com/mikenye/rbfreelist/tree"
)

// alignUp rounds p up to the next multiple of alignment.
func alignUp(p, alignment int32) int32 {
	return ((p + alignment - 1) / alignment) * alignment
}

// Allocate reserves a chunk able to host size bytes aligned to
// alignment, returning the payload address and true on success, or
// (Nil, false) if no free chunk can satisfy the request.
//
// size must be >= 1 and alignment must be a power of two >= 1; either
// violation is a contract violation, not a recoverable failure, and
// panics — mirroring the reference implementation's hard assertions
// rather than returning an error a caller might paper over.
func (a *Allocator) Allocate(size, alignment int32) (tree.Addr, bool) {
	if size < 1 {
		panic(fmt.Errorf("rbfreelist: size must be >= 1, got %d", size))
	}
	if alignment < 1 || alignment&(alignment-1) != 0 {
		panic(fmt.Errorf("rbfreelist: alignment must be a power of two >= 1, got %d", alignment))
	}

	needed := size + H

	// Find descends a single path. An acceptable chunk is remembered and
	// the search goes on left, toward smaller chunks, so the smallest
	// acceptable chunk on that path is the one taken. A chunk rejected
	// for alignment or residue reasons is reported the same way as a
	// too-small chunk ("go right", toward larger candidates) — this
	// mirrors RBFreeListAllocator.cpp's own best-fit search, which
	// reports a chunk rejected for alignment/residue the same way as an
	// undersized one. This can in principle skip an equal-or-larger
	// chunk that would have worked further down a path already
	// abandoned; it is the reference's own trade-off, preserved here
	// rather than replaced with an iterator that probes every alignable
	// candidate.
	n := tree.Nil
	a.free.Find(func(cand tree.Addr) int {
		chunkSize := a.chunkSize(cand)
		if chunkSize < needed {
			return 1
		}
		p0 := int32(cand) + H
		p := alignUp(p0, alignment)
		if p+size > int32(cand)+chunkSize {
			return 1
		}
		allocatedSpan := (p + size) - int32(cand)
		residue := chunkSize - allocatedSpan
		if residue > 0 && residue <= H {
			return 1
		}
		n = cand
		return -1
	})
	if n == tree.Nil {
		return tree.Nil, false
	}

	oldChunkSize := a.chunkSize(n)
	p0 := int32(n) + H
	p := alignUp(p0, alignment)
	padding := p - p0
	allocatedSpan := (p + size) - int32(n)

	a.free.Delete(n)

	a.setChunkSize(n, allocatedSpan)
	a.setPadding(n, padding)

	if oldChunkSize != allocatedSpan {
		residueAddr := n + tree.Addr(allocatedSpan)
		a.writeHeader(residueAddr, oldChunkSize-allocatedSpan, 0, rbtree.Red)
		a.free.Insert(residueAddr)
	}

	a.allocated.Insert(n)

	return tree.Addr(p), true
}
