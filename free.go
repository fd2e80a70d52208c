package rbfreelist

import "github.com/mikenye/rbfreelist/tree"

// Free returns the chunk that was allocated at address with the given
// size back to the free pool. size must equal the size passed to the
// Allocate call that produced address.
//
// Free reports whether a matching allocated chunk was found. A
// mismatched address or size is a no-op, not an error: without
// provenance tracking the core cannot distinguish "already freed" from
// "never allocated" from "wrong size passed", so it silently ignores
// the call rather than risk destabilizing a caller that, for instance,
// frees an object that outlived its region. Callers wanting a
// diagnostic should check the returned bool themselves.
func (a *Allocator) Free(address tree.Addr, size int32) bool {
	targetBlock := size + H

	n := a.allocated.Find(func(cand tree.Addr) int {
		chunkSize := a.chunkSize(cand)
		switch {
		case chunkSize < targetBlock:
			return 1
		case chunkSize > targetBlock:
			return -1
		}
		return 0
	})
	// Rotations can leave nodes of this exact size on either side of n,
	// so rewind to the start of that equal-sized in-order run and scan
	// it for the reconstructed payload address.
	for p := a.allocated.Predecessor(n); p != tree.Nil && a.chunkSize(p) == targetBlock; p = a.allocated.Predecessor(p) {
		n = p
	}
	for n != tree.Nil && a.chunkSize(n) == targetBlock && int32(n)+H+a.padding(n) != int32(address) {
		n = a.allocated.Successor(n)
	}
	if n == tree.Nil || a.chunkSize(n) != targetBlock {
		return false
	}

	a.allocated.Delete(n)
	a.free.Insert(n)
	return true
}
