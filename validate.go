package rbfreelist

import (
	"fmt"
	"sort"

	"github.com/mikenye/rbfreelist/rbtree"
	"github.com/mikenye/rbfreelist/tree"
)

// Validate checks every invariant an Allocator is expected to hold at
// rest (i.e. between public operations): both trees' own Red-Black
// invariants, the partition of the buffer between them, non-overlap
// and back-to-back coverage by address, disjointness across trees, and
// residue viability. It is intended for use in tests after every
// Allocate/Free, not on any hot path.
func (a *Allocator) Validate() error {
	if err := a.free.IsTreeValid(); err != nil {
		return fmt.Errorf("rbfreelist: free tree invalid: %w", err)
	}
	if err := a.allocated.IsTreeValid(); err != nil {
		return fmt.Errorf("rbfreelist: allocated tree invalid: %w", err)
	}

	type chunk struct {
		addr tree.Addr
		size int32
	}
	var chunks []chunk
	seen := make(map[tree.Addr]bool)

	collect := func(t *rbtree.Tree) error {
		var err error
		t.TraverseInOrder(t.Root(), func(n tree.Addr) bool {
			if seen[n] {
				err = fmt.Errorf("rbfreelist: chunk at %d present in both trees", n)
				return false
			}
			seen[n] = true
			size := a.chunkSize(n)
			if size >= 1 && size <= H {
				err = fmt.Errorf("rbfreelist: chunk at %d has unviable size %d", n, size)
				return false
			}
			chunks = append(chunks, chunk{addr: n, size: size})
			return true
		})
		return err
	}
	if err := collect(a.free); err != nil {
		return err
	}
	if err := collect(a.allocated); err != nil {
		return err
	}

	var total int64
	for _, c := range chunks {
		total += int64(c.size)
	}
	if total != int64(a.capacity) {
		return fmt.Errorf("rbfreelist: chunk sizes sum to %d, want capacity %d", total, a.capacity)
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].addr < chunks[j].addr })
	var cursor int32
	for _, c := range chunks {
		if int32(c.addr) != cursor {
			return fmt.Errorf("rbfreelist: gap or overlap before chunk at %d (expected start %d)", c.addr, cursor)
		}
		cursor += c.size
	}
	if cursor != a.capacity {
		return fmt.Errorf("rbfreelist: chunks cover %d bytes, want %d", cursor, a.capacity)
	}

	return nil
}
