// Package rbtree adds Red-Black balancing on top of package tree.
//
// This package extends tree.Tree, adding automatic balancing by ensuring
// that:
//   - The tree remains approximately balanced, maintaining O(log n)
//     insertions, deletions, and lookups.
//   - No two consecutive red nodes appear on a path.
//   - All paths from the root to a leaf contain the same number of
//     black nodes.
//
// Unlike a typical Red-Black Tree keyed by a caller-supplied value,
// nodes here are identified by their address in a buffer the [Store]
// implementation owns (see package rbfreelist); color, like every other
// structural field, lives in that node's own header and is read/written
// through the Store, never copied as satellite data between addresses.
//
// # Limitations
//
//   - Not thread-safe — requires external synchronization for
//     concurrent use.
//   - Duplicate keys (ties) are permitted; see [tree.Tree.Insert].
package rbtree

import (
	"fmt"

	"github.com/mikenye/rbfreelist/tree"
)

// Color represents the color of a node in a Red-Black Tree.
type Color bool

const (
	Red   Color = false
	Black Color = true
)

// String returns a short textual representation of the color, used by
// diagnostics and test failure messages.
func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "red"
}

// Store is the link-and-color accessor a Tree uses to read and write
// node structure. It embeds tree.Store so a single concrete type (the
// allocator) can satisfy both the unbalanced descent layer and this
// balancing layer with one method set.
type Store interface {
	tree.Store
	Color(n tree.Addr) Color
	SetColor(n tree.Addr, c Color)
}

// Tree is a Red-Black Tree built on top of a tree.Tree, adding color
// metadata, insertion/deletion fixup, and invariant validation.
type Tree struct {
	*tree.Tree
	store Store
	size  int
}

// New creates an empty Red-Black Tree backed by store, ordered by less.
func New(store Store, less tree.LessFunc) *Tree {
	return &Tree{
		Tree:  tree.New(store, less),
		store: store,
	}
}

// color returns n's color, treating tree.Nil as black (a leaf carries
// no header, but by definition counts as a black leaf for every
// invariant check).
func (t *Tree) color(n tree.Addr) Color {
	if n == tree.Nil {
		return Black
	}
	return t.store.Color(n)
}

func (t *Tree) isBlack(n tree.Addr) bool {
	return t.color(n) == Black
}

func (t *Tree) isRed(n tree.Addr) bool {
	return n != tree.Nil && t.store.Color(n) == Red
}

func (t *Tree) setColor(n tree.Addr, c Color) {
	if n != tree.Nil {
		t.store.SetColor(n, c)
	}
}

// Size returns the number of nodes currently in the tree.
func (t *Tree) Size() int {
	return t.size
}

// Insert links n into the tree (via the embedded tree.Tree's ordinary
// BST descent), colors it red, and restores Red-Black balance.
//
// The caller must have already written n's own non-structural fields
// (e.g. chunk_size) before calling Insert; Insert only ever touches n's
// parent/left/right/color fields.
func (t *Tree) Insert(n tree.Addr) {
	t.setColor(n, Red)
	t.Tree.Insert(n)
	t.insertFixup(n)
	t.size++
}

// insertFixup restores the Red-Black invariants after inserting a red
// leaf, applying the three classical cases iteratively until balance
// is restored.
//
// The loop body runs only while z's parent is red. The root is always
// black, so a red parent is never the root and z's grandparent always
// exists there; it is read without a Nil check.
func (t *Tree) insertFixup(z tree.Addr) {
	for t.isRed(t.Parent(z)) {
		if t.Parent(z) == t.Left(t.Parent(t.Parent(z))) {
			y := t.Right(t.Parent(t.Parent(z))) // uncle
			if t.isRed(y) {
				// case 1: parent and uncle both red
				t.setColor(t.Parent(z), Black)
				t.setColor(y, Black)
				t.setColor(t.Parent(t.Parent(z)), Red)
				z = t.Parent(t.Parent(z))
			} else {
				if z == t.Right(t.Parent(z)) {
					// case 2: z is a right child
					z = t.Parent(z)
					t.RotateLeft(z)
				}
				// case 3: z is a left child
				t.setColor(t.Parent(z), Black)
				t.setColor(t.Parent(t.Parent(z)), Red)
				t.RotateRight(t.Parent(t.Parent(z)))
			}
		} else {
			// mirror image, left and right exchanged
			y := t.Left(t.Parent(t.Parent(z)))
			if t.isRed(y) {
				t.setColor(t.Parent(z), Black)
				t.setColor(y, Black)
				t.setColor(t.Parent(t.Parent(z)), Red)
				z = t.Parent(t.Parent(z))
			} else {
				if z == t.Left(t.Parent(z)) {
					z = t.Parent(z)
					t.RotateRight(z)
				}
				t.setColor(t.Parent(z), Black)
				t.setColor(t.Parent(t.Parent(z)), Red)
				t.RotateLeft(t.Parent(t.Parent(z)))
			}
		}
	}
	t.setColor(t.Root(), Black)
}

// Delete removes node z from the tree, restoring Red-Black balance.
//
// When z has two children, its in-order successor is spliced into z's
// structural position (see tree.Tree.Remove) and inherits z's color,
// since color describes a tree *position*, not the chunk at an
// address — it is safe, and necessary, for it to move independently of
// chunk_size/padding, which stay at their own addresses.
//
// Fixup runs only when the node actually removed from the tree's link
// structure was black AND a real node moved up to take its place. When
// nothing moved up (the removed node had no children), there is no
// stored parent pointer to walk back up from a bare tree.Nil, so
// fixup is skipped even though the removed color was black — the
// reference implementation this module follows has the same early
// exit, and it is preserved here rather than patched to the textbook
// sentinel-based treatment.
func (t *Tree) Delete(z tree.Addr) bool {
	if z == tree.Nil {
		return false
	}

	twoChildren := t.Left(z) != tree.Nil && t.Right(z) != tree.Nil

	var (
		removedColor Color
		inheritColor Color
	)
	if twoChildren {
		successor := t.Min(t.Right(z))
		removedColor = t.color(successor)
		inheritColor = t.color(z)
	} else {
		removedColor = t.color(z)
	}

	spliced, fixUpTarget := t.Tree.Remove(z)

	if twoChildren {
		t.setColor(spliced, inheritColor)
	}

	if removedColor == Black && fixUpTarget != tree.Nil {
		t.deleteFixup(fixUpTarget)
	}

	t.size--
	return true
}

// deleteFixup restores Red-Black balance after removing a black node,
// applying the four classical cases iteratively until balance is
// restored.
func (t *Tree) deleteFixup(x tree.Addr) {
	for x != t.Root() && t.isBlack(x) {
		if x == t.Left(t.Parent(x)) {
			w := t.Right(t.Parent(x))
			if t.isRed(w) {
				// case 1
				t.setColor(w, Black)
				t.setColor(t.Parent(x), Red)
				t.RotateLeft(t.Parent(x))
				w = t.Right(t.Parent(x))
			}
			if t.isBlack(t.Left(w)) && t.isBlack(t.Right(w)) {
				// case 2
				t.setColor(w, Red)
				x = t.Parent(x)
			} else {
				if t.isBlack(t.Right(w)) {
					// case 3
					t.setColor(t.Left(w), Black)
					t.setColor(w, Red)
					t.RotateRight(w)
					w = t.Right(t.Parent(x))
				}
				// case 4
				t.setColor(w, t.color(t.Parent(x)))
				t.setColor(t.Parent(x), Black)
				t.setColor(t.Right(w), Black)
				t.RotateLeft(t.Parent(x))
				x = t.Root()
			}
		} else {
			// mirror image, left and right exchanged
			w := t.Left(t.Parent(x))
			if t.isRed(w) {
				t.setColor(w, Black)
				t.setColor(t.Parent(x), Red)
				t.RotateRight(t.Parent(x))
				w = t.Left(t.Parent(x))
			}
			if t.isBlack(t.Right(w)) && t.isBlack(t.Left(w)) {
				t.setColor(w, Red)
				x = t.Parent(x)
			} else {
				if t.isBlack(t.Left(w)) {
					t.setColor(t.Right(w), Black)
					t.setColor(w, Red)
					t.RotateLeft(w)
					w = t.Left(t.Parent(x))
				}
				t.setColor(w, t.color(t.Parent(x)))
				t.setColor(t.Parent(x), Black)
				t.setColor(t.Left(w), Black)
				t.RotateRight(t.Parent(x))
				x = t.Root()
			}
		}
	}
	t.setColor(x, Black)
}

// IsTreeValid verifies the underlying BST ordering plus all five
// Red-Black invariants:
//  1. every node is red or black — enforced by Color's type;
//  2. the root is black;
//  3. every leaf (tree.Nil) is black — true by definition, see [Tree.color];
//  4. a red node never has a red child;
//  5. every root-to-leaf path has the same black-node count.
func (t *Tree) IsTreeValid() error {
	if err := t.Tree.IsBSTValid(); err != nil {
		return fmt.Errorf("rbtree: underlying BST is invalid: %w", err)
	}

	if !t.isBlack(t.Root()) {
		return fmt.Errorf("rbtree: root node is not black")
	}

	var (
		err           error
		sawFirstLeaf  bool
		expectedCount int
	)
	t.TraverseInOrder(t.Root(), func(n tree.Addr) bool {
		if t.isRed(n) && t.isRed(t.Left(n)) {
			err = fmt.Errorf("rbtree: node %d is red with a red left child", n)
			return false
		}
		if t.isRed(n) && t.isRed(t.Right(n)) {
			err = fmt.Errorf("rbtree: node %d is red with a red right child", n)
			return false
		}
		if t.Left(n) != tree.Nil && t.Right(n) != tree.Nil {
			return true // only measure black-height from leaves/unary nodes
		}
		count := 0
		for cur := n; cur != tree.Nil; cur = t.Parent(cur) {
			if t.isBlack(cur) {
				count++
			}
		}
		if !sawFirstLeaf {
			expectedCount = count
			sawFirstLeaf = true
			return true
		}
		if count != expectedCount {
			err = fmt.Errorf("rbtree: node %d has a black-height mismatch", n)
			return false
		}
		return true
	})
	return err
}
