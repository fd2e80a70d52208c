package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a trivial slice-backed Store used only by these tests:
// node i's links live at index i. It stands in for the allocator's
// buffer-backed header encoding exercised elsewhere in this module.
type memStore struct {
	parent, left, right []Addr
}

func newMemStore(n int) *memStore {
	s := &memStore{
		parent: make([]Addr, n),
		left:   make([]Addr, n),
		right:  make([]Addr, n),
	}
	for i := range s.parent {
		s.parent[i], s.left[i], s.right[i] = Nil, Nil, Nil
	}
	return s
}

func (s *memStore) Parent(n Addr) Addr { return s.parent[n] }
func (s *memStore) SetParent(n, p Addr) { s.parent[n] = p }
func (s *memStore) Left(n Addr) Addr { return s.left[n] }
func (s *memStore) SetLeft(n, l Addr) { s.left[n] = l }
func (s *memStore) Right(n Addr) Addr { return s.right[n] }
func (s *memStore) SetRight(n, r Addr) { s.right[n] = r }

func intLess(keys []int) LessFunc {
	return func(a, b Addr) bool {
		return keys[a] < keys[b]
	}
}

func TestNew(t *testing.T) {
	store := newMemStore(1)
	tr := New(store, intLess(nil))
	assert.NoError(t, tr.IsBSTValid(), "expected valid empty tree")
	assert.True(t, tr.IsNil(tr.Root()), "expected new tree to have nil root")
}

func TestTree_InsertFind(t *testing.T) {
	keys := []int{12, 5, 2, 9, 18, 15, 19, 13, 17, 20}
	store := newMemStore(len(keys))
	tr := New(store, intLess(keys))

	for i := range keys {
		tr.Insert(Addr(i))
	}

	require.NoError(t, tr.IsBSTValid(), "expected valid tree after insert")

	// Find locates 15 (index 5) via three-way predicate descent.
	target := 15
	found := tr.Find(func(candidate Addr) int {
		switch {
		case keys[candidate] < target:
			return 1
		case keys[candidate] > target:
			return -1
		default:
			return 0
		}
	})
	require.False(t, tr.IsNil(found))
	assert.Equal(t, target, keys[found])
}

func TestTree_InsertTiesGoRight(t *testing.T) {
	keys := []int{10, 10, 10}
	store := newMemStore(len(keys))
	tr := New(store, intLess(keys))

	for i := range keys {
		tr.Insert(Addr(i))
	}
	require.NoError(t, tr.IsBSTValid())

	// in-order traversal should visit insertion order since all keys tie
	var order []Addr
	tr.TraverseInOrder(tr.Root(), func(n Addr) bool {
		order = append(order, n)
		return true
	})
	assert.Equal(t, []Addr{0, 1, 2}, order)
}

func TestTree_RemoveLeaf(t *testing.T) {
	keys := []int{12, 5, 18}
	store := newMemStore(len(keys))
	tr := New(store, intLess(keys))
	for i := range keys {
		tr.Insert(Addr(i))
	}

	spliced, _ := tr.Remove(Addr(1)) // leaf "5"
	assert.Equal(t, Addr(1), spliced)
	require.NoError(t, tr.IsBSTValid())

	var remaining []int
	tr.TraverseInOrder(tr.Root(), func(n Addr) bool {
		remaining = append(remaining, keys[n])
		return true
	})
	assert.Equal(t, []int{12, 18}, remaining)
}

func TestTree_RemoveTwoChildren(t *testing.T) {
	keys := []int{12, 5, 18, 2, 9, 15, 20}
	store := newMemStore(len(keys))
	tr := New(store, intLess(keys))
	for i := range keys {
		tr.Insert(Addr(i))
	}
	require.NoError(t, tr.IsBSTValid())

	spliced, _ := tr.Remove(Addr(0)) // root "12" has two children
	require.NoError(t, tr.IsBSTValid())
	// successor of 12 is 15 (index 5): its own address, not 12's, should
	// now occupy the structural root.
	assert.Equal(t, Addr(5), spliced)
	assert.Equal(t, Addr(5), tr.Root())

	var remaining []int
	tr.TraverseInOrder(tr.Root(), func(n Addr) bool {
		remaining = append(remaining, keys[n])
		return true
	})
	assert.Equal(t, []int{2, 5, 9, 15, 18, 20}, remaining)
}

func TestTree_MinMaxSuccessorPredecessor(t *testing.T) {
	keys := []int{12, 5, 18, 2, 9, 15, 20}
	store := newMemStore(len(keys))
	tr := New(store, intLess(keys))
	for i := range keys {
		tr.Insert(Addr(i))
	}

	assert.Equal(t, 2, keys[tr.Min(tr.Root())])
	assert.Equal(t, 20, keys[tr.Max(tr.Root())])

	succ := tr.Successor(Addr(0)) // successor of 12
	assert.Equal(t, 15, keys[succ])

	pred := tr.Predecessor(Addr(0)) // predecessor of 12
	assert.Equal(t, 9, keys[pred])
}

func TestTree_Rotations(t *testing.T) {
	keys := []int{1, 2, 3}
	store := newMemStore(len(keys))
	tr := New(store, intLess(keys))
	for i := range keys {
		tr.Insert(Addr(i)) // builds a right-leaning chain: 1 -> 2 -> 3
	}
	require.NoError(t, tr.IsBSTValid())

	tr.RotateLeft(Addr(0))
	require.NoError(t, tr.IsBSTValid())
	assert.Equal(t, Addr(1), tr.Root())
	assert.Equal(t, Addr(0), tr.Left(tr.Root()))
	assert.Equal(t, Addr(2), tr.Right(tr.Root()))

	tr.RotateRight(tr.Root())
	require.NoError(t, tr.IsBSTValid())
	assert.Equal(t, Addr(0), tr.Root())
}
