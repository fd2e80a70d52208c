package rbfreelist

import (
	"encoding/binary"

	"github.com/mikenye/rbfreelist/rbtree"
	"github.com/mikenye/rbfreelist/tree"
)

// Header field layout, written with encoding/binary rather than an
// unsafe.Pointer struct overlay: chunk/payload sizes are caller-chosen,
// so a header's start offset within the buffer is not guaranteed to
// satisfy any particular alignment, and Go only guarantees aligned
// struct-field access is safe when the struct itself starts aligned.
// encoding/binary reads and writes fixed-width fields byte-by-byte and
// carries no such requirement.
const (
	offChunkSize = 0
	offPadding   = 4
	offParent    = 8
	offLeft      = 12
	offRight     = 16
	offColor     = 20

	// headerSize is the fixed footprint of every chunk's embedded
	// header: chunk_size, padding, the three tree links, and the color
	// byte.
	headerSize = 21
)

// H is the header footprint in bytes, exported for callers that need
// to reason about minimum viable chunk size (H + 1).
const H int32 = headerSize

func (a *Allocator) header(n tree.Addr) []byte {
	return a.buf[int(n) : int(n)+headerSize]
}

func (a *Allocator) chunkSize(n tree.Addr) int32 {
	return int32(binary.LittleEndian.Uint32(a.header(n)[offChunkSize:]))
}

func (a *Allocator) setChunkSize(n tree.Addr, size int32) {
	binary.LittleEndian.PutUint32(a.header(n)[offChunkSize:], uint32(size))
}

func (a *Allocator) padding(n tree.Addr) int32 {
	return int32(binary.LittleEndian.Uint32(a.header(n)[offPadding:]))
}

func (a *Allocator) setPadding(n tree.Addr, p int32) {
	binary.LittleEndian.PutUint32(a.header(n)[offPadding:], uint32(p))
}

// Parent, SetParent, Left, SetLeft, Right and SetRight implement
// tree.Store: both the free and allocated trees share this one
// implementation, since a chunk is only ever a member of one tree at a
// time and its link fields are free to be overwritten when it moves
// between them.

func (a *Allocator) Parent(n tree.Addr) tree.Addr {
	return tree.Addr(int32(binary.LittleEndian.Uint32(a.header(n)[offParent:])))
}

func (a *Allocator) SetParent(n, p tree.Addr) {
	binary.LittleEndian.PutUint32(a.header(n)[offParent:], uint32(int32(p)))
}

func (a *Allocator) Left(n tree.Addr) tree.Addr {
	return tree.Addr(int32(binary.LittleEndian.Uint32(a.header(n)[offLeft:])))
}

func (a *Allocator) SetLeft(n, l tree.Addr) {
	binary.LittleEndian.PutUint32(a.header(n)[offLeft:], uint32(int32(l)))
}

func (a *Allocator) Right(n tree.Addr) tree.Addr {
	return tree.Addr(int32(binary.LittleEndian.Uint32(a.header(n)[offRight:])))
}

func (a *Allocator) SetRight(n, r tree.Addr) {
	binary.LittleEndian.PutUint32(a.header(n)[offRight:], uint32(int32(r)))
}

// Color and SetColor implement rbtree.Store.
func (a *Allocator) Color(n tree.Addr) rbtree.Color {
	if a.header(n)[offColor] == 1 {
		return rbtree.Black
	}
	return rbtree.Red
}

func (a *Allocator) SetColor(n tree.Addr, c rbtree.Color) {
	if c == rbtree.Black {
		a.header(n)[offColor] = 1
	} else {
		a.header(n)[offColor] = 0
	}
}

// writeHeader initializes a brand-new node's entire header: size,
// padding, null links, and color. Used at construction and whenever a
// split carves a fresh free chunk out of residue.
func (a *Allocator) writeHeader(n tree.Addr, chunkSize, padding int32, color rbtree.Color) {
	a.setChunkSize(n, chunkSize)
	a.setPadding(n, padding)
	a.SetParent(n, tree.Nil)
	a.SetLeft(n, tree.Nil)
	a.SetRight(n, tree.Nil)
	a.SetColor(n, color)
}
