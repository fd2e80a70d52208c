// Package rbfreelist implements a single-threaded, fixed-capacity
// dynamic memory allocator over one contiguous []byte buffer.
//
// Free and allocated regions ("chunks") are tracked by two instances of
// package rbtree's self-balancing ordered structure, both keyed by
// chunk size: one holds free chunks (serving best-fit placement), the
// other holds allocated chunks (serving release lookup by address).
// Every chunk begins with a header embedded directly in the buffer —
// see header.go — so the trees themselves never allocate: a node's
// storage is the chunk it describes.
//
// # Usage
//
//	a, err := rbfreelist.New(1024)
//	if err != nil {
//		// capacity too small to hold even one header
//	}
//	p, ok := a.Allocate(100, 1)
//	if !ok {
//		// no free chunk large enough (and alignable)
//	}
//	payload := a.Bytes(p, 100)
//	_ = a.Free(p, 100)
//
// # Scope
//
// There is no coalescing of adjacent free chunks, no defragmentation,
// no growth of the buffer, and no concurrency control — a caller
// sharing an *Allocator across goroutines must synchronize externally.
// Diagnostic logging, the raw buffer's acquisition from the host
// process, and any multi-strategy fallback wrapper are the concern of
// a surrounding abstraction, not this package.
package rbfreelist
