// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package arena implements region allocators whose contents are released all
// at once rather than individually.
//
// A Heap hands out byte slices carved from a chain of fixed-minimum-size
// blocks. A Pool hands out pointers to values of a single type, carved from
// typed blocks so that the garbage collector sees ordinary typed memory.
// Neither type is safe for concurrent use.
package arena

import "unsafe"

// wordSize is the alignment guaranteed by AllocAligned.
const wordSize = int(unsafe.Sizeof(uintptr(0)))

// noCopy may be embedded in a struct to make "go vet" complain about copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// A Heap is a bump allocator for byte storage. Allocations remain valid until
// Clear is called; individual allocations cannot be freed.
//
// A Heap must not be copied after first use.
type Heap struct {
	_ noCopy

	blocks [][]byte // all blocks, the last is the head
	min    int      // minimum block size
	pos    int      // offset of the next free byte in the head block
	size   int      // total bytes reserved in all blocks
}

// NewHeap constructs an empty heap whose blocks are at least minBlockSize
// bytes long. It panics if minBlockSize <= 0.
func NewHeap(minBlockSize int) *Heap {
	if minBlockSize <= 0 {
		panic("arena: block size must be positive")
	}
	return &Heap{min: minBlockSize}
}

// MinBlockSize reports the minimum block size of h.
func (h *Heap) MinBlockSize() int { return h.min }

// Blocks reports the number of blocks currently held by h.
func (h *Heap) Blocks() int { return len(h.blocks) }

// Size reports the total number of bytes reserved by h across all blocks.
func (h *Heap) Size() int { return h.size }

// Allocate returns n contiguous bytes from h. The result has no alignment
// guarantee beyond 1 byte. The returned slice has capacity n, so appending
// to it will not overwrite neighbouring allocations.
func (h *Heap) Allocate(n int) []byte {
	if n < 0 {
		panic("arena: negative allocation size")
	}
	head := h.head()
	if head == nil || h.pos+n > len(head) {
		head = h.grow(n)
	}
	p := h.pos
	h.pos += n
	return head[p : p+n : p+n]
}

// AllocAligned returns n contiguous bytes from h, starting at an offset that
// is a multiple of the machine word size.
func (h *Heap) AllocAligned(n int) []byte {
	if n < 0 {
		panic("arena: negative allocation size")
	}
	head := h.head()
	p := alignUp(h.pos)
	if head == nil || p+n > len(head) {
		head = h.grow(n)
		p = 0
	}
	h.pos = p + n
	return head[p : p+n : p+n]
}

// Add copies b into h followed by a NUL terminator, and returns a slice of
// the copy. The terminator is not part of the returned slice, but lies
// within its capacity.
func (h *Heap) Add(b []byte) []byte {
	buf := h.Allocate(len(b) + 1)
	copy(buf, b)
	buf[len(b)] = 0
	return buf[:len(b)]
}

// AddString is as Add, for a string.
func (h *Heap) AddString(s string) []byte {
	buf := h.Allocate(len(s) + 1)
	copy(buf, s)
	buf[len(s)] = 0
	return buf[:len(s)]
}

// Clear releases every block held by h. Slices previously returned by h must
// not be used after Clear.
func (h *Heap) Clear() {
	clear(h.blocks)
	h.blocks = h.blocks[:0]
	h.pos = 0
	h.size = 0
}

func (h *Heap) head() []byte {
	if len(h.blocks) == 0 {
		return nil
	}
	return h.blocks[len(h.blocks)-1]
}

// grow pushes a new head block large enough to hold n bytes.  A request
// larger than the minimum block size gets a dedicated block of exactly that
// size.
func (h *Heap) grow(n int) []byte {
	blk := make([]byte, max(n, h.min))
	h.blocks = append(h.blocks, blk)
	h.pos = 0
	h.size += len(blk)
	return blk
}

func alignUp(p int) int { return (p + wordSize - 1) &^ (wordSize - 1) }
