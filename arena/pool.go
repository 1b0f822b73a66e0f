// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package arena

// DefaultPoolBlock is the number of values per block used by a zero Pool.
const DefaultPoolBlock = 64

// A Pool is a bump allocator for values of type T. Values are carved from
// fixed-capacity blocks, so pointers returned by New remain stable until the
// pool is cleared. A zero Pool is ready for use.
//
// A Pool must not be copied after first use.
type Pool[T any] struct {
	_ noCopy

	blocks [][]T
	per    int
	n      int
}

// NewPool constructs a pool that allocates perBlock values at a time.
// If perBlock <= 0, DefaultPoolBlock is used.
func NewPool[T any](perBlock int) *Pool[T] {
	return &Pool[T]{per: perBlock}
}

// New returns a pointer to a fresh zero value of T owned by p.
func (p *Pool[T]) New() *T {
	i := len(p.blocks) - 1
	if i < 0 || len(p.blocks[i]) == cap(p.blocks[i]) {
		per := p.per
		if per <= 0 {
			per = DefaultPoolBlock
		}
		p.blocks = append(p.blocks, make([]T, 0, per))
		i++
	}
	var zero T
	p.blocks[i] = append(p.blocks[i], zero)
	p.n++
	return &p.blocks[i][len(p.blocks[i])-1]
}

// Len reports the number of values allocated from p since it was last cleared.
func (p *Pool[T]) Len() int { return p.n }

// Clear releases all the values allocated from p.
func (p *Pool[T]) Clear() {
	clear(p.blocks)
	p.blocks = p.blocks[:0]
	p.n = 0
}
