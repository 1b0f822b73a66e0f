// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

// An Iterator walks the items of an array in insertion order. Constructing
// an iterator does not modify the array, so several iterators over the same
// array may be live at once.
//
//	it, err := jdoc.NewIterator(arr)
//	...
//	for ; it.Remaining() > 0; it.Advance() {
//	   use(it.Current())
//	}
type Iterator struct {
	items []*Node
	pos   int
}

// NewIterator constructs an iterator over the items of the array n.
// It reports an error if n is not an array.
func NewIterator(n *Node) (*Iterator, error) {
	if err := n.check(Array); err != nil {
		return nil, err
	}
	return &Iterator{items: n.itemList()}, nil
}

// Current returns the current item, or nil if no items remain.
func (it *Iterator) Current() *Node {
	if it.pos < len(it.items) {
		return it.items[it.pos]
	}
	return nil
}

// Advance moves to the next item. It has no effect once no items remain.
func (it *Iterator) Advance() {
	if it.pos < len(it.items) {
		it.pos++
	}
}

// Remaining reports the number of items not yet passed, including the
// current one.
func (it *Iterator) Remaining() int { return len(it.items) - it.pos }
