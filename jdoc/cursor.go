// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import "fmt"

// Path traverses a sequential path into the structure of n, where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its value.
func (n *Node) Path(path ...any) (*Node, error) {
	c := NewCursor(n).Down(path...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of a Node.
type Cursor struct {
	org *Node
	stk []*Node
	err error
}

// NewCursor constructs a new Cursor to traverse the structure of origin.
func NewCursor(origin *Node) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin node of c.
func (c *Cursor) Origin() *Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current node under the cursor.
func (c *Cursor) Value() *Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Nodes reports the complete sequence of nodes from the origin to the current
// location in c.
func (c *Cursor) Nodes() []*Node {
	return append([]*Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current node, where path elements are either strings (denoting object
// field names), integers (denoting offsets into arrays or objects), or
// functions (see below). If the path is valid, the node reached is current.
// If the path cannot be completely consumed, traversal stops and an error is
// recorded. Use Err to recover the error.
//
// If a path element is a string, the current node must be an object, and the
// string selects the value of the most recently added field with that name.
//
// If a path element is an integer, the current node must be an array or
// object, and the integer selects an item or field value by its position in
// insertion order. Negative indices count backward from the end (-1 is last,
// -2 second last). An error is reported if the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next node in the sequence. The function must have a signature
//
//	func(*Node) (*Node, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if cur.kind != Object {
				return c.setErrorf("cannot traverse %v with %q", cur.kind, t)
			}
			v, _ := cur.FieldIfExists(t)
			if v == nil {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(v)

		case int:
			switch cur.kind {
			case Array:
				i, ok := fixArrayBound(cur.n, t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", i, cur.n)
				}
				cur = c.push(cur.itemAt(i))
			case Object:
				i, ok := fixArrayBound(cur.n, t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", i, cur.n)
				}
				cur = c.push(cur.fieldAt(i).value)
			default:
				return c.setErrorf("cannot traverse %v with %v", cur.kind, t)
			}

		case func(*Node) (*Node, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			} else if next == nil {
				return c.setErrorf("path function returned no node")
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v *Node) *Node { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
