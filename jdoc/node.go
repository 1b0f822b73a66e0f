// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"iter"

	"go4.org/mem"
)

// Kind is the type of a JSON node.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota
	Object
	Array
	Bool
	Int
	Double
	String
	Null
)

var kindStr = [...]string{
	Invalid: "invalid",
	Object:  "object",
	Array:   "array",
	Bool:    "bool",
	Int:     "int",
	Double:  "double",
	String:  "string",
	Null:    "null",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return kindStr[Invalid]
}

// IsScalar reports whether k is a kind other than Object or Array.
func (k Kind) IsScalar() bool { return k >= Bool && k <= Null }

// A Node is a JSON value belonging to a Doc.
type Node struct {
	doc  *Doc
	kind Kind

	b bool
	i int64
	f float64
	s []byte

	fields *field // newest first
	items  *item  // newest first
	n      int    // number of fields or items
}

type field struct {
	name  []byte
	value *Node
	prev  *field
}

type item struct {
	value *Node
	prev  *item
}

// Kind reports the kind of n.
func (n *Node) Kind() Kind { return n.kind }

// Doc returns the document that owns n.
func (n *Node) Doc() *Doc { return n.doc }

// Len reports the number of fields of an object, the number of items of an
// array, or the length in bytes of a string. It returns 0 for other kinds.
func (n *Node) Len() int {
	switch n.kind {
	case Object, Array:
		return n.n
	case String:
		return len(n.s)
	}
	return 0
}

func (n *Node) check(want Kind) error {
	if n.kind != want {
		return &TypeError{Want: want, Got: n.kind}
	}
	return nil
}

// FieldIfExists returns the value of the most recently added field of n with
// the given name, or nil if there is none. It reports an error if n is not an
// object.
func (n *Node) FieldIfExists(name string) (*Node, error) {
	if err := n.check(Object); err != nil {
		return nil, err
	}
	for f := n.fields; f != nil; f = f.prev {
		if mem.B(f.name).EqualString(name) {
			return f.value, nil
		}
	}
	return nil, nil
}

// Field is as FieldIfExists, but reports an error wrapping ErrNoField if n
// has no field with the given name.
func (n *Node) Field(name string) (*Node, error) {
	v, err := n.FieldIfExists(name)
	if err != nil {
		return nil, err
	} else if v == nil {
		return nil, fmt.Errorf("field %q: %w", name, ErrNoField)
	}
	return v, nil
}

// AddField adds a field with the given name and value to the object n, and
// returns value. Duplicate names are permitted; the newest shadows the others
// for lookup. It reports an error if n is not an object, or if value is nil or
// belongs to a different document.
func (n *Node) AddField(name string, value *Node) (*Node, error) {
	if err := n.check(Object); err != nil {
		return nil, err
	} else if value == nil {
		return nil, ErrNilNode
	} else if value.doc != n.doc {
		return nil, ErrForeignNode
	}
	n.addField(n.doc.heap.AddString(name), value)
	return value, nil
}

// addField links a field to n. The name must already be stored in the heap of
// the document.
func (n *Node) addField(name []byte, value *Node) {
	f := n.doc.fields.New()
	f.name = name
	f.value = value
	f.prev = n.fields
	n.fields = f
	n.n++
}

// AddItem appends value to the array n and returns value. It reports an error
// if n is not an array, or if value is nil or belongs to a different document.
func (n *Node) AddItem(value *Node) (*Node, error) {
	if err := n.check(Array); err != nil {
		return nil, err
	} else if value == nil {
		return nil, ErrNilNode
	} else if value.doc != n.doc {
		return nil, ErrForeignNode
	}
	n.addItem(value)
	return value, nil
}

func (n *Node) addItem(value *Node) {
	it := n.doc.items.New()
	it.value = value
	it.prev = n.items
	n.items = it
	n.n++
}

// AsBool returns the value of a Boolean node.
func (n *Node) AsBool() (bool, error) {
	if err := n.check(Bool); err != nil {
		return false, err
	}
	return n.b, nil
}

// AsInt returns the value of an integer node.
func (n *Node) AsInt() (int64, error) {
	if err := n.check(Int); err != nil {
		return 0, err
	}
	return n.i, nil
}

// AsDouble returns the value of a double node. An integer node is also
// accepted, and its value is converted to float64.
func (n *Node) AsDouble() (float64, error) {
	switch n.kind {
	case Double:
		return n.f, nil
	case Int:
		return float64(n.i), nil
	}
	return 0, &TypeError{Want: Double, Got: n.kind}
}

// AsString returns a copy of the value of a string node.
func (n *Node) AsString() (string, error) {
	if err := n.check(String); err != nil {
		return "", err
	}
	return string(n.s), nil
}

// AsBytes returns the value of a string node. The caller must not modify the
// contents of the slice, which are owned by the document.
func (n *Node) AsBytes() ([]byte, error) {
	if err := n.check(String); err != nil {
		return nil, err
	}
	return n.s, nil
}

// Fields returns an iterator over the names and values of the fields of n in
// insertion order. It yields nothing if n is not an object. The name slice is
// owned by the document and must not be modified.
func (n *Node) Fields() iter.Seq2[[]byte, *Node] {
	return func(yield func([]byte, *Node) bool) {
		if n.kind != Object {
			return
		}
		for _, f := range n.fieldList() {
			if !yield(f.name, f.value) {
				return
			}
		}
	}
}

// Items returns an iterator over the items of n in insertion order. It
// yields nothing if n is not an array.
func (n *Node) Items() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n.kind != Array {
			return
		}
		for _, v := range n.itemList() {
			if !yield(v) {
				return
			}
		}
	}
}

// fieldList returns the fields of n in insertion order.
func (n *Node) fieldList() []*field {
	out := make([]*field, n.n)
	i := n.n
	for f := n.fields; f != nil; f = f.prev {
		i--
		out[i] = f
	}
	return out
}

// itemList returns the items of n in insertion order.
func (n *Node) itemList() []*Node {
	out := make([]*Node, n.n)
	i := n.n
	for it := n.items; it != nil; it = it.prev {
		i--
		out[i] = it.value
	}
	return out
}

// itemAt returns the item of the array n at offset i in insertion order.
// The caller ensures 0 <= i < n.Len().
func (n *Node) itemAt(i int) *Node {
	it := n.items
	for k := n.n - 1; k > i; k-- {
		it = it.prev
	}
	return it.value
}

// fieldAt returns the field of the object n at offset i in insertion order.
// The caller ensures 0 <= i < n.Len().
func (n *Node) fieldAt(i int) *field {
	f := n.fields
	for k := n.n - 1; k > i; k-- {
		f = f.prev
	}
	return f
}
