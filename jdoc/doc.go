// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jdoc implements an arena-backed JSON document model.
//
// # Documents
//
// A Doc owns every Node reachable from its root. Nodes are allocated from
// memory pools held by the document, and remain valid until the document is
// cleared. Construct nodes with the factory methods of a Doc, or parse them
// from JSON text:
//
//	doc, err := jdoc.Parse([]byte(`{"a":1,"b":[true,null,-2.5]}`))
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	a, err := doc.Root().Field("a")
//
// In case of a syntax error, the parser reports an error of concrete type
// *jdoc.SyntaxError giving the line and column of the problem.
//
// # Lists
//
// The fields of an object and the items of an array are kept in singly linked
// lists, newest first, so that adding a field or item is O(1). Iteration with
// Fields, Items, or an Iterator visits them in insertion order without
// modifying the document, so any number of readers may traverse a document
// at once. Lookup by name with Field finds the most recently added match.
//
// # Output
//
// Nodes and documents can be written in four forms:
//
//	Method          | Output
//	--------------- | -----------------------------------------------------
//	WriteJSON       | compact JSON with no insignificant whitespace
//	WriteJSONPretty | JSON with one TAB of indentation per level
//	WriteJSONCpp    | JSON quoted as a C string literal, in bounded lines
//	WriteXML        | XML, scalar fields as attributes, arrays as <i> items
//
// Double values are written in fixed-point notation with 14 digits after the
// decimal point.
//
// # Strings
//
// The model is byte-oriented. A \uXXXX escape in the input is accepted but
// not decoded: it is stored as the single byte '_'.
package jdoc

import (
	"fmt"

	"github.com/creachadair/mlkit/arena"
)

// DocBlockSize is the minimum block size of the heap used for strings.
const DocBlockSize = 2000

// A Doc is a JSON document. A zero Doc is not ready for use; call New to
// construct one. A Doc must not be copied after first use.
type Doc struct {
	heap   *arena.Heap
	nodes  arena.Pool[Node]
	fields arena.Pool[field]
	items  arena.Pool[item]
	root   *Node
}

// New constructs a new empty document.
func New() *Doc { return &Doc{heap: arena.NewHeap(DocBlockSize)} }

// Root returns the root node of d, or nil if no root has been set.
func (d *Doc) Root() *Node { return d.root }

// SetRoot sets the root node of d and returns n. It reports an error if n was
// not created by d. A nil n clears the root.
func (d *Doc) SetRoot(n *Node) (*Node, error) {
	if n != nil && n.doc != d {
		return nil, ErrForeignNode
	}
	d.root = n
	return n, nil
}

// Clear discards every node of d, including its root. Nodes previously
// allocated by d must not be used after Clear.
func (d *Doc) Clear() {
	d.root = nil
	d.nodes.Clear()
	d.fields.Clear()
	d.items.Clear()
	d.heap.Clear()
}

// Len reports the number of nodes allocated by d since it was last cleared.
func (d *Doc) Len() int { return d.nodes.Len() }

func (d *Doc) newNode(kind Kind) *Node {
	n := d.nodes.New()
	n.doc = d
	n.kind = kind
	return n
}

// NewObject returns a new empty object node.
func (d *Doc) NewObject() *Node { return d.newNode(Object) }

// NewArray returns a new empty array node.
func (d *Doc) NewArray() *Node { return d.newNode(Array) }

// NewNull returns a new null node.
func (d *Doc) NewNull() *Node { return d.newNode(Null) }

// NewBool returns a new Boolean node with value b.
func (d *Doc) NewBool(b bool) *Node {
	n := d.newNode(Bool)
	n.b = b
	return n
}

// NewInt returns a new integer node with value v.
func (d *Doc) NewInt(v int64) *Node {
	n := d.newNode(Int)
	n.i = v
	return n
}

// NewDouble returns a new double node with value v. It reports ErrRange if v
// is NaN or its magnitude exceeds 1.5e308.
func (d *Doc) NewDouble(v float64) (*Node, error) {
	if !(v >= -1.5e308 && v <= 1.5e308) {
		return nil, fmt.Errorf("double %v: %w", v, ErrRange)
	}
	n := d.newNode(Double)
	n.f = v
	return n, nil
}

// NewString returns a new string node with a copy of s.
func (d *Doc) NewString(s string) *Node {
	n := d.newNode(String)
	n.s = d.heap.AddString(s)
	return n
}

// NewStringBytes returns a new string node with a copy of b.
func (d *Doc) NewStringBytes(b []byte) *Node {
	n := d.newNode(String)
	n.s = d.heap.Add(b)
	return n
}
