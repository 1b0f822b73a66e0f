// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/creachadair/mlkit/internal/escape"
	"go4.org/mem"
)

const (
	// maxInlineItems bounds the length of an array the pretty printer will
	// put on a single line.
	maxInlineItems = 1024

	// literalWidth is the column at which the C literal writer breaks lines.
	literalWidth = 200

	literalPrefix = `const char* g_rename_me = "`
	literalSuffix = "\";\n\n"
)

// WriteJSON writes the compact JSON encoding of n to w.
func (n *Node) WriteJSON(w io.Writer) error {
	_, err := w.Write(n.AppendJSON(nil))
	return err
}

// AppendJSON appends the compact JSON encoding of n to buf.
func (n *Node) AppendJSON(buf []byte) []byte {
	switch n.kind {
	case Object:
		buf = append(buf, '{')
		for i, f := range n.fieldList() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = escape.AppendQuote(buf, mem.B(f.name))
			buf = append(buf, ':')
			buf = f.value.AppendJSON(buf)
		}
		return append(buf, '}')

	case Array:
		buf = append(buf, '[')
		for i, v := range n.itemList() {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = v.AppendJSON(buf)
		}
		return append(buf, ']')
	}
	return n.appendScalar(buf)
}

// appendScalar appends the JSON encoding of a scalar node to buf.
func (n *Node) appendScalar(buf []byte) []byte {
	switch n.kind {
	case Bool:
		return strconv.AppendBool(buf, n.b)
	case Int:
		return strconv.AppendInt(buf, n.i, 10)
	case Double:
		return strconv.AppendFloat(buf, n.f, 'f', 14, 64)
	case String:
		return escape.AppendQuote(buf, mem.B(n.s))
	case Null:
		return append(buf, "null"...)
	}
	panic(fmt.Sprintf("jdoc: invalid node kind %v", n.kind))
}

// JSON returns the compact JSON encoding of n as a string.
func (n *Node) JSON() string { return string(n.AppendJSON(nil)) }

// WriteJSONPretty writes the JSON encoding of n to w, with each object field
// on its own line, indented by TAB characters. Arrays containing fewer than
// 1024 items, none of which is an object or array, are written on one line.
func (n *Node) WriteJSONPretty(w io.Writer) error {
	_, err := w.Write(n.AppendJSONPretty(nil))
	return err
}

// AppendJSONPretty appends the pretty JSON encoding of n to buf.
func (n *Node) AppendJSONPretty(buf []byte) []byte { return n.appendPretty(buf, 0) }

// String returns the pretty JSON encoding of n.
func (n *Node) String() string { return string(n.AppendJSONPretty(nil)) }

func (n *Node) appendPretty(buf []byte, depth int) []byte {
	switch n.kind {
	case Object:
		buf = append(buf, '{')
		fs := n.fieldList()
		for i, f := range fs {
			buf = newlineIndent(buf, depth+1)
			buf = escape.AppendQuote(buf, mem.B(f.name))
			buf = append(buf, ':')
			buf = f.value.appendPretty(buf, depth+1)
			if i+1 < len(fs) {
				buf = append(buf, ',')
			}
		}
		buf = newlineIndent(buf, depth)
		return append(buf, '}')

	case Array:
		items := n.itemList()
		if isInline(items) {
			buf = append(buf, '[')
			for i, v := range items {
				if i > 0 {
					buf = append(buf, ',')
				}
				buf = v.appendScalar(buf)
			}
			return append(buf, ']')
		}
		buf = newlineIndent(buf, depth)
		buf = append(buf, '[')
		for i, v := range items {
			buf = newlineIndent(buf, depth+1)
			buf = v.appendPretty(buf, depth+1)
			if i+1 < len(items) {
				buf = append(buf, ',')
			}
		}
		buf = newlineIndent(buf, depth)
		return append(buf, ']')
	}
	return n.appendScalar(buf)
}

func isInline(items []*Node) bool {
	if len(items) >= maxInlineItems {
		return false
	}
	for _, v := range items {
		if !v.kind.IsScalar() {
			return false
		}
	}
	return true
}

func newlineIndent(buf []byte, depth int) []byte {
	buf = append(buf, '\n')
	for range depth {
		buf = append(buf, '\t')
	}
	return buf
}

// WriteJSONCpp writes the compact JSON encoding of n to w as the body of a
// double-quoted C string literal. Lines are broken by closing and reopening
// the literal once they reach about 200 columns.
func (n *Node) WriteJSONCpp(w io.Writer) error {
	buf, _ := n.appendCpp(nil, 0)
	_, err := w.Write(buf)
	return err
}

// lineBreak closes the current literal and opens another on the next line.
func lineBreak(buf []byte, col int) ([]byte, int) {
	if col >= literalWidth {
		return append(buf, "\"\n\""...), 0
	}
	return buf, col
}

// appendCpp appends the literal encoding of n to buf, given that the output
// is currently at column col. It returns the updated buffer and column.
// Column counts for numbers are estimates.
func (n *Node) appendCpp(buf []byte, col int) ([]byte, int) {
	switch n.kind {
	case Object:
		buf = append(buf, '{')
		col++
		for i, f := range n.fieldList() {
			if i > 0 {
				buf = append(buf, ',')
				col++
			}
			buf, col = lineBreak(buf, col)
			var w int
			buf, w = escape.AppendLiteral(buf, mem.B(f.name))
			buf = append(buf, ':')
			buf, col = f.value.appendCpp(buf, col+w+1)
		}
		buf = append(buf, '}')
		col++

	case Array:
		buf = append(buf, '[')
		col++
		for i, v := range n.itemList() {
			if i > 0 {
				buf = append(buf, ',')
				col++
			}
			buf, col = lineBreak(buf, col)
			buf, col = v.appendCpp(buf, col)
		}
		buf = append(buf, ']')
		col++

	case String:
		var w int
		buf, w = escape.AppendLiteral(buf, mem.B(n.s))
		col += w

	case Double:
		buf = n.appendScalar(buf)
		col += 8

	default:
		buf = n.appendScalar(buf)
		col += 4
	}
	return lineBreak(buf, col)
}

// Save writes the compact JSON encoding of n to the named file.
func (n *Node) Save(path string) error { return saveFile(path, n.AppendJSON(nil)) }

func saveFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// WriteJSON writes the compact JSON encoding of the root of d to w.
func (d *Doc) WriteJSON(w io.Writer) error {
	if d.root == nil {
		return ErrNoRoot
	}
	return d.root.WriteJSON(w)
}

// WriteJSONPretty writes the pretty JSON encoding of the root of d to w.
func (d *Doc) WriteJSONPretty(w io.Writer) error {
	if d.root == nil {
		return ErrNoRoot
	}
	return d.root.WriteJSONPretty(w)
}

// WriteJSONCpp writes the root of d to w as a C source declaration of a
// string variable whose value is the compact JSON encoding.
func (d *Doc) WriteJSONCpp(w io.Writer) error {
	if d.root == nil {
		return ErrNoRoot
	}
	buf := append([]byte(nil), literalPrefix...)
	buf, _ = d.root.appendCpp(buf, 0)
	buf = append(buf, literalSuffix...)
	_, err := w.Write(buf)
	return err
}

// Save writes the compact JSON encoding of the root of d to the named file.
func (d *Doc) Save(path string) error {
	if d.root == nil {
		return ErrNoRoot
	}
	return d.root.Save(path)
}

// String returns the pretty JSON encoding of the root of d, or "" if d has no
// root.
func (d *Doc) String() string {
	if d.root == nil {
		return ""
	}
	return d.root.String()
}
